package platformer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "platformer"

// Visual characters for rendering
const (
	PlayerChar   = '█'
	PlayerEye    = '▀'
	PlatformChar = '▀'
	CoinChar     = '●'
	GroundChar   = '═'
	SkyChar      = '·'
)

// Game adapts a Session and its engine world to the registry.Game
// interface: it translates actions into button presses, advances the world
// by one fixed tick per Step and draws the world scaled to the screen.
type Game struct {
	cfg    config.PlatformerConfig
	sound  engine.SoundPlayer
	logger *log.Logger

	world   *engine.World
	session *Session
	runtime core.RuntimeConfig
	dt      float64
	paused  bool
}

// New creates a game from the given options. A nil config selects the
// built-in defaults.
func New(opts registry.Options) *Game {
	cfg := config.DefaultPlatformerConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:    cfg,
		sound:  opts.Sound,
		logger: logger,
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Coin Runner"
}

// Reset discards the current run and starts a new one.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.dt = runtime.TickSeconds()
	g.paused = false

	g.world = engine.NewWorld(g.cfg.World.Width, g.cfg.World.Height, g.sound)
	g.world.SetMaxVelocity(g.cfg.Physics.MaxVelocity)
	g.session = NewSession(g.world, g.cfg, runtime.Seed, g.logger)
	g.session.Start()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world.IsOver() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) {
		g.world.Press(engine.ButtonA)
	}
	g.world.Tick(g.dt)

	return core.StepResult{State: g.State()}
}

// Session returns the current run.
func (g *Game) Session() *Session {
	return g.session
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: g.world.IsOver(),
		Paused:   g.paused,
	}
}

// Render draws the world scaled onto the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	v := newViewport(dst, g.cfg.World.Width, g.cfg.World.Height)

	g.drawSky(dst)

	groundRow := v.row(g.cfg.Physics.GroundLevel)
	if groundRow < dst.Height() {
		dst.DrawHLine(0, groundRow, dst.Width(), GroundChar, core.ColorGreen)
	}

	for _, p := range g.world.Sprites(engine.KindPlatform) {
		v.fill(dst, p.Box(), PlatformChar, core.ColorGreen)
	}
	for _, c := range g.world.Sprites(engine.KindFood) {
		x, y := v.col(c.X), v.row(c.Y)
		dst.SetColored(x, y, CoinChar, core.ColorBrightYellow)
	}
	if p := g.session.Player(); p != nil {
		g.drawPlayer(dst, v, p)
	}

	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.world.Score()), core.ColorWhite)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if over, won := g.world.Result(); over {
		title := "GAME OVER"
		if won {
			title = "YOU WIN"
		}
		g.drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Press R to restart", g.world.Score()))
	}
}

// drawSky scatters a fixed star pattern in the background color.
func (g *Game) drawSky(dst *core.Screen) {
	bg := g.world.Background()
	for y := 1; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if (x*7+y*13)%29 == 0 {
				dst.SetColored(x, y, SkyChar, bg)
			}
		}
	}
}

// drawPlayer renders the runner as a solid block with an eye on the
// leading edge.
func (g *Game) drawPlayer(dst *core.Screen, v viewport, p *engine.Sprite) {
	r := v.rect(p.Box())
	v.fill(dst, p.Box(), PlayerChar, core.ColorRed)
	dst.SetColored(r.Right()-1, r.Y, PlayerEye, core.ColorWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// Register the game with the registry
func init() {
	registry.Register(ID, func(opts registry.Options) registry.Game {
		return New(opts)
	})
}
