package platformer

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Autopilot is a deterministic jump policy for headless runs.
//
// A runner pinned at the right edge cannot reach a platform that is already
// on screen: new platforms appear at the seam right next to it and leave its
// reach before a jump comes back down. So the policy jumps ahead of the next
// respawn, and it jumps whenever a predicted flight passes through a coin.
type Autopilot struct {
	// Lead is how long before the next respawn to jump, in seconds. The
	// default suits the built-in physics: the runner comes down while the
	// new platform passes under it.
	Lead float64
	// Window is the accepted timing error around Lead, in seconds.
	Window float64
	// Step and Horizon bound the flight prediction, in seconds.
	Step    float64
	Horizon float64
}

// NewAutopilot returns a policy tuned for the default configuration.
func NewAutopilot() Autopilot {
	return Autopilot{Lead: 0.35, Window: 0.05, Step: 1.0 / 60.0, Horizon: 2}
}

// ShouldJump reports whether the player should jump this tick.
func (a Autopilot) ShouldJump(s *Session) bool {
	if !s.Started() || s.IsJumping() {
		return false
	}
	if a.jumpCollects(s) {
		return true
	}
	if t, ok := nextRespawn(s); ok && math.Abs(t-a.Lead) <= a.Window {
		return true
	}
	return false
}

// nextRespawn estimates the seconds until a platform scrolls past the despawn
// line, which makes the session spawn a replacement at the seam.
func nextRespawn(s *Session) (float64, bool) {
	if len(s.Platforms()) > s.cfg.Platforms.MinCount {
		return 0, false
	}
	best, ok := math.Inf(1), false
	for _, pl := range s.Platforms() {
		if pl.VX >= 0 {
			continue
		}
		if t := (pl.X - s.cfg.Platforms.DespawnX) / -pl.VX; t < best {
			best, ok = t, true
		}
	}
	return best, ok
}

// flyer is a box moving at constant horizontal speed during a prediction.
type flyer struct {
	obj *resolv.Object
	vx  float64
}

func newFlyer(x, y, w, h, vx float64) flyer {
	return flyer{obj: resolv.NewObject(x-w/2, y-h/2, w, h), vx: vx}
}

// jumpCollects integrates a jump started now the way the engine would and
// reports whether the player touches a coin before landing.
func (a Autopilot) jumpCollects(s *Session) bool {
	if len(s.Collectibles()) == 0 || a.Step <= 0 {
		return false
	}
	p := s.Player()
	phys := s.cfg.Physics
	worldW, _ := s.eng.Size()

	coins := make([]flyer, 0, len(s.Collectibles()))
	for _, c := range s.Collectibles() {
		coins = append(coins, newFlyer(c.X, c.Y, c.W, c.H, c.VX))
	}
	platforms := make([]flyer, 0, len(s.Platforms()))
	for _, pl := range s.Platforms() {
		platforms = append(platforms, newFlyer(pl.X, pl.Y, pl.W, pl.H, pl.VX))
	}

	body := newFlyer(p.X, p.Y, p.W, p.H, p.VX)
	x, y, vy := p.X, p.Y, phys.JumpVelocity
	limit := math.Max(phys.MaxVelocity, -phys.JumpVelocity)

	for t := a.Step; t <= a.Horizon; t += a.Step {
		vy = core.ClampF(vy+phys.Gravity*a.Step, -limit, limit)
		y += vy * a.Step
		x += body.vx * a.Step
		if p.StayInScreen {
			x = core.ClampF(x, p.W/2, worldW-p.W/2)
		}
		body.obj.X, body.obj.Y = x-p.W/2, y-p.H/2

		for _, c := range coins {
			c.obj.X += c.vx * a.Step
			if body.obj.Overlaps(c.obj) {
				return true
			}
		}
		for _, pl := range platforms {
			pl.obj.X += pl.vx * a.Step
			if vy > 0 && y < pl.obj.Y+pl.obj.H/2 && body.obj.Overlaps(pl.obj) {
				return false
			}
		}
		if y >= phys.GroundLevel {
			return false
		}
	}
	return false
}

// RunResult summarises a headless run.
type RunResult struct {
	Ticks int
	Jumps int
	Score int
	Over  bool
}

// Run drives g with the policy until the run ends or maxTicks ticks have
// passed. g must have been Reset.
func (a Autopilot) Run(g *Game, maxTicks int) RunResult {
	var res RunResult
	frame := core.NewInputFrame()

	for res.Ticks < maxTicks {
		frame.Clear()
		if a.ShouldJump(g.Session()) {
			frame.Set(core.ActionJump)
			res.Jumps++
		}
		state := g.Step(frame).State
		res.Ticks++
		res.Score = state.Score
		if state.GameOver {
			res.Over = true
			break
		}
	}
	return res
}
