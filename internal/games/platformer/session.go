// Package platformer implements an auto-running side-scroller: the player
// runs right under gravity, platforms and coins drift in from the right,
// and the run ends when the player falls below the screen.
package platformer

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// SkyColor is the scene background.
const SkyColor = core.ColorCyan

// Engine is the sprite engine a Session runs on.
// *engine.World is the production implementation.
type Engine interface {
	CreateSprite(kind engine.Kind, width, height float64) *engine.Sprite
	OnUpdate(fn func())
	OnButton(b engine.Button, fn func())
	OnOverlap(a, b engine.Kind, fn engine.OverlapFunc)
	Drive(s *engine.Sprite, vx, vy float64)
	SetScore(v int)
	ChangeScoreBy(delta int)
	PlaySound(cue engine.Cue)
	SetBackground(c core.Color)
	Size() (width, height float64)
	Over(win bool)
}

var _ Engine = (*engine.World)(nil)

// Session holds the state of one run and the handlers the engine calls.
// All methods must be called from the engine's tick goroutine.
type Session struct {
	eng    Engine
	cfg    config.PlatformerConfig
	rng    *rand.Rand
	logger *log.Logger

	player       *engine.Sprite
	platforms    []*engine.Sprite
	collectibles []*engine.Sprite

	score     int
	isJumping bool
	started   bool
	screenH   float64
}

// NewSession creates a session bound to eng. Nothing is spawned until Start.
// A nil logger discards all output.
func NewSession(eng Engine, cfg config.PlatformerConfig, seed int64, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	_, h := eng.Size()
	return &Session{
		eng:          eng,
		cfg:          cfg,
		rng:          rand.New(rand.NewSource(seed)),
		logger:       logger,
		platforms:    make([]*engine.Sprite, 0, cfg.Platforms.MinCount+1),
		collectibles: make([]*engine.Sprite, 0, cfg.Platforms.MinCount+1),
		screenH:      h,
	}
}

// Start sets up the scene, creates the player and the initial platforms,
// and registers the session's handlers with the engine. Only the first
// call has any effect.
func (s *Session) Start() {
	if s.player != nil {
		return
	}

	s.eng.SetBackground(SkyColor)

	s.player = s.eng.CreateSprite(engine.KindPlayer, s.cfg.Player.Width, s.cfg.Player.Height)
	s.player.SetPosition(s.cfg.Player.X, s.cfg.Physics.GroundLevel)
	s.player.AY = s.cfg.Physics.Gravity
	s.eng.Drive(s.player, s.cfg.Physics.RunSpeed, 0)

	s.eng.OnButton(engine.ButtonA, s.Jump)
	s.eng.OnOverlap(engine.KindPlayer, engine.KindPlatform, s.LandOnPlatform)
	s.eng.OnOverlap(engine.KindPlayer, engine.KindFood, s.Collect)

	for i := 0; i < s.cfg.Platforms.MinCount; i++ {
		s.spawnPlatform(s.cfg.Platforms.Spacing * float64(i+1))
	}
	s.eng.OnUpdate(s.Update)

	s.score = 0
	s.eng.SetScore(0)
	s.started = true

	s.logger.Debug("run started", "platforms", len(s.platforms), "coins", len(s.collectibles))
}

// Jump launches the player upward unless it is already airborne.
func (s *Session) Jump() {
	if !s.started || s.isJumping {
		return
	}
	s.player.VY = s.cfg.Physics.JumpVelocity
	s.isJumping = true
}

// Update runs once per tick: ground clamp, off-screen removal, platform
// replenishment and the fall-off-screen check.
func (s *Session) Update() {
	if !s.started {
		return
	}

	if s.player.Y >= s.cfg.Physics.GroundLevel {
		s.player.Y = s.cfg.Physics.GroundLevel
		s.isJumping = false
	}

	s.platforms = s.despawn(s.platforms)

	// At most one new platform per tick, always at the same seam.
	if len(s.platforms) < s.cfg.Platforms.MinCount {
		s.spawnPlatform(s.cfg.Platforms.RespawnX)
	}

	s.collectibles = s.despawn(s.collectibles)

	if s.player.Y > s.screenH {
		s.gameOver()
	}
}

// gameOver stops the session and reports a loss to the engine.
func (s *Session) gameOver() {
	s.started = false
	s.logger.Info("run lost", "score", s.score, "y", s.player.Y)
	s.eng.Over(false)
}

// Started reports whether the run is in progress.
func (s *Session) Started() bool {
	return s.started
}

// Score returns the number of coins collected.
func (s *Session) Score() int {
	return s.score
}

// IsJumping reports whether the player is airborne.
func (s *Session) IsJumping() bool {
	return s.isJumping
}

// Player returns the player sprite, or nil before Start.
func (s *Session) Player() *engine.Sprite {
	return s.player
}

// Platforms returns the live platforms in spawn order.
func (s *Session) Platforms() []*engine.Sprite {
	return s.platforms
}

// Collectibles returns the live coins in spawn order.
func (s *Session) Collectibles() []*engine.Sprite {
	return s.collectibles
}
