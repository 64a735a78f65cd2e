package platformer

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

const dt = 1.0 / 60.0

type recordingSound struct {
	cues []engine.Cue
}

func (r *recordingSound) Play(cue engine.Cue) {
	r.cues = append(r.cues, cue)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func newTestSession(t *testing.T, cfg config.PlatformerConfig, seed int64) (*Session, *engine.World, *recordingSound) {
	t.Helper()
	sound := &recordingSound{}
	w := engine.NewWorld(cfg.World.Width, cfg.World.Height, sound)
	s := NewSession(w, cfg, seed, nil)
	s.Start()
	return s, w, sound
}

func contains(sprites []*engine.Sprite, sp *engine.Sprite) bool {
	for _, s := range sprites {
		if s == sp {
			return true
		}
	}
	return false
}

func TestStart(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	s, w, _ := newTestSession(t, cfg, 1)

	if !s.Started() {
		t.Fatal("session should be started")
	}
	if w.Background() != SkyColor {
		t.Errorf("background = %v, want %v", w.Background(), SkyColor)
	}
	if w.Score() != 0 || s.Score() != 0 {
		t.Errorf("score = %d/%d, want 0", s.Score(), w.Score())
	}

	p := s.Player()
	if p.X != 30 || p.Y != 120 {
		t.Errorf("player at (%v, %v), want (30, 120)", p.X, p.Y)
	}
	if p.AY != 300 {
		t.Errorf("gravity = %v, want 300", p.AY)
	}
	if !p.StayInScreen {
		t.Error("player should be driven and kept on screen")
	}

	wantX := []float64{160, 320, 480}
	if len(s.Platforms()) != len(wantX) {
		t.Fatalf("platforms = %d, want %d", len(s.Platforms()), len(wantX))
	}
	for i, pl := range s.Platforms() {
		if pl.X != wantX[i] {
			t.Errorf("platform %d x = %v, want %v", i, pl.X, wantX[i])
		}
		if pl.Y < 60 || pl.Y >= 100 || pl.Y != math.Trunc(pl.Y) {
			t.Errorf("platform %d y = %v, want integer in [60,100)", i, pl.Y)
		}
		if pl.VX != -50 {
			t.Errorf("platform %d vx = %v, want -50", i, pl.VX)
		}
	}

	for _, c := range s.Collectibles() {
		var above bool
		for _, pl := range s.Platforms() {
			if pl.X == c.X && almostEqual(pl.Y-20, c.Y) {
				above = true
			}
		}
		if !above {
			t.Errorf("coin at (%v, %v) is not 20px above a platform", c.X, c.Y)
		}
	}
}

func TestStartTwiceKeepsOnePlayer(t *testing.T) {
	s, w, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	s.Start()

	if n := len(w.Sprites(engine.KindPlayer)); n != 1 {
		t.Errorf("players = %d, want 1", n)
	}
	if n := len(s.Platforms()); n != 3 {
		t.Errorf("platforms = %d, want 3", n)
	}
}

func TestHandlersInertWhenNotStarted(t *testing.T) {
	s, w, sound := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	s.started = false

	gone := s.Platforms()[0]
	gone.X = -50
	coin := s.eng.CreateSprite(engine.KindFood, 8, 5)
	s.collectibles = append(s.collectibles, coin)
	p := s.Player()
	p.Y = 500

	s.Update()

	if len(s.Platforms()) != 3 || gone.Destroyed() {
		t.Error("update should not collect or spawn platforms while stopped")
	}
	if w.IsOver() {
		t.Error("update should not end the run while stopped")
	}
	if p.Y != 500 {
		t.Errorf("ground clamp ran while stopped: y = %v", p.Y)
	}

	p.Y, p.VY = 90, 5
	s.LandOnPlatform(p, s.Platforms()[1])
	if p.VY != 5 || p.Y != 90 {
		t.Error("landing resolved while stopped")
	}

	s.Collect(p, coin)
	if coin.Destroyed() || s.Score() != 0 || len(sound.cues) != 0 {
		t.Error("pickup resolved while stopped")
	}

	s.Jump()
	if p.VY != 5 {
		t.Error("jump applied while stopped")
	}
}

func TestPlatformDespawnThreshold(t *testing.T) {
	tests := []struct {
		x       float64
		removed bool
	}{
		{-21, true},
		{-20.5, true},
		{-20, false},
		{-19, false},
		{0, false},
	}

	for _, tt := range tests {
		s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
		pl := s.Platforms()[0]
		pl.X = tt.x

		s.Update()

		if got := !contains(s.Platforms(), pl); got != tt.removed {
			t.Errorf("x=%v: removed = %v, want %v", tt.x, got, tt.removed)
		}
		if pl.Destroyed() != tt.removed {
			t.Errorf("x=%v: destroyed = %v, want %v", tt.x, pl.Destroyed(), tt.removed)
		}
		if len(s.Platforms()) != 3 {
			t.Errorf("x=%v: platforms = %d, want 3", tt.x, len(s.Platforms()))
		}
	}
}

func TestCollectibleDespawnThreshold(t *testing.T) {
	tests := []struct {
		x       float64
		removed bool
	}{
		{-21, true},
		{-19, false},
	}

	for _, tt := range tests {
		s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
		s.spawnCollectible(tt.x, 40)
		coin := s.Collectibles()[len(s.Collectibles())-1]

		s.Update()

		if got := !contains(s.Collectibles(), coin); got != tt.removed {
			t.Errorf("x=%v: removed = %v, want %v", tt.x, got, tt.removed)
		}
		if coin.Destroyed() != tt.removed {
			t.Errorf("x=%v: destroyed = %v, want %v", tt.x, coin.Destroyed(), tt.removed)
		}
	}
}

func TestReplenishOnePerTick(t *testing.T) {
	s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	s.Platforms()[0].X = -30
	s.Platforms()[1].X = -30

	s.Update()
	if n := len(s.Platforms()); n != 2 {
		t.Fatalf("after first update: platforms = %d, want 2", n)
	}
	if last := s.Platforms()[1]; last.X != 160 {
		t.Errorf("replenished platform x = %v, want 160", last.X)
	}

	s.Update()
	if n := len(s.Platforms()); n != 3 {
		t.Fatalf("after second update: platforms = %d, want 3", n)
	}

	s.Update()
	if n := len(s.Platforms()); n != 3 {
		t.Errorf("full collection grew: platforms = %d, want 3", n)
	}
}

func TestReplenishKeepsOrder(t *testing.T) {
	s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	second, third := s.Platforms()[1], s.Platforms()[2]
	s.Platforms()[0].X = -25

	s.Update()

	got := s.Platforms()
	if got[0] != second || got[1] != third || got[2].X != 160 {
		t.Error("retained platforms should keep their order with the new one appended")
	}
}

func TestCoinChance(t *testing.T) {
	const n = 20000
	s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 42)
	before := len(s.Collectibles())

	for i := 0; i < n; i++ {
		s.spawnPlatform(160)
	}

	ratio := float64(len(s.Collectibles())-before) / n
	if math.Abs(ratio-0.7) > 0.02 {
		t.Errorf("coin ratio = %.3f, want 0.70 +/- 0.02", ratio)
	}
}

func TestCoinChanceBounds(t *testing.T) {
	tests := []struct {
		name   string
		chance float64
		want   int
	}{
		{"never", 0, 0},
		{"always", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultPlatformerConfig()
			cfg.Collectibles.Chance = tt.chance
			s, _, _ := newTestSession(t, cfg, 7)
			before := len(s.Collectibles())

			for i := 0; i < 100; i++ {
				s.spawnPlatform(160)
			}

			if got := len(s.Collectibles()) - before; got != tt.want {
				t.Errorf("coins = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlatformHeightRange(t *testing.T) {
	s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 3)
	seen := make(map[float64]bool)

	for i := 0; i < 5000; i++ {
		s.spawnPlatform(160)
	}
	for _, pl := range s.Platforms() {
		if pl.Y < 60 || pl.Y >= 100 {
			t.Fatalf("platform y = %v, want [60,100)", pl.Y)
		}
		seen[pl.Y] = true
	}
	if !seen[60] || !seen[99] {
		t.Error("both ends of the height range should occur")
	}
}

func TestSpawnedCoinSitsAbovePlatform(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Collectibles.Chance = 1
	s, _, _ := newTestSession(t, cfg, 5)

	s.spawnPlatform(200)

	pl := s.Platforms()[len(s.Platforms())-1]
	c := s.Collectibles()[len(s.Collectibles())-1]
	if c.X != pl.X || c.Y != pl.Y-20 || c.VX != pl.VX {
		t.Errorf("coin (%v, %v, vx %v), platform (%v, %v, vx %v)", c.X, c.Y, c.VX, pl.X, pl.Y, pl.VX)
	}
	if c.W != 8 || c.H != 5 {
		t.Errorf("coin size = %vx%v, want 8x5", c.W, c.H)
	}
}

func TestLandingScenario(t *testing.T) {
	s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	p := s.Player()
	pl := s.Platforms()[0]
	pl.Y = 100
	p.Y, p.VY = 90, 5
	s.isJumping = true

	s.LandOnPlatform(p, pl)

	if p.VY != 0 {
		t.Errorf("vy = %v, want 0", p.VY)
	}
	if p.Y != 96 {
		t.Errorf("y = %v, want 96", p.Y)
	}
	if s.IsJumping() {
		t.Error("player should be grounded")
	}

	// A second resolution in the same state changes nothing.
	s.LandOnPlatform(p, pl)
	if p.VY != 0 || p.Y != 96 || s.IsJumping() {
		t.Errorf("landing not idempotent: y=%v vy=%v", p.Y, p.VY)
	}
}

func TestLandingRejected(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		vy   float64
	}{
		{"rising", 90, -5},
		{"resting", 90, 0},
		{"below centre", 101, 5},
		{"level with centre", 100, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
			p := s.Player()
			pl := s.Platforms()[0]
			pl.Y = 100
			p.Y, p.VY = tt.y, tt.vy
			s.isJumping = true

			s.LandOnPlatform(p, pl)

			if p.Y != tt.y || p.VY != tt.vy || !s.IsJumping() {
				t.Errorf("contact resolved: y=%v vy=%v jumping=%v", p.Y, p.VY, s.IsJumping())
			}
		})
	}
}

func TestLandingThroughTick(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Collectibles.Chance = 0
	s, w, _ := newTestSession(t, cfg, 1)
	p := s.Player()
	pl := s.Platforms()[0]
	pl.SetPosition(p.X, 100)
	pl.VX = 0
	p.Y, p.VY = 93, 60
	s.isJumping = true

	w.Tick(dt)

	if p.VY != 0 || p.Y != 96 || s.IsJumping() {
		t.Errorf("after tick: y=%v vy=%v jumping=%v, want 96/0/false", p.Y, p.VY, s.IsJumping())
	}
}

func TestCollect(t *testing.T) {
	s, w, sound := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	s.spawnCollectible(50, 50)
	coin := s.Collectibles()[len(s.Collectibles())-1]

	s.Collect(s.Player(), coin)

	if !coin.Destroyed() || contains(s.Collectibles(), coin) {
		t.Error("coin should be destroyed and removed")
	}
	if s.Score() != 1 || w.Score() != 1 {
		t.Errorf("score = %d, display = %d, want 1", s.Score(), w.Score())
	}
	if len(sound.cues) != 1 || sound.cues[0] != engine.CueCoin {
		t.Errorf("cues = %v, want [coin]", sound.cues)
	}

	s.Collect(s.Player(), coin)
	if s.Score() != 1 || len(sound.cues) != 1 {
		t.Error("a destroyed coin must not score twice")
	}
}

func TestCollectLeavesOtherCoinsAlone(t *testing.T) {
	s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	s.spawnCollectible(-25, 40)
	stale := s.Collectibles()[len(s.Collectibles())-1]
	s.spawnCollectible(50, 50)
	coin := s.Collectibles()[len(s.Collectibles())-1]
	before := len(s.Collectibles())

	s.Collect(s.Player(), coin)

	if stale.Destroyed() || !contains(s.Collectibles(), stale) {
		t.Error("collecting one coin must not run off-screen removal on the others")
	}
	if contains(s.Collectibles(), coin) || len(s.Collectibles()) != before-1 {
		t.Errorf("collectibles = %d, want only the collected coin removed from %d", len(s.Collectibles()), before)
	}

	s.Update()
	if !stale.Destroyed() || contains(s.Collectibles(), stale) {
		t.Error("the off-screen coin should go in the next update")
	}
}

func TestCollectThroughTick(t *testing.T) {
	s, w, sound := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	p := s.Player()
	s.spawnCollectible(p.X, p.Y)

	w.Tick(dt)

	if w.Score() != 1 {
		t.Errorf("score = %d, want 1", w.Score())
	}
	if len(sound.cues) != 1 {
		t.Errorf("cues = %d, want 1", len(sound.cues))
	}
	if n := len(w.Sprites(engine.KindFood)); n != len(s.Collectibles()) {
		t.Errorf("world coins = %d, session coins = %d", n, len(s.Collectibles()))
	}
}

func TestFallOffScreenEndsRun(t *testing.T) {
	cfg := config.DefaultPlatformerConfig()
	cfg.Physics.GroundLevel = 200
	s, w, _ := newTestSession(t, cfg, 1)
	p := s.Player()

	p.Y = 120
	s.Update()
	if !s.Started() || w.IsOver() {
		t.Fatal("y == screen height must not end the run")
	}

	p.Y = 121
	s.Update()
	if s.Started() {
		t.Error("session should stop")
	}
	over, won := w.Result()
	if !over || won {
		t.Errorf("result = (%v, %v), want lost", over, won)
	}

	// Nothing happens after the terminal event.
	pl := s.Platforms()[0]
	pl.X = -50
	s.Update()
	if pl.Destroyed() {
		t.Error("update ran after game over")
	}
}

func TestDefaultGroundCatchesPlayer(t *testing.T) {
	s, w, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	p := s.Player()
	p.Y = 121
	s.isJumping = true

	s.Update()

	if p.Y != 120 || s.IsJumping() {
		t.Errorf("y = %v jumping = %v, want clamped to ground", p.Y, s.IsJumping())
	}
	if w.IsOver() {
		t.Error("ground at the screen bottom should catch the player")
	}
}

func TestGroundClampOnlyAtGround(t *testing.T) {
	s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	p := s.Player()
	p.Y, p.VY = 119, 40
	s.isJumping = true

	s.Update()

	if p.Y != 119 || !s.IsJumping() {
		t.Errorf("clamped above ground: y = %v", p.Y)
	}
}

func TestJump(t *testing.T) {
	s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	p := s.Player()

	s.Jump()
	if p.VY != -150 || !s.IsJumping() {
		t.Fatalf("vy = %v jumping = %v, want -150/true", p.VY, s.IsJumping())
	}

	p.VY = 7
	s.Jump()
	if p.VY != 7 {
		t.Errorf("airborne jump changed vy to %v", p.VY)
	}
}

func TestJumpButtonThroughTick(t *testing.T) {
	s, w, _ := newTestSession(t, config.DefaultPlatformerConfig(), 1)
	p := s.Player()

	w.Press(engine.ButtonA)
	w.Tick(dt)

	if !almostEqual(p.VY, -145) {
		t.Errorf("vy = %v, want -145", p.VY)
	}
	if !s.IsJumping() || p.Y >= 120 {
		t.Errorf("player should be rising: y = %v", p.Y)
	}
}

func TestSessionDeterminism(t *testing.T) {
	heights := func(seed int64) []float64 {
		s, _, _ := newTestSession(t, config.DefaultPlatformerConfig(), seed)
		for i := 0; i < 50; i++ {
			s.spawnPlatform(160)
		}
		out := make([]float64, 0, len(s.Platforms())+len(s.Collectibles()))
		for _, pl := range s.Platforms() {
			out = append(out, pl.Y)
		}
		for _, c := range s.Collectibles() {
			out = append(out, c.Y)
		}
		return out
	}

	a, b := heights(99), heights(99)
	if len(a) != len(b) {
		t.Fatalf("runs differ in size: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}
