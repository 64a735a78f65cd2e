package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// LandOnPlatform resolves a player/platform overlap. Only a fall onto the
// platform from above counts; side and underside contacts pass through.
func (s *Session) LandOnPlatform(player, platform *engine.Sprite) {
	if !s.started {
		return
	}
	if player.VY > 0 && player.Y < platform.Y {
		player.VY = 0
		player.Y = platform.Y - player.H/2
		s.isJumping = false
	}
}

// Collect picks up a coin: it disappears, the score goes up by one and the
// coin cue plays.
func (s *Session) Collect(_, coin *engine.Sprite) {
	if !s.started || coin.Destroyed() {
		return
	}
	coin.Destroy()
	s.collectibles = removeSprite(s.collectibles, coin)

	s.score++
	s.eng.ChangeScoreBy(1)
	s.eng.PlaySound(engine.CueCoin)
}
