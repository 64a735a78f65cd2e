package platformer

import (
	"github.com/vovakirdan/tui-platformer/internal/engine"
)

// spawnPlatform creates a platform at x with a random height and, by
// chance, a coin hovering above it.
func (s *Session) spawnPlatform(x float64) {
	pc := s.cfg.Platforms
	y := float64(pc.MinY + s.rng.Intn(pc.MaxY-pc.MinY))

	p := s.eng.CreateSprite(engine.KindPlatform, pc.Width, pc.Height)
	p.SetPosition(x, y)
	p.VX = -s.cfg.Physics.ScrollSpeed
	s.platforms = append(s.platforms, p)

	withCoin := s.rng.Float64() < s.cfg.Collectibles.Chance
	if withCoin {
		s.spawnCollectible(x, y-s.cfg.Collectibles.Offset)
	}

	s.logger.Debug("platform spawned", "id", p.ID(), "x", x, "y", y, "coin", withCoin)
}

// spawnCollectible creates a coin at (x, y) drifting with the platforms.
func (s *Session) spawnCollectible(x, y float64) {
	cc := s.cfg.Collectibles
	c := s.eng.CreateSprite(engine.KindFood, cc.Width, cc.Height)
	c.SetPosition(x, y)
	c.VX = -s.cfg.Physics.ScrollSpeed
	s.collectibles = append(s.collectibles, c)
}

// despawn destroys sprites that scrolled past the left edge (or were
// already destroyed) and returns the retained ones in order.
func (s *Session) despawn(sprites []*engine.Sprite) []*engine.Sprite {
	kept := sprites[:0]
	for _, sp := range sprites {
		if sp.Destroyed() {
			continue
		}
		if sp.X < s.cfg.Platforms.DespawnX {
			sp.Destroy()
			continue
		}
		kept = append(kept, sp)
	}
	for i := len(kept); i < len(sprites); i++ {
		sprites[i] = nil
	}
	return kept
}

// removeSprite drops sp from sprites, keeping the order of the rest.
func removeSprite(sprites []*engine.Sprite, sp *engine.Sprite) []*engine.Sprite {
	for i, other := range sprites {
		if other == sp {
			copy(sprites[i:], sprites[i+1:])
			sprites[len(sprites)-1] = nil
			return sprites[:len(sprites)-1]
		}
	}
	return sprites
}
