// Package engine is a small sprite engine: sprites with velocity and
// acceleration, per-tick update callbacks, edge-triggered buttons, overlap
// events between sprite kinds, a score display and a terminal game-over
// transition. Games hold handles to sprites and mutate them directly.
package engine

import (
	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// Kind categorizes sprites for overlap registration.
type Kind int

const (
	KindPlayer Kind = iota
	KindPlatform
	KindFood
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindPlatform:
		return "platform"
	case KindFood:
		return "food"
	default:
		return "unknown"
	}
}

// Sprite is a positioned, velocity-bearing entity owned by a World.
// X and Y address the sprite's center.
type Sprite struct {
	X, Y   float64
	VX, VY float64
	AX, AY float64
	W, H   float64

	// StayInScreen keeps the sprite horizontally inside the world bounds.
	StayInScreen bool

	id        int
	kind      Kind
	destroyed bool

	// obj mirrors the sprite's box in the world's collision space.
	obj *resolv.Object
}

// ID returns the world-unique sprite identifier.
func (s *Sprite) ID() int {
	return s.id
}

// SetPosition moves the sprite's center to (x, y).
func (s *Sprite) SetPosition(x, y float64) {
	s.X = x
	s.Y = y
}

// Destroy removes the sprite from play. The world drops it at the end of
// the current tick; until then it is skipped by motion and overlaps.
func (s *Sprite) Destroy() {
	s.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (s *Sprite) Destroyed() bool {
	return s.destroyed
}

// Box returns the sprite's bounding box.
func (s *Sprite) Box() core.Box {
	return core.Box{X: s.X, Y: s.Y, W: s.W, H: s.H}
}
