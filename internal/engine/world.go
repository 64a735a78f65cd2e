package engine

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// DefaultMaxVelocity caps each velocity component, in pixels per second.
const DefaultMaxVelocity = 500

// collisionCell is the side of a collision space cell in pixels.
const collisionCell = 8

// Button identifies a controller button.
type Button int

const (
	ButtonA Button = iota
)

// Cue identifies a sound effect.
type Cue int

const (
	CueCoin Cue = iota // two-tone pickup chime
)

// SoundPlayer plays sound cues. Implementations must not block.
type SoundPlayer interface {
	Play(cue Cue)
}

// OverlapFunc receives the two overlapping sprites in registration order.
type OverlapFunc func(a, b *Sprite)

type overlapHandler struct {
	a, b Kind
	fn   OverlapFunc
}

type driver struct {
	sprite *Sprite
	vx, vy float64
}

// World owns all sprites of one scene and advances them in fixed ticks.
// It is not safe for concurrent use; callbacks run on the caller of Tick.
type World struct {
	width, height float64
	maxVelocity   float64

	// space indexes sprite boxes for overlap queries. It extends one screen
	// size past every edge, offset by margin; sprites outside it never overlap.
	space  *resolv.Space
	margin float64

	sprites []*Sprite
	nextID  int

	updates  []func()
	buttons  map[Button][]func()
	pending  []Button
	overlaps []overlapHandler
	drivers  []driver

	score      int
	background core.Color
	sound      SoundPlayer

	over bool
	won  bool
}

// NewWorld creates an empty world with the given visible size.
// A nil sound player silences all cues.
func NewWorld(width, height float64, sound SoundPlayer) *World {
	margin := math.Max(width, height)
	return &World{
		width:       width,
		height:      height,
		maxVelocity: DefaultMaxVelocity,
		space: resolv.NewSpace(
			int(width+2*margin), int(height+2*margin),
			collisionCell, collisionCell,
		),
		margin:  margin,
		sprites: make([]*Sprite, 0, 16),
		buttons: make(map[Button][]func()),
		sound:   sound,
	}
}

// Size returns the visible world size.
func (w *World) Size() (width, height float64) {
	return w.width, w.height
}

// SetMaxVelocity sets the per-axis speed cap applied after acceleration.
// Non-positive values restore DefaultMaxVelocity.
func (w *World) SetMaxVelocity(v float64) {
	if v <= 0 {
		v = DefaultMaxVelocity
	}
	w.maxVelocity = v
}

// CreateSprite adds a new sprite of the given kind and size at the origin.
func (w *World) CreateSprite(kind Kind, width, height float64) *Sprite {
	w.nextID++
	s := &Sprite{
		W:    width,
		H:    height,
		id:   w.nextID,
		kind: kind,
	}

	// Synced with the sprite's position before each overlap pass.
	s.obj = resolv.NewObject(w.margin-width/2, w.margin-height/2, width, height, kind.String())
	s.obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	s.obj.Data = s
	w.space.Add(s.obj)

	w.sprites = append(w.sprites, s)
	return s
}

// Sprites returns the live sprites of the given kind in creation order.
func (w *World) Sprites(kind Kind) []*Sprite {
	var out []*Sprite
	for _, s := range w.sprites {
		if s.kind == kind && !s.destroyed {
			out = append(out, s)
		}
	}
	return out
}

// OnUpdate registers a callback invoked once per tick.
func (w *World) OnUpdate(fn func()) {
	w.updates = append(w.updates, fn)
}

// OnButton registers a press handler for a button.
func (w *World) OnButton(b Button, fn func()) {
	w.buttons[b] = append(w.buttons[b], fn)
}

// Press records a button press. Handlers run at the start of the next tick.
func (w *World) Press(b Button) {
	if w.over {
		return
	}
	w.pending = append(w.pending, b)
}

// OnOverlap registers a callback for overlapping pairs of kinds a and b.
func (w *World) OnOverlap(a, b Kind, fn OverlapFunc) {
	w.overlaps = append(w.overlaps, overlapHandler{a: a, b: b, fn: fn})
}

// Drive moves a sprite continuously at the given velocity, as if the
// controller were held. A zero component leaves that axis to physics.
// Driven sprites stay inside the screen horizontally.
func (w *World) Drive(s *Sprite, vx, vy float64) {
	s.StayInScreen = true
	w.drivers = append(w.drivers, driver{sprite: s, vx: vx, vy: vy})
}

// SetScore sets the score display to an absolute value.
func (w *World) SetScore(v int) {
	w.score = v
}

// ChangeScoreBy adds delta to the score display.
func (w *World) ChangeScoreBy(delta int) {
	w.score += delta
}

// Score returns the displayed score.
func (w *World) Score() int {
	return w.score
}

// SetBackground sets the scene background color.
func (w *World) SetBackground(c core.Color) {
	w.background = c
}

// Background returns the scene background color.
func (w *World) Background() core.Color {
	return w.background
}

// PlaySound plays a cue on the configured sound player.
func (w *World) PlaySound(cue Cue) {
	if w.sound != nil {
		w.sound.Play(cue)
	}
}

// Over ends the scene. Further ticks and presses are ignored.
func (w *World) Over(win bool) {
	if w.over {
		return
	}
	w.over = true
	w.won = win
}

// IsOver reports whether the scene has ended.
func (w *World) IsOver() bool {
	return w.over
}

// Result reports whether the scene has ended and, if so, whether it was won.
func (w *World) Result() (over, won bool) {
	return w.over, w.won
}

// Tick advances the world by dt seconds: queued presses, motion, overlap
// events, update callbacks, then removal of destroyed sprites.
func (w *World) Tick(dt float64) {
	if w.over {
		return
	}

	pending := w.pending
	w.pending = nil
	for _, b := range pending {
		for _, fn := range w.buttons[b] {
			fn()
			if w.over {
				w.sweep()
				return
			}
		}
	}

	w.move(dt)

	w.dispatchOverlaps()
	if w.over {
		w.sweep()
		return
	}

	for _, fn := range w.updates {
		fn()
		if w.over {
			break
		}
	}

	w.sweep()
}

// move applies controller drive and integrates velocity and position.
func (w *World) move(dt float64) {
	for _, d := range w.drivers {
		if d.sprite.destroyed {
			continue
		}
		if d.vx != 0 {
			d.sprite.VX = d.vx
		}
		if d.vy != 0 {
			d.sprite.VY = d.vy
		}
	}

	for _, s := range w.sprites {
		if s.destroyed {
			continue
		}
		s.VX = core.ClampF(s.VX+s.AX*dt, -w.maxVelocity, w.maxVelocity)
		s.VY = core.ClampF(s.VY+s.AY*dt, -w.maxVelocity, w.maxVelocity)
		s.X += s.VX * dt
		s.Y += s.VY * dt

		if s.StayInScreen {
			s.X = core.ClampF(s.X, s.W/2, w.width-s.W/2)
		}
	}
}

// place syncs the sprite's collision object with its current box.
func (w *World) place(s *Sprite) {
	s.obj.X = s.X - s.W/2 + w.margin
	s.obj.Y = s.Y - s.H/2 + w.margin
	s.obj.Update()
}

// dispatchOverlaps calls every overlap handler once per overlapping pair.
// Candidates come from the collision space by kind tag; sprites destroyed
// by an earlier callback are skipped. Boxes that share an edge overlap.
func (w *World) dispatchOverlaps() {
	snapshot := make([]*Sprite, len(w.sprites))
	copy(snapshot, w.sprites)
	for _, s := range snapshot {
		if !s.destroyed {
			w.place(s)
		}
	}

	for _, h := range w.overlaps {
		tag := h.b.String()
		for _, a := range snapshot {
			if a.kind != h.a || a.destroyed {
				continue
			}
			// Earlier callbacks may have repositioned a.
			w.place(a)
			col := a.obj.Check(0, 0, tag)
			if col == nil {
				continue
			}
			seen := make(map[*Sprite]bool)
			for _, o := range col.ObjectsByTags(tag) {
				b, ok := o.Data.(*Sprite)
				if !ok || b == a || seen[b] || b.destroyed || a.destroyed {
					continue
				}
				seen[b] = true
				w.place(b)
				if a.obj.Overlaps(b.obj) {
					h.fn(a, b)
					if w.over {
						return
					}
				}
			}
		}
	}
}

// sweep drops destroyed sprites and their drivers.
func (w *World) sweep() {
	live := w.sprites[:0]
	for _, s := range w.sprites {
		if !s.destroyed {
			live = append(live, s)
			continue
		}
		w.space.Remove(s.obj)
	}
	for i := len(live); i < len(w.sprites); i++ {
		w.sprites[i] = nil
	}
	w.sprites = live

	drivers := w.drivers[:0]
	for _, d := range w.drivers {
		if !d.sprite.destroyed {
			drivers = append(drivers, d)
		}
	}
	w.drivers = drivers
}
