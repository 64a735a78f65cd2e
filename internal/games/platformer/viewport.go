package platformer

import (
	"math"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

// viewport maps world pixels onto screen cells. The bottom row is kept
// for the ground line, so the world height maps to the last row.
type viewport struct {
	cols, rows     float64
	worldW, worldH float64
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	return viewport{
		cols:   float64(dst.Width()),
		rows:   float64(dst.Height() - 1),
		worldW: worldW,
		worldH: worldH,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.cols / v.worldW))
}

func (v viewport) row(y float64) int {
	return int(math.Floor(y * v.rows / v.worldH))
}

// rect returns the cells covered by b. Anything visible covers at least
// one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0, x1 := v.col(b.Left()), v.col(b.Right())
	y0, y1 := v.row(b.Top()), v.row(b.Bottom())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func (v viewport) fill(dst *core.Screen, b core.Box, r rune, c core.Color) {
	rect := v.rect(b)
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			dst.SetColored(x, y, r, c)
		}
	}
}
