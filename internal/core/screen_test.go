package core

import (
	"strings"
	"testing"
)

func runeAt(s *Screen, x, y int) rune {
	return s.GetCell(x, y).Rune
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(80, 23)
	if s.Width() != 80 || s.Height() != 23 {
		t.Fatalf("size = %dx%d, expected 80x23", s.Width(), s.Height())
	}
	if got := strings.Trim(s.String(), " \n"); got != "" {
		t.Errorf("new screen has content %q", got)
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)
	s.Set(-1, 0, 'x')
	s.SetColored(4, 1, 'x', ColorRed)
	s.DrawText(2, 1, "coin")

	if s.String() != "    \n  co" {
		t.Errorf("String() = %q, expected clipped text", s.String())
	}
	if s.GetCell(9, 9) != blankCell {
		t.Error("out of bounds GetCell should return a blank cell")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(20, 3)
	s.SetColored(1, 2, '●', ColorBrightYellow)
	s.DrawTextColored(2, 0, " Score: 3 ", ColorWhite)
	s.DrawHLine(0, 1, 20, '▀', ColorGreen)

	if c := s.GetCell(1, 2); c.Rune != '●' || c.Color != ColorBrightYellow {
		t.Errorf("coin cell = %+v", c)
	}
	if c := s.GetCell(3, 0); c.Rune != 'S' || c.Color != ColorWhite {
		t.Errorf("HUD cell = %+v", c)
	}
	for x := 0; x < 20; x++ {
		if c := s.GetCell(x, 1); c.Rune != '▀' || c.Color != ColorGreen {
			t.Fatalf("ground cell %d = %+v", x, c)
		}
	}

	s.Clear()
	if s.GetCell(1, 2) != blankCell {
		t.Error("Clear should reset colors as well as runes")
	}
}

func TestScreenDrawMessageBox(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawText(0, 2, "##########")
	r := NewRect(1, 1, 6, 4)
	s.DrawRect(r, ' ')
	s.DrawBox(r)

	want := []string{
		"          ",
		" ┌────┐   ",
		"#│    │###",
		" │    │   ",
		" └────┘   ",
		"          ",
	}
	for y, line := range want {
		if got := s.Row(y); got != line {
			t.Errorf("Row(%d) = %q, expected %q", y, got, line)
		}
	}
	if runeAt(s, 1, 1) != '┌' || runeAt(s, 6, 4) != '┘' {
		t.Error("box corners misplaced")
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, expected a blank row", got)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 4)
	s.DrawText(0, 0, "Score: 12")
	s.DrawText(0, 3, "ground")

	s.Resize(6, 2)
	if s.Row(0) != "Score:" || s.Row(1) != "      " {
		t.Errorf("after shrink rows = %q, %q", s.Row(0), s.Row(1))
	}

	s.Resize(12, 3)
	if !strings.HasPrefix(s.Row(0), "Score:") || strings.Contains(s.String(), "ground") {
		t.Errorf("after grow screen = %q", s.String())
	}
}
