package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// ChimeGenerator produces a two-note "ba-ding": a short low note followed by
// a longer high note, each with a decaying envelope.
type ChimeGenerator struct {
	sr     beep.SampleRate
	pos    int
	split  int // sample index where the second note starts
	length int
	low    float64
	high   float64
}

// NewChimeGenerator creates a chime generator for the given sample rate.
func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{
		sr:     sr,
		split:  sr.N(70 * time.Millisecond),
		length: sr.N(320 * time.Millisecond),
		low:    988,  // B5
		high:   1319, // E6
	}
}

// Len returns the chime length in samples.
func (g *ChimeGenerator) Len() int {
	return g.length
}

// Stream fills samples with the next stretch of the chime, the same value on
// both channels. It reports false once the whole chime has been played.
func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.length {
			return i, true
		}
		sample := g.sampleAt(g.pos)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

// Err always returns nil; generating samples cannot fail.
func (g *ChimeGenerator) Err() error {
	return nil
}

func (g *ChimeGenerator) sampleAt(pos int) float64 {
	freq := g.low
	start := 0
	if pos >= g.split {
		freq = g.high
		start = g.split
	}
	t := float64(pos-start) / float64(g.sr)
	envelope := math.Exp(-t * 14)
	// square-ish tone: fundamental plus a quiet third harmonic
	tone := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*3*freq*t)
	return 0.18 * envelope * tone
}
