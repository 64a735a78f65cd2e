// Package audio plays the platformer's sound cues through the speaker.
// Every operation is safe without an audio device: if the speaker fails to
// initialize, cues are silently dropped.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-platformer/internal/engine"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager mixes cue streams onto the speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a sound manager. Call Initialize before use.
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Play implements engine.SoundPlayer.
func (sm *SoundManager) Play(cue engine.Cue) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	streamer := cueStreamer(cue)
	if streamer == nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// cueStreamer builds a fresh finite streamer for a cue.
func cueStreamer(cue engine.Cue) beep.Streamer {
	switch cue {
	case engine.CueCoin:
		g := NewChimeGenerator(sampleRate)
		return beep.Take(g.Len(), g)
	default:
		return nil
	}
}

// Silent is a SoundPlayer that drops every cue. Used for SSH sessions and
// headless simulation.
type Silent struct{}

// Play implements engine.SoundPlayer.
func (Silent) Play(engine.Cue) {}

var (
	_ engine.SoundPlayer = (*SoundManager)(nil)
	_ engine.SoundPlayer = Silent{}
)
