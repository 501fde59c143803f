package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"birdroyale/game"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// note is one tone in a cue.
type note struct {
	freq float64
	dur  time.Duration
}

// cue is a short sequence of tones played for a game event.
type cue struct {
	notes  []note
	volume float64
}

var cues = map[game.EventKind]cue{
	game.EventHit:     {notes: []note{{220, 60 * time.Millisecond}}, volume: 0.3},
	game.EventPickup:  {notes: []note{{880, 50 * time.Millisecond}, {1320, 70 * time.Millisecond}}, volume: 0.25},
	game.EventKill:    {notes: []note{{440, 60 * time.Millisecond}, {330, 90 * time.Millisecond}}, volume: 0.3},
	game.EventShrink:  {notes: []note{{160, 200 * time.Millisecond}}, volume: 0.35},
	game.EventVictory: {notes: []note{{523, 120 * time.Millisecond}, {659, 120 * time.Millisecond}, {784, 240 * time.Millisecond}}, volume: 0.3},
	game.EventDefeat:  {notes: []note{{392, 160 * time.Millisecond}, {311, 160 * time.Millisecond}, {196, 320 * time.Millisecond}}, volume: 0.3},
}

// HasCue reports whether an event kind makes a sound.
func HasCue(kind game.EventKind) bool {
	_, ok := cues[kind]
	return ok
}

// SoundManager plays event cues through a single mixer. Every method is a
// no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the speaker. Callers treat an error as "run silently".
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
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

// Play queues the cue for an event kind, if it has one.
func (sm *SoundManager) Play(kind game.EventKind) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	c, ok := cues[kind]
	if !ok {
		return
	}
	s, err := c.streamer(sampleRate)
	if err != nil {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func (c cue) streamer(sr beep.SampleRate) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(c.notes))
	for _, n := range c.notes {
		tone, err := generators.SineTone(sr, n.freq)
		if err != nil {
			return nil, err
		}
		parts = append(parts, beep.Take(sr.N(n.dur), tone))
	}
	return newVolume(beep.Seq(parts...), c.volume), nil
}

// math.Log2(0) is -Inf, so zero volume means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
