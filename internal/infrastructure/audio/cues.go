// Package audio plays short synthesized cues on villager state changes.
package audio

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/younwookim/villager/internal/domain/villager"
)

// Cue identifies a sound effect
type Cue int

const (
	CueNone Cue = iota
	// CueDepart plays when the villager leaves home
	CueDepart
	// CueMine is a pickaxe strike on arrival at a mine
	CueMine
	// CueChop is an axe strike on arrival at a tree
	CueChop
	// CueHome is a two-note chime on returning home
	CueHome
)

// String returns the cue name
func (c Cue) String() string {
	switch c {
	case CueDepart:
		return "depart"
	case CueMine:
		return "mine"
	case CueChop:
		return "chop"
	case CueHome:
		return "home"
	default:
		return "none"
	}
}

// CueFor returns the cue for a state change, CueNone when it is silent
func CueFor(from, to villager.BehaviorState) Cue {
	switch {
	case from == villager.StateIdle && to.IsWalking():
		return CueDepart
	case to == villager.StateMining:
		return CueMine
	case to == villager.StateChopping:
		return CueChop
	case from.IsReturning() && to == villager.StateIdle:
		return CueHome
	default:
		return CueNone
	}
}

// note is one tone of a cue
type note struct {
	freq     float64
	duration time.Duration
}

var cueNotes = map[Cue][]note{
	CueDepart: {{freq: 523.25, duration: 60 * time.Millisecond}},
	CueMine:   {{freq: 1318.51, duration: 40 * time.Millisecond}, {freq: 987.77, duration: 60 * time.Millisecond}},
	CueChop:   {{freq: 196, duration: 80 * time.Millisecond}},
	CueHome:   {{freq: 987.77, duration: 80 * time.Millisecond}, {freq: 1318.51, duration: 160 * time.Millisecond}},
}

// CueDuration returns the total length of a cue
func CueDuration(c Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[c] {
		d += n.duration
	}
	return d
}

// NewCue builds the streamer for c at rate and volume (0..1)
func NewCue(c Cue, rate beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes, ok := cueNotes[c]
	if !ok {
		return nil, fmt.Errorf("unknown cue %v", c)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		sine, err := generators.SineTone(rate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s tone: %w", c, err)
		}
		parts = append(parts, beep.Take(rate.N(n.duration), sine))
	}
	return newVolume(beep.Seq(parts...), volume), nil
}

// math.Log2(0) is -Inf, so zero volume is rendered silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Sink plays streamers
type Sink interface {
	Play(s beep.Streamer)
}

// CuePlayer turns state changes into cues
type CuePlayer struct {
	sink   Sink
	rate   beep.SampleRate
	volume float64
	logger *log.Logger
}

// NewCuePlayer creates a player writing to sink. A nil logger uses log.Default.
func NewCuePlayer(sink Sink, rate beep.SampleRate, volume float64, logger *log.Logger) *CuePlayer {
	if logger == nil {
		logger = log.Default()
	}
	return &CuePlayer{sink: sink, rate: rate, volume: volume, logger: logger}
}

// OnTransition plays the cue for a state change. Its signature matches the
// session transition listener.
func (p *CuePlayer) OnTransition(from, to villager.BehaviorState) {
	p.Play(CueFor(from, to))
}

// Play plays c; CueNone is ignored
func (p *CuePlayer) Play(c Cue) {
	if c == CueNone {
		return
	}
	s, err := NewCue(c, p.rate, p.volume)
	if err != nil {
		p.logger.Printf("Failed to play cue: %v", err)
		return
	}
	p.sink.Play(s)
}
