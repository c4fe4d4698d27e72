package audio

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/villager/internal/domain/villager"
)

const testRate = beep.SampleRate(44100)

type fakeSink struct {
	played []beep.Streamer
}

func (f *fakeSink) Play(s beep.Streamer) {
	f.played = append(f.played, s)
}

// countSamples drains s and returns how many samples it produced
func countSamples(t *testing.T, s beep.Streamer) (int, [][2]float64) {
	t.Helper()
	var all [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		all = append(all, buf[:n]...)
		if !ok {
			break
		}
	}
	require.NoError(t, s.Err())
	return len(all), all
}

func TestCueFor(t *testing.T) {
	tests := []struct {
		from, to villager.BehaviorState
		want     Cue
	}{
		{villager.StateIdle, villager.StateWalkingToMine, CueDepart},
		{villager.StateIdle, villager.StateWalkingToTree, CueDepart},
		{villager.StateWalkingToMine, villager.StateMining, CueMine},
		{villager.StateWalkingToTree, villager.StateChopping, CueChop},
		{villager.StateMining, villager.StateReturningGold, CueNone},
		{villager.StateReturningWood, villager.StateIdle, CueHome},
		{villager.StateReturningGold, villager.StateWalkingToTree, CueNone},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, CueFor(tt.from, tt.to))
		})
	}
}

func TestNewCue_Length(t *testing.T) {
	for _, c := range []Cue{CueDepart, CueMine, CueChop, CueHome} {
		t.Run(c.String(), func(t *testing.T) {
			s, err := NewCue(c, testRate, 0.5)
			require.NoError(t, err)

			n, samples := countSamples(t, s)

			want := 0
			for _, nt := range cueNotes[c] {
				want += testRate.N(nt.duration)
			}
			assert.Equal(t, want, n)
			for _, smp := range samples {
				assert.LessOrEqual(t, smp[0], 1.0)
				assert.GreaterOrEqual(t, smp[0], -1.0)
			}
		})
	}
}

func TestNewCue_Silent(t *testing.T) {
	s, err := NewCue(CueChop, testRate, 0)
	require.NoError(t, err)

	_, samples := countSamples(t, s)
	for _, smp := range samples {
		assert.Zero(t, smp[0])
	}
}

func TestNewCue_Unknown(t *testing.T) {
	_, err := NewCue(CueNone, testRate, 1)
	assert.ErrorContains(t, err, "unknown cue")
}

func TestCueDuration(t *testing.T) {
	assert.Equal(t, 240*time.Millisecond, CueDuration(CueHome))
	assert.Zero(t, CueDuration(CueNone))
}

func TestCuePlayer_OnTransition(t *testing.T) {
	sink := &fakeSink{}
	var logs bytes.Buffer
	p := NewCuePlayer(sink, testRate, 0.3, log.New(&logs, "", 0))

	p.OnTransition(villager.StateIdle, villager.StateWalkingToMine)
	p.OnTransition(villager.StateMining, villager.StateReturningGold)
	p.OnTransition(villager.StateReturningGold, villager.StateIdle)

	assert.Len(t, sink.played, 2, "silent transitions play nothing")
	assert.Empty(t, logs.String())
}

func TestCuePlayer_WithController(t *testing.T) {
	sink := &fakeSink{}
	p := NewCuePlayer(sink, testRate, 0.3, nil)
	ctrl := villager.NewController(villager.Config{})
	ctrl.OnTransition = p.OnTransition

	ctrl.Dispatch(villager.Wood)
	for i := 0; i < 10000 && ctrl.State() != villager.StateIdle; i++ {
		ctrl.Advance(1.0/60.0, 1)
		if ctrl.State().IsWorking() {
			ctrl.ReturnHome()
		}
	}

	require.Equal(t, villager.StateIdle, ctrl.State())
	assert.Len(t, sink.played, 3, "depart, chop and home")
}
