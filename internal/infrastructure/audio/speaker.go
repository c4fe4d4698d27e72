package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SpeakerSink plays through the system audio device
type SpeakerSink struct{}

// NewSpeakerSink initializes the speaker with a 100ms buffer
func NewSpeakerSink(rate beep.SampleRate) (*SpeakerSink, error) {
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	return &SpeakerSink{}, nil
}

// Play queues s on the speaker mixer
func (SpeakerSink) Play(s beep.Streamer) {
	speaker.Play(s)
}

// Close stops playback and releases the device
func (SpeakerSink) Close() {
	speaker.Clear()
	speaker.Close()
}
