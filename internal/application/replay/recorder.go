package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/villager/internal/domain/villager"
	"github.com/younwookim/villager/internal/infrastructure/config"
)

// Recorder handles trigger recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder. initial is the router seed so the
// replay hands out categories in the same order.
func NewRecorder(initial villager.Category, stage string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   FormatVersion,
			Initial:   initial.String(),
			Stage:     stage,
			StartTime: time.Now().Format(time.RFC3339),
			Events:    make([]EventRecord, 0, 64),
		},
		recording: true,
	}
}

// RecordTrigger records an external trigger on the current frame
func (r *Recorder) RecordTrigger(t villager.Trigger) {
	if !r.recording {
		return
	}
	r.data.Events = append(r.data.Events, EventRecord{F: r.frame, Trigger: string(t)})
}

// RecordCommand records a manual command on the current frame
func (r *Recorder) RecordCommand(cmd string) {
	if !r.recording {
		return
	}
	r.data.Events = append(r.data.Events, EventRecord{F: r.frame, Command: cmd})
}

// RecordSites records a site config swap on the current frame
func (r *Recorder) RecordSites(cfg *config.VillagerConfig) {
	if !r.recording || cfg == nil {
		return
	}
	r.data.Events = append(r.data.Events, EventRecord{F: r.frame, Sites: cfg})
}

// EndFrame closes the current frame
func (r *Recorder) EndFrame() {
	if !r.recording {
		return
	}
	r.frame++
	r.data.Frames = r.frame
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if r.data.Frames == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return r.data.Frames
}

// EventCount returns the number of recorded events
func (r *Recorder) EventCount() int {
	return len(r.data.Events)
}

// Data returns the replay data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
