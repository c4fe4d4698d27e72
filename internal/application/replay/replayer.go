package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/villager/internal/domain/villager"
)

// Replayer handles event playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
	next  int // index of the next unread event
}

// NewReplayer creates a new replayer from replay data. Events are expected
// in frame order, as the recorder writes them.
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// NextFrame returns the events of the current frame and advances. ok is
// false once every recorded frame has been played.
func (r *Replayer) NextFrame() (events []EventRecord, ok bool) {
	if r.frame >= r.data.Frames {
		return nil, false
	}

	for r.next < len(r.data.Events) && r.data.Events[r.next].F <= r.frame {
		events = append(events, r.data.Events[r.next])
		r.next++
	}
	r.frame++
	return events, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return r.data.Frames
}

// Initial returns the router seed the session was recorded with
func (r *Replayer) Initial() villager.Category {
	cat, ok := villager.ParseCategory(r.data.Initial)
	if !ok {
		return villager.CategoryNone
	}
	return cat
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
	r.next = 0
}
