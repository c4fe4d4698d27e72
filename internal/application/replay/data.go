package replay

import "github.com/younwookim/villager/internal/infrastructure/config"

// EventRecord records one trigger, manual command or site reload applied on
// a frame. Reloads carry the whole villager config so playback does not
// depend on the file at replay time.
type EventRecord struct {
	F       int                    `json:"f"`           // Frame number
	Trigger string                 `json:"t,omitempty"` // External trigger (prompt_submit, stop, interrupt)
	Command string                 `json:"c,omitempty"` // Manual command (gold, wood, return)
	Sites   *config.VillagerConfig `json:"s,omitempty"` // Hot-reloaded site config
}

// Manual command names
const (
	CommandGold   = "gold"
	CommandWood   = "wood"
	CommandReturn = "return"
)

// ReplayData contains all data needed to replay a session. Frames without
// events are not stored; Frames holds the total frame count.
type ReplayData struct {
	Version   string        `json:"version"`
	Initial   string        `json:"initial"` // Router seed: category handed out last
	Stage     string        `json:"stage"`
	StartTime string        `json:"startTime"`
	Frames    int           `json:"frames"`
	Events    []EventRecord `json:"events"`
}

// FormatVersion is written into new recordings
const FormatVersion = "1.0"
