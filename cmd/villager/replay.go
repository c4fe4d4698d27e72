package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/younwookim/villager/internal/application/replay"
	"github.com/younwookim/villager/internal/application/session"
	"github.com/younwookim/villager/internal/application/system"
	"github.com/younwookim/villager/internal/domain/villager"
	"github.com/younwookim/villager/internal/infrastructure/config"
)

// replayResult is printed after a headless replay
type replayResult struct {
	Frames   int               `json:"frames"`
	Events   int               `json:"events"`
	Snapshot villager.Snapshot `json:"snapshot"`
}

// runReplay plays a recorded trigger log through a fresh controller at the
// configured tick rate and writes the final state to w as JSON
func runReplay(cfg *config.GameConfig, filename string, w io.Writer) error {
	data, err := replay.LoadReplay(filename)
	if err != nil {
		return err
	}

	ctrlCfg, err := system.ControllerConfig(cfg.Villager)
	if err != nil {
		return fmt.Errorf("failed to build sites: %w", err)
	}

	replayer := replay.NewReplayer(*data)
	sess := session.New(villager.NewController(ctrlCfg), system.NewTriggerRouter(replayer.Initial()))

	dt := 1.0 / float64(cfg.Settings.Display.Framerate)
	snap := session.Play(sess, replayer, dt)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(replayResult{Frames: sess.Frame(), Events: len(data.Events), Snapshot: snap}); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
