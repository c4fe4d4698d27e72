package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/villager/internal/domain/villager"
	"github.com/younwookim/villager/internal/infrastructure/config"
)

func TestRecorder_RecordsEventsPerFrame(t *testing.T) {
	rec := NewRecorder(villager.Wood, "village")

	rec.RecordTrigger(villager.TriggerPromptSubmit)
	rec.EndFrame()
	rec.EndFrame()
	rec.RecordCommand(CommandReturn)
	rec.RecordTrigger(villager.TriggerStop)
	rec.EndFrame()

	data := rec.Data()
	assert.Equal(t, FormatVersion, data.Version)
	assert.Equal(t, "wood", data.Initial)
	assert.Equal(t, "village", data.Stage)
	assert.Equal(t, 3, data.Frames)
	assert.Equal(t, []EventRecord{
		{F: 0, Trigger: "prompt_submit"},
		{F: 2, Command: "return"},
		{F: 2, Trigger: "stop"},
	}, data.Events)
	assert.Equal(t, 3, rec.EventCount())
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder(villager.Gold, "village")
	rec.EndFrame()
	rec.Stop()

	rec.RecordTrigger(villager.TriggerStop)
	rec.EndFrame()

	assert.False(t, rec.IsRecording())
	assert.Equal(t, 1, rec.FrameCount())
	assert.Zero(t, rec.EventCount())
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder(villager.Gold, "village")

	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorContains(t, err, "no frames")
}

func TestRecorderAndReplayer(t *testing.T) {
	rec := NewRecorder(villager.Gold, "village")
	for i := 0; i < 5; i++ {
		if i == 1 {
			rec.RecordTrigger(villager.TriggerPromptSubmit)
		}
		if i == 3 {
			rec.RecordCommand(CommandGold)
		}
		rec.EndFrame()
	}

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)

	r := NewReplayer(*data)
	assert.Equal(t, 5, r.TotalFrames())
	assert.Equal(t, villager.Gold, r.Initial())

	var perFrame [][]EventRecord
	for {
		events, ok := r.NextFrame()
		if !ok {
			break
		}
		perFrame = append(perFrame, events)
	}

	require.Len(t, perFrame, 5)
	assert.Empty(t, perFrame[0])
	assert.Equal(t, []EventRecord{{F: 1, Trigger: "prompt_submit"}}, perFrame[1])
	assert.Empty(t, perFrame[2])
	assert.Equal(t, []EventRecord{{F: 3, Command: "gold"}}, perFrame[3])
	assert.Equal(t, 5, r.CurrentFrame())
}

func TestRecorder_SitesSurviveSave(t *testing.T) {
	rec := NewRecorder(villager.Wood, "village")
	cfg := &config.VillagerConfig{
		Home: config.PointConfig{X: 0, Y: -100},
		Sites: []config.SiteConfig{
			{ID: "mine21", Category: "gold", WorkFacing: "left", Waypoints: []config.PointConfig{{X: -200, Y: 40}}},
		},
	}
	rec.RecordSites(nil)
	rec.RecordSites(cfg)
	rec.EndFrame()

	path := filepath.Join(t.TempDir(), "sites.json")
	require.NoError(t, rec.Save(path))
	data, err := LoadReplay(path)
	require.NoError(t, err)

	require.Len(t, data.Events, 1)
	assert.Equal(t, cfg, data.Events[0].Sites)
	assert.Empty(t, data.Events[0].Trigger)
}

func TestReplayer_Reset(t *testing.T) {
	r := NewReplayer(ReplayData{
		Frames: 2,
		Events: []EventRecord{{F: 0, Trigger: "stop"}},
	})

	events, ok := r.NextFrame()
	require.True(t, ok)
	assert.Len(t, events, 1)
	r.NextFrame()
	_, ok = r.NextFrame()
	assert.False(t, ok)

	r.Reset()
	assert.Equal(t, 0, r.CurrentFrame())
	events, ok = r.NextFrame()
	assert.True(t, ok)
	assert.Len(t, events, 1)
}

func TestReplayer_UnknownInitial(t *testing.T) {
	r := NewReplayer(ReplayData{Initial: "stone"})
	assert.Equal(t, villager.CategoryNone, r.Initial())
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open file")

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadReplay(path)
	assert.ErrorContains(t, err, "failed to decode replay")
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, name)
}
