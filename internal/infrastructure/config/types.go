package config

// GameSettings is the root config for game.json
type GameSettings struct {
	Display DisplayConfig `json:"display"`
	Stage   string        `json:"stage"`
	Bridge  BridgeConfig  `json:"bridge"`
	Audio   AudioConfig   `json:"audio"`
}

type DisplayConfig struct {
	Title         string  `json:"title"`
	ScreenWidth   int     `json:"screenWidth"`
	ScreenHeight  int     `json:"screenHeight"`
	Framerate     int     `json:"framerate"`
	Padding       float64 `json:"padding"`       // Fraction of the window the map may fill
	VillagerScale float64 `json:"villagerScale"` // Sprite scale relative to the map scale
}

// BridgeConfig configures the local hook server
type BridgeConfig struct {
	Enabled   bool   `json:"enabled"`
	Addr      string `json:"addr"`
	QueueSize int    `json:"queueSize"` // Pending triggers buffered before drops
}

type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sampleRate"`
	Volume     float64 `json:"volume"`
}

// Defaults applied to zero values after loading
const (
	DefaultFramerate     = 60
	DefaultPadding       = 0.85
	DefaultVillagerScale = 0.5
	DefaultBridgeAddr    = "127.0.0.1:3456"
	DefaultQueueSize     = 32
	DefaultSampleRate    = 44100
	DefaultStage         = "village"
)

func (g *GameSettings) applyDefaults() {
	if g.Display.Framerate <= 0 {
		g.Display.Framerate = DefaultFramerate
	}
	if g.Display.Padding <= 0 || g.Display.Padding > 1 {
		g.Display.Padding = DefaultPadding
	}
	if g.Display.VillagerScale <= 0 {
		g.Display.VillagerScale = DefaultVillagerScale
	}
	if g.Stage == "" {
		g.Stage = DefaultStage
	}
	if g.Bridge.Addr == "" {
		g.Bridge.Addr = DefaultBridgeAddr
	}
	if g.Bridge.QueueSize <= 0 {
		g.Bridge.QueueSize = DefaultQueueSize
	}
	if g.Audio.SampleRate <= 0 {
		g.Audio.SampleRate = DefaultSampleRate
	}
}
