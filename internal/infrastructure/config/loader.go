package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Config file names relative to the loader root
const (
	GameFile     = "game.json"
	VillagerFile = "villager.yaml"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Settings *GameSettings
	Stage    *StageConfig
	Villager *VillagerConfig
}

// Loader loads configuration files using the fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// Dir returns the directory the loader reads from. Loaders built over an
// embedded filesystem return the logical base path, which cannot be watched.
func (l *Loader) Dir() string {
	return l.basePath
}

// LoadGame loads game.json and fills defaults for missing values
func (l *Loader) LoadGame() (*GameSettings, error) {
	data, err := fs.ReadFile(l.fsys, GameFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", GameFile, err)
	}

	var cfg GameSettings
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", GameFile, err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	path := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}

	return &cfg, nil
}

// LoadVillager loads villager.yaml
func (l *Loader) LoadVillager() (*VillagerConfig, error) {
	data, err := fs.ReadFile(l.fsys, VillagerFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", VillagerFile, err)
	}

	var cfg VillagerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", VillagerFile, err)
	}

	return &cfg, nil
}

// LoadAll loads game.json, the stage it names and villager.yaml
func (l *Loader) LoadAll() (*GameConfig, error) {
	settings, err := l.LoadGame()
	if err != nil {
		return nil, err
	}

	stage, err := l.LoadStage(settings.Stage)
	if err != nil {
		return nil, err
	}

	villager, err := l.LoadVillager()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Settings: settings,
		Stage:    stage,
		Villager: villager,
	}, nil
}
