// Package hooks installs and removes the agent hook entries that call the
// bridge server.
package hooks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Marker tags the hook commands this package owns
const Marker = "village-commander"

// DefaultPort matches the bridge default address
const DefaultPort = 3456

const hookTimeout = 5

// Hook events the installer writes
const (
	EventPromptSubmit = "UserPromptSubmit"
	EventStop         = "Stop"
	EventToolFailure  = "PostToolUseFailure"
)

var installedEvents = []string{EventPromptSubmit, EventStop, EventToolFailure}

// Events that may hold entries written by older versions
var cleanupEvents = []string{EventPromptSubmit, EventStop, "Notification", "PreToolUse", EventToolFailure}

// Installer edits the hook section of a settings JSON file. Unrelated keys
// and hooks are kept.
type Installer struct {
	SettingsPath string
	Port         int
}

// DefaultSettingsPath returns ~/.claude/settings.json
func DefaultSettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".claude", "settings.json"), nil
}

// NewInstaller creates an installer for path on the default port
func NewInstaller(path string) *Installer {
	return &Installer{SettingsPath: path, Port: DefaultPort}
}

// PortFromAddr returns the port the hook server listens on for a host:port
// address. An empty address means DefaultPort; port 0 is rejected since the
// hooks could not know which port gets picked.
func PortFromAddr(addr string) (int, error) {
	if addr == "" {
		return DefaultPort, nil
	}
	_, p, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, fmt.Errorf("failed to parse bridge address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(p)
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("failed to parse bridge address %q: bad port %q", addr, p)
	}
	return port, nil
}

func (i *Installer) port() int {
	if i.Port <= 0 {
		return DefaultPort
	}
	return i.Port
}

// commands returns the hook command for each installed event
func (i *Installer) commands() map[string]string {
	base := fmt.Sprintf("http://localhost:%d", i.port())
	return map[string]string{
		EventPromptSubmit: fmt.Sprintf("curl -s -X POST %s/hook/prompt-submit # %s", base, Marker),
		EventStop:         fmt.Sprintf("curl -s -X POST %s/hook/stop # %s", base, Marker),
		// Piped stdin carries is_interrupt, so this one must run synchronously
		EventToolFailure: fmt.Sprintf(`curl -s -X POST -H "Content-Type: application/json" -d @- %s/hook/tool-failure # %s`, base, Marker),
	}
}

func hookEntry(command string, async bool) map[string]any {
	hook := map[string]any{
		"type":    "command",
		"command": command,
		"timeout": hookTimeout,
	}
	if async {
		hook["async"] = true
	}
	return map[string]any{"hooks": []any{hook}}
}

// Configured reports whether any of the installed events carries our marker
func (i *Installer) Configured() (bool, error) {
	settings, err := i.read()
	if err != nil {
		return false, err
	}
	hooks, _ := settings["hooks"].(map[string]any)
	for _, event := range installedEvents {
		if entries, ok := hooks[event].([]any); ok && containsMarker(entries) {
			return true, nil
		}
	}
	return false, nil
}

// Install merges our hook entries into the settings file, creating it when
// missing. Entries we installed before are replaced, so a port change takes
// effect on reinstall.
func (i *Installer) Install() error {
	settings, err := i.read()
	if err != nil {
		return err
	}

	hooks, ok := settings["hooks"].(map[string]any)
	if !ok {
		if _, exists := settings["hooks"]; exists {
			return errors.New("failed to install hooks: hooks is not an object")
		}
		hooks = make(map[string]any)
		settings["hooks"] = hooks
	}

	commands := i.commands()
	for _, event := range installedEvents {
		entry := hookEntry(commands[event], event != EventToolFailure)
		existing, exists := hooks[event]
		if !exists {
			hooks[event] = []any{entry}
			continue
		}
		entries, ok := existing.([]any)
		if !ok {
			continue
		}
		hooks[event] = append(withoutMarker(entries), entry)
	}

	return i.write(settings)
}

// Remove deletes every hook entry carrying our marker and drops event lists
// left empty. A missing settings file is not an error.
func (i *Installer) Remove() error {
	if _, err := os.Stat(i.SettingsPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	settings, err := i.read()
	if err != nil {
		return err
	}

	hooks, ok := settings["hooks"].(map[string]any)
	if ok {
		for _, event := range cleanupEvents {
			entries, ok := hooks[event].([]any)
			if !ok {
				continue
			}
			hooks[event] = withoutMarker(entries)
		}
		for event, v := range hooks {
			if entries, ok := v.([]any); ok && len(entries) == 0 {
				delete(hooks, event)
			}
		}
	}

	return i.write(settings)
}

func withoutMarker(entries []any) []any {
	kept := make([]any, 0, len(entries))
	for _, entry := range entries {
		if !entryHasMarker(entry) {
			kept = append(kept, entry)
		}
	}
	return kept
}

func containsMarker(entries []any) bool {
	for _, entry := range entries {
		if entryHasMarker(entry) {
			return true
		}
	}
	return false
}

func entryHasMarker(entry any) bool {
	obj, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	inner, ok := obj["hooks"].([]any)
	if !ok {
		return false
	}
	for _, h := range inner {
		hook, ok := h.(map[string]any)
		if !ok {
			continue
		}
		if cmd, ok := hook["command"].(string); ok && strings.Contains(cmd, Marker) {
			return true
		}
	}
	return false
}

// read returns the parsed settings, or an empty object when the file does
// not exist
func (i *Installer) read() (map[string]any, error) {
	data, err := os.ReadFile(i.SettingsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := make(map[string]any)
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

func (i *Installer) write(settings map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(i.SettingsPath), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := os.WriteFile(i.SettingsPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
