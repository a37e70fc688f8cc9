package keybinds

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Config represents the user's keybinding configuration: action identifier to
// chord, e.g. {"redo": "Ctrl+Shift+Z"}. Actions absent from the file keep
// their default chord; an empty chord string unbinds the action.
type Config struct {
	Version  string            `json:"version"`
	Bindings map[string]string `json:"bindings"`
}

// LoadConfig loads keybinding configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid keybinds.json format: %w", err)
	}

	return &config, nil
}

// SaveConfig saves keybinding configuration to a JSON file
func SaveConfig(config *Config, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyConfig applies user configuration to a registry. User bindings
// override default bindings. The config must already be validated; this
// returns an error only on malformed entries so a bad file never half-applies
// silently.
func ApplyConfig(registry *Registry, config *Config) error {
	for actionStr, chordStr := range config.Bindings {
		action, known := ActionFromString(actionStr)
		if !known {
			return fmt.Errorf("unknown action %q in keybinds config", actionStr)
		}

		if strings.TrimSpace(chordStr) == "" {
			registry.Unbind(action)
			continue
		}

		chord, err := ParseChord(chordStr)
		if err != nil {
			return fmt.Errorf("bad chord for %s: %w", action, err)
		}

		if _, err := registry.RebindEvict(action, chord); err != nil {
			return err
		}
	}

	return nil
}

// LoadOrDefault loads user config if it exists, otherwise returns default registry
func LoadOrDefault(configPath string) (*Registry, error) {
	// Start with defaults
	registry := NewDefaultRegistry()

	// Try to load user config
	if _, err := os.Stat(configPath); err == nil {
		config, err := LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load keybinds.json: %w", err)
		}

		if result := NewValidator().ValidateConfig(config); result.HasErrors() {
			return nil, fmt.Errorf("invalid keybinds config:\n%s", result.String())
		}

		// Apply user config over defaults
		if err := ApplyConfig(registry, config); err != nil {
			return nil, fmt.Errorf("failed to apply keybinds config: %w", err)
		}
	}
	// If config doesn't exist, that's fine - use defaults

	return registry, nil
}

// ExportConfig captures the registry's current bindings as a config, using
// the display spelling for chords.
func ExportConfig(registry *Registry) *Config {
	config := &Config{
		Version:  "1.0",
		Bindings: make(map[string]string),
	}
	for _, b := range registry.Bindings() {
		config.Bindings[string(b.Action)] = b.Chord.Label()
	}
	return config
}

// SaveRegistry persists the registry's current bindings to a JSON file.
// Called after every successful rebind so bindings survive restarts.
func SaveRegistry(registry *Registry, path string) error {
	return SaveConfig(ExportConfig(registry), path)
}
