package tui

import (
	"path/filepath"
	"testing"

	"github.com/rootlab/vidscore/internal/config"
	"github.com/rootlab/vidscore/internal/keybinds"
	"github.com/rootlab/vidscore/internal/project"
)

// CreateTestModel creates a Model instance for testing with minimal dependencies
func CreateTestModel(t *testing.T) *Model {
	t.Helper()

	// Redirect keybind persistence into the test directory
	tempDir := t.TempDir()
	originalKeybinds := config.KeybindsFile
	config.KeybindsFile = filepath.Join(tempDir, "keybinds.json")
	t.Cleanup(func() {
		config.KeybindsFile = originalKeybinds
	})

	proj := project.NewProject("test-project", "test.mp4", 3000, 30, project.ScoringOnsetOffset)

	m := New(Options{
		Project:  proj,
		Settings: project.DefaultSettings(),
		Registry: keybinds.NewDefaultRegistry(),
		Version:  "test-version",
	})
	m.width = 120
	m.height = 40
	return m
}
