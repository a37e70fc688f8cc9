package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rootlab/vidscore/internal/timestamps"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Scoring.Type != ScoringOnsetOffset {
		t.Errorf("default scoring type = %s", s.Scoring.Type)
	}

	want := PlaybackSettings{
		SeekSmall:              1,
		SeekMedium:             100,
		SeekLarge:              1000,
		PlaybackSpeedModulator: 5,
		SeekTimestampSmall:     1,
		SeekTimestampMedium:    10,
		SeekTimestampLarge:     100,
	}
	if s.Playback != want {
		t.Errorf("default playback settings = %+v, want %+v", s.Playback, want)
	}

	if err := s.Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	s := DefaultSettings()
	s.Scoring.Type = ScoringSingle
	s.Playback.SeekMedium = 50

	if err := SaveSettings(s, path); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if loaded.Scoring.Type != ScoringSingle {
		t.Errorf("scoring type = %s, want single", loaded.Scoring.Type)
	}
	if loaded.Playback.SeekMedium != 50 {
		t.Errorf("seek_medium = %d, want 50", loaded.Playback.SeekMedium)
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Playback.SeekLarge != 1000 {
		t.Error("missing file should yield defaults")
	}
}

func TestLoadSettingsSparseFileFilled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "playback:\n  seek_small: 2\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.Playback.SeekSmall != 2 {
		t.Errorf("seek_small = %d, want 2", s.Playback.SeekSmall)
	}
	if s.Playback.SeekMedium != 100 {
		t.Errorf("seek_medium = %d, want default 100", s.Playback.SeekMedium)
	}
	if s.Scoring.Type != ScoringOnsetOffset {
		t.Errorf("scoring type = %s, want default", s.Scoring.Type)
	}
}

func TestLoadSettingsRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "playback: ["},
		{"negative seek", "playback:\n  seek_small: -3\n"},
		{"unknown scoring type", "scoring:\n  scoring_type: telepathy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSettings(path); err == nil {
				t.Error("expected LoadSettings to fail")
			}
		})
	}
}

func TestProjectRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	p := NewProject("session", "/videos/mouse1.mp4", 9000, 29.97, ScoringOnsetOffset)
	p.Events = []timestamps.Event{{Onset: 10, Offset: 20}, {Onset: 30, Offset: 40}}

	if err := p.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "session" || loaded.FrameCount != 9000 {
		t.Errorf("metadata lost: %+v", loaded)
	}
	if len(loaded.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(loaded.Events))
	}
	if loaded.Modified.Before(loaded.Created) {
		t.Error("modified time should not precede created time")
	}
}

func TestProjectNewLog(t *testing.T) {
	p := NewProject("s", "v.mp4", 100, 30, ScoringOnsetOffset)
	p.Events = []timestamps.Event{
		{Onset: 10, Offset: 20},
		{Onset: 15, Offset: 25}, // overlaps, dropped
		{Onset: 30, Offset: 40},
	}

	log := p.NewLog()
	if log.Kind() != timestamps.KindOnsetOffset {
		t.Errorf("log kind = %s", log.Kind())
	}
	if log.Len() != 2 {
		t.Errorf("log has %d events, want 2 (overlapping one dropped)", log.Len())
	}
}

func TestScoringTypeLogKind(t *testing.T) {
	if ScoringSingle.LogKind() != timestamps.KindSingle {
		t.Error("single scoring should map to a single log")
	}
	if ScoringOnsetOffset.LogKind() != timestamps.KindOnsetOffset {
		t.Error("onset/offset scoring should map to an onset/offset log")
	}
}
