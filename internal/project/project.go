package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rootlab/vidscore/internal/timestamps"
)

// ScoringType selects how marks are scored.
type ScoringType string

const (
	ScoringOnsetOffset ScoringType = "onset/offset"
	ScoringSingle      ScoringType = "single"
)

// LogKind maps the scoring type onto the timestamp log kind.
func (s ScoringType) LogKind() timestamps.Kind {
	if s == ScoringSingle {
		return timestamps.KindSingle
	}
	return timestamps.KindOnsetOffset
}

// PlaybackSettings holds the seek and speed amounts the seek actions use.
type PlaybackSettings struct {
	SeekSmall              int `yaml:"seek_small"`
	SeekMedium             int `yaml:"seek_medium"`
	SeekLarge              int `yaml:"seek_large"`
	PlaybackSpeedModulator int `yaml:"playback_speed_modulator"`
	SeekTimestampSmall     int `yaml:"seek_timestamp_small"`
	SeekTimestampMedium    int `yaml:"seek_timestamp_medium"`
	SeekTimestampLarge     int `yaml:"seek_timestamp_large"`
}

// ScoringSettings holds how a session is scored.
type ScoringSettings struct {
	Type ScoringType `yaml:"scoring_type"`
}

// Settings is the user's scoring and playback configuration, persisted as
// settings.yaml in the config dir.
type Settings struct {
	Scoring  ScoringSettings  `yaml:"scoring"`
	Playback PlaybackSettings `yaml:"playback"`
}

// DefaultSettings returns the stock settings.
func DefaultSettings() *Settings {
	return &Settings{
		Scoring: ScoringSettings{
			Type: ScoringOnsetOffset,
		},
		Playback: PlaybackSettings{
			SeekSmall:              1,
			SeekMedium:             100,
			SeekLarge:              1000,
			PlaybackSpeedModulator: 5,
			SeekTimestampSmall:     1,
			SeekTimestampMedium:    10,
			SeekTimestampLarge:     100,
		},
	}
}

// LoadSettings reads settings from a YAML file, falling back to defaults for
// a missing file. Zero-valued seek amounts are filled from the defaults so a
// sparse file stays usable.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("invalid settings.yaml: %w", err)
	}
	settings.fillDefaults()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings writes settings to a YAML file.
func SaveSettings(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings that would make the seek actions useless.
func (s *Settings) Validate() error {
	switch s.Scoring.Type {
	case ScoringOnsetOffset, ScoringSingle:
	default:
		return fmt.Errorf("unknown scoring type %q", s.Scoring.Type)
	}

	amounts := map[string]int{
		"seek_small":               s.Playback.SeekSmall,
		"seek_medium":              s.Playback.SeekMedium,
		"seek_large":               s.Playback.SeekLarge,
		"playback_speed_modulator": s.Playback.PlaybackSpeedModulator,
		"seek_timestamp_small":     s.Playback.SeekTimestampSmall,
		"seek_timestamp_medium":    s.Playback.SeekTimestampMedium,
		"seek_timestamp_large":     s.Playback.SeekTimestampLarge,
	}
	for name, v := range amounts {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	return nil
}

func (s *Settings) fillDefaults() {
	defaults := DefaultSettings()
	if s.Scoring.Type == "" {
		s.Scoring.Type = defaults.Scoring.Type
	}
	fill := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&s.Playback.SeekSmall, defaults.Playback.SeekSmall)
	fill(&s.Playback.SeekMedium, defaults.Playback.SeekMedium)
	fill(&s.Playback.SeekLarge, defaults.Playback.SeekLarge)
	fill(&s.Playback.PlaybackSpeedModulator, defaults.Playback.PlaybackSpeedModulator)
	fill(&s.Playback.SeekTimestampSmall, defaults.Playback.SeekTimestampSmall)
	fill(&s.Playback.SeekTimestampMedium, defaults.Playback.SeekTimestampMedium)
	fill(&s.Playback.SeekTimestampLarge, defaults.Playback.SeekTimestampLarge)
}

// Project is a scoring session bound to one video.
type Project struct {
	Name       string             `json:"name"`
	VideoFile  string             `json:"video_file"`
	FPS        float64            `json:"fps"`
	FrameCount int                `json:"frame_count"`
	Scoring    ScoringType        `json:"scoring_type"`
	Events     []timestamps.Event `json:"events"`
	Created    time.Time          `json:"created"`
	Modified   time.Time          `json:"modified"`
}

// NewProject returns a project with sane metadata.
func NewProject(name, videoFile string, frameCount int, fps float64, scoring ScoringType) *Project {
	now := time.Now().UTC()
	return &Project{
		Name:       name,
		VideoFile:  videoFile,
		FPS:        fps,
		FrameCount: frameCount,
		Scoring:    scoring,
		Created:    now,
		Modified:   now,
	}
}

// Load reads a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid project file %s: %w", path, err)
	}
	if p.Scoring == "" {
		p.Scoring = ScoringOnsetOffset
	}
	return &p, nil
}

// Save writes the project file, bumping the modified time.
func (p *Project) Save(path string) error {
	p.Modified = time.Now().UTC()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// NewLog builds a timestamp log seeded with the project's saved events.
// Events that no longer fit (corrupt files, overlapping edits from other
// tools) are dropped rather than refusing to open the project.
func (p *Project) NewLog() *timestamps.Log {
	log := timestamps.NewLog(p.Scoring.LogKind())
	for _, e := range p.Events {
		_ = log.Append(e)
	}
	return log
}
