package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rootlab/vidscore/internal/project"
	"github.com/rootlab/vidscore/internal/timestamps"
)

// Document is the exported form of a scoring session.
type Document struct {
	Project    string             `json:"project"`
	VideoFile  string             `json:"video_file"`
	FPS        float64            `json:"fps"`
	FrameCount int                `json:"frame_count"`
	Scoring    string             `json:"scoring_type"`
	Events     []timestamps.Event `json:"events"`
	ExportedAt time.Time          `json:"exported_at"`
}

// NewDocument assembles an export document from a project.
func NewDocument(p *project.Project) Document {
	return Document{
		Project:    p.Name,
		VideoFile:  p.VideoFile,
		FPS:        p.FPS,
		FrameCount: p.FrameCount,
		Scoring:    string(p.Scoring),
		Events:     p.Events,
		ExportedAt: time.Now().UTC(),
	}
}

// WriteJSON writes the document as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteCSV writes the events as onset/offset rows with timecodes.
func WriteCSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"onset_frame", "offset_frame", "onset_time", "offset_time"}); err != nil {
		return err
	}
	for _, e := range doc.Events {
		row := []string{
			strconv.Itoa(e.Onset),
			strconv.Itoa(e.Offset),
			timecode(e.Onset, doc.FPS),
			timecode(e.Offset, doc.FPS),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFile writes the document to a file, picking the format from the
// extension (.csv or .json).
func ExportFile(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	switch ext := filepath.Ext(path); ext {
	case ".csv":
		err = WriteCSV(f, doc)
	case ".json":
		err = WriteJSON(f, doc)
	default:
		return fmt.Errorf("unsupported export format %q (use .csv or .json)", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func timecode(frame int, fps float64) string {
	if fps <= 0 {
		fps = 30
	}
	d := time.Duration(float64(frame) / fps * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
