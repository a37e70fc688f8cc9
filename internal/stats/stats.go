package stats

import (
	"fmt"
	"strings"

	"github.com/rootlab/vidscore/internal/timestamps"
)

// Summary describes a scoring session at a glance. Bout lengths are in
// frames, inclusive of both endpoints; coverage is the share of the video
// covered by scored bouts.
type Summary struct {
	Kind         timestamps.Kind
	EventCount   int
	ScoredFrames int
	FrameCount   int
	MeanBout     float64
	MinBout      int
	MaxBout      int
	Coverage     float64
}

// Compute summarizes a timestamp log against the video length.
func Compute(log *timestamps.Log, frameCount int) Summary {
	events := log.Events()
	s := Summary{
		Kind:       log.Kind(),
		EventCount: len(events),
		FrameCount: frameCount,
	}
	if len(events) == 0 {
		return s
	}

	total := 0
	s.MinBout = events[0].Offset - events[0].Onset + 1
	for _, e := range events {
		length := e.Offset - e.Onset + 1
		total += length
		if length < s.MinBout {
			s.MinBout = length
		}
		if length > s.MaxBout {
			s.MaxBout = length
		}
	}

	s.ScoredFrames = total
	s.MeanBout = float64(total) / float64(len(events))
	if frameCount > 0 {
		s.Coverage = float64(total) / float64(frameCount)
	}
	return s
}

// String renders the summary for the stats view and clipboard export.
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Scoring type:  %s\n", s.Kind)
	fmt.Fprintf(&sb, "Events:        %d\n", s.EventCount)
	fmt.Fprintf(&sb, "Scored frames: %d of %d\n", s.ScoredFrames, s.FrameCount)
	if s.EventCount > 0 {
		fmt.Fprintf(&sb, "Bout length:   mean %.1f, min %d, max %d\n", s.MeanBout, s.MinBout, s.MaxBout)
		fmt.Fprintf(&sb, "Coverage:      %.1f%%\n", s.Coverage*100)
	}
	return sb.String()
}
