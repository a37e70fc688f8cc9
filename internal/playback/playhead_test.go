package playback

import (
	"testing"
	"time"
)

func TestSeekClamps(t *testing.T) {
	p := New(100, 30)

	tests := []struct {
		seek int
		want int
	}{
		{50, 50},
		{-10, 0},
		{99, 99},
		{100, 99},
		{100000, 99},
	}

	for _, tt := range tests {
		p.Seek(tt.seek)
		if p.Frame() != tt.want {
			t.Errorf("Seek(%d): frame = %d, want %d", tt.seek, p.Frame(), tt.want)
		}
	}
}

func TestSeekBy(t *testing.T) {
	p := New(100, 30)
	p.Seek(50)

	p.SeekBy(1)
	if p.Frame() != 51 {
		t.Errorf("frame = %d, want 51", p.Frame())
	}
	p.SeekBy(-1000)
	if p.Frame() != 0 {
		t.Errorf("frame = %d, want 0", p.Frame())
	}
	p.SeekBy(1000)
	if p.Frame() != 99 {
		t.Errorf("frame = %d, want 99", p.Frame())
	}
}

func TestFirstLast(t *testing.T) {
	p := New(100, 30)
	p.Seek(50)

	p.Last()
	if p.Frame() != 99 || !p.AtEnd() {
		t.Errorf("Last(): frame = %d", p.Frame())
	}
	p.First()
	if p.Frame() != 0 {
		t.Errorf("First(): frame = %d", p.Frame())
	}
}

func TestAdvance(t *testing.T) {
	p := New(3, 30)

	// Paused playhead does not move.
	p.Advance()
	if p.Frame() != 0 {
		t.Error("paused playhead advanced")
	}

	p.TogglePlay()
	p.Advance()
	p.Advance()
	if p.Frame() != 2 || !p.AtEnd() {
		t.Fatalf("frame = %d, want 2", p.Frame())
	}

	// Advancing at the end pauses instead of wrapping.
	p.Advance()
	if p.Frame() != 2 {
		t.Errorf("playhead wrapped to %d", p.Frame())
	}
	if p.Playing() {
		t.Error("playhead should pause at the final frame")
	}
}

func TestSpeed(t *testing.T) {
	p := New(100, 30)

	p.Faster(5)
	if p.Speed() != 105 {
		t.Errorf("Speed() = %d, want 105", p.Speed())
	}
	p.Slower(5)
	p.Slower(5)
	if p.Speed() != 95 {
		t.Errorf("Speed() = %d, want 95", p.Speed())
	}

	// Clamped at both ends.
	for i := 0; i < 100; i++ {
		p.Slower(50)
	}
	if p.Speed() != minSpeed {
		t.Errorf("Speed() = %d, want %d", p.Speed(), minSpeed)
	}
	for i := 0; i < 100; i++ {
		p.Faster(50)
	}
	if p.Speed() != maxSpeed {
		t.Errorf("Speed() = %d, want %d", p.Speed(), maxSpeed)
	}
}

func TestInterval(t *testing.T) {
	p := New(100, 25)

	if got := p.Interval(); got != 40*time.Millisecond {
		t.Errorf("Interval() at 25fps = %v, want 40ms", got)
	}

	p.Faster(100) // 200% speed
	if got := p.Interval(); got != 20*time.Millisecond {
		t.Errorf("Interval() at double speed = %v, want 20ms", got)
	}
}

func TestTimecode(t *testing.T) {
	p := New(100000, 25)

	tests := []struct {
		frame int
		want  string
	}{
		{0, "00:00:00.000"},
		{25, "00:00:01.000"},
		{30, "00:00:01.200"},
		{25 * 3600, "01:00:00.000"},
	}

	for _, tt := range tests {
		if got := p.Timecode(tt.frame); got != tt.want {
			t.Errorf("Timecode(%d) = %q, want %q", tt.frame, got, tt.want)
		}
	}
}

func TestNewDefensiveDefaults(t *testing.T) {
	p := New(0, -1)
	if p.FrameCount() != 1 {
		t.Errorf("FrameCount() = %d, want 1", p.FrameCount())
	}
	if p.FPS() != 30 {
		t.Errorf("FPS() = %v, want 30", p.FPS())
	}
}
