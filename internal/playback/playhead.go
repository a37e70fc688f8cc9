package playback

import (
	"fmt"
	"time"
)

// Speed limits in percent of real time.
const (
	minSpeed = 25
	maxSpeed = 800
)

// Playhead is the playback position of the scoring session. There is no
// decoder behind it; it is a frame clock the TUI advances on tick messages.
type Playhead struct {
	frame      int
	frameCount int
	fps        float64
	playing    bool
	speed      int // percent of real time
}

// New returns a paused playhead at frame zero.
func New(frameCount int, fps float64) *Playhead {
	if frameCount < 1 {
		frameCount = 1
	}
	if fps <= 0 {
		fps = 30
	}
	return &Playhead{
		frameCount: frameCount,
		fps:        fps,
		speed:      100,
	}
}

// Frame returns the current frame.
func (p *Playhead) Frame() int { return p.frame }

// FrameCount returns the total number of frames.
func (p *Playhead) FrameCount() int { return p.frameCount }

// FPS returns the nominal frame rate.
func (p *Playhead) FPS() float64 { return p.fps }

// Playing reports whether the clock is running.
func (p *Playhead) Playing() bool { return p.playing }

// Speed returns the playback speed in percent of real time.
func (p *Playhead) Speed() int { return p.speed }

// Seek jumps to an absolute frame, clamped to [0, frameCount-1].
func (p *Playhead) Seek(frame int) {
	if frame < 0 {
		frame = 0
	}
	if frame > p.frameCount-1 {
		frame = p.frameCount - 1
	}
	p.frame = frame
}

// SeekBy moves by a relative number of frames, clamped at either end.
func (p *Playhead) SeekBy(delta int) {
	p.Seek(p.frame + delta)
}

// First jumps to frame zero.
func (p *Playhead) First() { p.Seek(0) }

// Last jumps to the final frame.
func (p *Playhead) Last() { p.Seek(p.frameCount - 1) }

// AtEnd reports whether the playhead sits on the final frame.
func (p *Playhead) AtEnd() bool { return p.frame == p.frameCount-1 }

// TogglePlay flips between playing and paused.
func (p *Playhead) TogglePlay() { p.playing = !p.playing }

// Pause stops the clock.
func (p *Playhead) Pause() { p.playing = false }

// Advance moves one frame forward while playing. Playback pauses at the
// final frame instead of wrapping.
func (p *Playhead) Advance() {
	if !p.playing {
		return
	}
	if p.AtEnd() {
		p.playing = false
		return
	}
	p.frame++
}

// Faster raises the playback speed by modulator percentage points.
func (p *Playhead) Faster(modulator int) {
	p.setSpeed(p.speed + modulator)
}

// Slower lowers the playback speed by modulator percentage points.
func (p *Playhead) Slower(modulator int) {
	p.setSpeed(p.speed - modulator)
}

func (p *Playhead) setSpeed(speed int) {
	if speed < minSpeed {
		speed = minSpeed
	}
	if speed > maxSpeed {
		speed = maxSpeed
	}
	p.speed = speed
}

// Interval returns how long a frame lasts at the current speed. The TUI
// schedules its next tick with this.
func (p *Playhead) Interval() time.Duration {
	effective := p.fps * float64(p.speed) / 100
	return time.Duration(float64(time.Second) / effective)
}

// Timecode renders a frame as HH:MM:SS.mmm at the nominal frame rate.
func (p *Playhead) Timecode(frame int) string {
	d := time.Duration(float64(frame) / p.fps * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
