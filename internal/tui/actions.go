package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rootlab/vidscore/internal/commands"
	"github.com/rootlab/vidscore/internal/keybinds"
	"github.com/rootlab/vidscore/internal/stats"
)

// applyAction executes one scoring action. Exactly one action runs per
// dispatch; remote commands come through here too.
func (m *Model) applyAction(action keybinds.Action) tea.Cmd {
	switch action {
	case keybinds.ActionExit:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionHelp:
		m.openHelp()

	case keybinds.ActionSaveTimestamp:
		m.markFrame()

	case keybinds.ActionShowStats:
		m.openStats()

	case keybinds.ActionUndo:
		cmd, err := m.history.Undo()
		switch {
		case err != nil:
			m.statusMsg = fmt.Sprintf("Undo failed: %v", err)
		case cmd == nil:
			m.statusMsg = "Nothing to undo"
		default:
			m.statusMsg = fmt.Sprintf("Undid %s", cmd.Describe())
			m.broadcast()
		}

	case keybinds.ActionRedo:
		cmd, err := m.history.Redo()
		switch {
		case err != nil:
			m.statusMsg = fmt.Sprintf("Redo failed: %v", err)
		case cmd == nil:
			m.statusMsg = "Nothing to redo"
		default:
			m.statusMsg = fmt.Sprintf("Redid %s", cmd.Describe())
			m.broadcast()
		}

	case keybinds.ActionTogglePlay:
		m.playhead.TogglePlay()
		m.tickGen++
		m.broadcast()
		if m.playhead.Playing() {
			return m.tick()
		}

	case keybinds.ActionSeekForwardSmall:
		m.seekBy(m.settings.Playback.SeekSmall)
	case keybinds.ActionSeekBackSmall:
		m.seekBy(-m.settings.Playback.SeekSmall)
	case keybinds.ActionSeekForwardMedium:
		m.seekBy(m.settings.Playback.SeekMedium)
	case keybinds.ActionSeekBackMedium:
		m.seekBy(-m.settings.Playback.SeekMedium)
	case keybinds.ActionSeekForwardLarge:
		m.seekBy(m.settings.Playback.SeekLarge)
	case keybinds.ActionSeekBackLarge:
		m.seekBy(-m.settings.Playback.SeekLarge)

	case keybinds.ActionSeekToFirstFrame:
		m.playhead.First()
		m.broadcast()
	case keybinds.ActionSeekToLastFrame:
		m.playhead.Last()
		m.broadcast()

	case keybinds.ActionIncreaseSpeed:
		m.playhead.Faster(m.settings.Playback.PlaybackSpeedModulator)
		m.statusMsg = fmt.Sprintf("Speed %d%%", m.playhead.Speed())
		m.broadcast()
	case keybinds.ActionDecreaseSpeed:
		m.playhead.Slower(m.settings.Playback.PlaybackSpeedModulator)
		m.statusMsg = fmt.Sprintf("Speed %d%%", m.playhead.Speed())
		m.broadcast()

	case keybinds.ActionIncSelectedSmall:
		m.shiftSelected(m.settings.Playback.SeekTimestampSmall)
	case keybinds.ActionDecSelectedSmall:
		m.shiftSelected(-m.settings.Playback.SeekTimestampSmall)
	case keybinds.ActionIncSelectedMedium:
		m.shiftSelected(m.settings.Playback.SeekTimestampMedium)
	case keybinds.ActionDecSelectedMedium:
		m.shiftSelected(-m.settings.Playback.SeekTimestampMedium)
	case keybinds.ActionIncSelectedLarge:
		m.shiftSelected(m.settings.Playback.SeekTimestampLarge)
	case keybinds.ActionDecSelectedLarge:
		m.shiftSelected(-m.settings.Playback.SeekTimestampLarge)

	case keybinds.ActionMoveToLastBoundary:
		if frame, ok := m.log.PrevBoundary(m.playhead.Frame()); ok {
			m.playhead.Seek(frame)
			m.broadcast()
		}
	case keybinds.ActionMoveToNextBoundary:
		if frame, ok := m.log.NextBoundary(m.playhead.Frame()); ok {
			m.playhead.Seek(frame)
			m.broadcast()
		}

	case keybinds.ActionMoveToLastTimestamp:
		if e, ok := m.log.PrevEvent(m.playhead.Frame()); ok {
			m.playhead.Seek(e.Onset)
			m.broadcast()
		}
	case keybinds.ActionMoveToNextTimestamp:
		if e, ok := m.log.NextEvent(m.playhead.Frame()); ok {
			m.playhead.Seek(e.Onset)
			m.broadcast()
		}

	case keybinds.ActionSelectCurrent:
		if e, ok := m.log.SelectAtFrame(m.playhead.Frame()); ok {
			m.statusMsg = fmt.Sprintf("Selected %s", e)
		} else {
			m.statusMsg = "No timestamp at current frame"
		}

	case keybinds.ActionDeleteSelected:
		e, ok := m.log.DeleteSelected()
		if !ok {
			m.statusMsg = "No timestamp selected"
			break
		}
		m.history.Push(&commands.DeleteCommand{Log: m.log, Event: e})
		m.statusMsg = fmt.Sprintf("Deleted %s", e)
		m.broadcast()
	}

	return nil
}

// markFrame scores the current frame: one event for single scoring, onset
// then offset for bout scoring.
func (m *Model) markFrame() {
	frame := m.playhead.Frame()

	scored, open, err := m.log.Mark(frame)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Cannot save timestamp: %v", err)
		return
	}

	if open {
		m.statusMsg = fmt.Sprintf("Onset at frame %d (mark again for offset)", frame)
		m.broadcast()
		return
	}

	m.history.Push(&commands.MarkCommand{Log: m.log, Event: scored})
	m.statusMsg = fmt.Sprintf("Saved %s", scored)

	// Journal the mark right away so a crash cannot lose it; Cleanup
	// reconciles the full log over these records on exit.
	if m.scores != nil {
		if _, err := m.scores.Save(m.proj.Name, m.proj.VideoFile, m.log.Kind(), scored, ""); err != nil {
			m.statusMsg = fmt.Sprintf("Saved %s (score log write failed: %v)", scored, err)
		}
	}
	m.broadcast()
}

func (m *Model) seekBy(delta int) {
	m.playhead.SeekBy(delta)
	m.broadcast()
}

func (m *Model) shiftSelected(delta int) {
	old, shifted, err := m.log.ShiftSelected(delta)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Cannot move timestamp: %v", err)
		return
	}
	m.history.Push(&commands.EditCommand{Log: m.log, Old: old, New: shifted})
	m.statusMsg = fmt.Sprintf("Moved %s to %s", old, shifted)
	m.broadcast()
}

func (m *Model) openHelp() {
	m.helpView.SetContent(m.renderHelpContent())
	m.helpView.GotoTop()
	m.mode = ModeHelp
}

func (m *Model) openStats() {
	summary := stats.Compute(m.log, m.playhead.FrameCount())
	m.statsView.SetContent(summary.String())
	m.statsView.GotoTop()
	m.mode = ModeStats
}

func (m *Model) openEvents() {
	if m.log.Len() == 0 {
		m.statusMsg = "No timestamps yet"
		return
	}
	if m.eventIndex < 0 || m.eventIndex >= m.log.Len() {
		m.eventIndex = 0
	}
	m.mode = ModeEvents
}

func (m *Model) copyStats() tea.Cmd {
	summary := stats.Compute(m.log, m.playhead.FrameCount())
	if err := clipboard.WriteAll(summary.String()); err != nil {
		m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
	} else {
		m.statusMsg = "Stats copied to clipboard"
	}
	return nil
}
