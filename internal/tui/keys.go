package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rootlab/vidscore/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Force quit works in all modes, whatever the bindings say.
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	case ModeStats:
		return m.handleStatsKeys(msg)
	case ModeEvents:
		return m.handleEventsKeys(msg)
	case ModeKeybindList:
		return m.handleKeybindListKeys(msg)
	case ModeKeybindCapture:
		return m.handleKeybindCaptureKeys(msg)
	case ModeKeybindConflict:
		return m.handleKeybindConflictKeys(msg)
	case ModeConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return nil
}

// handleNormalKeys dispatches through the binding registry. A key with no
// binding does nothing; that is the contract, not an error.
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	// "e" opens the event list and "k" the keybind editor. View launchers
	// stay outside the action set so a bad rebind can never lock the user
	// out of the editor; a user binding on the same key still wins.
	switch msg.String() {
	case "e":
		if _, bound := m.registry.MatchKey("e"); !bound {
			m.openEvents()
			return nil
		}
	case "k":
		if _, bound := m.registry.MatchKey("k"); !bound {
			m.openKeybindList()
			return nil
		}
	}

	action, ok := m.registry.MatchKey(msg.String())
	if !ok {
		return nil
	}
	return m.applyAction(action)
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal
	case "up":
		m.helpView.LineUp(1)
	case "down":
		m.helpView.LineDown(1)
	case "pgup":
		m.helpView.HalfViewUp()
	case "pgdown":
		m.helpView.HalfViewDown()
	case "home":
		m.helpView.GotoTop()
	case "end":
		m.helpView.GotoBottom()
	}
	return nil
}

func (m *Model) handleStatsKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal
	case "c":
		return m.copyStats()
	case "up":
		m.statsView.LineUp(1)
	case "down":
		m.statsView.LineDown(1)
	}
	return nil
}

func (m *Model) handleEventsKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal
	case "up":
		if m.eventIndex > 0 {
			m.eventIndex--
		}
	case "down":
		if m.eventIndex < m.log.Len()-1 {
			m.eventIndex++
		}
	case "enter":
		if e, ok := m.log.EventAt(m.eventIndex); ok {
			m.log.Select(m.eventIndex)
			m.playhead.Seek(e.Onset)
			m.mode = ModeNormal
			m.statusMsg = fmt.Sprintf("Selected %s", e)
			m.broadcast()
		}
	case "delete", "backspace":
		if _, ok := m.log.EventAt(m.eventIndex); ok {
			m.log.Select(m.eventIndex)
			m.mode = ModeConfirmDelete
		}
	}
	return nil
}

func (m *Model) handleConfirmDeleteKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		m.mode = ModeNormal
		return m.applyAction(keybinds.ActionDeleteSelected)
	case "n", "esc", "q":
		m.mode = ModeNormal
	}
	return nil
}
