package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rootlab/vidscore/internal/keybinds"
)

func (m *Model) openKeybindList() {
	if m.keybindIndex < 0 || m.keybindIndex >= len(keybinds.AllActions) {
		m.keybindIndex = 0
	}
	m.mode = ModeKeybindList
}

func (m *Model) handleKeybindListKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal
	case "up":
		if m.keybindIndex > 0 {
			m.keybindIndex--
		}
	case "down":
		if m.keybindIndex < len(keybinds.AllActions)-1 {
			m.keybindIndex++
		}
	case "enter":
		m.captureAction = keybinds.AllActions[m.keybindIndex]
		m.mode = ModeKeybindCapture
	case "u":
		action := keybinds.AllActions[m.keybindIndex]
		m.registry.Unbind(action)
		m.saveKeybinds()
		m.statusMsg = fmt.Sprintf("Unbound %s", keybinds.InfoFor(action).Label)
	case "r":
		action := keybinds.AllActions[m.keybindIndex]
		chord, ok := keybinds.DefaultChordFor(action)
		if !ok {
			break
		}
		if _, err := m.registry.RebindEvict(action, chord); err != nil {
			m.statusMsg = fmt.Sprintf("Cannot restore default: %v", err)
			break
		}
		m.saveKeybinds()
		m.statusMsg = fmt.Sprintf("Restored %s to %s", keybinds.InfoFor(action).Label, chord.Label())
	}
	return nil
}

// handleKeybindCaptureKeys treats the next key press as the new chord for the
// action being edited. A conflicting chord is not applied silently; the user
// confirms the eviction first.
func (m *Model) handleKeybindCaptureKeys(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.mode = ModeKeybindList
		return nil
	}

	chord, err := keybinds.ParseChord(msg.String())
	if err != nil {
		m.statusMsg = fmt.Sprintf("Cannot bind %q: %v", msg.String(), err)
		m.mode = ModeKeybindList
		return nil
	}

	err = m.registry.Rebind(m.captureAction, chord)
	if errors.Is(err, keybinds.ErrChordConflict) {
		owner, _ := m.registry.Match(chord)
		m.pendingChord = chord
		m.conflictOwner = owner
		m.mode = ModeKeybindConflict
		return nil
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("Cannot bind %s: %v", chord.Label(), err)
		m.mode = ModeKeybindList
		return nil
	}

	m.saveKeybinds()
	m.statusMsg = fmt.Sprintf("Bound %s to %s", keybinds.InfoFor(m.captureAction).Label, chord.Label())
	m.mode = ModeKeybindList
	return nil
}

func (m *Model) handleKeybindConflictKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		evicted, err := m.registry.RebindEvict(m.captureAction, m.pendingChord)
		if err != nil {
			m.statusMsg = fmt.Sprintf("Cannot bind %s: %v", m.pendingChord.Label(), err)
		} else {
			m.saveKeybinds()
			m.statusMsg = fmt.Sprintf("Bound %s to %s (%s is now unbound)",
				keybinds.InfoFor(m.captureAction).Label,
				m.pendingChord.Label(),
				keybinds.InfoFor(evicted).Label)
		}
		m.mode = ModeKeybindList
	case "n", "esc", "q":
		m.mode = ModeKeybindList
	}
	return nil
}
