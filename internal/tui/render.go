package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rootlab/vidscore/internal/keybinds"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeStats:
		return m.renderStats()
	case ModeEvents:
		return m.renderEvents()
	case ModeKeybindList:
		return m.renderKeybindList()
	case ModeKeybindCapture:
		return m.renderKeybindCapture()
	case ModeKeybindConflict:
		return m.renderKeybindConflict()
	case ModeConfirmDelete:
		return m.renderConfirmDelete()
	}

	return m.renderNormal()
}

// renderNormal renders the main scoring view: playhead panel on top, the
// timestamp list below, status bar at the bottom.
func (m *Model) renderNormal() string {
	playheadBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(m.width - 2).
		Padding(0, 1).
		Render(m.renderPlayhead())

	listHeight := m.height - lipgloss.Height(playheadBox) - 3
	if listHeight < 3 {
		listHeight = 3
	}
	eventsBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(m.width - 2).
		Height(listHeight).
		Padding(0, 1).
		Render(m.renderEventList(listHeight - 1))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		playheadBox,
		eventsBox,
		m.renderStatusBar(),
	)
}

func (m *Model) renderPlayhead() string {
	frame := m.playhead.Frame()

	state := styleSubtle.Render("paused")
	if m.playhead.Playing() {
		state = styleSuccess.Render("playing")
	}

	line1 := fmt.Sprintf("%s  %s  frame %d/%d  %s  %d%%",
		styleTitle.Render(m.proj.Name),
		m.playhead.Timecode(frame),
		frame+1,
		m.playhead.FrameCount(),
		state,
		m.playhead.Speed(),
	)

	var parts []string
	parts = append(parts, fmt.Sprintf("%d timestamps (%s)", m.log.Len(), m.log.Kind()))
	if onset, ok := m.log.PendingOnset(); ok {
		parts = append(parts, styleWarning.Render(fmt.Sprintf("onset open at %d", onset)))
	}
	if e, ok := m.log.Selected(); ok {
		parts = append(parts, styleSuccess.Render(fmt.Sprintf("selected %s", e)))
	}
	line2 := strings.Join(parts, "  |  ")

	return line1 + "\n" + line2
}

// renderEventList renders the scored timestamps around the playhead. The
// window follows the current frame so the nearest bouts stay visible.
func (m *Model) renderEventList(height int) string {
	events := m.log.Events()
	if len(events) == 0 {
		return styleSubtle.Render("No timestamps yet")
	}

	// Center the window on the event nearest the playhead.
	frame := m.playhead.Frame()
	nearest := 0
	for i, e := range events {
		if e.Onset <= frame {
			nearest = i
		}
	}

	if height < 1 {
		height = 1
	}
	start := nearest - height/2
	if start > len(events)-height {
		start = len(events) - height
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(events) {
		end = len(events)
	}

	selected := m.log.SelectedIndex()
	var lines []string
	for i := start; i < end; i++ {
		e := events[i]
		line := fmt.Sprintf("%3d  %-16s %s", i+1, e, m.playhead.Timecode(e.Onset))
		switch {
		case i == selected:
			line = styleSelected.Render(line)
		case e.Contains(frame):
			line = styleWarning.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatusBar() string {
	left := fmt.Sprintf("Scoring: %s", m.proj.VideoFile)

	right := ""
	if m.statusMsg != "" {
		if strings.HasPrefix(m.statusMsg, "Saved") || strings.HasPrefix(m.statusMsg, "Selected") {
			right = styleSuccess.Render(m.statusMsg)
		} else if strings.Contains(m.statusMsg, "failed") || strings.Contains(m.statusMsg, "Cannot") {
			right = styleError.Render(m.statusMsg)
		} else {
			right = m.statusMsg
		}
	} else {
		right = styleSubtle.Render("h: help | e: timestamps | k: keybinds | q: quit")
	}

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}
	return left + strings.Repeat(" ", spacing) + right
}

// renderHelp renders the help screen
func (m *Model) renderHelp() string {
	title := styleTitle.Render("Keyboard Shortcuts")
	footer := styleSubtle.Render("↑/↓: scroll | PgUp/PgDn: page | ESC/q: close")

	fullContent := title + "\n\n" + m.helpView.View() + "\n\n" + footer

	helpView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - 10).
		Height(m.height - 4).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpView)
}

// renderHelpContent builds the binding table shown in the help viewport.
func (m *Model) renderHelpContent() string {
	var b strings.Builder

	for _, binding := range m.registry.Bindings() {
		info := keybinds.InfoFor(binding.Action)
		chord := binding.Chord.Label()
		fmt.Fprintf(&b, "%-16s %-24s %s\n", chord, info.Label, styleSubtle.Render(info.Help))
	}

	// Actions with no chord still show up, marked unbound.
	bound := map[keybinds.Action]bool{}
	for _, binding := range m.registry.Bindings() {
		bound[binding.Action] = true
	}
	for _, action := range keybinds.AllActions {
		if bound[action] {
			continue
		}
		info := keybinds.InfoFor(action)
		fmt.Fprintf(&b, "%-16s %-24s %s\n", styleSubtle.Render("(unbound)"), info.Label, styleSubtle.Render(info.Help))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%-16s %s\n", "e", "Open timestamp list")
	fmt.Fprintf(&b, "%-16s %s\n", "k", "Open keybind editor")
	fmt.Fprintf(&b, "%-16s %s\n", "Ctrl+c", "Force quit")
	if m.version != "" {
		b.WriteString("\n" + styleSubtle.Render("vidscore "+m.version) + "\n")
	}
	return b.String()
}

// renderStats renders the session statistics modal
func (m *Model) renderStats() string {
	title := styleTitle.Render("Scoring Statistics")
	footer := styleSubtle.Render("c: copy to clipboard | ↑/↓: scroll | ESC/q: close")

	fullContent := title + "\n\n" + m.statsView.View() + "\n\n" + footer

	statsView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - 10).
		Height(m.height - 4).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, statsView)
}

// renderEvents renders the timestamp list modal
func (m *Model) renderEvents() string {
	title := styleTitle.Render("Timestamps")
	footer := styleSubtle.Render("↑/↓: navigate | Enter: jump to | Del: delete | ESC/q: close")

	events := m.log.Events()
	pageSize := m.height - 12
	if pageSize < 1 {
		pageSize = 1
	}
	start := 0
	if m.eventIndex >= pageSize {
		start = m.eventIndex - pageSize + 1
	}
	end := start + pageSize
	if end > len(events) {
		end = len(events)
	}

	var lines []string
	for i := start; i < end; i++ {
		e := events[i]
		line := fmt.Sprintf("%3d  %-16s %s", i+1, e, m.playhead.Timecode(e.Onset))
		if i == m.eventIndex {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}
	position := styleSubtle.Render(fmt.Sprintf("[%d/%d]", m.eventIndex+1, len(events)))

	fullContent := title + "\n\n" + strings.Join(lines, "\n") + "\n\n" + position + "\n" + footer

	listView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - 10).
		Height(m.height - 4).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, listView)
}

// renderKeybindList renders the keybind editor list
func (m *Model) renderKeybindList() string {
	title := styleTitle.Render("Keybinds")
	footer := styleSubtle.Render("↑/↓: navigate | Enter: rebind | u: unbind | r: restore default | ESC/q: close")

	pageSize := m.height - 12
	if pageSize < 1 {
		pageSize = 1
	}
	start := 0
	if m.keybindIndex >= pageSize {
		start = m.keybindIndex - pageSize + 1
	}
	end := start + pageSize
	if end > len(keybinds.AllActions) {
		end = len(keybinds.AllActions)
	}

	var lines []string
	for i := start; i < end; i++ {
		action := keybinds.AllActions[i]
		info := keybinds.InfoFor(action)

		chord := styleSubtle.Render("(unbound)")
		if c, ok := m.registry.ChordFor(action); ok {
			chord = c.Label()
		}

		line := fmt.Sprintf("%-26s %s", info.Label, chord)
		if i == m.keybindIndex {
			line = styleSelected.Render(line)
		}
		lines = append(lines, line)
	}

	fullContent := title + "\n\n" + strings.Join(lines, "\n") + "\n\n" + footer

	listView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(m.width - 10).
		Height(m.height - 4).
		Padding(1, 2).
		Render(fullContent)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, listView)
}

// renderKeybindCapture renders the chord capture prompt
func (m *Model) renderKeybindCapture() string {
	info := keybinds.InfoFor(m.captureAction)

	current := "(unbound)"
	if c, ok := m.registry.ChordFor(m.captureAction); ok {
		current = c.Label()
	}

	content := styleTitle.Render("Rebind: "+info.Label) + "\n\n" +
		fmt.Sprintf("Current: %s\n\n", current) +
		"Press the new key combination...\n\n" +
		styleSubtle.Render("ESC: cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorYellow).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderKeybindConflict renders the eviction confirmation prompt
func (m *Model) renderKeybindConflict() string {
	info := keybinds.InfoFor(m.captureAction)
	owner := keybinds.InfoFor(m.conflictOwner)

	content := styleTitle.Render("Key Already Bound") + "\n\n" +
		fmt.Sprintf("%s is bound to %s.\n", m.pendingChord.Label(), styleWarning.Render(owner.Label)) +
		fmt.Sprintf("Rebind it to %s and leave %s unbound?\n\n", info.Label, owner.Label) +
		styleSubtle.Render("y: rebind | n/ESC: cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorYellow).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderConfirmDelete renders the delete confirmation prompt
func (m *Model) renderConfirmDelete() string {
	target := "selected timestamp"
	if e, ok := m.log.Selected(); ok {
		target = fmt.Sprintf("timestamp %s", e)
	}

	content := styleTitle.Render("Delete Timestamp") + "\n\n" +
		fmt.Sprintf("Delete %s?\n\n", styleError.Render(target)) +
		styleSubtle.Render("y/Enter: delete | n/ESC: cancel")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorRed).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
