package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rootlab/vidscore/internal/keybinds"
	"github.com/rootlab/vidscore/internal/scorelog"
	"github.com/rootlab/vidscore/internal/timestamps"
)

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_InitializesStateCorrectly(t *testing.T) {
	m := CreateTestModel(t)

	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want ModeNormal", m.mode)
	}
	if m.log == nil || m.log.Len() != 0 {
		t.Error("log should be initialized and empty")
	}
	if m.playhead.Frame() != 0 {
		t.Errorf("playhead at frame %d, want 0", m.playhead.Frame())
	}
	if m.history == nil {
		t.Error("history should be initialized")
	}
}

func TestNormalKeys_DispatchBoundAction(t *testing.T) {
	m := CreateTestModel(t)

	// "d" is the stock small forward seek.
	m.handleKeyPress(keyPress("d"))
	if m.playhead.Frame() != m.settings.Playback.SeekSmall {
		t.Errorf("frame = %d, want %d", m.playhead.Frame(), m.settings.Playback.SeekSmall)
	}
}

func TestNormalKeys_SpacebarTogglesPlay(t *testing.T) {
	m := CreateTestModel(t)

	// The terminal reports the spacebar as a literal " ".
	m.handleKeyPress(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.playhead.Playing() {
		t.Fatal("spacebar did not start playback")
	}

	m.handleKeyPress(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.playhead.Playing() {
		t.Fatal("spacebar did not pause playback")
	}
}

func TestTick_StaleGenerationIsDropped(t *testing.T) {
	m := CreateTestModel(t)

	m.applyAction(keybinds.ActionTogglePlay) // play
	firstGen := m.tickGen
	m.applyAction(keybinds.ActionTogglePlay) // pause while a tick is in flight
	m.applyAction(keybinds.ActionTogglePlay) // resume starts a fresh loop

	// The stale tick from the first loop must not advance the playhead or
	// reschedule itself, or two loops would run at once.
	_, cmd := m.Update(tickMsg{gen: firstGen})
	if m.playhead.Frame() != 0 {
		t.Errorf("stale tick advanced the playhead to %d", m.playhead.Frame())
	}
	if cmd != nil {
		t.Error("stale tick rescheduled itself")
	}

	_, cmd = m.Update(tickMsg{gen: m.tickGen})
	if m.playhead.Frame() != 1 {
		t.Errorf("current tick advanced to frame %d, want 1", m.playhead.Frame())
	}
	if cmd == nil {
		t.Error("current tick should schedule the next one")
	}
}

func TestNormalKeys_UnboundKeyIsNoop(t *testing.T) {
	m := CreateTestModel(t)

	m.handleKeyPress(keyPress("f"))
	if m.playhead.Frame() != 0 {
		t.Errorf("unbound key moved the playhead to %d", m.playhead.Frame())
	}
	if m.log.Len() != 0 {
		t.Error("unbound key scored a timestamp")
	}
	if m.mode != ModeNormal {
		t.Errorf("unbound key changed mode to %v", m.mode)
	}
}

func TestNormalKeys_RebindMovesDispatch(t *testing.T) {
	m := CreateTestModel(t)

	if _, err := m.registry.RebindEvict(keybinds.ActionSeekForwardSmall, keybinds.MustChord("f")); err != nil {
		t.Fatalf("rebind failed: %v", err)
	}

	// Old chord is dead.
	m.handleKeyPress(keyPress("d"))
	if m.playhead.Frame() != 0 {
		t.Errorf("old chord still dispatches, frame = %d", m.playhead.Frame())
	}

	// New chord is live.
	m.handleKeyPress(keyPress("f"))
	if m.playhead.Frame() != m.settings.Playback.SeekSmall {
		t.Errorf("new chord did not dispatch, frame = %d", m.playhead.Frame())
	}
}

func TestMarkUndoRedoFlow(t *testing.T) {
	m := CreateTestModel(t)

	// Score a bout: onset at 0, offset at 10.
	m.applyAction(keybinds.ActionSaveTimestamp)
	m.playhead.Seek(10)
	m.applyAction(keybinds.ActionSaveTimestamp)

	if m.log.Len() != 1 {
		t.Fatalf("log has %d events, want 1", m.log.Len())
	}
	if got := m.log.Events()[0]; got != (timestamps.Event{Onset: 0, Offset: 10}) {
		t.Fatalf("scored %s, want (0, 10)", got)
	}

	m.applyAction(keybinds.ActionUndo)
	if m.log.Len() != 0 {
		t.Errorf("after undo log has %d events", m.log.Len())
	}

	m.applyAction(keybinds.ActionRedo)
	if m.log.Len() != 1 {
		t.Errorf("after redo log has %d events", m.log.Len())
	}
}

func TestMarkFrame_JournalsToScoreLog(t *testing.T) {
	m := CreateTestModel(t)

	scores, err := scorelog.NewManager(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("failed to open score log: %v", err)
	}
	defer scores.Close()
	m.scores = scores

	m.applyAction(keybinds.ActionSaveTimestamp)
	m.playhead.Seek(10)
	m.applyAction(keybinds.ActionSaveTimestamp)

	records, err := scores.LoadForProject(m.proj.Name)
	if err != nil {
		t.Fatalf("failed to load records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("score log has %d records, want 1", len(records))
	}
	if got := records[0].Event(); got != (timestamps.Event{Onset: 0, Offset: 10}) {
		t.Errorf("journaled %s, want (0, 10)", got)
	}
}

func TestRemoteActionDispatch(t *testing.T) {
	m := CreateTestModel(t)

	_, _ = m.Update(remoteActionMsg{action: keybinds.ActionSeekForwardLarge})
	if m.playhead.Frame() != m.settings.Playback.SeekLarge {
		t.Errorf("frame = %d, want %d", m.playhead.Frame(), m.settings.Playback.SeekLarge)
	}
}

func TestViewLaunchers_OpenWhenUnbound(t *testing.T) {
	m := CreateTestModel(t)

	// Seed one event so the list opens.
	if err := m.log.Append(timestamps.Event{Onset: 5, Offset: 9}); err != nil {
		t.Fatal(err)
	}

	m.handleKeyPress(keyPress("e"))
	if m.mode != ModeEvents {
		t.Errorf("mode = %v, want ModeEvents", m.mode)
	}

	m.mode = ModeNormal
	m.handleKeyPress(keyPress("k"))
	if m.mode != ModeKeybindList {
		t.Errorf("mode = %v, want ModeKeybindList", m.mode)
	}
}

func TestViewLaunchers_YieldToUserBinding(t *testing.T) {
	m := CreateTestModel(t)

	if _, err := m.registry.RebindEvict(keybinds.ActionSeekForwardSmall, keybinds.MustChord("e")); err != nil {
		t.Fatalf("rebind failed: %v", err)
	}

	m.handleKeyPress(keyPress("e"))
	if m.mode != ModeNormal {
		t.Errorf("binding on e should win over the event list, mode = %v", m.mode)
	}
	if m.playhead.Frame() != m.settings.Playback.SeekSmall {
		t.Errorf("frame = %d, want %d", m.playhead.Frame(), m.settings.Playback.SeekSmall)
	}
}

func TestKeybindCapture_RebindsAction(t *testing.T) {
	m := CreateTestModel(t)

	m.openKeybindList()
	m.captureAction = keybinds.ActionSeekForwardSmall
	m.mode = ModeKeybindCapture

	m.handleKeyPress(keyPress("f"))
	if m.mode != ModeKeybindList {
		t.Errorf("mode = %v, want ModeKeybindList", m.mode)
	}
	if c, ok := m.registry.ChordFor(keybinds.ActionSeekForwardSmall); !ok || c != keybinds.MustChord("f") {
		t.Errorf("chord = %v, %v; want f", c, ok)
	}
}

func TestKeybindCapture_ConflictAsksBeforeEvicting(t *testing.T) {
	m := CreateTestModel(t)

	m.captureAction = keybinds.ActionSeekForwardSmall
	m.mode = ModeKeybindCapture

	// "a" belongs to the small back seek.
	m.handleKeyPress(keyPress("a"))
	if m.mode != ModeKeybindConflict {
		t.Fatalf("mode = %v, want ModeKeybindConflict", m.mode)
	}
	if m.conflictOwner != keybinds.ActionSeekBackSmall {
		t.Errorf("conflictOwner = %v, want ActionSeekBackSmall", m.conflictOwner)
	}

	// Declining keeps both bindings as they were.
	m.handleKeyPress(keyPress("n"))
	if c, _ := m.registry.ChordFor(keybinds.ActionSeekBackSmall); c != keybinds.MustChord("a") {
		t.Errorf("declined eviction still moved the chord: %v", c)
	}

	// Accepting evicts the old owner.
	m.mode = ModeKeybindCapture
	m.handleKeyPress(keyPress("a"))
	m.handleKeyPress(keyPress("y"))
	if c, _ := m.registry.ChordFor(keybinds.ActionSeekForwardSmall); c != keybinds.MustChord("a") {
		t.Errorf("chord = %v, want a", c)
	}
	if _, ok := m.registry.ChordFor(keybinds.ActionSeekBackSmall); ok {
		t.Error("evicted action should be unbound")
	}
}

func TestConfirmDelete_DeletesOnYes(t *testing.T) {
	m := CreateTestModel(t)

	if err := m.log.Append(timestamps.Event{Onset: 5, Offset: 9}); err != nil {
		t.Fatal(err)
	}
	m.log.Select(0)
	m.mode = ModeConfirmDelete

	m.handleKeyPress(keyPress("y"))
	if m.log.Len() != 0 {
		t.Errorf("log has %d events after delete", m.log.Len())
	}
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want ModeNormal", m.mode)
	}

	// The delete is undoable.
	m.applyAction(keybinds.ActionUndo)
	if m.log.Len() != 1 {
		t.Errorf("undo did not restore the event, log has %d", m.log.Len())
	}
}

func TestForceQuitWorksInEveryMode(t *testing.T) {
	m := CreateTestModel(t)
	m.mode = ModeKeybindCapture

	cmd := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit even while capturing a chord")
	}
}

func TestView_RendersWithoutPanic(t *testing.T) {
	m := CreateTestModel(t)

	if err := m.log.Append(timestamps.Event{Onset: 5, Offset: 9}); err != nil {
		t.Fatal(err)
	}
	m.log.Select(0)

	for _, mode := range []Mode{
		ModeNormal, ModeHelp, ModeStats, ModeEvents,
		ModeKeybindList, ModeKeybindCapture, ModeKeybindConflict, ModeConfirmDelete,
	} {
		m.mode = mode
		if m.View() == "" {
			t.Errorf("empty view in mode %v", mode)
		}
	}
}
