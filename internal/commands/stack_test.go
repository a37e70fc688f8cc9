package commands

import (
	"fmt"
	"testing"

	"github.com/rootlab/vidscore/internal/timestamps"
)

// recorded is a trivial command that tracks how it was driven.
type recorded struct {
	id     int
	undone int
	redone int
}

func (c *recorded) Undo() error      { c.undone++; return nil }
func (c *recorded) Redo() error      { c.redone++; return nil }
func (c *recorded) Describe() string { return fmt.Sprintf("cmd %d", c.id) }

func TestUndoRedo(t *testing.T) {
	s := NewStack()
	a := &recorded{id: 1}
	b := &recorded{id: 2}
	s.Push(a)
	s.Push(b)

	cmd, err := s.Undo()
	if err != nil || cmd != Command(b) {
		t.Fatalf("Undo = %v, %v; want cmd 2", cmd, err)
	}
	if b.undone != 1 {
		t.Errorf("b undone %d times", b.undone)
	}

	cmd, err = s.Redo()
	if err != nil || cmd != Command(b) {
		t.Fatalf("Redo = %v, %v; want cmd 2", cmd, err)
	}
	if b.redone != 1 {
		t.Errorf("b redone %d times", b.redone)
	}
}

func TestUndoEmptyIsNoop(t *testing.T) {
	s := NewStack()
	if cmd, err := s.Undo(); cmd != nil || err != nil {
		t.Errorf("Undo on empty stack = %v, %v", cmd, err)
	}
	if cmd, err := s.Redo(); cmd != nil || err != nil {
		t.Errorf("Redo with nothing undone = %v, %v", cmd, err)
	}
}

func TestPushTruncatesRedoBranch(t *testing.T) {
	s := NewStack()
	a := &recorded{id: 1}
	b := &recorded{id: 2}
	c := &recorded{id: 3}
	s.Push(a)
	s.Push(b)

	if _, err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	s.Push(c)

	if s.CanRedo() {
		t.Error("redo branch should be gone after push")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	// Undo order is now c, a.
	if cmd, _ := s.Undo(); cmd != Command(c) {
		t.Errorf("first undo = %v, want cmd 3", cmd)
	}
	if cmd, _ := s.Undo(); cmd != Command(a) {
		t.Errorf("second undo = %v, want cmd 1", cmd)
	}
}

func TestStackCap(t *testing.T) {
	s := NewStack()
	first := &recorded{id: 0}
	s.Push(first)
	for i := 1; i <= maxDepth; i++ {
		s.Push(&recorded{id: i})
	}

	if s.Len() != maxDepth {
		t.Fatalf("Len() = %d, want %d", s.Len(), maxDepth)
	}

	// Undo everything; the first command fell off and must never fire.
	for s.CanUndo() {
		if _, err := s.Undo(); err != nil {
			t.Fatal(err)
		}
	}
	if first.undone != 0 {
		t.Error("evicted command was undone")
	}
}

func TestEventCommandsRoundTrip(t *testing.T) {
	log := timestamps.NewLog(timestamps.KindOnsetOffset)
	s := NewStack()

	ev := timestamps.Event{Onset: 10, Offset: 20}
	if err := log.Append(ev); err != nil {
		t.Fatal(err)
	}
	s.Push(&MarkCommand{Log: log, Event: ev})

	shifted := timestamps.Event{Onset: 15, Offset: 25}
	if err := log.Edit(ev, shifted); err != nil {
		t.Fatal(err)
	}
	s.Push(&EditCommand{Log: log, Old: ev, New: shifted})

	// Undo the edit, then the mark.
	if _, err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if got := log.Events()[0]; got != ev {
		t.Errorf("after undoing edit: %s, want %s", got, ev)
	}
	if _, err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if log.Len() != 0 {
		t.Errorf("after undoing mark: %d events", log.Len())
	}

	// Redo both.
	if _, err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if got := log.Events()[0]; got != shifted {
		t.Errorf("after redoing both: %s, want %s", got, shifted)
	}
}

func TestDeleteCommand(t *testing.T) {
	log := timestamps.NewLog(timestamps.KindSingle)
	s := NewStack()

	ev := timestamps.Event{Onset: 7, Offset: 7}
	if err := log.Append(ev); err != nil {
		t.Fatal(err)
	}
	if err := log.Remove(ev); err != nil {
		t.Fatal(err)
	}
	s.Push(&DeleteCommand{Log: log, Event: ev})

	if _, err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if log.Len() != 1 {
		t.Error("undo of delete should restore the event")
	}
	if _, err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if log.Len() != 0 {
		t.Error("redo of delete should remove the event again")
	}
}
