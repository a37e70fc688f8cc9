package timestamps

import (
	"fmt"
	"sort"
)

// Kind selects the scoring style for a log.
type Kind int

const (
	// KindOnsetOffset scores behavior bouts as (onset, offset) frame pairs.
	KindOnsetOffset Kind = iota
	// KindSingle scores single-frame events.
	KindSingle
)

func (k Kind) String() string {
	if k == KindSingle {
		return "single"
	}
	return "onset/offset"
}

// Event is a scored behavior bout in frames. For KindSingle logs
// Offset always equals Onset.
type Event struct {
	Onset  int `json:"onset"`
	Offset int `json:"offset"`
}

// normalize swaps a reversed pair so Onset <= Offset always holds.
func (e Event) normalize() Event {
	if e.Onset > e.Offset {
		e.Onset, e.Offset = e.Offset, e.Onset
	}
	return e
}

// Contains reports whether the frame falls inside the bout, inclusive.
func (e Event) Contains(frame int) bool {
	return frame >= e.Onset && frame <= e.Offset
}

func (e Event) String() string {
	if e.Onset == e.Offset {
		return fmt.Sprintf("%d", e.Onset)
	}
	return fmt.Sprintf("(%d, %d)", e.Onset, e.Offset)
}

// OverlapError reports an event that would overlap an existing one.
// Bouts may touch (offset == next onset) but never cross.
type OverlapError struct {
	Event    Event
	Existing Event
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("timestamp %s overlaps with %s", e.Event, e.Existing)
}

// ErrNotFound is returned when removing or editing an event that is not in
// the log.
var ErrNotFound = fmt.Errorf("timestamp not found")

// Log is an ordered list of scored events. Events stay sorted by onset and
// never overlap; a mutation that would break either property fails and
// leaves the log unchanged. A log also tracks the selected event and, for
// onset/offset scoring, the pending onset between the two marks of a bout.
type Log struct {
	kind     Kind
	events   []Event
	selected int // index into events, -1 when nothing selected
	pending  int // pending onset frame, -1 when no bout is open
}

// NewLog returns an empty log of the given kind.
func NewLog(kind Kind) *Log {
	return &Log{kind: kind, selected: -1, pending: -1}
}

// Kind returns the scoring style of the log.
func (l *Log) Kind() Kind { return l.kind }

// Len returns the number of scored events.
func (l *Log) Len() int { return len(l.events) }

// Events returns a copy of the event list, sorted by onset.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// EventAt returns the event at index i.
func (l *Log) EventAt(i int) (Event, bool) {
	if i < 0 || i >= len(l.events) {
		return Event{}, false
	}
	return l.events[i], true
}

// Append adds an event, keeping the list sorted. A reversed pair is
// normalized; for single logs the offset is forced to the onset. Fails with
// an OverlapError if the event crosses an existing bout.
func (l *Log) Append(e Event) error {
	e = l.coerce(e)

	i := sort.Search(len(l.events), func(i int) bool {
		return l.events[i].Onset >= e.Onset
	})

	if i > 0 && l.events[i-1].Offset > e.Onset {
		return &OverlapError{Event: e, Existing: l.events[i-1]}
	}
	if i < len(l.events) {
		next := l.events[i]
		if l.kind == KindSingle && next.Onset == e.Onset {
			return &OverlapError{Event: e, Existing: next}
		}
		if e.Offset > next.Onset {
			return &OverlapError{Event: e, Existing: next}
		}
	}

	selected, hasSel := l.Selected()
	l.events = append(l.events, Event{})
	copy(l.events[i+1:], l.events[i:])
	l.events[i] = e
	if hasSel {
		l.reselect(selected)
	}
	return nil
}

// Remove deletes the event from the log.
func (l *Log) Remove(e Event) error {
	e = l.coerce(e)
	i := l.indexOf(e)
	if i < 0 {
		return ErrNotFound
	}

	selected, hasSel := l.Selected()
	l.events = append(l.events[:i], l.events[i+1:]...)
	if hasSel {
		if selected == e {
			l.selected = -1
		} else {
			l.reselect(selected)
		}
	}
	return nil
}

// Edit replaces old with new, keeping order and non-overlap. On failure the
// old event is restored and the error returned.
func (l *Log) Edit(old, new Event) error {
	old = l.coerce(old)
	new = l.coerce(new)
	if old == new {
		return nil
	}

	if err := l.Remove(old); err != nil {
		return err
	}
	if err := l.Append(new); err != nil {
		// put the original back; it fit before, it fits now
		if restoreErr := l.Append(old); restoreErr != nil {
			return fmt.Errorf("restoring %s after failed edit: %w", old, restoreErr)
		}
		return err
	}
	return nil
}

// Mark scores the current frame. For single logs every mark appends an
// event. For onset/offset logs the first mark opens a bout and the second
// closes it; marking before the open onset is fine, the pair is normalized.
// The returned event is the scored bout (zero while a bout is open), and the
// flag reports whether a bout is open after the mark.
func (l *Log) Mark(frame int) (scored Event, open bool, err error) {
	if l.kind == KindSingle {
		e := Event{Onset: frame, Offset: frame}
		if err := l.Append(e); err != nil {
			return Event{}, false, err
		}
		return e, false, nil
	}

	if l.pending < 0 {
		l.pending = frame
		return Event{}, true, nil
	}

	e := Event{Onset: l.pending, Offset: frame}.normalize()
	if err := l.Append(e); err != nil {
		return Event{}, true, err
	}
	l.pending = -1
	return e, false, nil
}

// PendingOnset returns the open bout's onset, if any.
func (l *Log) PendingOnset() (int, bool) {
	if l.pending < 0 {
		return 0, false
	}
	return l.pending, true
}

// CancelPending discards an open bout without scoring it.
func (l *Log) CancelPending() {
	l.pending = -1
}

// Select marks the event at index i as selected.
func (l *Log) Select(i int) bool {
	if i < 0 || i >= len(l.events) {
		return false
	}
	l.selected = i
	return true
}

// ClearSelection deselects any selected event.
func (l *Log) ClearSelection() {
	l.selected = -1
}

// SelectedIndex returns the index of the selected event, -1 for none.
func (l *Log) SelectedIndex() int { return l.selected }

// Selected returns the selected event, if any.
func (l *Log) Selected() (Event, bool) {
	if l.selected < 0 || l.selected >= len(l.events) {
		return Event{}, false
	}
	return l.events[l.selected], true
}

// SelectAtFrame selects the event containing the frame. No containing event
// clears the selection.
func (l *Log) SelectAtFrame(frame int) (Event, bool) {
	for i, e := range l.events {
		if e.Contains(frame) {
			l.selected = i
			return e, true
		}
	}
	l.selected = -1
	return Event{}, false
}

// DeleteSelected removes the selected event and clears the selection.
func (l *Log) DeleteSelected() (Event, bool) {
	e, ok := l.Selected()
	if !ok {
		return Event{}, false
	}
	if err := l.Remove(e); err != nil {
		return Event{}, false
	}
	return e, true
}

// ShiftSelected moves the selected event by delta frames, onset and offset
// together. The selection follows the event. Returns the event before and
// after the shift.
func (l *Log) ShiftSelected(delta int) (old, new Event, err error) {
	e, ok := l.Selected()
	if !ok {
		return Event{}, Event{}, fmt.Errorf("no timestamp selected")
	}

	shifted := Event{Onset: e.Onset + delta, Offset: e.Offset + delta}
	if err := l.Edit(e, shifted); err != nil {
		return Event{}, Event{}, err
	}
	l.reselect(shifted)
	return e, shifted, nil
}

// NextBoundary returns the first onset or offset strictly after the frame.
func (l *Log) NextBoundary(frame int) (int, bool) {
	best, found := 0, false
	for _, b := range l.boundaries() {
		if b > frame {
			return b, true
		}
	}
	return best, found
}

// PrevBoundary returns the last onset or offset strictly before the frame.
func (l *Log) PrevBoundary(frame int) (int, bool) {
	best, found := 0, false
	for _, b := range l.boundaries() {
		if b < frame {
			best, found = b, true
		}
	}
	return best, found
}

// NextEvent returns the first event whose onset is strictly after the frame.
func (l *Log) NextEvent(frame int) (Event, bool) {
	for _, e := range l.events {
		if e.Onset > frame {
			return e, true
		}
	}
	return Event{}, false
}

// PrevEvent returns the last event whose onset is strictly before the frame.
func (l *Log) PrevEvent(frame int) (Event, bool) {
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Onset < frame {
			return l.events[i], true
		}
	}
	return Event{}, false
}

// boundaries lists every onset and offset in ascending order.
func (l *Log) boundaries() []int {
	out := make([]int, 0, len(l.events)*2)
	for _, e := range l.events {
		out = append(out, e.Onset)
		if e.Offset != e.Onset {
			out = append(out, e.Offset)
		}
	}
	sort.Ints(out)
	return out
}

// coerce normalizes an event for this log's kind.
func (l *Log) coerce(e Event) Event {
	e = e.normalize()
	if l.kind == KindSingle {
		e.Offset = e.Onset
	}
	return e
}

func (l *Log) indexOf(e Event) int {
	for i, have := range l.events {
		if have == e {
			return i
		}
	}
	return -1
}

// reselect points the selection at the given event after a mutation moved
// indices around.
func (l *Log) reselect(e Event) {
	l.selected = l.indexOf(e)
}
