package keybinds

import (
	"fmt"
	"sort"
	"sync"
)

// ErrChordConflict is returned by Rebind when the requested chord is already
// owned by a different action. Callers that want to steal the chord use
// RebindEvict instead.
var ErrChordConflict = fmt.Errorf("chord already bound to another action")

// Binding pairs an action with the chord that triggers it.
type Binding struct {
	Action Action
	Chord  Chord
}

// Registry maps chords to actions. Lookups are exact: a chord with no entry
// matches nothing and the caller does nothing. Every update happens under the
// lock, so a concurrent Match sees either the old or the new mapping, never a
// half-applied one. The remote bridge dispatches from its own goroutine, which
// is why the lock is not optional.
type Registry struct {
	mu       sync.RWMutex
	byChord  map[Chord]Action
	byAction map[Action]Chord
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byChord:  make(map[Chord]Action),
		byAction: make(map[Action]Chord),
	}
}

// Match resolves a chord to its action. The boolean is false when the chord
// is unbound; that is not an error condition.
func (r *Registry) Match(c Chord) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	action, ok := r.byChord[c]
	return action, ok
}

// MatchKey parses a raw key string (e.g. a bubbletea key message) and resolves
// it. Unparseable input matches nothing, same as an unbound chord.
func (r *Registry) MatchKey(s string) (Action, bool) {
	c, err := ParseChord(s)
	if err != nil {
		return "", false
	}
	return r.Match(c)
}

// Rebind points the action at a new chord, releasing the action's previous
// chord. It fails with ErrChordConflict if another action owns the chord.
// Rebinding an action to its current chord is a no-op.
func (r *Registry) Rebind(action Action, c Chord) error {
	if c.IsZero() {
		return fmt.Errorf("cannot bind %s to an empty chord", action)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byChord[c]; ok {
		if owner == action {
			return nil
		}
		return fmt.Errorf("%w: %s is bound to %s", ErrChordConflict, c.Label(), owner)
	}

	r.bindLocked(action, c)
	return nil
}

// RebindEvict points the action at a new chord, unbinding whatever action
// owned it before. It returns the evicted action, if any. Use only after the
// user has confirmed the eviction.
func (r *Registry) RebindEvict(action Action, c Chord) (evicted Action, err error) {
	if c.IsZero() {
		return "", fmt.Errorf("cannot bind %s to an empty chord", action)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byChord[c]; ok && owner != action {
		delete(r.byAction, owner)
		evicted = owner
	}

	r.bindLocked(action, c)
	return evicted, nil
}

// bindLocked installs action→chord, releasing the action's old chord.
// Callers must hold r.mu.
func (r *Registry) bindLocked(action Action, c Chord) {
	if old, ok := r.byAction[action]; ok {
		delete(r.byChord, old)
	}
	r.byChord[c] = action
	r.byAction[action] = c
}

// Unbind removes the action's chord, leaving the action unreachable from the
// keyboard. Unbinding an unbound action is a no-op.
func (r *Registry) Unbind(action Action) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byAction[action]; ok {
		delete(r.byChord, old)
		delete(r.byAction, action)
	}
}

// ChordFor returns the chord currently bound to the action.
func (r *Registry) ChordFor(action Action) (Chord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byAction[action]
	return c, ok
}

// Bindings returns a snapshot of all bindings, ordered by AllActions with any
// stragglers sorted at the end.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order := make(map[Action]int, len(AllActions))
	for i, a := range AllActions {
		order[a] = i
	}

	bindings := make([]Binding, 0, len(r.byAction))
	for action, chord := range r.byAction {
		bindings = append(bindings, Binding{Action: action, Chord: chord})
	}
	sort.Slice(bindings, func(i, j int) bool {
		oi, iok := order[bindings[i].Action]
		oj, jok := order[bindings[j].Action]
		if iok != jok {
			return iok
		}
		if iok && jok && oi != oj {
			return oi < oj
		}
		return bindings[i].Action < bindings[j].Action
	})
	return bindings
}

// Len returns the number of bound actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byAction)
}

// Reset replaces all bindings with the defaults.
func (r *Registry) Reset() {
	defaults := NewDefaultRegistry()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byChord = defaults.byChord
	r.byAction = defaults.byAction
}
