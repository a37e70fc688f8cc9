package keybinds

import (
	"errors"
	"sync"
	"testing"
)

func TestMatchExactLookup(t *testing.T) {
	r := NewDefaultRegistry()

	tests := []struct {
		name       string
		key        string
		wantAction Action
		wantMatch  bool
	}{
		{"bound plain letter", "q", ActionExit, true},
		{"bound ctrl combo", "ctrl+z", ActionUndo, true},
		{"bound ctrl shift combo", "ctrl+shift+z", ActionRedo, true},
		{"uppercase spelling of shifted letter", "D", ActionSeekForwardMedium, true},
		{"bound named key", "space", ActionTogglePlay, true},
		{"spacebar as the terminal reports it", " ", ActionTogglePlay, true},
		{"unbound letter", "k", "", false},
		{"unbound combo", "ctrl+q", "", false},
		{"unparseable input", "ctrl+", "", false},
		{"empty input", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := r.MatchKey(tt.key)
			if ok != tt.wantMatch {
				t.Fatalf("MatchKey(%q) matched = %v, want %v", tt.key, ok, tt.wantMatch)
			}
			if ok && action != tt.wantAction {
				t.Errorf("MatchKey(%q) = %s, want %s", tt.key, action, tt.wantAction)
			}
		})
	}
}

func TestMatchDispatchesAtMostOne(t *testing.T) {
	r := NewDefaultRegistry()

	// Every bound chord resolves to exactly one action, and the reverse
	// index agrees with the forward map.
	for _, b := range r.Bindings() {
		action, ok := r.Match(b.Chord)
		if !ok {
			t.Fatalf("chord %s reported bound but did not match", b.Chord)
		}
		if action != b.Action {
			t.Errorf("chord %s matched %s, binding says %s", b.Chord, action, b.Action)
		}
	}
}

func TestRebind(t *testing.T) {
	r := NewDefaultRegistry()
	newChord := MustChord("ctrl+s")

	if err := r.Rebind(ActionSaveTimestamp, newChord); err != nil {
		t.Fatalf("Rebind failed: %v", err)
	}

	// New chord is live.
	if action, ok := r.Match(newChord); !ok || action != ActionSaveTimestamp {
		t.Errorf("new chord resolves to (%s, %v), want (%s, true)", action, ok, ActionSaveTimestamp)
	}

	// Old chord is dead.
	if action, ok := r.Match(MustChord("s")); ok {
		t.Errorf("old chord still resolves to %s", action)
	}

	// No other binding changed.
	if action, ok := r.Match(MustChord("q")); !ok || action != ActionExit {
		t.Errorf("unrelated binding disturbed: (%s, %v)", action, ok)
	}
}

func TestRebindConflictRejected(t *testing.T) {
	r := NewDefaultRegistry()

	// "q" belongs to exit; rebinding help onto it must fail and change nothing.
	err := r.Rebind(ActionHelp, MustChord("q"))
	if !errors.Is(err, ErrChordConflict) {
		t.Fatalf("expected ErrChordConflict, got %v", err)
	}

	if action, _ := r.Match(MustChord("q")); action != ActionExit {
		t.Errorf("conflicting rebind disturbed owner: q -> %s", action)
	}
	if c, _ := r.ChordFor(ActionHelp); c != MustChord("h") {
		t.Errorf("rejected rebind moved help to %s", c)
	}
}

func TestRebindSameChordNoop(t *testing.T) {
	r := NewDefaultRegistry()
	if err := r.Rebind(ActionExit, MustChord("q")); err != nil {
		t.Fatalf("rebinding an action to its own chord should succeed: %v", err)
	}
	if action, _ := r.Match(MustChord("q")); action != ActionExit {
		t.Errorf("self-rebind disturbed binding: q -> %s", action)
	}
}

func TestRebindEvict(t *testing.T) {
	r := NewDefaultRegistry()

	evicted, err := r.RebindEvict(ActionHelp, MustChord("q"))
	if err != nil {
		t.Fatalf("RebindEvict failed: %v", err)
	}
	if evicted != ActionExit {
		t.Errorf("evicted = %s, want %s", evicted, ActionExit)
	}

	if action, _ := r.Match(MustChord("q")); action != ActionHelp {
		t.Errorf("q -> %s, want %s", action, ActionHelp)
	}
	if _, ok := r.ChordFor(ActionExit); ok {
		t.Error("evicted action should be unbound")
	}
	if _, ok := r.Match(MustChord("h")); ok {
		t.Error("help's old chord should be released")
	}
}

func TestRebindEvictNoOwner(t *testing.T) {
	r := NewDefaultRegistry()

	evicted, err := r.RebindEvict(ActionHelp, MustChord("ctrl+h"))
	if err != nil {
		t.Fatalf("RebindEvict failed: %v", err)
	}
	if evicted != "" {
		t.Errorf("evicted = %s, want none", evicted)
	}
}

func TestUnbind(t *testing.T) {
	r := NewDefaultRegistry()

	r.Unbind(ActionHelp)
	if _, ok := r.Match(MustChord("h")); ok {
		t.Error("unbound chord still matches")
	}
	if _, ok := r.ChordFor(ActionHelp); ok {
		t.Error("unbound action still has a chord")
	}

	// Unbinding twice is fine.
	r.Unbind(ActionHelp)
}

func TestBindingsOrdered(t *testing.T) {
	r := NewDefaultRegistry()
	bindings := r.Bindings()

	if len(bindings) != len(AllActions) {
		t.Fatalf("got %d bindings, want %d", len(bindings), len(AllActions))
	}
	for i, b := range bindings {
		if b.Action != AllActions[i] {
			t.Errorf("bindings[%d] = %s, want %s", i, b.Action, AllActions[i])
		}
	}
}

func TestUniquenessInvariant(t *testing.T) {
	r := NewDefaultRegistry()

	// Churn the registry, then verify no chord maps to two actions.
	if err := r.Rebind(ActionExit, MustChord("ctrl+q")); err != nil {
		t.Fatal(err)
	}
	if _, err := r.RebindEvict(ActionHelp, MustChord("t")); err != nil {
		t.Fatal(err)
	}
	r.Unbind(ActionUndo)

	seen := make(map[Chord]Action)
	for _, b := range r.Bindings() {
		if prev, dup := seen[b.Chord]; dup {
			t.Fatalf("chord %s bound to both %s and %s", b.Chord, prev, b.Action)
		}
		seen[b.Chord] = b.Action
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewDefaultRegistry()
	chords := []Chord{MustChord("ctrl+s"), MustChord("s")}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.MatchKey("s")
				r.Bindings()
			}
		}()
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = r.RebindEvict(ActionSaveTimestamp, chords[(i+j)%2])
			}
		}(i)
	}
	wg.Wait()

	// Whatever interleaving happened, the action ended with exactly one chord.
	c, ok := r.ChordFor(ActionSaveTimestamp)
	if !ok {
		t.Fatal("save_timestamp lost its binding")
	}
	if action, _ := r.Match(c); action != ActionSaveTimestamp {
		t.Errorf("chord %s resolves to %s", c, action)
	}
}

func TestReset(t *testing.T) {
	r := NewDefaultRegistry()
	if _, err := r.RebindEvict(ActionExit, MustChord("e")); err != nil {
		t.Fatal(err)
	}

	r.Reset()
	if action, _ := r.Match(MustChord("q")); action != ActionExit {
		t.Error("Reset did not restore the default table")
	}
	if r.Len() != len(AllActions) {
		t.Errorf("Len() after Reset = %d, want %d", r.Len(), len(AllActions))
	}
}
