/*
Package keybinds provides customizable keyboard binding management for the
scoring session.

# Overview

Every scoring operation is an Action. The Registry maps chords (a key plus an
optional Ctrl/Shift modifier set) to actions. Dispatch is an exact lookup: a
chord that is bound triggers its single action, a chord that is not bound does
nothing. All configuration problems are reported when a config is loaded or a
rebind is requested, never during dispatch.

# Components

Chord (chord.go):
  - Parses "Ctrl+Shift+Z", "shift+down", "q", "Space"
  - Uppercase letters fold to lowercase plus Shift, matching what the
    terminal reports for shifted keys
  - Canonical form "ctrl+shift+z", display form "Ctrl+Shift+Z"

Registry (registry.go):
  - chord → action map with a reverse action → chord index
  - Rebind rejects chords owned by another action (ErrChordConflict);
    RebindEvict steals them after user confirmation
  - Thread-safe; the remote bridge dispatches from its own goroutine

Defaults (defaults.go):
  - Stock binding table covering every action

Validator (validator.go):
  - Duplicate chords, unparseable chords, unknown actions (errors)
  - Unbound actions and reserved chords like ctrl+c (warnings)

Config (config.go):
  - JSON persistence (keybinds.json), action identifier → chord
  - LoadOrDefault layers the user file over the defaults
  - SaveRegistry runs after every successful rebind

# Configuration File Format

	{
	  "version": "1.0",
	  "bindings": {
	    "undo": "Ctrl+Z",
	    "redo": "Ctrl+Shift+Z",
	    "toggle_play": "Space",
	    "save_timestamp": ""
	  }
	}

Actions absent from the file keep their default chord. An empty chord string
unbinds the action.

# Example Usage

	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return err
	}

	if action, ok := registry.MatchKey(msg.String()); ok {
		// exactly one action fires
	}
	// no match: do nothing
*/
package keybinds
