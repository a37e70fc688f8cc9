package keybinds

import (
	"fmt"
	"strings"
)

// Chord is a single key symbol combined with a modifier set.
// The zero value is not a valid chord.
type Chord struct {
	Key   string
	Ctrl  bool
	Shift bool
}

// special key symbols accepted verbatim (after lowercasing)
var namedKeys = map[string]bool{
	"space":     true,
	"enter":     true,
	"esc":       true,
	"tab":       true,
	"backspace": true,
	"delete":    true,
	"insert":    true,
	"up":        true,
	"down":      true,
	"left":      true,
	"right":     true,
	"home":      true,
	"end":       true,
	"pgup":      true,
	"pgdown":    true,
}

// ParseChord parses a chord spelled as modifiers joined to a key with '+',
// e.g. "Ctrl+Shift+Z", "shift+down", "Q", "Space". Modifier order and case
// are irrelevant; an uppercase letter implies Shift. Only Ctrl and Shift are
// recognized as modifiers.
func ParseChord(s string) (Chord, error) {
	// Terminals report the spacebar as a literal " ", which trimming would
	// swallow. Catch it before any whitespace handling.
	if s == " " {
		return Chord{Key: "space"}, nil
	}

	raw := strings.TrimSpace(s)
	if raw == "" {
		return Chord{}, fmt.Errorf("chord cannot be empty")
	}

	// A bare "+" is the plus key, not a separator.
	if raw == "+" {
		return Chord{Key: "+"}, nil
	}

	var c Chord
	parts := strings.Split(raw, "+")
	for i, part := range parts {
		token := strings.TrimSpace(part)
		last := i == len(parts)-1

		switch strings.ToLower(token) {
		case "ctrl", "control":
			if c.Ctrl {
				return Chord{}, fmt.Errorf("duplicate ctrl modifier in %q", s)
			}
			c.Ctrl = true
			continue
		case "shift":
			if c.Shift {
				return Chord{}, fmt.Errorf("duplicate shift modifier in %q", s)
			}
			c.Shift = true
			continue
		case "alt", "meta", "super", "cmd":
			return Chord{}, fmt.Errorf("unsupported modifier %q in %q", token, s)
		}

		if !last {
			return Chord{}, fmt.Errorf("unknown modifier %q in %q", token, s)
		}

		key, shift, err := normalizeKey(token)
		if err != nil {
			return Chord{}, fmt.Errorf("invalid chord %q: %w", s, err)
		}
		c.Key = key
		if shift {
			c.Shift = true
		}
	}

	if c.Key == "" {
		return Chord{}, fmt.Errorf("chord %q has modifiers but no key", s)
	}

	return c, nil
}

// MustChord parses a chord and panics on failure. For compile-time tables.
func MustChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}

// normalizeKey canonicalizes a key token. An uppercase letter folds to
// lowercase with the shift flag set, so "D" and "shift+d" are one chord.
func normalizeKey(token string) (key string, shift bool, err error) {
	if token == "" {
		return "", false, fmt.Errorf("missing key symbol")
	}

	runes := []rune(token)
	if len(runes) == 1 {
		r := runes[0]
		if r >= 'A' && r <= 'Z' {
			return strings.ToLower(token), true, nil
		}
		return token, false, nil
	}

	lower := strings.ToLower(token)
	if !namedKeys[lower] {
		return "", false, fmt.Errorf("unknown key symbol %q", token)
	}
	return lower, false, nil
}

// String returns the canonical form: lowercase, ctrl before shift,
// e.g. "ctrl+shift+z".
func (c Chord) String() string {
	var sb strings.Builder
	if c.Ctrl {
		sb.WriteString("ctrl+")
	}
	if c.Shift {
		sb.WriteString("shift+")
	}
	sb.WriteString(c.Key)
	return sb.String()
}

// Label returns the display form used in help views and config files,
// e.g. "Ctrl+Shift+Z", "Shift+Down", "Space", "q". A single letter is
// uppercased only under Shift so the label parses back to the same chord.
func (c Chord) Label() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	key := c.Key
	if len(key) == 1 {
		if c.Shift {
			key = strings.ToUpper(key)
		}
	} else {
		key = strings.ToUpper(key[:1]) + key[1:]
	}
	parts = append(parts, key)
	return strings.Join(parts, "+")
}

// IsZero reports whether the chord is unset.
func (c Chord) IsZero() bool {
	return c.Key == ""
}
