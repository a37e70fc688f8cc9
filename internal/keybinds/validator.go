package keybinds

import (
	"fmt"
	"strings"
)

// ValidationError represents a keybinding validation error
type ValidationError struct {
	Type    string // "conflict", "invalid", "warning"
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("[%s] %s", e.Type, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Key, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates keybinding configurations
type Validator struct {
	// reservedChords are chords that should not be rebound
	reservedChords map[Chord]bool
}

// NewValidator creates a new keybinding validator
func NewValidator() *Validator {
	return &Validator{
		reservedChords: map[Chord]bool{
			{Key: "c", Ctrl: true}: true, // Force quit should always work
		},
	}
}

// ValidateConfig validates a configuration before applying it.
// All problems surface here, at load time; dispatch never errors.
func (v *Validator) ValidateConfig(config *Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	seen := make(map[Chord]Action)

	for actionStr, chordStr := range config.Bindings {
		action, known := ActionFromString(actionStr)
		if !known {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Key:     actionStr,
				Message: "unknown action",
			})
			continue
		}

		// Empty chord string means "unbind"; flagged as a warning below.
		if strings.TrimSpace(chordStr) == "" {
			continue
		}

		chord, err := ParseChord(chordStr)
		if err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "invalid",
				Key:     chordStr,
				Message: fmt.Sprintf("unparseable chord for %s: %v", action, err),
			})
			continue
		}

		if prev, dup := seen[chord]; dup {
			result.Errors = append(result.Errors, ValidationError{
				Type:    "conflict",
				Key:     chord.Label(),
				Message: fmt.Sprintf("bound to both %s and %s", prev, action),
			})
			continue
		}
		seen[chord] = action

		if v.reservedChords[chord] {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Key:     chord.Label(),
				Message: "reserved chord rebound (force quit may stop working)",
			})
		}
	}

	// Defaults still cover unmentioned actions, so an unbound action can only
	// happen through an explicit empty chord string. Flag it.
	for actionStr, chordStr := range config.Bindings {
		if strings.TrimSpace(chordStr) == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Key:     actionStr,
				Message: "action left unbound",
			})
		}
	}

	return result
}

// ValidateRegistry checks a live registry for unbound actions and reserved
// chord usage. Structural uniqueness is guaranteed by the registry itself.
func (v *Validator) ValidateRegistry(registry *Registry) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	for _, action := range AllActions {
		if _, ok := registry.ChordFor(action); !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Key:     string(action),
				Message: "action has no binding",
			})
		}
	}

	for chord := range v.reservedChords {
		if action, ok := registry.Match(chord); ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "warning",
				Key:     chord.Label(),
				Message: fmt.Sprintf("reserved chord bound to %s", action),
			})
		}
	}

	return result
}
