package commands

// Command is a reversible scoring operation. The operation has already been
// applied when it is pushed; Undo reverses it and Redo applies it again.
type Command interface {
	Undo() error
	Redo() error
	// Describe labels the command for the status line, e.g. "mark frame 120".
	Describe() string
}

// maxDepth bounds the history; the oldest command falls off the bottom.
const maxDepth = 1000

// Stack is a linear undo/redo history. Pushing a new command truncates the
// redo branch, the same way every editor does it.
type Stack struct {
	stack []Command
	index int // last applied command, -1 when fully undone
}

// NewStack returns an empty history.
func NewStack() *Stack {
	return &Stack{index: -1}
}

// Push records an already-applied command. Anything previously undone is no
// longer redoable.
func (s *Stack) Push(cmd Command) {
	s.stack = append(s.stack[:s.index+1], cmd)
	s.index++
	if len(s.stack) > maxDepth {
		copy(s.stack, s.stack[1:])
		s.stack = s.stack[:maxDepth]
		s.index--
	}
}

// Undo reverses the most recent applied command and returns it.
func (s *Stack) Undo() (Command, error) {
	if s.index < 0 {
		return nil, nil
	}
	cmd := s.stack[s.index]
	if err := cmd.Undo(); err != nil {
		return nil, err
	}
	s.index--
	return cmd, nil
}

// Redo re-applies the most recently undone command and returns it.
func (s *Stack) Redo() (Command, error) {
	if s.index >= len(s.stack)-1 {
		return nil, nil
	}
	cmd := s.stack[s.index+1]
	if err := cmd.Redo(); err != nil {
		return nil, err
	}
	s.index++
	return cmd, nil
}

// CanUndo reports whether there is anything to undo.
func (s *Stack) CanUndo() bool { return s.index >= 0 }

// CanRedo reports whether there is anything to redo.
func (s *Stack) CanRedo() bool { return s.index < len(s.stack)-1 }

// Len returns the number of commands in the history.
func (s *Stack) Len() int { return len(s.stack) }

// Clear drops the whole history.
func (s *Stack) Clear() {
	s.stack = nil
	s.index = -1
}
