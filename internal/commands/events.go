package commands

import (
	"fmt"

	"github.com/rootlab/vidscore/internal/timestamps"
)

// MarkCommand records a scored event so it can be unscored.
type MarkCommand struct {
	Log   *timestamps.Log
	Event timestamps.Event
}

func (c *MarkCommand) Undo() error { return c.Log.Remove(c.Event) }
func (c *MarkCommand) Redo() error { return c.Log.Append(c.Event) }
func (c *MarkCommand) Describe() string {
	return fmt.Sprintf("save timestamp %s", c.Event)
}

// DeleteCommand records a deleted event so it can be restored.
type DeleteCommand struct {
	Log   *timestamps.Log
	Event timestamps.Event
}

func (c *DeleteCommand) Undo() error { return c.Log.Append(c.Event) }
func (c *DeleteCommand) Redo() error { return c.Log.Remove(c.Event) }
func (c *DeleteCommand) Describe() string {
	return fmt.Sprintf("delete timestamp %s", c.Event)
}

// EditCommand records an edit (including shifts) so it can be reversed.
type EditCommand struct {
	Log *timestamps.Log
	Old timestamps.Event
	New timestamps.Event
}

func (c *EditCommand) Undo() error { return c.Log.Edit(c.New, c.Old) }
func (c *EditCommand) Redo() error { return c.Log.Edit(c.Old, c.New) }
func (c *EditCommand) Describe() string {
	return fmt.Sprintf("edit timestamp %s -> %s", c.Old, c.New)
}
