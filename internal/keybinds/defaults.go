package keybinds

// defaultBindings is the stock binding table. Plain letters are lowercase; an
// uppercase letter (or an explicit shift+ prefix) is the shifted key.
var defaultBindings = []struct {
	action Action
	chord  string
}{
	{ActionExit, "q"},
	{ActionHelp, "h"},
	{ActionSaveTimestamp, "s"},
	{ActionShowStats, "t"},
	{ActionUndo, "ctrl+z"},
	{ActionRedo, "ctrl+shift+z"},
	{ActionTogglePlay, "space"},
	{ActionSeekForwardSmall, "d"},
	{ActionSeekBackSmall, "a"},
	{ActionSeekForwardMedium, "shift+d"},
	{ActionSeekBackMedium, "shift+a"},
	{ActionSeekForwardLarge, "p"},
	{ActionSeekBackLarge, "o"},
	{ActionSeekToFirstFrame, "1"},
	{ActionSeekToLastFrame, "0"},
	{ActionIncreaseSpeed, "x"},
	{ActionDecreaseSpeed, "z"},
	{ActionIncSelectedSmall, "down"},
	{ActionDecSelectedSmall, "up"},
	{ActionIncSelectedMedium, "shift+down"},
	{ActionDecSelectedMedium, "shift+up"},
	{ActionIncSelectedLarge, "ctrl+down"},
	{ActionDecSelectedLarge, "ctrl+up"},
	{ActionMoveToLastBoundary, "left"},
	{ActionMoveToNextBoundary, "right"},
	{ActionMoveToLastTimestamp, "shift+left"},
	{ActionMoveToNextTimestamp, "shift+right"},
	{ActionSelectCurrent, "enter"},
	{ActionDeleteSelected, "delete"},
}

// NewDefaultRegistry returns a registry loaded with the stock bindings.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range defaultBindings {
		r.bindLocked(b.action, MustChord(b.chord))
	}
	return r
}

// DefaultChordFor returns the stock chord for an action.
func DefaultChordFor(action Action) (Chord, bool) {
	for _, b := range defaultBindings {
		if b.action == action {
			return MustChord(b.chord), true
		}
	}
	return Chord{}, false
}
