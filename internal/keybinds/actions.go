package keybinds

// Action identifies a user-invokable scoring operation.
type Action string

const (
	ActionExit                Action = "exit"
	ActionHelp                Action = "help"
	ActionSaveTimestamp       Action = "save_timestamp"
	ActionShowStats           Action = "show_stats"
	ActionUndo                Action = "undo"
	ActionRedo                Action = "redo"
	ActionTogglePlay          Action = "toggle_play"
	ActionSeekForwardSmall    Action = "seek_forward_small_frames"
	ActionSeekBackSmall       Action = "seek_back_small_frames"
	ActionSeekForwardMedium   Action = "seek_forward_medium_frames"
	ActionSeekBackMedium      Action = "seek_back_medium_frames"
	ActionSeekForwardLarge    Action = "seek_forward_large_frames"
	ActionSeekBackLarge       Action = "seek_back_large_frames"
	ActionSeekToFirstFrame    Action = "seek_to_first_frame"
	ActionSeekToLastFrame     Action = "seek_to_last_frame"
	ActionIncreaseSpeed       Action = "increase_playback_speed"
	ActionDecreaseSpeed       Action = "decrease_playback_speed"
	ActionIncSelectedSmall    Action = "increment_selected_timestamp_by_seek_small"
	ActionDecSelectedSmall    Action = "decrement_selected_timestamp_by_seek_small"
	ActionIncSelectedMedium   Action = "increment_selected_timestamp_by_seek_medium"
	ActionDecSelectedMedium   Action = "decrement_selected_timestamp_by_seek_medium"
	ActionIncSelectedLarge    Action = "increment_selected_timestamp_by_seek_large"
	ActionDecSelectedLarge    Action = "decrement_selected_timestamp_by_seek_large"
	ActionMoveToLastBoundary  Action = "move_to_last_onset_offset"
	ActionMoveToNextBoundary  Action = "move_to_next_onset_offset"
	ActionMoveToLastTimestamp Action = "move_to_last_timestamp"
	ActionMoveToNextTimestamp Action = "move_to_next_timestamp"
	ActionSelectCurrent       Action = "select_current_timestamp"
	ActionDeleteSelected      Action = "delete_selected_timestamp"
)

// ActionInfo carries the user-facing metadata for an action.
type ActionInfo struct {
	Action Action
	Label  string
	Help   string
}

// AllActions lists every action in display order. The order matches the
// default keybinding table shown in the help view.
var AllActions = []Action{
	ActionExit,
	ActionHelp,
	ActionSaveTimestamp,
	ActionShowStats,
	ActionUndo,
	ActionRedo,
	ActionTogglePlay,
	ActionSeekForwardSmall,
	ActionSeekBackSmall,
	ActionSeekForwardMedium,
	ActionSeekBackMedium,
	ActionSeekForwardLarge,
	ActionSeekBackLarge,
	ActionSeekToFirstFrame,
	ActionSeekToLastFrame,
	ActionIncreaseSpeed,
	ActionDecreaseSpeed,
	ActionIncSelectedSmall,
	ActionDecSelectedSmall,
	ActionIncSelectedMedium,
	ActionDecSelectedMedium,
	ActionIncSelectedLarge,
	ActionDecSelectedLarge,
	ActionMoveToLastBoundary,
	ActionMoveToNextBoundary,
	ActionMoveToLastTimestamp,
	ActionMoveToNextTimestamp,
	ActionSelectCurrent,
	ActionDeleteSelected,
}

var actionInfos = map[Action]ActionInfo{
	ActionExit:                {ActionExit, "Exit", "Quit the program and save all timestamps to file"},
	ActionHelp:                {ActionHelp, "Help", "Display the help menu"},
	ActionSaveTimestamp:       {ActionSaveTimestamp, "Save Timestamp", "Save timestamp of current frame"},
	ActionShowStats:           {ActionShowStats, "Show Stats", "Display the current stats"},
	ActionUndo:                {ActionUndo, "Undo", "Undo the last action"},
	ActionRedo:                {ActionRedo, "Redo", "Redo the last undo"},
	ActionTogglePlay:          {ActionTogglePlay, "Toggle Play", "Pause/play"},
	ActionSeekForwardSmall:    {ActionSeekForwardSmall, "Seek Forward Small Frames", "Seek forward by seek_small frames"},
	ActionSeekBackSmall:       {ActionSeekBackSmall, "Seek Back Small Frames", "Seek backward by seek_small frames"},
	ActionSeekForwardMedium:   {ActionSeekForwardMedium, "Seek Forward Medium Frames", "Seek forward by seek_medium frames"},
	ActionSeekBackMedium:      {ActionSeekBackMedium, "Seek Back Medium Frames", "Seek backward by seek_medium frames"},
	ActionSeekForwardLarge:    {ActionSeekForwardLarge, "Seek Forward Large Frames", "Seek forward by seek_large frames"},
	ActionSeekBackLarge:       {ActionSeekBackLarge, "Seek Back Large Frames", "Seek backward by seek_large frames"},
	ActionSeekToFirstFrame:    {ActionSeekToFirstFrame, "Seek To First Frame", "Seek to the first frame"},
	ActionSeekToLastFrame:     {ActionSeekToLastFrame, "Seek To Last Frame", "Seek to the last frame"},
	ActionIncreaseSpeed:       {ActionIncreaseSpeed, "Increase Playback Speed", "Increase playback speed by playback_speed_modulator"},
	ActionDecreaseSpeed:       {ActionDecreaseSpeed, "Decrease Playback Speed", "Decrease playback speed by playback_speed_modulator"},
	ActionIncSelectedSmall:    {ActionIncSelectedSmall, "Increment Selected Timestamp (Small)", "Increment the selected timestamp by seek_timestamp_small"},
	ActionDecSelectedSmall:    {ActionDecSelectedSmall, "Decrement Selected Timestamp (Small)", "Decrement the selected timestamp by seek_timestamp_small"},
	ActionIncSelectedMedium:   {ActionIncSelectedMedium, "Increment Selected Timestamp (Medium)", "Increment the selected timestamp by seek_timestamp_medium"},
	ActionDecSelectedMedium:   {ActionDecSelectedMedium, "Decrement Selected Timestamp (Medium)", "Decrement the selected timestamp by seek_timestamp_medium"},
	ActionIncSelectedLarge:    {ActionIncSelectedLarge, "Increment Selected Timestamp (Large)", "Increment the selected timestamp by seek_timestamp_large"},
	ActionDecSelectedLarge:    {ActionDecSelectedLarge, "Decrement Selected Timestamp (Large)", "Decrement the selected timestamp by seek_timestamp_large"},
	ActionMoveToLastBoundary:  {ActionMoveToLastBoundary, "Move To Last Onset/Offset", "Move to the last onset/offset timestamp"},
	ActionMoveToNextBoundary:  {ActionMoveToNextBoundary, "Move To Next Onset/Offset", "Move to the next onset/offset timestamp"},
	ActionMoveToLastTimestamp: {ActionMoveToLastTimestamp, "Move To Last Timestamp", "Move to the last timestamp"},
	ActionMoveToNextTimestamp: {ActionMoveToNextTimestamp, "Move To Next Timestamp", "Move to the next timestamp"},
	ActionSelectCurrent:       {ActionSelectCurrent, "Select Current Timestamp", "Select the current timestamp"},
	ActionDeleteSelected:      {ActionDeleteSelected, "Delete Selected Timestamp", "Delete the selected timestamp"},
}

// InfoFor returns the metadata for an action. Unknown actions get a
// placeholder so callers can render them without a nil check.
func InfoFor(action Action) ActionInfo {
	if info, ok := actionInfos[action]; ok {
		return info
	}
	return ActionInfo{Action: action, Label: string(action)}
}

// IsKnown reports whether the action is part of the closed action set.
func IsKnown(action Action) bool {
	_, ok := actionInfos[action]
	return ok
}

// ActionFromString resolves an identifier to a known action.
func ActionFromString(s string) (Action, bool) {
	a := Action(s)
	return a, IsKnown(a)
}
