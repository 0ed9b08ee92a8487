// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionHelp       Action = "help"
	ActionFocusInput Action = "focus_input"

	// Source input actions
	ActionLoad   Action = "load"   // enter - fetch stems for the typed source
	ActionCancel Action = "cancel" // esc - leave the input

	// Playback actions, applied to every stem at once
	ActionPlayPause       Action = "play_pause"
	ActionStop            Action = "stop"
	ActionSeekForward     Action = "seek_forward"
	ActionSeekBack        Action = "seek_back"
	ActionSeekForwardLong Action = "seek_forward_long"
	ActionSeekBackLong    Action = "seek_back_long"
	ActionJumpStart       Action = "jump_start"

	// Mixer actions, applied to the selected stem
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionGainUp    Action = "gain_up"
	ActionGainDown  Action = "gain_down"
	ActionMute      Action = "mute"
	ActionSolo      Action = "solo"
	ActionResetGain Action = "reset_gain"
)
