package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "input", "playback", "mixer"
}

// Bindings contains all key bindings, in help display order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionFocusInput, []string{"/", "o"}, "Enter a source", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Source input
	{ActionLoad, []string{"enter"}, "Fetch stems", "input"},
	{ActionCancel, []string{"esc"}, "Leave input", "input"},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause all stems", "playback"},
	{ActionStop, []string{"s"}, "Stop and rewind", "playback"},
	{ActionSeekBack, []string{"shift+left"}, "Seek -5s", "playback"},
	{ActionSeekForward, []string{"shift+right"}, "Seek +5s", "playback"},
	{ActionSeekBackLong, []string{"ctrl+left"}, "Seek -30s", "playback"},
	{ActionSeekForwardLong, []string{"ctrl+right"}, "Seek +30s", "playback"},
	{ActionJumpStart, []string{"home", "g"}, "Back to start", "playback"},

	// Mixer
	{ActionMoveUp, []string{"k", "up"}, "Previous stem", "mixer"},
	{ActionMoveDown, []string{"j", "down"}, "Next stem", "mixer"},
	{ActionGainDown, []string{"h", "left", "-"}, "Lower stem volume", "mixer"},
	{ActionGainUp, []string{"l", "right", "+", "="}, "Raise stem volume", "mixer"},
	{ActionMute, []string{"m"}, "Mute/unmute stem", "mixer"},
	{ActionSolo, []string{"S"}, "Solo stem", "mixer"},
	{ActionResetGain, []string{"0"}, "Reset stem volume", "mixer"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
