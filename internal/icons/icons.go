package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Play    string
	Pause   string
	Stop    string
	Stem    string
	Loading string
	Ready   string
	Failed  string
	Volume  string
	Muted   string
}

var (
	nerdIcons = Icons{
		Play:    "\uf04b", // nf-fa-play
		Pause:   "\uf04c", // nf-fa-pause
		Stop:    "\uf04d", // nf-fa-stop
		Stem:    "󰎈 ",     // nf-md-music_note_eighth
		Loading: "\uf110", // nf-fa-spinner
		Ready:   "\uf00c", // nf-fa-check
		Failed:  "\uf00d", // nf-fa-times
		Volume:  "󰕾",      // nf-md-volume_high
		Muted:   "󰖁",      // nf-md-volume_off
	}

	unicodeIcons = Icons{
		Play:    "▶",
		Pause:   "⏸",
		Stop:    "⏹",
		Stem:    "🎵 ",
		Loading: "…",
		Ready:   "✓",
		Failed:  "✗",
		Volume:  "🔊",
		Muted:   "🔇",
	}

	noneIcons = Icons{
		Play:    ">",
		Pause:   "||",
		Stop:    "[]",
		Stem:    "",
		Loading: "~",
		Ready:   "+",
		Failed:  "x",
		Volume:  "vol",
		Muted:   "mute",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Play returns the playing indicator.
func Play() string {
	return current.Play
}

// Pause returns the paused indicator.
func Pause() string {
	return current.Pause
}

// Stop returns the stopped indicator.
func Stop() string {
	return current.Stop
}

// FormatStem formats a stem name with the appropriate icon.
func FormatStem(name string) string {
	return current.Stem + name
}

// Loading returns the indicator for a stem still being fetched.
func Loading() string {
	return current.Loading
}

// Ready returns the indicator for a decoded stem.
func Ready() string {
	return current.Ready
}

// Failed returns the indicator for a stem that could not be loaded.
func Failed() string {
	return current.Failed
}

// Volume returns the volume icon, or the mute icon when muted is set.
func Volume(muted bool) string {
	if muted {
		return current.Muted
	}
	return current.Volume
}
