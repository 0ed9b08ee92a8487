package stems

// LoadState is the load lifecycle of a Track.
type LoadState int

const (
	Unloaded LoadState = iota
	Loading
	Ready
	Failed
)

// String returns the state name.
func (s LoadState) String() string {
	switch s {
	case Unloaded:
		return "Unloaded"
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Settled reports whether the track finished loading, successfully or not.
func (s LoadState) Settled() bool {
	return s == Ready || s == Failed
}

// PlaybackState is the session-level transport state, shared by every track.
type PlaybackState int

const (
	Idle PlaybackState = iota
	Playing
	Paused
	Stopped
)

// String returns the state name.
func (s PlaybackState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
