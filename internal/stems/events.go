package stems

// StateChange is emitted when the session playback state changes.
type StateChange struct {
	Previous PlaybackState
	Current  PlaybackState
}

// TracksReplaced is emitted when a load installs a new batch of tracks.
// Subscribers rebuild their per-track views from Names.
type TracksReplaced struct {
	Generation uint64
	Source     string
	Names      []string
}

// TrackLoaded is emitted when a track of the current batch settles.
type TrackLoaded struct {
	Generation uint64
	Name       string
	State      LoadState
	Err        error
	AllReady   bool
}

// PartialFailure warns that a stem is unavailable while the others remain
// playable.
type PartialFailure struct {
	Name string
	Err  error
}

// Status is a human-readable message for the status line. Err is set when
// the message reports a failure.
type Status struct {
	Message string
	Err     error
}
