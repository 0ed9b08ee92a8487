package app

import (
	"time"

	"github.com/llehouerou/stems/internal/stems"
)

// TickMsg refreshes the transport position and drives auto-stop.
type TickMsg time.Time

// StatusMsg carries a status line message from the session.
type StatusMsg stems.Status

// StateChangedMsg is sent when the playback state changes.
type StateChangedMsg stems.StateChange

// TracksReplacedMsg is sent when a load installs a new set of stems.
type TracksReplacedMsg stems.TracksReplaced

// TrackLoadedMsg is sent when one stem finished loading or failed.
type TrackLoadedMsg stems.TrackLoaded

// GainChangedMsg is sent when a stem gain changes.
type GainChangedMsg stems.GainChange

// WarningMsg is sent when a stem is unavailable while others still play.
type WarningMsg stems.PartialFailure

// SessionClosedMsg is sent when the session subscription is closed.
type SessionClosedMsg struct{}

// StderrMsg carries a line written to stderr by the audio backend.
type StderrMsg struct {
	Line string
}
