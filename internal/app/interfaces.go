package app

import (
	"time"

	"github.com/llehouerou/stems/internal/stems"
)

// Session is the part of the stems engine the shell drives.
type Session interface {
	Subscribe() *stems.Subscription
	RequestLoad(source string)
	RequestTogglePlayback()
	RequestStop()
	Seek(delta time.Duration) (time.Duration, error)
	SeekTo(pos time.Duration) (time.Duration, error)
	SetTrackGain(name string, gain float64) (float64, error)
	Peaks(name string, n int) ([]float64, error)
	Snapshot() stems.Snapshot
	Tick()
}

// Verify stems.Session implements Session at compile time.
var _ Session = (*stems.Session)(nil)
