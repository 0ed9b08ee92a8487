package stems

import (
	"errors"
	"fmt"

	"github.com/llehouerou/stems/internal/provider"
)

var (
	// ErrInvalidInput is returned for an empty or malformed source identifier,
	// before any network or track work starts.
	ErrInvalidInput = errors.New("invalid source")
	// ErrProviderUnavailable is returned when the stem provider failed or
	// answered with a non-success status.
	ErrProviderUnavailable = provider.ErrUnavailable
	// ErrNoStemsReturned is returned when the provider answered without
	// usable stems.
	ErrNoStemsReturned = provider.ErrNoStems
	// ErrTrackLoadFailed marks a single stem that could not be fetched or decoded.
	ErrTrackLoadFailed = errors.New("track load failed")
	// ErrTracksNotReady is returned by transport commands while tracks are
	// still loading.
	ErrTracksNotReady = errors.New("tracks not ready")
	// ErrNoTracksLoaded is returned by transport commands on an empty registry.
	ErrNoTracksLoaded = errors.New("no tracks loaded")
	// ErrUnknownTrack is returned for a stem name outside the current registry.
	ErrUnknownTrack = errors.New("unknown track")
	// ErrTrackNotReady is returned by track transport before the track is Ready.
	ErrTrackNotReady = errors.New("track not ready")
	// ErrNotPlaying is returned by Pause when nothing is playing.
	ErrNotPlaying = errors.New("not playing")
	// ErrSuperseded is returned by Load when a newer load started before the
	// provider answered. It is never reported on the status channel.
	ErrSuperseded = errors.New("load superseded")
	// ErrClosed is returned by operations on a closed session.
	ErrClosed = errors.New("session closed")
)

// TrackLoadError records why a stem failed to load.
type TrackLoadError struct {
	Name string
	Err  error
}

func (e *TrackLoadError) Error() string {
	return fmt.Sprintf("stem %q: %v", e.Name, e.Err)
}

// Is reports ErrTrackLoadFailed as the error kind.
func (e *TrackLoadError) Is(target error) bool {
	return target == ErrTrackLoadFailed
}

func (e *TrackLoadError) Unwrap() error { return e.Err }

// UnknownTrackError names a stem that is not in the current registry.
type UnknownTrackError struct {
	Name string
}

func (e *UnknownTrackError) Error() string {
	return fmt.Sprintf("unknown track %q", e.Name)
}

// Is reports ErrUnknownTrack as the error kind.
func (e *UnknownTrackError) Is(target error) bool {
	return target == ErrUnknownTrack
}
