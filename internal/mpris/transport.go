package mpris

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/stems/internal/stems"
)

// Transport is the part of a stems session the adapter drives.
type Transport interface {
	Play() error
	Pause() error
	TogglePlayback() error
	Stop() error
	Seek(delta time.Duration) (time.Duration, error)
	SeekTo(pos time.Duration) (time.Duration, error)
	State() stems.PlaybackState
	Position() time.Duration
	Snapshot() stems.Snapshot
}

// Verify Session satisfies Transport at compile time.
var _ Transport = (*stems.Session)(nil)

func playbackStatus(s stems.PlaybackState) types.PlaybackStatus {
	switch s {
	case stems.Playing:
		return types.PlaybackStatusPlaying
	case stems.Paused:
		return types.PlaybackStatusPaused
	case stems.Idle, stems.Stopped:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

// metadata describes the loaded source as a single MPRIS track.
func metadata(snap stems.Snapshot) types.Metadata {
	if len(snap.Tracks) == 0 {
		return types.Metadata{}
	}

	names := make([]string, len(snap.Tracks))
	locations := make([]string, len(snap.Tracks))
	var tagged stems.TrackInfo
	for i, t := range snap.Tracks {
		names[i] = t.Name
		locations[i] = t.Location
		if tagged.Meta.Title == "" && t.Meta.Title != "" {
			tagged = t
		}
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.Source, snap.Generation)),
		Length:  types.Microseconds(snap.Duration.Microseconds()),
		Title:   snap.Source,
		Artist:  []string{strings.Join(names, " · ")},
	}
	if tagged.Meta.Title != "" {
		meta.Title = tagged.Meta.Title
		meta.Album = tagged.Meta.Album
		if tagged.Meta.Artist != "" {
			meta.Artist = []string{tagged.Meta.Artist}
		}
	}
	if art := ArtURL(snap.Source, locations); art != "" {
		meta.ArtUrl = art
	}
	return meta
}

func formatTrackID(source string, generation uint64) string {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%s#%d", source, generation)
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
