//go:build linux

package mpris

import (
	"time"

	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/stems/internal/stems"
)

// Adapter exposes a stems session over MPRIS on the session bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts an MPRIS adapter for t.
func New(t Transport) (*Adapter, error) {
	a := &Adapter{
		server: server.NewServer("stems", &rootAdapter{}, &playerAdapter{transport: t}),
	}

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // the TUI owns its lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "Stems", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https", "http", "file"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac", "audio/wav", "audio/x-wav"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	transport Transport
}

func (p *playerAdapter) Next() error {
	return nil // a session holds a single source
}

func (p *playerAdapter) Previous() error {
	_, err := p.transport.SeekTo(0)
	return err
}

func (p *playerAdapter) Pause() error {
	if p.transport.State() != stems.Playing {
		return nil
	}
	return p.transport.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.transport.TogglePlayback()
}

func (p *playerAdapter) Stop() error {
	return p.transport.Stop()
}

func (p *playerAdapter) Play() error {
	if p.transport.State() == stems.Playing {
		return nil
	}
	return p.transport.Play()
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	_, err := p.transport.Seek(time.Duration(offset) * time.Microsecond)
	return err
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	_, err := p.transport.SeekTo(time.Duration(position) * time.Microsecond)
	return err
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.transport.State()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return metadata(p.transport.Snapshot()), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // gain is per stem
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.transport.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return len(p.transport.Snapshot().Tracks) > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return len(p.transport.Snapshot().Tracks) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
