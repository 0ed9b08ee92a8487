package stems

import (
	"errors"
	"fmt"
	"time"

	"github.com/llehouerou/stems/internal/audio"
)

// Controller drives every track of a registry as one unit. Transport changes
// are applied to all voices inside a single deck lock, so voices started
// together stay on the same sample frame.
type Controller struct {
	deck     *audio.Deck
	registry *Registry
	state    PlaybackState
}

// NewController creates an Idle controller over registry.
func NewController(deck *audio.Deck, registry *Registry) *Controller {
	return &Controller{deck: deck, registry: registry, state: Idle}
}

// State returns the session playback state.
func (c *Controller) State() PlaybackState { return c.state }

// Reset returns the controller to Idle, used when the registry is replaced.
func (c *Controller) Reset() { c.state = Idle }

// Play starts every Ready track from its current position. It requires
// every track that has not failed to be Ready; it never queues the request.
func (c *Controller) Play() error {
	if c.registry.Len() == 0 {
		return ErrNoTracksLoaded
	}
	if !c.registry.Settled() {
		return ErrTracksNotReady
	}
	ready := c.registry.readyTracks()
	if len(ready) == 0 {
		failures := c.registry.Failures()
		errs := make([]error, len(failures))
		for i, f := range failures {
			errs[i] = f
		}
		return fmt.Errorf("%w: %w", ErrTracksNotReady, errors.Join(errs...))
	}

	c.deck.Lock()
	for _, t := range ready {
		t.voice.Play()
	}
	c.deck.Unlock()
	c.state = Playing
	return nil
}

// Pause halts every track and keeps positions. Only legal while Playing.
func (c *Controller) Pause() error {
	if c.state != Playing {
		return ErrNotPlaying
	}
	c.deck.Lock()
	for _, t := range c.registry.readyTracks() {
		t.voice.Pause()
	}
	c.deck.Unlock()
	c.state = Paused
	return nil
}

// Toggle pauses when Playing and plays otherwise.
func (c *Controller) Toggle() error {
	if c.state == Playing {
		return c.Pause()
	}
	return c.Play()
}

// Stop halts every track and rewinds them to zero. Stopping twice is harmless.
func (c *Controller) Stop() error {
	if c.registry.Len() == 0 {
		return ErrNoTracksLoaded
	}
	c.deck.Lock()
	for _, t := range c.registry.readyTracks() {
		t.voice.Stop()
	}
	c.deck.Unlock()
	c.state = Stopped
	return nil
}

// SeekTo moves every Ready track to pos, clamped to [0, Duration()].
// The transport state is unchanged.
func (c *Controller) SeekTo(pos time.Duration) (time.Duration, error) {
	if c.registry.Len() == 0 {
		return 0, ErrNoTracksLoaded
	}
	// A track still loading attaches at zero later, so seeking now would
	// split the batch.
	if !c.registry.Settled() {
		return 0, ErrTracksNotReady
	}
	ready := c.registry.readyTracks()
	if len(ready) == 0 {
		return 0, ErrTracksNotReady
	}
	pos = max(0, min(pos, c.Duration()))

	c.deck.Lock()
	for _, t := range ready {
		t.voice.Seek(pos)
	}
	c.deck.Unlock()
	return pos, nil
}

// Position returns the shared transport position, zero when no track is Ready.
// Tracks shorter than the longest one stop advancing at their end, so the
// furthest position is the transport position.
func (c *Controller) Position() time.Duration {
	var pos time.Duration
	ready := c.registry.readyTracks()
	c.deck.Lock()
	defer c.deck.Unlock()
	for _, t := range ready {
		pos = max(pos, t.voice.Position())
	}
	return pos
}

// Duration returns the longest Ready track duration.
func (c *Controller) Duration() time.Duration {
	var d time.Duration
	for _, t := range c.registry.readyTracks() {
		d = max(d, t.Duration())
	}
	return d
}

// Finished reports whether playback ran off the end of every Ready track.
func (c *Controller) Finished() bool {
	if c.state != Playing {
		return false
	}
	ready := c.registry.readyTracks()
	if len(ready) == 0 {
		return false
	}
	c.deck.Lock()
	defer c.deck.Unlock()
	for _, t := range ready {
		if !t.voice.Ended() {
			return false
		}
	}
	return true
}
