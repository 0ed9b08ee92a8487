package stems

import (
	"context"
	"errors"
	"sync"

	"github.com/llehouerou/stems/internal/audio"
	"github.com/llehouerou/stems/internal/provider"
)

// ClipLoader fetches and decodes one stem resource.
type ClipLoader interface {
	Load(ctx context.Context, location string) (*audio.Clip, error)
}

// ClipLoaderFunc adapts a function to the ClipLoader interface.
type ClipLoaderFunc func(ctx context.Context, location string) (*audio.Clip, error)

// Load implements ClipLoader.
func (f ClipLoaderFunc) Load(ctx context.Context, location string) (*audio.Clip, error) {
	return f(ctx, location)
}

// LoadResult is the completion of one track load. Generation is the
// registry generation the load was started under.
type LoadResult struct {
	Generation uint64
	Track      *Track
	Clip       *audio.Clip
	Err        error
}

// Registry holds the current batch of tracks in provider order. It is
// replaced as a whole; completions of loads started for a replaced batch are
// discarded by Resolve.
//
// Registry methods are not safe for concurrent use. Load completions are
// delivered from loader goroutines through the notify callback, which must
// serialize with the registry's other callers before calling Resolve.
type Registry struct {
	deck   *audio.Deck
	loader ClipLoader
	notify func(LoadResult)

	tracks     []*Track
	byName     map[string]*Track
	generation uint64
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewRegistry creates an empty registry.
func NewRegistry(deck *audio.Deck, loader ClipLoader, notify func(LoadResult)) *Registry {
	return &Registry{
		deck:   deck,
		loader: loader,
		notify: notify,
		byName: make(map[string]*Track),
	}
}

// ReplaceAll releases every current track and installs one Unloaded track
// per stem, then starts loading them all in parallel. It returns the new
// generation without waiting for any load.
func (r *Registry) ReplaceAll(stems []provider.Stem) uint64 {
	r.releaseTracks()

	r.generation++
	gen := r.generation
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel

	r.tracks = make([]*Track, 0, len(stems))
	r.byName = make(map[string]*Track, len(stems))
	for _, s := range stems {
		if _, dup := r.byName[s.Name]; dup {
			continue
		}
		t := NewTrack(r.deck, s.Name, s.Location)
		r.tracks = append(r.tracks, t)
		r.byName[s.Name] = t
	}

	for _, t := range r.tracks {
		if !t.beginLoad() {
			continue
		}
		r.wg.Add(1)
		go func(t *Track) {
			defer r.wg.Done()
			clip, err := r.loader.Load(ctx, t.location)
			r.notify(LoadResult{Generation: gen, Track: t, Clip: clip, Err: err})
		}(t)
	}
	return gen
}

// Resolve applies a load completion. Completions from a replaced generation,
// or for a track that is no longer registered, are dropped and Resolve
// returns false.
func (r *Registry) Resolve(res LoadResult) bool {
	if res.Generation != r.generation {
		return false
	}
	if t, ok := r.byName[res.Track.name]; !ok || t != res.Track {
		return false
	}
	res.Track.resolve(res.Clip, res.Err)
	return true
}

// Release drops every track and invalidates in-flight loads.
func (r *Registry) Release() {
	r.releaseTracks()
	r.generation++
	r.tracks = nil
	r.byName = make(map[string]*Track)
}

// Wait blocks until every load goroutine has delivered its completion.
// It must not be called while holding the lock notify acquires.
func (r *Registry) Wait() {
	r.wg.Wait()
}

func (r *Registry) releaseTracks() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	for _, t := range r.tracks {
		t.release()
	}
}

// Get returns the named track.
func (r *Registry) Get(name string) (*Track, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Tracks returns the tracks in provider order.
func (r *Registry) Tracks() []*Track {
	out := make([]*Track, len(r.tracks))
	copy(out, r.tracks)
	return out
}

// Len returns the number of tracks.
func (r *Registry) Len() int { return len(r.tracks) }

// Generation returns the generation of the current batch.
func (r *Registry) Generation() uint64 { return r.generation }

// AllReady reports whether every track is Ready. An empty registry is not ready.
func (r *Registry) AllReady() bool {
	if len(r.tracks) == 0 {
		return false
	}
	for _, t := range r.tracks {
		if t.state != Ready {
			return false
		}
	}
	return true
}

// AnyFailed reports whether at least one track Failed.
func (r *Registry) AnyFailed() bool {
	for _, t := range r.tracks {
		if t.state == Failed {
			return true
		}
	}
	return false
}

// Settled reports whether every track finished loading, successfully or not.
func (r *Registry) Settled() bool {
	for _, t := range r.tracks {
		if !t.state.Settled() {
			return false
		}
	}
	return true
}

// Failures returns the load errors of failed tracks in provider order.
func (r *Registry) Failures() []*TrackLoadError {
	var out []*TrackLoadError
	for _, t := range r.tracks {
		if t.state != Failed {
			continue
		}
		var tle *TrackLoadError
		if errors.As(t.err, &tle) {
			out = append(out, tle)
		}
	}
	return out
}

func (r *Registry) readyTracks() []*Track {
	var out []*Track
	for _, t := range r.tracks {
		if t.ready() {
			out = append(out, t)
		}
	}
	return out
}
