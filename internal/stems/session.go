// Package stems is the synchronized multi-track playback engine: a Session
// loads the stems of one source through a provider, keeps them in a Registry
// and plays, pauses and stops them as one unit while each stem keeps its own
// gain.
package stems

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/llehouerou/stems/internal/audio"
	"github.com/llehouerou/stems/internal/errmsg"
	"github.com/llehouerou/stems/internal/provider"
)

// Status line messages.
const (
	msgProcessing    = "Processing %s... please wait (30-60s)"
	msgLoadingStems  = "Loading %d stems..."
	msgStemsLoaded   = "Stems loaded. Press space to play"
	msgPartialLoaded = "Stems loaded, %d unavailable. Press space to play"
	msgNoneLoaded    = "No stem could be loaded."
	msgInvalidSource = "Please enter a valid YouTube URL."
	msgNoStems       = "No stems returned from server."
	msgNoTracks      = "No tracks loaded yet."
	msgStillLoading  = "Stems are still loading, try again in a moment."
	msgNotPlaying    = "Nothing is playing."
	msgPlaying       = "Playing all tracks..."
	msgPaused        = "Paused."
	msgStopped       = "Stopped playback."
	msgFinished      = "Finished playback."
)

// TrackInfo is a copy of one track's state, safe to keep after the call.
type TrackInfo struct {
	Name     string
	Location string
	State    LoadState
	Gain     float64
	Duration time.Duration
	Size     int64
	Meta     audio.Meta
	Err      error
}

// Snapshot is a consistent copy of the session state for rendering.
type Snapshot struct {
	Source     string
	Generation uint64
	Loading    bool
	State      PlaybackState
	Position   time.Duration
	Duration   time.Duration
	Tracks     []TrackInfo
}

// Session owns one registry, its playback state and the load generation.
// Every mutation is serialized by the session lock; completions of provider
// calls and track loads that belong to a superseded generation are dropped.
// Sessions share nothing, several may run side by side on different decks.
type Session struct {
	mu sync.Mutex

	deck       *audio.Deck
	loader     *Loader
	registry   *Registry
	controller *Controller
	mixer      *Mixer

	generation uint64
	source     string
	loading    bool
	closed     bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	subs   []*Subscription
	subsMu sync.RWMutex
}

// New creates an Idle session with an empty registry. Stems are resolved by
// p and decoded by clips onto deck.
func New(deck *audio.Deck, p provider.Provider, clips ClipLoader) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		deck:   deck,
		loader: NewLoader(p),
		ctx:    ctx,
		cancel: cancel,
	}
	s.registry = NewRegistry(deck, clips, s.onTrackLoaded)
	s.controller = NewController(deck, s.registry)
	s.mixer = NewMixer(s.registry, s.emitGain)
	return s
}

// Subscribe creates a new event subscription.
func (s *Session) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Load resolves source through the provider and installs its stems. The
// previous registry and playback state are kept on failure. If another load
// starts before the provider answers, the result is dropped and Load returns
// ErrSuperseded.
func (s *Session) Load(ctx context.Context, source string) error {
	source, err := ValidateSource(source)
	if err != nil {
		s.emitStatus(msgInvalidSource, err)
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.generation++
	gen := s.generation
	s.loading = true
	s.mu.Unlock()

	s.emitStatus(fmt.Sprintf(msgProcessing, source), nil)
	res, err := s.loader.Fetch(ctx, source)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if gen != s.generation {
		return ErrSuperseded
	}
	s.loading = false

	if err != nil {
		switch {
		case errors.Is(err, ErrNoStemsReturned):
			s.emitStatus(msgNoStems, err)
		default:
			s.emitStatus(errmsg.Format(errmsg.OpStemsLoad, err), err)
		}
		return err
	}

	prev := s.controller.State()
	regGen := s.registry.ReplaceAll(res.Stems)
	s.controller.Reset()
	s.source = source

	s.emitReplaced(TracksReplaced{Generation: regGen, Source: source, Names: res.Names()})
	s.emitState(prev)
	s.emitStatus(fmt.Sprintf(msgLoadingStems, s.registry.Len()), nil)
	return nil
}

// onTrackLoaded receives load completions from registry goroutines.
func (s *Session) onTrackLoaded(res LoadResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.registry.Resolve(res) {
		return
	}

	t := res.Track
	allReady := s.registry.AllReady()
	s.emitLoaded(TrackLoaded{
		Generation: res.Generation,
		Name:       t.name,
		State:      t.state,
		Err:        t.err,
		AllReady:   allReady,
	})

	if t.state == Failed {
		s.emitStatus(errmsg.FormatWith(errmsg.OpStemFetch, t.name, errors.Unwrap(t.err)), t.err)
		if s.registry.Len() > 1 {
			s.emitWarning(PartialFailure{Name: t.name, Err: t.err})
		}
	}

	if !s.registry.Settled() {
		return
	}
	switch failed := len(s.registry.Failures()); {
	case allReady:
		s.emitStatus(msgStemsLoaded, nil)
	case failed < s.registry.Len():
		s.emitStatus(fmt.Sprintf(msgPartialLoaded, failed), nil)
	default:
		s.emitStatus(msgNoneLoaded, t.err)
	}
}

// Play starts every track in unison. Failed stems were already reported
// once when their load settled.
func (s *Session) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.controller.State()
	if err := s.controller.Play(); err != nil {
		s.reportTransport(errmsg.OpPlaybackStart, err)
		return err
	}
	s.emitState(prev)
	s.emitStatus(msgPlaying, nil)
	return nil
}

// Pause pauses every track, keeping positions.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.controller.State()
	if err := s.controller.Pause(); err != nil {
		s.reportTransport(errmsg.OpPlaybackPause, err)
		return err
	}
	s.emitState(prev)
	s.emitStatus(msgPaused, nil)
	return nil
}

// TogglePlayback pauses when playing and plays otherwise.
func (s *Session) TogglePlayback() error {
	s.mu.Lock()
	playing := s.controller.State() == Playing
	s.mu.Unlock()

	// The state may change between the check and the call; both
	// outcomes are valid transport commands.
	if playing {
		return s.Pause()
	}
	return s.Play()
}

// Stop stops every track and rewinds to the start.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.controller.State()
	if err := s.controller.Stop(); err != nil {
		s.reportTransport(errmsg.OpPlaybackStop, err)
		return err
	}
	s.emitState(prev)
	s.emitStatus(msgStopped, nil)
	return nil
}

// SeekTo moves every track to pos and returns the clamped position.
func (s *Session) SeekTo(pos time.Duration) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.controller.SeekTo(pos)
	if err != nil {
		s.reportTransport(errmsg.OpPlaybackSeek, err)
		return 0, err
	}
	return applied, nil
}

// Seek moves every track by delta from the current position.
func (s *Session) Seek(delta time.Duration) (time.Duration, error) {
	s.mu.Lock()
	pos := s.controller.Position() + delta
	s.mu.Unlock()
	return s.SeekTo(pos)
}

// SetTrackGain sets the gain of the named stem and returns the clamped value.
func (s *Session) SetTrackGain(name string, gain float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied, err := s.mixer.SetTrackGain(name, gain)
	if err != nil {
		s.emitStatus(errmsg.FormatWith(errmsg.OpGainChange, name, err), err)
		return 0, err
	}
	return applied, nil
}

// TrackGain returns the gain of the named stem.
func (s *Session) TrackGain(name string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.TrackGain(name)
}

// Tick stops the session once every track played to its end. The shell
// calls it on its refresh timer.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.controller.Finished() {
		return
	}
	prev := s.controller.State()
	if err := s.controller.Stop(); err != nil {
		return
	}
	s.emitState(prev)
	s.emitStatus(msgFinished, nil)
}

// RequestLoad starts Load in the background. The outcome is reported on
// the status channel.
func (s *Session) RequestLoad(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		_ = s.Load(s.ctx, source)
	}()
}

// RequestTogglePlayback toggles playback, reporting on the status channel.
func (s *Session) RequestTogglePlayback() {
	_ = s.TogglePlayback()
}

// RequestStop stops playback, reporting on the status channel.
func (s *Session) RequestStop() {
	_ = s.Stop()
}

// State returns the playback state.
func (s *Session) State() PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.State()
}

// Position returns the transport position.
func (s *Session) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Position()
}

// Duration returns the longest track duration.
func (s *Session) Duration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.Duration()
}

// TrackPosition returns the position of the named stem.
func (s *Session) TrackPosition(name string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.registry.Get(name)
	if !ok {
		return 0, &UnknownTrackError{Name: name}
	}
	return t.Position()
}

// Peaks returns n waveform peaks of the named stem, nil until it is Ready.
func (s *Session) Peaks(name string, n int) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.registry.Get(name)
	if !ok {
		return nil, &UnknownTrackError{Name: name}
	}
	return t.Peaks(n), nil
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Source:     s.source,
		Generation: s.registry.Generation(),
		Loading:    s.loading,
		State:      s.controller.State(),
		Position:   s.controller.Position(),
		Duration:   s.controller.Duration(),
	}
	for _, t := range s.registry.tracks {
		info := TrackInfo{
			Name:     t.name,
			Location: t.location,
			State:    t.state,
			Gain:     t.gain,
			Duration: t.Duration(),
			Err:      t.err,
		}
		if t.clip != nil {
			info.Size = t.clip.Size()
			info.Meta = t.clip.Meta()
		}
		snap.Tracks = append(snap.Tracks, info)
	}
	return snap
}

// Close releases every track and closes subscriptions. Loads still in
// flight are canceled and their results dropped.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cancel()
	s.registry.Release()
	s.mu.Unlock()

	s.wg.Wait()
	s.registry.Wait()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()
	return nil
}

func (s *Session) reportTransport(op errmsg.Op, err error) {
	switch {
	case errors.Is(err, ErrNoTracksLoaded):
		s.emitStatus(msgNoTracks, err)
	case errors.Is(err, ErrTracksNotReady) && !s.registry.Settled():
		s.emitStatus(msgStillLoading, err)
	case errors.Is(err, ErrNotPlaying):
		s.emitStatus(msgNotPlaying, err)
	default:
		s.emitStatus(errmsg.Format(op, err), err)
	}
}

func (s *Session) emitStatus(msg string, err error) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub.statusCh, Status{Message: msg, Err: err})
	}
}

func (s *Session) emitState(prev PlaybackState) {
	cur := s.controller.State()
	if cur == prev {
		return
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub.stateCh, StateChange{Previous: prev, Current: cur})
	}
}

func (s *Session) emitReplaced(e TracksReplaced) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub.replacedCh, e)
	}
}

func (s *Session) emitLoaded(e TrackLoaded) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub.loadedCh, e)
	}
}

func (s *Session) emitGain(e GainChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub.gainCh, e)
	}
}

func (s *Session) emitWarning(e PartialFailure) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub.warningCh, e)
	}
}
