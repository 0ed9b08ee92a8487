package stems

import (
	"time"

	"github.com/llehouerou/stems/internal/audio"
)

// Track is one stem's playable unit. It exclusively owns its voice on the
// deck; the voice is detached when the track is released.
//
// A Track is not safe for concurrent mutation: the Session serializes every
// call. Voice access goes through the deck lock.
type Track struct {
	name     string
	location string
	state    LoadState
	gain     float64
	deck     *audio.Deck
	clip     *audio.Clip
	voice    *audio.Voice
	err      error
	released bool
}

// NewTrack creates an Unloaded track with full gain.
func NewTrack(deck *audio.Deck, name, location string) *Track {
	return &Track{
		name:     name,
		location: location,
		state:    Unloaded,
		gain:     1,
		deck:     deck,
	}
}

// Name returns the stem name.
func (t *Track) Name() string { return t.name }

// Location returns the resource location.
func (t *Track) Location() string { return t.location }

// State returns the load state.
func (t *Track) State() LoadState { return t.state }

// Err returns the load failure, if the track Failed.
func (t *Track) Err() error { return t.err }

// Gain returns the last gain set, applied or not.
func (t *Track) Gain() float64 { return t.gain }

// Clip returns the decoded clip once Ready.
func (t *Track) Clip() *audio.Clip { return t.clip }

func (t *Track) beginLoad() bool {
	if t.state != Unloaded {
		return false
	}
	t.state = Loading
	return true
}

// resolve settles a Loading track. On success the clip is attached to the
// deck with the retained gain, so a gain set while loading is never lost.
func (t *Track) resolve(clip *audio.Clip, err error) {
	if t.state != Loading || t.released {
		return
	}
	if err != nil {
		t.state = Failed
		t.err = &TrackLoadError{Name: t.name, Err: err}
		return
	}
	t.clip = clip
	t.voice = t.deck.Attach(clip, t.gain)
	t.state = Ready
}

// release detaches the voice. The track cannot be played afterwards.
func (t *Track) release() {
	t.released = true
	if t.voice != nil {
		t.deck.Detach(t.voice)
		t.voice = nil
	}
}

// SetGain clamps gain to [0, 1] and applies it when Ready; otherwise the
// value is kept for when the track becomes Ready. It returns the clamped value.
func (t *Track) SetGain(gain float64) float64 {
	gain = audio.ClampGain(gain)
	t.gain = gain
	if t.voice != nil {
		t.deck.Lock()
		t.voice.SetGain(gain)
		t.deck.Unlock()
	}
	return gain
}

// Play starts or resumes the track.
func (t *Track) Play() error {
	if t.voice == nil {
		return ErrTrackNotReady
	}
	t.deck.Lock()
	t.voice.Play()
	t.deck.Unlock()
	return nil
}

// Pause halts the track and keeps its position.
func (t *Track) Pause() error {
	if t.voice == nil {
		return ErrTrackNotReady
	}
	t.deck.Lock()
	t.voice.Pause()
	t.deck.Unlock()
	return nil
}

// Stop halts the track and rewinds it.
func (t *Track) Stop() error {
	if t.voice == nil {
		return ErrTrackNotReady
	}
	t.deck.Lock()
	t.voice.Stop()
	t.deck.Unlock()
	return nil
}

// Position returns the playback position.
func (t *Track) Position() (time.Duration, error) {
	if t.voice == nil {
		return 0, ErrTrackNotReady
	}
	t.deck.Lock()
	defer t.deck.Unlock()
	return t.voice.Position(), nil
}

// Duration returns the clip length, zero before Ready.
func (t *Track) Duration() time.Duration {
	if t.clip == nil {
		return 0
	}
	return t.clip.Duration()
}

// Peaks returns n normalized amplitude peaks, nil before Ready.
func (t *Track) Peaks(n int) []float64 {
	if t.clip == nil {
		return nil
	}
	return t.clip.Peaks(n)
}

// ready reports whether the track has a voice. Ready tracks always do,
// until released.
func (t *Track) ready() bool { return t.voice != nil }
