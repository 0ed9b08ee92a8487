package audio

import (
	"slices"
	"sync"

	"github.com/gopxl/beep/v2"
)

// Verify Deck implements beep.Streamer at compile time.
var _ beep.Streamer = (*Deck)(nil)

// Deck mixes every attached Voice into one stream. Every voice that is
// playing consumes exactly the same number of samples per Stream call, so
// voices started in the same locked section stay sample-aligned for as long
// as they play.
//
// Voice methods mutate state read by the audio thread: call them between
// Lock and Unlock, the way beep controls are mutated under speaker.Lock.
type Deck struct {
	mu      sync.Mutex
	rate    beep.SampleRate
	voices  []*Voice
	scratch [][2]float64
}

// NewDeck creates a deck mixing at rate.
func NewDeck(rate beep.SampleRate) *Deck {
	return &Deck{rate: rate}
}

// SampleRate returns the mixing rate; clips must be decoded to it.
func (d *Deck) SampleRate() beep.SampleRate { return d.rate }

// Lock locks the deck against the audio thread.
func (d *Deck) Lock() { d.mu.Lock() }

// Unlock unlocks the deck.
func (d *Deck) Unlock() { d.mu.Unlock() }

// Attach adds a paused voice for clip at position zero with the given gain.
// Must be called without holding the lock.
func (d *Deck) Attach(clip *Clip, gain float64) *Voice {
	v := newVoice(d, clip)
	v.setGain(gain)

	d.mu.Lock()
	d.voices = append(d.voices, v)
	d.mu.Unlock()
	return v
}

// Detach removes v from the mix. Detaching twice is harmless.
// Must be called without holding the lock.
func (d *Deck) Detach(v *Voice) {
	if v == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.voices = slices.DeleteFunc(d.voices, func(o *Voice) bool { return o == v })
	v.playing = false
	v.detached = true
}

// Voices returns how many voices are attached.
func (d *Deck) Voices() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.voices)
}

// Stream implements beep.Streamer. The deck never drains: it emits silence
// when nothing is playing.
func (d *Deck) Stream(samples [][2]float64) (n int, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	clear(samples)
	if cap(d.scratch) < len(samples) {
		d.scratch = make([][2]float64, len(samples))
	}
	buf := d.scratch[:len(samples)]

	for _, v := range d.voices {
		if !v.playing {
			continue
		}
		vn, _ := v.vol.Stream(buf)
		for i := 0; i < vn; i++ {
			samples[i][0] += buf[i][0]
			samples[i][1] += buf[i][1]
		}
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (d *Deck) Err() error { return nil }
