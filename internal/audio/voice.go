package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
)

// Voice is one clip's playback handle on a Deck. Unless stated otherwise,
// methods must be called with the deck locked.
type Voice struct {
	deck     *Deck
	clip     *Clip
	src      beep.StreamSeeker
	vol      *effects.Volume
	gain     float64
	playing  bool
	detached bool
}

func newVoice(d *Deck, clip *Clip) *Voice {
	src := clip.streamer()
	return &Voice{
		deck: d,
		clip: clip,
		src:  src,
		vol:  &effects.Volume{Streamer: src, Base: 2, Volume: 0, Silent: false},
		gain: 1,
	}
}

// Clip returns the clip the voice plays. Safe without the lock.
func (v *Voice) Clip() *Clip { return v.clip }

// Play starts or resumes the voice from its current position.
func (v *Voice) Play() {
	if v.detached {
		return
	}
	v.playing = true
}

// Pause halts the voice and keeps its position.
func (v *Voice) Pause() { v.playing = false }

// Stop halts the voice and rewinds it.
func (v *Voice) Stop() {
	v.playing = false
	_ = v.src.Seek(0)
}

// Seek moves the voice to pos, clamped to the clip.
func (v *Voice) Seek(pos time.Duration) {
	p := v.deck.rate.N(pos)
	p = max(0, min(p, v.src.Len()))
	_ = v.src.Seek(p)
}

// Playing reports whether the voice is contributing to the mix.
func (v *Voice) Playing() bool { return v.playing }

// Ended reports whether the voice reached the end of its clip.
func (v *Voice) Ended() bool { return v.src.Position() >= v.src.Len() }

// Position returns the playback position.
func (v *Voice) Position() time.Duration {
	return v.deck.rate.D(v.src.Position())
}

// SetGain sets the linear gain, clamped to [0, 1].
func (v *Voice) SetGain(gain float64) float64 {
	return v.setGain(gain)
}

// Gain returns the linear gain.
func (v *Voice) Gain() float64 { return v.gain }

func (v *Voice) setGain(gain float64) float64 {
	gain = ClampGain(gain)
	v.gain = gain
	v.vol.Volume, v.vol.Silent = gainToVolume(gain)
	return gain
}

// ClampGain clamps a linear gain to [0, 1]. NaN maps to 0.
func ClampGain(gain float64) float64 {
	if math.IsNaN(gain) || gain < 0 {
		return 0
	}
	if gain > 1 {
		return 1
	}
	return gain
}

// gainToVolume converts a linear 0.0-1.0 gain to beep's Volume value.
// beep scales samples by Base^Volume, so with Base 2 a volume of log2(gain)
// multiplies samples by exactly gain. Zero gain uses Silent.
func gainToVolume(gain float64) (volume float64, silent bool) {
	if gain <= 0 {
		return 0, true
	}
	if gain >= 1 {
		return 0, false
	}
	return math.Log2(gain), false
}
