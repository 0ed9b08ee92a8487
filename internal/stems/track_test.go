package stems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/stems/internal/audio"
)

func TestTrack_TransportBeforeReady(t *testing.T) {
	tr := NewTrack(audio.NewDeck(testRate), "vocals", "mem://vocals")
	assert.Equal(t, Unloaded, tr.State())

	assert.ErrorIs(t, tr.Play(), ErrTrackNotReady)
	assert.ErrorIs(t, tr.Pause(), ErrTrackNotReady)
	assert.ErrorIs(t, tr.Stop(), ErrTrackNotReady)
	_, err := tr.Position()
	assert.ErrorIs(t, err, ErrTrackNotReady)

	require.True(t, tr.beginLoad())
	assert.Equal(t, Loading, tr.State())
	assert.False(t, tr.beginLoad(), "beginLoad twice")
	assert.ErrorIs(t, tr.Play(), ErrTrackNotReady)
	assert.Zero(t, tr.Duration())
	assert.Nil(t, tr.Peaks(10))
}

func TestTrack_GainClamped(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{0.3, 0.3},
		{1, 1},
		{5, 1},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		tr := NewTrack(audio.NewDeck(testRate), "vocals", "mem://vocals")
		assert.Equal(t, tt.want, tr.SetGain(tt.in), "SetGain(%v)", tt.in)
		assert.Equal(t, tt.want, tr.Gain())
	}
}

func TestTrack_GainSetWhileLoadingIsApplied(t *testing.T) {
	for _, state := range []LoadState{Unloaded, Loading} {
		t.Run(state.String(), func(t *testing.T) {
			deck := audio.NewDeck(testRate)
			tr := NewTrack(deck, "drums", "mem://drums")
			if state == Loading {
				tr.beginLoad()
			}
			tr.SetGain(0.8)
			tr.SetGain(0.25)

			tr.beginLoad()
			tr.resolve(testClip(t, 100, 0.8), nil)
			require.Equal(t, Ready, tr.State())

			deck.Lock()
			assert.InDelta(t, 0.25, tr.voice.Gain(), 1e-9)
			deck.Unlock()

			require.NoError(t, tr.Play())
			buf := advance(deck, 10)
			assert.InDelta(t, 0.2, buf[5][0], 1e-3)
		})
	}
}

func TestTrack_GainAppliedImmediatelyWhenReady(t *testing.T) {
	deck := audio.NewDeck(testRate)
	tr := NewTrack(deck, "bass", "mem://bass")
	tr.beginLoad()
	tr.resolve(testClip(t, 100, 0.5), nil)
	require.NoError(t, tr.Play())

	assert.InDelta(t, 0.5, advance(deck, 1)[0][0], 1e-3)
	tr.SetGain(0.5)
	assert.InDelta(t, 0.25, advance(deck, 1)[0][0], 1e-3)
	tr.SetGain(0)
	assert.Zero(t, advance(deck, 1)[0][0])
}

func TestTrack_PauseKeepsPositionStopRewinds(t *testing.T) {
	deck := audio.NewDeck(testRate)
	tr := NewTrack(deck, "vocals", "mem://vocals")
	tr.beginLoad()
	tr.resolve(testClip(t, 1000, 0.5), nil)
	assert.Equal(t, 1000*testRate.D(1), tr.Duration())

	require.NoError(t, tr.Play())
	advance(deck, 250)
	require.NoError(t, tr.Pause())
	advance(deck, 250)

	pos, err := tr.Position()
	require.NoError(t, err)
	assert.Equal(t, testRate.D(250), pos)

	require.NoError(t, tr.Stop())
	require.NoError(t, tr.Stop())
	pos, _ = tr.Position()
	assert.Zero(t, pos)
}

func TestTrack_ResolveAfterReleaseIsIgnored(t *testing.T) {
	deck := audio.NewDeck(testRate)
	tr := NewTrack(deck, "vocals", "mem://vocals")
	tr.beginLoad()
	tr.release()

	tr.resolve(testClip(t, 100, 0.5), nil)
	assert.Equal(t, Loading, tr.State())
	assert.Zero(t, deck.Voices())
}

func TestTrack_FailedResolve(t *testing.T) {
	tr := NewTrack(audio.NewDeck(testRate), "vocals", "mem://vocals")
	tr.beginLoad()
	tr.resolve(nil, assert.AnError)

	assert.Equal(t, Failed, tr.State())
	assert.ErrorIs(t, tr.Err(), ErrTrackLoadFailed)
	assert.ErrorIs(t, tr.Err(), assert.AnError)
	assert.Contains(t, tr.Err().Error(), `"vocals"`)
	assert.ErrorIs(t, tr.Play(), ErrTrackNotReady)
}

func TestLoadState_String(t *testing.T) {
	assert.Equal(t, "Unloaded", Unloaded.String())
	assert.Equal(t, "Ready", Ready.String())
	assert.Equal(t, "Unknown", LoadState(42).String())
	assert.Equal(t, "Paused", Paused.String())
	assert.True(t, Failed.Settled())
	assert.False(t, Loading.Settled())
}
