package audio

import (
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStreamer struct{ err error }

func (f failingStreamer) Stream([][2]float64) (int, bool) { return 0, false }
func (f failingStreamer) Err() error { return f.err }

func TestNewClip_Length(t *testing.T) {
	c := newTestClip(t, constant(4000, 0.5))

	assert.Equal(t, 4000, c.Len())
	assert.Equal(t, 500*time.Millisecond, c.Duration())
	assert.Equal(t, testRate, c.Format().SampleRate)
	assert.Equal(t, 2, c.Format().NumChannels)
}

func TestNewClip_Resamples(t *testing.T) {
	c, err := NewClip(constant(1000, 0.5), testFormat(testRate), 2*testRate, 1234)
	require.NoError(t, err)

	assert.InDelta(t, 2000, c.Len(), 10)
	assert.Equal(t, 2*testRate, c.Format().SampleRate)
	assert.Equal(t, int64(1234), c.Size())
}

func TestNewClip_Errors(t *testing.T) {
	_, err := NewClip(constant(0, 0), testFormat(testRate), testRate, 0)
	require.Error(t, err)

	boom := errors.New("boom")
	_, err = NewClip(failingStreamer{err: boom}, testFormat(testRate), testRate, 0)
	require.ErrorIs(t, err, boom)
}

func TestNewClip_PrecisionOutOfRange(t *testing.T) {
	format := beep.Format{SampleRate: testRate, NumChannels: 2, Precision: 4}
	c, err := NewClip(constant(100, 0.25), format, testRate, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Format().Precision)
}

func TestClip_Peaks(t *testing.T) {
	c := newTestClip(t, ramp(8000))

	peaks := c.Peaks(4)
	require.Len(t, peaks, 4)
	for i := 1; i < len(peaks); i++ {
		assert.Greater(t, peaks[i], peaks[i-1], "ramp peaks must rise")
	}
	assert.InDelta(t, 1.0, peaks[3], 0.01)
	assert.InDelta(t, 0.25, peaks[0], 0.01)

	assert.Nil(t, c.Peaks(0))
	assert.Len(t, c.Peaks(100000), peakResolution)
}

func TestClip_PeaksShortClip(t *testing.T) {
	c := newTestClip(t, constant(10, 0.5))

	peaks := c.Peaks(64)
	require.Len(t, peaks, 10)
	for _, p := range peaks {
		assert.InDelta(t, 0.5, p, 1e-3)
	}
}
