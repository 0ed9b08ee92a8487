// Package audio turns stem resources into in-memory clips and mixes them
// through a single Deck so that every voice advances on the same sample clock.
package audio

import (
	"errors"
	"math"
	"time"

	"github.com/gopxl/beep/v2"
)

// peakResolution is how many peak buckets a clip keeps for waveform display.
const peakResolution = 2048

// Meta holds the tags read from a stem file, when it has any.
type Meta struct {
	Title  string
	Artist string
	Album  string
}

// Clip is a decoded stem, resampled to the deck rate and held in memory.
type Clip struct {
	buf   *beep.Buffer
	size  int64
	meta  Meta
	peaks []float64
}

// NewClip drains s into memory at the target rate.
// size is the encoded resource size, used for display only.
func NewClip(s beep.Streamer, format beep.Format, target beep.SampleRate, size int64) (*Clip, error) {
	var src beep.Streamer = s
	if format.SampleRate != target {
		src = beep.Resample(4, format.SampleRate, target, s)
	}

	// beep buffers encode 1-3 byte samples; keep at least 16 bits.
	precision := format.Precision
	if precision < 2 || precision > 3 {
		precision = 3
	}
	buf := beep.NewBuffer(beep.Format{
		SampleRate:  target,
		NumChannels: 2,
		Precision:   precision,
	})
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, err
	}
	if buf.Len() == 0 {
		return nil, errors.New("audio: empty stream")
	}

	c := &Clip{buf: buf, size: size}
	c.peaks = computePeaks(buf, peakResolution)
	return c, nil
}

// Format returns the clip format (always the deck rate, stereo).
func (c *Clip) Format() beep.Format { return c.buf.Format() }

// Len returns the clip length in samples.
func (c *Clip) Len() int { return c.buf.Len() }

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}

// Size returns the encoded size of the resource the clip was decoded from.
func (c *Clip) Size() int64 { return c.size }

// Meta returns the tags read from the resource.
func (c *Clip) Meta() Meta { return c.meta }

// Peaks returns up to n normalized amplitude peaks (0..1) spread over the clip.
func (c *Clip) Peaks(n int) []float64 {
	if n <= 0 || len(c.peaks) == 0 {
		return nil
	}
	if n >= len(c.peaks) {
		out := make([]float64, len(c.peaks))
		copy(out, c.peaks)
		return out
	}
	out := make([]float64, n)
	for i := range out {
		from := i * len(c.peaks) / n
		to := (i + 1) * len(c.peaks) / n
		for _, p := range c.peaks[from:to] {
			out[i] = math.Max(out[i], p)
		}
	}
	return out
}

func (c *Clip) streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

func computePeaks(buf *beep.Buffer, buckets int) []float64 {
	total := buf.Len()
	if total < buckets {
		buckets = total
	}
	if buckets == 0 {
		return nil
	}

	peaks := make([]float64, buckets)
	s := buf.Streamer(0, total)
	chunk := make([][2]float64, 4096)
	pos := 0
	for {
		n, ok := s.Stream(chunk)
		for i := 0; i < n; i++ {
			b := (pos + i) * buckets / total
			amp := math.Max(math.Abs(chunk[i][0]), math.Abs(chunk[i][1]))
			if amp > peaks[b] {
				peaks[b] = amp
			}
		}
		pos += n
		if !ok || n == 0 {
			break
		}
	}

	for i := range peaks {
		peaks[i] = math.Min(peaks[i], 1)
	}
	return peaks
}
