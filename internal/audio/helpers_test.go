package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

const testRate = beep.SampleRate(8000)

// constant streams n stereo samples of value v.
func constant(n int, v float64) beep.Streamer {
	left := n
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left <= 0 {
			return 0, false
		}
		k := min(len(samples), left)
		for i := 0; i < k; i++ {
			samples[i] = [2]float64{v, v}
		}
		left -= k
		return k, true
	})
}

// ramp streams n samples rising linearly from 0 to just under 1.
func ramp(n int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		k := min(len(samples), n-pos)
		for i := 0; i < k; i++ {
			v := float64(pos+i) / float64(n)
			samples[i] = [2]float64{v, v}
		}
		pos += k
		return k, true
	})
}

func testFormat(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

func newTestClip(t *testing.T, s beep.Streamer) *Clip {
	t.Helper()
	c, err := NewClip(s, testFormat(testRate), testRate, 0)
	if err != nil {
		t.Fatalf("NewClip() error = %v", err)
	}
	return c
}

// encodeWAV writes s as a 16-bit WAV file and returns its bytes and path.
func encodeWAV(t *testing.T, s beep.Streamer, rate beep.SampleRate) ([]byte, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stem.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create wav: %v", err)
	}
	if err := wav.Encode(f, s, testFormat(rate)); err != nil {
		f.Close()
		t.Fatalf("encode wav: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close wav: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read wav: %v", err)
	}
	return data, path
}
