package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnsupportedFormat is returned for resources that are neither MP3, FLAC nor WAV.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
)

// Decode decodes an encoded stem. The format is sniffed from the data first;
// hint (a file name or URL path) is used when sniffing is inconclusive.
func Decode(data []byte, hint string) (beep.StreamCloser, beep.Format, error) {
	ext := sniff(data)
	if ext == "" {
		ext = strings.ToLower(path.Ext(hint))
	}

	r := bytes.NewReader(data)

	switch ext {
	case extMP3:
		return decodeMP3(io.NopCloser(r))
	case extFLAC:
		// Skip ID3v2 tag if present (some taggers add it to FLAC files)
		if err := skipID3v2(r); err != nil {
			return nil, beep.Format{}, err
		}
		return flac.Decode(r)
	case extWAV:
		return wav.Decode(r)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, hint)
	}
}

// sniff recognizes the container from magic bytes.
func sniff(data []byte) string {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return extWAV
	case len(data) >= 4 && string(data[0:4]) == "fLaC":
		return extFLAC
	case len(data) >= 10 && string(data[0:3]) == "ID3":
		// ID3v2 precedes both MP3 frames and, occasionally, FLAC streams.
		size := id3v2Size(data)
		if rest := 10 + size; rest+4 <= len(data) && string(data[rest:rest+4]) == "fLaC" {
			return extFLAC
		}
		return extMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return extMP3
	}
	return ""
}

// id3v2Size reads the syncsafe tag size from an ID3v2 header.
// Each byte only uses 7 bits (bit 7 is always 0).
func id3v2Size(header []byte) int {
	return int(header[6])<<21 | int(header[7])<<14 | int(header[8])<<7 | int(header[9])
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of r.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// Total skip = 10 byte header + size
	_, err = r.Seek(int64(10+id3v2Size(header)), io.SeekStart)
	return err
}
