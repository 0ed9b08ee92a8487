package audio

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id3Header(size int) []byte {
	return []byte{
		'I', 'D', '3', 4, 0, 0,
		byte(size>>21&0x7F), byte(size>>14&0x7F), byte(size>>7&0x7F), byte(size&0x7F),
	}
}

func TestSniff(t *testing.T) {
	tagged := append(id3Header(4), 0, 0, 0, 0)
	taggedFLAC := append(append(id3Header(2), 0, 0), []byte("fLaC")...)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"wav", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), extWAV},
		{"riff without wave", []byte("RIFF\x00\x00\x00\x00AVI LIST"), ""},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), extFLAC},
		{"id3 then mp3", tagged, extMP3},
		{"id3 then flac", taggedFLAC, extFLAC},
		{"mpeg frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, extMP3},
		{"unknown", []byte("OggS\x00\x02"), ""},
		{"empty", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sniff(tt.data))
		})
	}
}

func TestID3v2Size(t *testing.T) {
	assert.Equal(t, 0, id3v2Size(id3Header(0)))
	assert.Equal(t, 257, id3v2Size(id3Header(257)))
	assert.Equal(t, 1<<21+5, id3v2Size(id3Header(1<<21+5)))
}

func TestSkipID3v2(t *testing.T) {
	data := append(append(id3Header(3), 'x', 'y', 'z'), []byte("fLaC")...)
	r := bytes.NewReader(data)
	require.NoError(t, skipID3v2(r))
	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "fLaC", string(rest))

	r = bytes.NewReader([]byte("fLaC"))
	require.NoError(t, skipID3v2(r))
	rest, err = io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "fLaC", string(rest), "untagged input must be rewound")
}

func TestDecode_WAV(t *testing.T) {
	data, _ := encodeWAV(t, constant(800, 0.5), testRate)

	// the hint is ignored when the data is recognizable
	s, format, err := Decode(data, "stem.mp3")
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, testRate, format.SampleRate)
	c, err := NewClip(s, format, testRate, int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, 800, c.Len())
}

func TestDecode_Unsupported(t *testing.T) {
	_, _, err := Decode([]byte("not audio at all"), "stem.ogg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecode_CorruptWAVHint(t *testing.T) {
	_, _, err := Decode([]byte("garbage"), "https://host/stems/vocals.WAV")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupportedFormat), "extension hint should select the wav decoder")
}
