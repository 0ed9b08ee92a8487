package audio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2"
)

// DefaultMaxBytes bounds a single stem download (a 10 minute 16-bit WAV is ~100MB).
const DefaultMaxBytes int64 = 512 << 20

// ErrTooLarge is returned when a resource exceeds the size limit.
var ErrTooLarge = errors.New("resource too large")

// Fetcher loads stem resources from http(s) URLs or local paths and decodes
// them into clips at the deck rate.
type Fetcher struct {
	httpClient *http.Client
	rate       beep.SampleRate
	maxBytes   int64
}

// NewFetcher creates a fetcher decoding to rate.
func NewFetcher(rate beep.SampleRate, timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		rate:       rate,
		maxBytes:   DefaultMaxBytes,
	}
}

// Load fetches and decodes the resource at location.
func (f *Fetcher) Load(ctx context.Context, location string) (*Clip, error) {
	data, hint, err := f.read(ctx, location)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, format, err := Decode(data, hint)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	defer s.Close()

	clip, err := NewClip(s, format, f.rate, int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	clip.meta = readMeta(data)
	return clip, nil
}

func (f *Fetcher) read(ctx context.Context, location string) (data []byte, hint string, err error) {
	u, err := url.Parse(location)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		data, err = f.get(ctx, location)
		return data, u.Path, err
	}

	p := location
	if err == nil && u.Scheme == "file" {
		p = u.Path
	}
	data, err = f.readFile(p)
	return data, p, err
}

func (f *Fetcher) get(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, ErrTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func (f *Fetcher) readFile(p string) ([]byte, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.Size() > f.maxBytes {
		return nil, ErrTooLarge
	}
	return os.ReadFile(p)
}

// readMeta reads tags from the encoded data. Stems straight out of a
// separation backend rarely carry any; missing tags are not an error.
func readMeta(data []byte) Meta {
	m, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return Meta{}
	}
	return Meta{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
	}
}
