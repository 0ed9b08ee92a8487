package stems

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/stems/internal/provider"
)

func TestValidateSource(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    string
		wantErr bool
	}{
		{"youtube url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", false},
		{"trimmed", "  https://youtu.be/dQw4w9WgXcQ\n", "https://youtu.be/dQw4w9WgXcQ", false},
		{"bare video id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"empty", "", "", true},
		{"blank", " \t ", "", true},
		{"inner space", "https://youtu.be/a b", "", true},
		{"control char", "abc\x00def", "", true},
		{"ftp scheme", "ftp://example.com/song", "", true},
		{"no host", "https:///watch", "", true},
		{"too long", "https://x.y/" + strings.Repeat("a", maxSourceLen), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateSource(tt.source)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoader_FetchMapsProviderErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unavailable", fmt.Errorf("%w: status 502", provider.ErrUnavailable), ErrProviderUnavailable},
		{"transport", errors.New("connection refused"), ErrProviderUnavailable},
		{"no stems", provider.ErrNoStems, ErrNoStemsReturned},
		{"canceled", context.Canceled, context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLoader(provider.Func(func(context.Context, string) (provider.Result, error) {
				return provider.Result{}, tt.err
			}))
			_, err := l.Fetch(context.Background(), "src")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoader_FetchRejectsEmptyResult(t *testing.T) {
	l := NewLoader(provider.Func(func(context.Context, string) (provider.Result, error) {
		return provider.Result{}, nil
	}))
	_, err := l.Fetch(context.Background(), "src")
	assert.ErrorIs(t, err, ErrNoStemsReturned)
}

func TestLoader_FetchPassesSource(t *testing.T) {
	var got string
	l := NewLoader(provider.Func(func(_ context.Context, source string) (provider.Result, error) {
		got = source
		return provider.Result{Stems: []provider.Stem{stem("vocals")}}, nil
	}))
	res, err := l.Fetch(context.Background(), "https://youtu.be/x")
	require.NoError(t, err)
	assert.Equal(t, "https://youtu.be/x", got)
	assert.Equal(t, []string{"vocals"}, res.Names())
}
