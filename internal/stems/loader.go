package stems

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/llehouerou/stems/internal/provider"
)

const maxSourceLen = 2048

// Loader resolves a source identifier into stems through a provider and
// maps provider failures onto the session error kinds.
type Loader struct {
	provider provider.Provider
}

// NewLoader creates a loader calling p.
func NewLoader(p provider.Provider) *Loader {
	return &Loader{provider: p}
}

// ValidateSource trims source and rejects empty or malformed identifiers.
// Anything that looks like a URL must be an absolute http(s) URL.
func ValidateSource(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidInput)
	}
	if len(source) > maxSourceLen {
		return "", fmt.Errorf("%w: too long", ErrInvalidInput)
	}
	if strings.IndexFunc(source, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) >= 0 {
		return "", fmt.Errorf("%w: contains whitespace", ErrInvalidInput)
	}
	if strings.Contains(source, "://") {
		u, err := url.Parse(source)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", fmt.Errorf("%w: not an http(s) URL", ErrInvalidInput)
		}
	}
	return source, nil
}

// Fetch asks the provider for the stems of source.
func (l *Loader) Fetch(ctx context.Context, source string) (provider.Result, error) {
	res, err := l.provider.Stems(ctx, source)
	if err != nil {
		return provider.Result{}, mapProviderError(err)
	}
	if len(res.Stems) == 0 {
		return provider.Result{}, ErrNoStemsReturned
	}
	return res, nil
}

// mapProviderError makes every provider failure match one of the session
// error kinds. Cancellation passes through.
func mapProviderError(err error) error {
	switch {
	case errors.Is(err, ErrProviderUnavailable),
		errors.Is(err, ErrNoStemsReturned),
		errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
}
