// Package provider talks to the stem separation backend that turns a source
// identifier (a media URL) into one fetchable audio resource per stem.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable is returned when the backend cannot be reached or
	// answers with a non-success status.
	ErrUnavailable = errors.New("stem provider unavailable")
	// ErrNoStems is returned when the backend succeeds without usable stems.
	ErrNoStems = errors.New("no stems returned")
)

// Stem is one stem name and the location of its audio resource.
type Stem struct {
	Name     string
	Location string
}

// Result is a validated provider answer: at least one stem, unique names,
// in the order the backend reported them.
type Result struct {
	Stems []Stem
}

// NewResult validates stems. Entries with an empty name or location are
// dropped, duplicate names keep their first occurrence.
func NewResult(stems []Stem) (Result, error) {
	seen := make(map[string]bool, len(stems))
	valid := make([]Stem, 0, len(stems))
	for _, s := range stems {
		name := strings.TrimSpace(s.Name)
		loc := strings.TrimSpace(s.Location)
		if name == "" || loc == "" || seen[name] {
			continue
		}
		seen[name] = true
		valid = append(valid, Stem{Name: name, Location: loc})
	}
	if len(valid) == 0 {
		return Result{}, ErrNoStems
	}
	return Result{Stems: valid}, nil
}

// Names returns the stem names in order.
func (r Result) Names() []string {
	names := make([]string, len(r.Stems))
	for i, s := range r.Stems {
		names[i] = s.Name
	}
	return names
}

// Provider resolves a source identifier into stems.
type Provider interface {
	Stems(ctx context.Context, source string) (Result, error)
}

// Func adapts a function to the Provider interface.
type Func func(ctx context.Context, source string) (Result, error)

// Stems implements Provider.
func (f Func) Stems(ctx context.Context, source string) (Result, error) {
	return f(ctx, source)
}

// extractResponse is the backend's answer. Stems keeps key order.
type extractResponse struct {
	Stems orderedStems `json:"stems"`
}

type orderedStems []Stem

// UnmarshalJSON reads a JSON object of name -> path preserving key order,
// which encoding/json maps would lose.
func (o *orderedStems) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("stems: expected object, got %v", tok)
	}

	var stems orderedStems
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return err
		}
		path, ok := value.(string)
		if !ok {
			// Non-string entries are not fetchable; NewResult drops empty locations.
			path = ""
		}
		stems = append(stems, Stem{Name: key, Location: path})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = stems
	return nil
}
