package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Path suffix of the extraction endpoint; stem paths are relative to the
// backend root, not to the endpoint.
const extractSuffix = "/api/extract"

// Client posts source identifiers to a stem separation backend.
type Client struct {
	endpoint   string
	assetBase  *url.URL
	httpClient *http.Client
}

// NewClient creates a client for the backend at endpoint.
func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	endpoint = strings.TrimSuffix(endpoint, "/")
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse provider url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("provider url must be http or https: %q", endpoint)
	}

	base := *u
	base.Path = strings.TrimSuffix(base.Path, extractSuffix) + "/"

	return &Client{
		endpoint:   endpoint,
		assetBase:  &base,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Stems asks the backend to separate source and returns the stem locations
// as absolute URLs.
func (c *Client) Stems(ctx context.Context, source string) (Result, error) {
	body, err := json.Marshal(map[string]string{"youtube_url": source})
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if text := strings.TrimSpace(string(msg)); text != "" {
			return Result{}, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, text)
		}
		return Result{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded extractResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}

	stems := make([]Stem, 0, len(decoded.Stems))
	for _, s := range decoded.Stems {
		if s.Location == "" {
			continue
		}
		loc, err := c.resolve(s.Location)
		if err != nil {
			continue
		}
		stems = append(stems, Stem{Name: s.Name, Location: loc})
	}

	return NewResult(stems)
}

// resolve turns a backend-relative path into an absolute URL.
func (c *Client) resolve(location string) (string, error) {
	ref, err := url.Parse(location)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	return c.assetBase.ResolveReference(ref).String(), nil
}
