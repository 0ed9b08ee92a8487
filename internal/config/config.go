package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultProviderURL     = "https://youtube-audio-analyzer.onrender.com"
	defaultProviderTimeout = 180 // seconds, stem separation takes 30-60s on a warm backend
	defaultSampleRate      = 44100
	defaultBufferMs        = 100
	defaultCacheTTLDays    = 7
)

type Config struct {
	Icons         string `koanf:"icons"`         // "nerd", "unicode", or "none"
	Notifications *bool  `koanf:"notifications"` // desktop notifications on load results (default: true)
	MPRIS         *bool  `koanf:"mpris"`         // expose transport over MPRIS (default: true)

	Provider ProviderConfig `koanf:"provider"`
	Audio    AudioConfig    `koanf:"audio"`
	Cache    CacheConfig    `koanf:"cache"`
}

// ProviderConfig holds the stem separation backend settings.
type ProviderConfig struct {
	URL            string `koanf:"url"`             // e.g., "http://localhost:8000"
	TimeoutSeconds int    `koanf:"timeout_seconds"` // request timeout (default: 180)
}

// AudioConfig holds output device settings.
type AudioConfig struct {
	SampleRate int  `koanf:"sample_rate"` // mixing rate, stems are resampled to it (default: 44100)
	BufferMs   int  `koanf:"buffer_ms"`   // speaker buffer length (default: 100)
	Headless   bool `koanf:"headless"`    // mix without opening the sound card
}

// CacheConfig holds the provider response cache settings.
type CacheConfig struct {
	Enabled *bool  `koanf:"enabled"`  // default: true
	TTLDays int    `koanf:"ttl_days"` // default: 7
	Path    string `koanf:"path"`     // sqlite file, empty means the XDG data dir
}

func Load() (*Config, error) {
	return loadFrom(getConfigPaths())
}

func loadFrom(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	// Later paths override earlier ones
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Provider.URL = strings.TrimSuffix(strings.TrimSpace(cfg.Provider.URL), "/")

	if cfg.Cache.Path != "" {
		cfg.Cache.Path = expandPath(cfg.Cache.Path)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/stems/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "stems", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// NotificationsEnabled reports whether desktop notifications should be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MPRISEnabled reports whether the MPRIS adapter should be started.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// GetProviderConfig returns the provider configuration with defaults applied.
func (c *Config) GetProviderConfig() ProviderConfig {
	cfg := c.Provider
	if cfg.URL == "" {
		cfg.URL = defaultProviderURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultProviderTimeout
	}
	return cfg
}

// Timeout returns the request timeout as a duration.
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// GetAudioConfig returns the audio configuration with defaults applied.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio
	if cfg.SampleRate < 8000 || cfg.SampleRate > 192000 {
		cfg.SampleRate = defaultSampleRate
	}
	if cfg.BufferMs <= 0 || cfg.BufferMs > 1000 {
		cfg.BufferMs = defaultBufferMs
	}
	return cfg
}

// BufferDuration returns the speaker buffer length.
func (a AudioConfig) BufferDuration() time.Duration {
	return time.Duration(a.BufferMs) * time.Millisecond
}

// GetCacheConfig returns the cache configuration with defaults applied.
func (c *Config) GetCacheConfig() CacheConfig {
	cfg := c.Cache
	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.TTLDays <= 0 {
		cfg.TTLDays = defaultCacheTTLDays
	}
	return cfg
}

// IsEnabled reports whether the provider cache is on.
func (c CacheConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// TTL returns the cache entry lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLDays) * 24 * time.Hour
}
