package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/stems/internal/app"
	"github.com/llehouerou/stems/internal/audio"
	"github.com/llehouerou/stems/internal/config"
	"github.com/llehouerou/stems/internal/icons"
	"github.com/llehouerou/stems/internal/mpris"
	"github.com/llehouerou/stems/internal/notify"
	"github.com/llehouerou/stems/internal/provider"
	"github.com/llehouerou/stems/internal/state"
	"github.com/llehouerou/stems/internal/stderr"
	"github.com/llehouerou/stems/internal/stemcache"
	"github.com/llehouerou/stems/internal/stems"
)

// diagnosticsBuffer bounds the backlog of stderr and cache messages waiting
// for the status line.
const diagnosticsBuffer = 64

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	icons.Init(cfg.Icons)

	var source string
	if len(os.Args) > 1 {
		source = os.Args[1]
	}

	diagnostics := make(chan string, diagnosticsBuffer)
	report := func(line string) {
		select {
		case diagnostics <- line:
		default:
		}
	}

	// Capture stderr before the audio backend starts writing to it
	if capture, err := stderr.Start(func(line string) { report("audio: " + line) }); err == nil {
		defer capture.Stop()
	}

	prov, closeCache, err := newProvider(cfg, report)
	if err != nil {
		return err
	}
	defer closeCache()

	audioCfg := cfg.GetAudioConfig()
	rate := beep.SampleRate(audioCfg.SampleRate)
	deck := audio.NewDeck(rate)
	out, err := audio.OpenOutput(deck, audioCfg.BufferDuration(), audioCfg.Headless)
	if err != nil {
		report(fmt.Sprintf("no audio output (%v), mixing silently", err))
		out, err = audio.OpenOutput(deck, audioCfg.BufferDuration(), true)
		if err != nil {
			return fmt.Errorf("open audio output: %w", err)
		}
	}
	defer out.Close()

	fetcher := audio.NewFetcher(rate, cfg.GetProviderConfig().Timeout())
	session := stems.New(deck, prov, fetcher)
	defer session.Close()

	if cfg.MPRISEnabled() {
		if adapter, err := mpris.New(session); err == nil {
			defer adapter.Close()
		}
	}

	notifier := notify.Disabled()
	if cfg.NotificationsEnabled() {
		if n, err := notify.New(); err == nil {
			notifier = n
		}
	}

	// Source history is optional
	var store state.Interface
	if mgr, err := state.Open(); err == nil {
		store = mgr
		defer mgr.Close()
	} else {
		report(fmt.Sprintf("history disabled: %v", err))
	}

	m := app.New(app.Options{
		Session:       session,
		Notifier:      notifier,
		Notifications: cfg.NotificationsEnabled(),
		Source:        source,
		StderrLines:   diagnostics,
		State:         store,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// newProvider returns the backend client, wrapped by the sqlite cache when it
// is enabled. The returned func closes the cache.
func newProvider(cfg *config.Config, report func(string)) (provider.Provider, func(), error) {
	pc := cfg.GetProviderConfig()
	client, err := provider.NewClient(pc.URL, pc.Timeout())
	if err != nil {
		return nil, nil, fmt.Errorf("provider: %w", err)
	}

	cc := cfg.GetCacheConfig()
	if !cc.IsEnabled() {
		return client, func() {}, nil
	}

	cache, err := stemcache.Open(cc.Path, cc.TTL())
	if err != nil {
		report(fmt.Sprintf("cache disabled: %v", err))
		return client, func() {}, nil
	}
	if _, err := cache.Prune(context.Background()); err != nil {
		report(fmt.Sprintf("cache prune: %v", err))
	}

	cached := stemcache.Wrap(client, cache)
	cached.OnError = func(err error) {
		report(fmt.Sprintf("cache: %v", err))
	}
	return cached, func() { _ = cache.Close() }, nil
}
