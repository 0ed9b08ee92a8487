// Stemcheck asks the stem backend for a source, decodes every stem without
// opening the sound card and logs what it got. Useful to tell backend
// problems from playback problems.
package main

import (
	"context"
	"log"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"

	"github.com/llehouerou/stems/internal/audio"
	"github.com/llehouerou/stems/internal/config"
	"github.com/llehouerou/stems/internal/provider"
	"github.com/llehouerou/stems/internal/stems"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <source>", os.Args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	pc := cfg.GetProviderConfig()

	source, err := stems.ValidateSource(os.Args[1])
	if err != nil {
		log.Fatalf("Invalid source: %v", err)
	}

	client, err := provider.NewClient(pc.URL, pc.Timeout())
	if err != nil {
		log.Fatalf("Failed to create provider client: %v", err)
	}

	log.Printf("Asking %s for the stems of %s...", pc.URL, source)
	ctx, cancel := context.WithTimeout(context.Background(), pc.Timeout())
	defer cancel()

	start := time.Now()
	res, err := client.Stems(ctx, source)
	if err != nil {
		log.Fatalf("Provider failed: %v", err)
	}
	log.Printf("Got %d stems in %s", len(res.Stems), time.Since(start).Round(time.Millisecond))

	rate := beep.SampleRate(cfg.GetAudioConfig().SampleRate)
	fetcher := audio.NewFetcher(rate, pc.Timeout())

	failed := 0
	for _, s := range res.Stems {
		log.Printf("Loading %s: %s", s.Name, s.Location)

		start := time.Now()
		clip, err := fetcher.Load(ctx, s.Location)
		if err != nil {
			log.Printf("  ERROR: %v", err)
			failed++
			continue
		}

		peak := slices.Max(append(clip.Peaks(256), 0))
		log.Printf("  -> %s, %s, peak %.2f, %s",
			clip.Duration().Round(time.Millisecond),
			humanize.IBytes(uint64(clip.Size())),
			peak,
			time.Since(start).Round(time.Millisecond))
		if m := clip.Meta(); m.Title != "" {
			log.Printf("  tags: %s - %s", m.Artist, m.Title)
		}
	}

	if failed > 0 {
		log.Fatalf("%d of %d stems failed to load", failed, len(res.Stems))
	}
	log.Println("All stems loaded.")
}
