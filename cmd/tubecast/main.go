package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"

	"tubecast/internal/config"
	"tubecast/internal/feed"
	"tubecast/internal/fetcher"
	"tubecast/internal/store"
	"tubecast/internal/syncer"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("could not load configuration: %v", err)
	}

	// Concurrent runs against one document would race on its
	// read-modify-write cycle, so only one run may hold the lock.
	lock := flock.New(filepath.Join(cfg.FeedDir, cfg.FeedName+".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("could not acquire feed lock: %v", err)
	}
	if !locked {
		log.Fatalf("another run already holds the lock for %s", cfg.FeedName)
	}
	defer lock.Unlock()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := syncer.New(
		fetcher.New(cfg.MaxVideos, cfg.FetchTimeout),
		store.New(cfg.FeedDir),
		feed.Channel{
			Title:       cfg.ChannelTitle,
			Link:        cfg.ChannelLink,
			Description: cfg.ChannelDescription,
			Author:      cfg.ChannelAuthor,
			Block:       cfg.BlockFromDirectories,
		},
		cfg.AudioBaseURL,
	)

	log.Printf("Syncing channel %s into %s.xml (commit: %s)", cfg.ChannelID, cfg.FeedName, CommitSHA)
	result, err := s.Run(ctx, cfg.ChannelID, cfg.FeedName)
	if err != nil {
		log.Fatalf("synchronization failed: %v", err)
	}
	for _, skipped := range result.Skipped {
		log.Printf("skipped candidate: %v", skipped)
	}
	log.Printf("Done: %d episodes published, %d new", result.Existing+len(result.Added), len(result.Added))
}
