// Package config reads the synchronization settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything one synchronization run needs. The delivery
// base URL and channel metadata are injected here rather than living as
// constants anywhere near the core.
type Config struct {
	// ChannelID is the platform channel to synchronize.
	ChannelID string
	// FeedDir is the directory holding feed documents and the run lock.
	FeedDir string
	// FeedName names the document inside FeedDir (ChannelID by default).
	FeedName string
	// AudioBaseURL is the delivery location the episode media URLs are
	// derived from.
	AudioBaseURL string

	ChannelTitle       string
	ChannelLink        string
	ChannelDescription string
	ChannelAuthor      string

	// BlockFromDirectories marks episodes with itunes:block. On by
	// default: the audio is distributed outside the primary directory.
	BlockFromDirectories bool
	// MaxVideos bounds one catalog listing.
	MaxVideos int
	// FetchTimeout bounds one yt-dlp invocation.
	FetchTimeout time.Duration
}

// Load builds a Config from the environment. CHANNEL_ID, AUDIO_BASE_URL
// and CHANNEL_TITLE are required; everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		ChannelID:          os.Getenv("CHANNEL_ID"),
		FeedDir:            getenv("FEED_DIR", "."),
		FeedName:           os.Getenv("FEED_NAME"),
		AudioBaseURL:       os.Getenv("AUDIO_BASE_URL"),
		ChannelTitle:       os.Getenv("CHANNEL_TITLE"),
		ChannelLink:        os.Getenv("CHANNEL_LINK"),
		ChannelDescription: os.Getenv("CHANNEL_DESCRIPTION"),
		ChannelAuthor:      os.Getenv("CHANNEL_AUTHOR"),
	}

	if cfg.ChannelID == "" {
		return nil, fmt.Errorf("CHANNEL_ID is not set")
	}
	if cfg.AudioBaseURL == "" {
		return nil, fmt.Errorf("AUDIO_BASE_URL is not set")
	}
	if cfg.ChannelTitle == "" {
		return nil, fmt.Errorf("CHANNEL_TITLE is not set")
	}
	if cfg.FeedName == "" {
		cfg.FeedName = cfg.ChannelID
	}

	block, err := parseBool("BLOCK_FROM_DIRECTORIES", true)
	if err != nil {
		return nil, err
	}
	cfg.BlockFromDirectories = block

	maxVideos, err := parseInt("MAX_VIDEOS", 20)
	if err != nil {
		return nil, err
	}
	cfg.MaxVideos = maxVideos

	timeoutSeconds, err := parseInt("FETCH_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.FetchTimeout = time.Duration(timeoutSeconds) * time.Second

	return cfg, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return value, nil
}
