package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequired(t *testing.T) {
	t.Setenv("CHANNEL_ID", "UCNmv1Cmjm3Hk8Vc9kIgv0AQ")
	t.Setenv("AUDIO_BASE_URL", "https://audio.example.com")
	t.Setenv("CHANNEL_TITLE", "Test Title")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "UCNmv1Cmjm3Hk8Vc9kIgv0AQ", cfg.ChannelID)
	assert.Equal(t, ".", cfg.FeedDir)
	assert.Equal(t, cfg.ChannelID, cfg.FeedName)
	assert.True(t, cfg.BlockFromDirectories)
	assert.Equal(t, 20, cfg.MaxVideos)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("FEED_DIR", "/var/feeds")
	t.Setenv("FEED_NAME", "mandalore")
	t.Setenv("BLOCK_FROM_DIRECTORIES", "false")
	t.Setenv("MAX_VIDEOS", "5")
	t.Setenv("FETCH_TIMEOUT_SECONDS", "90")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "/var/feeds", cfg.FeedDir)
	assert.Equal(t, "mandalore", cfg.FeedName)
	assert.False(t, cfg.BlockFromDirectories)
	assert.Equal(t, 5, cfg.MaxVideos)
	assert.Equal(t, 90*time.Second, cfg.FetchTimeout)
}

func TestLoadRequiresChannelID(t *testing.T) {
	setRequired(t)
	t.Setenv("CHANNEL_ID", "")

	_, err := Load()

	assert.ErrorContains(t, err, "CHANNEL_ID")
}

func TestLoadRequiresAudioBaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("AUDIO_BASE_URL", "")

	_, err := Load()

	assert.ErrorContains(t, err, "AUDIO_BASE_URL")
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	setRequired(t)
	t.Setenv("MAX_VIDEOS", "many")

	_, err := Load()

	assert.ErrorContains(t, err, "MAX_VIDEOS")
}
