package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"tubecast/internal/models"
)

// DefaultMaxVideos bounds how many catalog entries one listing returns.
const DefaultMaxVideos = 20

var execCommandContext = exec.CommandContext

// Client lists a channel's recent uploads by shelling out to yt-dlp.
type Client struct {
	limiter   *rate.Limiter
	maxVideos int
	timeout   time.Duration
}

// New creates a client returning at most maxVideos entries per listing
// (DefaultMaxVideos when <= 0). A timeout of zero leaves invocations
// bounded only by the caller's context.
func New(maxVideos int, timeout time.Duration) *Client {
	if maxVideos <= 0 {
		maxVideos = DefaultMaxVideos
	}
	return &Client{
		// One listing every few seconds to be gentle with YouTube.
		limiter:   rate.NewLimiter(rate.Every(5*time.Second), 1),
		maxVideos: maxVideos,
		timeout:   timeout,
	}
}

// RecentVideos returns metadata for the channel's newest uploads, newest
// first, bounded to the configured maximum.
func (c *Client) RecentVideos(ctx context.Context, channelID string) ([]models.Video, error) {
	if channelID == "" {
		return nil, fmt.Errorf("channel id is required")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := execCommandContext(ctx, "yt-dlp",
		"-j", // print one JSON metadata object per video
		"--playlist-end", strconv.Itoa(c.maxVideos),
		fmt.Sprintf("https://www.youtube.com/channel/%s", channelID),
	)

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute yt-dlp command: %w", err)
	}

	// The output is a stream of JSON objects, one per line.
	var videos []models.Video
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" {
			continue
		}
		var video models.Video
		if err := json.Unmarshal([]byte(line), &video); err != nil {
			return nil, fmt.Errorf("failed to unmarshal yt-dlp output: %w", err)
		}
		videos = append(videos, video)
	}
	return videos, nil
}
