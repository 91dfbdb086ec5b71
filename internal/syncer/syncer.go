// Package syncer runs one synchronization pass: it merges a channel's
// newly discovered videos into its published podcast feed.
package syncer

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmcdole/gofeed"

	"tubecast/internal/feed"
	"tubecast/internal/models"
	"tubecast/internal/store"
)

// VideoSource lists the newest uploads of a channel, newest first.
type VideoSource interface {
	RecentVideos(ctx context.Context, channelID string) ([]models.Video, error)
}

// FeedRepository loads and saves feed documents by name.
type FeedRepository interface {
	Load(name string) (*gofeed.Feed, error)
	Save(name string, data []byte) error
}

// Syncer orchestrates one run for one channel. It holds no state between
// runs; everything it knows about past episodes comes from the document.
type Syncer struct {
	source       VideoSource
	repo         FeedRepository
	channel      feed.Channel
	audioBaseURL string
}

func New(source VideoSource, repo FeedRepository, channel feed.Channel, audioBaseURL string) *Syncer {
	return &Syncer{
		source:       source,
		repo:         repo,
		channel:      channel,
		audioBaseURL: audioBaseURL,
	}
}

// Result summarizes one synchronization run.
type Result struct {
	// Existing is the number of episodes already published.
	Existing int
	// Added holds the newly published episodes, oldest first.
	Added []models.Episode
	// Skipped collects candidates dropped because their metadata was
	// missing or malformed. They block nothing else in the batch and
	// will be retried on the next run if the platform fixes them.
	Skipped []error
}

// Run loads the existing feed, fetches the channel's recent videos,
// merges the genuinely new ones in, and persists the updated document.
// The document write is the only mutation; any earlier failure leaves
// the published feed untouched. Nothing is written when no new episode
// was found.
func (s *Syncer) Run(ctx context.Context, channelID, feedName string) (*Result, error) {
	var existing []models.Episode
	doc, err := s.repo.Load(feedName)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// First run for this channel; the feed starts empty.
	case err != nil:
		return nil, fmt.Errorf("failed to load feed %q: %w", feedName, err)
	default:
		for _, item := range doc.Items {
			ep, err := feed.EpisodeFromItem(item)
			if err != nil {
				return nil, fmt.Errorf("failed to normalize published entry: %w", err)
			}
			existing = append(existing, ep)
		}
	}

	videos, err := s.source.RecentVideos(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch videos for channel %q: %w", channelID, err)
	}

	result := &Result{Existing: len(existing)}
	var candidates []models.Episode
	for _, video := range videos {
		ep, err := feed.EpisodeFromVideo(video, s.audioBaseURL)
		if err != nil {
			// One bad upstream record must not block the batch.
			result.Skipped = append(result.Skipped, fmt.Errorf("video %q: %w", video.ID, err))
			continue
		}
		candidates = append(candidates, ep)
	}

	added, err := feed.Merge(existing, candidates)
	if err != nil {
		return nil, err
	}
	result.Added = added
	if len(added) == 0 {
		return result, nil
	}

	// The document stays newest first so the next run reads the latest
	// episode number from its first entry.
	episodes := make([]models.Episode, 0, len(added)+len(existing))
	for i := len(added) - 1; i >= 0; i-- {
		episodes = append(episodes, added[i])
	}
	episodes = append(episodes, existing...)

	data, err := feed.Render(s.channel, episodes)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(feedName, data); err != nil {
		return nil, fmt.Errorf("failed to save feed %q: %w", feedName, err)
	}
	return result, nil
}
