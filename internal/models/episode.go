package models

import "time"

// Episode is the canonical representation of one podcast installment,
// independent of how it is serialized into the feed document. Instances
// are built by the normalizers in internal/feed and, for fresh videos,
// numbered exactly once by the merge engine.
type Episode struct {
	// ID is the stable identifier: the platform video id for fetched
	// videos, the entry guid for previously published episodes.
	ID string
	// SourceURL is the media location referenced by the enclosure.
	SourceURL string
	// EpisodeNumber is nil until the merge engine assigns one.
	EpisodeNumber *int
	Title         string
	// DurationSeconds is authoritative; DurationDisplay is derived.
	DurationSeconds int64
	DurationDisplay string
	Author          string
	PublishedAt     time.Time
	// Link is the human-facing permalink, distinct from SourceURL.
	Link        string
	Description string
}

// WithNumber returns a copy of the episode with the episode number
// assigned. The receiver is left unchanged.
func (e Episode) WithNumber(number int) Episode {
	e.EpisodeNumber = &number
	return e
}
