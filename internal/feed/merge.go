package feed

import (
	"sort"

	"tubecast/internal/models"
)

// Merge filters candidates down to episodes not yet present in the
// existing feed and assigns their episode numbers.
//
// Both inputs are expected newest first; existing entries carry their
// published numbers and candidates carry none. The result holds only the
// novel episodes, oldest first, numbered continuing from the newest
// existing entry (or from 1 for an empty feed). Candidates whose id is
// already published are dropped; that is the steady state, not an error.
func Merge(existing, candidates []models.Episode) ([]models.Episode, error) {
	lastNumber := 0
	if len(existing) > 0 {
		newest := existing[0]
		if newest.EpisodeNumber == nil {
			return nil, &InconsistentFeedError{EpisodeID: newest.ID}
		}
		lastNumber = *newest.EpisodeNumber
	}

	published := make(map[string]struct{}, len(existing))
	for _, ep := range existing {
		published[ep.ID] = struct{}{}
	}

	novel := make([]models.Episode, 0, len(candidates))
	for _, ep := range candidates {
		if _, ok := published[ep.ID]; ok {
			continue
		}
		novel = append(novel, ep)
	}

	// Oldest first, so numbering proceeds in publish order.
	for i, j := 0, len(novel)-1; i < j; i, j = i+1, j-1 {
		novel[i], novel[j] = novel[j], novel[i]
	}
	// The catalog source claims newest-first output; the stable sort
	// enforces chronological order instead of assuming it, and leaves
	// same-day episodes in their listed order.
	sort.SliceStable(novel, func(i, j int) bool {
		return novel[i].PublishedAt.Before(novel[j].PublishedAt)
	})

	for i := range novel {
		novel[i] = novel[i].WithNumber(lastNumber + i + 1)
	}
	return novel, nil
}
