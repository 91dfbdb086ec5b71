package feed

import "fmt"

// Normalization input kinds, reported by MissingFieldError.
const (
	SourceFeedEntry   = "feed_entry"
	SourceVideoRecord = "video_record"
)

// MissingFieldError reports a required field that was absent on a
// normalization input.
type MissingFieldError struct {
	Field  string
	Source string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in %s", e.Field, e.Source)
}

// MalformedFieldError reports a field that was present but could not be
// parsed as its expected shape.
type MalformedFieldError struct {
	Field string
	Raw   string
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed field %q: cannot parse %q", e.Field, e.Raw)
}

// InconsistentFeedError reports an existing feed whose newest entry
// carries no episode number, leaving no basis for numbering new episodes.
type InconsistentFeedError struct {
	EpisodeID string
}

func (e *InconsistentFeedError) Error() string {
	return fmt.Sprintf("inconsistent feed: newest entry %q has no episode number", e.EpisodeID)
}
