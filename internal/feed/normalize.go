package feed

import (
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"tubecast/internal/models"
)

// uploadDateLayout is the 8-digit calendar date yt-dlp reports.
const uploadDateLayout = "20060102"

// EpisodeFromItem normalizes one previously published feed entry into the
// canonical episode representation. Every field except the episode number
// and the description is required; an absence means the document is
// corrupt and must not be carried forward silently. The description may
// be empty because an episode whose source video had none round-trips as
// an empty element.
func EpisodeFromItem(item *gofeed.Item) (models.Episode, error) {
	var ep models.Episode

	if item.GUID == "" {
		return ep, &MissingFieldError{Field: "guid", Source: SourceFeedEntry}
	}
	if item.Title == "" {
		return ep, &MissingFieldError{Field: "title", Source: SourceFeedEntry}
	}
	if item.Link == "" {
		return ep, &MissingFieldError{Field: "link", Source: SourceFeedEntry}
	}

	if len(item.Enclosures) == 0 || item.Enclosures[0].URL == "" {
		return ep, &MissingFieldError{Field: "enclosure", Source: SourceFeedEntry}
	}
	enclosure := item.Enclosures[0]
	if enclosure.Length == "" {
		return ep, &MissingFieldError{Field: "enclosure_length", Source: SourceFeedEntry}
	}
	seconds, err := strconv.ParseInt(enclosure.Length, 10, 64)
	if err != nil || seconds < 0 {
		return ep, &MalformedFieldError{Field: "enclosure_length", Raw: enclosure.Length}
	}

	itunes := item.ITunesExt
	if itunes == nil || itunes.Duration == "" {
		return ep, &MissingFieldError{Field: "itunes_duration", Source: SourceFeedEntry}
	}

	var number *int
	if itunes.Episode != "" {
		n, err := strconv.Atoi(itunes.Episode)
		if err != nil {
			return ep, &MalformedFieldError{Field: "itunes_episode", Raw: itunes.Episode}
		}
		number = &n
	}

	author := itunes.Author
	if author == "" && item.Author != nil {
		author = item.Author.Name
		if author == "" {
			author = item.Author.Email
		}
	}
	if author == "" {
		return ep, &MissingFieldError{Field: "author", Source: SourceFeedEntry}
	}

	if item.PublishedParsed == nil {
		if item.Published == "" {
			return ep, &MissingFieldError{Field: "pub_date", Source: SourceFeedEntry}
		}
		return ep, &MalformedFieldError{Field: "pub_date", Raw: item.Published}
	}

	return models.Episode{
		ID:              item.GUID,
		SourceURL:       enclosure.URL,
		EpisodeNumber:   number,
		Title:           item.Title,
		DurationSeconds: seconds,
		DurationDisplay: itunes.Duration,
		Author:          author,
		PublishedAt:     *item.PublishedParsed,
		Link:            item.Link,
		Description:     item.Description,
	}, nil
}

// EpisodeFromVideo normalizes one fetched video record. The media URL is
// derived from the injected delivery base URL and the video id; the
// episode number stays unassigned until the merge engine numbers it.
func EpisodeFromVideo(video models.Video, baseURL string) (models.Episode, error) {
	var ep models.Episode

	if baseURL == "" {
		return ep, fmt.Errorf("delivery base URL is required")
	}
	if video.ID == "" {
		return ep, &MissingFieldError{Field: "id", Source: SourceVideoRecord}
	}
	if video.Title == "" {
		return ep, &MissingFieldError{Field: "title", Source: SourceVideoRecord}
	}

	if video.Duration == nil {
		return ep, &MissingFieldError{Field: "duration", Source: SourceVideoRecord}
	}
	duration := *video.Duration
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return ep, &MalformedFieldError{Field: "duration", Raw: strconv.FormatFloat(duration, 'f', -1, 64)}
	}
	seconds := int64(duration)

	if video.UploadDate == nil || *video.UploadDate == "" {
		return ep, &MissingFieldError{Field: "upload_date", Source: SourceVideoRecord}
	}
	// Midnight UTC; the extractor reports a calendar date only.
	published, err := time.Parse(uploadDateLayout, *video.UploadDate)
	if err != nil {
		return ep, &MalformedFieldError{Field: "upload_date", Raw: *video.UploadDate}
	}

	if video.Uploader == nil || *video.Uploader == "" {
		return ep, &MissingFieldError{Field: "uploader", Source: SourceVideoRecord}
	}
	if video.WebpageURL == nil || *video.WebpageURL == "" {
		return ep, &MissingFieldError{Field: "webpage_url", Source: SourceVideoRecord}
	}

	description := ""
	if video.Description != nil {
		description = renderDescription(*video.Description)
	}

	return models.Episode{
		ID:              video.ID,
		SourceURL:       strings.TrimRight(baseURL, "/") + "/" + video.ID,
		Title:           video.Title,
		DurationSeconds: seconds,
		DurationDisplay: formatDuration(seconds),
		Author:          *video.Uploader,
		PublishedAt:     published,
		Link:            *video.WebpageURL,
		Description:     description,
	}, nil
}

// formatDuration renders seconds as zero-padded HH:MM:SS.
func formatDuration(seconds int64) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds%60)
}

// renderDescription turns the raw free-text description into paragraph
// markup: one <p> per source line, special characters escaped.
func renderDescription(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(raw, "\n") {
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}
