package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"

	"tubecast/internal/models"
)

func testChannel() Channel {
	return Channel{
		Title:       "Test Title",
		Link:        "https://test.example.com",
		Description: "A Test Feed",
		Author:      "Alex Jackson",
		Block:       true,
	}
}

func testEpisode(id, title string, number int, published time.Time) models.Episode {
	ep := models.Episode{
		ID:              id,
		SourceURL:       "https://audio.example.com/" + id,
		Title:           title,
		DurationSeconds: 5025,
		DurationDisplay: "01:23:45",
		Author:          "MandaloreGaming",
		PublishedAt:     published,
		Link:            "https://www.youtube.com/watch?v=" + id,
		Description:     "<p>About " + title + "</p>",
	}
	return ep.WithNumber(number)
}

func TestRenderWritesExtensionBlock(t *testing.T) {
	data, err := Render(testChannel(), []models.Episode{
		testEpisode("vid-1", "Episode One", 7, day(6)),
	})

	assert.NoError(t, err)
	xml := string(data)
	assert.Contains(t, xml, `xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"`)
	assert.Contains(t, xml, `<guid isPermaLink="false">vid-1</guid>`)
	assert.Contains(t, xml, `<enclosure url="https://audio.example.com/vid-1" length="5025" type="audio/m4a">`)
	assert.Contains(t, xml, `<pubDate>Thu, 06 Oct 2022 00:00:00 +0000</pubDate>`)
	assert.Contains(t, xml, `<itunes:episode>7</itunes:episode>`)
	assert.Contains(t, xml, `<itunes:author>MandaloreGaming</itunes:author>`)
	assert.Contains(t, xml, `<itunes:duration>01:23:45</itunes:duration>`)
	assert.Contains(t, xml, `<itunes:block>Yes</itunes:block>`)
	assert.Contains(t, xml, `<itunes:title>Episode One</itunes:title>`)
}

func TestRenderBlockFlagIsConfigurable(t *testing.T) {
	ch := testChannel()
	ch.Block = false

	data, err := Render(ch, []models.Episode{
		testEpisode("vid-1", "Episode One", 1, day(1)),
	})

	assert.NoError(t, err)
	assert.NotContains(t, string(data), "<itunes:block>")
}

func TestRenderOmitsNumberWhenUnassigned(t *testing.T) {
	ep := testEpisode("vid-1", "Episode One", 1, day(1))
	ep.EpisodeNumber = nil

	data, err := Render(testChannel(), []models.Episode{ep})

	assert.NoError(t, err)
	assert.NotContains(t, string(data), "<itunes:episode>")
}

func TestRenderScopesTitleExtensionPerItem(t *testing.T) {
	data, err := Render(testChannel(), []models.Episode{
		testEpisode("vid-2", "Episode Two", 2, day(2)),
		testEpisode("vid-1", "Episode One", 1, day(1)),
	})
	assert.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(string(data))
	assert.NoError(t, err)
	assert.Len(t, parsed.Items, 2)

	// Each entry must carry its own title extension, not a shared one.
	first := parsed.Items[0].Extensions["itunes"]["title"]
	second := parsed.Items[1].Extensions["itunes"]["title"]
	if assert.Len(t, first, 1) {
		assert.Equal(t, "Episode Two", first[0].Value)
	}
	if assert.Len(t, second, 1) {
		assert.Equal(t, "Episode One", second[0].Value)
	}
	assert.Equal(t, 2, strings.Count(string(data), "<itunes:title>"))
}

func TestRenderEscapesDescriptionMarkup(t *testing.T) {
	ep := testEpisode("vid-1", "Episode One", 1, day(1))
	ep.Description = "<p>tags &amp; entities</p>"

	data, err := Render(testChannel(), []models.Episode{ep})

	assert.NoError(t, err)
	// The paragraph markup is carried as escaped text, decodable by any
	// feed reader, never as literal child elements.
	assert.Contains(t, string(data), "&lt;p&gt;tags &amp;amp; entities&lt;/p&gt;")
}

func TestRenderRoundTripsThroughNormalizer(t *testing.T) {
	episodes := []models.Episode{
		testEpisode("vid-2", "Episode Two", 2, day(2)),
		testEpisode("vid-1", "Episode One", 1, day(1)),
	}

	data, err := Render(testChannel(), episodes)
	assert.NoError(t, err)

	parsed, err := gofeed.NewParser().ParseString(string(data))
	assert.NoError(t, err)
	assert.Equal(t, "Test Title", parsed.Title)
	assert.Len(t, parsed.Items, 2)

	for i, item := range parsed.Items {
		got, err := EpisodeFromItem(item)
		assert.NoError(t, err)
		assert.Equal(t, episodes[i].ID, got.ID)
		assert.Equal(t, episodes[i].SourceURL, got.SourceURL)
		assert.Equal(t, *episodes[i].EpisodeNumber, *got.EpisodeNumber)
		assert.Equal(t, episodes[i].Title, got.Title)
		assert.Equal(t, episodes[i].DurationSeconds, got.DurationSeconds)
		assert.Equal(t, episodes[i].DurationDisplay, got.DurationDisplay)
		assert.Equal(t, episodes[i].Author, got.Author)
		assert.Equal(t, episodes[i].Link, got.Link)
		assert.Equal(t, episodes[i].Description, got.Description)
		assert.True(t, got.PublishedAt.Equal(episodes[i].PublishedAt))
	}
}
