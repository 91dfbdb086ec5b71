package feed

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"tubecast/internal/models"
)

const (
	// enclosureType is the MIME type of the delivered audio files.
	enclosureType = "audio/m4a"

	itunesNamespace  = "http://www.itunes.com/dtds/podcast-1.0.dtd"
	contentNamespace = "http://purl.org/rss/1.0/modules/content/"

	pubDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"
)

// Channel holds the channel-level feed metadata. It is supplied by
// configuration once per run; nothing in it is computed here.
type Channel struct {
	Title       string
	Link        string
	Description string
	Author      string
	// Block marks every entry with itunes:block so podcast directories
	// skip episodes distributed outside the primary directory.
	Block bool
}

// ExtensionElement is one namespaced element injected into an entry
// beyond the fields the base vocabulary and the itunes extension cover.
type ExtensionElement struct {
	Namespace string
	Name      string
	Value     string
}

// MarshalXML writes the element under its namespaced name.
func (e ExtensionElement) MarshalXML(enc *xml.Encoder, start xml.StartElement) error {
	local := e.Name
	if e.Namespace != "" {
		local = e.Namespace + ":" + e.Name
	}
	start.Name = xml.Name{Local: local}
	return enc.EncodeElement(e.Value, start)
}

type rssDocument struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ITunesNS  string     `xml:"xmlns:itunes,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	IAuthor     string    `xml:"itunes:author,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	GUID        rssGUID      `xml:"guid"`
	PubDate     string       `xml:"pubDate"`
	Title       string       `xml:"title"`
	Link        string       `xml:"link"`
	Description string       `xml:"description"`
	Enclosure   rssEnclosure `xml:"enclosure"`
	IEpisode    string       `xml:"itunes:episode,omitempty"`
	IAuthor     string       `xml:"itunes:author"`
	IDuration   string       `xml:"itunes:duration"`
	IBlock      string       `xml:"itunes:block,omitempty"`
	Extensions  []ExtensionElement
}

type rssGUID struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// newItem maps one episode to its feed entry, including the itunes
// extension block and the extra namespaced elements.
func newItem(ep models.Episode, ch Channel) rssItem {
	item := rssItem{
		GUID:        rssGUID{IsPermaLink: "false", Value: ep.ID},
		PubDate:     ep.PublishedAt.UTC().Format(pubDateLayout),
		Title:       ep.Title,
		Link:        ep.Link,
		Description: ep.Description,
		Enclosure: rssEnclosure{
			URL:    ep.SourceURL,
			Length: ep.DurationSeconds,
			Type:   enclosureType,
		},
		IAuthor:   ep.Author,
		IDuration: ep.DurationDisplay,
		// The itunes item vocabulary has no per-entry title element, but
		// some podcast clients only display one. Smuggle it in as an
		// extra extension element, scoped to this entry.
		Extensions: []ExtensionElement{
			{Namespace: "itunes", Name: "title", Value: ep.Title},
		},
	}
	if ep.EpisodeNumber != nil {
		item.IEpisode = strconv.Itoa(*ep.EpisodeNumber)
	}
	if ch.Block {
		item.IBlock = "Yes"
	}
	return item
}

// Render serializes a whole feed document. Episodes are expected newest
// first and their relative order is preserved; previously published
// episodes come through byte-for-byte equivalent because all of their
// serialized fields live on the canonical representation.
func Render(ch Channel, episodes []models.Episode) ([]byte, error) {
	doc := rssDocument{
		Version:   "2.0",
		ITunesNS:  itunesNamespace,
		ContentNS: contentNamespace,
		Channel: rssChannel{
			Title:       ch.Title,
			Link:        ch.Link,
			Description: ch.Description,
			IAuthor:     ch.Author,
		},
	}
	for _, ep := range episodes {
		doc.Channel.Items = append(doc.Channel.Items, newItem(ep, ch))
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal feed document: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
