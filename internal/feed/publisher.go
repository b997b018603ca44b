package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/gofeed"
)

const itunesNS = "http://www.itunes.com/dtds/podcast-1.0.dtd"

type rssDocument struct {
	XMLName  xml.Name   `xml:"rss"`
	Version  string     `xml:"version,attr"`
	ItunesNS string     `xml:"xmlns:itunes,attr"`
	Channel  rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string       `xml:"title"`
	Link           string       `xml:"link"`
	Description    string       `xml:"description"`
	Language       string       `xml:"language"`
	LastBuildDate  string       `xml:"lastBuildDate"`
	ItunesAuthor   string       `xml:"itunes:author,omitempty"`
	ItunesSummary  string       `xml:"itunes:summary,omitempty"`
	ItunesExplicit string       `xml:"itunes:explicit"`
	ItunesImage    *rssImage    `xml:"itunes:image,omitempty"`
	ItunesCategory *rssCategory `xml:"itunes:category,omitempty"`
	Items          []rssItem    `xml:"item"`
}

type rssImage struct {
	Href string `xml:"href,attr"`
}

type rssCategory struct {
	Text string `xml:"text,attr"`
}

type rssItem struct {
	Title          string       `xml:"title"`
	Link           string       `xml:"link"`
	GUID           string       `xml:"guid"`
	Description    string       `xml:"description"`
	PubDate        string       `xml:"pubDate"`
	Enclosure      rssEnclosure `xml:"enclosure"`
	ItunesAuthor   string       `xml:"itunes:author,omitempty"`
	ItunesDuration string       `xml:"itunes:duration,omitempty"`
	ItunesExplicit string       `xml:"itunes:explicit"`
	ItunesSummary  string       `xml:"itunes:summary,omitempty"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

// Publish merges the entry into the feed document, replacing any existing
// item with the same GUID, and rewrites the file. Returns the feed path.
func (p *implPublisher) Publish(ctx context.Context, entry Entry) (string, error) {
	existing, err := p.loadItems()
	if err != nil {
		return "", err
	}

	items := make([]rssItem, 0, len(existing)+1)
	replaced := false
	for _, item := range existing {
		if item.GUID == entry.GUID {
			replaced = true
			continue
		}
		items = append(items, item)
	}
	items = append(items, p.newItem(entry))

	if replaced {
		p.logger.Info(ctx, "Replacing existing feed item for %s", entry.Title)
	} else {
		p.logger.Info(ctx, "Adding new feed item for %s", entry.Title)
	}

	doc := rssDocument{
		Version:  "2.0",
		ItunesNS: itunesNS,
		Channel: rssChannel{
			Title:          p.cfg.Title,
			Link:           p.cfg.Link,
			Description:    p.cfg.Description,
			Language:       p.cfg.Language,
			LastBuildDate:  time.Now().Format(time.RFC1123Z),
			ItunesAuthor:   p.cfg.Author,
			ItunesSummary:  p.cfg.Description,
			ItunesExplicit: "no",
			Items:          items,
		},
	}
	if p.cfg.ImageURL != "" {
		doc.Channel.ItunesImage = &rssImage{Href: p.cfg.ImageURL}
	}
	if p.cfg.Category != "" {
		doc.Channel.ItunesCategory = &rssCategory{Text: p.cfg.Category}
	}

	if err := p.write(doc); err != nil {
		return "", err
	}
	return p.cfg.Path, nil
}

func (p *implPublisher) newItem(entry Entry) rssItem {
	return rssItem{
		Title:       entry.Title,
		Link:        entry.Link,
		GUID:        entry.GUID,
		Description: entry.Description,
		PubDate:     time.Now().Format(time.RFC1123Z),
		Enclosure: rssEnclosure{
			URL:    entry.EnclosureURL,
			Length: entry.EnclosureLength,
			Type:   "audio/mpeg",
		},
		ItunesAuthor:   entry.Author,
		ItunesDuration: entry.Duration,
		ItunesExplicit: "no",
		ItunesSummary:  entry.Description,
	}
}

// loadItems parses the current feed document, if any, back into items so the
// rewrite preserves previously published episodes.
func (p *implPublisher) loadItems() ([]rssItem, error) {
	file, err := os.Open(p.cfg.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open feed file: %w", err)
	}
	defer file.Close()

	parsed, err := gofeed.NewParser().Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse feed file: %w", err)
	}

	items := make([]rssItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		item := rssItem{
			Title:          it.Title,
			Link:           it.Link,
			GUID:           it.GUID,
			Description:    it.Description,
			PubDate:        it.Published,
			ItunesExplicit: "no",
		}
		if len(it.Enclosures) > 0 {
			var length int64
			fmt.Sscanf(it.Enclosures[0].Length, "%d", &length)
			item.Enclosure = rssEnclosure{
				URL:    it.Enclosures[0].URL,
				Length: length,
				Type:   it.Enclosures[0].Type,
			}
		}
		if it.ITunesExt != nil {
			item.ItunesAuthor = it.ITunesExt.Author
			item.ItunesDuration = it.ITunesExt.Duration
			item.ItunesSummary = it.ITunesExt.Summary
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *implPublisher) write(doc rssDocument) error {
	if err := os.MkdirAll(filepath.Dir(p.cfg.Path), 0o755); err != nil {
		return fmt.Errorf("create feed directory: %w", err)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')

	if err := os.WriteFile(p.cfg.Path, out, 0o644); err != nil {
		return fmt.Errorf("write feed file: %w", err)
	}
	return nil
}
