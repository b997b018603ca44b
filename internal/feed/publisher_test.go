package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/gofeed"

	"github.com/emmanuelcandido/coursecast/internal/config"
	"github.com/emmanuelcandido/coursecast/internal/logger"
)

func testPublisher(t *testing.T) (Publisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.xml")
	cfg := config.FeedConfig{
		Path:        path,
		Title:       "Course Podcasts",
		Link:        "https://example.com/feeds",
		Description: "Podcasts generated from video courses",
		Language:    "en",
		Author:      "coursecast",
		Category:    "Education",
	}
	return New(cfg, logger.New("error")), path
}

func entryFixture(guid string) Entry {
	return Entry{
		Title:           "Algebra101",
		Link:            "https://media.example.com/Algebra101.mp3",
		GUID:            guid,
		Description:     "A summary of the course.",
		EnclosureURL:    "https://media.example.com/Algebra101.mp3",
		EnclosureLength: 123456,
		Duration:        "01:30:00",
		Author:          "coursecast",
	}
}

func TestPublishCreatesFeed(t *testing.T) {
	ctx := context.Background()
	pub, path := testPublisher(t)

	loc, err := pub.Publish(ctx, entryFixture("guid-1"))
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if loc != path {
		t.Errorf("location = %s, want %s", loc, path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open feed: %v", err)
	}
	defer file.Close()

	parsed, err := gofeed.NewParser().Parse(file)
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	if parsed.Title != "Course Podcasts" {
		t.Errorf("channel title = %q", parsed.Title)
	}
	if len(parsed.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(parsed.Items))
	}
	item := parsed.Items[0]
	if item.GUID != "guid-1" {
		t.Errorf("guid = %q", item.GUID)
	}
	if len(item.Enclosures) != 1 || item.Enclosures[0].URL != "https://media.example.com/Algebra101.mp3" {
		t.Errorf("enclosure = %+v", item.Enclosures)
	}
	if item.ITunesExt == nil || item.ITunesExt.Duration != "01:30:00" {
		t.Errorf("itunes duration missing: %+v", item.ITunesExt)
	}
}

func TestPublishReplacesByGUID(t *testing.T) {
	ctx := context.Background()
	pub, path := testPublisher(t)

	if _, err := pub.Publish(ctx, entryFixture("guid-1")); err != nil {
		t.Fatalf("first publish: %v", err)
	}

	updated := entryFixture("guid-1")
	updated.Description = "An updated summary."
	if _, err := pub.Publish(ctx, updated); err != nil {
		t.Fatalf("second publish: %v", err)
	}

	parsed := parseFeed(t, path)
	if len(parsed.Items) != 1 {
		t.Fatalf("items = %d, want 1 after same-guid republish", len(parsed.Items))
	}
	if parsed.Items[0].Description != "An updated summary." {
		t.Errorf("description = %q, wanted replacement", parsed.Items[0].Description)
	}
}

func TestPublishAppendsNewGUID(t *testing.T) {
	ctx := context.Background()
	pub, path := testPublisher(t)

	if _, err := pub.Publish(ctx, entryFixture("guid-1")); err != nil {
		t.Fatalf("first publish: %v", err)
	}
	second := entryFixture("guid-2")
	second.Title = "Geometry201"
	if _, err := pub.Publish(ctx, second); err != nil {
		t.Fatalf("second publish: %v", err)
	}

	parsed := parseFeed(t, path)
	if len(parsed.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(parsed.Items))
	}
}

func parseFeed(t *testing.T, path string) *gofeed.Feed {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open feed: %v", err)
	}
	defer file.Close()
	parsed, err := gofeed.NewParser().Parse(file)
	if err != nil {
		t.Fatalf("parse feed: %v", err)
	}
	return parsed
}
