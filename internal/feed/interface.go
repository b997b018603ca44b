package feed

import "context"

// Entry is one podcast episode in the distribution feed.
type Entry struct {
	Title           string
	Link            string
	GUID            string
	Description     string
	EnclosureURL    string
	EnclosureLength int64
	Duration        string
	Author          string
}

// Publisher adds or replaces entries in the feed document.
type Publisher interface {
	Publish(ctx context.Context, entry Entry) (string, error)
}
