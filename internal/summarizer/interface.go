package summarizer

import "context"

// Summarizer condenses a course transcription into markdown using a named
// prompt template.
type Summarizer interface {
	Summarize(ctx context.Context, text, promptName string) (string, error)
}
