// Package article defines the record type produced for every crawled page.
package article

import "time"

// Sentinel values used when a page does not expose the field.
const (
	TitleNotFound  = "NOT FOUND"
	AuthorNotFound = "NOT FOUND"
)

// Record is one extracted article. Identifiers are dense 1-based integers
// assigned in discovery order. A Record is immutable once returned by the
// extractor; the crawl core never reads it back after handing it to storage.
type Record struct {
	ID        int
	URL       string
	Title     string
	Authors   []string
	Published time.Time
	Topics    []string
	Text      string
}

// New creates a Record for url with the sentinel metadata defaults.
func New(url string, id int) Record {
	return Record{
		ID:      id,
		URL:     url,
		Title:   TitleNotFound,
		Authors: []string{AuthorNotFound},
		Topics:  []string{},
	}
}

// HasDate reports whether a publication date was extracted. An unparsable
// date yields no date rather than a fabricated one.
func (r Record) HasDate() bool {
	return !r.Published.IsZero()
}
