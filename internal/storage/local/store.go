// Package local persists article records to the local filesystem using the
// fixed <id>_raw.txt / <id>_meta.json naming convention.
package local

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mvoronina/news-corpus/internal/article"
)

// File name templates keyed by article id.
const (
	rawFileTemplate  = "%d_raw.txt"
	metaFileTemplate = "%d_meta.json"
)

const metaDateLayout = "2006-01-02 15:04:05"

// Store writes article records under a base directory.
type Store struct {
	baseDir string
}

// New creates a Store rooted at baseDir. The directory is not touched until
// Prepare runs.
func New(baseDir string) (*Store, error) {
	if strings.TrimSpace(baseDir) == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	return &Store{baseDir: baseDir}, nil
}

// Dir returns the base directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// Prepare removes the output directory and recreates it empty. A run is
// never incremental; every invocation starts from a clean slate.
func (s *Store) Prepare() error {
	if err := os.RemoveAll(s.baseDir); err != nil {
		return fmt.Errorf("remove output directory: %w", err)
	}
	if err := os.MkdirAll(s.baseDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Fail before the crawl starts if the directory is not writable.
	probe := filepath.Join(s.baseDir, ".writable_test")
	if err := os.WriteFile(probe, []byte("test"), 0o600); err != nil {
		return fmt.Errorf("output directory is not writable: %w", err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("clean up writability probe: %w", err)
	}
	return nil
}

// Save writes the record's raw text and metadata sidecar. A placeholder
// record is still a valid record; only a genuinely empty body is rejected,
// since an empty raw file would corrupt the dataset.
func (s *Store) Save(rec article.Record) error {
	if rec.ID < 1 {
		return fmt.Errorf("record id must be positive, got %d", rec.ID)
	}
	if strings.TrimSpace(rec.Text) == "" {
		return fmt.Errorf("record %d has empty body text", rec.ID)
	}

	rawPath := filepath.Join(s.baseDir, fmt.Sprintf(rawFileTemplate, rec.ID))
	if err := os.WriteFile(rawPath, []byte(rec.Text), 0o600); err != nil {
		return fmt.Errorf("write raw text %s: %w", rawPath, err)
	}

	payload, err := json.MarshalIndent(metaDocument{
		ID:     rec.ID,
		URL:    rec.URL,
		Title:  rec.Title,
		Author: rec.Authors,
		Date:   formatDate(rec),
		Topics: rec.Topics,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal meta for %d: %w", rec.ID, err)
	}
	metaPath := filepath.Join(s.baseDir, fmt.Sprintf(metaFileTemplate, rec.ID))
	if err := os.WriteFile(metaPath, payload, 0o600); err != nil {
		return fmt.Errorf("write metadata %s: %w", metaPath, err)
	}
	return nil
}

// metaDocument is the on-disk metadata shape.
type metaDocument struct {
	ID     int      `json:"id"`
	URL    string   `json:"url"`
	Title  string   `json:"title"`
	Author []string `json:"author"`
	Date   string   `json:"date"`
	Topics []string `json:"topics"`
}

func formatDate(rec article.Record) string {
	if !rec.HasDate() {
		return ""
	}
	return rec.Published.Format(metaDateLayout)
}
