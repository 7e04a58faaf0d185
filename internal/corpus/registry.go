// Package corpus validates an on-disk corpus directory and indexes its
// article identifiers for downstream consumers.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/mvoronina/news-corpus/internal/article"
)

// Dataset validation error kinds.
var (
	ErrDirectoryNotFound   = errors.New("corpus directory does not exist")
	ErrNotADirectory       = errors.New("corpus path is not a directory")
	ErrEmptyDirectory      = errors.New("corpus directory has no raw article files")
	ErrInconsistentDataset = errors.New("corpus dataset is inconsistent")
)

var rawFilePattern = regexp.MustCompile(`^(\d+)_raw\.txt$`)

// Registry is an index over a validated corpus directory. The id set is
// guaranteed dense: 1..n with no gaps or duplicates, mirroring the
// numbering invariant the crawl itself produces.
type Registry struct {
	dir      string
	articles map[int]article.Record
}

// Open validates the directory's naming and id-sequence invariants and
// builds the in-memory index.
func Open(dir string) (*Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("stat corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read corpus directory: %w", err)
	}

	var ids []int
	for _, entry := range entries {
		match := rawFilePattern.FindStringSubmatch(entry.Name())
		if match == nil || entry.IsDir() {
			continue
		}
		id, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		fileInfo, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		if fileInfo.Size() == 0 {
			return nil, fmt.Errorf("%w: empty file %s", ErrInconsistentDataset, entry.Name())
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDirectory, dir)
	}

	sort.Ints(ids)
	for i, id := range ids {
		if id != i+1 {
			return nil, fmt.Errorf("%w: id sequence is not dense at %d", ErrInconsistentDataset, id)
		}
	}

	articles := make(map[int]article.Record, len(ids))
	for _, id := range ids {
		articles[id] = article.New("", id)
	}
	return &Registry{dir: dir, articles: articles}, nil
}

// Articles returns the id-indexed placeholder records.
func (r *Registry) Articles() map[int]article.Record {
	return r.articles
}

// Count returns the number of indexed articles.
func (r *Registry) Count() int {
	return len(r.articles)
}
