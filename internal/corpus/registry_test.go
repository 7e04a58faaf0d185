package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeRaw(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestOpenValidCorpus(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRaw(t, dir, "1_raw.txt", "один")
	writeRaw(t, dir, "2_raw.txt", "два")
	writeRaw(t, dir, "3_raw.txt", "три")
	// Sidecars and unrelated files are ignored by the id scan.
	writeRaw(t, dir, "1_meta.json", "{}")
	writeRaw(t, dir, "notes.md", "scratch")

	registry, err := Open(dir)
	require.NoError(t, err)
	require.Equal(t, 3, registry.Count())

	articles := registry.Articles()
	for id := 1; id <= 3; id++ {
		rec, ok := articles[id]
		require.True(t, ok, "missing id %d", id)
		require.Equal(t, id, rec.ID)
	}
}

func TestOpenMissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "absent"))
	require.ErrorIs(t, err, ErrDirectoryNotFound)
}

func TestOpenPathIsAFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "corpus")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := Open(path)
	require.ErrorIs(t, err, ErrNotADirectory)
}

func TestOpenEmptyDirectory(t *testing.T) {
	t.Parallel()

	_, err := Open(t.TempDir())
	require.ErrorIs(t, err, ErrEmptyDirectory)
}

func TestOpenDirectoryWithOnlyForeignFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRaw(t, dir, "readme.txt", "not an article")
	writeRaw(t, dir, "raw_1.txt", "wrong name shape")

	_, err := Open(dir)
	require.ErrorIs(t, err, ErrEmptyDirectory)
}

func TestOpenRejectsEmptyRawFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRaw(t, dir, "1_raw.txt", "один")
	writeRaw(t, dir, "2_raw.txt", "")

	_, err := Open(dir)
	require.ErrorIs(t, err, ErrInconsistentDataset)
}

func TestOpenRejectsIdGap(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRaw(t, dir, "1_raw.txt", "один")
	writeRaw(t, dir, "3_raw.txt", "три")

	_, err := Open(dir)
	require.ErrorIs(t, err, ErrInconsistentDataset)
}

func TestOpenRejectsZeroBasedIds(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeRaw(t, dir, "0_raw.txt", "ноль")
	writeRaw(t, dir, "1_raw.txt", "один")

	_, err := Open(dir)
	require.ErrorIs(t, err, ErrInconsistentDataset)
}
