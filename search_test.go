package makigami

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func buildTestArchive(t *testing.T, content []byte, chunkSize uint64) (archivePath, indexPath string) {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "log")
	if err := os.WriteFile(input, content, 0644); err != nil {
		t.Fatal(err)
	}
	archivePath = filepath.Join(dir, "log.zst")
	indexPath = filepath.Join(dir, "log.idx")

	opt := DefaultBuildOptions()
	opt.ChunkSize = chunkSize
	opt.Workers = 2
	if err := Build(context.Background(), input, archivePath, indexPath, opt); err != nil {
		t.Fatal(err)
	}
	return archivePath, indexPath
}

func TestSearchFindsPresentPattern(t *testing.T) {
	content := []byte("alpha beta\nneedle lives here\ngamma delta\n" +
		"filler filler filler filler\nmore filler lines go here too\n")
	archivePath, indexPath := buildTestArchive(t, content, 32)

	store, err := newLocalStorage(archivePath, indexPath)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Search(store, []byte("needle lives"), &out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(out.Bytes(), []byte("needle lives here")) {
		t.Fatalf("expected output to contain the matching chunk, got %q", out.String())
	}
}

func TestSearchRulesOutAbsentPattern(t *testing.T) {
	content := []byte("one two three\nfour five six\nseven eight nine\n")
	archivePath, indexPath := buildTestArchive(t, content, 16)

	store, err := newLocalStorage(archivePath, indexPath)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Search(store, []byte("zzzzzzzzzzzz"), &out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no candidates for an absent pattern, got %d bytes", out.Len())
	}
}

func TestSearchShortPatternMatchesEverything(t *testing.T) {
	content := []byte("short pattern test\nsecond line of the file\n")
	archivePath, indexPath := buildTestArchive(t, content, 16)

	store, err := newLocalStorage(archivePath, indexPath)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := Search(store, []byte("abcdef"), &out); err != nil { // 6 bytes < WindowSize
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), content) {
		t.Fatalf("a pattern shorter than the window size should match every chunk")
	}
}
