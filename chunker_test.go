package makigami

import (
	"bytes"
	"testing"

	"github.com/edsrzf/mmap-go"
)

func collectChunks(t *testing.T, data []byte, target uint64) []Chunk {
	t.Helper()
	c := NewChunker(mmap.MMap(data), target)
	var chunks []Chunk
	for {
		chunk, ok := c.Next()
		if !ok {
			break
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func TestChunkerTilesWholeInput(t *testing.T) {
	data := []byte("alpha\nbravo\ncharlie\ndelta\necho\nfoxtrot\n")
	chunks := collectChunks(t, data, 10)

	var rebuilt []byte
	var prevEnd uint64
	for i, c := range chunks {
		if c.Index != i {
			t.Fatalf("chunk %d has index %d", i, c.Index)
		}
		if c.Start != prevEnd {
			t.Fatalf("chunk %d starts at %d, expected %d", i, c.Start, prevEnd)
		}
		rebuilt = append(rebuilt, c.Data...)
		prevEnd = c.Start + uint64(len(c.Data))
	}
	if prevEnd != uint64(len(data)) {
		t.Fatalf("chunks cover %d bytes, expected %d", prevEnd, len(data))
	}
	if !bytes.Equal(rebuilt, data) {
		t.Fatalf("rebuilt data does not match input")
	}
}

func TestChunkerLineAligned(t *testing.T) {
	data := []byte("aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc\n")
	chunks := collectChunks(t, data, 15)
	for i, c := range chunks {
		last := c.Start + uint64(len(c.Data))
		if last == uint64(len(data)) {
			continue // final chunk need not end on a newline
		}
		if len(c.Data) == 0 || c.Data[len(c.Data)-1] != '\n' {
			t.Fatalf("chunk %d does not end on a newline boundary", i)
		}
	}
}

func TestChunkerNoTrailingNewline(t *testing.T) {
	data := []byte("one\ntwo\nthree")
	chunks := collectChunks(t, data, 5)
	last := chunks[len(chunks)-1]
	if last.Start+uint64(len(last.Data)) != uint64(len(data)) {
		t.Fatalf("last chunk does not reach end of file")
	}
	if last.Data[len(last.Data)-1] == '\n' {
		t.Fatalf("last chunk should not end in a newline")
	}
}

func TestChunkerShortInput(t *testing.T) {
	data := []byte("hi")
	chunks := collectChunks(t, data, DefaultChunkSize)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for short input, got %d", len(chunks))
	}
	if !bytes.Equal(chunks[0].Data, data) {
		t.Fatalf("chunk data mismatch")
	}
}

func TestChunkerEmptyInput(t *testing.T) {
	chunks := collectChunks(t, nil, DefaultChunkSize)
	if len(chunks) != 0 {
		t.Fatalf("expected no chunks for empty input, got %d", len(chunks))
	}
}
