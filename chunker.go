package makigami

import (
	"bytes"

	"github.com/edsrzf/mmap-go"
)

// Chunk is one line-aligned, contiguous byte range of the input, as
// described in spec.md §3. Index is the production order assigned by the
// Chunker, starting at 0.
type Chunk struct {
	Index int
	Start uint64
	Data  []byte
}

// Chunker walks a memory-mapped input and yields line-aligned chunks of
// roughly Target bytes each, in ascending input order (spec.md §4.3). Its
// shape - holding reader-ish state and exposing a Next() iterator - follows
// the teacher's Chunker type; the body is a line-boundary scan instead of
// the teacher's content-defined rolling hash, since chunk boundaries here
// must align with the archive's compression frames, not with dedup
// opportunities.
type Chunker struct {
	data   mmap.MMap
	target uint64
	pos    uint64
	index  int
}

// NewChunker returns a Chunker over data, targeting chunks of target bytes.
func NewChunker(data mmap.MMap, target uint64) *Chunker {
	if target == 0 {
		target = DefaultChunkSize
	}
	return &Chunker{data: data, target: target}
}

// Next returns the next chunk, or ok=false once the input is exhausted.
func (c *Chunker) Next() (Chunk, bool) {
	fileLen := uint64(len(c.data))
	if c.pos >= fileLen {
		return Chunk{}, false
	}
	start := c.pos
	endCandidate := start + c.target
	if endCandidate > fileLen {
		endCandidate = fileLen
	}

	var end uint64
	if endCandidate < fileLen {
		if rel := bytes.IndexByte(c.data[endCandidate:], '\n'); rel >= 0 {
			end = endCandidate + uint64(rel) + 1
		} else {
			end = fileLen
		}
	} else {
		end = fileLen
	}

	chunk := Chunk{
		Index: c.index,
		Start: start,
		Data:  c.data[start:end],
	}
	c.pos = end
	c.index++
	return chunk, true
}
