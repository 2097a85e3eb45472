package makigami

import (
	"bytes"
	"io"
)

// patternKeys derives the 8-byte little-endian window keys of pattern.
// Patterns shorter than WindowSize produce an empty key list, which
// Search treats as "every chunk is a candidate" (spec.md §4.7). Windows
// that decode to 0 are left out, just as IntSet drops them at build time,
// so a zero window never rules a chunk out.
func patternKeys(pattern []byte) []uint64 {
	if len(pattern) < WindowSize {
		return nil
	}
	keys := make([]uint64, 0, len(pattern)-WindowSize+1)
	for i := 0; i+WindowSize <= len(pattern); i++ {
		k := leUint64(pattern[i : i+WindowSize])
		if k == 0 {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// candidate reports whether every key in keys is present in filter. A
// single absent key rules the chunk out - this is the sole mechanism by
// which the filter rules a chunk out (spec.md §4.7). An empty key list is
// vacuously true, matching every chunk.
func candidate(filter Filter, keys []uint64) bool {
	for _, k := range keys {
		if !filter.Contains(k) {
			return false
		}
	}
	return true
}

// Search streams every chunk of store that could contain pattern to w, in
// archive order, decompressed. It never attempts exact matching: a chunk
// surviving the filter test may still not contain pattern, and the
// caller is responsible for any further line-level scan of the output
// (spec.md §1 Non-goals).
func Search(store Storage, pattern []byte, w io.Writer) error {
	keys := patternKeys(pattern)

	raw, err := store.FetchIndex()
	if err != nil {
		return err
	}
	r := bytes.NewReader(raw)

	for {
		fi, err := readFrameInfo(r)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		filter, _, err := ReadFilter(r)
		if err != nil {
			return DecodeError{Cause: err}
		}

		if !candidate(filter, keys) {
			continue
		}

		block, err := store.ReadBlock(fi.FrameOffset, fi.FrameSize)
		if err != nil {
			return err
		}
		chunk, err := Decompress(nil, block)
		if err != nil {
			return err
		}
		if _, err := w.Write(chunk); err != nil {
			return Wrap(err, "writing search output")
		}
	}
}
