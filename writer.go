package makigami

import (
	"fmt"
	"io"
)

// writeOrdered is the pipeline's single writer (spec.md §4.4). It is the
// only goroutine that touches archive or index, so no locking is needed
// around the offset counter or either file. Workers may finish chunks out
// of order; writeOrdered buffers results in a map keyed by chunk index
// and only emits a contiguous run starting at the next expected index,
// which is what makes output order match input order regardless of
// worker scheduling.
func writeOrdered(results <-chan chunkResult, archive, index io.Writer, level int) error {
	pending := make(map[int]chunkResult)
	next := 0
	var offset uint64

	emit := func(res chunkResult) error {
		compressed, err := Compress(res.chunk.Data, level)
		if err != nil {
			return CompressError{ChunkIndex: res.chunk.Index, Cause: err}
		}
		if _, err := archive.Write(compressed); err != nil {
			return Wrapf(err, "writing archive frame %d", res.chunk.Index)
		}
		fi := FrameInfo{FrameOffset: offset, FrameSize: uint64(len(compressed))}
		if err := writeFrameInfo(index, fi); err != nil {
			return Wrapf(err, "writing index record %d", res.chunk.Index)
		}
		if _, err := res.filter.WriteTo(index); err != nil {
			return Wrapf(err, "writing filter %d", res.chunk.Index)
		}
		offset += fi.FrameSize
		return nil
	}

	for res := range results {
		pending[res.chunk.Index] = res
		for {
			r, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if err := emit(r); err != nil {
				return err
			}
			next++
		}
	}
	if len(pending) != 0 {
		return fmt.Errorf("pipeline ended with %d chunk(s) never reaching index %d", len(pending), next)
	}
	return nil
}
