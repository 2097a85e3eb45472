package makigami

import (
	"context"
	"os"
	"runtime"
	"sync"

	"github.com/edsrzf/mmap-go"
	"golang.org/x/sync/errgroup"
)

// BuildOptions configures the build pipeline (spec.md §4.4/§5). The zero
// value is usable: Build substitutes DefaultChunkSize and runtime.NumCPU()
// for a zero ChunkSize and Workers, and Level 0 is DefaultCompressionLevel.
type BuildOptions struct {
	// ChunkSize is the chunker's target chunk size in bytes.
	ChunkSize uint64
	// Workers is the number of filter-construction goroutines. Defaults to
	// runtime.NumCPU() when <= 0.
	Workers int
	// Level is the zstd compression level used for archive frames.
	Level int
}

// DefaultBuildOptions returns the options used when the CLI is given no
// overrides.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		ChunkSize: DefaultChunkSize,
		Workers:   runtime.NumCPU(),
		Level:     DefaultCompressionLevel,
	}
}

// chunkResult is what a worker hands to the writer: the original chunk
// (still needed for compression) plus its built filter.
type chunkResult struct {
	chunk  Chunk
	filter Filter
}

// Build reads inputPath, partitions it into line-aligned chunks, and
// writes an independently-compressed archive to archivePath plus a
// FrameInfo+Filter index to indexPath. Chunks appear in input order in
// both outputs regardless of worker completion order (spec.md §4.4).
//
// The pipeline is a producer (the chunker, run on the calling goroutine's
// errgroup member) feeding a bounded channel to a pool of Workers, whose
// results are collected by a single writer goroutine that reorders them
// via a chunk_index-keyed buffer before emitting anything to disk. A
// fatal error anywhere makes Build return that error. Records written
// before it stay in the archive and index files, and a write failure
// part-way through a record leaves that record incomplete (spec.md §7).
func Build(ctx context.Context, inputPath, archivePath, indexPath string, opt BuildOptions) error {
	if opt.ChunkSize == 0 {
		opt.ChunkSize = DefaultChunkSize
	}
	if opt.Workers <= 0 {
		opt.Workers = runtime.NumCPU()
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return Wrap(err, "opening input")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return Wrap(err, "statting input")
	}

	var data mmap.MMap
	if info.Size() > 0 {
		data, err = mmap.Map(in, mmap.RDONLY, 0)
		if err != nil {
			return Wrap(err, "memory-mapping input")
		}
		defer data.Unmap()
	}

	archive, err := os.OpenFile(archivePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return Wrap(err, "creating archive file")
	}
	defer archive.Close()

	index, err := os.OpenFile(indexPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return Wrap(err, "creating index file")
	}
	defer index.Close()

	g, gctx := errgroup.WithContext(ctx)

	// Bounded queues cap in-flight chunk memory to O(workers), per
	// spec.md §5's backpressure requirement.
	queueDepth := 2 * opt.Workers
	chunkCh := make(chan Chunk, queueDepth)
	resultCh := make(chan chunkResult, queueDepth)

	// Producer: walk the mmap'd input and feed workers in order.
	g.Go(func() error {
		defer close(chunkCh)
		chunker := NewChunker(data, opt.ChunkSize)
		for {
			chunk, ok := chunker.Next()
			if !ok {
				return nil
			}
			select {
			case chunkCh <- chunk:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	// Worker pool: dedupe each chunk's windows and build its filter.
	// Workers are interchangeable and observe no particular chunk order.
	setCapacity := intSetCapacityFor(opt.ChunkSize)
	g.Go(func() error {
		var wg sync.WaitGroup
		workerErrs := make(chan error, opt.Workers)
		for i := 0; i < opt.Workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := filterWorker(gctx, chunkCh, resultCh, setCapacity); err != nil {
					workerErrs <- err
				}
			}()
		}
		wg.Wait()
		close(resultCh)
		close(workerErrs)
		for err := range workerErrs {
			if err != nil {
				return err
			}
		}
		return nil
	})

	// Writer: the sole mutator of the archive/index files, draining
	// resultCh and emitting frames+records strictly in chunk_index order.
	g.Go(func() error {
		return writeOrdered(resultCh, archive, index, opt.Level)
	})

	return g.Wait()
}

// filterWorker owns one IntSet, clearing it between chunks rather than
// reallocating (spec.md §4.1's "why fixed-capacity + clear"). The set is
// only replaced, by a larger one, when a chunk is too long for it.
func filterWorker(ctx context.Context, in <-chan Chunk, out chan<- chunkResult, setCapacity int) error {
	set := NewIntSet(setCapacity)
	for {
		select {
		case chunk, ok := <-in:
			if !ok {
				return nil
			}
			// A chunk runs past the target size to the next newline, so one
			// ending in a long line can hold more windows than the set was
			// sized for.
			if need := intSetCapacityFor(uint64(len(chunk.Data))); need > setCapacity {
				setCapacity = need
				set = NewIntSet(setCapacity)
			}
			filter, err := buildChunkFilter(chunk, set)
			if err != nil {
				return err
			}
			select {
			case out <- chunkResult{chunk: chunk, filter: filter}:
			case <-ctx.Done():
				return ctx.Err()
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// minIntSetCapacity is the smallest table NewIntSet is ever asked for,
// so pathologically small --chunk-size values (including the tens-of-
// bytes sizes this package's own tests use) still get a usable set
// instead of one sized to round down to zero.
const minIntSetCapacity = 1 << 8

// intSetCapacityFor returns the IntSet capacity each worker should use for
// the given chunk size: a power of two comfortably above the largest
// possible distinct-window count for one chunk of that size (at most
// chunkSize-WindowSize+1 overlapping windows), keeping load factor at or
// below 0.5 per spec.md §4.1's sizing requirement. Unlike a constant sized
// for the worst case, this scales down with --chunk-size so small chunks
// don't pay for a table sized for the 64 MiB default.
func intSetCapacityFor(chunkSize uint64) int {
	need := chunkSize * 2
	capacity := uint64(minIntSetCapacity)
	for capacity < need {
		capacity <<= 1
	}
	return int(capacity)
}

// buildChunkFilter dedupes every 8-byte window of chunk.Data with set and
// builds a Filter over the result, clearing set first so it can be reused
// across chunks.
func buildChunkFilter(chunk Chunk, set *IntSet) (Filter, error) {
	set.Clear()
	data := chunk.Data
	for i := 0; i+WindowSize <= len(data); i++ {
		key := leUint64(data[i : i+WindowSize])
		set.Insert(key)
	}
	keys := set.Extract()
	filter, err := BuildFilter(keys)
	if err != nil {
		return Filter{}, FilterBuildError{ChunkIndex: chunk.Index, Cause: err}
	}
	Log.WithFields(map[string]interface{}{
		"chunk":      chunk.Index,
		"keys":       len(keys),
		"collisions": set.Collisions(),
		"saw_zero":   set.SawZero(),
	}).Debug("built chunk filter")
	return filter, nil
}

// leUint64 interprets 8 consecutive bytes as a little-endian uint64, the
// window encoding spec.md §3 defines.
func leUint64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
