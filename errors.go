package makigami

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds from spec.md §7. Each is a distinct type so callers can tell
// them apart with errors.As; all wrap an underlying cause where one exists.

// DecodeError indicates the index stream failed to decode mid-record. A
// clean io.EOF at a record boundary is NOT a DecodeError - see
// readFrameInfo in format.go.
type DecodeError struct {
	Cause error
}

func (e DecodeError) Error() string { return fmt.Sprintf("malformed index record: %v", e.Cause) }
func (e DecodeError) Unwrap() error { return e.Cause }

// CompressError wraps a zstd encode failure for one chunk.
type CompressError struct {
	ChunkIndex int
	Cause      error
}

func (e CompressError) Error() string {
	return fmt.Sprintf("compressing chunk %d: %v", e.ChunkIndex, e.Cause)
}
func (e CompressError) Unwrap() error { return e.Cause }

// DecompressError wraps a zstd decode failure for one frame.
type DecompressError struct {
	Cause error
}

func (e DecompressError) Error() string { return fmt.Sprintf("decompressing frame: %v", e.Cause) }
func (e DecompressError) Unwrap() error { return e.Cause }

// FilterBuildError is returned when a chunk's key set could not be turned
// into a Filter. Workers treat this as fatal for the whole build - chunks
// are never silently dropped (spec.md §4.2).
type FilterBuildError struct {
	ChunkIndex int
	Cause      error
}

func (e FilterBuildError) Error() string {
	return fmt.Sprintf("building filter for chunk %d: %v", e.ChunkIndex, e.Cause)
}
func (e FilterBuildError) Unwrap() error { return e.Cause }

// TableFull is raised by IntSet.Insert when probing wraps back to the
// starting slot without finding room. This is a programmer error: the
// table must be sized so load factor never approaches 1 (spec.md §4.1).
type TableFull struct {
	Capacity int
}

func (e TableFull) Error() string {
	return fmt.Sprintf("integer set exhausted at capacity %d", e.Capacity)
}

// InvalidLocator is returned when a gs:// locator can't be parsed into a
// bucket and an object name. Filesystem paths are never rejected.
type InvalidLocator struct {
	Locator string
	Reason  string
}

func (e InvalidLocator) Error() string {
	return fmt.Sprintf("invalid locator %q: %s", e.Locator, e.Reason)
}

// RemoteError wraps a failure from a remote storage backend (GCS).
type RemoteError struct {
	Op    string
	Cause error
}

func (e RemoteError) Error() string { return fmt.Sprintf("remote storage %s: %v", e.Op, e.Cause) }
func (e RemoteError) Unwrap() error { return e.Cause }

// InvalidRange is returned by ReadBlock when size is zero.
type InvalidRange struct {
	Offset uint64
	Size   uint64
}

func (e InvalidRange) Error() string {
	return fmt.Sprintf("invalid range: offset=%d size=%d", e.Offset, e.Size)
}

// Wrap is a thin re-export of pkg/errors.Wrap, used throughout this module
// to attach context to I/O failures the way the teacher package does.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf is a thin re-export of pkg/errors.Wrapf.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
