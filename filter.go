package makigami

import (
	"io"

	"github.com/holiman/bloomfilter/v2"
)

// Filter is the immutable, binary-serializable approximate membership
// structure spec.md §3/§4.2 requires: no false negatives for any key used
// to build it, bounded false positives otherwise. Backed by a classic
// Bloom filter, which gives the no-false-negative guarantee for free.
type Filter struct {
	f *bloomfilter.Filter
}

// rawKey adapts a pre-hashed uint64 to hash.Hash64, which is what
// bloomfilter.Filter.Add/Contains expect. Sum64 returns the 64-bit window
// value itself; no secondary hashing is applied before the filter sees it.
type rawKey uint64

func (k rawKey) Write(p []byte) (int, error) { return len(p), nil }
func (k rawKey) Sum(b []byte) []byte         { return b }
func (k rawKey) Reset()                      {}
func (k rawKey) Size() int                   { return 8 }
func (k rawKey) BlockSize() int              { return 8 }
func (k rawKey) Sum64() uint64               { return uint64(k) }

// BuildFilter constructs a Filter over a slice of distinct uint64 keys,
// sized for FilterFalsePositiveRate.
func BuildFilter(keys []uint64) (Filter, error) {
	n := uint64(len(keys))
	if n == 0 {
		// An empty key set still needs a queryable, serializable filter.
		// Size it for one element. No key is added, so no bit is set and
		// every membership test against it reports absent, which is
		// harmless since there are no real keys to miss.
		n = 1
	}
	f, err := bloomfilter.NewOptimal(n, FilterFalsePositiveRate)
	if err != nil {
		return Filter{}, FilterBuildError{Cause: err}
	}
	for _, k := range keys {
		f.Add(rawKey(k))
	}
	return Filter{f: f}, nil
}

// Contains reports whether k might be a member. False positives are
// possible; false negatives for keys that were in the build set are not.
func (flt Filter) Contains(k uint64) bool {
	if flt.f == nil {
		return false
	}
	return flt.f.Contains(rawKey(k))
}

// WriteTo serializes the filter using its own deterministic,
// length-self-describing binary layout.
func (flt Filter) WriteTo(w io.Writer) (int64, error) {
	return flt.f.WriteTo(w)
}

// ReadFilter deserializes a Filter previously written with WriteTo. It
// reads exactly the filter's own framing from r and stops there, leaving
// the stream positioned at the start of the next record.
func ReadFilter(r io.Reader) (Filter, int64, error) {
	f := new(bloomfilter.Filter)
	n, err := f.ReadFrom(r)
	if err != nil {
		return Filter{}, n, err
	}
	return Filter{f: f}, n, nil
}
