package makigami

// IntSet is a fixed-capacity, open-addressed set of uint64 values used by
// each build worker to dedupe a chunk's window keys before they're handed
// to the filter builder (spec.md §4.1).
//
// Slot value 0 denotes an empty bucket. A key that happens to equal 0 is
// dropped rather than inserted - policy (a) from spec.md §4.1 - and
// SawZero records that it happened so callers can account for it
// consistently between build and search. Capacity must be a power of two;
// callers are expected to size it well above the largest expected
// distinct-key count for one chunk so load factor stays low and probing
// never wraps.
type IntSet struct {
	table      []uint64
	size       int
	sawZero    bool
	collisions int
}

// NewIntSet allocates a set with the given capacity, which must be a power
// of two. The set is reused across chunks via Clear.
func NewIntSet(capacity int) *IntSet {
	if capacity <= 0 || capacity&(capacity-1) != 0 {
		panic("makigami: IntSet capacity must be a power of two")
	}
	return &IntSet{table: make([]uint64, capacity)}
}

// fxhashFinalizer mixes a 64-bit value the way FxHash's core step does,
// giving a cheap avalanche suitable for bucket selection.
func fxhashFinalizer(x uint64) uint64 {
	const k = 0x517cc1b727220a95
	return (x * k) >> 32
}

// Insert adds k to the set. It returns true if k was newly inserted, false
// if it was already present or if k is the sentinel value 0 (in which case
// SawZero is set and the set is otherwise unaffected). Panics with
// TableFull if probing wraps all the way back to the start slot - that
// indicates the table was undersized for the caller's workload.
func (s *IntSet) Insert(k uint64) bool {
	if k == 0 {
		s.sawZero = true
		return false
	}
	mask := uint64(len(s.table) - 1)
	start := fxhashFinalizer(k) & mask
	idx := start
	for {
		slot := s.table[idx]
		if slot == 0 {
			s.table[idx] = k
			s.size++
			return true
		}
		if slot == k {
			return false
		}
		s.collisions++
		idx = (idx + 1) & mask
		if idx == start {
			panic(TableFull{Capacity: len(s.table)})
		}
	}
}

// Len returns the number of distinct non-zero keys currently stored.
func (s *IntSet) Len() int { return s.size }

// SawZero reports whether a zero-valued key was ever passed to Insert
// since the set was created or last cleared.
func (s *IntSet) SawZero() bool { return s.sawZero }

// Collisions returns the number of probe steps past a non-empty,
// non-matching slot since the set was created or last cleared. Exposed
// only for diagnostics, mirroring the Rust source's collision_count.
func (s *IntSet) Collisions() int { return s.collisions }

// Clear resets the table for reuse on the next chunk, amortizing
// allocation across the worker's lifetime.
func (s *IntSet) Clear() {
	for i := range s.table {
		s.table[i] = 0
	}
	s.size = 0
	s.sawZero = false
	s.collisions = 0
}

// Extract returns a densely packed, arbitrarily ordered slice of the keys
// currently stored. len(result) == Len().
func (s *IntSet) Extract() []uint64 {
	out := make([]uint64, 0, s.size)
	for _, slot := range s.table {
		if slot != 0 {
			out = append(out, slot)
		}
	}
	return out
}
