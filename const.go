package makigami

// WindowSize is the number of bytes in each sliding window used to build
// the 64-bit keys that feed the integer set and the filter. Hard-coded per
// the data model (spec.md §3); treated as a tunable, not reopened here
// (spec.md §9).
const WindowSize = 8

// DefaultChunkSize is the target chunk size used by the chunker when none
// is given on the command line.
const DefaultChunkSize = 64 << 20 // 64 MiB

// FilterFalsePositiveRate is the target false-positive rate used when
// sizing each chunk's filter. At this rate an optimally sized Bloom filter
// needs roughly 11 bits per distinct key, within spec.md §4.2's target
// parameters.
const FilterFalsePositiveRate = 0.005

// DefaultCompressionLevel is the zstd level used for archive frames unless
// overridden; 0 favors speed over ratio per spec.md §4.5.
const DefaultCompressionLevel = 0
