package makigami

import "github.com/klauspost/compress/zstd"

// Create a reader/writer that caches compressors, same pattern as the
// teacher's compress.go.
var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// Compress encodes src as a single, independently decodable zstd frame at
// the given level. Each chunk gets its own frame so the archive can be
// range-read and decompressed one chunk at a time (spec.md §4.5).
func Compress(src []byte, level int) ([]byte, error) {
	enc := encoder
	if level != DefaultCompressionLevel {
		e, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		if err != nil {
			return nil, err
		}
		enc = e
	}
	return enc.EncodeAll(src, make([]byte, 0, len(src))), nil
}

// Decompress decodes a single zstd frame previously produced by Compress.
func Decompress(dst, src []byte) ([]byte, error) {
	out, err := decoder.DecodeAll(src, dst)
	if err != nil {
		return nil, DecompressError{Cause: err}
	}
	return out, nil
}
