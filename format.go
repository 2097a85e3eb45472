package makigami

import (
	"encoding/binary"
	"io"
)

// FrameInfo locates one compressed chunk inside the archive (spec.md §3).
// Offsets are absolute from the start of the archive; frames are adjacent
// and non-overlapping, and the sequence of FrameOffset values across an
// index is strictly increasing.
type FrameInfo struct {
	FrameOffset uint64
	FrameSize   uint64
}

// binWriter and binReader are the same small encoding/binary helpers the
// teacher uses in writer.go/reader.go, generalized from a variadic
// WriteUint64 to a thin wrapper that format.go and search.go share.
type binWriter struct{ io.Writer }

func (w binWriter) writeUint64(values ...uint64) error {
	b := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(b[i*8:i*8+8], v)
	}
	_, err := w.Write(b)
	return err
}

type binReader struct{ io.Reader }

// readUint64 returns io.EOF verbatim when zero bytes could be read (a
// clean boundary) and io.ErrUnexpectedEOF when a partial read occurred -
// the distinction spec.md §7 requires between end-of-index and a malformed
// record.
func (r binReader) readUint64() (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// writeFrameInfo appends a FrameInfo record to an index stream.
func writeFrameInfo(w io.Writer, fi FrameInfo) error {
	return binWriter{w}.writeUint64(fi.FrameOffset, fi.FrameSize)
}

// readFrameInfo reads one FrameInfo record. It returns io.EOF unmodified
// when the stream ended cleanly at the record boundary (zero bytes
// consumed); any other error, including a partial read, is a DecodeError.
func readFrameInfo(r io.Reader) (FrameInfo, error) {
	br := binReader{r}
	offset, err := br.readUint64()
	if err != nil {
		if err == io.EOF {
			return FrameInfo{}, io.EOF
		}
		return FrameInfo{}, DecodeError{Cause: err}
	}
	size, err := br.readUint64()
	if err != nil {
		return FrameInfo{}, DecodeError{Cause: err}
	}
	return FrameInfo{FrameOffset: offset, FrameSize: size}, nil
}
