package makigami

import (
	"bytes"
	"testing"
)

func TestCompressRoundTrip(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog\n")
	compressed, err := Compress(data, DefaultCompressionLevel)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decompress(nil, compressed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("round-tripped data does not match input")
	}
}

// Confirm that decompressing a blank chunk fails with an error and doesn't panic.
func TestUncompressBlank(t *testing.T) {
	if _, err := Decompress(nil, nil); err == nil {
		t.Fatal("expected failure decompressing nil array")
	}
}
