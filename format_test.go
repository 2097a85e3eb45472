package makigami

import (
	"bytes"
	"io"
	"testing"
)

func TestFrameInfoRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := FrameInfo{FrameOffset: 1024, FrameSize: 4096}
	if err := writeFrameInfo(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := readFrameInfo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestReadFrameInfoCleanEOF(t *testing.T) {
	_, err := readFrameInfo(bytes.NewReader(nil))
	if err != io.EOF {
		t.Fatalf("expected io.EOF at a clean record boundary, got %v", err)
	}
}

func TestReadFrameInfoPartialRecordIsDecodeError(t *testing.T) {
	// Three bytes: not enough for even the first uint64 field.
	_, err := readFrameInfo(bytes.NewReader([]byte{1, 2, 3}))
	if err == io.EOF {
		t.Fatal("a partial record must not be reported as a clean EOF")
	}
	if _, ok := err.(DecodeError); !ok {
		t.Fatalf("expected DecodeError, got %T: %v", err, err)
	}
}

func TestReadFrameInfoMidRecordTruncationIsDecodeError(t *testing.T) {
	var buf bytes.Buffer
	if err := writeFrameInfo(&buf, FrameInfo{FrameOffset: 1, FrameSize: 2}); err != nil {
		t.Fatal(err)
	}
	truncated := buf.Bytes()[:12] // first field plus part of the second
	_, err := readFrameInfo(bytes.NewReader(truncated))
	if _, ok := err.(DecodeError); !ok {
		t.Fatalf("expected DecodeError for truncation mid-record, got %T: %v", err, err)
	}
}
