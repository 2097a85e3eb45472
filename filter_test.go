package makigami

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestFilterNoFalseNegatives(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	keys := make([]uint64, 2000)
	for i := range keys {
		k := r.Uint64()
		for k == 0 {
			k = r.Uint64()
		}
		keys[i] = k
	}
	f, err := BuildFilter(keys)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range keys {
		if !f.Contains(k) {
			t.Fatalf("filter reports false negative for key %d", k)
		}
	}
}

func TestFilterEmptyKeySet(t *testing.T) {
	f, err := BuildFilter(nil)
	if err != nil {
		t.Fatal(err)
	}
	// No correctness guarantee either way for arbitrary queries against an
	// empty-built filter; this just confirms it doesn't panic.
	_ = f.Contains(12345)
}

func TestFilterRoundTrip(t *testing.T) {
	keys := []uint64{1, 2, 3, 42, 1 << 40}
	f, err := BuildFilter(keys)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	f2, _, err := ReadFilter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range keys {
		if !f2.Contains(k) {
			t.Fatalf("round-tripped filter reports false negative for key %d", k)
		}
	}
}

func TestZeroFilterAlwaysReportsAbsent(t *testing.T) {
	var f Filter
	if f.Contains(1) {
		t.Fatal("zero-value Filter should report no membership")
	}
}
