package memzero_test

import (
	"bytes"
	"testing"

	"umlwizard/internal/util/memzero"
)

func TestZero(t *testing.T) {
	a := []byte("passphrase")
	b := []byte{1, 2, 3}
	memzero.Zero(a, nil, b)
	if !bytes.Equal(a, make([]byte, len(a))) || !bytes.Equal(b, []byte{0, 0, 0}) {
		t.Fatalf("buffers not wiped: %v %v", a, b)
	}
}
