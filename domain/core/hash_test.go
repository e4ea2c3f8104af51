package core

import (
	"testing"
)

// TestContentHashDeterministic tests that identical bytes hash identically
func TestContentHashDeterministic(t *testing.T) {
	a := NewContentHash([]byte("upload content"))
	b := NewContentHash([]byte("upload content"))
	if a != b {
		t.Errorf("Expected identical hashes, got %s and %s", a, b)
	}
}

// TestContentHashDistinct tests that different bytes hash differently
func TestContentHashDistinct(t *testing.T) {
	a := NewContentHash([]byte("one"))
	b := NewContentHash([]byte("two"))
	if a == b {
		t.Error("Expected distinct hashes for distinct content")
	}
}

// TestContentHashLength tests the hex encoding
func TestContentHashLength(t *testing.T) {
	h := NewContentHash(nil)
	if len(h) != 64 {
		t.Errorf("Expected 64 hex characters, got %d", len(h))
	}
}
