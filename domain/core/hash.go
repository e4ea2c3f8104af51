package core

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// ContentHash identifies uploaded file content. Two uploads with identical
// bytes share a ContentHash, which keys the loader cache.
type ContentHash Hash

// NewContentHash hashes raw upload bytes
func NewContentHash(data []byte) ContentHash { return ContentHash(NewHash(data)) }

// String returns the string representation
func (h ContentHash) String() string { return Hash(h).String() }
