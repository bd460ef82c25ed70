package project

import (
	"crypto/sha256"
)

// Digest is a 256-bit content hash, compatible with source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by every part in order: H(content || p1 || p2 ...).
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
