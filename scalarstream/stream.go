package scalarstream

import (
	"github.com/zeebo/blake3"
)

// ValueSize is the byte length of each derived value and of the seed.
const ValueSize = 32

// DeriveRandomValues returns [v1, ..., vCount] where v0 = seed and
// vi = BLAKE3(v(i-1)) for i >= 1. The seed itself is never included in
// the output. DeriveRandomValues(0, seed) returns an empty, non-nil
// slice. Calling this twice with the same seed and count yields
// identical output; distinct seeds yield distinct output with
// overwhelming probability.
func DeriveRandomValues(count int, seed [ValueSize]byte) [][ValueSize]byte {
	out := make([][ValueSize]byte, count)
	prev := seed
	for i := 0; i < count; i++ {
		next := blake3.Sum256(prev[:])
		out[i] = next
		prev = next
	}
	return out
}
