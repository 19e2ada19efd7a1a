package curve

import (
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"fmt"
	"math/big"
)

// Group is the P-256 (secp256r1) curve used throughout the protocol.
var Group = elliptic.P256()

// ScalarSize is the fixed byte length of a Scalar and of Scalar.Bytes output.
const ScalarSize = 32

// PointSize is the byte length of an uncompressed SEC1 point encoding
// (0x04 || X || Y) on P-256.
const PointSize = 65

// Scalar is a 32-byte big-endian integer, already reduced modulo the
// group order and guaranteed non-zero. The zero value is NOT a valid
// Scalar — always construct one via ScalarFromBytes or RandomScalar.
type Scalar [ScalarSize]byte

// Point is an element of the P-256 prime-order subgroup.
type Point struct {
	X, Y *big.Int
}

// ScalarFromBytes big-endian-loads b, reduces modulo the group order n,
// and replaces a zero result with one, per the protocol's "never zero"
// invariant on scalars.
func ScalarFromBytes(b []byte) Scalar {
	n := Group.Params().N
	v := new(big.Int).SetBytes(b)
	v.Mod(v, n)
	if v.Sign() == 0 {
		v.SetInt64(1)
	}
	return scalarFromBigInt(v)
}

func scalarFromBigInt(v *big.Int) Scalar {
	var s Scalar
	v.FillBytes(s[:])
	return s
}

// Bytes returns the canonical big-endian, left-zero-padded 32-byte
// encoding of s.
func (s Scalar) Bytes() []byte {
	out := make([]byte, ScalarSize)
	copy(out, s[:])
	return out
}

func (s Scalar) bigInt() *big.Int {
	return new(big.Int).SetBytes(s[:])
}

// RandomScalar draws 32 fresh random bytes from the OS RNG and reduces
// them to a Scalar, as Bob does at the start of a session to draw the
// secret b. Alice's blinding scalars come from package scalarstream
// instead.
func RandomScalar() (Scalar, error) {
	var buf [ScalarSize]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return Scalar{}, fmt.Errorf("curve: reading random scalar seed: %w", err)
	}
	return ScalarFromBytes(buf[:]), nil
}

// Zero overwrites s's storage with zero bytes. Callers holding secret
// scalars (Bob's session secret, Alice's per-item blinding factors)
// must call this once the scalar is no longer needed.
func (s *Scalar) Zero() {
	for i := range s {
		s[i] = 0
	}
}

// Invert returns the modular inverse of s modulo the group order. It
// cannot fail given the zero-to-one replacement policy of
// ScalarFromBytes/RandomScalar, but returns an error for defensive
// symmetry with a hostile caller constructing a zero Scalar directly.
func (s Scalar) Invert() (Scalar, error) {
	n := Group.Params().N
	v := s.bigInt()
	if v.Sign() == 0 {
		return Scalar{}, errors.New("curve: cannot invert zero scalar")
	}
	inv := new(big.Int).ModInverse(v, n)
	if inv == nil {
		return Scalar{}, errors.New("curve: scalar has no inverse")
	}
	return scalarFromBigInt(inv), nil
}

// BasePoint returns the curve's standard generator G.
func BasePoint() Point {
	params := Group.Params()
	return Point{X: params.Gx, Y: params.Gy}
}

// Mul returns s * p, the scalar multiplication of this point by s.
func (p Point) Mul(s Scalar) Point {
	x, y := Group.ScalarMult(p.X, p.Y, s.Bytes())
	return Point{X: x, Y: y}
}

// HashToGroup maps an arbitrary message to a point in the P-256
// subgroup by hashing it to a scalar and multiplying the base point by
// that scalar.
//
// This is a "hash-to-scalar-then-multiply" shortcut, not a uniform
// hash-to-curve construction: it does not provide
// indistinguishability-from-random-oracle. It is sufficient here only
// because the resulting point is used purely as a blinding input to
// further scalar multiplications in a semi-honest protocol. Do not
// reuse this function outside that context, and do not replace it with
// a standard hash-to-curve suite — doing so breaks interop with any
// peer implementing this same derivation.
func HashToGroup(message string) Point {
	sum := sha512.Sum512([]byte(message))
	s := ScalarFromBytes(sum[:ScalarSize])
	return BasePoint().Mul(s)
}

// HashPointToKey derives a 32-byte symmetric key from a point by
// hex-encoding its uncompressed SEC1 encoding and hashing the resulting
// ASCII text with SHA-512, keeping only the first 32 bytes.
//
// Implementations MUST hash the hex text, not the raw octets, to stay
// byte-compatible with the reference derivation.
func HashPointToKey(p Point) [32]byte {
	encoded := p.Encode()
	hexStr := fmt.Sprintf("%x", encoded)
	sum := sha512.Sum512([]byte(hexStr))
	var key [32]byte
	copy(key[:], sum[:32])
	return key
}

// Encode returns the uncompressed SEC1 encoding (0x04 || X || Y) of p.
func (p Point) Encode() []byte {
	return elliptic.Marshal(Group, p.X, p.Y)
}

// DecodePoint parses an uncompressed SEC1 encoding and verifies the
// result lies on the curve. A malformed encoding or an off-curve point
// is a fatal error for the calling session.
func DecodePoint(data []byte) (Point, error) {
	if len(data) != PointSize {
		return Point{}, fmt.Errorf("curve: invalid point encoding length %d, want %d", len(data), PointSize)
	}
	x, y := elliptic.Unmarshal(Group, data)
	if x == nil {
		return Point{}, errors.New("curve: point is not on the curve")
	}
	return Point{X: x, Y: y}, nil
}
