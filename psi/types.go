package psi

import "github.com/ruteri/geopsi/curve"

// DecryptedUnit is one entry of Alice's Phase 4 result: a position that
// both parties held, together with the plaintext AEAD recovered it (by
// invariant, always equal to Position) and the symmetric key that
// unlocked it.
type DecryptedUnit struct {
	Position  string
	Plaintext string
	Key       [32]byte
}

// BobSessionState holds Bob's session-local secret scalar between
// Phase 1 (BobInit) and Phase 3 (BobTransform). It must never be
// serialized or shared outside the party that produced it.
type BobSessionState struct {
	secret curve.Scalar
}

// Destroy zeroises the secret scalar. Call this once BobTransform has
// produced its output; the state is unusable afterward.
func (s *BobSessionState) Destroy() {
	s.secret.Zero()
}

// AliceSessionState holds everything Alice needs between Phase 2
// (AliceBlind) and Phase 4 (AliceFinalize): Bob's encrypted units (to
// scan for AEAD matches), one blinding scalar per Alice unit, and the
// floored positions those scalars correspond to, all in Alice's
// original input order.
type AliceSessionState struct {
	bobUnits  []bobEncryptedUnit
	scalars   []curve.Scalar
	positions []string
}

type bobEncryptedUnit struct {
	position   string
	ciphertext []byte
	nonce      [24]byte
}

// Destroy zeroises Alice's per-item blinding scalars. Call this once
// AliceFinalize has produced its result.
func (s *AliceSessionState) Destroy() {
	for i := range s.scalars {
		s.scalars[i].Zero()
	}
}
