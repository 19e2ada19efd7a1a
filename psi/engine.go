package psi

import (
	"fmt"

	"github.com/ruteri/geopsi/aead"
	"github.com/ruteri/geopsi/curve"
	"github.com/ruteri/geopsi/grid"
	"github.com/ruteri/geopsi/scalarstream"
	"github.com/ruteri/geopsi/wire"
)

// BobInit runs Phase 1: Bob draws a fresh secret scalar, and for each
// of his units encrypts its own grid position under a key derived from
// that scalar and the position's hashed-to-group point. It returns
// Bob's session state (to be consumed by BobTransform) and Msg_B
// encoded in the requested wire format.
func BobInit(units []grid.Unit, format wire.Format) (*BobSessionState, []byte, error) {
	secret, err := curve.RandomScalar()
	if err != nil {
		return nil, nil, fmt.Errorf("psi: bob_init: drawing secret scalar: %w", err)
	}

	encrypted := make([]wire.EncryptedUnit, len(units))
	for i, u := range units {
		position := u.GridKey()
		point := curve.HashToGroup(position).Mul(secret)
		key := aead.Key(curve.HashPointToKey(point))

		ciphertext, nonce, err := aead.Encrypt(key, []byte(position))
		if err != nil {
			return nil, nil, fmt.Errorf("psi: bob_init: encrypting position %q: %w", position, err)
		}
		encrypted[i] = wire.EncryptedUnit{
			Position:   position,
			Ciphertext: ciphertext,
			Nonce:      nonce[:],
		}
	}

	msg, err := encodeMsgB(encrypted, format)
	if err != nil {
		return nil, nil, err
	}
	return &BobSessionState{secret: secret}, msg, nil
}

// AliceBlind runs Phase 2: Alice decodes Bob's encrypted units, derives
// one fresh blinding scalar per her own unit from a single random seed,
// and blinds each of her hashed-to-group positions with it. It returns
// Alice's session state (to be consumed by AliceFinalize) and Msg_A
// encoded in the requested wire format.
//
// Alice's positions are sent in cleartext alongside the blinded point —
// this is by design, not an oversight: the protocol hides non-matching
// elements cryptographically, not Alice's positions from the transport.
func AliceBlind(msgB []byte, units []grid.Unit, format wire.Format) (*AliceSessionState, []byte, error) {
	encrypted, err := decodeMsgB(msgB, format)
	if err != nil {
		return nil, nil, fmt.Errorf("psi: alice_blind: decoding msgB: %w", err)
	}

	bobUnits := make([]bobEncryptedUnit, len(encrypted))
	for i, u := range encrypted {
		if len(u.Nonce) != aead.NonceSize {
			return nil, nil, fmt.Errorf("psi: alice_blind: msgB record %d has nonce of wrong length %d", i, len(u.Nonce))
		}
		var nonce [24]byte
		copy(nonce[:], u.Nonce)
		bobUnits[i] = bobEncryptedUnit{position: u.Position, ciphertext: u.Ciphertext, nonce: nonce}
	}

	var seed [scalarstream.ValueSize]byte
	if err := randomSeed(&seed); err != nil {
		return nil, nil, fmt.Errorf("psi: alice_blind: drawing seed: %w", err)
	}
	rawScalars := scalarstream.DeriveRandomValues(len(units), seed)

	positions := make([]string, len(units))
	scalars := make([]curve.Scalar, len(units))
	blinded := make([]wire.PointEntry, len(units))
	for i, u := range units {
		position := u.GridKey()
		scalar := curve.ScalarFromBytes(rawScalars[i][:])
		point := curve.HashToGroup(position).Mul(scalar)

		positions[i] = position
		scalars[i] = scalar
		blinded[i] = wire.PointEntry{Position: position, Point: point.Encode()}
	}

	msg, err := encodePointEntries(blinded, format, aliceBlindedKind)
	if err != nil {
		return nil, nil, err
	}

	state := &AliceSessionState{
		bobUnits:  bobUnits,
		scalars:   scalars,
		positions: positions,
	}
	return state, msg, nil
}

// BobTransform runs Phase 3: for each of Alice's blinded points, Bob
// applies his secret scalar, making the exchange commutative. The
// position label is copied through verbatim. This consumes and
// destroys BobSessionState.
func BobTransform(msgA []byte, state *BobSessionState, format wire.Format) ([]byte, error) {
	defer state.Destroy()

	blinded, err := decodePointEntries(msgA, format, aliceBlindedKind)
	if err != nil {
		return nil, fmt.Errorf("psi: bob_transform: decoding msgA: %w", err)
	}

	transformed := make([]wire.PointEntry, len(blinded))
	for i, e := range blinded {
		q, err := curve.DecodePoint(e.Point)
		if err != nil {
			return nil, fmt.Errorf("psi: bob_transform: record %d: %w", i, err)
		}
		t := q.Mul(state.secret)
		transformed[i] = wire.PointEntry{Position: e.Position, Point: t.Encode()}
	}

	return encodePointEntries(transformed, format, bobTransformedKind)
}

// AliceFinalize runs Phase 4: Alice unblinds each of Bob's transformed
// points with the inverse of the scalar she used in Phase 2, derives
// the symmetric key the same way Bob did, and scans Bob's ciphertexts
// (in their original order) for the first one that key opens and whose
// plaintext equals that entry's position. The plaintext check is
// redundant given AEAD verification but is kept so that any weakening
// of the AEAD is still caught. A key that already produced a result is
// skipped, so each matched position appears once. A
// shorter Msg_R than Alice's blinded list is not an error — finalize
// simply stops at the shorter length. This consumes and destroys
// AliceSessionState.
func AliceFinalize(msgR []byte, state *AliceSessionState, format wire.Format) ([]DecryptedUnit, error) {
	defer state.Destroy()

	transformed, err := decodePointEntries(msgR, format, bobTransformedKind)
	if err != nil {
		return nil, fmt.Errorf("psi: alice_finalize: decoding msgR: %w", err)
	}

	limit := len(transformed)
	if len(state.scalars) < limit {
		limit = len(state.scalars)
	}

	var results []DecryptedUnit
	used := make(map[[32]byte]bool)
	for i := 0; i < limit; i++ {
		inv, err := state.scalars[i].Invert()
		if err != nil {
			return nil, fmt.Errorf("psi: alice_finalize: record %d: %w", i, err)
		}

		t, err := curve.DecodePoint(transformed[i].Point)
		if err != nil {
			return nil, fmt.Errorf("psi: alice_finalize: record %d: %w", i, err)
		}
		u := t.Mul(inv)
		key := aead.Key(curve.HashPointToKey(u))

		if used[key] {
			continue
		}

		for _, bu := range state.bobUnits {
			plaintext, err := aead.Decrypt(key, bu.ciphertext, bu.nonce)
			if err != nil {
				continue
			}
			if string(plaintext) != bu.position {
				continue
			}
			results = append(results, DecryptedUnit{
				Position:  bu.position,
				Plaintext: string(plaintext),
				Key:       key,
			})
			used[key] = true
			break
		}
	}
	return results, nil
}

// RunPSI composes all four phases locally, a convenience for tests,
// CLIs, and the demo server that don't need the two parties to be
// separated by an actual transport.
func RunPSI(bobUnits, aliceUnits []grid.Unit, format wire.Format) ([]DecryptedUnit, error) {
	bobState, msgB, err := BobInit(bobUnits, format)
	if err != nil {
		return nil, err
	}

	aliceState, msgA, err := AliceBlind(msgB, aliceUnits, format)
	if err != nil {
		return nil, err
	}

	msgR, err := BobTransform(msgA, bobState, format)
	if err != nil {
		return nil, err
	}

	return AliceFinalize(msgR, aliceState, format)
}
