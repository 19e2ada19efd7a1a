package wire

// Format selects which of the two interchangeable codecs to use.
type Format int

const (
	// TextFormat is the compact newline-delimited codec.
	TextFormat Format = iota
	// JSONFormat is the {"items":[...]} envelope codec.
	JSONFormat
)

// EncryptedUnit is Bob's Phase 1 output: one entry per Bob unit,
// carrying the AEAD ciphertext of the unit's own grid position under a
// key that only Alice can reproduce once blinded through the exchange.
type EncryptedUnit struct {
	Position   string
	Ciphertext []byte
	Nonce      []byte
}

// PointEntry pairs a cleartext grid position with an encoded curve
// point. It is the shape of both Alice's blinded values (Msg_A) and
// Bob's transformed values (Msg_R) — the two message kinds differ only
// in which side produced the point and what the JSON codec calls the
// field, never in the Go representation.
type PointEntry struct {
	Position string
	Point    []byte
}
