// Package psi implements the four-phase Diffie-Hellman private set
// intersection protocol between Bob (initiator) and Alice (responder):
//
//	BobInit        Bob encrypts each of his positions under a key only
//	                reachable via his secret scalar.
//	AliceBlind      Alice blinds each of her positions with a fresh
//	                per-item scalar derived from the scalarstream.
//	BobTransform    Bob applies his secret scalar to Alice's blinded
//	                points, making the exchange commutative.
//	AliceFinalize   Alice unblinds Bob's transformed points and tries
//	                each derived key against Bob's ciphertexts, learning
//	                exactly the positions both parties share.
//
// Each phase takes and returns wire-encoded bytes (see package wire),
// matching the external library surface this core exposes to
// transports, CLIs, and tests. RunPSI composes all four phases locally
// for convenience.
package psi
