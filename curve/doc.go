// Package curve implements the elliptic-curve primitives shared by both
// parties of the geopsi protocol: a deterministic hash-to-scalar-then-
// multiply mapping from arbitrary messages into the P-256 subgroup,
// uncompressed SEC1 point encoding, and scalar reduction/inversion
// modulo the group order.
//
// The curve is NIST P-256 (secp256r1). Every operation here must be
// reproduced bit-for-bit by any peer implementation or the two parties'
// blinded exchange will never agree on a shared point.
package curve
