// Package wire implements the two interchangeable codecs — a compact
// newline-delimited text format and a JSON envelope — for the three
// message shapes exchanged between Bob and Alice: Bob's encrypted
// units, Alice's blinded values, and Bob's transformed values.
//
// Both codecs are reversible: deserialize(serialize(m)) reproduces m
// bit-for-bit. Neither codec is derived from the other; each is a
// self-contained implementation that does not layer atop the other or
// atop a general-purpose serialization library.
package wire
