// Package scalarstream derives a deterministic sequence of 32-byte
// values from a single seed by repeated BLAKE3 hashing. Alice uses this
// to turn one fresh random seed into one blinding scalar per item in
// her set, without needing count-many draws from the OS RNG.
package scalarstream
