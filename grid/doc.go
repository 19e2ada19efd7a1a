// Package grid defines the Unit each party's private set is made of and
// the canonical floor-grid key derivation both the protocol engine and
// the demo server/CLIs share.
package grid
