// Package store persists an audit record of each finished PSI session
// (match count, set sizes, per-phase timings) for the demo server and
// CLIs. It never stores a matched position's plaintext — only the
// count of matches — so it cannot become a new channel for leaking
// either party's positions.
package store
