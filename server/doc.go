// Package server implements the demo HTTP surface for running a PSI
// session in a single request: POST /psi accepts both parties' unit
// lists, runs all four protocol phases locally, and returns the wire
// messages alongside the match result and per-phase timings.
package server
