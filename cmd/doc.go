// Package cmd provides the CLI commands for the geopsi protocol.
//
// # Commands
//
// psi-smoke: runs a single fixed PSI session locally and prints the
// matches and per-phase timings.
//
//	go run ./cmd/psi-smoke --text
//
// psi-demo: runs the same fixed session in both wire formats, printing
// every intermediate payload, and records the session to an audit
// store (memory, or Postgres with --postgres-dsn).
//
//	go run ./cmd/psi-demo --postgres-dsn="host=localhost user=geopsi dbname=geopsi sslmode=disable"
//
// psi-server: runs the demo HTTP server exposing POST /psi.
//
//	go run ./cmd/psi-server --addr=:8080
package cmd
