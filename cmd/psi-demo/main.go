// Command psi-demo runs a fixed PSI session locally, printing every
// intermediate wire payload in both codecs, and records the session to
// an audit store.
//
// Usage:
//
//	psi-demo [options]
//
// Options:
//
//	--postgres-dsn=...  record the session to Postgres instead of memory
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ruteri/geopsi/grid"
	"github.com/ruteri/geopsi/psi"
	"github.com/ruteri/geopsi/store"
	"github.com/ruteri/geopsi/wire"
)

var bobUnits = []grid.Unit{
	{ID: "b1", X: 1.2, Y: 3.4},
	{ID: "b2", X: -5.6, Y: 7.8},
}

var aliceUnits = []grid.Unit{
	{ID: "a1", X: 1.9, Y: 3.1},
	{ID: "a2", X: 4.2, Y: 8.6},
	{ID: "a3", X: -5.0, Y: 7.0},
}

func main() {
	var postgresDSN string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--postgres-dsn":
			i++
			if i < len(args) {
				postgresDSN = args[i]
			}
		case "--help", "-h":
			printUsage()
			return
		default:
			if strings.HasPrefix(args[i], "--postgres-dsn=") {
				postgresDSN = strings.TrimPrefix(args[i], "--postgres-dsn=")
			}
		}
	}

	sessionStore, closeStore := openStore(postgresDSN)
	if closeStore != nil {
		defer closeStore()
	}

	fmt.Println("=== json envelope ===")
	runSession(wire.JSONFormat, sessionStore)

	fmt.Println("\n=== compact text ===")
	runSession(wire.TextFormat, sessionStore)
}

func runSession(format wire.Format, sessionStore store.Store) {
	started := time.Now()

	start := time.Now()
	bobState, msgB, err := psi.BobInit(bobUnits, format)
	bobSetup := time.Since(start)
	fatalOnErr(err)
	fmt.Printf("Msg_B:\n%s\n\n", msgB)

	start = time.Now()
	aliceState, msgA, err := psi.AliceBlind(msgB, aliceUnits, format)
	aliceSetup := time.Since(start)
	fatalOnErr(err)
	fmt.Printf("Msg_A:\n%s\n\n", msgA)

	start = time.Now()
	msgR, err := psi.BobTransform(msgA, bobState, format)
	bobResponse := time.Since(start)
	fatalOnErr(err)
	fmt.Printf("Msg_R:\n%s\n\n", msgR)

	start = time.Now()
	decrypted, err := psi.AliceFinalize(msgR, aliceState, format)
	aliceFinalize := time.Since(start)
	fatalOnErr(err)

	fmt.Printf("matches (%d):\n", len(decrypted))
	for _, u := range decrypted {
		fmt.Printf("  %s\n", u.Position)
	}

	rec := store.SessionRecord{
		SessionID:    randomSessionID(),
		StartedAt:    started,
		BobSetSize:   len(bobUnits),
		AliceSetSize: len(aliceUnits),
		MatchCount:   len(decrypted),
		Timings: store.Timings{
			BobSetupMS:      millis(bobSetup),
			AliceSetupMS:    millis(aliceSetup),
			BobResponseMS:   millis(bobResponse),
			AliceFinalizeMS: millis(aliceFinalize),
		},
	}
	if err := sessionStore.RecordSession(context.Background(), rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording session: %v\n", err)
	}
	fmt.Printf("recorded session %s\n", rec.SessionID)
}

func openStore(postgresDSN string) (store.Store, func()) {
	if postgresDSN == "" {
		return store.NewMemoryStore(0), nil
	}

	s, err := store.NewPostgresStoreFromDSN(postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: connecting to postgres, falling back to memory: %v\n", err)
		return store.NewMemoryStore(0), nil
	}
	return s, func() { s.Close() }
}

func randomSessionID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func fatalOnErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`psi-demo - run a fixed PSI session, dumping every wire payload

Usage:
  psi-demo [options]

Options:
  --postgres-dsn=...   record the session to Postgres instead of memory`)
}
