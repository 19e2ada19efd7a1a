// Command psi-smoke runs a single fixed PSI session locally and prints
// the matches and per-phase timings.
//
// Usage:
//
//	psi-smoke [--text]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ruteri/geopsi/grid"
	"github.com/ruteri/geopsi/psi"
	"github.com/ruteri/geopsi/wire"
)

func main() {
	format := wire.JSONFormat
	for i := 0; i < len(os.Args); i++ {
		switch os.Args[i] {
		case "--text":
			format = wire.TextFormat
		case "--help", "-h":
			printUsage()
			return
		}
	}

	bobUnits := []grid.Unit{
		{ID: "b1", X: 1.2, Y: 3.4},
		{ID: "b2", X: -5.6, Y: 7.8},
	}
	aliceUnits := []grid.Unit{
		{ID: "a1", X: 1.9, Y: 3.1},
		{ID: "a2", X: 4.2, Y: 8.6},
		{ID: "a3", X: -5.0, Y: 7.0},
	}

	start := time.Now()
	bobState, msgB, err := psi.BobInit(bobUnits, format)
	bobSetup := time.Since(start)
	fatalOnErr(err)

	start = time.Now()
	aliceState, msgA, err := psi.AliceBlind(msgB, aliceUnits, format)
	aliceSetup := time.Since(start)
	fatalOnErr(err)

	start = time.Now()
	msgR, err := psi.BobTransform(msgA, bobState, format)
	bobResponse := time.Since(start)
	fatalOnErr(err)

	start = time.Now()
	decrypted, err := psi.AliceFinalize(msgR, aliceState, format)
	aliceFinalize := time.Since(start)
	fatalOnErr(err)

	fmt.Printf("matches (%d):\n", len(decrypted))
	for _, u := range decrypted {
		fmt.Printf("  %s\n", u.Position)
	}

	fmt.Println("timings:")
	fmt.Printf("  bob_setup:      %.3fms\n", millis(bobSetup))
	fmt.Printf("  alice_setup:    %.3fms\n", millis(aliceSetup))
	fmt.Printf("  bob_response:   %.3fms\n", millis(bobResponse))
	fmt.Printf("  alice_finalize: %.3fms\n", millis(aliceFinalize))
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
	fmt.Println(`psi-smoke - run a fixed PSI session and print matches

Usage:
  psi-smoke [--text]

Options:
  --text  use the compact text wire codec instead of the JSON envelope`)
}
