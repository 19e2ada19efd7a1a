// Command psi-server runs the demo HTTP server exposing POST /psi.
//
// Usage:
//
//	psi-server --addr=:8080 [--text] [--postgres-dsn=...]
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruteri/geopsi/server"
	"github.com/ruteri/geopsi/store"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		textFormat  = flag.Bool("text", false, "use the compact text wire codec instead of JSON")
		postgresDSN = flag.String("postgres-dsn", "", "postgres connection string for session audit logging (memory store if empty)")
	)
	flag.Parse()

	log := slog.Default()

	var sessionStore store.Store
	if *postgresDSN != "" {
		pg, err := store.NewPostgresStoreFromDSN(*postgresDSN)
		if err != nil {
			log.Error("connecting to postgres", "err", err)
			os.Exit(1)
		}
		defer pg.Close()
		sessionStore = pg
	} else {
		sessionStore = store.NewMemoryStore(0)
	}

	srv := server.New(server.Config{
		ListenAddr: *addr,
		TextFormat: *textFormat,
		Store:      sessionStore,
		Log:        log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
