// cmd/associadod/main.go
//
// Engine entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (conf/.env when present).
//
//  2. Start the daily rotating logger (tees to console in a TTY).
//
//  3. Load config; a `vault:` password reference is resolved here.
//
//  4. Open the MySQL pool and fail fast on a bad DSN.
//
//  5. Build one validated CRUD service per registered entity.
//
//  6. Serve the operational endpoints: /healthz (DB reachability plus
//     active-record counts per entity) and /metrics (Prometheus).
//
// The record CRUD surface itself is not exposed here; this binary only
// hosts the engine and its operational plumbing.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/planovida/associado/internal/config"
	"github.com/planovida/associado/internal/crud"
	"github.com/planovida/associado/internal/database"
	"github.com/planovida/associado/internal/entity"
	"github.com/planovida/associado/internal/logger"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func main() {
	_ = godotenv.Load()

	rootDir, _ := os.Getwd()
	zlog, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		zlog.Fatalw("load config", "err", err)
	}

	db, err := database.OpenWithOptions(cfg.DSN(), cfg.Database.MaxOpen, cfg.Database.MaxIdle)
	if err != nil {
		zlog.Fatalw("connect database", "err", err)
	}
	defer db.Close()
	zlog.Infow("database online")

	services := make(map[string]*crud.Service, len(entity.All()))
	for _, d := range entity.All() {
		services[d.Name] = d.NewService(db, zlog)
	}
	zlog.Infow("engine online", "entities", len(services))

	//
	// ── Operational endpoints ───────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		hctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
		defer cancel()

		if err := db.PingContext(hctx); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}

		counts := make(map[string]int, len(services))
		for name, svc := range services {
			recs, err := svc.ListActive(hctx, nil)
			if err != nil {
				http.Error(w, "storage failure", http.StatusServiceUnavailable)
				return
			}
			counts[name] = len(recs)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"entities": counts,
		})
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zlog.Infow("http listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		zlog.Fatalw("server error", "err", err)
	}
	zlog.Infow("shutdown complete")
}
