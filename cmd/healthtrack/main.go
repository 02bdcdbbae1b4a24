package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/healthtrack/internal/catalog"
	"github.com/claude/healthtrack/internal/config"
	"github.com/claude/healthtrack/internal/generate"
	"github.com/claude/healthtrack/internal/plan"
	"github.com/claude/healthtrack/internal/planner"
	"github.com/claude/healthtrack/internal/server"
	"github.com/claude/healthtrack/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Info("HealthTrack starting", "version", Version)

	// Run migrations
	dsn := cfg.Database.DSN()
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	if *migrateOnly {
		log.Info("migrate-only: exiting")
		return
	}

	// Connect database
	ctx := context.Background()
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	if cfg.Catalog.SeedOnStart {
		seedCatalog(ctx, db, log)
	}

	// Plan generator. Without one, saved plans can still be viewed.
	gen, err := generate.New(ctx, generate.Options{
		Provider: cfg.Generator.Provider,
		APIKey:   cfg.Generator.APIKey,
		Model:    cfg.Generator.Model,
		BaseURL:  cfg.Generator.BaseURL,
		Timeout:  cfg.Generator.Timeout,
	})
	if err != nil {
		log.Warn("plan generator unavailable, generation disabled", "provider", cfg.Generator.Provider, "error", err)
		gen = nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := planner.New(db, gen, db, planner.NewMetrics(reg), cfg.Generator.Timeout, log)
	srv := server.New(db, svc, cfg.Auth.APIKey, reg, log)

	// Catalog reseed schedule
	if cfg.Catalog.ReseedSchedule != "" {
		c := cron.New()
		if err := c.AddFunc(cfg.Catalog.ReseedSchedule, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			seedCatalog(jobCtx, db, log)
		}); err != nil {
			log.Error("invalid catalog.reseed_schedule", "schedule", cfg.Catalog.ReseedSchedule, "error", err)
			os.Exit(1)
		}
		c.Start()
		defer c.Stop()
		log.Info("catalog reseed scheduled", "schedule", cfg.Catalog.ReseedSchedule)
	}

	// Start server on tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

func seedCatalog(ctx context.Context, db *storage.DB, log *slog.Logger) {
	inserted, err := catalog.SeedAll(ctx, db)
	if err != nil {
		log.Warn("catalog seed failed", "error", err)
		return
	}
	log.Info("catalog seeded", "home", inserted[plan.Home], "gym", inserted[plan.Gym])
}
