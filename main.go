package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"card-crawl-server/ability"
	"card-crawl-server/api"
	"card-crawl-server/auth"
	"card-crawl-server/config"
	"card-crawl-server/lobby"
	"card-crawl-server/loghandler"
	"card-crawl-server/storage"
	"card-crawl-server/telemetry"
	"card-crawl-server/ws"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(slog.New(loghandler.NewCompactHandler(os.Stderr, loghandler.ParseLevel(cfg.LogLevel))))
	if envErr != nil {
		slog.Info("no .env file found; using environment variables", "tag", "main")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AuthBaseURL == "" {
		slog.Warn("AUTH_BASE_URL is not set; runs are anonymous and not saved", "tag", "main")
	} else {
		slog.Info("auth configured", "tag", "main", "base_url", cfg.AuthBaseURL)
	}
	slog.Info("configuration", "tag", "main", "ws_port", cfg.WSPort, "shuffle_attempts", cfg.ShuffleAttempts,
		"seed", cfg.Seed, "bash_wear", cfg.BashWear, "trade_price", cfg.Abilities.Trade.Price)

	registry := ability.NewRegistry()
	ability.RegisterAll(registry, &cfg.Abilities)
	slog.Info("abilities registered", "tag", "main", "count", registry.Len())

	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database unavailable; run history disabled", "tag", "main", "err", err)
		store = nil
	}
	defer store.Close()

	pub, err := telemetry.NewPublisher(cfg.NATSURL, cfg.NATSSubject)
	if err != nil {
		slog.Error("NATS unavailable; telemetry disabled", "tag", "main", "err", err)
		pub = nil
	}
	defer pub.Close()

	validator := auth.NewValidator(cfg.AuthBaseURL)

	var runStore storage.RunStore
	if store != nil {
		runStore = store
	}
	lob := lobby.New(ctx, cfg, registry, runStore, pub)

	hub := ws.NewHub(cfg, lob, validator)
	go hub.Run(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	api.NewHandler(runStore, validator, registry, lob).Routes(mux)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.WSPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutdown", "tag", "main", "err", err)
		}
	}()

	slog.Info("card crawl server listening", "tag", "main", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "tag", "main", "err", err)
		os.Exit(1)
	}
}
