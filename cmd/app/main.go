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

	"github.com/osse101/LootLoop_Go/internal/bootstrap"
	"github.com/osse101/LootLoop_Go/internal/config"
	"github.com/osse101/LootLoop_Go/internal/server"
	"github.com/osse101/LootLoop_Go/internal/sse"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	closer := bootstrap.SetupLogger(cfg)
	defer closer.Close()

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}

	events := bootstrap.InitializeEventStream()

	services, err := bootstrap.InitializeServices(cfg, storage, nil, sse.NewListener(events))
	if err != nil {
		bootstrap.GracefulShutdown(context.Background(), bootstrap.ShutdownComponents{Events: events, Storage: storage})
		return err
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, server.Deps{
		Version:  cfg.Version,
		DB:       storage.Saves,
		Progress: storage.Progress,
		Roller:   services.Roller,
		SubGames: services.SubGames,
		Scripts:  services.Scripts,
		Bonuses:  services.Bonuses,
		Events:   events,
		Limits: server.RateLimits{
			PerPlayer: cfg.RateLimitPerPlayer,
			PerIP:     cfg.RateLimitPerIP,
		},
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Events:   events,
		Server:   srv,
		SubGames: services.SubGames,
		Storage:  storage,
	})
	return err
}
