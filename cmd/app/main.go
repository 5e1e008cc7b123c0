package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/audio"
	"github.com/osse101/MelodyQuest_Go/internal/bootstrap"
	"github.com/osse101/MelodyQuest_Go/internal/config"
	"github.com/osse101/MelodyQuest_Go/internal/player"
	"github.com/osse101/MelodyQuest_Go/internal/server"
	"github.com/osse101/MelodyQuest_Go/internal/sse"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exp, err := bootstrap.LoadExperience(cfg)
	if err != nil {
		return err
	}

	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	hub.Start()
	bus := bootstrap.InitializeEventSystem(hub)

	players := player.NewRegistry(store, bus, exp, player.Config{
		CacheSize:    cfg.PlayerCacheSize,
		CacheTTL:     cfg.PlayerCacheTTL,
		FrameTimeout: cfg.CaptureFrameTimeout,
	})

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		ServiceName:    cfg.ServiceName,
		Version:        cfg.Version,
		DebugAPIKey:    cfg.DebugAPIKey,
		TrustedProxies: cfg.TrustedProxies,
	}, server.Dependencies{
		Players: players,
		Hub:     hub,
		Store:   store,
		Tones:   audio.NewWAVCache(),
	})

	jobs := bootstrap.StartBackgroundJobs(cfg.ProbeInterval, store, hub)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:  srv,
		Players: players,
		Hub:     hub,
		Store:   store,
		Jobs:    jobs,
	})
	return nil
}
