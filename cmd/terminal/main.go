package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/osse101/MelodyQuest_Go/internal/audio/speaker"
	"github.com/osse101/MelodyQuest_Go/internal/bootstrap"
	"github.com/osse101/MelodyQuest_Go/internal/config"
	"github.com/osse101/MelodyQuest_Go/internal/progression"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
	"github.com/osse101/MelodyQuest_Go/internal/terminal"
)

// localPlayerID namespaces the terminal's progress in shared storage
const localPlayerID = "local"

func main() {
	mute := flag.Bool("mute", false, "do not play tones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The screen owns stdout, so logs only go to the session file
	logFile, err := bootstrap.SetupFileLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	if err := run(cfg, *mute); err != nil {
		slog.Error("Fatal error", "error", err)
		log.Fatal(err)
	}
}

func run(cfg *config.Config, mute bool) error {
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
	defer store.Close()

	var tones progression.TonePlayer
	if !mute {
		if sp := speaker.Open(slog.Default()); sp != nil {
			defer sp.Close()
			tones = sp
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	view := terminal.NewScreenView(screen)
	ctrl, err := progression.NewController(exp.Progression(),
		storage.WithPrefix(store, storage.PlayerPrefix(localPlayerID)), view, tones)
	if err != nil {
		return err
	}
	if _, err := ctrl.Initialize(ctx); err != nil {
		slog.Error("Playing without saving", "error", err)
		ctrl.Notify(ctx, progression.NoticeRestoreFailed)
	}

	return terminal.NewApp(screen, ctrl, view).Run(ctx)
}
