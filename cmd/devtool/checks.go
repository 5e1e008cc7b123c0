package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/bootstrap"
	"github.com/osse101/MelodyQuest_Go/internal/config"
)

const (
	storageCheckTimeout = 30 * time.Second
	healthClientTimeout = 5 * time.Second
	slowResponse        = time.Second
)

var healthPaths = []string{"/healthz", "/readyz", "/version"}

func checkStorage(out *console, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out.Section(fmt.Sprintf("Checking %s storage", cfg.StorageDriver))

	ctx, cancel := context.WithTimeout(context.Background(), storageCheckTimeout)
	defer cancel()

	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	start := time.Now()
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	out.Success("storage ready, migrations applied (ping %v)", time.Since(start))
	return nil
}

func checkExperience(out *console, args []string) error {
	cfg := &config.Config{ExperienceFile: config.ConfigPathExperience}
	if f := os.Getenv("EXPERIENCE_FILE"); f != "" {
		cfg.ExperienceFile = f
	}
	if len(args) > 0 {
		cfg.ExperienceFile = args[0]
	}
	out.Section("Validating " + cfg.ExperienceFile)

	exp, err := bootstrap.LoadExperience(cfg)
	if err != nil {
		return err
	}
	out.Success("%d scenes, ceiling %d, %d blocking, %d quizzes, %d scan scenes",
		exp.SceneCount, exp.NavigationCeiling, len(exp.BlockingScenes), len(exp.Quizzes), len(exp.Capture.Scenes))
	return nil
}

func healthCheck(out *console, args []string) error {
	base := apiURL(args)
	out.Section("Health check " + base)

	client := &http.Client{Timeout: healthClientTimeout}
	for _, path := range healthPaths {
		start := time.Now()
		resp, err := client.Get(base + path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		resp.Body.Close()
		took := time.Since(start)

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s returned %s", path, resp.Status)
		}
		if took > slowResponse {
			out.Warn("%s slow (%v)", path, took)
			continue
		}
		out.Success("%s (%v)", path, took)
	}
	return nil
}
