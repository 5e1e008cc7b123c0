package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/bootstrap"
	"github.com/osse101/MelodyQuest_Go/internal/config"
	"github.com/osse101/MelodyQuest_Go/internal/progression"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

func main() {
	playerID := flag.String("player", "", "reset only this player (default: every player)")
	timeout := flag.Duration("timeout", time.Minute, "overall timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	store, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	ids := []string{*playerID}
	if *playerID == "" {
		ids, err = storage.PlayerIDs(ctx, store)
		if err != nil {
			log.Fatalf("Failed to list players: %v", err)
		}
	}

	total := 0
	for _, id := range ids {
		removed, err := progression.ClearStored(ctx, storage.WithPrefix(store, storage.PlayerPrefix(id)))
		if err != nil {
			log.Fatalf("Failed to reset player %s: %v", id, err)
		}
		log.Printf("Reset player %s (%d keys)\n", id, removed)
		total += removed
	}

	log.Printf("\n✅ Progress reset complete: %d players, %d keys removed\n", len(ids), total)
}
