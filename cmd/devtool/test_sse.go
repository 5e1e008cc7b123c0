package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/sse"
)

const sseTestTimeout = 5 * time.Second

func testSSE(out *console, args []string) error {
	base := apiURL(args) + "/api/v1"
	out.Section("SSE round trip " + base)

	resp, err := http.Post(base+"/players", "application/json", nil)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	var created struct {
		PlayerID string `json:"player_id"`
	}
	err = json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if err != nil || created.PlayerID == "" {
		return fmt.Errorf("unexpected create response (%s): %v", resp.Status, err)
	}
	out.Info("player %s", created.PlayerID)

	ctx, cancel := context.WithTimeout(context.Background(), sseTestTimeout)
	defer cancel()

	player := base + "/players/" + created.PlayerID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, player+"/events", nil)
	if err != nil {
		return err
	}
	stream, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}
	defer stream.Body.Close()
	if stream.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected stream status: %s", stream.Status)
	}

	lines := bufio.NewScanner(stream.Body)
	// Wait for the connected event so the navigation is not missed
	if err := waitFor(out, lines, sse.EventTypeConnected); err != nil {
		return err
	}

	nav, err := http.Post(player+"/navigate", "application/json", bytes.NewBufferString(`{"scene":1}`))
	if err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	nav.Body.Close()

	if err := waitFor(out, lines, domain.EventTypeSceneChanged); err != nil {
		return err
	}
	out.Success("received %s for %s", domain.EventTypeSceneChanged, created.PlayerID)
	return nil
}

// waitFor prints events until one of type eventType arrives
func waitFor(out *console, lines *bufio.Scanner, eventType string) error {
	for lines.Scan() {
		line := lines.Text()
		if !strings.HasPrefix(line, "event: ") {
			continue
		}
		got := strings.TrimPrefix(line, "event: ")
		out.Info("event %s", got)
		if got == eventType {
			return nil
		}
	}
	if err := lines.Err(); err != nil {
		return fmt.Errorf("stream ended: %w", err)
	}
	return fmt.Errorf("stream ended before %s", eventType)
}
