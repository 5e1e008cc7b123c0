package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/logger"
)

// Serve streams playerID's events to w until the request ends or the hub stops
func Serve(hub *Hub, w http.ResponseWriter, r *http.Request, playerID string) {
	log := logger.FromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Parse event type filters from query param
	var eventTypes []string
	if filterParam := r.URL.Query().Get("types"); filterParam != "" {
		eventTypes = strings.Split(filterParam, ",")
	}

	client := hub.Register(playerID, eventTypes)
	log.Info(LogMsgClientConnected,
		"client_id", client.ID,
		"filters", eventTypes,
		"total_clients", hub.ClientCount())

	defer func() {
		hub.Unregister(client.ID)
		log.Info(LogMsgClientDisconnected, "client_id", client.ID)
	}()

	connectEvent := Event{
		ID:        client.ID,
		Type:      EventTypeConnected,
		Timestamp: time.Now().Unix(),
		Payload: map[string]interface{}{
			"client_id": client.ID,
			"player_id": playerID,
			"filters":   eventTypes,
		},
	}
	if msg, err := FormatSSEMessage(connectEvent); err == nil {
		if _, err := w.Write(msg); err != nil {
			return
		}
		flusher.Flush()
	}

	ticker := time.NewTicker(KeepaliveInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-client.EventChannel:
			if !ok {
				// Channel closed, hub is shutting down
				return
			}

			msg, err := FormatSSEMessage(event)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				continue
			}
			if _, err := w.Write(msg); err != nil {
				log.Warn(LogMsgWriteError, "error", err)
				return
			}
			flusher.Flush()

		case <-ticker.C:
			msg, _ := FormatSSEMessage(Event{Type: EventTypeKeepalive, Timestamp: time.Now().Unix()})
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
