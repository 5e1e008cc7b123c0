package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MelodyQuest_Go/internal/event"
)

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e := <-c.EventChannel:
		return e
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
		return Event{}
	}
}

func assertNothing(t *testing.T, c *Client) {
	t.Helper()
	select {
	case e := <-c.EventChannel:
		t.Fatalf("unexpected event %s", e.Type)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_DeliversOnlyToOwningPlayer(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	alice := hub.Register("alice", nil)
	bob := hub.Register("bob", nil)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Broadcast("alice", "scene.changed", map[string]int{"scene": 2})

	got := receive(t, alice)
	assert.Equal(t, "scene.changed", got.Type)
	assert.NotEmpty(t, got.ID)
	assertNothing(t, bob)
}

func TestHub_EventFilter(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	c := hub.Register("p", []string{"notice"})

	hub.Broadcast("p", "scene.changed", nil)
	hub.Broadcast("p", "notice", nil)

	assert.Equal(t, "notice", receive(t, c).Type)
	assertNothing(t, c)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	c := hub.Register("p", nil)
	hub.Unregister(c.ID)

	select {
	case _, ok := <-c.EventChannel:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_StopIsIdempotent(t *testing.T) {
	hub := NewHub()
	hub.Start()
	c := hub.Register("p", nil)

	hub.Stop()
	hub.Stop()

	_, ok := <-c.EventChannel
	assert.False(t, ok)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "1", Type: "notice", Payload: map[string]string{"message": "hi"}})
	require.NoError(t, err)

	s := string(msg)
	assert.True(t, strings.HasPrefix(s, "id: 1\nevent: notice\ndata: {"))
	assert.Contains(t, s, `"message":"hi"`)
	assert.True(t, strings.HasSuffix(s, "\n\n"))
}

func TestSubscriber_ForwardsPlayerEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	c := hub.Register("p1", nil)
	require.NoError(t, bus.Publish(context.Background(), event.NewNoticeEvent("p1", "hello")))

	got := receive(t, c)
	assert.Equal(t, string(event.Notice), got.Type)
	assert.Equal(t, event.NoticePayloadV1{Message: "hello"}, got.Payload)
}

func TestServe_StreamsEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Serve(hub, w, r, "p1")
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEventType := func() string {
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if strings.HasPrefix(line, "event: ") {
				return strings.TrimSpace(strings.TrimPrefix(line, "event: "))
			}
		}
	}

	assert.Equal(t, EventTypeConnected, readEventType())

	hub.Broadcast("p1", "notice", map[string]string{"message": "hi"})
	assert.Equal(t, "notice", readEventType())
}
