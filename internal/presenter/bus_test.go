package presenter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/event"
	"github.com/osse101/MelodyQuest_Go/internal/progression"
)

var (
	_ progression.Presenter  = (*Bus)(nil)
	_ progression.TonePlayer = (*Bus)(nil)
)

func collect(bus *event.MemoryBus) *[]event.Event {
	var got []event.Event
	bus.SubscribeAll(event.PlayerTypes, func(_ context.Context, e event.Event) error {
		got = append(got, e)
		return nil
	})
	return &got
}

func TestBus_PublishesPlayerEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	got := collect(bus)
	p := NewBus(bus, "p1")
	ctx := context.Background()

	p.RenderScene(ctx, 3)
	p.SetBackEnabled(ctx, true)
	p.SetForwardEnabled(ctx, false)
	p.ShowReward(ctx, domain.TokenC, []domain.RewardToken{domain.TokenA, domain.TokenC})
	p.Celebrate(ctx, domain.TokenC)
	p.Notice(ctx, "hi")
	p.PlayTone(ctx, domain.TokenD)
	p.Detected(ctx, "scene=2")

	require.Len(t, *got, 8)
	for _, e := range *got {
		assert.Equal(t, "p1", e.PlayerID())
	}

	assert.Equal(t, event.SceneChanged, (*got)[0].Type)
	assert.Equal(t, event.ScenePayloadV1{Scene: 3}, (*got)[0].Payload)

	back := (*got)[1].Payload.(event.NavigationPayloadV1)
	require.NotNil(t, back.CanGoBack)
	assert.True(t, *back.CanGoBack)
	assert.Nil(t, back.CanGoForward)

	forward := (*got)[2].Payload.(event.NavigationPayloadV1)
	require.NotNil(t, forward.CanGoForward)
	assert.False(t, *forward.CanGoForward)

	assert.Equal(t, event.RewardPayloadV1{Token: "C", Ledger: []string{"A", "C"}}, (*got)[3].Payload)
	assert.Equal(t, event.Celebrate, (*got)[4].Type)
	assert.Equal(t, event.NoticePayloadV1{Message: "hi"}, (*got)[5].Payload)
	assert.Equal(t, event.TonePayloadV1{Token: "D", FrequencyHz: 587.33, URL: "/api/v1/tones/D.wav"}, (*got)[6].Payload)
	assert.Equal(t, event.CaptureDetectedPayloadV1{Text: "scene=2"}, (*got)[7].Payload)
}

func TestBus_HandlerErrorDoesNotPanic(t *testing.T) {
	bus := event.NewMemoryBus()
	bus.Subscribe(event.Notice, func(context.Context, event.Event) error {
		return errors.New("boom")
	})

	assert.NotPanics(t, func() {
		NewBus(bus, "p1").Notice(context.Background(), "x")
	})
}
