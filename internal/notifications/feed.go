package notifications

import (
	"context"
	"encoding/json"
	"log/slog"

	"storyhub/internal/middleware"
)

// Feed publishes activity events. With Redis every instance receives each
// event through its subscriber; without it events reach local clients only.
type Feed struct {
	hub      *Hub
	notifier *Notifier
}

// NewFeed creates a feed over hub, relaying through notifier when it is enabled.
func NewFeed(hub *Hub, notifier *Notifier) *Feed {
	return &Feed{hub: hub, notifier: notifier}
}

// Hub returns the local connection hub.
func (f *Feed) Hub() *Hub {
	return f.hub
}

// Start wires the Redis subscriber to the hub.
func (f *Feed) Start(ctx context.Context) error {
	if !f.notifier.Enabled() {
		return nil
	}
	return f.hub.StartWiring(ctx, f.notifier)
}

// Publish emits an event. Failures are logged and never returned to callers.
func (f *Feed) Publish(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "failed to encode feed event",
			slog.String("event", eventType), slog.String("error", err.Error()))
		return
	}

	if f.notifier.Enabled() {
		err = f.notifier.Publish(ctx, data)
		if err == nil {
			return
		}
		middleware.Logger.WarnContext(ctx, "failed to publish feed event; delivering locally",
			slog.String("event", eventType), slog.String("error", err.Error()))
	}
	f.hub.BroadcastAll(data)
}
