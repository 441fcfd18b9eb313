package metrics

import (
	"context"

	"github.com/fortunaworks/spinvault/internal/event"
)

// EventMetricsCollector subscribes to engine events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all engine event types
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.SpinRequested,
		event.SpinResolved,
		event.RewardTokenDepleted,
		event.JackpotWon,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent counts every published engine event by type.
func (e *EventMetricsCollector) HandleEvent(_ context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if evt.Type == event.JackpotWon {
		JackpotPayouts.Inc()
	}
	return nil
}
