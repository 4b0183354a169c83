// Package events defines the leads domain events (lead created, interaction
// recorded, stage changed) and wires them onto the platform bus. The API
// process, the scheduler and the Kafka forwarder all share one InMemoryBus.
package events

import (
	platformevents "leadscout_backend/platform/events"
	"leadscout_backend/platform/logger"
)

// InMemoryBus is the process-local bus every binary publishes lead events on.
type InMemoryBus = platformevents.InMemoryBus

// NewInMemoryBus creates an empty bus that logs handler failures to log.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// SubscribeAll registers h for every event in Names.
func SubscribeAll(bus Bus, h Handler) {
	for _, name := range Names {
		bus.Subscribe(name, h)
	}
}
