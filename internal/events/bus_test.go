package events

import (
	"context"
	"testing"
	"time"

	"leadscout_backend/platform/logger"
)

func TestSubscribeAllReceivesEveryLeadEvent(t *testing.T) {
	bus := NewInMemoryBus(logger.Nop())
	var got []string
	SubscribeAll(bus, HandlerFunc(func(_ context.Context, e Event) error {
		got = append(got, e.EventName())
		return nil
	}))

	published := []Event{
		LeadCreated{BaseEvent: NewBaseEvent(), LeadID: "LEAD-0001"},
		InteractionRecorded{BaseEvent: NewBaseEvent(), LeadID: "LEAD-0001"},
		LeadStageChanged{BaseEvent: NewBaseEvent(), LeadID: "LEAD-0001"},
	}
	for _, e := range published {
		if err := bus.PublishSync(context.Background(), e); err != nil {
			t.Fatalf("publish %s: %v", e.EventName(), err)
		}
	}

	if len(got) != len(Names) {
		t.Fatalf("expected %d events, got %v", len(Names), got)
	}
	for i, name := range Names {
		if got[i] != name {
			t.Fatalf("event %d = %s, want %s", i, got[i], name)
		}
	}
}

func TestNewBaseEventIsUTC(t *testing.T) {
	if loc := NewBaseEvent().OccurredAt().Location(); loc != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", loc)
	}
}
