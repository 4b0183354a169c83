package scheduler

import (
	"context"
	"testing"
	"time"

	"leadscout_backend/platform/logger"
)

type recordingScheduler struct {
	triggers chan string
}

func (r *recordingScheduler) EnqueueNextBestActionRefresh(_ context.Context, trigger string, _ time.Time) error {
	r.triggers <- trigger
	return nil
}

func TestNewCronRejectsInvalidSpec(t *testing.T) {
	if _, err := NewCron("not a cron", &recordingScheduler{}, logger.Nop()); err == nil {
		t.Fatal("expected error for invalid spec")
	}
}

func TestNewCronRegistersEntry(t *testing.T) {
	rec := &recordingScheduler{triggers: make(chan string, 1)}
	c, err := NewCron("0 6 * * *", rec, logger.Nop())
	if err != nil {
		t.Fatalf("NewCron: %v", err)
	}
	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	entries[0].Job.Run()
	select {
	case trigger := <-rec.triggers:
		if trigger != TriggerCron {
			t.Fatalf("expected cron trigger, got %q", trigger)
		}
	default:
		t.Fatal("job did not enqueue a refresh")
	}
}
