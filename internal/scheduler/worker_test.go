package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"leadscout_backend/platform/logger"

	"github.com/hibiken/asynq"
)

type fakeRefresher struct {
	calls   int
	updated int
	err     error
}

func (f *fakeRefresher) RefreshNextBestActions(context.Context) (int, error) {
	f.calls++
	return f.updated, f.err
}

func TestHandleRefreshNextBestAction(t *testing.T) {
	refresher := &fakeRefresher{updated: 4}
	w := newWorker(refresher, logger.Nop())

	task, err := NewRefreshNextBestActionTask(RefreshNextBestActionPayload{Trigger: TriggerCron, RequestedAt: time.Now()})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := w.mux.ProcessTask(context.Background(), task); err != nil {
		t.Fatalf("process task: %v", err)
	}
	if refresher.calls != 1 {
		t.Fatalf("expected 1 refresh call, got %d", refresher.calls)
	}
}

func TestHandleRefreshNextBestActionPropagatesError(t *testing.T) {
	boom := errors.New("db down")
	w := newWorker(&fakeRefresher{err: boom}, logger.Nop())

	task, _ := NewRefreshNextBestActionTask(RefreshNextBestActionPayload{Trigger: "manual"})
	if err := w.mux.ProcessTask(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("expected refresher error, got %v", err)
	}
}

func TestHandleRefreshNextBestActionSkipsRetryOnBadPayload(t *testing.T) {
	refresher := &fakeRefresher{}
	w := newWorker(refresher, logger.Nop())

	task := asynq.NewTask(TaskRefreshNextBestAction, []byte("{not json"))
	err := w.mux.ProcessTask(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
	if refresher.calls != 0 {
		t.Fatal("refresher must not run for a malformed payload")
	}
}

func TestParseRefreshNextBestActionPayload(t *testing.T) {
	at := time.Date(2026, 1, 5, 6, 0, 0, 0, time.UTC)
	task, err := NewRefreshNextBestActionTask(RefreshNextBestActionPayload{Trigger: TriggerCron, RequestedAt: at})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if task.Type() != TaskRefreshNextBestAction {
		t.Fatalf("unexpected task type %q", task.Type())
	}
	payload, err := ParseRefreshNextBestActionPayload(task)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if payload.Trigger != TriggerCron || !payload.RequestedAt.Equal(at) {
		t.Fatalf("unexpected payload %+v", payload)
	}
}
