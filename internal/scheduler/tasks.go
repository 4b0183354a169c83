package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TaskRefreshNextBestAction = "leads.refresh_next_best_action"

// RefreshNextBestActionPayload records why and when a refresh was requested.
type RefreshNextBestActionPayload struct {
	Trigger     string    `json:"trigger"`
	RequestedAt time.Time `json:"requestedAt"`
}

func NewRefreshNextBestActionTask(payload RefreshNextBestActionPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRefreshNextBestAction, data), nil
}

func ParseRefreshNextBestActionPayload(task *asynq.Task) (RefreshNextBestActionPayload, error) {
	var payload RefreshNextBestActionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RefreshNextBestActionPayload{}, err
	}
	return payload, nil
}
