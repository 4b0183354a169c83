// Package repository persists leads, interactions and campaigns in Postgres.
// Writes are single statements; concurrent updates to the same lead are
// last write wins.
package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"leadscout_backend/internal/leads/domain"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func nilIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func signalsFromStrings(values []string) []domain.IntentSignal {
	out := make([]domain.IntentSignal, len(values))
	for i, v := range values {
		out[i] = domain.IntentSignal(v)
	}
	return out
}

func objectionsFromStrings(values []string) []domain.Objection {
	out := make([]domain.Objection, len(values))
	for i, v := range values {
		out[i] = domain.Objection(v)
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
