// Package service orchestrates the lead pipeline: it validates input, runs the
// scoring and text generation core and persists the results.
package service

import (
	"context"
	"errors"
	"time"

	"leadscout_backend/internal/events"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/repository"
	"leadscout_backend/internal/leads/textgen"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/metrics"
)

// Store is the persistence the service needs. *repository.Repository
// implements it.
type Store interface {
	CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	GetLead(ctx context.Context, id string) (domain.Lead, error)
	UpdateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, int, error)
	ListOpenLeads(ctx context.Context) ([]domain.Lead, error)
	UpdateNextBestAction(ctx context.Context, id, action string) error
	CreateInteraction(ctx context.Context, in domain.Interaction) (domain.Interaction, error)
	ListInteractions(ctx context.Context, leadID string) ([]domain.Interaction, error)
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
}

// Mailer delivers follow-up emails to lead contacts.
type Mailer interface {
	SendFollowUpEmail(ctx context.Context, toEmail, contactName, subject, message string) error
}

var _ Store = (*repository.Repository)(nil)

type Service struct {
	store     Store
	generator *textgen.Generator
	bus       events.Bus
	metrics   *metrics.Metrics
	mailer    Mailer
	log       *logger.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithMetrics records domain counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithMailer enables SendFollowUp.
func WithMailer(m Mailer) Option {
	return func(s *Service) { s.mailer = m }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(store Store, generator *textgen.Generator, bus events.Bus, log *logger.Logger, opts ...Option) *Service {
	if generator == nil {
		generator = textgen.NewGenerator(log)
	}
	if log == nil {
		log = logger.Nop()
	}
	s := &Service{
		store:     store,
		generator: generator,
		bus:       bus,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCampaigns returns the marketing reference data.
func (s *Service) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	campaigns, err := s.store.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	return campaigns, nil
}

func (s *Service) getLead(ctx context.Context, id string) (domain.Lead, error) {
	lead, err := s.store.GetLead(ctx, id)
	if err != nil {
		return domain.Lead{}, translateNotFound(err)
	}
	return lead, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(ctx, event)
}

func (s *Service) clock() time.Time {
	return s.now().UTC()
}

func translateNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.Wrap(apperr.KindNotFound, "lead not found", err)
	}
	return err
}
