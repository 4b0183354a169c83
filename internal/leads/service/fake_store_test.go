package service

import (
	"context"
	"sync"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/repository"
)

type fakeStore struct {
	mu           sync.Mutex
	leads        map[string]domain.Lead
	interactions []domain.Interaction
	campaigns    []domain.Campaign
	nbaUpdates   map[string]string
}

func newFakeStore(leads ...domain.Lead) *fakeStore {
	s := &fakeStore{
		leads:      make(map[string]domain.Lead),
		nbaUpdates: make(map[string]string),
	}
	for _, l := range leads {
		s.leads[l.ID] = l
	}
	return s
}

func (s *fakeStore) CreateLead(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = lead
	return lead, nil
}

func (s *fakeStore) GetLead(_ context.Context, id string) (domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.leads[id]
	if !ok {
		return domain.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (s *fakeStore) UpdateLead(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[lead.ID]; !ok {
		return domain.Lead{}, repository.ErrNotFound
	}
	s.leads[lead.ID] = lead
	return lead, nil
}

func (s *fakeStore) ListLeads(_ context.Context, filter domain.LeadFilter) ([]domain.Lead, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Lead
	for _, l := range s.leads {
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		if filter.MinScore != nil && l.LeadScore < *filter.MinScore {
			continue
		}
		out = append(out, l)
	}
	return out, len(out), nil
}

func (s *fakeStore) ListOpenLeads(_ context.Context) ([]domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Lead
	for _, l := range s.leads {
		if domain.IsOpen(l.Stage) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateNextBestAction(_ context.Context, id, action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	lead.NextBestAction = action
	s.leads[id] = lead
	s.nbaUpdates[id] = action
	return nil
}

func (s *fakeStore) CreateInteraction(_ context.Context, in domain.Interaction) (domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, in)
	return in, nil
}

// ListInteractions returns newest first; later inserts count as newer.
func (s *fakeStore) ListInteractions(_ context.Context, leadID string) ([]domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Interaction
	for i := len(s.interactions) - 1; i >= 0; i-- {
		if s.interactions[i].LeadID == leadID {
			out = append(out, s.interactions[i])
		}
	}
	return out, nil
}

func (s *fakeStore) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.campaigns, nil
}

func (s *fakeStore) lead(id string) domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leads[id]
}

type sentEmail struct {
	to, name, subject, message string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) SendFollowUpEmail(_ context.Context, toEmail, contactName, subject, message string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to: toEmail, name: contactName, subject: subject, message: message})
	return nil
}
