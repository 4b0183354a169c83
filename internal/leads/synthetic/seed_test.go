package synthetic

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/platform/logger"
)

type memStore struct {
	mu           sync.Mutex
	existing     int
	leads        map[string]domain.Lead
	interactions []domain.Interaction
	campaigns    map[string]domain.Campaign
	failLead     string
}

func newMemStore() *memStore {
	return &memStore{leads: map[string]domain.Lead{}, campaigns: map[string]domain.Campaign{}}
}

func (s *memStore) CountLeads(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existing + len(s.leads), nil
}

func (s *memStore) CreateLead(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	if lead.ID == s.failLead {
		return domain.Lead{}, errors.New("duplicate key")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = lead
	return lead, nil
}

func (s *memStore) CreateInteraction(_ context.Context, in domain.Interaction) (domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[in.LeadID]; !ok {
		return domain.Interaction{}, errors.New("foreign key violation")
	}
	s.interactions = append(s.interactions, in)
	return in, nil
}

func (s *memStore) UpsertCampaign(_ context.Context, c domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[c.ID] = c
	return nil
}

func testDataset(t *testing.T, count int) Dataset {
	t.Helper()
	campaigns, err := LoadCampaigns("")
	if err != nil {
		t.Fatalf("load campaigns: %v", err)
	}
	return NewGenerator(rand.NewSource(11), fixedNow).Dataset(count, campaigns)
}

func TestSeedWritesDataset(t *testing.T) {
	store := newMemStore()
	ds := testDataset(t, 40)

	result, err := Seed(context.Background(), store, ds, false, logger.Nop())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if result.Skipped {
		t.Fatal("did not expect skip on empty store")
	}
	if result.Leads != 40 || len(store.leads) != 40 {
		t.Fatalf("expected 40 leads, got result %d store %d", result.Leads, len(store.leads))
	}
	if result.Interactions != len(ds.Interactions) || len(store.interactions) != len(ds.Interactions) {
		t.Fatalf("expected %d interactions, got %d", len(ds.Interactions), len(store.interactions))
	}
	if len(store.campaigns) != 5 {
		t.Fatalf("expected 5 campaigns, got %d", len(store.campaigns))
	}
}

func TestSeedSkipsWhenLeadsExist(t *testing.T) {
	store := newMemStore()
	store.existing = 3

	result, err := Seed(context.Background(), store, testDataset(t, 10), false, logger.Nop())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !result.Skipped || len(store.leads) != 0 {
		t.Fatalf("expected skip, got %+v with %d leads", result, len(store.leads))
	}
	if result.Campaigns != 5 {
		t.Fatalf("campaigns must be upserted even when skipping, got %d", result.Campaigns)
	}
}

func TestSeedReturnsStoreError(t *testing.T) {
	store := newMemStore()
	store.failLead = "LEAD-0005"

	if _, err := Seed(context.Background(), store, testDataset(t, 10), false, logger.Nop()); err == nil {
		t.Fatal("expected error from failing store")
	}
}
