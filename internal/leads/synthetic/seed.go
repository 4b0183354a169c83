package synthetic

import (
	"context"
	"fmt"
	"log/slog"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const seedConcurrency = 8

// Store is the persistence needed for seeding.
type Store interface {
	CountLeads(ctx context.Context) (int, error)
	CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	CreateInteraction(ctx context.Context, in domain.Interaction) (domain.Interaction, error)
	UpsertCampaign(ctx context.Context, c domain.Campaign) error
}

// SeedResult counts what Seed wrote.
type SeedResult struct {
	Leads        int  `json:"leads"`
	Interactions int  `json:"interactions"`
	Campaigns    int  `json:"campaigns"`
	Skipped      bool `json:"skipped"`
}

// Seed writes campaigns and, when the leads table is empty or force is set,
// the dataset's leads with their interactions. Campaigns are always upserted.
func Seed(ctx context.Context, store Store, ds Dataset, force bool, log *logger.Logger) (SeedResult, error) {
	var result SeedResult

	for _, c := range ds.Campaigns {
		if err := store.UpsertCampaign(ctx, c); err != nil {
			return result, fmt.Errorf("upsert campaign %s: %w", c.ID, err)
		}
		result.Campaigns++
	}

	existing, err := store.CountLeads(ctx)
	if err != nil {
		return result, fmt.Errorf("count leads: %w", err)
	}
	if existing > 0 && !force {
		log.Info("leads already present, skipping seed", slog.Int("existing", existing))
		result.Skipped = true
		return result, nil
	}

	byLead := make(map[string][]domain.Interaction, len(ds.Leads))
	for _, in := range ds.Interactions {
		byLead[in.LeadID] = append(byLead[in.LeadID], in)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedConcurrency)
	for _, lead := range ds.Leads {
		interactions := byLead[lead.ID]
		g.Go(func() error {
			if _, err := store.CreateLead(gctx, lead); err != nil {
				return fmt.Errorf("create lead %s: %w", lead.ID, err)
			}
			for _, in := range interactions {
				if _, err := store.CreateInteraction(gctx, in); err != nil {
					return fmt.Errorf("create interaction %s: %w", in.ID, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}

	result.Leads = len(ds.Leads)
	result.Interactions = len(ds.Interactions)
	log.Info("seeded synthetic dataset",
		slog.Int("leads", result.Leads),
		slog.Int("interactions", result.Interactions),
		slog.Int("campaigns", result.Campaigns),
	)
	return result, nil
}
