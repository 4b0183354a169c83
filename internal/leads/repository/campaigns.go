package repository

import (
	"context"

	"leadscout_backend/internal/leads/domain"
)

func (r *Repository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, channel, monthly_spend_sek, cost_per_lead_sek, leads_generated
		FROM campaigns
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Campaign, 0)
	for rows.Next() {
		var (
			item    domain.Campaign
			channel string
		)
		if err := rows.Scan(&item.ID, &channel, &item.MonthlySpendSek, &item.CostPerLeadSek, &item.LeadsGenerated); err != nil {
			return nil, err
		}
		item.Channel = domain.Channel(channel)
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}

// UpsertCampaign inserts or replaces reference data keyed by id.
func (r *Repository) UpsertCampaign(ctx context.Context, c domain.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO campaigns (id, channel, monthly_spend_sek, cost_per_lead_sek, leads_generated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			channel = EXCLUDED.channel,
			monthly_spend_sek = EXCLUDED.monthly_spend_sek,
			cost_per_lead_sek = EXCLUDED.cost_per_lead_sek,
			leads_generated = EXCLUDED.leads_generated
	`, c.ID, string(c.Channel), c.MonthlySpendSek, c.CostPerLeadSek, c.LeadsGenerated)
	return err
}
