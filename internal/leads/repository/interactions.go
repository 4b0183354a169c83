package repository

import (
	"context"

	"leadscout_backend/internal/leads/domain"
)

func (r *Repository) CreateInteraction(ctx context.Context, in domain.Interaction) (domain.Interaction, error) {
	var (
		out        domain.Interaction
		kind       string
		objections []string
	)
	err := r.pool.QueryRow(ctx, `
		INSERT INTO interactions (id, lead_id, type, timestamp, raw_notes, ai_summary, objections)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, lead_id, type, timestamp, raw_notes, ai_summary, objections
	`, in.ID, in.LeadID, string(in.Type), in.Timestamp.UTC(), in.RawNotes, in.AISummary, domain.Strings(in.Objections),
	).Scan(&out.ID, &out.LeadID, &kind, &out.Timestamp, &out.RawNotes, &out.AISummary, &objections)
	if err != nil {
		return domain.Interaction{}, err
	}
	out.Type = domain.InteractionType(kind)
	out.Objections = objectionsFromStrings(objections)
	return out, nil
}

// ListInteractions returns the lead's interactions, newest first.
func (r *Repository) ListInteractions(ctx context.Context, leadID string) ([]domain.Interaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, lead_id, type, timestamp, raw_notes, ai_summary, objections
		FROM interactions
		WHERE lead_id = $1
		ORDER BY timestamp DESC, id DESC
	`, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.Interaction, 0)
	for rows.Next() {
		var (
			item       domain.Interaction
			kind       string
			objections []string
		)
		if err := rows.Scan(&item.ID, &item.LeadID, &kind, &item.Timestamp, &item.RawNotes, &item.AISummary, &objections); err != nil {
			return nil, err
		}
		item.Type = domain.InteractionType(kind)
		item.Objections = objectionsFromStrings(objections)
		items = append(items, item)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return items, nil
}
