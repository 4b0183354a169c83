package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"leadscout_backend/internal/leads/domain"
)

const leadColumns = `id, created_at, channel, segment, region, synthetic_location,
	roof_area_m2, annual_kwh, monthly_bill_sek, heating_type, has_ev, intent_signals,
	status, stage, lead_score, score_explanation, next_best_action,
	last_touch_at, next_touch_at, contact_name, contact_phone, contact_email`

const defaultListLimit = 500

func scanLead(row pgx.Row) (domain.Lead, error) {
	var (
		lead                               domain.Lead
		channel, segment, region, heating  string
		status, stage                      string
		signals, explanation               []string
		contactName, contactPhone, contact *string
	)
	err := row.Scan(
		&lead.ID, &lead.CreatedAt, &channel, &segment, &region, &lead.SyntheticLocation,
		&lead.RoofAreaM2, &lead.AnnualKwh, &lead.MonthlyBillSek, &heating, &lead.HasEV, &signals,
		&status, &stage, &lead.LeadScore, &explanation, &lead.NextBestAction,
		&lead.LastTouchAt, &lead.NextTouchAt, &contactName, &contactPhone, &contact,
	)
	if err != nil {
		return domain.Lead{}, err
	}
	lead.Channel = domain.Channel(channel)
	lead.Segment = domain.Segment(segment)
	lead.Region = domain.Region(region)
	lead.HeatingType = domain.HeatingType(heating)
	lead.Status = domain.Status(status)
	lead.Stage = domain.Stage(stage)
	lead.IntentSignals = signalsFromStrings(signals)
	lead.ScoreExplanation = nonNil(explanation)
	lead.ContactName = derefString(contactName)
	lead.ContactPhone = derefString(contactPhone)
	lead.ContactEmail = derefString(contact)
	return lead, nil
}

func leadArgs(lead domain.Lead) []interface{} {
	return []interface{}{
		lead.ID, lead.CreatedAt.UTC(), string(lead.Channel), string(lead.Segment), string(lead.Region), lead.SyntheticLocation,
		lead.RoofAreaM2, lead.AnnualKwh, lead.MonthlyBillSek, string(lead.HeatingType), lead.HasEV, domain.Strings(lead.IntentSignals),
		string(lead.Status), string(lead.Stage), lead.LeadScore, nonNil(lead.ScoreExplanation), lead.NextBestAction,
		utc(lead.LastTouchAt), utc(lead.NextTouchAt), nilIfEmpty(lead.ContactName), nilIfEmpty(lead.ContactPhone), nilIfEmpty(lead.ContactEmail),
	}
}

// CreateLead inserts a lead. A zero CreatedAt becomes now.
func (r *Repository) CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now()
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (`+leadColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING `+leadColumns,
		leadArgs(lead)...,
	)
	return scanLead(row)
}

func (r *Repository) GetLead(ctx context.Context, id string) (domain.Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

// UpdateLead overwrites every mutable column of the lead.
func (r *Repository) UpdateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	args := leadArgs(lead)
	// created_at ($2) is immutable.
	args = append(args[:1], args[2:]...)
	row := r.pool.QueryRow(ctx, `
		UPDATE leads SET
			channel = $2, segment = $3, region = $4, synthetic_location = $5,
			roof_area_m2 = $6, annual_kwh = $7, monthly_bill_sek = $8, heating_type = $9, has_ev = $10, intent_signals = $11,
			status = $12, stage = $13, lead_score = $14, score_explanation = $15, next_best_action = $16,
			last_touch_at = $17, next_touch_at = $18, contact_name = $19, contact_phone = $20, contact_email = $21
		WHERE id = $1
		RETURNING `+leadColumns,
		args...,
	)
	updated, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return updated, err
}

func buildLeadListWhere(filter domain.LeadFilter) (string, []interface{}) {
	whereClauses := []string{"TRUE"}
	args := []interface{}{}
	argIdx := 1

	addEquals := func(column string, value interface{}) {
		whereClauses = append(whereClauses, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if filter.Channel != "" {
		addEquals("channel", string(filter.Channel))
	}
	if filter.Segment != "" {
		addEquals("segment", string(filter.Segment))
	}
	if filter.Region != "" {
		addEquals("region", string(filter.Region))
	}
	if filter.Status != "" {
		addEquals("status", string(filter.Status))
	}
	if filter.Stage != "" {
		addEquals("stage", string(filter.Stage))
	}
	if filter.HasEV != nil {
		addEquals("has_ev", *filter.HasEV)
	}
	if filter.MinScore != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("lead_score >= $%d", argIdx))
		args = append(args, *filter.MinScore)
		argIdx++
	}

	return strings.Join(whereClauses, " AND "), args
}

// ListLeads returns matching leads by descending score and the total match count.
func (r *Repository) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.Lead, int, error) {
	whereClause, args := buildLeadListWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM leads WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit, max(0, filter.Offset))
	query := fmt.Sprintf(`SELECT %s FROM leads WHERE %s ORDER BY lead_score DESC, id ASC LIMIT $%d OFFSET $%d`,
		leadColumns, whereClause, len(args)-1, len(args))

	leads, err := r.queryLeads(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// ListOpenLeads returns leads still worked by sales.
func (r *Repository) ListOpenLeads(ctx context.Context) ([]domain.Lead, error) {
	return r.queryLeads(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE stage <> ALL($1) ORDER BY lead_score DESC, id ASC`,
		domain.Strings(domain.ClosedStages),
	)
}

// UpdateNextBestAction stores a recomputed action without touching other columns.
func (r *Repository) UpdateNextBestAction(ctx context.Context, id, action string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE leads SET next_best_action = $2 WHERE id = $1`, id, action)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) CountLeads(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM leads`).Scan(&total)
	return total, err
}

func (r *Repository) queryLeads(ctx context.Context, query string, args ...interface{}) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return leads, nil
}
