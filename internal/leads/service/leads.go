package service

import (
	"context"
	"fmt"
	"log/slog"

	"leadscout_backend/internal/events"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/scoring"
	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/apperr"
	"leadscout_backend/platform/phone"
	"leadscout_backend/platform/sanitize"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	sourceManual            = "manual"
	stageReasonManualUpdate = "manual_update"
)

// CreateLead stores a lead entered by hand, scored and in stage new.
func (s *Service) CreateLead(ctx context.Context, req transport.CreateLeadRequest) (domain.Lead, error) {
	now := s.clock()
	lead := domain.Lead{
		ID:                "LEAD-" + uuid.NewString(),
		CreatedAt:         now,
		Channel:           req.Channel,
		Segment:           req.Segment,
		Region:            req.Region,
		SyntheticLocation: sanitize.Line(req.SyntheticLocation),
		RoofAreaM2:        req.RoofAreaM2,
		AnnualKwh:         req.AnnualKwh,
		MonthlyBillSek:    req.MonthlyBillSek,
		HeatingType:       req.HeatingType,
		HasEV:             req.HasEV,
		IntentSignals:     req.IntentSignals,
		Stage:             domain.StageNew,
		NextTouchAt:       req.NextTouchAt,
		ContactName:       sanitize.Line(req.ContactName),
		ContactPhone:      phone.NormalizeE164(req.ContactPhone),
		ContactEmail:      req.ContactEmail,
	}
	return s.insertScored(ctx, lead, sourceManual)
}

func (s *Service) insertScored(ctx context.Context, lead domain.Lead, source string) (domain.Lead, error) {
	scored, _ := scoring.Apply(lead, s.clock())
	created, err := s.store.CreateLead(ctx, scored)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("create lead: %w", err)
	}
	s.metrics.LeadScored(string(created.Status))
	s.publish(ctx, events.LeadCreated{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    created.ID,
		Channel:   string(created.Channel),
		Segment:   string(created.Segment),
		Region:    string(created.Region),
		LeadScore: created.LeadScore,
		Status:    string(created.Status),
		Source:    source,
	})
	return created, nil
}

// GetLead returns the lead with its interactions (newest first), call script
// and the full factor breakdown of its score.
func (s *Service) GetLead(ctx context.Context, id string) (transport.LeadDetailResponse, error) {
	var (
		lead         domain.Lead
		interactions []domain.Interaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lead, err = s.store.GetLead(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		interactions, err = s.store.ListInteractions(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.LeadDetailResponse{}, translateNotFound(err)
	}
	if interactions == nil {
		interactions = []domain.Interaction{}
	}

	return transport.LeadDetailResponse{
		Lead:         lead,
		Interactions: interactions,
		CallScript:   scoring.GenerateCallScript(lead),
		ScoreFactors: scoring.Calculate(lead).Factors,
	}, nil
}

// ListLeads returns the leads matching the query, highest score first, and
// the total match count.
func (s *Service) ListLeads(ctx context.Context, q transport.ListLeadsQuery) (transport.LeadListResponse, error) {
	filter := domain.LeadFilter{
		Channel:  domain.Channel(q.Channel),
		Segment:  domain.Segment(q.Segment),
		Region:   domain.Region(q.Region),
		Status:   domain.Status(q.Status),
		Stage:    domain.Stage(q.Stage),
		MinScore: q.MinScore,
		HasEV:    q.HasEV,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}
	items, total, err := s.store.ListLeads(ctx, filter)
	if err != nil {
		return transport.LeadListResponse{}, err
	}
	if items == nil {
		items = []domain.Lead{}
	}
	return transport.LeadListResponse{Items: items, Total: total}, nil
}

// UpdateLead patches a lead and rescores it. Stage moves must go forward or
// to lost.
func (s *Service) UpdateLead(ctx context.Context, id string, req transport.UpdateLeadRequest) (domain.Lead, error) {
	current, err := s.getLead(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	next := current
	if req.Stage != nil && *req.Stage != current.Stage {
		if !domain.CanTransition(current.Stage, *req.Stage) {
			return domain.Lead{}, apperr.Conflict(fmt.Sprintf("cannot move lead from %s to %s", current.Stage, *req.Stage)).
				WithDetails(map[string]string{"from": string(current.Stage), "to": string(*req.Stage)})
		}
		next.Stage = *req.Stage
	}
	applyPatch(&next, req)

	next, _ = scoring.Apply(next, s.clock())
	updated, err := s.store.UpdateLead(ctx, next)
	if err != nil {
		return domain.Lead{}, translateNotFound(err)
	}
	s.metrics.LeadScored(string(updated.Status))

	if current.Stage != updated.Stage {
		s.publish(ctx, events.LeadStageChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    updated.ID,
			OldStage:  string(current.Stage),
			NewStage:  string(updated.Stage),
			Reason:    stageReasonManualUpdate,
		})
	}
	return updated, nil
}

func applyPatch(lead *domain.Lead, req transport.UpdateLeadRequest) {
	if req.Channel != nil {
		lead.Channel = *req.Channel
	}
	if req.Segment != nil {
		lead.Segment = *req.Segment
	}
	if req.Region != nil {
		lead.Region = *req.Region
	}
	if req.SyntheticLocation != nil {
		lead.SyntheticLocation = sanitize.Line(*req.SyntheticLocation)
	}
	if req.RoofAreaM2 != nil {
		lead.RoofAreaM2 = *req.RoofAreaM2
	}
	if req.AnnualKwh != nil {
		lead.AnnualKwh = *req.AnnualKwh
	}
	if req.MonthlyBillSek != nil {
		lead.MonthlyBillSek = *req.MonthlyBillSek
	}
	if req.HeatingType != nil {
		lead.HeatingType = *req.HeatingType
	}
	if req.HasEV != nil {
		lead.HasEV = *req.HasEV
	}
	if req.IntentSignals != nil {
		lead.IntentSignals = req.IntentSignals
	}
	if req.NextTouchAt != nil {
		lead.NextTouchAt = req.NextTouchAt
	}
	if req.ContactName != nil {
		lead.ContactName = sanitize.Line(*req.ContactName)
	}
	if req.ContactPhone != nil {
		lead.ContactPhone = phone.NormalizeE164(*req.ContactPhone)
	}
	if req.ContactEmail != nil {
		lead.ContactEmail = *req.ContactEmail
	}
}

// RefreshNextBestActions recomputes the next best action of every open lead
// and stores the ones that changed. It returns the number of updated leads.
func (s *Service) RefreshNextBestActions(ctx context.Context) (int, error) {
	leads, err := s.store.ListOpenLeads(ctx)
	if err != nil {
		return 0, fmt.Errorf("list open leads: %w", err)
	}

	now := s.clock()
	updated := 0
	for _, lead := range leads {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		action := scoring.NextBestAction(lead, now)
		if action == lead.NextBestAction {
			continue
		}
		if err := s.store.UpdateNextBestAction(ctx, lead.ID, action); err != nil {
			return updated, fmt.Errorf("update next best action for %s: %w", lead.ID, err)
		}
		updated++
	}

	s.log.WithContext(ctx).Info("next best actions refreshed",
		slog.Int("open_leads", len(leads)),
		slog.Int("updated", updated),
	)
	return updated, nil
}
