package service

import (
	"context"
	"fmt"
	"strings"

	"leadscout_backend/internal/events"
	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/objections"
	"leadscout_backend/internal/leads/scoring"
	"leadscout_backend/internal/leads/textgen"
	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/apperr"

	"github.com/google/uuid"
)

const stageReasonFirstInteraction = "first_interaction"

// AnalyzeNotes extracts objections from the notes, drafts a summary and a
// follow-up, stores them as an interaction and marks the lead as touched. A
// new lead moves to contacted.
func (s *Service) AnalyzeNotes(ctx context.Context, req transport.AnalyzeNotesRequest) (transport.AnalyzeNotesResponse, error) {
	leadID := strings.TrimSpace(req.LeadID)
	notes := strings.TrimSpace(req.Notes)
	if leadID == "" || notes == "" {
		return transport.AnalyzeNotesResponse{}, apperr.Validation("leadId and notes are required")
	}
	interactionType := req.InteractionType
	if interactionType == "" {
		interactionType = domain.InteractionCall
	}

	lead, err := s.getLead(ctx, leadID)
	if err != nil {
		return transport.AnalyzeNotesResponse{}, err
	}

	found := objections.Extract(notes)
	out := s.generator.Generate(ctx, textgen.Request{
		Notes:       notes,
		Objections:  found,
		ContactName: lead.ContactName,
	})

	now := s.clock()
	interaction, err := s.store.CreateInteraction(ctx, domain.Interaction{
		ID:         "INT-" + uuid.NewString(),
		LeadID:     lead.ID,
		Timestamp:  now,
		Type:       interactionType,
		RawNotes:   notes,
		AISummary:  out.Summary,
		Objections: []domain.Objection(found),
	})
	if err != nil {
		return transport.AnalyzeNotesResponse{}, fmt.Errorf("store interaction: %w", err)
	}

	oldStage := lead.Stage
	lead.LastTouchAt = &now
	if lead.Stage == domain.StageNew {
		lead.Stage = domain.StageContacted
	}
	lead.NextBestAction = scoring.NextBestAction(lead, now)

	updated, err := s.store.UpdateLead(ctx, lead)
	if err != nil {
		return transport.AnalyzeNotesResponse{}, fmt.Errorf("touch lead: %w", translateNotFound(err))
	}

	if !found.IsNone() {
		for _, o := range found {
			s.metrics.ObjectionDetected(string(o))
		}
	}
	s.metrics.TextGenerated(out.Source)

	s.publish(ctx, events.InteractionRecorded{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        lead.ID,
		InteractionID: interaction.ID,
		Type:          string(interaction.Type),
		Objections:    found.Strings(),
		TextSource:    out.Source,
	})
	if oldStage != updated.Stage {
		s.publish(ctx, events.LeadStageChanged{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    lead.ID,
			OldStage:  string(oldStage),
			NewStage:  string(updated.Stage),
			Reason:    stageReasonFirstInteraction,
		})
	}

	return transport.AnalyzeNotesResponse{
		Analysis: transport.AnalysisResponse{
			Summary:    out.Summary,
			Objections: []domain.Objection(found),
			FollowUp:   out.FollowUp,
			Source:     out.Source,
			UsedLLM:    out.UsedLLM,
		},
		Interaction: interaction,
		Lead:        updated,
	}, nil
}
