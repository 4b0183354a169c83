package service

import (
	"context"
	"fmt"
	"strings"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/objections"
	"leadscout_backend/internal/leads/textgen"
	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/apperr"
)

const defaultFollowUpSubject = "Uppföljning av vårt samtal om solceller"

// SendFollowUp emails a follow-up to the lead's contact. Without a message
// the template follow-up for the latest interaction's objections is sent.
func (s *Service) SendFollowUp(ctx context.Context, id string, req transport.SendFollowUpRequest) (transport.SendFollowUpResponse, error) {
	if s.mailer == nil {
		return transport.SendFollowUpResponse{}, apperr.Unavailable("email delivery is not configured")
	}

	lead, err := s.getLead(ctx, id)
	if err != nil {
		return transport.SendFollowUpResponse{}, err
	}
	to := strings.TrimSpace(lead.ContactEmail)
	if to == "" || to == defaultContactEmail {
		return transport.SendFollowUpResponse{}, apperr.BadRequest("lead has no contact email")
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		message, err = s.templateFollowUp(ctx, lead)
		if err != nil {
			return transport.SendFollowUpResponse{}, err
		}
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		subject = defaultFollowUpSubject
	}

	if err := s.mailer.SendFollowUpEmail(ctx, to, lead.ContactName, subject, message); err != nil {
		return transport.SendFollowUpResponse{}, fmt.Errorf("send follow-up: %w", err)
	}

	return transport.SendFollowUpResponse{To: to, Subject: subject, Message: message}, nil
}

func (s *Service) templateFollowUp(ctx context.Context, lead domain.Lead) (string, error) {
	interactions, err := s.store.ListInteractions(ctx, lead.ID)
	if err != nil {
		return "", fmt.Errorf("list interactions: %w", err)
	}
	found := objections.Set{domain.ObjectionNone}
	notes := ""
	if len(interactions) > 0 {
		notes = interactions[0].RawNotes
		if len(interactions[0].Objections) > 0 {
			found = objections.Set(interactions[0].Objections)
		}
	}
	return textgen.FollowUp(notes, found, lead.ContactName), nil
}
