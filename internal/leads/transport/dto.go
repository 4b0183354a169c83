// Package transport defines the JSON request and response shapes of the
// leads HTTP API.
package transport

import (
	"time"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/scoring"
)

// AnalyzeNotesRequest records free-text notes from a sales contact.
type AnalyzeNotesRequest struct {
	LeadID          string                 `json:"leadId" validate:"required"`
	Notes           string                 `json:"notes" validate:"required,max=10000"`
	InteractionType domain.InteractionType `json:"interactionType" validate:"omitempty,interactiontype"`
}

type AnalysisResponse struct {
	Summary    string             `json:"summary"`
	Objections []domain.Objection `json:"objections"`
	FollowUp   string             `json:"followUp"`
	Source     string             `json:"source"`
	UsedLLM    bool               `json:"usedLLM"`
}

type AnalyzeNotesResponse struct {
	Analysis    AnalysisResponse   `json:"analysis"`
	Interaction domain.Interaction `json:"interaction"`
	Lead        domain.Lead        `json:"lead"`
}

// CreateLeadRequest registers a lead entered by hand.
type CreateLeadRequest struct {
	Channel           domain.Channel        `json:"channel" validate:"required,channel"`
	Segment           domain.Segment        `json:"segment" validate:"required,segment"`
	Region            domain.Region         `json:"region" validate:"required,region"`
	SyntheticLocation string                `json:"syntheticLocation" validate:"max=200"`
	RoofAreaM2        int                   `json:"roofAreaM2" validate:"min=0,max=100000"`
	AnnualKwh         int                   `json:"annualKwh" validate:"min=0,max=10000000"`
	MonthlyBillSek    int                   `json:"monthlyBillSek" validate:"min=0,max=1000000"`
	HeatingType       domain.HeatingType    `json:"heatingType" validate:"required,heating"`
	HasEV             bool                  `json:"hasEV"`
	IntentSignals     []domain.IntentSignal `json:"intentSignals" validate:"omitempty,dive,intent"`
	ContactName       string                `json:"contactName" validate:"max=200"`
	ContactPhone      string                `json:"contactPhone" validate:"max=50"`
	ContactEmail      string                `json:"contactEmail" validate:"omitempty,email"`
	NextTouchAt       *time.Time            `json:"nextTouchAt"`
}

// UpdateLeadRequest patches a lead. Nil fields are left unchanged. Score and
// status are derived and cannot be set.
type UpdateLeadRequest struct {
	Channel           *domain.Channel       `json:"channel" validate:"omitempty,channel"`
	Segment           *domain.Segment       `json:"segment" validate:"omitempty,segment"`
	Region            *domain.Region        `json:"region" validate:"omitempty,region"`
	SyntheticLocation *string               `json:"syntheticLocation" validate:"omitempty,max=200"`
	RoofAreaM2        *int                  `json:"roofAreaM2" validate:"omitempty,min=0,max=100000"`
	AnnualKwh         *int                  `json:"annualKwh" validate:"omitempty,min=0,max=10000000"`
	MonthlyBillSek    *int                  `json:"monthlyBillSek" validate:"omitempty,min=0,max=1000000"`
	HeatingType       *domain.HeatingType   `json:"heatingType" validate:"omitempty,heating"`
	HasEV             *bool                 `json:"hasEV"`
	IntentSignals     []domain.IntentSignal `json:"intentSignals" validate:"omitempty,dive,intent"`
	Stage             *domain.Stage         `json:"stage" validate:"omitempty,leadstage"`
	NextTouchAt       *time.Time            `json:"nextTouchAt"`
	ContactName       *string               `json:"contactName" validate:"omitempty,max=200"`
	ContactPhone      *string               `json:"contactPhone" validate:"omitempty,max=50"`
	ContactEmail      *string               `json:"contactEmail" validate:"omitempty,email"`
}

// ConfiguratorRequest holds the answers of the public savings configurator.
type ConfiguratorRequest struct {
	HomeType            string `json:"homeType" validate:"required,oneof=villa townhouse apartment"`
	MonthlyBillRange    string `json:"monthlyBillRange" validate:"required,oneof=low medium high very_high"`
	RoofSizeRange       string `json:"roofSizeRange" validate:"required,oneof=small medium large"`
	InterestedInBattery bool   `json:"interestedInBattery"`
	HasEV               bool   `json:"hasEV"`
	Name                string `json:"name" validate:"max=200"`
	Phone               string `json:"phone" validate:"max=50"`
	Email               string `json:"email" validate:"omitempty,email"`
	Kommun              string `json:"kommun" validate:"max=100"`
}

type Recommendation struct {
	SystemSizeKw        int    `json:"systemSizeKw"`
	AnnualProductionKwh int    `json:"annualProductionKwh"`
	MonthlySavingsSek   int    `json:"monthlySavingsSek"`
	RoiYears            int    `json:"roiYears"`
	Message             string `json:"message"`
}

type ConfiguratorResponse struct {
	Lead           domain.Lead    `json:"lead"`
	Recommendation Recommendation `json:"recommendation"`
}

// ListLeadsQuery is bound from the query string of GET /leads.
type ListLeadsQuery struct {
	Channel  string `form:"channel" validate:"omitempty,channel"`
	Segment  string `form:"segment" validate:"omitempty,segment"`
	Region   string `form:"region" validate:"omitempty,region"`
	Status   string `form:"status" validate:"omitempty,oneof=cold warm hot"`
	Stage    string `form:"stage" validate:"omitempty,leadstage"`
	MinScore *int   `form:"minScore" validate:"omitempty,min=0,max=100"`
	HasEV    *bool  `form:"hasEV"`
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset   int    `form:"offset" validate:"omitempty,min=0"`
}

type LeadListResponse struct {
	Items []domain.Lead `json:"items"`
	Total int           `json:"total"`
}

type LeadDetailResponse struct {
	Lead         domain.Lead          `json:"lead"`
	Interactions []domain.Interaction `json:"interactions"`
	CallScript   scoring.CallScript   `json:"callScript"`
	ScoreFactors []scoring.Factor     `json:"scoreFactors"`
}

// SendFollowUpRequest emails a follow-up. An empty message sends the
// template follow-up for the latest interaction.
type SendFollowUpRequest struct {
	Subject string `json:"subject" validate:"max=200"`
	Message string `json:"message" validate:"max=5000"`
}

type SendFollowUpResponse struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type CampaignListResponse struct {
	Items []domain.Campaign `json:"items"`
}
