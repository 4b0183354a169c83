package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/repository"
	"leadscout_backend/internal/leads/scoring"
	"leadscout_backend/internal/leads/service"
	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/httpkit"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type memStore struct {
	mu           sync.Mutex
	leads        map[string]domain.Lead
	interactions []domain.Interaction
}

func (s *memStore) CreateLead(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = lead
	return lead, nil
}

func (s *memStore) GetLead(_ context.Context, id string) (domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lead, ok := s.leads[id]
	if !ok {
		return domain.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (s *memStore) UpdateLead(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = lead
	return lead, nil
}

func (s *memStore) ListLeads(_ context.Context, _ domain.LeadFilter) ([]domain.Lead, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		out = append(out, l)
	}
	return out, len(out), nil
}

func (s *memStore) ListOpenLeads(_ context.Context) ([]domain.Lead, error) {
	return nil, nil
}

func (s *memStore) UpdateNextBestAction(_ context.Context, _, _ string) error {
	return nil
}

func (s *memStore) CreateInteraction(_ context.Context, in domain.Interaction) (domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, in)
	return in, nil
}

func (s *memStore) ListInteractions(_ context.Context, leadID string) ([]domain.Interaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Interaction
	for _, in := range s.interactions {
		if in.LeadID == leadID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (s *memStore) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	return []domain.Campaign{{ID: "CAMP-001", Channel: domain.ChannelHemsol}}, nil
}

func newTestRouter(t *testing.T, leads ...domain.Lead) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := &memStore{leads: make(map[string]domain.Lead)}
	for _, l := range leads {
		store.leads[l.ID] = l
	}
	val := validator.New()
	if err := transport.RegisterValidations(val); err != nil {
		t.Fatalf("register validations: %v", err)
	}
	svc := service.New(store, nil, nil, logger.Nop())

	engine := gin.New()
	New(svc, val).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func seededLead(id string, stage domain.Stage) domain.Lead {
	lead, _ := scoring.Apply(domain.Lead{
		ID:             id,
		CreatedAt:      time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC),
		Channel:        domain.ChannelHemsol,
		Segment:        domain.SegmentVilla,
		Region:         domain.RegionSE4,
		RoofAreaM2:     90,
		AnnualKwh:      22000,
		MonthlyBillSek: 2600,
		HeatingType:    domain.HeatingDirectElectric,
		Stage:          stage,
		ContactName:    "Lars",
	}, time.Now())
	return lead
}

func do(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpkit.ErrorResponse {
	t.Helper()
	var resp httpkit.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func TestCreateLeadValidationError(t *testing.T) {
	engine := newTestRouter(t)
	rec := do(t, engine, http.MethodPost, "/api/v1/leads", map[string]interface{}{
		"channel":     "Billboard",
		"segment":     "B2C Villa",
		"region":      "SE3",
		"heatingType": "Oil",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Error != msgValidationFailed {
		t.Fatalf("unexpected error %q", resp.Error)
	}
	details, ok := resp.Details.(map[string]interface{})
	if !ok || details["channel"] != "channel" {
		t.Fatalf("expected channel field detail, got %#v", resp.Details)
	}
}

func TestCreateLeadReturnsScoredLead(t *testing.T) {
	engine := newTestRouter(t)
	rec := do(t, engine, http.MethodPost, "/api/v1/leads", map[string]interface{}{
		"channel":        "Referral",
		"segment":        "B2C Villa",
		"region":         "SE3",
		"heatingType":    "Heat Pump",
		"roofAreaM2":     100,
		"annualKwh":      25000,
		"monthlyBillSek": 3000,
		"hasEV":          true,
		"intentSignals":  []string{"visitedConfigurator"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var lead domain.Lead
	if err := json.Unmarshal(rec.Body.Bytes(), &lead); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if lead.LeadScore != 100 || lead.Status != domain.StatusHot || lead.Stage != domain.StageNew {
		t.Fatalf("unexpected lead %+v", lead)
	}
}

func TestGetLeadNotFound(t *testing.T) {
	engine := newTestRouter(t)
	rec := do(t, engine, http.MethodGet, "/api/v1/leads/LEAD-404", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "lead not found" {
		t.Fatalf("unexpected error %q", resp.Error)
	}
}

func TestGetLeadIncludesCallScript(t *testing.T) {
	engine := newTestRouter(t, seededLead("LEAD-0001", domain.StageNew))
	rec := do(t, engine, http.MethodGet, "/api/v1/leads/LEAD-0001", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var detail transport.LeadDetailResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if detail.Lead.ID != "LEAD-0001" || detail.CallScript.Closing == "" {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if detail.Interactions == nil {
		t.Fatalf("expected empty interaction list, not null")
	}
}

func TestAnalyzeLeadNotesUsesPathID(t *testing.T) {
	engine := newTestRouter(t, seededLead("LEAD-0002", domain.StageNew))
	rec := do(t, engine, http.MethodPost, "/api/v1/leads/LEAD-0002/analyze-notes", map[string]string{
		"notes": "Kunden är osäker på garantier.",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp transport.AnalyzeNotesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Analysis.Objections) != 1 || resp.Analysis.Objections[0] != domain.ObjectionTrust {
		t.Fatalf("expected trust objection, got %v", resp.Analysis.Objections)
	}
	if resp.Lead.Stage != domain.StageContacted {
		t.Fatalf("expected stage contacted, got %q", resp.Lead.Stage)
	}
	if resp.Analysis.Source != "template" || resp.Analysis.UsedLLM {
		t.Fatalf("expected template output, got %+v", resp.Analysis)
	}
}

func TestAnalyzeNotesRequiresLeadID(t *testing.T) {
	engine := newTestRouter(t)
	rec := do(t, engine, http.MethodPost, "/api/v1/analyze-notes", map[string]string{"notes": "hej"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAnalyzeNotesUnknownLead(t *testing.T) {
	engine := newTestRouter(t)
	rec := do(t, engine, http.MethodPost, "/api/v1/analyze-notes", map[string]string{"leadId": "LEAD-404", "notes": "hej"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateLeadBackwardStageConflict(t *testing.T) {
	engine := newTestRouter(t, seededLead("LEAD-0003", domain.StageOfferSent))
	rec := do(t, engine, http.MethodPatch, "/api/v1/leads/LEAD-0003", map[string]string{"stage": "new"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateLeadUnknownStageRejected(t *testing.T) {
	engine := newTestRouter(t, seededLead("LEAD-0004", domain.StageNew))
	rec := do(t, engine, http.MethodPatch, "/api/v1/leads/LEAD-0004", map[string]string{"stage": "archived"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateLeadToLost(t *testing.T) {
	engine := newTestRouter(t, seededLead("LEAD-0005", domain.StageSiteVisit))
	rec := do(t, engine, http.MethodPatch, "/api/v1/leads/LEAD-0005", map[string]string{"stage": "lost"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var lead domain.Lead
	if err := json.Unmarshal(rec.Body.Bytes(), &lead); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if lead.Stage != domain.StageLost || lead.NextBestAction != scoring.ActionNurture {
		t.Fatalf("unexpected lead %+v", lead)
	}
}

func TestSubmitConfigurator(t *testing.T) {
	engine := newTestRouter(t)
	rec := do(t, engine, http.MethodPost, "/api/v1/configurator", map[string]interface{}{
		"homeType":         "townhouse",
		"monthlyBillRange": "high",
		"roofSizeRange":    "medium",
		"hasEV":            false,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp transport.ConfiguratorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Recommendation.SystemSizeKw != 13 || resp.Recommendation.MonthlySavingsSek != 1000 {
		t.Fatalf("unexpected recommendation %+v", resp.Recommendation)
	}
}

func TestSubmitConfiguratorRejectsUnknownRange(t *testing.T) {
	engine := newTestRouter(t)
	rec := do(t, engine, http.MethodPost, "/api/v1/configurator", map[string]interface{}{
		"homeType":         "castle",
		"monthlyBillRange": "high",
		"roofSizeRange":    "medium",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListLeadsRejectsBadQuery(t *testing.T) {
	engine := newTestRouter(t)
	rec := do(t, engine, http.MethodGet, "/api/v1/leads?status=lukewarm", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	rec = do(t, engine, http.MethodGet, "/api/v1/leads?minScore=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric minScore, got %d", rec.Code)
	}
}

func TestListLeads(t *testing.T) {
	engine := newTestRouter(t, seededLead("LEAD-0006", domain.StageNew))
	rec := do(t, engine, http.MethodGet, "/api/v1/leads?status=hot&minScore=50&hasEV=false", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp transport.LeadListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected one lead, got %d", resp.Total)
	}
}

func TestSendFollowUpWithoutMailer(t *testing.T) {
	engine := newTestRouter(t, seededLead("LEAD-0007", domain.StageContacted))
	rec := do(t, engine, http.MethodPost, "/api/v1/leads/LEAD-0007/follow-up", map[string]string{"message": "Hej"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestListCampaigns(t *testing.T) {
	engine := newTestRouter(t)
	rec := do(t, engine, http.MethodGet, "/api/v1/campaigns", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp transport.CampaignListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "CAMP-001" {
		t.Fatalf("unexpected campaigns %+v", resp.Items)
	}
}
