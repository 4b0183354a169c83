package service

import (
	"context"
	"fmt"
	"strings"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/scoring"
	"leadscout_backend/internal/leads/transport"
	"leadscout_backend/platform/phone"

	"github.com/google/uuid"
)

const (
	defaultContactName  = "Anonym Besökare"
	defaultContactPhone = "070-000 00 00"
	defaultContactEmail = "anonymous@example.com"
	defaultKommun       = "Stockholm"

	sourceConfigurator = "configurator"

	kwhPerKwPerYear     = 950
	roiYearsWithBattery = 7
	roiYearsNoBattery   = 8
)

var (
	configuratorBills = map[string]int{"low": 800, "medium": 1500, "high": 2500, "very_high": 3500}
	configuratorKwh   = map[string]int{"low": 10000, "medium": 18000, "high": 28000, "very_high": 35000}
	configuratorRoofs = map[string]int{"small": 50, "medium": 80, "large": 120}
)

// SubmitConfigurator turns the answers of the public savings configurator into
// a scored lead with a configurator interaction and returns a system
// recommendation.
func (s *Service) SubmitConfigurator(ctx context.Context, req transport.ConfiguratorRequest) (transport.ConfiguratorResponse, error) {
	now := s.clock()

	signals := []domain.IntentSignal{domain.SignalVisitedConfigurator}
	if req.InterestedInBattery {
		signals = append(signals, domain.SignalAskedAboutGreenDeduction)
	}

	kommun := strings.TrimSpace(req.Kommun)
	if kommun == "" {
		kommun = defaultKommun
	}

	contactPhone := strings.TrimSpace(req.Phone)
	if contactPhone == "" {
		contactPhone = defaultContactPhone
	} else {
		contactPhone = phone.NormalizeE164(contactPhone)
	}

	lead, err := s.insertScored(ctx, domain.Lead{
		ID:                "LEAD-CFG-" + uuid.NewString(),
		CreatedAt:         now,
		Channel:           domain.ChannelOrganic,
		Segment:           configuratorSegment(req.HomeType),
		Region:            domain.RegionSE1,
		SyntheticLocation: kommun + ", Centrum",
		RoofAreaM2:        configuratorRoofs[req.RoofSizeRange],
		AnnualKwh:         configuratorKwh[req.MonthlyBillRange],
		MonthlyBillSek:    configuratorBills[req.MonthlyBillRange],
		HeatingType:       domain.HeatingHeatPump,
		HasEV:             req.HasEV,
		IntentSignals:     signals,
		Stage:             domain.StageNew,
		ContactName:       orDefault(req.Name, defaultContactName),
		ContactPhone:      contactPhone,
		ContactEmail:      orDefault(req.Email, defaultContactEmail),
	}, sourceConfigurator)
	if err != nil {
		return transport.ConfiguratorResponse{}, err
	}

	_, err = s.store.CreateInteraction(ctx, domain.Interaction{
		ID:         "INT-CFG-" + uuid.NewString(),
		LeadID:     lead.ID,
		Timestamp:  now,
		Type:       domain.InteractionConfigurator,
		RawNotes:   configuratorNotes(req),
		AISummary:  configuratorSummary(req, lead.LeadScore),
		Objections: []domain.Objection{domain.ObjectionNone},
	})
	if err != nil {
		return transport.ConfiguratorResponse{}, fmt.Errorf("store configurator interaction: %w", err)
	}

	return transport.ConfiguratorResponse{
		Lead:           lead,
		Recommendation: Recommend(lead, req.InterestedInBattery),
	}, nil
}

// Recommend sizes a system for the lead's roof and bill.
func Recommend(lead domain.Lead, battery bool) transport.Recommendation {
	kw := scoring.EstimatedSystemKw(lead.RoofAreaM2)
	savings := scoring.EstimatedSavings(lead.MonthlyBillSek)
	rec := transport.Recommendation{
		SystemSizeKw:        kw,
		AnnualProductionKwh: kw * kwhPerKwPerYear,
		MonthlySavingsSek:   savings,
		RoiYears:            roiYearsNoBattery,
	}
	batteryText := ""
	if battery {
		rec.RoiYears = roiYearsWithBattery
		batteryText = " med batterilösning"
	}
	rec.Message = fmt.Sprintf("Baserat på dina uppgifter rekommenderar vi en %d kW solcellsanläggning%s. Du kan spara uppåt %d kr/månad på din elräkning!",
		kw, batteryText, savings)
	return rec
}

func configuratorSegment(homeType string) domain.Segment {
	switch homeType {
	case "villa", "townhouse":
		return domain.SegmentVilla
	default:
		return domain.SegmentBRF
	}
}

func configuratorNotes(req transport.ConfiguratorRequest) string {
	battery := "ej batteri"
	if req.InterestedInBattery {
		battery = "intresserad av batteri"
	}
	ev := "ingen elbil"
	if req.HasEV {
		ev = "har elbil"
	}
	return fmt.Sprintf("Konfiguratorbesök: %s, %s elräkning, %s tak, %s, %s.",
		req.HomeType, req.MonthlyBillRange, req.RoofSizeRange, battery, ev)
}

func configuratorSummary(req transport.ConfiguratorRequest, score int) string {
	parts := []string{"Ny lead via konfigurator."}
	if req.HasEV {
		parts = append(parts, "Har elbil.")
	}
	if req.InterestedInBattery {
		parts = append(parts, "Intresserad av batterilösning.")
	}
	parts = append(parts, fmt.Sprintf("Score: %d.", score))
	return strings.Join(parts, " ")
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
