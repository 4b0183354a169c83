package synthetic

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/scoring"
)

var fixedNow = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

func TestDatasetIsReproducible(t *testing.T) {
	a := NewGenerator(rand.NewSource(42), fixedNow).Dataset(25, nil)
	b := NewGenerator(rand.NewSource(42), fixedNow).Dataset(25, nil)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected identical datasets for the same seed")
	}
}

func TestDatasetLeadsAreConsistent(t *testing.T) {
	ds := NewGenerator(rand.NewSource(7), fixedNow).Dataset(200, nil)
	if len(ds.Leads) != 200 {
		t.Fatalf("expected 200 leads, got %d", len(ds.Leads))
	}
	if ds.Leads[0].ID != "LEAD-0001" || ds.Leads[199].ID != "LEAD-0200" {
		t.Fatalf("unexpected ids %s..%s", ds.Leads[0].ID, ds.Leads[199].ID)
	}

	perLead := map[string]int{}
	for _, in := range ds.Interactions {
		perLead[in.LeadID]++
	}

	for _, lead := range ds.Leads {
		result := scoring.Calculate(lead)
		if lead.LeadScore != result.BaseScore {
			t.Fatalf("%s: stored score %d, recalculated %d", lead.ID, lead.LeadScore, result.BaseScore)
		}
		if lead.Status != scoring.Status(lead.LeadScore) {
			t.Fatalf("%s: status %s does not match score %d", lead.ID, lead.Status, lead.LeadScore)
		}
		if lead.NextBestAction == "" {
			t.Fatalf("%s: missing next best action", lead.ID)
		}
		if lead.Stage == domain.StageNew && lead.LastTouchAt != nil {
			t.Fatalf("%s: new lead must not have a last touch", lead.ID)
		}
		if (lead.Stage == domain.StageSigned || lead.Stage == domain.StageLost) && lead.NextTouchAt != nil {
			t.Fatalf("%s: closed lead must not have a next touch", lead.ID)
		}
		if lead.Stage == domain.StageLost && lead.LeadScore >= 40 {
			t.Fatalf("%s: lost stage only for scores below 40, got %d", lead.ID, lead.LeadScore)
		}
		if lead.Stage == domain.StageSigned && lead.LeadScore <= 85 {
			t.Fatalf("%s: signed stage only for scores above 85, got %d", lead.ID, lead.LeadScore)
		}
		if lead.CreatedAt.After(fixedNow) || lead.CreatedAt.Before(fixedNow.Add(-90*day)) {
			t.Fatalf("%s: created at %s outside the last 90 days", lead.ID, lead.CreatedAt)
		}
		if lead.RoofAreaM2 < 30 || lead.RoofAreaM2 > 150 {
			t.Fatalf("%s: roof area %d out of range", lead.ID, lead.RoofAreaM2)
		}
		if n := perLead[lead.ID]; n > 3 {
			t.Fatalf("%s: %d interactions, expected at most 3", lead.ID, n)
		}
	}
}

func TestInteractionObjections(t *testing.T) {
	g := NewGenerator(rand.NewSource(3), fixedNow)
	for i := 0; i < 100; i++ {
		in := g.Interaction("LEAD-0001", i)
		if len(in.Objections) == 0 {
			t.Fatalf("%s: objections must never be empty", in.ID)
		}
		if len(in.Objections) > 1 {
			for _, o := range in.Objections {
				if o == domain.ObjectionNone {
					t.Fatalf("%s: none mixed with real objections", in.ID)
				}
			}
		}
		if !strings.HasSuffix(in.AISummary, ".") || !strings.Contains(in.AISummary, "med kund.") {
			t.Fatalf("%s: unexpected summary %q", in.ID, in.AISummary)
		}
		if in.Timestamp.Before(fixedNow.Add(-30 * day)) {
			t.Fatalf("%s: timestamp older than 30 days", in.ID)
		}
	}
}

func TestLoadCampaignsDefaults(t *testing.T) {
	campaigns, err := LoadCampaigns("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(campaigns) != 5 {
		t.Fatalf("expected 5 campaigns, got %d", len(campaigns))
	}
	first := campaigns[0]
	if first.ID != "CAMP-001" || first.Channel != domain.ChannelHemsol || first.CostPerLeadSek != 450 || first.LeadsGenerated != 111 {
		t.Fatalf("unexpected first campaign %+v", first)
	}
}

func TestParseCampaignsRejectsUnknownChannel(t *testing.T) {
	_, err := parseCampaigns([]byte("- id: CAMP-X\n  channel: Fax\n"))
	if err == nil {
		t.Fatal("expected error for unknown channel")
	}
}

func TestLoadCampaignsMissingFile(t *testing.T) {
	if _, err := LoadCampaigns("/nonexistent/campaigns.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
