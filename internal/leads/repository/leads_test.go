package repository

import (
	"reflect"
	"strings"
	"testing"

	"leadscout_backend/internal/leads/domain"
)

func TestBuildLeadListWhereNoFilters(t *testing.T) {
	where, args := buildLeadListWhere(domain.LeadFilter{})
	if where != "TRUE" || len(args) != 0 {
		t.Fatalf("unexpected where %q args %v", where, args)
	}
}

func TestBuildLeadListWhereNumbersPlaceholders(t *testing.T) {
	minScore := 60
	hasEV := true
	where, args := buildLeadListWhere(domain.LeadFilter{
		Channel:  domain.ChannelReferral,
		Status:   domain.StatusHot,
		HasEV:    &hasEV,
		MinScore: &minScore,
	})

	want := "TRUE AND channel = $1 AND status = $2 AND has_ev = $3 AND lead_score >= $4"
	if where != want {
		t.Fatalf("where = %q, want %q", where, want)
	}
	if !reflect.DeepEqual(args, []interface{}{"Referral", "hot", true, 60}) {
		t.Fatalf("unexpected args %v", args)
	}
	if strings.Contains(where, "$5") {
		t.Fatalf("too many placeholders")
	}
}

func TestLeadArgsNullsEmptyContacts(t *testing.T) {
	args := leadArgs(domain.Lead{ID: "LEAD-0001"})
	if len(args) != 22 {
		t.Fatalf("expected 22 args, got %d", len(args))
	}
	for _, idx := range []int{19, 20, 21} {
		if p, ok := args[idx].(*string); !ok || p != nil {
			t.Fatalf("arg %d should be a nil *string, got %#v", idx, args[idx])
		}
	}
	if got, ok := args[15].([]string); !ok || got == nil {
		t.Fatalf("score explanation must encode as an empty array, got %#v", args[15])
	}
}
