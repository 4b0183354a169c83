package objections

import (
	"reflect"
	"testing"

	"leadscout_backend/internal/leads/domain"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name string
		note string
		want Set
	}{
		{
			name: "price and timing",
			note: "Kunden tycker priset är för högt och vill vänta till hösten",
			want: Set{domain.ObjectionPrice, domain.ObjectionTiming},
		},
		{
			name: "no keywords",
			note: "Trevligt samtal, kunden vill ha mer information.",
			want: Set{domain.ObjectionNone},
		},
		{
			name: "empty note",
			note: "",
			want: Set{domain.ObjectionNone},
		},
		{
			name: "negation still matches",
			note: "Det var inte dyrt alls",
			want: Set{domain.ObjectionPrice},
		},
		{
			name: "case insensitive",
			note: "KRÅNGLIGT med BYRÅKRATI",
			want: Set{domain.ObjectionComplexity},
		},
		{
			name: "all categories in evaluation order",
			note: "Svårt att veta, nästa år kanske. Är det lönsamt? Osäker på garantier. Kostnad?",
			want: Set{
				domain.ObjectionPrice,
				domain.ObjectionTrust,
				domain.ObjectionROISkepticism,
				domain.ObjectionTiming,
				domain.ObjectionComplexity,
			},
		},
		{
			name: "roi as substring",
			note: "Frågade om ROI",
			want: Set{domain.ObjectionROISkepticism},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.note)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Extract(%q) = %v, want %v", tc.note, got, tc.want)
			}
		})
	}
}

func TestExtractNeverEmpty(t *testing.T) {
	notes := []string{"", " ", "hej", "pris", "\n\t", "12345"}
	for _, n := range notes {
		got := Extract(n)
		if len(got) == 0 {
			t.Fatalf("Extract(%q) returned empty set", n)
		}
		if got.Has(domain.ObjectionNone) && len(got) != 1 {
			t.Fatalf("none must be exclusive, got %v", got)
		}
	}
}

func TestSetHelpers(t *testing.T) {
	s := Set{domain.ObjectionPrice, domain.ObjectionTiming}
	if !s.Has(domain.ObjectionTiming) || s.Has(domain.ObjectionTrust) {
		t.Fatalf("Has returned wrong membership for %v", s)
	}
	if s.IsNone() {
		t.Fatalf("set with objections reported none")
	}
	if !(Set{domain.ObjectionNone}).IsNone() {
		t.Fatalf("{none} should report IsNone")
	}
	if got := s.Strings(); !reflect.DeepEqual(got, []string{"price", "timing"}) {
		t.Fatalf("unexpected strings %v", got)
	}
	if Keywords(domain.ObjectionNone) != nil {
		t.Fatalf("none has no keywords")
	}
	if len(Keywords(domain.ObjectionPrice)) != 4 {
		t.Fatalf("price keyword count changed")
	}
}
