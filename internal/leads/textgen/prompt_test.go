package textgen

import (
	"errors"
	"strings"
	"testing"

	"leadscout_backend/internal/leads/domain"
	"leadscout_backend/internal/leads/objections"
)

func TestBuildPromptEmbedsInputs(t *testing.T) {
	prompt := BuildPrompt(Request{
		Notes:       "Kunden är osäker",
		Objections:  objections.Set{domain.ObjectionTrust, domain.ObjectionTiming},
		ContactName: "",
	})
	for _, want := range []string{
		`Anteckningar: "Kunden är osäker"`,
		"Identifierade invändningar: trust, timing",
		"Kunds namn: där",
		`"followUp"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildPromptKeepsComparisons(t *testing.T) {
	prompt := BuildPrompt(Request{
		Notes:      "priset < 3000 kr, vänta > 2 veckor\x07",
		Objections: objections.Set{domain.ObjectionPrice, domain.ObjectionTiming},
	})
	if !strings.Contains(prompt, `Anteckningar: "priset < 3000 kr, vänta > 2 veckor"`) {
		t.Fatalf("prompt lost note text:\n%s", prompt)
	}
}

func TestParseResponse(t *testing.T) {
	res, err := ParseResponse("Här är svaret:\n```json\n{\"summary\": \"Kort\", \"followUp\": \"Hej\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary != "Kort" || res.FollowUp != "Hej" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestParseResponseFailures(t *testing.T) {
	cases := map[string]string{
		"no json":       "inget svar",
		"malformed":     `{"summary": "Kort",`,
		"missing field": `{"summary": "Kort"}`,
		"wrong type":    `{"summary": 1, "followUp": "Hej"}`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseResponse(text); err == nil {
				t.Fatalf("expected error for %q", text)
			}
		})
	}

	if _, err := ParseResponse(`{"summary": "", "followUp": "Hej"}`); !errors.Is(err, ErrIncompleteResponse) {
		t.Fatalf("expected ErrIncompleteResponse, got %v", err)
	}
}
