// Package domain holds the lead pipeline value types shared by scoring,
// text generation and persistence.
package domain

import "time"

// Lead is a prospective customer with property and behavioural attributes.
type Lead struct {
	ID                string         `json:"id"`
	CreatedAt         time.Time      `json:"createdAt"`
	Channel           Channel        `json:"channel"`
	Segment           Segment        `json:"segment"`
	Region            Region         `json:"region"`
	SyntheticLocation string         `json:"syntheticLocation"`
	RoofAreaM2        int            `json:"roofAreaM2"`
	AnnualKwh         int            `json:"annualKwh"`
	MonthlyBillSek    int            `json:"monthlyBillSek"`
	HeatingType       HeatingType    `json:"heatingType"`
	HasEV             bool           `json:"hasEV"`
	IntentSignals     []IntentSignal `json:"intentSignals"`
	Status            Status         `json:"status"`
	Stage             Stage          `json:"stage"`
	LeadScore         int            `json:"leadScore"`
	ScoreExplanation  []string       `json:"scoreExplanation"`
	NextBestAction    string         `json:"nextBestAction"`
	LastTouchAt       *time.Time     `json:"lastTouchAt"`
	NextTouchAt       *time.Time     `json:"nextTouchAt"`
	ContactName       string         `json:"contactName,omitempty"`
	ContactPhone      string         `json:"contactPhone,omitempty"`
	ContactEmail      string         `json:"contactEmail,omitempty"`
}

// HasSignal reports whether the lead carries the given intent signal.
func (l Lead) HasSignal(signal IntentSignal) bool {
	for _, s := range l.IntentSignals {
		if s == signal {
			return true
		}
	}
	return false
}

// UniqueSignals returns signals without duplicates, first occurrence wins.
func UniqueSignals(signals []IntentSignal) []IntentSignal {
	seen := make(map[IntentSignal]struct{}, len(signals))
	out := make([]IntentSignal, 0, len(signals))
	for _, s := range signals {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Interaction is one recorded contact event. It is never updated after creation.
type Interaction struct {
	ID         string          `json:"id"`
	LeadID     string          `json:"leadId"`
	Timestamp  time.Time       `json:"timestamp"`
	Type       InteractionType `json:"type"`
	RawNotes   string          `json:"rawNotes"`
	AISummary  string          `json:"aiSummary"`
	Objections []Objection     `json:"objections"`
}

// Campaign is static marketing-channel reference data.
type Campaign struct {
	ID              string  `json:"id" yaml:"id"`
	Channel         Channel `json:"channel" yaml:"channel"`
	MonthlySpendSek int     `json:"monthlySpendSek" yaml:"monthlySpendSek"`
	CostPerLeadSek  int     `json:"costPerLeadSek" yaml:"costPerLeadSek"`
	LeadsGenerated  int     `json:"leadsGenerated" yaml:"leadsGenerated"`
}

// LeadFilter narrows lead listings. Zero values mean "any".
type LeadFilter struct {
	Channel  Channel
	Segment  Segment
	Region   Region
	Status   Status
	Stage    Stage
	MinScore *int
	HasEV    *bool
	Limit    int
	Offset   int
}
