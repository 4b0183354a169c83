// Package objections classifies free-text sales notes into objection
// categories by keyword matching.
//
// Matching is plain substring search on the lowercased note. There is no
// tokenisation or negation handling, so "inte dyrt" still counts as a price
// objection.
package objections

import (
	"strings"

	"leadscout_backend/internal/leads/domain"
)

type rule struct {
	category domain.Objection
	keywords []string
}

// rules are evaluated in this order, which is also the order of the result.
var rules = []rule{
	{domain.ObjectionPrice, []string{"pris", "dyrt", "kostnad", "för mycket"}},
	{domain.ObjectionTrust, []string{"osäker", "tveksam", "misstro", "garantier", "lita på"}},
	{domain.ObjectionROISkepticism, []string{"roi", "lönsamt", "återbetalningstid", "besparing"}},
	{domain.ObjectionTiming, []string{"vänta", "senare", "inte nu", "hösten", "nästa år"}},
	{domain.ObjectionComplexity, []string{"komplicerat", "krångligt", "svårt", "byråkrati"}},
}

// Set is an ordered, duplicate-free collection of objection categories.
// A Set returned by Extract is never empty.
type Set []domain.Objection

// Extract returns every category with at least one keyword present in note,
// or {none} when nothing matches.
func Extract(note string) Set {
	text := strings.ToLower(note)
	found := make(Set, 0, len(rules))
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				found = append(found, r.category)
				break
			}
		}
	}
	if len(found) == 0 {
		return Set{domain.ObjectionNone}
	}
	return found
}

// Has reports whether the set contains category.
func (s Set) Has(category domain.Objection) bool {
	for _, o := range s {
		if o == category {
			return true
		}
	}
	return false
}

// IsNone reports whether no real objection was detected.
func (s Set) IsNone() bool {
	return len(s) == 0 || (len(s) == 1 && s[0] == domain.ObjectionNone)
}

// Strings returns the category names in set order.
func (s Set) Strings() []string {
	return domain.Strings([]domain.Objection(s))
}

// Keywords returns the keyword list for category, nil for unknown categories.
func Keywords(category domain.Objection) []string {
	for _, r := range rules {
		if r.category == category {
			out := make([]string, len(r.keywords))
			copy(out, r.keywords)
			return out
		}
	}
	return nil
}
