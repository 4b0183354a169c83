// Package scoring ranks leads and derives the recommended sales action.
// Everything here is a pure function of its inputs.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"leadscout_backend/internal/leads/domain"
)

const (
	// Leads start at 50 and rule impacts add or subtract from this.
	baseScore = 50

	// ExplanationSize is how many factors are surfaced as explanation strings.
	ExplanationSize = 3
)

// Factor is one triggered scoring rule.
type Factor struct {
	Name   string `json:"name"`
	Impact int    `json:"impact"`
	Reason string `json:"reason"`
}

// Result holds the clamped score and every triggered factor ordered by
// descending absolute impact.
type Result struct {
	BaseScore int      `json:"baseScore"`
	Factors   []Factor `json:"factors"`
}

// rule inspects one aspect of the lead. It returns ok=false when it does not apply.
type rule func(lead domain.Lead) (Factor, bool)

// rules are independent; order only breaks ties between equal impacts.
var rules = []rule{
	billRule,
	roofRule,
	evRule,
	heatingRule,
	intentRule,
	consumptionRule,
	segmentRule,
	channelRule,
}

var strongSignals = []domain.IntentSignal{
	domain.SignalVisitedConfigurator,
	domain.SignalRequestedCallBack,
	domain.SignalAskedAboutGreenDeduction,
}

var referralTierChannels = map[domain.Channel]struct{}{
	domain.ChannelHemsol:   {},
	domain.ChannelReferral: {},
}

func billRule(l domain.Lead) (Factor, bool) {
	switch {
	case l.MonthlyBillSek > 2000:
		return Factor{
			Name:   "Hög elräkning",
			Impact: min(20, (l.MonthlyBillSek-2000)/100),
			Reason: fmt.Sprintf("%d kr/månad ger stor besparingspotential", l.MonthlyBillSek),
		}, true
	case l.MonthlyBillSek < 800:
		return Factor{Name: "Låg elräkning", Impact: -10, Reason: "Begränsad besparingspotential"}, true
	}
	return Factor{}, false
}

func roofRule(l domain.Lead) (Factor, bool) {
	switch {
	case l.RoofAreaM2 > 80:
		return Factor{
			Name:   "Stor takyta",
			Impact: 15,
			Reason: fmt.Sprintf("%d m² ger plats för optimal solcellsanläggning", l.RoofAreaM2),
		}, true
	case l.RoofAreaM2 < 40:
		return Factor{Name: "Liten takyta", Impact: -10, Reason: "Begränsat utrymme för solceller"}, true
	}
	return Factor{}, false
}

func evRule(l domain.Lead) (Factor, bool) {
	if !l.HasEV {
		return Factor{}, false
	}
	return Factor{Name: "Elbilsägare", Impact: 15, Reason: "Ökad elbehov och högre ROI på solceller + batteri"}, true
}

func heatingRule(l domain.Lead) (Factor, bool) {
	switch l.HeatingType {
	case domain.HeatingDirectElectric:
		return Factor{Name: "Direktverkande el", Impact: 12, Reason: "Hög elanvändning för uppvärmning"}, true
	case domain.HeatingHeatPump:
		return Factor{Name: "Värmepump", Impact: 8, Reason: "Bra kompatibilitet med solceller"}, true
	}
	return Factor{}, false
}

func intentRule(l domain.Lead) (Factor, bool) {
	var matched []string
	for _, s := range domain.UniqueSignals(l.IntentSignals) {
		for _, strong := range strongSignals {
			if s == strong {
				matched = append(matched, string(s))
			}
		}
	}
	if len(matched) == 0 {
		return Factor{}, false
	}
	return Factor{
		Name:   "Starka köpsignaler",
		Impact: len(matched) * 8,
		Reason: fmt.Sprintf("%d intentionssignaler (%s)", len(matched), strings.Join(matched, ", ")),
	}, true
}

func consumptionRule(l domain.Lead) (Factor, bool) {
	if l.AnnualKwh <= 20000 {
		return Factor{}, false
	}
	return Factor{
		Name:   "Hög årskonsumtion",
		Impact: 10,
		Reason: fmt.Sprintf("%d kWh/år är över genomsnittet", l.AnnualKwh),
	}, true
}

func segmentRule(l domain.Lead) (Factor, bool) {
	if l.Segment != domain.SegmentVilla {
		return Factor{}, false
	}
	return Factor{Name: "Ideal kundsegment", Impact: 5, Reason: "Villaägare är vår kärnmålgrupp"}, true
}

func channelRule(l domain.Lead) (Factor, bool) {
	if _, ok := referralTierChannels[l.Channel]; !ok {
		return Factor{}, false
	}
	return Factor{
		Name:   "Högkvalitativ kanal",
		Impact: 8,
		Reason: fmt.Sprintf("%s genererar ofta kvalificerade leads", l.Channel),
	}, true
}

// Calculate scores a lead: base 50 plus every triggered rule impact,
// clamped to [0,100].
func Calculate(lead domain.Lead) Result {
	factors := make([]Factor, 0, len(rules))
	for _, r := range rules {
		if f, ok := r(lead); ok {
			factors = append(factors, f)
		}
	}

	total := baseScore
	for _, f := range factors {
		total += f.Impact
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return abs(factors[i].Impact) > abs(factors[j].Impact)
	})

	return Result{BaseScore: clampScore(total), Factors: factors}
}

// Explain renders the most impactful factors as "name: reason".
func Explain(result Result) []string {
	n := min(ExplanationSize, len(result.Factors))
	out := make([]string, 0, n)
	for _, f := range result.Factors[:n] {
		out = append(out, f.Name+": "+f.Reason)
	}
	return out
}

func clampScore(score int) int {
	return max(0, min(100, score))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
