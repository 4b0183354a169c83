package scoring

import (
	"math"
	"time"

	"leadscout_backend/internal/leads/domain"
)

const (
	hotThreshold  = 75
	warmThreshold = 55

	// neverTouchedDays stands in for the age of a lead nobody has contacted.
	neverTouchedDays  = 999
	offerFollowUpDays = 3
	contactedHotScore = 70
)

// Recommended actions keyed by pipeline situation.
const (
	ActionCallBackRequested = "Ring inom 2 timmar - lead har begärt återkoppling"
	ActionConfiguratorVisit = "Ring och följ upp konfiguratorbesök - lead är aktivt intresserad"
	ActionWelcomeEmail      = "Skicka välkomstmail med mer info och boka uppföljningssamtal"
	ActionBookSiteVisit     = "Boka platsbesiktning omgående - högprioriterad lead"
	ActionDetailedEstimate  = "Följ upp med detaljerad kalkyl via email"
	ActionPrepareSiteVisit  = "Förbered platsbesiktning - kontrollera takritningar och elförbrukning"
	ActionSendOffer         = "Skicka offert inom 24h medan intresset är varmt"
	ActionFollowUpOffer     = "Ring och följ upp offert - har de frågor?"
	ActionWaitThenRemind    = "Vänta ytterligare 2 dagar, skicka sedan påminnelse-SMS"
	ActionBookInstallation  = "Boka installationsdatum och skicka bekräftelse"
	ActionNurture           = "Lägg i nurture-kampanj, följ upp om 6 månader"
	ActionReview            = "Granska lead och uppdatera status"
)

// Status maps a score to its priority tier. Lower bounds are inclusive.
func Status(score int) domain.Status {
	switch {
	case score >= hotThreshold:
		return domain.StatusHot
	case score >= warmThreshold:
		return domain.StatusWarm
	default:
		return domain.StatusCold
	}
}

// NextBestAction picks the recommended action for the lead's stage. now is
// only consulted for offer_sent leads.
func NextBestAction(lead domain.Lead, now time.Time) string {
	switch lead.Stage {
	case domain.StageNew:
		if lead.HasSignal(domain.SignalRequestedCallBack) {
			return ActionCallBackRequested
		}
		if lead.HasSignal(domain.SignalVisitedConfigurator) {
			return ActionConfiguratorVisit
		}
		return ActionWelcomeEmail
	case domain.StageContacted:
		if lead.LeadScore > contactedHotScore {
			return ActionBookSiteVisit
		}
		return ActionDetailedEstimate
	case domain.StageMeetingBooked:
		return ActionPrepareSiteVisit
	case domain.StageSiteVisit:
		return ActionSendOffer
	case domain.StageOfferSent:
		if DaysSinceTouch(lead, now) > offerFollowUpDays {
			return ActionFollowUpOffer
		}
		return ActionWaitThenRemind
	case domain.StageSigned:
		return ActionBookInstallation
	case domain.StageLost:
		return ActionNurture
	default:
		return ActionReview
	}
}

// DaysSinceTouch returns whole days elapsed since the last touch, or 999
// when the lead was never touched.
func DaysSinceTouch(lead domain.Lead, now time.Time) int {
	if lead.LastTouchAt == nil {
		return neverTouchedDays
	}
	return int(math.Floor(now.Sub(*lead.LastTouchAt).Hours() / 24))
}

// Apply returns a copy of lead with score, status, explanation and next best
// action recomputed. Stage is never changed.
func Apply(lead domain.Lead, now time.Time) (domain.Lead, Result) {
	result := Calculate(lead)
	out := lead
	out.IntentSignals = domain.UniqueSignals(lead.IntentSignals)
	out.LeadScore = result.BaseScore
	out.Status = Status(result.BaseScore)
	out.ScoreExplanation = Explain(result)
	out.NextBestAction = NextBestAction(out, now)
	return out, result
}
