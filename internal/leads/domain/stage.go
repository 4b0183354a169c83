package domain

// Stage is the position of a lead in the sales pipeline.
type Stage string

const (
	StageNew           Stage = "new"
	StageContacted     Stage = "contacted"
	StageMeetingBooked Stage = "meeting_booked"
	StageSiteVisit     Stage = "site_visit"
	StageOfferSent     Stage = "offer_sent"
	StageSigned        Stage = "signed"
	StageInstalled     Stage = "installed"
	StageLost          Stage = "lost"
)

// Stages lists every stage in funnel order, lost last.
var Stages = []Stage{
	StageNew,
	StageContacted,
	StageMeetingBooked,
	StageSiteVisit,
	StageOfferSent,
	StageSigned,
	StageInstalled,
	StageLost,
}

var stageOrder = map[Stage]int{
	StageNew:           0,
	StageContacted:     1,
	StageMeetingBooked: 2,
	StageSiteVisit:     3,
	StageOfferSent:     4,
	StageSigned:        5,
	StageInstalled:     6,
}

func IsKnownStage(stage Stage) bool {
	if stage == StageLost {
		return true
	}
	_, ok := stageOrder[stage]
	return ok
}

// IsTerminal reports whether no further transition is allowed.
func IsTerminal(stage Stage) bool {
	return stage == StageInstalled || stage == StageLost
}

// IsOpen reports whether the lead still needs sales work. Signed leads are
// closed for sales even though installation is pending.
func IsOpen(stage Stage) bool {
	return stage != StageSigned && !IsTerminal(stage)
}

// ClosedStages are the stages IsOpen rejects.
var ClosedStages = []Stage{StageSigned, StageInstalled, StageLost}

// CanTransition reports whether a lead may move from one stage to another.
// Moves go forward only, or to lost from any non-terminal stage. Staying in
// place is allowed.
func CanTransition(from, to Stage) bool {
	if from == to {
		return IsKnownStage(to)
	}
	if IsTerminal(from) || !IsKnownStage(from) {
		return false
	}
	if to == StageLost {
		return true
	}
	toIdx, ok := stageOrder[to]
	if !ok {
		return false
	}
	return toIdx > stageOrder[from]
}
