package events

import (
	"leadscout_backend/platform/events"
)

// Bus plumbing lives in platform/events.
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

var NewBaseEvent = events.NewBaseEvent

// Keyed is implemented by events that belong to a single lead. Exporters use
// the key to keep per-lead ordering.
type Keyed interface {
	PartitionKey() string
}

const (
	LeadCreatedName         = "leads.lead.created"
	InteractionRecordedName = "leads.interaction.recorded"
	LeadStageChangedName    = "leads.stage.changed"
)

// Names lists every leads event, for subscribers that forward all of them.
var Names = []string{LeadCreatedName, InteractionRecordedName, LeadStageChangedName}

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCreated is published when a lead is stored, manually or via the configurator.
type LeadCreated struct {
	BaseEvent
	LeadID    string `json:"leadId"`
	Channel   string `json:"channel"`
	Segment   string `json:"segment"`
	Region    string `json:"region"`
	LeadScore int    `json:"leadScore"`
	Status    string `json:"status"`
	Source    string `json:"source"`
}

func (e LeadCreated) EventName() string    { return LeadCreatedName }
func (e LeadCreated) PartitionKey() string { return e.LeadID }

// InteractionRecorded is published after notes were analysed and stored.
type InteractionRecorded struct {
	BaseEvent
	LeadID        string   `json:"leadId"`
	InteractionID string   `json:"interactionId"`
	Type          string   `json:"type"`
	Objections    []string `json:"objections"`
	TextSource    string   `json:"textSource"`
}

func (e InteractionRecorded) EventName() string    { return InteractionRecordedName }
func (e InteractionRecorded) PartitionKey() string { return e.LeadID }

// LeadStageChanged is published when a lead moves in the pipeline.
type LeadStageChanged struct {
	BaseEvent
	LeadID   string `json:"leadId"`
	OldStage string `json:"oldStage"`
	NewStage string `json:"newStage"`
	Reason   string `json:"reason"`
}

func (e LeadStageChanged) EventName() string    { return LeadStageChangedName }
func (e LeadStageChanged) PartitionKey() string { return e.LeadID }
