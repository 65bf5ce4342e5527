package events

import (
	"time"

	"github.com/spec-kit/team-organiser/internal/roster"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPeopleIngested   EventType = "people_ingested"
	EventTeamCreated      EventType = "team_created"
	EventDragStarted      EventType = "drag_started"
	EventPersonAssigned   EventType = "person_assigned"
	EventPersonUnassigned EventType = "person_unassigned"
	EventTeamReordered    EventType = "team_reordered"
	EventSnapshotImported EventType = "snapshot_imported"
)

// Event represents a roster change emitted by the organiser service. State is
// the roster after the change and Changed names the slices that differ from
// the previous state; informational events carry roster.SliceNone.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Payload   interface{}  `json:"payload"`
	Changed   roster.Slice `json:"-"`
	State     roster.State `json:"-"`
}

// PeopleIngestedPayload payload.
type PeopleIngestedPayload struct {
	Parsed int `json:"parsed"`
	Added  int `json:"added"`
}

// TeamCreatedPayload payload.
type TeamCreatedPayload struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
}

// DragStartedPayload payload.
type DragStartedPayload struct {
	PersonID string `json:"person_id"`
}

// PersonAssignedPayload payload.
type PersonAssignedPayload struct {
	PersonID     string `json:"person_id"`
	TeamID       string `json:"team_id"`
	SourceTeamID string `json:"source_team_id,omitempty"`
}

// PersonUnassignedPayload payload.
type PersonUnassignedPayload struct {
	PersonID string `json:"person_id"`
	TeamID   string `json:"team_id"`
}

// TeamReorderedPayload payload.
type TeamReorderedPayload struct {
	TeamID    string `json:"team_id"`
	FromIndex int    `json:"from_index"`
	ToIndex   int    `json:"to_index"`
}

// SnapshotImportedPayload payload.
type SnapshotImportedPayload struct {
	People        int  `json:"people"`
	Teams         int  `json:"teams"`
	Reconstructed bool `json:"reconstructed"`
}
