package dto

import (
	"time"

	"github.com/spec-kit/team-organiser/internal/domain"
	"github.com/spec-kit/team-organiser/internal/roster"
)

// PersonResponse is one roster entry.
type PersonResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	TeamID *string `json:"teamId"`
}

// TeamResponse is a team with its members in display order.
type TeamResponse struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Members []PersonResponse `json:"members"`
}

// RosterResponse is the board: every team plus the unassigned pool.
type RosterResponse struct {
	Teams      []TeamResponse   `json:"teams"`
	Unassigned []PersonResponse `json:"unassigned"`
}

// IngestCSVRequest payload.
type IngestCSVRequest struct {
	Text string `json:"text"`
}

// CreateTeamRequest payload.
type CreateTeamRequest struct {
	Name string `json:"name"`
}

// BeginDragRequest payload.
type BeginDragRequest struct {
	PersonID string `json:"personId"`
}

// DropRequest payload. SourceTeamID is empty when dragged from the unassigned pool.
type DropRequest struct {
	PersonID     string `json:"personId"`
	TargetTeamID string `json:"targetTeamId"`
	SourceTeamID string `json:"sourceTeamId"`
}

// ReorderRequest payload.
type ReorderRequest struct {
	TeamID    string `json:"teamId"`
	FromIndex *int   `json:"fromIndex"`
	ToIndex   *int   `json:"toIndex"`
}

// MutationResponse reports whether a request changed the roster.
type MutationResponse struct {
	Changed bool           `json:"changed"`
	Roster  RosterResponse `json:"roster"`
}

// LoginRequest payload.
type LoginRequest struct {
	Passphrase string `json:"passphrase"`
}

// LoginResponse returns the bearer token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// StagedImportResponse describes an import awaiting confirmation.
type StagedImportResponse struct {
	Token         string    `json:"token"`
	ExpiresAt     time.Time `json:"expires_at"`
	Prompt        string    `json:"prompt"`
	People        int       `json:"people"`
	Teams         int       `json:"teams"`
	Reconstructed bool      `json:"reconstructed"`
}

// ImportResultResponse is returned once an import is applied.
type ImportResultResponse struct {
	Message       string `json:"message"`
	People        int    `json:"people"`
	Teams         int    `json:"teams"`
	Reconstructed bool   `json:"reconstructed"`
}

// NewPersonResponse maps a domain person.
func NewPersonResponse(p domain.Person) PersonResponse {
	return PersonResponse{ID: p.ID, Name: p.Name, Role: p.Role, TeamID: p.TeamID}
}

// NewPeopleResponse maps a slice of people, never returning nil.
func NewPeopleResponse(people []domain.Person) []PersonResponse {
	out := make([]PersonResponse, 0, len(people))
	for _, p := range people {
		out = append(out, NewPersonResponse(p))
	}
	return out
}

// NewTeamResponse maps a team and its effective member order.
func NewTeamResponse(state roster.State, team domain.Team) TeamResponse {
	return TeamResponse{
		ID:      team.ID,
		Name:    team.Name,
		Members: NewPeopleResponse(state.EffectiveMembers(team.ID)),
	}
}

// NewRosterResponse renders the whole board.
func NewRosterResponse(state roster.State) RosterResponse {
	teams := state.Teams()
	resp := RosterResponse{
		Teams:      make([]TeamResponse, 0, len(teams)),
		Unassigned: NewPeopleResponse(state.Unassigned()),
	}
	for _, team := range teams {
		resp.Teams = append(resp.Teams, NewTeamResponse(state, team))
	}
	return resp
}
