package domain

// Snapshot is the complete exportable state.
type Snapshot struct {
	People          []Person   `json:"people"`
	Teams           []Team     `json:"teams"`
	TeamMemberOrder OrderIndex `json:"teamMemberOrder"`
}
