package domain

// Person is a roster entry. TeamID is nil while the person is unassigned.
type Person struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Role   string  `json:"role"`
	TeamID *string `json:"teamId"`
}

// Assigned reports whether the person belongs to any team.
func (p Person) Assigned() bool {
	return p.TeamID != nil && *p.TeamID != ""
}

// InTeam reports whether the person currently belongs to teamID.
func (p Person) InTeam(teamID string) bool {
	return p.TeamID != nil && *p.TeamID == teamID
}

// CurrentTeam returns the team id or "" when unassigned.
func (p Person) CurrentTeam() string {
	if p.TeamID == nil {
		return ""
	}
	return *p.TeamID
}

// WithTeam returns a copy of the person assigned to teamID; "" unassigns.
func (p Person) WithTeam(teamID string) Person {
	if teamID == "" {
		p.TeamID = nil
		return p
	}
	id := teamID
	p.TeamID = &id
	return p
}

// Key identifies a person by visible name and role for deduplication.
func (p Person) Key() PersonKey {
	return PersonKey{Name: p.Name, Role: p.Role}
}

// PersonKey is the (name, role) pair used to reject duplicate ingestion.
type PersonKey struct {
	Name string
	Role string
}
