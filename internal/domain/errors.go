package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyTeamName is returned when a team name is blank after trimming.
var ErrEmptyTeamName = errors.New("team name required")

// DuplicateTeamError reports a team name that already exists (case-insensitive).
type DuplicateTeamError struct {
	Name     string
	Existing Team
}

func (e *DuplicateTeamError) Error() string {
	return fmt.Sprintf("Team %q already exists.", e.Name)
}

// InvalidFormatError reports an import payload that does not match the snapshot schema.
type InvalidFormatError struct {
	Reason string
	Err    error
}

func (e *InvalidFormatError) Error() string {
	msg := "Invalid file format. Expected { people: [], teams: [] }."
	if e.Reason != "" {
		msg += " " + e.Reason
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// IndexOutOfRangeError reports a reorder index outside the team's effective order.
type IndexOutOfRangeError struct {
	TeamID string
	From   int
	To     int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("reorder %d->%d out of range for team %s (length %d)", e.From, e.To, e.TeamID, e.Length)
}
