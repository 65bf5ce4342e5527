// Package snapshot encodes the roster state to the exchange JSON format and
// decodes it back, rebuilding the order index for files that predate it.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spec-kit/team-organiser/internal/domain"
	"github.com/spec-kit/team-organiser/internal/roster"
)

// Export renders the state as pretty-printed JSON. teamMemberOrder is always present.
func Export(state roster.State) ([]byte, error) {
	snap := state.Snapshot()
	if snap.People == nil {
		snap.People = []domain.Person{}
	}
	if snap.Teams == nil {
		snap.Teams = []domain.Team{}
	}
	if snap.TeamMemberOrder == nil {
		snap.TeamMemberOrder = domain.OrderIndex{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Filename returns the conventional export file name for the given day.
func Filename(now time.Time) string {
	return fmt.Sprintf("team-organiser-data-%s.json", now.Format("2006-01-02"))
}

// Decoded is a validated import payload.
type Decoded struct {
	Snapshot domain.Snapshot
	// Reconstructed is true when the payload had no teamMemberOrder and the
	// order index was rebuilt from people.
	Reconstructed bool
}

// wireSnapshot mirrors the file layout; raw fields let us tell missing,
// null and wrongly typed values apart.
type wireSnapshot struct {
	People          json.RawMessage `json:"people"`
	Teams           json.RawMessage `json:"teams"`
	TeamMemberOrder json.RawMessage `json:"teamMemberOrder"`
}

// Decode validates data against the snapshot schema. Any structural problem
// yields a *domain.InvalidFormatError.
func Decode(data []byte) (Decoded, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Decoded{}, &domain.InvalidFormatError{Reason: "payload must be a JSON object"}
	}
	var wire wireSnapshot
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return Decoded{}, &domain.InvalidFormatError{Err: err}
	}
	if !isKind(wire.People, '[') {
		return Decoded{}, &domain.InvalidFormatError{Reason: "people must be an array"}
	}
	if !isKind(wire.Teams, '[') {
		return Decoded{}, &domain.InvalidFormatError{Reason: "teams must be an array"}
	}

	var out Decoded
	if err := json.Unmarshal(wire.People, &out.Snapshot.People); err != nil {
		return Decoded{}, &domain.InvalidFormatError{Reason: "malformed person entry", Err: err}
	}
	if err := json.Unmarshal(wire.Teams, &out.Snapshot.Teams); err != nil {
		return Decoded{}, &domain.InvalidFormatError{Reason: "malformed team entry", Err: err}
	}

	switch {
	case isAbsent(wire.TeamMemberOrder):
		out.Snapshot.TeamMemberOrder = roster.ReconstructOrder(out.Snapshot.People)
		out.Reconstructed = true
	case isKind(wire.TeamMemberOrder, '{'):
		if err := json.Unmarshal(wire.TeamMemberOrder, &out.Snapshot.TeamMemberOrder); err != nil {
			return Decoded{}, &domain.InvalidFormatError{Reason: "teamMemberOrder must map team ids to id arrays", Err: err}
		}
	default:
		return Decoded{}, &domain.InvalidFormatError{Reason: "teamMemberOrder must be an object"}
	}
	return out, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func isKind(raw json.RawMessage, open byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == open
}
