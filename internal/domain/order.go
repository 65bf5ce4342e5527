package domain

// OrderIndex maps a team id to the manually chosen display order of its members.
// A missing team id means the team has no explicit order yet.
//
// Methods never modify the receiver; each mutation returns a new index that
// shares untouched entries with the old one.
type OrderIndex map[string][]string

// Entry returns a copy of the stored order for teamID.
func (o OrderIndex) Entry(teamID string) ([]string, bool) {
	ids, ok := o[teamID]
	if !ok {
		return nil, false
	}
	return append([]string(nil), ids...), true
}

// Has reports whether teamID's entry lists personID.
func (o OrderIndex) Has(teamID, personID string) bool {
	for _, id := range o[teamID] {
		if id == personID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. A nil index clones to an empty one.
func (o OrderIndex) Clone() OrderIndex {
	out := make(OrderIndex, len(o))
	for teamID, ids := range o {
		out[teamID] = append([]string{}, ids...)
	}
	return out
}

// WithEntry returns an index where teamID's entry is replaced by ids.
func (o OrderIndex) WithEntry(teamID string, ids []string) OrderIndex {
	out := o.shallow()
	out[teamID] = append([]string{}, ids...)
	return out
}

// Without returns an index where personID is pruned from teamID's entry.
// Teams without an entry are left without one.
func (o OrderIndex) Without(teamID, personID string) OrderIndex {
	ids, ok := o[teamID]
	if !ok {
		return o
	}
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != personID {
			kept = append(kept, id)
		}
	}
	out := o.shallow()
	out[teamID] = kept
	return out
}

// Appended returns an index where personID is appended to teamID's entry,
// creating the entry if needed. Appending an id already listed is a no-op.
func (o OrderIndex) Appended(teamID, personID string) OrderIndex {
	if o.Has(teamID, personID) {
		return o
	}
	out := o.shallow()
	out[teamID] = append(append([]string{}, o[teamID]...), personID)
	return out
}

// Equal reports whether both indexes hold the same entries in the same order.
func (o OrderIndex) Equal(other OrderIndex) bool {
	if len(o) != len(other) {
		return false
	}
	for teamID, ids := range o {
		otherIDs, ok := other[teamID]
		if !ok || len(ids) != len(otherIDs) {
			return false
		}
		for i := range ids {
			if ids[i] != otherIDs[i] {
				return false
			}
		}
	}
	return true
}

func (o OrderIndex) shallow() OrderIndex {
	out := make(OrderIndex, len(o)+1)
	for teamID, ids := range o {
		out[teamID] = ids
	}
	return out
}
