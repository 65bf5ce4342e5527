package domain

import "strings"

// Team is a named group people can be dropped into.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NameMatches compares team names case-insensitively after trimming.
func (t Team) NameMatches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(t.Name), strings.TrimSpace(name))
}
