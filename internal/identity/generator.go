// Package identity produces identifiers for people and teams.
package identity

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Generator yields unique, stable identifiers.
type Generator interface {
	PersonID() string
	TeamID(name string) string
}

var whitespace = regexp.MustCompile(`\s+`)

// UUIDGenerator builds ids from random UUIDs, prefixed by entity kind.
type UUIDGenerator struct{}

// NewUUIDGenerator returns the default generator.
func NewUUIDGenerator() UUIDGenerator {
	return UUIDGenerator{}
}

// PersonID returns "person-<uuid>".
func (UUIDGenerator) PersonID() string {
	return "person-" + uuid.NewString()
}

// TeamID returns "team-<slug>-<uuid>" where slug is the name with whitespace runs dashed.
func (UUIDGenerator) TeamID(name string) string {
	slug := whitespace.ReplaceAllString(strings.TrimSpace(name), "-")
	if slug == "" {
		return "team-" + uuid.NewString()
	}
	return "team-" + slug + "-" + uuid.NewString()
}
