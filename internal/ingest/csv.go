// Package ingest turns pasted "name,role" lines into candidate roster entries.
package ingest

import (
	"strings"

	"github.com/spec-kit/team-organiser/internal/domain"
	"github.com/spec-kit/team-organiser/internal/identity"
)

// DefaultDelimiter separates name from role.
const DefaultDelimiter = ','

// Options control parsing and deduplication.
type Options struct {
	Delimiter rune
	// DedupeWithinBatch keeps only the first of identical (name, role) lines in one paste.
	DedupeWithinBatch bool
}

// Parser converts raw text into candidate people.
type Parser struct {
	opts Options
	ids  identity.Generator
}

// NewParser builds a parser. A zero delimiter falls back to DefaultDelimiter.
func NewParser(opts Options, ids identity.Generator) *Parser {
	if opts.Delimiter == 0 {
		opts.Delimiter = DefaultDelimiter
	}
	return &Parser{opts: opts, ids: ids}
}

// Parse splits text into lines and returns one unassigned candidate per valid line.
// Lines with fewer than two fields or a blank name or role are skipped.
func (p *Parser) Parse(text string) []domain.Person {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	candidates := make([]domain.Person, 0, len(lines))
	seen := map[domain.PersonKey]bool{}
	for _, line := range lines {
		name, role, ok := p.splitLine(line)
		if !ok {
			continue
		}
		key := domain.PersonKey{Name: name, Role: role}
		if p.opts.DedupeWithinBatch {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		candidates = append(candidates, domain.Person{
			ID:   p.ids.PersonID(),
			Name: name,
			Role: role,
		})
	}
	return candidates
}

func (p *Parser) splitLine(line string) (string, string, bool) {
	parts := strings.Split(line, string(p.opts.Delimiter))
	if len(parts) < 2 {
		return "", "", false
	}
	name := strings.TrimSpace(parts[0])
	role := strings.TrimSpace(parts[1])
	if name == "" || role == "" {
		return "", "", false
	}
	return name, role, true
}

// Dedupe drops candidates whose (name, role) already exists in roster.
// Candidates are not compared with each other.
func Dedupe(roster, candidates []domain.Person) []domain.Person {
	existing := make(map[domain.PersonKey]struct{}, len(roster))
	for _, person := range roster {
		existing[person.Key()] = struct{}{}
	}
	accepted := make([]domain.Person, 0, len(candidates))
	for _, candidate := range candidates {
		if _, dup := existing[candidate.Key()]; dup {
			continue
		}
		candidate.TeamID = nil
		accepted = append(accepted, candidate)
	}
	return accepted
}
