// Package tui is the terminal board: one column for unassigned people and one
// per team. People are picked up with space and dropped with enter.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spec-kit/team-organiser/internal/domain"
	"github.com/spec-kit/team-organiser/internal/roster"
)

// Organiser is the subset of the organiser service the board drives.
type Organiser interface {
	State() roster.State
	IngestCSV(ctx context.Context, text string) ([]domain.Person, error)
	CreateTeam(ctx context.Context, name string) (domain.Team, error)
	BeginDrag(ctx context.Context, personID string) error
	CompleteDrop(ctx context.Context, personID, targetTeamID, sourceTeamID string) (bool, error)
	RemoveFromTeam(ctx context.Context, personID string) (bool, error)
	CompleteReorder(ctx context.Context, teamID string, from, to int) (bool, error)
}

type inputMode int

const (
	modeBoard inputMode = iota
	modeTeamName
	modeCSV
)

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			Width(28)
	activeColumnStyle = columnStyle.BorderForeground(lipgloss.Color("#5B8DEF"))
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	cursorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F7B801"))
	heldStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	roleStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
)

type held struct {
	personID string
	sourceID string
}

// Board is the bubbletea model.
type Board struct {
	ctx       context.Context
	organiser Organiser

	col, row int
	holding  *held

	mode   inputMode
	input  textinput.Model
	status string
	err    string

	width int
}

// NewBoard builds a board over organiser.
func NewBoard(ctx context.Context, organiser Organiser) *Board {
	input := textinput.New()
	input.CharLimit = 256
	return &Board{ctx: ctx, organiser: organiser, input: input}
}

// Init implements tea.Model.
func (b *Board) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		return b, nil
	case tea.KeyMsg:
		if b.mode != modeBoard {
			return b.updateInput(msg)
		}
		return b.updateBoard(msg)
	}
	return b, nil
}

func (b *Board) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b.err = ""
	switch msg.String() {
	case "ctrl+c", "q":
		return b, tea.Quit
	case "left", "h":
		b.moveColumn(-1)
	case "right", "l":
		b.moveColumn(1)
	case "up", "k":
		b.moveRow(-1)
	case "down", "j":
		b.moveRow(1)
	case " ", "space":
		b.pickUp()
	case "enter":
		b.drop()
	case "esc":
		b.holding = nil
		b.status = ""
	case "K":
		b.reorder(-1)
	case "J":
		b.reorder(1)
	case "x":
		b.remove()
	case "t":
		return b, b.openInput(modeTeamName, "Team name")
	case "p":
		return b, b.openInput(modeCSV, "Name,Role")
	}
	return b, nil
}

func (b *Board) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		b.closeInput()
		return b, nil
	case tea.KeyEnter:
		value := b.input.Value()
		mode := b.mode
		b.closeInput()
		b.submit(mode, value)
		return b, nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *Board) openInput(mode inputMode, placeholder string) tea.Cmd {
	b.mode = mode
	b.input.Reset()
	b.input.Placeholder = placeholder
	return b.input.Focus()
}

func (b *Board) closeInput() {
	b.mode = modeBoard
	b.input.Blur()
	b.input.Reset()
}

func (b *Board) submit(mode inputMode, value string) {
	switch mode {
	case modeTeamName:
		team, err := b.organiser.CreateTeam(b.ctx, value)
		if err != nil {
			b.showError(err)
			return
		}
		b.status = fmt.Sprintf("Created team %s", team.Name)
	case modeCSV:
		added, err := b.organiser.IngestCSV(b.ctx, value)
		if err != nil {
			b.showError(err)
			return
		}
		b.status = fmt.Sprintf("Added %d people", len(added))
	}
}

// column is a rendered column: teamID "" is the unassigned pool.
type column struct {
	teamID string
	title  string
	people []domain.Person
}

func (b *Board) columns() []column {
	state := b.organiser.State()
	cols := []column{{title: "Unassigned", people: state.Unassigned()}}
	for _, team := range state.Teams() {
		cols = append(cols, column{teamID: team.ID, title: team.Name, people: state.EffectiveMembers(team.ID)})
	}
	return cols
}

func (b *Board) selected() (column, *domain.Person) {
	cols := b.columns()
	b.clamp(cols)
	col := cols[b.col]
	if b.row < len(col.people) {
		return col, &col.people[b.row]
	}
	return col, nil
}

func (b *Board) clamp(cols []column) {
	if b.col >= len(cols) {
		b.col = len(cols) - 1
	}
	if b.col < 0 {
		b.col = 0
	}
	n := len(cols[b.col].people)
	if b.row >= n {
		b.row = n - 1
	}
	if b.row < 0 {
		b.row = 0
	}
}

func (b *Board) moveColumn(delta int) {
	b.col += delta
	b.clamp(b.columns())
}

func (b *Board) moveRow(delta int) {
	b.row += delta
	b.clamp(b.columns())
}

func (b *Board) pickUp() {
	col, person := b.selected()
	if person == nil {
		return
	}
	if err := b.organiser.BeginDrag(b.ctx, person.ID); err != nil {
		b.showError(err)
		return
	}
	b.holding = &held{personID: person.ID, sourceID: col.teamID}
	b.status = fmt.Sprintf("Moving %s", person.Name)
}

func (b *Board) drop() {
	if b.holding == nil {
		return
	}
	h := *b.holding
	b.holding = nil
	b.status = ""
	col, _ := b.selected()

	var err error
	if col.teamID == "" {
		_, err = b.organiser.RemoveFromTeam(b.ctx, h.personID)
	} else {
		_, err = b.organiser.CompleteDrop(b.ctx, h.personID, col.teamID, h.sourceID)
	}
	if err != nil {
		b.showError(err)
		return
	}
	b.focusPerson(h.personID)
}

func (b *Board) reorder(delta int) {
	col, person := b.selected()
	if col.teamID == "" || person == nil {
		return
	}
	changed, err := b.organiser.CompleteReorder(b.ctx, col.teamID, b.row, b.row+delta)
	if err != nil {
		b.showError(err)
		return
	}
	if changed {
		b.row += delta
	}
}

func (b *Board) remove() {
	col, person := b.selected()
	if col.teamID == "" || person == nil {
		return
	}
	if _, err := b.organiser.RemoveFromTeam(b.ctx, person.ID); err != nil {
		b.showError(err)
		return
	}
	b.clamp(b.columns())
}

func (b *Board) focusPerson(personID string) {
	for ci, col := range b.columns() {
		for ri, p := range col.people {
			if p.ID == personID {
				b.col, b.row = ci, ri
				return
			}
		}
	}
}

// showError surfaces err in the status line. Reorders past either end of a
// team are ignored silently.
func (b *Board) showError(err error) {
	var outOfRange *domain.IndexOutOfRangeError
	if errors.As(err, &outOfRange) {
		return
	}
	b.err = err.Error()
}

// View implements tea.Model.
func (b *Board) View() string {
	cols := b.columns()
	b.clamp(cols)

	rendered := make([]string, 0, len(cols))
	for ci, col := range cols {
		rendered = append(rendered, b.renderColumn(ci, col))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	var footer []string
	switch b.mode {
	case modeTeamName, modeCSV:
		footer = append(footer, b.input.View())
	default:
		footer = append(footer, hintStyle.Render("←/→ column · ↑/↓ person · space pick up · enter drop · K/J reorder · x remove · t team · p person · q quit"))
	}
	if b.err != "" {
		footer = append(footer, errorStyle.Render(b.err))
	} else if b.status != "" {
		footer = append(footer, b.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, strings.Join(footer, "\n"))
}

func (b *Board) renderColumn(ci int, col column) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("%s (%d)", col.title, len(col.people)))}
	for ri, p := range col.people {
		label := fmt.Sprintf("%s %s", p.Name, roleStyle.Render(p.Role))
		switch {
		case b.holding != nil && b.holding.personID == p.ID:
			label = heldStyle.Render("» ") + label
		case ci == b.col && ri == b.row:
			label = cursorStyle.Render("> ") + label
		default:
			label = "  " + label
		}
		lines = append(lines, label)
	}
	style := columnStyle
	if ci == b.col {
		style = activeColumnStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}
