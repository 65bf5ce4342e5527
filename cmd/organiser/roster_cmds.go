package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spec-kit/team-organiser/internal/domain"
	"github.com/spec-kit/team-organiser/internal/roster"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print teams in display order and the unassigned pool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printBoard(cmd.OutOrStdout(), a.rt.Organiser.State())
			return nil
		},
	}
}

func printBoard(w io.Writer, state roster.State) {
	for _, team := range state.Teams() {
		members := state.EffectiveMembers(team.ID)
		fmt.Fprintf(w, "%s [%s] (%d)\n", team.Name, team.ID, len(members))
		for i, p := range members {
			fmt.Fprintf(w, "  %d. %s (%s) [%s]\n", i, p.Name, p.Role, p.ID)
		}
	}
	unassigned := state.Unassigned()
	fmt.Fprintf(w, "Unassigned (%d)\n", len(unassigned))
	for _, p := range unassigned {
		fmt.Fprintf(w, "  - %s (%s) [%s]\n", p.Name, p.Role, p.ID)
	}
}

func newIngestCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Add people from name,role lines read from --file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				data []byte
				err  error
			)
			if file == "" || file == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(file)
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			added, err := a.rt.Organiser.IngestCSV(cmd.Context(), string(data))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d people\n", len(added))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file (default: stdin)")
	return cmd
}

func newTeamCmd(a *app) *cobra.Command {
	team := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}
	team.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Create a team",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := a.rt.Organiser.CreateTeam(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created team %s [%s]\n", created.Name, created.ID)
			return nil
		},
	})
	return team
}

func newAssignCmd(a *app) *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "assign PERSON TEAM",
		Short: "Move a person into a team (by id or name)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.rt.Organiser.State()
			person, err := resolvePerson(state, args[0])
			if err != nil {
				return err
			}
			target, err := resolveTeam(state, args[1])
			if err != nil {
				return err
			}
			source := person.CurrentTeam()
			if cmd.Flags().Changed("from") {
				source = ""
				if from != "" {
					team, err := resolveTeam(state, from)
					if err != nil {
						return err
					}
					source = team.ID
				}
			}
			changed, err := a.rt.Organiser.CompleteDrop(cmd.Context(), person.ID, target.ID, source)
			if err != nil {
				return err
			}
			reportChange(cmd, changed, fmt.Sprintf("%s is now in %s", person.Name, target.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Team the person is dragged from (default: current team)")
	return cmd
}

func newUnassignCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign PERSON",
		Short: "Return a person to the unassigned pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			person, err := resolvePerson(a.rt.Organiser.State(), args[0])
			if err != nil {
				return err
			}
			changed, err := a.rt.Organiser.RemoveFromTeam(cmd.Context(), person.ID)
			if err != nil {
				return err
			}
			reportChange(cmd, changed, fmt.Sprintf("%s is unassigned", person.Name))
			return nil
		},
	}
}

func newReorderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder TEAM FROM TO",
		Short: "Move the member at index FROM to index TO",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			team, err := resolveTeam(a.rt.Organiser.State(), args[0])
			if err != nil {
				return err
			}
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return withCode(exitUsage, fmt.Errorf("invalid FROM %q", args[1]))
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return withCode(exitUsage, fmt.Errorf("invalid TO %q", args[2]))
			}
			changed, err := a.rt.Organiser.CompleteReorder(cmd.Context(), team.ID, from, to)
			if err != nil {
				return err
			}
			reportChange(cmd, changed, fmt.Sprintf("Reordered %s", team.Name))
			return nil
		},
	}
}

func reportChange(cmd *cobra.Command, changed bool, message string) {
	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "No change")
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
}

// resolvePerson matches an id first, then a unique case-insensitive name.
func resolvePerson(state roster.State, ref string) (domain.Person, error) {
	if p, ok := state.Person(ref); ok {
		return p, nil
	}
	var matches []domain.Person
	for _, p := range state.People() {
		if strings.EqualFold(p.Name, strings.TrimSpace(ref)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.Person{}, withCode(exitUsage, fmt.Errorf("no person %q", ref))
	default:
		return domain.Person{}, withCode(exitUsage, fmt.Errorf("%d people named %q; use an id", len(matches), ref))
	}
}

// resolveTeam matches an id first, then a name.
func resolveTeam(state roster.State, ref string) (domain.Team, error) {
	if t, ok := state.Team(ref); ok {
		return t, nil
	}
	if t, ok := state.TeamByName(ref); ok {
		return t, nil
	}
	return domain.Team{}, withCode(exitUsage, fmt.Errorf("no team %q", ref))
}
