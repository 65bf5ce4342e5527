package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/team-organiser/internal/auth"
	"github.com/spec-kit/team-organiser/internal/service"
	"github.com/spec-kit/team-organiser/internal/tui"
)

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the roster as a JSON snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, filename, err := a.rt.Organiser.Export()
			if err != nil {
				return err
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if out == "" {
				out = filename
			}
			if err := atomic.WriteFile(out, bytes.NewReader(data)); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path, - for stdout (default: team-organiser-data-<date>.json)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the roster with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			in := bufio.NewReader(cmd.InOrStdin())
			confirm := func(service.ImportSummary) bool {
				if yes {
					return true
				}
				return promptYesNo(cmd.OutOrStdout(), in, service.ImportConfirmPrompt)
			}
			summary, applied, err := a.rt.Organiser.Import(cmd.Context(), data, confirm)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), service.ImportSuccessMessage)
			if summary.Reconstructed {
				fmt.Fprintln(cmd.OutOrStdout(), "Team order rebuilt from membership")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func promptYesNo(w io.Writer, r *bufio.Reader, question string) bool {
	fmt.Fprintf(w, "%s [y/N] ", question)
	answer, err := r.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func newBoardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			program := tea.NewProgram(tui.NewBoard(cmd.Context(), a.rt.Organiser), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
}

func newHashPassphraseCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:         "hash-passphrase [PASSPHRASE]",
		Short:       "Print a bcrypt hash for AUTH_PASSPHRASE_HASH",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipRuntime: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var passphrase string
			if len(args) == 1 {
				passphrase = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return withCode(exitUsage, fmt.Errorf("read passphrase: %w", err))
				}
				passphrase = strings.TrimRight(line, "\r\n")
			}
			hash, err := auth.HashPassphrase(passphrase, cost)
			if err != nil {
				return withCode(exitUsage, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().IntVar(&cost, "cost", bcrypt.DefaultCost, "bcrypt cost")
	return cmd
}
