package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tempo/internal/bootstrap"
	"tempo/internal/platform/config"
	"tempo/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string
	var verbose bool

	root := &cobra.Command{
		Use:           "tempo",
		Short:         "Outcome-based productivity timer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", defaultDataDir(), "data directory")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose logging to stderr")

	root.AddCommand(newTUICmd(&dataDir, &verbose))
	root.AddCommand(newOutcomeCmd(&dataDir, &verbose))
	root.AddCommand(newStepCmd(&dataDir, &verbose))
	root.AddCommand(newTimerCmd(&dataDir, &verbose))
	root.AddCommand(newNoteCmd(&dataDir, &verbose))
	root.AddCommand(newBalanceCmd(&dataDir, &verbose))
	root.AddCommand(newExportCmd(&dataDir, &verbose))
	root.AddCommand(newImportCmd(&dataDir, &verbose))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tempo"
	}
	return filepath.Join(home, ".tempo")
}

func loadApp(dataDir string, verbose bool) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.LogPath, verbose)
	return bootstrap.New(cfg, log)
}

func newTUICmd(dataDir *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the tempo terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newOutcomeCmd(dataDir *string, verbose *bool) *cobra.Command {
	outcome := &cobra.Command{Use: "outcome", Short: "Manage outcomes"}

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an outcome",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.OutcomeCLI.Add(context.Background(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", out.Title, out.ID)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List outcomes with steps and balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			outcomes, err := app.OutcomeCLI.List(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, o := range outcomes {
				_, _ = fmt.Fprintf(w, "%s  %s  (balance %+dm, est %dm)\n", o.ID, o.Title, o.BalanceMin, o.TotalEstimatedMin)
				for _, s := range o.Steps {
					mark := " "
					if s.Completed {
						mark = "x"
					}
					actual := "-"
					if s.ActualMin != nil {
						actual = strconv.Itoa(*s.ActualMin) + "m"
					}
					_, _ = fmt.Fprintf(w, "  [%s] %s  %s  est %dm actual %s spent %dm\n", mark, s.ID, s.Title, s.EstimatedMin, actual, s.TimeSpentMin)
				}
			}
			return nil
		},
	}

	var renameTitle string
	renameCmd := &cobra.Command{
		Use:   "rename <outcome-id>",
		Short: "Rename an outcome",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.OutcomeCLI.Rename(context.Background(), args[0], renameTitle)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "renamed to %s\n", out.Title)
			return nil
		},
	}
	renameCmd.Flags().StringVar(&renameTitle, "title", "", "new title")

	rmCmd := &cobra.Command{
		Use:   "rm <outcome-id>",
		Short: "Delete an outcome and its steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			if err := app.OutcomeCLI.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	outcome.AddCommand(addCmd, listCmd, renameCmd, rmCmd)
	return outcome
}

func newStepCmd(dataDir *string, verbose *bool) *cobra.Command {
	step := &cobra.Command{Use: "step", Short: "Manage steps inside an outcome"}

	var est int
	addCmd := &cobra.Command{
		Use:   "add <outcome-id> <title>",
		Short: "Add a step with an estimate",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.OutcomeCLI.AddStep(context.Background(), args[0], strings.Join(args[1:], " "), est)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added step %s (%s) est %dm\n", out.Title, out.ID, out.EstimatedMin)
			return nil
		},
	}
	addCmd.Flags().IntVar(&est, "est", 0, "estimated minutes (required, > 0)")

	var editTitle string
	var editEst int
	editCmd := &cobra.Command{
		Use:   "edit <outcome-id> <step-id>",
		Short: "Edit a pending step's title or estimate",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.OutcomeCLI.EditStep(context.Background(), args[0], args[1], editTitle, editEst)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated step %s est %dm\n", out.Title, out.EstimatedMin)
			return nil
		},
	}
	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().IntVar(&editEst, "est", 0, "new estimate in minutes")

	rmCmd := &cobra.Command{
		Use:   "rm <outcome-id> <step-id>",
		Short: "Delete a step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			if err := app.OutcomeCLI.DeleteStep(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	doneCmd := &cobra.Command{
		Use:   "done <outcome-id> <step-id>",
		Short: "Complete a step, folding in any running timer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Complete(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "done: actual %dm (%+dm)\n", out.ActualMin, out.BalanceMin)
			return nil
		},
	}

	step.AddCommand(addCmd, editCmd, rmCmd, doneCmd)
	return step
}

func newTimerCmd(dataDir *string, verbose *bool) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Control the active timer"}

	startCmd := &cobra.Command{
		Use:   "start <outcome-id> <step-id>",
		Short: "Start (or switch) the timer onto a step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Start(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer on step %s\n", out.StepID)
			return nil
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Pause(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "paused: +%dm on step (total %dm)\n", out.MinutesAdded, out.TimeSpentMin)
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active timer and time bank",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Status(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if out.Active {
				_, _ = fmt.Fprintf(w, "running: %s / %s  %ds elapsed\n", out.OutcomeTitle, out.StepTitle, out.ElapsedSec)
			} else {
				_, _ = fmt.Fprintln(w, "no timer running")
			}
			_, _ = fmt.Fprintf(w, "time bank: %dm\n", out.BankMin)
			return nil
		},
	}

	borrowCmd := &cobra.Command{
		Use:   "borrow",
		Short: "Spend 10 bank minutes to extend the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Borrow(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "borrowed: bank %dm, elapsed %ds\n", out.BankMin, out.ElapsedSec)
			return nil
		},
	}

	timer.AddCommand(startCmd, pauseCmd, statusCmd, borrowCmd)
	return timer
}

func newNoteCmd(dataDir *string, verbose *bool) *cobra.Command {
	note := &cobra.Command{Use: "note", Short: "Step notes by calendar date"}

	var date string
	setCmd := &cobra.Command{
		Use:   "set <outcome-id> <step-id> <text>",
		Short: "Write a note for a step (today unless --date)",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.NotesCLI.Put(context.Background(), args[0], args[1], date, strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "note saved for %s\n", out.Date)
			return nil
		},
	}
	setCmd.Flags().StringVar(&date, "date", "", "calendar date (YYYY-MM-DD)")

	showCmd := &cobra.Command{
		Use:   "show <outcome-id> <step-id>",
		Short: "Show all dated notes for a step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			notes, err := app.NotesCLI.ForStep(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			for _, n := range notes {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", n.Date, n.Text)
			}
			return nil
		},
	}

	note.AddCommand(setCmd, showCmd)
	return note
}

func newBalanceCmd(dataDir *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show per-outcome and global time balances",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.TimerCLI.Balance(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, b := range out.Outcomes {
				_, _ = fmt.Fprintf(w, "%-40s %+dm (est %dm)\n", b.Title, b.BalanceMin, b.TotalEstimatedMin)
			}
			_, _ = fmt.Fprintf(w, "%-40s %+dm\n", "time bank", out.BankMin)
			_, _ = fmt.Fprintf(w, "%-40s %+dm\n", "global", out.GlobalMin)
			return nil
		},
	}
}

func newExportCmd(dataDir *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Export outcomes, notes and the time bank to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.ArchiveCLI.Export(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d outcomes to %s\n", len(out.Document.Outcomes), out.Path)
			return nil
		},
	}
}

func newImportCmd(dataDir *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Replace local state from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir, *verbose)
			if err != nil {
				return err
			}
			out, err := app.ArchiveCLI.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d outcomes, %d notes, bank %dm\n", out.Outcomes, out.Notes, out.TimeBank)
			return nil
		},
	}
}
