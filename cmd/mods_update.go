package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/mods"
	"github.com/dzserver/dayzctl/internal/ui/progress"
)

var updateAll bool

var modsUpdateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Update installed mods from their sources",
	Long: `Update installed mods.

Git-tracked mods fast-forward from their origin. Workshop mods are backed
up, wiped, and re-copied from the workshop folder.

Examples:
  dayzctl mods update @CF
  dayzctl mods update --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getModManager()
		if err != nil {
			return err
		}

		if len(args) == 0 && !updateAll {
			return fmt.Errorf("specify a mod name or use --all")
		}

		if updateAll {
			result, err := manager.UpdateAll(cmd.Context())
			if err != nil {
				return err
			}
			for _, errMsg := range result.Errors {
				progress.PrintError(errMsg)
			}
			progress.PrintSummary("Updated: %d, Skipped: %d, Failed: %d",
				result.Updated, result.Skipped, result.Failed)
			return nil
		}

		name := args[0]

		model := progress.NewModel(fmt.Sprintf("Updating %s", name), "Fetching and applying changes")
		writer := progress.NewGitProgressWriter(nil)
		p := tea.NewProgram(model)
		writer.SetProgram(p)

		var result *mods.UpdateResult
		var updateErr error
		done := make(chan struct{})
		go func() {
			defer close(done)
			p.Send(progress.StartStepMsg{})
			result, updateErr = manager.Update(cmd.Context(), name, writer)
			if updateErr != nil {
				p.Send(progress.DoneMsg{Err: updateErr})
				return
			}
			p.Send(progress.CompleteStepMsg{})
		}()

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		// The update itself is not interruptible; an early quit still waits
		// for it to finish before reporting.
		<-done
		if updateErr != nil {
			return updateErr
		}

		switch {
		case result.AlreadyUpToDate:
			progress.PrintComplete(fmt.Sprintf("%s is already up to date", name))
		case result.FromGit:
			progress.PrintComplete(fmt.Sprintf("Updated %s from git", name))
		default:
			progress.PrintComplete(fmt.Sprintf("Updated %s (%d files copied)", name, len(result.Actions)))
		}
		return nil
	},
}

func init() {
	modsUpdateCmd.Flags().BoolVar(&updateAll, "all", false, "Update all installed mods")
	modsCmd.AddCommand(modsUpdateCmd)
}
