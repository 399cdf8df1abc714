package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/mods"
	modsui "github.com/dzserver/dayzctl/internal/ui/mods"
	"github.com/dzserver/dayzctl/internal/ui/progress"
	"github.com/dzserver/dayzctl/internal/workshop"
)

var (
	installNoKeys    bool
	installOverwrite bool
	installAll       bool
	installID        string
)

var modsInstallCmd = &cobra.Command{
	Use:   "install [name]...",
	Short: "Install mods from the workshop folder",
	Long: `Copy mods from the Steam workshop folder into the server.

Only files missing from the destination are copied, so re-running after an
interrupted install resumes where it stopped. Bikeys are copied into the
server keys folder unless --no-keys is given.

With no names, the active profile's mod selection is installed.

Examples:
  dayzctl mods install @CF
  dayzctl mods install @CF @Medical
  dayzctl mods install --id 1559212036 @CF
  dayzctl mods install --all
  dayzctl mods install            # Mods listed in the active profile`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && !installAll {
			// The profile's mod selection is the fallback install set.
			if p, ok := resolveProfile(); ok && len(p.Mods) > 0 {
				args = p.Mods
			} else {
				return fmt.Errorf("specify mod names, use --all, or add mods to the profile")
			}
		}

		manager, err := getModManager()
		if err != nil {
			return err
		}

		_, workshopDir := resolvePaths()

		var selections []mods.Selection
		if installAll {
			entries, err := workshop.Scan(workshopDir)
			if err != nil {
				return fmt.Errorf("failed to scan workshop: %w", err)
			}
			for _, e := range entries {
				selections = append(selections, mods.Selection{WorkshopID: e.WorkshopID, Folder: e.Folder})
			}
		} else {
			for _, name := range args {
				selections = append(selections, mods.Selection{WorkshopID: installID, Folder: name})
			}
		}

		copyKeys := getSettings().Get().AutoCopyBikeys
		if cmd.Flags().Changed("no-keys") {
			copyKeys = !installNoKeys
		}

		// Single mod installs skip the TUI and print steps directly
		if len(selections) == 1 {
			sel := selections[0]
			result, err := manager.Install(cmd.Context(), sel.WorkshopID, sel.Folder, copyKeys, installOverwrite)
			if err != nil {
				return err
			}
			if len(result.Actions) == 0 {
				progress.PrintComplete(fmt.Sprintf("%s is already up to date", result.Name))
			} else {
				progress.PrintComplete(fmt.Sprintf("Installed %s (%d files copied)", result.Name, len(result.Actions)))
			}
			return nil
		}

		model := modsui.NewInstallAllModel(cmd.Context(), manager, selections, copyKeys)
		p := tea.NewProgram(model)
		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		if m, ok := finalModel.(modsui.InstallAllModel); ok && m.GetError() != nil {
			return m.GetError()
		}
		return nil
	},
}

func init() {
	modsInstallCmd.Flags().BoolVar(&installNoKeys, "no-keys", false, "Do not copy bikeys into the server keys folder")
	modsInstallCmd.Flags().BoolVar(&installOverwrite, "overwrite", false, "Delete the existing mod folder and copy fresh")
	modsInstallCmd.Flags().BoolVar(&installAll, "all", false, "Install every mod found in the workshop folder")
	modsInstallCmd.Flags().StringVar(&installID, "id", "", "Workshop id of the mod source")
	modsCmd.AddCommand(modsInstallCmd)
}
