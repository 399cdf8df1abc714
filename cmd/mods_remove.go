package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/ui/progress"
	"github.com/dzserver/dayzctl/internal/ui/styles"
)

var (
	removeForce    bool
	removeNoBackup bool
	removeKeepKeys bool
)

var modsRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm", "delete", "uninstall"},
	Short:   "Remove an installed mod",
	Long: `Remove an installed mod from the server directory.

By default, a backup is created before removal, and the mod's bikeys are
deleted from the server keys folder unless another installed mod still
provides them. Use --keep-keys to leave the keys in place.

Examples:
  dayzctl mods remove @CF
  dayzctl mods remove @CF --force
  dayzctl mods remove @CF --no-backup --keep-keys`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modName := args[0]

		manager, err := getModManager()
		if err != nil {
			return err
		}

		// Check mod exists
		mod, err := manager.GetInfo(modName)
		if err != nil {
			return fmt.Errorf("mod not found: %s", modName)
		}

		s := getSettings().Get()
		createBackup := s.AutoBackup
		if cmd.Flags().Changed("no-backup") {
			createBackup = !removeNoBackup
		}

		// Confirm removal
		if !removeForce && s.ConfirmActions {
			fmt.Printf("Remove mod %s?\n", styles.Selected.Render(mod.Name))
			fmt.Printf("  Path: %s\n", mod.InstalledPath)
			if len(mod.Bikeys) > 0 && !removeKeepKeys {
				fmt.Printf("  %d bikey(s) will be removed from the keys folder.\n", len(mod.Bikeys))
			}
			if createBackup {
				fmt.Println("  A backup will be created.")
			} else {
				fmt.Println(styles.FormatWarning("No backup will be created!"))
			}

			fmt.Print("\nConfirm? [y/N] ")
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))

			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		result, err := manager.Remove(modName, !removeKeepKeys, createBackup)
		if err != nil {
			return fmt.Errorf("failed to remove mod: %w", err)
		}

		progress.PrintComplete(fmt.Sprintf("Removed %s", mod.Name))
		if len(result.BikeysRemoved) > 0 {
			progress.PrintDetail(fmt.Sprintf("Removed %d bikey(s)", len(result.BikeysRemoved)))
		}
		if result.BackupPath != "" {
			progress.PrintDetail(fmt.Sprintf("Backup: %s", result.BackupPath))
		}

		return nil
	},
}

func init() {
	modsRemoveCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")
	modsRemoveCmd.Flags().BoolVar(&removeNoBackup, "no-backup", false, "Skip backup creation")
	modsRemoveCmd.Flags().BoolVar(&removeKeepKeys, "keep-keys", false, "Leave the mod's bikeys in the keys folder")
	modsCmd.AddCommand(modsRemoveCmd)
}
