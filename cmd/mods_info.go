package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/mods"
)

var modsInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show mod details",
	Long:  `Show detailed information about an installed mod.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getModManager()
		if err != nil {
			return err
		}

		info, err := manager.GetInfo(args[0])
		if err != nil {
			return err
		}

		printModInfo(info)

		if mods.IsGitRepo(info.InstalledPath) {
			if url, err := mods.GetRepoRemoteURL(info.InstalledPath); err == nil {
				fmt.Printf("  Git:      %s\n", url)
			}
			if commit, err := mods.GetCurrentCommit(info.InstalledPath); err == nil {
				fmt.Printf("  Commit:   %s\n", commit)
			}
		}

		return nil
	},
}

func init() {
	modsCmd.AddCommand(modsInfoCmd)
}
