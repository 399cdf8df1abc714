package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/mods"
)

var modManager *mods.Manager

var modsCmd = &cobra.Command{
	Use:   "mods",
	Short: "Manage server mods",
	Long: `Manage DayZ server mods.

Examples:
  dayzctl mods check                  # Check all mods against the workshop
  dayzctl mods list                   # List installed mods
  dayzctl mods install <name>...      # Smart-install mods from the workshop
  dayzctl mods clone <git-url>        # Install a git-distributed mod
  dayzctl mods remove <name>          # Remove a mod
  dayzctl mods update [name]          # Update specific or all mods
  dayzctl mods info <name>            # Show mod details
  dayzctl mods watch                  # Re-check when the workshop changes`,
}

// getModManager returns the shared mod manager, initializing it if needed
func getModManager() (*mods.Manager, error) {
	if modManager != nil {
		return modManager, nil
	}

	serverDir, workshopDir := resolvePaths()
	if serverDir == "" {
		return nil, errors.New("no server directory set (use --server, a profile, or settings)")
	}

	modManager = mods.NewManager(serverDir, workshopDir, dataDir(), getLogger())

	// Profiles may relocate the mods root and keys folder.
	if p, ok := resolveProfile(); ok {
		if p.ModsPath != "" {
			modManager.Checker().SetModsDir(p.ModsPath)
		}
		if p.KeysPath != "" {
			modManager.Checker().SetKeysDir(p.KeysPath)
		}
	}

	return modManager, nil
}

func init() {
	rootCmd.AddCommand(modsCmd)
}
