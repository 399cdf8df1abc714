package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/mods"
	"github.com/dzserver/dayzctl/internal/shortname"
	"github.com/dzserver/dayzctl/internal/ui/progress"
)

var modlistShort bool

var modlistCmd = &cobra.Command{
	Use:   "modlist",
	Short: "Generate the server mod list",
	Long: `Generate mods.txt and the -mod= launch parameter.

The active profile's mod selection is used when it has one; otherwise every
installed mod is listed.

With --short, mods are listed by their stable @mN aliases. Aliases are
allocated on first use and persisted in the server folder, so the same mod
always keeps the same alias.

Examples:
  dayzctl modlist           # Write mods.txt and print the launch parameter
  dayzctl modlist --short   # Use short aliases`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getModManager()
		if err != nil {
			return err
		}
		checker := manager.Checker()

		var names []string
		if p, ok := resolveProfile(); ok && len(p.Mods) > 0 {
			// The profile's selection is the intended launch set.
			for _, name := range p.Mods {
				names = append(names, mods.EnsureAtPrefix(name))
			}
		} else {
			names, err = checker.InstalledMods()
			if err != nil {
				return err
			}
		}
		if len(names) == 0 {
			fmt.Println("No mods installed")
			return nil
		}

		if modlistShort {
			serverDir, _ := resolvePaths()
			sn := shortname.NewManager(serverDir)
			short := make([]string, 0, len(names))
			for _, name := range names {
				alias, err := sn.Allocate(name, "")
				if err != nil {
					return fmt.Errorf("failed to allocate short name for %s: %w", name, err)
				}
				short = append(short, alias)
			}
			names = short
		}

		path, err := checker.WriteModsTxt(names)
		if err != nil {
			return err
		}

		progress.PrintComplete(fmt.Sprintf("Wrote %s (%d mods)", path, len(names)))
		fmt.Printf("\n  %s\n", mods.LaunchParameter(names))
		return nil
	},
}

func init() {
	modlistCmd.Flags().BoolVar(&modlistShort, "short", false, "Use stable @mN aliases")
	rootCmd.AddCommand(modlistCmd)
}
