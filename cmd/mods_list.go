package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/ui/styles"
)

var modsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed mods",
	Long:  `List all mods installed in the server directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getModManager()
		if err != nil {
			return err
		}

		installed, err := manager.ListInstalled()
		if err != nil {
			return fmt.Errorf("failed to list mods: %w", err)
		}

		if len(installed) == 0 {
			fmt.Println("No mods installed")
			fmt.Println("\nInstall mods with: dayzctl mods install <name>")
			return nil
		}

		// Use tabwriter for aligned output
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			styles.Title.Render("NAME"),
			styles.Title.Render("VERSION"),
			styles.Title.Render("SIZE"),
			styles.Title.Render("KEYS"),
			styles.Title.Render("STATUS"),
		)

		for _, mod := range installed {
			version := mod.Version
			if version == "" {
				version = "-"
			}
			keys := fmt.Sprintf("%d", len(mod.Bikeys))
			if len(mod.Bikeys) == 0 {
				keys = "-"
			}

			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				mod.Name,
				version,
				styles.FormatSize(mod.SizeBytes),
				keys,
				styles.FormatModStatus(mod.Status),
			)
		}

		_ = w.Flush()

		fmt.Printf("\n%d mod(s) installed\n", len(installed))
		fmt.Printf("Mods directory: %s\n", manager.ModsDir())

		return nil
	},
}

func init() {
	modsCmd.AddCommand(modsListCmd)
}
