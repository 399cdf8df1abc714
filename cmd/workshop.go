package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/ui/styles"
	"github.com/dzserver/dayzctl/internal/workshop"
)

var workshopCmd = &cobra.Command{
	Use:   "workshop",
	Short: "Inspect the workshop folder",
}

var workshopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List mods available in the workshop folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, workshopDir := resolvePaths()
		if workshopDir == "" {
			return fmt.Errorf("no workshop directory set (use --workshop, a profile, or settings)")
		}

		entries, err := workshop.Scan(workshopDir)
		if err != nil {
			return fmt.Errorf("failed to scan workshop: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No mods found in the workshop folder")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			styles.Title.Render("FOLDER"),
			styles.Title.Render("ID"),
			styles.Title.Render("VERSION"),
			styles.Title.Render("SIZE"),
		)
		for _, e := range entries {
			version := e.Version
			if version == "" {
				version = "-"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				e.Folder, e.WorkshopID, version, styles.FormatSize(e.SizeBytes))
		}
		_ = w.Flush()

		fmt.Printf("\n%d mod(s) in %s\n", len(entries), workshopDir)
		return nil
	},
}

func init() {
	workshopCmd.AddCommand(workshopListCmd)
	rootCmd.AddCommand(workshopCmd)
}
