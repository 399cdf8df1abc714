package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/ui/progress"
	"github.com/dzserver/dayzctl/internal/ui/styles"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage server bikeys",
	Long: `Manage the server keys folder.

Examples:
  dayzctl keys extract    # Copy every mod's bikeys into the keys folder
  dayzctl keys list       # List installed bikeys`,
}

var keysExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Copy all mod bikeys into the keys folder",
	Long: `Scan every installed mod for .bikey files and copy them into the
server keys folder. Keys already present are left untouched, so re-running
is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getModManager()
		if err != nil {
			return err
		}
		checker := manager.Checker()

		count, copied, err := checker.ExtractAllBikeys()
		if err != nil {
			// Report what landed before the failure
			if count > 0 {
				progress.PrintWarning(fmt.Sprintf("Copied %d key(s) before failing", count))
			}
			return err
		}

		if count == 0 {
			progress.PrintComplete("All bikeys already in place")
			return nil
		}

		for _, name := range copied {
			progress.PrintDetail(name)
		}
		progress.PrintComplete(fmt.Sprintf("Copied %d bikey(s) to %s", count, checker.KeysDir()))
		return nil
	},
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed bikeys",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getModManager()
		if err != nil {
			return err
		}
		checker := manager.Checker()

		installed := checker.InstalledBikeys()
		if len(installed) == 0 {
			fmt.Println("No bikeys installed")
			fmt.Println("\nExtract keys with: dayzctl keys extract")
			return nil
		}

		paths := make([]string, 0, len(installed))
		for _, path := range installed {
			paths = append(paths, path)
		}
		sort.Strings(paths)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "%s\t%s\n",
			styles.Title.Render("NAME"),
			styles.Title.Render("SIZE"),
		)
		for _, path := range paths {
			var size string
			if info, err := os.Stat(path); err == nil {
				size = styles.FormatSize(info.Size())
			} else {
				size = "-"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\n", filepath.Base(path), size)
		}
		_ = w.Flush()

		fmt.Printf("\n%d bikey(s) in %s\n", len(installed), checker.KeysDir())
		return nil
	},
}

func init() {
	keysCmd.AddCommand(keysExtractCmd)
	keysCmd.AddCommand(keysListCmd)
	rootCmd.AddCommand(keysCmd)
}
