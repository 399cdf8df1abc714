package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/mods"
	"github.com/dzserver/dayzctl/internal/ui/progress"
	"github.com/dzserver/dayzctl/internal/ui/styles"
)

var (
	checkJSON   bool
	checkOutput string
	checkServer bool
)

var modsCheckCmd = &cobra.Command{
	Use:   "check [name]",
	Short: "Check mod integrity against the workshop",
	Long: `Check installed mods against their workshop sources.

Without arguments every installed mod is checked and a report is printed.
With a mod name only that mod is checked. --server-files additionally
verifies the server executable, serverDZ.cfg, and the keys folder.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getModManager()
		if err != nil {
			return err
		}
		checker := manager.Checker()

		if len(args) == 1 {
			info, err := checker.CheckMod(args[0])
			if err != nil {
				return err
			}
			if checkJSON {
				return printJSON(info)
			}
			printModInfo(info)
			return nil
		}

		if !checkJSON {
			checker.SetProgress(func(msg string, current, total int) {
				fmt.Printf("\r\033[K  %s (%d/%d)", msg, current, total)
			})
		}
		report, err := checker.CheckAllMods()
		if !checkJSON {
			fmt.Print("\r\033[K")
		}
		if err != nil {
			return err
		}

		if checkServer {
			report.Issues = append(checker.CheckServerIntegrity(), report.Issues...)
		}

		if checkJSON {
			return printJSON(report)
		}

		text := mods.GenerateReportText(report)
		if checkOutput != "" {
			if err := os.WriteFile(checkOutput, []byte(text), 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			progress.PrintComplete(fmt.Sprintf("Report written to %s", checkOutput))
		} else {
			fmt.Print(text)
		}

		fmt.Printf("\n  Overall: %s\n", styles.FormatReportStatus(report.Status()))
		return nil
	},
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printModInfo(info *mods.ModInfo) {
	fmt.Printf("%s %s\n", styles.ModName.Render(info.Name), styles.FormatModStatus(info.Status))
	if info.Version != "" {
		fmt.Printf("  Version:  %s\n", info.Version)
	}
	fmt.Printf("  Path:     %s\n", info.InstalledPath)
	if info.SourcePath != "" {
		fmt.Printf("  Source:   %s\n", info.SourcePath)
	}
	fmt.Printf("  Size:     %s (%d files)\n", styles.FormatSize(info.SizeBytes), info.FileCount)
	fmt.Printf("  Bikeys:   %d\n", len(info.Bikeys))
	if len(info.MissingFiles) > 0 {
		fmt.Printf("  Missing:  %d file(s)\n", len(info.MissingFiles))
		for i, f := range info.MissingFiles {
			if i >= 10 {
				fmt.Printf("    ... and %d more\n", len(info.MissingFiles)-10)
				break
			}
			fmt.Printf("    %s\n", f)
		}
	}
}

func init() {
	modsCheckCmd.Flags().BoolVar(&checkJSON, "json", false, "Output as JSON")
	modsCheckCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Write the text report to a file")
	modsCheckCmd.Flags().BoolVar(&checkServer, "server-files", false, "Also check critical server files (executable, serverDZ.cfg, keys folder)")
	modsCmd.AddCommand(modsCheckCmd)
}
