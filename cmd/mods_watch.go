package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/mods"
	"github.com/dzserver/dayzctl/internal/ui/progress"
	"github.com/dzserver/dayzctl/internal/ui/styles"
	"github.com/dzserver/dayzctl/internal/watcher"
)

var watchInstall bool

var modsWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-check mods when the workshop folder changes",
	Long: `Watch the workshop and mods folders and re-run the integrity check
after changes settle. With --install, missing files are copied into the
server automatically after each change.

Runs until interrupted with ctrl+c.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, err := getModManager()
		if err != nil {
			return err
		}
		checker := manager.Checker()
		_, workshopDir := resolvePaths()

		w, err := watcher.New(getLogger())
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}

		if workshopDir != "" {
			if err := w.AddTree(workshopDir); err != nil {
				return fmt.Errorf("failed to watch workshop folder: %w", err)
			}
		}
		if err := w.AddTree(manager.ModsDir()); err != nil {
			return fmt.Errorf("failed to watch mods folder: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() { _ = w.Run(ctx) }()

		progress.PrintTitle("Watching for mod changes")
		runCheck(checker)

		for {
			select {
			case <-ctx.Done():
				fmt.Println("\nStopped.")
				return nil
			case ev := <-w.Changes():
				progress.PrintInProgress(fmt.Sprintf("Change detected: %s", ev.Path))
				if watchInstall {
					if result := installMissing(ctx, manager); result > 0 {
						progress.PrintComplete(fmt.Sprintf("Copied %d missing file(s)", result))
					}
				}
				runCheck(checker)
			}
		}
	},
}

func runCheck(checker *mods.Checker) {
	report, err := checker.CheckAllMods()
	if err != nil {
		progress.PrintError(fmt.Sprintf("Check failed: %v", err))
		return
	}
	fmt.Printf("  %s  %d mod(s): %d ok, %d partial, %d missing keys, %d duplicates\n",
		styles.FormatReportStatus(report.Status()),
		report.TotalChecked,
		report.FullyInstalled,
		report.PartialInstalled,
		report.MissingBikeys,
		report.Duplicates,
	)
}

// installMissing smart-installs every mod that has a workshop source and
// returns the number of files copied.
func installMissing(ctx context.Context, manager *mods.Manager) int {
	names, err := manager.Checker().InstalledMods()
	if err != nil {
		return 0
	}
	copied := 0
	for _, name := range names {
		result, err := manager.Install(ctx, "", name, true, false)
		if err != nil {
			continue
		}
		copied += len(result.Actions)
	}
	return copied
}

func init() {
	modsWatchCmd.Flags().BoolVar(&watchInstall, "install", false, "Copy missing files automatically after changes")
	modsCmd.AddCommand(modsWatchCmd)
}
