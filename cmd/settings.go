package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/ui/progress"
	"github.com/dzserver/dayzctl/internal/ui/styles"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage tool-wide defaults",
	Long: `Show and change tool-wide defaults.

These apply when no flag or profile overrides them: the fallback server and
workshop paths, whether installs copy bikeys, whether removals and updates
create backups, and whether destructive commands ask for confirmation.

Examples:
  dayzctl settings show
  dayzctl settings set server-path /srv/dayz
  dayzctl settings set auto-backup false`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := getSettings().Get()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "%s\t%s\t\n", styles.Title.Render("KEY"), styles.Title.Render("VALUE"))
		_, _ = fmt.Fprintf(w, "server-path\t%s\t\n", orDash(s.DefaultServerPath))
		_, _ = fmt.Fprintf(w, "workshop-path\t%s\t\n", orDash(s.DefaultWorkshopPath))
		_, _ = fmt.Fprintf(w, "auto-keys\t%t\t\n", s.AutoCopyBikeys)
		_, _ = fmt.Fprintf(w, "auto-backup\t%t\t\n", s.AutoBackup)
		_, _ = fmt.Fprintf(w, "confirm\t%t\t\n", s.ConfirmActions)
		_, _ = fmt.Fprintf(w, "last-profile\t%s\t\n", orDash(s.LastProfile))
		_ = w.Flush()

		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := getSettings()
		s := mgr.Get()

		key, value := args[0], args[1]
		switch key {
		case "server-path":
			s.DefaultServerPath = value
		case "workshop-path":
			s.DefaultWorkshopPath = value
		case "auto-keys":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q for %s", value, key)
			}
			s.AutoCopyBikeys = b
		case "auto-backup":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q for %s", value, key)
			}
			s.AutoBackup = b
		case "confirm":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q for %s", value, key)
			}
			s.ConfirmActions = b
		default:
			return fmt.Errorf("unknown setting %q (server-path, workshop-path, auto-keys, auto-backup, confirm)", key)
		}

		mgr.Set(s)
		if err := mgr.Save(); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}

		progress.PrintComplete(fmt.Sprintf("Set %s = %s", key, value))
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
