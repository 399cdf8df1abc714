package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/profile"
	"github.com/dzserver/dayzctl/internal/ui/progress"
	"github.com/dzserver/dayzctl/internal/ui/styles"
)

var (
	profileServerPath   string
	profileWorkshopPath string
	profileModsPath     string
	profileKeysPath     string
	profileMods         []string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage server profiles",
	Long: `Manage named server profiles.

A profile records a server directory and its workshop folder so commands
don't need path flags every time.

Examples:
  dayzctl profile add main --server-path /srv/dayz --workshop-path /srv/steam/workshop
  dayzctl profile use main
  dayzctl profile list`,
}

var profileAddCmd = &cobra.Command{
	Use:     "add <name>",
	Aliases: []string{"create"},
	Short:   "Add a server profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if profileServerPath == "" {
			return fmt.Errorf("--server-path is required")
		}

		store := getProfileStore()
		err := store.Create(profile.Profile{
			Name:         args[0],
			ServerPath:   profileServerPath,
			WorkshopPath: profileWorkshopPath,
			ModsPath:     profileModsPath,
			KeysPath:     profileKeysPath,
			Mods:         profileMods,
		})
		if err != nil {
			return err
		}

		progress.PrintComplete(fmt.Sprintf("Added profile %s", args[0]))
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Select the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := getProfileStore()
		if err := store.SetActive(args[0]); err != nil {
			return err
		}

		mgr := getSettings()
		s := mgr.Get()
		s.LastProfile = args[0]
		mgr.Set(s)
		if err := mgr.Save(); err != nil {
			getLogger().Warn("Failed to record last profile", "error", err)
		}

		progress.PrintComplete(fmt.Sprintf("Using profile %s", args[0]))
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List server profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := getProfileStore()
		profiles := store.List()

		if len(profiles) == 0 {
			fmt.Println("No profiles configured")
			fmt.Println("\nAdd one with: dayzctl profile add <name> --server-path <path>")
			return nil
		}

		active, _ := store.Active()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n",
			styles.Title.Render("NAME"),
			styles.Title.Render("SERVER"),
			styles.Title.Render("WORKSHOP"),
		)
		for _, p := range profiles {
			name := p.Name
			if p.Name == active.Name {
				name = styles.Selected.Render(name + " *")
			}
			workshop := p.WorkshopPath
			if workshop == "" {
				workshop = "-"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t\n", name, p.ServerPath, workshop)
		}
		_ = w.Flush()

		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := getProfileStore()
		p, ok := store.Get(args[0])
		if !ok {
			return fmt.Errorf("profile not found: %s", args[0])
		}

		fmt.Println(styles.Title.Render(p.Name))
		fmt.Printf("  Server:    %s\n", p.ServerPath)
		if p.WorkshopPath != "" {
			fmt.Printf("  Workshop:  %s\n", p.WorkshopPath)
		}
		if p.ModsPath != "" {
			fmt.Printf("  Mods dir:  %s\n", p.ModsPath)
		}
		if p.KeysPath != "" {
			fmt.Printf("  Keys dir:  %s\n", p.KeysPath)
		}
		if len(p.Mods) > 0 {
			fmt.Printf("  Mods:      %s\n", strings.Join(p.Mods, ", "))
		}
		fmt.Printf("  Created:   %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Printf("  Updated:   %s\n", p.UpdatedAt.Format("2006-01-02 15:04"))
		if active, ok := store.Active(); ok && active.Name == p.Name {
			fmt.Println(styles.SuccessText.Render("  Active profile"))
		}
		return nil
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a server profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := getProfileStore()
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		progress.PrintComplete(fmt.Sprintf("Removed profile %s", args[0]))
		return nil
	},
}

func init() {
	profileAddCmd.Flags().StringVar(&profileServerPath, "server-path", "", "Server directory")
	profileAddCmd.Flags().StringVar(&profileWorkshopPath, "workshop-path", "", "Workshop content directory")
	profileAddCmd.Flags().StringVar(&profileModsPath, "mods-path", "", "Mods root, when not the server directory itself")
	profileAddCmd.Flags().StringVar(&profileKeysPath, "keys-path", "", "Keys folder, when not <server>/keys")
	profileAddCmd.Flags().StringSliceVar(&profileMods, "mods", nil, "Mod selection installed and listed by default")

	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	rootCmd.AddCommand(profileCmd)
}
