package cmd

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/logger"
	"github.com/dzserver/dayzctl/internal/profile"
	"github.com/dzserver/dayzctl/internal/settings"
)

// Version info set via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
)

var (
	verbose      bool
	serverFlag   string
	workshopFlag string
	profileFlag  string

	profileStore    *profile.Store
	settingsManager *settings.Manager
)

var rootCmd = &cobra.Command{
	Use:     "dayzctl",
	Short:   "DayZ server mod manager for Linux",
	Version: version + " (" + commit + ")",
	Long: `A Go CLI tool to manage DayZ server mods on Linux.
Checks mod integrity, installs mods from the Steam workshop folder,
and keeps server bikeys in sync.

Quick start:
  dayzctl mods check     Verify installed mods against the workshop
  dayzctl mods install   Copy missing mod files into the server`,
}

func Execute() {
	defer logger.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Init(verbose)
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Server directory (overrides profile and settings)")
	rootCmd.PersistentFlags().StringVar(&workshopFlag, "workshop", "", "Workshop content directory")
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "Server profile to use")
}

func getLogger() *log.Logger {
	if logger.Log != nil {
		return logger.Log
	}
	return log.Default()
}

// dataDir returns the per-user data directory for stores and backups
func dataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		homeDir, _ := os.UserHomeDir()
		base = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(base, "dayzctl")
}

func getProfileStore() *profile.Store {
	if profileStore == nil {
		profileStore = profile.NewStore(dataDir())
		if err := profileStore.Load(); err != nil {
			logger.Warn("Failed to load profiles", "error", err)
		}
	}
	return profileStore
}

func getSettings() *settings.Manager {
	if settingsManager == nil {
		settingsManager = settings.NewManager(dataDir())
		if err := settingsManager.Load(); err != nil {
			logger.Warn("Failed to load settings", "error", err)
		}
	}
	return settingsManager
}

// resolveProfile returns the profile named by --profile, or the active one.
func resolveProfile() (profile.Profile, bool) {
	store := getProfileStore()
	if profileFlag != "" {
		p, ok := store.Get(profileFlag)
		if !ok {
			logger.Warn("Profile not found", "name", profileFlag)
		}
		return p, ok
	}
	return store.Active()
}

// resolvePaths determines the server and workshop directories from flags,
// the selected profile, and settings defaults, in that order.
func resolvePaths() (serverDir, workshopDir string) {
	serverDir = serverFlag
	workshopDir = workshopFlag

	if serverDir != "" && workshopDir != "" {
		return serverDir, workshopDir
	}

	if p, ok := resolveProfile(); ok {
		if serverDir == "" {
			serverDir = p.ServerPath
		}
		if workshopDir == "" {
			workshopDir = p.WorkshopPath
		}
	}

	s := getSettings().Get()
	if serverDir == "" {
		serverDir = s.DefaultServerPath
	}
	if workshopDir == "" {
		workshopDir = s.DefaultWorkshopPath
	}

	return serverDir, workshopDir
}
