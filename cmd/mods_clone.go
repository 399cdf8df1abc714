package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dzserver/dayzctl/internal/mods"
	modsui "github.com/dzserver/dayzctl/internal/ui/mods"
	"github.com/dzserver/dayzctl/internal/ui/progress"
)

var cloneNoKeys bool

var modsCloneCmd = &cobra.Command{
	Use:   "clone <git-url>",
	Short: "Install a git-distributed mod",
	Long: `Clone a community mod repository into the server directory.

Accepts https and ssh URLs as well as the github.com/owner/repo shorthand.
Bikeys found in the repository are copied into the server keys folder.

Examples:
  dayzctl mods clone https://github.com/owner/some-mod
  dayzctl mods clone github.com/owner/some-mod --no-keys`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gitURL := args[0]
		if !strings.Contains(gitURL, "://") && !strings.HasPrefix(gitURL, "git@") {
			gitURL = "https://" + gitURL
		}

		manager, err := getModManager()
		if err != nil {
			return err
		}

		if err := mods.ValidateGitURL(gitURL); err != nil {
			return fmt.Errorf("invalid git URL: %s", args[0])
		}
		gitURL = mods.NormalizeGitURL(gitURL)

		copyKeys := getSettings().Get().AutoCopyBikeys
		if cmd.Flags().Changed("no-keys") {
			copyKeys = !cloneNoKeys
		}

		name := mods.ExtractRepoName(gitURL)
		writer := progress.NewGitProgressWriter(nil)
		model := modsui.NewCloneModel(manager, gitURL, name, copyKeys, writer)
		p := tea.NewProgram(model)
		writer.SetProgram(p)

		finalModel, err := p.Run()
		if err != nil {
			return fmt.Errorf("error running TUI: %w", err)
		}
		if m, ok := finalModel.(modsui.CloneModel); ok && m.GetError() != nil {
			return m.GetError()
		}
		return nil
	},
}

func init() {
	modsCloneCmd.Flags().BoolVar(&cloneNoKeys, "no-keys", false, "Do not copy bikeys into the server keys folder")
	modsCmd.AddCommand(modsCloneCmd)
}
