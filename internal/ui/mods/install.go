package mods

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dzserver/dayzctl/internal/mods"
	uiprogress "github.com/dzserver/dayzctl/internal/ui/progress"
	"github.com/dzserver/dayzctl/internal/ui/styles"
)

// InstallAllModel is the bubbletea model for bulk mod installation
type InstallAllModel struct {
	spinner    spinner.Model
	manager    *mods.Manager
	ctx        context.Context
	copyBikeys bool

	selections  []mods.Selection
	current     int
	currentName string

	done      bool
	err       error
	errors    []string
	installed []string
	upToDate  []string
	copied    int
}

// NewInstallAllModel creates a new bulk installation model
func NewInstallAllModel(ctx context.Context, manager *mods.Manager, selections []mods.Selection, copyBikeys bool) InstallAllModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return InstallAllModel{
		spinner:    s,
		manager:    manager,
		ctx:        ctx,
		copyBikeys: copyBikeys,
		selections: selections,
		current:    0,
	}
}

type (
	installAllStartMsg struct{}
	installAllDoneMsg  struct{}
	installOneMsg      struct {
		name     string
		actions  int
		upToDate bool
		err      error
	}
)

// Init initializes the model
func (m InstallAllModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return installAllStartMsg{} },
	)
}

func (m InstallAllModel) installNext() tea.Cmd {
	if m.current >= len(m.selections) {
		return func() tea.Msg { return installAllDoneMsg{} }
	}

	sel := m.selections[m.current]
	return func() tea.Msg {
		result, err := m.manager.Install(m.ctx, sel.WorkshopID, sel.Folder, m.copyBikeys, false)
		if err != nil {
			return installOneMsg{name: sel.Folder, err: err}
		}
		return installOneMsg{
			name:     sel.Folder,
			actions:  len(result.Actions),
			upToDate: len(result.Actions) == 0,
		}
	}
}

// Update handles messages
func (m InstallAllModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case installAllStartMsg:
		if len(m.selections) == 0 {
			m.done = true
			return m, tea.Tick(time.Millisecond*300, func(t time.Time) tea.Msg {
				return tea.Quit()
			})
		}
		m.currentName = m.selections[0].Folder
		return m, m.installNext()

	case installOneMsg:
		if msg.err != nil {
			m.errors = append(m.errors, fmt.Sprintf("%s: %v", msg.name, msg.err))
		} else if msg.upToDate {
			m.upToDate = append(m.upToDate, msg.name)
		} else {
			m.installed = append(m.installed, msg.name)
			m.copied += msg.actions
		}

		m.current++
		if m.current < len(m.selections) {
			m.currentName = m.selections[m.current].Folder
		}
		return m, m.installNext()

	case installAllDoneMsg:
		m.done = true
		if len(m.errors) > 0 {
			m.err = fmt.Errorf("%d of %d mod(s) failed to install", len(m.errors), len(m.selections))
		}
		return m, tea.Tick(time.Millisecond*300, func(t time.Time) tea.Msg {
			return tea.Quit()
		})
	}

	return m, nil
}

// View renders the model
func (m InstallAllModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Text).
		Bold(true)
	b.WriteString(titleStyle.Render("Installing mods"))
	b.WriteString("\n\n")

	if len(m.selections) == 0 {
		b.WriteString(uiprogress.FormatWarning("No mods selected"))
		b.WriteString("\n")
		return b.String()
	}

	if !m.done {
		progress := fmt.Sprintf("%d/%d", m.current+1, len(m.selections))
		progressStyle := lipgloss.NewStyle().Foreground(styles.Muted)
		line := fmt.Sprintf("  %s Installing %s %s",
			m.spinner.View(),
			progressStyle.Render(progress+":"),
			styles.NormalText.Bold(true).Render(m.currentName),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.done {
		for _, name := range m.installed {
			b.WriteString(uiprogress.FormatSuccess(fmt.Sprintf("Installed %s", name)))
			b.WriteString("\n")
		}

		if len(m.upToDate) > 0 {
			skipStyle := lipgloss.NewStyle().Foreground(styles.Muted)
			b.WriteString(skipStyle.Render(fmt.Sprintf("  %d mod(s) already up to date", len(m.upToDate))))
			b.WriteString("\n")
		}

		for _, errMsg := range m.errors {
			b.WriteString(uiprogress.FormatError(errMsg))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		summary := fmt.Sprintf("Installed: %d, Up to date: %d, Failed: %d, Files copied: %d",
			len(m.installed), len(m.upToDate), len(m.errors), m.copied)
		summaryStyle := lipgloss.NewStyle().Foreground(styles.Muted)
		b.WriteString(summaryStyle.Render("  " + summary))
		b.WriteString("\n")
	}

	return b.String()
}

// GetError returns any error that occurred
func (m InstallAllModel) GetError() error {
	return m.err
}
