package mods

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dzserver/dayzctl/internal/mods"
	uiprogress "github.com/dzserver/dayzctl/internal/ui/progress"
	"github.com/dzserver/dayzctl/internal/ui/styles"
)

// Clone step indices
const (
	cloneStepValidate = iota
	cloneStepClone
	cloneStepBikeys
	cloneStepFinalize
)

// CloneModel is the bubbletea model for git mod installation progress
type CloneModel struct {
	spinner        spinner.Model
	progressBar    progress.Model
	manager        *mods.Manager
	gitURL         string
	modName        string
	copyBikeys     bool
	progressWriter io.Writer

	steps       []uiprogress.Step
	currentStep int
	subProgress float64
	subDetail   string

	done   bool
	err    error
	result *mods.InstallResult
	width  int
}

// NewCloneModel creates a new git mod installation progress model.
// progressWriter streams git clone output back into the model as
// SubProgressMsg updates; nil disables the sub-progress bar.
func NewCloneModel(manager *mods.Manager, gitURL, modName string, copyBikeys bool, progressWriter io.Writer) CloneModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
		progress.WithoutPercentage(),
	)

	steps := []uiprogress.Step{
		{Name: "Validating URL", State: uiprogress.StatePending},
		{Name: "Cloning repository", State: uiprogress.StatePending},
		{Name: "Copying bikeys", State: uiprogress.StatePending},
		{Name: "Finalizing", State: uiprogress.StatePending},
	}

	return CloneModel{
		spinner:        s,
		progressBar:    p,
		manager:        manager,
		gitURL:         gitURL,
		modName:        modName,
		copyBikeys:     copyBikeys,
		progressWriter: progressWriter,
		steps:          steps,
		currentStep:    0,
		width:          80,
	}
}

// Messages
type (
	cloneStepDoneMsg struct{ step int }
	cloneCompleteMsg struct{ result *mods.InstallResult }
	cloneErrorMsg    struct{ err error }
)

// Init initializes the model
func (m CloneModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tea.WindowSize(),
		m.startValidation(),
	)
}

func (m CloneModel) startValidation() tea.Cmd {
	return func() tea.Msg {
		// Validation already happened in command, just a visual step
		time.Sleep(50 * time.Millisecond)
		return cloneStepDoneMsg{step: cloneStepValidate}
	}
}

func (m CloneModel) startClone() tea.Cmd {
	return func() tea.Msg {
		result, err := m.manager.CloneMod(m.gitURL, m.progressWriter, m.copyBikeys)
		if err != nil {
			return cloneErrorMsg{err: err}
		}
		return cloneCompleteMsg{result: result}
	}
}

// Update handles messages
func (m CloneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = minInt(msg.Width-10, 40)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd

	case uiprogress.SubProgressMsg:
		m.subProgress = msg.Percent
		m.subDetail = msg.Detail
		return m, m.progressBar.SetPercent(msg.Percent / 100)

	case cloneStepDoneMsg:
		m.steps[msg.step].State = uiprogress.StateComplete
		m.subProgress = 0
		m.subDetail = ""

		switch msg.step {
		case cloneStepValidate:
			m.steps[cloneStepClone].State = uiprogress.StateInProgress
			m.currentStep = cloneStepClone
			return m, m.startClone()
		}
		return m, nil

	case cloneCompleteMsg:
		// Mark all steps as complete
		for i := range m.steps {
			m.steps[i].State = uiprogress.StateComplete
		}
		m.done = true
		m.result = msg.result
		m.modName = msg.result.Name
		return m, tea.Tick(time.Millisecond*300, func(t time.Time) tea.Msg {
			return tea.Quit()
		})

	case cloneErrorMsg:
		m.steps[m.currentStep].State = uiprogress.StateError
		m.done = true
		m.err = msg.err
		return m, tea.Tick(time.Millisecond*500, func(t time.Time) tea.Msg {
			return tea.Quit()
		})
	}

	return m, nil
}

// View renders the model
func (m CloneModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Installing %s", m.modName)
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Text).
		Bold(true)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	indent := "  "
	for i, step := range m.steps {
		icon := uiprogress.StyledIcon(step.State)
		textStyle := uiprogress.StepStyle(step.State)

		if step.State == uiprogress.StateInProgress {
			icon = m.spinner.View()
		}

		line := fmt.Sprintf("%s%s %s", indent, icon, textStyle.Render(step.Name))
		b.WriteString(line)
		b.WriteString("\n")

		if i == cloneStepClone && step.State == uiprogress.StateInProgress && m.subProgress > 0 {
			if m.subDetail != "" {
				subDetailStyle := lipgloss.NewStyle().Foreground(styles.Muted)
				b.WriteString(indent + "    " + subDetailStyle.Render(m.subDetail) + "\n")
			}
			b.WriteString(indent + "  " + m.progressBar.View() + "\n")
		}
	}

	if m.done {
		b.WriteString("\n")
		if m.err != nil {
			b.WriteString(uiprogress.FormatError(m.err.Error()))
		} else if m.result != nil {
			b.WriteString(uiprogress.FormatSuccess(fmt.Sprintf("Installed %s", m.result.Name)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// GetError returns any error that occurred
func (m CloneModel) GetError() error {
	return m.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
