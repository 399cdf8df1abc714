package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/dzserver/dayzctl/internal/mods"
)

// Color palette - coherent with charmbracelet style
var (
	Primary   = lipgloss.Color("#7D56F4") // Purple (charmbracelet brand)
	Secondary = lipgloss.Color("#FF79C6") // Pink accent
	Success   = lipgloss.Color("#50FA7B") // Green
	Warning   = lipgloss.Color("#FFB86C") // Orange
	Error     = lipgloss.Color("#FF5555") // Red
	Muted     = lipgloss.Color("#6272A4") // Muted blue-gray
	Text      = lipgloss.Color("#F8F8F2") // Light text
	Subtle    = lipgloss.Color("#44475A") // Dark background accent
)

// Base styles
var (
	// Title style for headers
	Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFDF5")).
		Background(Primary).
		Padding(0, 1).
		Bold(true)

	// Subtitle style
	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Normal text
	NormalText = lipgloss.NewStyle().
			Foreground(Text)

	// Muted text
	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	// Success text
	SuccessText = lipgloss.NewStyle().
			Foreground(Success)

	// Warning text
	WarningText = lipgloss.NewStyle().
			Foreground(Warning)

	// Error text
	ErrorText = lipgloss.NewStyle().
			Foreground(Error)

	// Selected item
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// App container
	App = lipgloss.NewStyle().
		Padding(1, 2)

	// Box border
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Subtle).
		Padding(0, 1)

	// Help text
	Help = lipgloss.NewStyle().
		Foreground(Muted)

	// Spinner
	Spinner = lipgloss.NewStyle().
		Foreground(Primary)
)

// Symbols
var (
	CheckMark = lipgloss.NewStyle().Foreground(Success).SetString("✓")
	CrossMark = lipgloss.NewStyle().Foreground(Error).SetString("✗")
	Bullet    = lipgloss.NewStyle().Foreground(Primary).SetString("•")
	Arrow     = lipgloss.NewStyle().Foreground(Primary).SetString("→")
)

// Mod list styles
var (
	ModName = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true)

	ModVersion = lipgloss.NewStyle().
			Foreground(Muted)

	ModOK = lipgloss.NewStyle().
		Foreground(Success)

	ModWarn = lipgloss.NewStyle().
		Foreground(Warning)

	ModBad = lipgloss.NewStyle().
		Foreground(Error)
)

// FormatModStatus returns a styled install-status indicator
func FormatModStatus(status mods.Status) string {
	switch status {
	case mods.StatusFullyInstalled:
		return ModOK.Render("installed")
	case mods.StatusMissingBikey:
		return ModWarn.Render("missing key")
	case mods.StatusPartiallyInstalled:
		return ModWarn.Render("partial")
	case mods.StatusDuplicate:
		return ModBad.Render("duplicate")
	default:
		return ModBad.Render("not installed")
	}
}

// FormatReportStatus returns a styled overall report verdict
func FormatReportStatus(status mods.ReportStatus) string {
	switch status {
	case mods.ReportPassed:
		return ModOK.Render("PASSED")
	case mods.ReportWarning:
		return ModWarn.Render("WARNING")
	default:
		return ModBad.Render("FAILED")
	}
}

// FormatSuccess formats a success message
func FormatSuccess(msg string) string {
	return CheckMark.String() + " " + SuccessText.Render(msg)
}

// FormatError formats an error message
func FormatError(msg string) string {
	return CrossMark.String() + " " + ErrorText.Render(msg)
}

// FormatWarning formats a warning message
func FormatWarning(msg string) string {
	return WarningText.Render("! " + msg)
}

// FormatSize renders a byte count with a binary unit
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
