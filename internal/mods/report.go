package mods

import (
	"fmt"
	"strings"
)

// GenerateReportText renders an IntegrityReport to a human-readable
// multi-line string. Pure formatting, no side effects; styling is left to the
// caller.
func GenerateReportText(report *IntegrityReport) string {
	var b strings.Builder

	line := strings.Repeat("=", 60)
	b.WriteString(line + "\n")
	b.WriteString("DayZ Mod Integrity Report\n")
	b.WriteString(line + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", report.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Server:    %s\n", report.ServerPath)
	b.WriteString("\n")

	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  Mods checked:        %d\n", report.TotalChecked)
	fmt.Fprintf(&b, "  Fully installed:     %d\n", report.FullyInstalled)
	fmt.Fprintf(&b, "  Partially installed: %d\n", report.PartialInstalled)
	fmt.Fprintf(&b, "  Missing bikeys:      %d\n", report.MissingBikeys)
	fmt.Fprintf(&b, "  Duplicates:          %d\n", report.Duplicates)
	fmt.Fprintf(&b, "  Orphan bikeys:       %d\n", report.OrphanBikeys)
	fmt.Fprintf(&b, "  Overall status:      %s\n", strings.ToUpper(string(report.Status())))
	b.WriteString("\n")

	if len(report.Issues) > 0 {
		b.WriteString("Issues:\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, issue := range report.Issues {
			marker := " ! "
			if issue.Severity == SeverityFailed {
				marker = "!!!"
			}
			fmt.Fprintf(&b, "  %s [%s] %s\n", marker, strings.ToUpper(issue.Category), issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(&b, "      hint: %s\n", issue.Suggestion)
			}
		}
		b.WriteString("\n")
	}

	if len(report.Mods) > 0 {
		b.WriteString("Mods:\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, mod := range report.Mods {
			fmt.Fprintf(&b, "  %-4s %s\n", statusMarker(mod.Status), mod.Name)
			fmt.Fprintf(&b, "       status: %s\n", mod.Status)
			if len(mod.Bikeys) > 0 {
				names := make([]string, len(mod.Bikeys))
				for i, bk := range mod.Bikeys {
					names[i] = bk.Name
				}
				fmt.Fprintf(&b, "       bikeys: %s\n", strings.Join(names, ", "))
			}
			if len(mod.MissingFiles) > 0 {
				fmt.Fprintf(&b, "       missing files: %d\n", len(mod.MissingFiles))
			}
		}
	}

	b.WriteString("\n" + line + "\n")
	return b.String()
}

func statusMarker(status Status) string {
	switch status {
	case StatusFullyInstalled:
		return "[ok]"
	case StatusMissingBikey:
		return "[key]"
	case StatusPartiallyInstalled:
		return "[inc]"
	case StatusDuplicate:
		return "[dup]"
	default:
		return "[???]"
	}
}
