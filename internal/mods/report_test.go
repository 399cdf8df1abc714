package mods

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateReportText(t *testing.T) {
	report := &IntegrityReport{
		Timestamp:      time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		ServerPath:     "/srv/dayz",
		TotalChecked:   2,
		FullyInstalled: 1,
		MissingBikeys:  1,
		Issues: []IntegrityIssue{
			{
				Severity:   SeverityWarning,
				Category:   "bikey",
				ModName:    "@CF",
				Message:    `Mod "@CF" is missing its .bikey file(s) in the server keys folder`,
				Suggestion: "Run 'dayzctl keys extract'",
			},
		},
		Mods: []ModInfo{
			{Name: "@CF", Status: StatusMissingBikey},
			{Name: "@Medical", Status: StatusFullyInstalled},
		},
	}

	text := GenerateReportText(report)

	for _, want := range []string{
		"DayZ Mod Integrity Report",
		"Generated: 2026-03-14 10:30:00",
		"Server:    /srv/dayz",
		"Mods checked:        2",
		"Fully installed:     1",
		"Missing bikeys:      1",
		"Overall status:      WARNING",
		" !  [BIKEY]",
		"hint: Run 'dayzctl keys extract'",
		"[key]",
		"[ok]",
		"@Medical",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report text missing %q\n%s", want, text)
		}
	}
}

func TestGenerateReportTextFailedMarker(t *testing.T) {
	report := &IntegrityReport{
		Timestamp:        time.Now(),
		TotalChecked:     1,
		PartialInstalled: 1,
		Issues: []IntegrityIssue{
			{Severity: SeverityFailed, Category: "file", ModName: "@CF", Message: "missing files"},
		},
		Mods: []ModInfo{{Name: "@CF", Status: StatusPartiallyInstalled, MissingFiles: []string{"a.pbo"}}},
	}

	text := GenerateReportText(report)
	if !strings.Contains(text, "!!! [FILE]") {
		t.Errorf("failed issue not marked with !!!:\n%s", text)
	}
	if !strings.Contains(text, "Overall status:      FAILED") {
		t.Errorf("overall status not FAILED:\n%s", text)
	}
	if !strings.Contains(text, "missing files: 1") {
		t.Errorf("missing file count absent:\n%s", text)
	}
}

func TestReportStatusPrecedence(t *testing.T) {
	r := &IntegrityReport{Issues: []IntegrityIssue{
		{Severity: SeverityWarning},
		{Severity: SeverityFailed},
	}}
	if r.Status() != ReportFailed {
		t.Errorf("Status() = %s, want %s", r.Status(), ReportFailed)
	}

	r = &IntegrityReport{Issues: []IntegrityIssue{{Severity: SeverityWarning}}}
	if r.Status() != ReportWarning {
		t.Errorf("Status() = %s, want %s", r.Status(), ReportWarning)
	}

	r = &IntegrityReport{}
	if r.Status() != ReportPassed {
		t.Errorf("Status() = %s, want %s", r.Status(), ReportPassed)
	}
}
