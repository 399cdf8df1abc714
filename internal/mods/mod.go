package mods

import "time"

// Status classifies the installation state of a single mod.
type Status string

const (
	StatusFullyInstalled     Status = "fully_installed"
	StatusPartiallyInstalled Status = "partially_installed"
	StatusMissingBikey       Status = "missing_bikey"
	StatusNotInstalled       Status = "not_installed"
	StatusDuplicate          Status = "duplicate"
)

// Severity of an integrity issue.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityFailed  Severity = "failed"
)

// ReportStatus is the overall outcome of an integrity check.
type ReportStatus string

const (
	ReportPassed  ReportStatus = "passed"
	ReportWarning ReportStatus = "warning"
	ReportFailed  ReportStatus = "failed"
)

// BikeyInfo describes one .bikey license file found inside a mod folder.
type BikeyInfo struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// ModInfo is the result of inspecting one mod folder.
type ModInfo struct {
	Name            string      `json:"name"`                    // Folder name incl. @ prefix (e.g. "@CF")
	WorkshopID      string      `json:"workshop_id,omitempty"`   // Numeric workshop id, or "local"
	InstalledPath   string      `json:"installed_path"`          // Location under the server mods root
	SourcePath      string      `json:"source_path,omitempty"`   // Resolved workshop source, if any
	Version         string      `json:"version,omitempty"`       // From meta.cpp / mod.cpp
	SizeBytes       int64       `json:"size_bytes"`
	FileCount       int         `json:"file_count"`
	LastUpdated     time.Time   `json:"last_updated,omitempty"`
	Bikeys          []BikeyInfo `json:"bikeys,omitempty"`        // Keys the mod ships
	HasBikey        bool        `json:"has_bikey"`               // At least one of them is in the server keys dir
	NeedsBikey      bool        `json:"needs_bikey"`             // Ships keys but none installed
	ContentComplete bool        `json:"content_complete"`        // Presence diff against workshop source is empty
	MissingFiles    []string    `json:"missing_files,omitempty"` // Relative paths absent at the destination
	Status          Status      `json:"status"`
}

// IntegrityIssue is one reportable finding from a check.
type IntegrityIssue struct {
	Severity   Severity `json:"severity"`
	Category   string   `json:"category"` // "bikey", "folder", "file", "duplicate", "scan", "server"
	ModName    string   `json:"mod_name,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// IntegrityReport is an immutable snapshot produced by one CheckAllMods call.
type IntegrityReport struct {
	Timestamp  time.Time `json:"timestamp"`
	ServerPath string    `json:"server_path"`

	TotalChecked     int `json:"total_checked"`
	FullyInstalled   int `json:"fully_installed"`
	PartialInstalled int `json:"partial_installed"`
	MissingBikeys    int `json:"missing_bikeys"`
	Duplicates       int `json:"duplicates"`
	OrphanBikeys     int `json:"orphan_bikeys"`

	Issues []IntegrityIssue `json:"issues"`
	Mods   []ModInfo        `json:"mods"`
}

// Status derives the overall outcome from the issue severities.
func (r *IntegrityReport) Status() ReportStatus {
	status := ReportPassed
	for _, issue := range r.Issues {
		if issue.Severity == SeverityFailed {
			return ReportFailed
		}
		status = ReportWarning
	}
	return status
}

// HasIssues reports whether the check found anything to act on.
func (r *IntegrityReport) HasIssues() bool {
	return len(r.Issues) > 0
}

// ActionKind tells what a copy action moved.
type ActionKind string

const (
	ActionModFiles ActionKind = "mod_files"
	ActionBikey    ActionKind = "bikey"
)

// InstallAction records one completed file copy. Mutating operations return
// the exact list of actions that succeeded so callers can resume after a
// partial failure instead of relying on rollback.
type InstallAction struct {
	Source string     `json:"source"`
	Dest   string     `json:"dest"`
	Kind   ActionKind `json:"kind"`
}
