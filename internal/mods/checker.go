package mods

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dzserver/dayzctl/internal/workshop"
)

var (
	ErrModNotFound    = errors.New("mod not found")
	ErrModExists      = errors.New("mod already exists")
	ErrSourceNotFound = errors.New("install source not found")
	ErrInvalidURL     = errors.New("invalid git URL")
	ErrServerDir      = errors.New("failed to access server directory")
)

// DestWriteError wraps the filesystem error behind a failed copy so callers
// see a typed failure instead of a raw OS error.
type DestWriteError struct {
	Dest string
	Err  error
}

func (e *DestWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Dest, e.Err)
}

func (e *DestWriteError) Unwrap() error { return e.Err }

// ProgressFunc receives scan/copy progress as (message, current, total).
type ProgressFunc func(message string, current, total int)

// Checker reconciles the on-disk state of a server's mods and keys folders
// against the workshop source. Every call re-scans the filesystem; nothing is
// cached between invocations, so concurrent callers each see an independent
// snapshot and no locking is needed.
type Checker struct {
	serverDir   string
	modsDir     string
	keysDir     string
	workshopDir string
	progress    ProgressFunc
	log         *log.Logger
}

// NewChecker creates a checker rooted at a server directory. The mods root
// defaults to the server directory itself (DayZ keeps @Mod folders at the
// top level) and the keys folder to <server>/keys.
func NewChecker(serverDir, workshopDir string, logger *log.Logger) *Checker {
	return &Checker{
		serverDir:   serverDir,
		modsDir:     serverDir,
		keysDir:     filepath.Join(serverDir, "keys"),
		workshopDir: workshopDir,
		log:         logger,
	}
}

// SetModsDir overrides the mods root (profile customization).
func (c *Checker) SetModsDir(dir string) { c.modsDir = dir }

// SetKeysDir overrides the server keys folder (profile customization).
func (c *Checker) SetKeysDir(dir string) { c.keysDir = dir }

// SetProgress installs a progress callback for bulk operations.
func (c *Checker) SetProgress(fn ProgressFunc) { c.progress = fn }

// KeysDir returns the server keys folder path.
func (c *Checker) KeysDir() string { return c.keysDir }

// ModsDir returns the mods root path.
func (c *Checker) ModsDir() string { return c.modsDir }

func (c *Checker) reportProgress(message string, current, total int) {
	if c.progress != nil {
		c.progress(message, current, total)
	}
	if c.log != nil {
		c.log.Debug(message, "current", current, "total", total)
	}
}

// EnsureKeysDir creates the server keys folder if it doesn't exist.
func (c *Checker) EnsureKeysDir() error {
	if err := os.MkdirAll(c.keysDir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrServerDir, err)
	}
	return nil
}

// InstalledMods returns the @ folders under the mods root, sorted by name.
// Directory enumeration order is platform-dependent, so sorting keeps the
// report ordering reproducible.
func (c *Checker) InstalledMods() ([]string, error) {
	entries, err := os.ReadDir(c.modsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "@") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// EnsureAtPrefix normalizes a mod identifier to its folder-name form.
func EnsureAtPrefix(name string) string {
	if !strings.HasPrefix(name, "@") {
		return "@" + name
	}
	return name
}

// CheckMod inspects one installed mod. Read-only: no side effects.
//
// Content completeness is a presence diff of the file listing against the
// resolved workshop source; file contents are never hashed, so a present but
// corrupted file is invisible here (accepted limitation). Bikey presence is
// checked independently of content.
func (c *Checker) CheckMod(name string) (*ModInfo, error) {
	name = EnsureAtPrefix(name)
	installedPath := filepath.Join(c.modsDir, name)

	fi, err := os.Stat(installedPath)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrModNotFound, name)
	}

	info := &ModInfo{
		Name:            name,
		InstalledPath:   installedPath,
		ContentComplete: true,
		Version:         workshop.ModVersion(installedPath),
	}
	info.SizeBytes, info.FileCount = workshop.FolderSize(installedPath)
	info.LastUpdated = fi.ModTime()

	// Completeness against the workshop source, when one resolves.
	if c.workshopDir != "" {
		if src, ok := workshop.ResolveSource(c.workshopDir, name); ok {
			info.WorkshopID = src.WorkshopID
			info.SourcePath = src.Path

			missing, err := missingRelativeFiles(src.Path, installedPath)
			if err != nil {
				c.logWarn("Failed to diff mod against workshop source", "mod", name, "error", err)
			} else {
				info.MissingFiles = missing
				info.ContentComplete = len(missing) == 0
			}
		}
	}

	// Bikey presence, independent of content.
	info.Bikeys = FindBikeysInMod(installedPath)
	if len(info.Bikeys) > 0 {
		installed := c.InstalledBikeys()
		for _, bk := range info.Bikeys {
			if _, ok := installed[strings.ToLower(bk.Name)]; ok {
				info.HasBikey = true
				break
			}
		}
		info.NeedsBikey = !info.HasBikey
	}

	switch {
	case !info.ContentComplete:
		info.Status = StatusPartiallyInstalled
	case info.NeedsBikey:
		info.Status = StatusMissingBikey
	default:
		info.Status = StatusFullyInstalled
	}

	return info, nil
}

// CheckAllMods enumerates every installed mod, checks each one, and scans for
// duplicate identities and orphaned bikeys. A mod folder that cannot be read
// becomes a "scan" issue in the report; it never aborts the whole check.
func (c *Checker) CheckAllMods() (*IntegrityReport, error) {
	report := &IntegrityReport{
		Timestamp:  time.Now(),
		ServerPath: c.serverDir,
	}

	names, err := c.InstalledMods()
	if err != nil {
		return nil, err
	}

	total := len(names)
	report.TotalChecked = total

	identities := make(map[string][]string)  // normalized name -> folders
	workshopIDs := make(map[string][]string) // workshop id -> folders
	claimedKeys := make(map[string]bool)     // lowercase bikey names provided by installed mods
	modIndex := make(map[string]int)         // folder -> index into report.Mods

	for i, name := range names {
		c.reportProgress(fmt.Sprintf("Checking %s", name), i+1, total)

		info, err := c.CheckMod(name)
		if err != nil {
			report.Issues = append(report.Issues, IntegrityIssue{
				Severity: SeverityFailed,
				Category: "scan",
				ModName:  name,
				Message:  fmt.Sprintf("Mod %q could not be scanned: %v", name, err),
			})
			continue
		}

		modIndex[name] = len(report.Mods)
		report.Mods = append(report.Mods, *info)

		// Git-tracked mods get their checkout verified too. Only folders
		// carrying a .git directory qualify; VerifyRepoIntegrity errors on
		// anything else.
		if _, err := os.Stat(filepath.Join(info.InstalledPath, ".git")); err == nil {
			if verr := VerifyRepoIntegrity(info.InstalledPath); verr != nil {
				report.Issues = append(report.Issues, IntegrityIssue{
					Severity:   SeverityWarning,
					Category:   "scan",
					ModName:    name,
					Message:    fmt.Sprintf("Mod %q has a damaged git checkout: %v", name, verr),
					Suggestion: "Remove the mod and clone it again",
				})
			}
		}

		switch info.Status {
		case StatusFullyInstalled:
			report.FullyInstalled++
		case StatusMissingBikey:
			report.MissingBikeys++
			report.Issues = append(report.Issues, IntegrityIssue{
				Severity:   SeverityWarning,
				Category:   "bikey",
				ModName:    name,
				Message:    fmt.Sprintf("Mod %q is missing its .bikey file(s) in the server keys folder", name),
				Suggestion: "Run 'dayzctl keys extract' or reinstall the mod with bikey copying enabled",
			})
		case StatusPartiallyInstalled:
			report.PartialInstalled++
			report.Issues = append(report.Issues, IntegrityIssue{
				Severity:   SeverityFailed,
				Category:   "file",
				ModName:    name,
				Message:    fmt.Sprintf("Mod %q is missing %d file(s) present in its workshop source", name, len(info.MissingFiles)),
				Suggestion: fmt.Sprintf("Run 'dayzctl mods install %s' to copy the missing files", name),
			})
		}

		identities[normalizeIdentity(name)] = append(identities[normalizeIdentity(name)], name)
		if info.WorkshopID != "" && info.WorkshopID != workshop.LocalID {
			workshopIDs[info.WorkshopID] = append(workshopIDs[info.WorkshopID], name)
		}
		for _, bk := range info.Bikeys {
			claimedKeys[strings.ToLower(bk.Name)] = true
		}
	}

	c.flagDuplicates(report, identities, "share the same normalized name", modIndex)
	c.flagDuplicates(report, workshopIDs, "resolve to the same workshop id", modIndex)
	c.flagOrphanBikeys(report, claimedKeys)

	return report, nil
}

// flagDuplicates records a duplicate issue for every identity bucket holding
// more than one installed folder and marks the involved mods.
func (c *Checker) flagDuplicates(report *IntegrityReport, buckets map[string][]string, reason string, modIndex map[string]int) {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		folders := buckets[key]
		if len(folders) < 2 {
			continue
		}
		// A folder pair already flagged by name identity shouldn't be
		// double-counted when it also shares a workshop id.
		alreadyFlagged := true
		for _, folder := range folders {
			if i, ok := modIndex[folder]; ok && report.Mods[i].Status != StatusDuplicate {
				alreadyFlagged = false
			}
		}
		if alreadyFlagged {
			continue
		}

		sort.Strings(folders)
		for _, folder := range folders {
			if i, ok := modIndex[folder]; ok {
				report.Mods[i].Status = StatusDuplicate
			}
		}
		report.Duplicates++
		report.Issues = append(report.Issues, IntegrityIssue{
			Severity:   SeverityWarning,
			Category:   "duplicate",
			ModName:    folders[0],
			Message:    fmt.Sprintf("Folders %s %s", strings.Join(folders, ", "), reason),
			Suggestion: "Remove all but one of the conflicting installs",
		})
	}
}

// flagOrphanBikeys reports keys present in the server keys folder that no
// installed mod provides: the mod content is gone but its license key stayed
// behind.
func (c *Checker) flagOrphanBikeys(report *IntegrityReport, claimed map[string]bool) {
	installed := c.InstalledBikeys()

	var orphans []string
	for lower := range installed {
		if !claimed[lower] {
			orphans = append(orphans, lower)
		}
	}
	sort.Strings(orphans)

	for _, name := range orphans {
		report.OrphanBikeys++
		report.Issues = append(report.Issues, IntegrityIssue{
			Severity:   SeverityWarning,
			Category:   "folder",
			Message:    fmt.Sprintf("Bikey %q is installed but no mod folder provides it (mod not installed, orphan bikey)", name),
			Suggestion: "Install the matching mod or delete the stale key",
		})
	}
}

// serverBinaries are the executable names a DayZ server install ships under,
// Linux and Windows respectively.
var serverBinaries = []string{"DayZServer", "DayZServer_x64", "DayZServer_x64.exe"}

// CheckServerIntegrity verifies the server's critical files independently of
// any mod: the server executable, serverDZ.cfg, and the keys folder.
func (c *Checker) CheckServerIntegrity() []IntegrityIssue {
	var issues []IntegrityIssue

	if fi, err := os.Stat(c.serverDir); err != nil || !fi.IsDir() {
		issues = append(issues, IntegrityIssue{
			Severity: SeverityFailed,
			Category: "server",
			Message:  fmt.Sprintf("Server directory %q is not accessible", c.serverDir),
		})
		return issues
	}

	found := false
	for _, bin := range serverBinaries {
		if _, err := os.Stat(filepath.Join(c.serverDir, bin)); err == nil {
			found = true
			break
		}
	}
	if !found {
		issues = append(issues, IntegrityIssue{
			Severity:   SeverityFailed,
			Category:   "server",
			Message:    "Server executable not found (DayZServer or DayZServer_x64.exe)",
			Suggestion: "Check that the server directory points at a DayZ server install",
		})
	}

	if _, err := os.Stat(filepath.Join(c.serverDir, "serverDZ.cfg")); err != nil {
		issues = append(issues, IntegrityIssue{
			Severity:   SeverityWarning,
			Category:   "server",
			Message:    "serverDZ.cfg not found in the server directory",
			Suggestion: "Create one or pass an explicit config when launching the server",
		})
	}

	if fi, err := os.Stat(c.keysDir); err != nil || !fi.IsDir() {
		issues = append(issues, IntegrityIssue{
			Severity:   SeverityWarning,
			Category:   "server",
			Message:    "Server keys folder is missing",
			Suggestion: "Run 'dayzctl keys extract' to create it and install mod keys",
		})
	}

	return issues
}

// normalizeIdentity folds case and strips the @ prefix and common version
// suffixes so "@CF" and "@cf" (or "@Mod_v1" and "@Mod_v2") collide.
func normalizeIdentity(folder string) string {
	normalized := strings.ToLower(strings.TrimPrefix(folder, "@"))
	for _, suffix := range []string{"_v1", "_v2", "-v1", "-v2", "_latest", "-latest"} {
		normalized = strings.TrimSuffix(normalized, suffix)
	}
	return strings.TrimSpace(normalized)
}

func (c *Checker) logWarn(msg string, keyvals ...interface{}) {
	if c.log != nil {
		c.log.Warn(msg, keyvals...)
	}
}
