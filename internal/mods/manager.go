package mods

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/dzserver/dayzctl/internal/workshop"
)

// Manager handles mod install/remove/update operations against a server
// directory. The read-only reconciliation lives in Checker; Manager owns the
// mutating workflows built on top of it.
type Manager struct {
	serverDir   string
	workshopDir string
	dataDir     string
	checker     *Checker
	backup      *BackupManager
	log         *log.Logger
}

// NewManager creates a new mod manager
func NewManager(serverDir, workshopDir, dataDir string, logger *log.Logger) *Manager {
	return &Manager{
		serverDir:   serverDir,
		workshopDir: workshopDir,
		dataDir:     dataDir,
		checker:     NewChecker(serverDir, workshopDir, logger),
		backup:      NewBackupManager(dataDir),
		log:         logger,
	}
}

// Checker returns the integrity checker sharing this manager's paths
func (m *Manager) Checker() *Checker { return m.checker }

// BackupManager returns the backup manager
func (m *Manager) BackupManager() *BackupManager { return m.backup }

// ModsDir returns the mods root path
func (m *Manager) ModsDir() string { return m.checker.ModsDir() }

// InstallResult contains information about a completed install
type InstallResult struct {
	Name    string
	Path    string
	Actions []InstallAction
}

// Install installs a mod from the workshop. With overwrite set, an existing
// destination folder is deleted first (full reinstall); otherwise only
// missing files are copied.
func (m *Manager) Install(ctx context.Context, workshopID, folder string, copyBikeys, overwrite bool) (*InstallResult, error) {
	folder = EnsureAtPrefix(folder)

	sourcePath := workshop.SourcePath(m.workshopDir, workshopID, folder)
	if _, err := os.Stat(sourcePath); err != nil {
		// The id may be unknown to the caller; fall back to a scan.
		src, ok := workshop.ResolveSource(m.workshopDir, folder)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
		}
		sourcePath = src.Path
	}

	destPath := filepath.Join(m.ModsDir(), folder)
	if overwrite {
		if _, err := os.Stat(destPath); err == nil {
			if err := os.RemoveAll(destPath); err != nil {
				return nil, &DestWriteError{Dest: destPath, Err: err}
			}
		}
	}

	ok, actions, err := m.checker.SmartInstallMod(ctx, folder, sourcePath, copyBikeys)
	if !ok {
		return &InstallResult{Name: folder, Path: destPath, Actions: actions}, err
	}

	m.logInfo("Mod installed", "name", folder, "source", sourcePath, "copied", len(actions))
	return &InstallResult{Name: folder, Path: destPath, Actions: actions}, nil
}

// RemoveResult contains information about a completed removal
type RemoveResult struct {
	BackupPath    string
	BikeysRemoved []string
}

// Remove deletes an installed mod folder. With removeBikeys set, its license
// keys are deleted from the server keys folder too, unless another installed
// mod still provides the same key.
func (m *Manager) Remove(name string, removeBikeys, createBackup bool) (*RemoveResult, error) {
	name = EnsureAtPrefix(name)
	modPath := filepath.Join(m.ModsDir(), name)

	if _, err := os.Stat(modPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModNotFound, name)
	}

	result := &RemoveResult{}

	// Record the mod's keys before the folder disappears.
	var modKeys []BikeyInfo
	if removeBikeys {
		modKeys = FindBikeysInMod(modPath)
	}

	if createBackup {
		backupPath, err := m.backup.CreateBackup(modPath, name)
		if err != nil {
			m.logWarn("Failed to create backup", "error", err)
		} else {
			result.BackupPath = backupPath
			m.logInfo("Backup created", "path", backupPath)
		}
	}

	if err := os.RemoveAll(modPath); err != nil {
		return nil, fmt.Errorf("failed to remove mod: %w", err)
	}

	if removeBikeys && len(modKeys) > 0 {
		result.BikeysRemoved = m.removeUnsharedBikeys(name, modKeys)
	}

	m.logInfo("Mod removed", "name", name)
	return result, nil
}

// removeUnsharedBikeys deletes the given keys from the server keys folder,
// skipping any still provided by another installed mod.
func (m *Manager) removeUnsharedBikeys(removedMod string, keys []BikeyInfo) []string {
	shared := make(map[string]bool)
	if names, err := m.checker.InstalledMods(); err == nil {
		for _, other := range names {
			if strings.EqualFold(other, removedMod) {
				continue
			}
			for _, bk := range FindBikeysInMod(filepath.Join(m.ModsDir(), other)) {
				shared[strings.ToLower(bk.Name)] = true
			}
		}
	}

	installed := m.checker.InstalledBikeys()
	var removed []string
	for _, bk := range keys {
		lower := strings.ToLower(bk.Name)
		if shared[lower] {
			m.logDebug("Keeping shared bikey", "name", bk.Name)
			continue
		}
		path, ok := installed[lower]
		if !ok {
			continue
		}
		if err := os.Remove(path); err != nil {
			m.logWarn("Failed to remove bikey", "name", bk.Name, "error", err)
			continue
		}
		removed = append(removed, bk.Name)
	}
	return removed
}

// UpdateResult contains information about an update operation
type UpdateResult struct {
	Updated         bool
	AlreadyUpToDate bool
	FromGit         bool
	Actions         []InstallAction
}

// Update refreshes an installed mod. Git-tracked mods fast-forward from their
// origin; workshop mods are wiped and re-copied from their source.
// progressWriter can be nil to disable git progress output.
func (m *Manager) Update(ctx context.Context, name string, progressWriter io.Writer) (*UpdateResult, error) {
	name = EnsureAtPrefix(name)
	modPath := filepath.Join(m.ModsDir(), name)
	result := &UpdateResult{}

	if _, err := os.Stat(modPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrModNotFound, name)
	}

	if IsGitRepo(modPath) {
		result.FromGit = true
		err := UpdateRepo(modPath, progressWriter)
		if errors.Is(err, ErrAlreadyUpToDate) {
			result.AlreadyUpToDate = true
			return result, nil
		}
		if errors.Is(err, ErrFFNotPossible) {
			return nil, fmt.Errorf("cannot update %s: local modifications exist (remove and clone again to force)", name)
		}
		if err != nil {
			return nil, err
		}
		result.Updated = true
		m.logInfo("Mod updated from git", "name", name)
		return result, nil
	}

	src, ok := workshop.ResolveSource(m.workshopDir, name)
	if !ok {
		return nil, fmt.Errorf("%w: no workshop source for %s", ErrSourceNotFound, name)
	}

	if _, err := m.backup.CreateBackup(modPath, name); err != nil {
		m.logWarn("Failed to create backup before update", "error", err)
	}

	if err := os.RemoveAll(modPath); err != nil {
		return nil, &DestWriteError{Dest: modPath, Err: err}
	}

	ok2, actions, err := m.checker.SmartInstallMod(ctx, name, src.Path, true)
	result.Actions = actions
	if !ok2 {
		return result, err
	}

	result.Updated = true
	m.logInfo("Mod updated from workshop", "name", name, "copied", len(actions))
	return result, nil
}

// Selection names one workshop mod for a bulk operation.
type Selection struct {
	WorkshopID string
	Folder     string
}

// BulkResult collects the per-mod outcomes of a bulk operation. A failure on
// one mod never aborts the batch; cancellation stops before the next mod.
type BulkResult struct {
	Succeeded []string
	Failed    []string
	Errors    []string
	Actions   []InstallAction
	Cancelled bool
}

// InstallAll smart-installs every selected mod, reporting progress per mod.
func (m *Manager) InstallAll(ctx context.Context, selections []Selection, copyBikeys bool, progress ProgressFunc) *BulkResult {
	result := &BulkResult{}
	total := len(selections)

	for i, sel := range selections {
		if ctx.Err() != nil {
			result.Cancelled = true
			break
		}
		if progress != nil {
			progress(fmt.Sprintf("Installing %s", sel.Folder), i+1, total)
		}

		res, err := m.Install(ctx, sel.WorkshopID, sel.Folder, copyBikeys, false)
		if res != nil {
			result.Actions = append(result.Actions, res.Actions...)
		}
		if err != nil {
			if errors.Is(err, context.Canceled) {
				result.Cancelled = true
				break
			}
			result.Failed = append(result.Failed, sel.Folder)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", sel.Folder, err))
			continue
		}
		result.Succeeded = append(result.Succeeded, sel.Folder)
	}

	return result
}

// UpdateAllResult contains results from updating all mods
type UpdateAllResult struct {
	Updated int
	Failed  int
	Skipped int
	Errors  []string
}

// UpdateAll updates every installed mod that has a known source.
func (m *Manager) UpdateAll(ctx context.Context) (*UpdateAllResult, error) {
	result := &UpdateAllResult{}

	names, err := m.checker.InstalledMods()
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		if ctx.Err() != nil {
			break
		}

		updateResult, err := m.Update(ctx, name, nil)
		if err != nil {
			if errors.Is(err, ErrSourceNotFound) {
				result.Skipped++
				continue
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		if updateResult.AlreadyUpToDate {
			result.Skipped++
		} else if updateResult.Updated {
			result.Updated++
		}
	}

	return result, nil
}

// CloneMod installs a git-distributed mod by cloning it into the mods root
// and copying its bikeys into the server keys folder.
// progressWriter can be nil to disable progress output.
func (m *Manager) CloneMod(gitURL string, progressWriter io.Writer, copyBikeys bool) (*InstallResult, error) {
	if err := ValidateGitURL(gitURL); err != nil {
		return nil, ErrInvalidURL
	}

	gitURL = NormalizeGitURL(gitURL)
	name := ExtractRepoName(gitURL)

	modPath := filepath.Join(m.ModsDir(), name)
	if _, err := os.Stat(modPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrModExists, name)
	}

	if err := CloneRepo(gitURL, modPath, progressWriter); err != nil {
		_ = CleanupFailedClone(modPath)
		return nil, err
	}

	result := &InstallResult{Name: name, Path: modPath}

	if copyBikeys {
		actions, err := m.checker.copyModBikeys(modPath)
		result.Actions = actions
		if err != nil {
			return result, err
		}
	}

	m.logInfo("Mod cloned", "name", name, "url", gitURL)
	return result, nil
}

// GetInfo returns detailed information about an installed mod
func (m *Manager) GetInfo(name string) (*ModInfo, error) {
	return m.checker.CheckMod(name)
}

// ListInstalled returns all installed mods, sorted by name.
func (m *Manager) ListInstalled() ([]*ModInfo, error) {
	if _, err := os.Stat(m.ModsDir()); os.IsNotExist(err) {
		return []*ModInfo{}, nil
	}

	names, err := m.checker.InstalledMods()
	if err != nil {
		return nil, err
	}

	var infos []*ModInfo
	for _, name := range names {
		info, err := m.checker.CheckMod(name)
		if err != nil {
			// Include the mod even when it can't be fully inspected
			info = &ModInfo{
				Name:          name,
				InstalledPath: filepath.Join(m.ModsDir(), name),
				Status:        StatusPartiallyInstalled,
			}
		}
		infos = append(infos, info)
	}

	return infos, nil
}

func (m *Manager) logInfo(msg string, keyvals ...interface{}) {
	if m.log != nil {
		m.log.Info(msg, keyvals...)
	}
}

func (m *Manager) logWarn(msg string, keyvals ...interface{}) {
	if m.log != nil {
		m.log.Warn(msg, keyvals...)
	}
}

func (m *Manager) logDebug(msg string, keyvals ...interface{}) {
	if m.log != nil {
		m.log.Debug(msg, keyvals...)
	}
}
