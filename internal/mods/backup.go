package mods

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	// MaxBackupsPerMod is the maximum number of backups to keep per mod
	MaxBackupsPerMod = 3
	// BackupTimestampFormat is the format used for backup directory names
	BackupTimestampFormat = "20060102-150405"
)

// BackupManager keeps timestamped copies of mod folders made before a remove
// or update, pruned to a retention limit.
type BackupManager struct {
	backupDir string
}

// NewBackupManager creates a new backup manager
func NewBackupManager(dataDir string) *BackupManager {
	return &BackupManager{
		backupDir: filepath.Join(dataDir, "backups"),
	}
}

// CreateBackup copies a mod directory into a timestamped backup folder
func (bm *BackupManager) CreateBackup(modPath, modName string) (string, error) {
	modBackupDir := filepath.Join(bm.backupDir, modName)
	if err := os.MkdirAll(modBackupDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	timestamp := time.Now().Format(BackupTimestampFormat)
	backupPath := filepath.Join(modBackupDir, timestamp)

	if err := copyDir(modPath, backupPath); err != nil {
		// Cleanup on failure
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to backup mod: %w", err)
	}

	if err := bm.cleanupOldBackups(modName); err != nil {
		fmt.Printf("Warning: failed to cleanup old backups: %v\n", err)
	}

	return backupPath, nil
}

// RestoreBackup restores a mod from a backup
func (bm *BackupManager) RestoreBackup(modName, backupTimestamp, destPath string) error {
	backupPath := filepath.Join(bm.backupDir, modName, backupTimestamp)

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", backupTimestamp)
	}

	if _, err := os.Stat(destPath); err == nil {
		if err := os.RemoveAll(destPath); err != nil {
			return fmt.Errorf("failed to remove existing mod: %w", err)
		}
	}

	if err := copyDir(backupPath, destPath); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	return nil
}

// ListBackups lists all available backups for a mod, newest first
func (bm *BackupManager) ListBackups(modName string) ([]string, error) {
	modBackupDir := filepath.Join(bm.backupDir, modName)

	entries, err := os.ReadDir(modBackupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() {
			backups = append(backups, entry.Name())
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	return backups, nil
}

// GetLatestBackup returns the most recent backup for a mod
func (bm *BackupManager) GetLatestBackup(modName string) (string, error) {
	backups, err := bm.ListBackups(modName)
	if err != nil {
		return "", err
	}

	if len(backups) == 0 {
		return "", fmt.Errorf("no backups found for %s", modName)
	}

	return backups[0], nil
}

// DeleteBackup deletes a specific backup
func (bm *BackupManager) DeleteBackup(modName, timestamp string) error {
	backupPath := filepath.Join(bm.backupDir, modName, timestamp)
	return os.RemoveAll(backupPath)
}

// DeleteAllBackups deletes all backups for a mod
func (bm *BackupManager) DeleteAllBackups(modName string) error {
	modBackupDir := filepath.Join(bm.backupDir, modName)
	return os.RemoveAll(modBackupDir)
}

// cleanupOldBackups removes old backups exceeding MaxBackupsPerMod
func (bm *BackupManager) cleanupOldBackups(modName string) error {
	backups, err := bm.ListBackups(modName)
	if err != nil {
		return err
	}

	if len(backups) <= MaxBackupsPerMod {
		return nil
	}

	for _, backup := range backups[MaxBackupsPerMod:] {
		if err := bm.DeleteBackup(modName, backup); err != nil {
			return err
		}
	}

	return nil
}

// copyDir recursively copies a directory
func copyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

// copyFile copies a single file
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
