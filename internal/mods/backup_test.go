package mods

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCreateAndRestoreBackup(t *testing.T) {
	bm := NewBackupManager(t.TempDir())

	modPath := filepath.Join(t.TempDir(), "@CF")
	writeFile(t, filepath.Join(modPath, "addons", "core.pbo"), "original")

	backupPath, err := bm.CreateBackup(modPath, "@CF")
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(backupPath, "addons", "core.pbo")); err != nil {
		t.Fatal("backup does not contain the mod content")
	}

	// Corrupt the live copy, then restore
	writeFile(t, filepath.Join(modPath, "addons", "core.pbo"), "damaged")

	latest, err := bm.GetLatestBackup("@CF")
	if err != nil {
		t.Fatalf("GetLatestBackup failed: %v", err)
	}
	if err := bm.RestoreBackup("@CF", latest, modPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(modPath, "addons", "core.pbo"))
	if string(data) != "original" {
		t.Errorf("restored content = %q, want original", data)
	}
}

func TestListBackupsEmpty(t *testing.T) {
	bm := NewBackupManager(t.TempDir())

	backups, err := bm.ListBackups("@CF")
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("backups = %v, want empty", backups)
	}

	if _, err := bm.GetLatestBackup("@CF"); err == nil {
		t.Error("GetLatestBackup did not fail with no backups")
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	bm := NewBackupManager(t.TempDir())
	if err := bm.RestoreBackup("@CF", "20200101-000000", t.TempDir()); err == nil {
		t.Fatal("RestoreBackup of a missing timestamp did not fail")
	}
}

func TestDeleteAllBackups(t *testing.T) {
	bm := NewBackupManager(t.TempDir())
	modPath := filepath.Join(t.TempDir(), "@CF")
	writeFile(t, filepath.Join(modPath, "a.pbo"), "x")

	if _, err := bm.CreateBackup(modPath, "@CF"); err != nil {
		t.Fatal(err)
	}
	if err := bm.DeleteAllBackups("@CF"); err != nil {
		t.Fatalf("DeleteAllBackups failed: %v", err)
	}
	backups, _ := bm.ListBackups("@CF")
	if len(backups) != 0 {
		t.Errorf("backups = %v after DeleteAllBackups", backups)
	}
}
