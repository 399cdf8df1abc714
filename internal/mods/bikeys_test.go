package mods

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindBikeysConventionalDirs(t *testing.T) {
	modDir := t.TempDir()
	writeFile(t, filepath.Join(modDir, "keys", "A.bikey"), "key")
	writeFile(t, filepath.Join(modDir, "Key", "B.bikey"), "key")
	writeFile(t, filepath.Join(modDir, "C.bikey"), "key")
	writeFile(t, filepath.Join(modDir, "keys", "readme.txt"), "not a key")

	bikeys := FindBikeysInMod(modDir)
	if len(bikeys) != 3 {
		t.Fatalf("found %d keys, want 3", len(bikeys))
	}
	// Sorted by name
	if bikeys[0].Name != "A.bikey" || bikeys[1].Name != "B.bikey" || bikeys[2].Name != "C.bikey" {
		t.Errorf("unexpected order: %s, %s, %s", bikeys[0].Name, bikeys[1].Name, bikeys[2].Name)
	}
}

func TestFindBikeysRecursiveFallback(t *testing.T) {
	modDir := t.TempDir()
	writeFile(t, filepath.Join(modDir, "addons", "nested", "deep.bikey"), "key")

	bikeys := FindBikeysInMod(modDir)
	if len(bikeys) != 1 || bikeys[0].Name != "deep.bikey" {
		t.Fatalf("fallback search found %v", bikeys)
	}
}

func TestFindBikeysNone(t *testing.T) {
	modDir := t.TempDir()
	writeFile(t, filepath.Join(modDir, "addons", "core.pbo"), "pbo")

	if bikeys := FindBikeysInMod(modDir); len(bikeys) != 0 {
		t.Fatalf("found %d keys in a keyless mod", len(bikeys))
	}
}

func TestExtractAllBikeysIdempotent(t *testing.T) {
	c, serverDir, _ := newTestChecker(t)
	writeFile(t, filepath.Join(serverDir, "@CF", "keys", "CF.bikey"), "key")
	writeFile(t, filepath.Join(serverDir, "@Medical", "keys", "Medical.bikey"), "key")

	count, copied, err := c.ExtractAllBikeys()
	if err != nil {
		t.Fatalf("ExtractAllBikeys failed: %v", err)
	}
	if count != 2 || len(copied) != 2 {
		t.Fatalf("first run copied %d (%v), want 2", count, copied)
	}

	count, _, err = c.ExtractAllBikeys()
	if err != nil {
		t.Fatalf("second ExtractAllBikeys failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("second run copied %d, want 0", count)
	}

	if _, err := os.Stat(filepath.Join(serverDir, "keys", "CF.bikey")); err != nil {
		t.Error("CF.bikey missing from keys folder")
	}
}

func TestExtractAllBikeysNoMods(t *testing.T) {
	c, _, _ := newTestChecker(t)

	count, copied, err := c.ExtractAllBikeys()
	if err != nil {
		t.Fatalf("ExtractAllBikeys failed: %v", err)
	}
	if count != 0 || len(copied) != 0 {
		t.Fatalf("copied %d keys from an empty server", count)
	}
}

func TestInstalledBikeysLowercaseKeys(t *testing.T) {
	c, serverDir, _ := newTestChecker(t)
	writeFile(t, filepath.Join(serverDir, "keys", "MiXeD.bikey"), "key")

	installed := c.InstalledBikeys()
	if _, ok := installed["mixed.bikey"]; !ok {
		t.Errorf("installed map keys not lowercased: %v", installed)
	}
}

func TestExtractAllBikeysPartialFailureReportsCopied(t *testing.T) {
	c, serverDir, _ := newTestChecker(t)
	writeFile(t, filepath.Join(serverDir, "@Alpha", "keys", "alpha.bikey"), "key")
	writeFile(t, filepath.Join(serverDir, "@Zulu", "keys", "zulu.bikey"), "key")

	// A directory squatting on the second key's destination name makes that
	// copy fail after the first one succeeded.
	if err := os.MkdirAll(filepath.Join(serverDir, "keys", "zulu.bikey"), 0755); err != nil {
		t.Fatal(err)
	}

	count, copied, err := c.ExtractAllBikeys()
	if err == nil {
		t.Fatal("expected a write error")
	}
	var dwe *DestWriteError
	if !errors.As(err, &dwe) {
		t.Fatalf("error = %v, want *DestWriteError", err)
	}
	if count != 1 || len(copied) != 1 || copied[0] != "alpha.bikey" {
		t.Fatalf("count = %d, copied = %v, want the one completed key", count, copied)
	}
	if _, err := os.Stat(filepath.Join(serverDir, "keys", "alpha.bikey")); err != nil {
		t.Errorf("prior copy gone after the failure: %v", err)
	}
}
