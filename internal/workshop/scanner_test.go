package workshop

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanWorkshopIDLayout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "1559212036", "@CF", "meta.cpp"), `version = "1.24";`)
	writeFile(t, filepath.Join(dir, "1559212036", "@CF", "addons", "core.pbo"), "pbo")
	writeFile(t, filepath.Join(dir, "2291785437", "@Medical", "mod.cpp"), `version = '0.9';`)
	// Non-mod content is ignored
	writeFile(t, filepath.Join(dir, "1559212036", "readme.txt"), "x")

	entries, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("found %d entries, want 2", len(entries))
	}

	if entries[0].WorkshopID != "1559212036" || entries[0].Folder != "@CF" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[0].Version != "1.24" {
		t.Errorf("version = %q, want 1.24", entries[0].Version)
	}
	if entries[1].Version != "0.9" {
		t.Errorf("mod.cpp version = %q, want 0.9", entries[1].Version)
	}
}

func TestScanFlatLayout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "@Local", "addons", "a.pbo"), "pbo")

	entries, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d entries, want 1", len(entries))
	}
	if entries[0].WorkshopID != LocalID {
		t.Errorf("WorkshopID = %q, want %q", entries[0].WorkshopID, LocalID)
	}
}

func TestScanMissingRoot(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("Scan of a missing root did not fail")
	}
}

func TestResolveSourceCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "123", "@CF", "addons", "a.pbo"), "pbo")

	entry, ok := ResolveSource(dir, "@cf")
	if !ok {
		t.Fatal("ResolveSource failed to match case variant")
	}
	if entry.Folder != "@CF" {
		t.Errorf("Folder = %q, want @CF", entry.Folder)
	}

	if _, ok := ResolveSource(dir, "@Nope"); ok {
		t.Error("ResolveSource matched a missing mod")
	}
}

func TestSourcePath(t *testing.T) {
	if got := SourcePath("/w", "123", "@CF"); got != filepath.Join("/w", "123", "@CF") {
		t.Errorf("SourcePath = %q", got)
	}
	if got := SourcePath("/w", LocalID, "@CF"); got != filepath.Join("/w", "@CF") {
		t.Errorf("local SourcePath = %q", got)
	}
	if got := SourcePath("/w", "", "@CF"); got != filepath.Join("/w", "@CF") {
		t.Errorf("empty-id SourcePath = %q", got)
	}
}

func TestModVersion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "meta.cpp"), "name = \"CF\";\nVERSION = \"1.0.5\";\n")

	if got := ModVersion(dir); got != "1.0.5" {
		t.Errorf("ModVersion = %q, want 1.0.5", got)
	}

	if got := ModVersion(t.TempDir()); got != "" {
		t.Errorf("ModVersion of empty dir = %q, want empty", got)
	}
}

func TestFolderSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.pbo"), "12345")
	writeFile(t, filepath.Join(dir, "sub", "b.pbo"), "123")

	size, files := FolderSize(dir)
	if size != 8 || files != 2 {
		t.Errorf("FolderSize = (%d, %d), want (8, 2)", size, files)
	}
}
