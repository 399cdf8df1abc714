package mods

import (
	"errors"
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

// newTestChecker sets up a server dir and a workshop dir with the
// <id>/@Mod layout and returns a checker over them.
func newTestChecker(t *testing.T) (*Checker, string, string) {
	t.Helper()
	serverDir := t.TempDir()
	workshopDir := t.TempDir()
	return NewChecker(serverDir, workshopDir, nil), serverDir, workshopDir
}

// installFixtureMod writes the same mod content into the workshop source and
// the server, including a bikey inside the mod's keys folder.
func installFixtureMod(t *testing.T, serverDir, workshopDir, id, name string) {
	t.Helper()
	for _, root := range []string{filepath.Join(workshopDir, id, name), filepath.Join(serverDir, name)} {
		writeFile(t, filepath.Join(root, "meta.cpp"), `name = "Fixture";`+"\n"+`version = "1.5";`+"\n")
		writeFile(t, filepath.Join(root, "addons", "core.pbo"), "pbo-data")
		writeFile(t, filepath.Join(root, "keys", name[1:]+".bikey"), "key-data")
	}
}

func TestCheckModFullyInstalled(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "123", "@CF")
	writeFile(t, filepath.Join(serverDir, "keys", "CF.bikey"), "key-data")

	info, err := c.CheckMod("@CF")
	if err != nil {
		t.Fatalf("CheckMod failed: %v", err)
	}

	if info.Status != StatusFullyInstalled {
		t.Errorf("status = %s, want %s", info.Status, StatusFullyInstalled)
	}
	if info.NeedsBikey {
		t.Error("NeedsBikey = true for a mod whose key is installed")
	}
	if !info.ContentComplete {
		t.Error("ContentComplete = false with no missing files")
	}
	if info.WorkshopID != "123" {
		t.Errorf("WorkshopID = %q, want 123", info.WorkshopID)
	}
	if info.Version != "1.5" {
		t.Errorf("Version = %q, want 1.5", info.Version)
	}
}

func TestCheckModMissingBikey(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "123", "@CF")
	// No key in the server keys folder.

	info, err := c.CheckMod("CF")
	if err != nil {
		t.Fatalf("CheckMod failed: %v", err)
	}
	if info.Status != StatusMissingBikey {
		t.Errorf("status = %s, want %s", info.Status, StatusMissingBikey)
	}
	if !info.NeedsBikey {
		t.Error("NeedsBikey = false with no installed key")
	}
}

func TestCheckModBikeyMatchIsCaseInsensitive(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "123", "@CF")
	writeFile(t, filepath.Join(serverDir, "keys", "cf.BIKEY"), "key-data")

	info, err := c.CheckMod("@CF")
	if err != nil {
		t.Fatalf("CheckMod failed: %v", err)
	}
	if info.NeedsBikey {
		t.Error("NeedsBikey = true despite a case-variant key being installed")
	}
}

func TestCheckModPartiallyInstalled(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "123", "@CF")
	writeFile(t, filepath.Join(serverDir, "keys", "CF.bikey"), "key-data")
	// Extra source file missing from the server copy.
	writeFile(t, filepath.Join(workshopDir, "123", "@CF", "addons", "extra.pbo"), "pbo-data")

	info, err := c.CheckMod("@CF")
	if err != nil {
		t.Fatalf("CheckMod failed: %v", err)
	}
	if info.Status != StatusPartiallyInstalled {
		t.Errorf("status = %s, want %s", info.Status, StatusPartiallyInstalled)
	}
	if len(info.MissingFiles) != 1 || info.MissingFiles[0] != filepath.Join("addons", "extra.pbo") {
		t.Errorf("MissingFiles = %v, want [addons/extra.pbo]", info.MissingFiles)
	}
}

func TestCheckModNotFound(t *testing.T) {
	c, _, _ := newTestChecker(t)

	_, err := c.CheckMod("@Nope")
	if !errors.Is(err, ErrModNotFound) {
		t.Fatalf("err = %v, want ErrModNotFound", err)
	}
}

func TestCheckModWithoutWorkshopSource(t *testing.T) {
	c, serverDir, _ := newTestChecker(t)
	writeFile(t, filepath.Join(serverDir, "@Custom", "addons", "a.pbo"), "pbo-data")

	info, err := c.CheckMod("@Custom")
	if err != nil {
		t.Fatalf("CheckMod failed: %v", err)
	}
	// Without a source to diff against, presence of files is all we know.
	if !info.ContentComplete {
		t.Error("ContentComplete = false for a mod with no workshop source")
	}
	if info.Status != StatusFullyInstalled {
		t.Errorf("status = %s, want %s", info.Status, StatusFullyInstalled)
	}
}

func TestCheckAllModsCounts(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "111", "@CF")
	installFixtureMod(t, serverDir, workshopDir, "222", "@Medical")
	// Only Medical's key is installed; CF's is missing.
	writeFile(t, filepath.Join(serverDir, "keys", "Medical.bikey"), "key-data")

	report, err := c.CheckAllMods()
	if err != nil {
		t.Fatalf("CheckAllMods failed: %v", err)
	}

	if report.TotalChecked != 2 {
		t.Errorf("TotalChecked = %d, want 2", report.TotalChecked)
	}
	if report.FullyInstalled != 1 {
		t.Errorf("FullyInstalled = %d, want 1", report.FullyInstalled)
	}
	if report.MissingBikeys != 1 {
		t.Errorf("MissingBikeys = %d, want 1", report.MissingBikeys)
	}

	var bikeyIssues int
	for _, issue := range report.Issues {
		if issue.Category == "bikey" {
			bikeyIssues++
			if issue.ModName != "@CF" {
				t.Errorf("bikey issue names %q, want @CF", issue.ModName)
			}
		}
	}
	if bikeyIssues != 1 {
		t.Errorf("bikey issues = %d, want 1", bikeyIssues)
	}

	if report.Status() != ReportWarning {
		t.Errorf("Status() = %s, want %s", report.Status(), ReportWarning)
	}
}

func TestCheckAllModsDuplicates(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "111", "@Trader")
	installFixtureMod(t, serverDir, workshopDir, "112", "@Trader_v2")
	writeFile(t, filepath.Join(serverDir, "keys", "Trader.bikey"), "key-data")
	writeFile(t, filepath.Join(serverDir, "keys", "Trader_v2.bikey"), "key-data")

	report, err := c.CheckAllMods()
	if err != nil {
		t.Fatalf("CheckAllMods failed: %v", err)
	}

	if report.Duplicates != 1 {
		t.Fatalf("Duplicates = %d, want 1", report.Duplicates)
	}
	for _, mod := range report.Mods {
		if mod.Status != StatusDuplicate {
			t.Errorf("mod %s status = %s, want %s", mod.Name, mod.Status, StatusDuplicate)
		}
	}
}

func TestCheckAllModsSameWorkshopIDCountedOnce(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	// Two installed folders resolving to the same workshop folder would need
	// case variants; here the name identity already collides, so the shared
	// workshop id must not produce a second duplicate issue.
	installFixtureMod(t, serverDir, workshopDir, "111", "@Trader")
	installFixtureMod(t, serverDir, workshopDir, "111", "@Trader_latest")

	report, err := c.CheckAllMods()
	if err != nil {
		t.Fatalf("CheckAllMods failed: %v", err)
	}
	if report.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", report.Duplicates)
	}
}

func TestCheckAllModsOrphanBikey(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "111", "@CF")
	writeFile(t, filepath.Join(serverDir, "keys", "CF.bikey"), "key-data")
	writeFile(t, filepath.Join(serverDir, "keys", "Stale.bikey"), "key-data")

	report, err := c.CheckAllMods()
	if err != nil {
		t.Fatalf("CheckAllMods failed: %v", err)
	}

	if report.OrphanBikeys != 1 {
		t.Fatalf("OrphanBikeys = %d, want 1", report.OrphanBikeys)
	}
	found := false
	for _, issue := range report.Issues {
		if issue.Category == "folder" {
			found = true
		}
	}
	if !found {
		t.Error("no folder issue reported for the orphan key")
	}
}

func TestCheckAllModsEmptyServer(t *testing.T) {
	c, _, _ := newTestChecker(t)

	report, err := c.CheckAllMods()
	if err != nil {
		t.Fatalf("CheckAllMods failed: %v", err)
	}
	if report.TotalChecked != 0 || report.HasIssues() {
		t.Errorf("empty server produced TotalChecked=%d HasIssues=%v", report.TotalChecked, report.HasIssues())
	}
	if report.Status() != ReportPassed {
		t.Errorf("Status() = %s, want %s", report.Status(), ReportPassed)
	}
}

func TestNormalizeIdentity(t *testing.T) {
	cases := map[string]string{
		"@CF":         "cf",
		"@cf":         "cf",
		"@Trader_v1":  "trader",
		"@Trader-v2":  "trader",
		"@Mod_latest": "mod",
		"@Mod-latest": "mod",
		"NoPrefix":    "noprefix",
	}
	for in, want := range cases {
		if got := normalizeIdentity(in); got != want {
			t.Errorf("normalizeIdentity(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCheckAllModsFlagsDamagedGitCheckout(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "123", "@CF")
	writeFile(t, filepath.Join(serverDir, "keys", "CF.bikey"), "key-data")

	// A .git directory with no repository inside it.
	if err := os.MkdirAll(filepath.Join(serverDir, "@CF", ".git"), 0755); err != nil {
		t.Fatal(err)
	}

	report, err := c.CheckAllMods()
	if err != nil {
		t.Fatalf("CheckAllMods failed: %v", err)
	}

	found := false
	for _, issue := range report.Issues {
		if issue.Category == "scan" && issue.ModName == "@CF" {
			found = true
			if issue.Severity != SeverityWarning {
				t.Errorf("severity = %s, want %s", issue.Severity, SeverityWarning)
			}
		}
	}
	if !found {
		t.Errorf("no scan issue for the damaged checkout, issues = %+v", report.Issues)
	}
}

func TestCheckAllModsIgnoresHealthyNonGitMods(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "123", "@CF")
	writeFile(t, filepath.Join(serverDir, "keys", "CF.bikey"), "key-data")

	report, err := c.CheckAllMods()
	if err != nil {
		t.Fatalf("CheckAllMods failed: %v", err)
	}
	for _, issue := range report.Issues {
		if issue.Category == "scan" {
			t.Errorf("unexpected scan issue: %+v", issue)
		}
	}
}

func TestCheckServerIntegrity(t *testing.T) {
	c, serverDir, _ := newTestChecker(t)

	issues := c.CheckServerIntegrity()
	if len(issues) != 3 {
		t.Fatalf("issues on an empty server dir = %d, want 3: %+v", len(issues), issues)
	}
	for _, issue := range issues {
		if issue.Category != "server" {
			t.Errorf("category = %q, want server", issue.Category)
		}
	}
	if issues[0].Severity != SeverityFailed {
		t.Errorf("missing executable severity = %s, want %s", issues[0].Severity, SeverityFailed)
	}

	writeFile(t, filepath.Join(serverDir, "DayZServer"), "bin")
	writeFile(t, filepath.Join(serverDir, "serverDZ.cfg"), `hostname = "test";`)
	if err := os.MkdirAll(filepath.Join(serverDir, "keys"), 0755); err != nil {
		t.Fatal(err)
	}

	if issues := c.CheckServerIntegrity(); len(issues) != 0 {
		t.Errorf("issues on a complete server = %+v", issues)
	}
}

func TestCheckAllModsReportsProgress(t *testing.T) {
	c, serverDir, workshopDir := newTestChecker(t)
	installFixtureMod(t, serverDir, workshopDir, "1", "@CF")
	installFixtureMod(t, serverDir, workshopDir, "2", "@Medical")

	var currents, totals []int
	c.SetProgress(func(msg string, current, total int) {
		currents = append(currents, current)
		totals = append(totals, total)
	})

	if _, err := c.CheckAllMods(); err != nil {
		t.Fatalf("CheckAllMods failed: %v", err)
	}

	if len(currents) != 2 || currents[0] != 1 || currents[1] != 2 {
		t.Errorf("progress currents = %v, want [1 2]", currents)
	}
	for _, total := range totals {
		if total != 2 {
			t.Errorf("progress total = %d, want 2", total)
		}
	}
}

func TestCheckerDirOverrides(t *testing.T) {
	c, serverDir, _ := newTestChecker(t)
	modsRoot := filepath.Join(serverDir, "custom_mods")
	keysRoot := filepath.Join(serverDir, "custom_keys")
	c.SetModsDir(modsRoot)
	c.SetKeysDir(keysRoot)

	writeFile(t, filepath.Join(modsRoot, "@CF", "addons", "core.pbo"), "pbo")
	writeFile(t, filepath.Join(modsRoot, "@CF", "keys", "CF.bikey"), "key")
	writeFile(t, filepath.Join(keysRoot, "CF.bikey"), "key")

	info, err := c.CheckMod("@CF")
	if err != nil {
		t.Fatalf("CheckMod failed: %v", err)
	}
	if info.Status != StatusFullyInstalled {
		t.Errorf("status = %s, want %s", info.Status, StatusFullyInstalled)
	}
	if !info.HasBikey {
		t.Error("key in the overridden keys dir not recognized")
	}
}
