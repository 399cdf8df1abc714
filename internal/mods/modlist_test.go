package mods

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestFormatModsTxt(t *testing.T) {
	got := FormatModsTxt([]string{"@CF", "Medical"})
	if got != "@CF;@Medical;" {
		t.Errorf("FormatModsTxt = %q, want @CF;@Medical;", got)
	}
	if FormatModsTxt(nil) != "" {
		t.Error("empty list should render to an empty string")
	}
}

func TestParseModsTxt(t *testing.T) {
	got := ParseModsTxt("@CF;@Medical;\n")
	want := []string{"@CF", "@Medical"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseModsTxt = %v, want %v", got, want)
	}

	// Doubled and trailing semicolons are tolerated
	got = ParseModsTxt(";;@CF;;")
	if !reflect.DeepEqual(got, []string{"@CF"}) {
		t.Errorf("ParseModsTxt = %v, want [@CF]", got)
	}
}

func TestLaunchParameter(t *testing.T) {
	got := LaunchParameter([]string{"@CF", "@Medical"})
	if got != "-mod=@CF;@Medical" {
		t.Errorf("LaunchParameter = %q", got)
	}
	if LaunchParameter(nil) != "" {
		t.Error("empty list should render to an empty string")
	}
}

func TestSyncModsTxt(t *testing.T) {
	c, serverDir, _ := newTestChecker(t)
	writeFile(t, filepath.Join(serverDir, "@Medical", "addons", "a.pbo"), "x")
	writeFile(t, filepath.Join(serverDir, "@CF", "addons", "a.pbo"), "x")

	path, count, err := c.SyncModsTxt()
	if err != nil {
		t.Fatalf("SyncModsTxt failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	// InstalledMods sorts, so CF comes first
	if strings.TrimSpace(string(data)) != "@CF;@Medical;" {
		t.Errorf("mods.txt = %q", data)
	}
}
