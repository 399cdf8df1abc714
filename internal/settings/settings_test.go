package settings

import "testing"

func TestDefaultsWhenNoFile(t *testing.T) {
	m := NewManager(t.TempDir())
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s := m.Get()
	if !s.AutoCopyBikeys || !s.AutoBackup || !s.ConfirmActions {
		t.Errorf("defaults = %+v", s)
	}
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()

	m := NewManager(dir)
	if err := m.Load(); err != nil {
		t.Fatal(err)
	}

	s := m.Get()
	s.DefaultServerPath = "/srv/dayz"
	s.AutoCopyBikeys = false
	s.LastProfile = "main"
	m.Set(s)
	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	reloaded := NewManager(dir)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got := reloaded.Get()
	if got.DefaultServerPath != "/srv/dayz" || got.AutoCopyBikeys || got.LastProfile != "main" {
		t.Errorf("reloaded settings = %+v", got)
	}
	// Untouched fields keep their defaults
	if !got.AutoBackup {
		t.Error("AutoBackup default lost on reload")
	}
}
