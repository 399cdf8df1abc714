// Package settings persists tool-wide defaults in a JSON file under the
// data directory. Missing fields keep their defaults, so older files from
// previous versions still load.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Settings holds tool-wide defaults.
type Settings struct {
	DefaultServerPath   string `json:"default_server_path"`
	DefaultWorkshopPath string `json:"default_workshop_path"`
	AutoCopyBikeys      bool   `json:"auto_copy_bikeys"`
	AutoBackup          bool   `json:"auto_backup"`
	ConfirmActions      bool   `json:"confirm_actions"`
	LastProfile         string `json:"last_profile"`
}

// Defaults returns the settings used when no file exists yet.
func Defaults() Settings {
	return Settings{
		AutoCopyBikeys: true,
		AutoBackup:     true,
		ConfirmActions: true,
	}
}

// Manager handles persistence of settings
type Manager struct {
	path     string
	settings Settings
	mu       sync.RWMutex
}

// NewManager creates a settings manager storing its file under dataDir
func NewManager(dataDir string) *Manager {
	return &Manager{
		path:     filepath.Join(dataDir, "settings.json"),
		settings: Defaults(),
	}
}

// Load reads settings from disk. A missing file leaves the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			m.settings = Defaults()
			return nil
		}
		return err
	}

	s := Defaults()
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	m.settings = s
	return nil
}

// Save writes settings to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m.settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.path, data, 0644)
}

// Get returns a copy of the current settings
func (m *Manager) Get() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Set replaces the current settings
func (m *Manager) Set(s Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = s
}
