// Package shortname maintains stable short folder aliases for mods, so a
// server's command line stays under OS argument length limits. Aliases use
// the @m1, @m2, ... scheme and are persisted next to the mods so the same
// workshop id always resolves to the same alias.
package shortname

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// MappingFile is the persisted mapping filename inside the server folder.
const MappingFile = "mod_name_mappings.json"

var shortPattern = regexp.MustCompile(`(?i)^m(\d+)$`)

type workshopRecord struct {
	Short    string `json:"short"`
	Original string `json:"original"`
}

// fileFormat is the on-disk v2 layout. Names are stored without the @ prefix.
type fileFormat struct {
	Version    int                       `json:"version"`
	ByShort    map[string]string         `json:"by_short"`
	ByModID    map[string]workshopRecord `json:"by_mod_id"`
	NextIndex  int                       `json:"next_index"`
	LegacyMaps map[string]string         `json:"mappings,omitempty"`
}

// Manager allocates and resolves short mod names for one server folder.
type Manager struct {
	serverDir string
	mu        sync.RWMutex
	byShort   map[string]string
	byModID   map[string]workshopRecord
}

// NewManager creates a manager for the given server folder and loads any
// existing mapping file. A missing or unreadable file yields an empty
// mapping, never an error.
func NewManager(serverDir string) *Manager {
	m := &Manager{
		serverDir: serverDir,
		byShort:   make(map[string]string),
		byModID:   make(map[string]workshopRecord),
	}
	m.load()
	return m
}

func (m *Manager) path() string {
	return filepath.Join(m.serverDir, MappingFile)
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path())
	if err != nil {
		return
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return
	}

	if f.ByShort != nil || f.ByModID != nil {
		if f.ByShort != nil {
			m.byShort = f.ByShort
		}
		if f.ByModID != nil {
			m.byModID = f.ByModID
		}
		return
	}

	// v1 legacy layout: {"mappings": {short: original}}
	for short, orig := range f.LegacyMaps {
		m.byShort[short] = orig
	}
}

func (m *Manager) save() error {
	f := fileFormat{
		Version:   2,
		ByShort:   m.byShort,
		ByModID:   m.byModID,
		NextIndex: m.nextIndexLocked(),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path(), data, 0644)
}

func normalize(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), "@")
}

// Original resolves a short name back to the original folder name. Unknown
// names are returned unchanged. The @ prefix of the input is preserved.
func (m *Manager) Original(short string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orig, ok := m.byShort[normalize(short)]
	if !ok {
		return short
	}
	if strings.HasPrefix(short, "@") {
		return "@" + orig
	}
	return orig
}

// Short returns the allocated alias for an original folder name, or false if
// none exists.
func (m *Manager) Short(original string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	target := strings.ToLower(normalize(original))
	for short, orig := range m.byShort {
		if strings.ToLower(orig) == target {
			if strings.HasPrefix(original, "@") {
				return "@" + short, true
			}
			return short, true
		}
	}
	return "", false
}

// ShortForWorkshopID returns the alias recorded for a workshop id, or false.
func (m *Manager) ShortForWorkshopID(id string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.byModID[id]
	if !ok || rec.Short == "" {
		return "", false
	}
	return "@" + rec.Short, true
}

// Allocate returns a stable @mN alias for the mod, reusing an existing
// mapping by workshop id or original name before allocating a new one.
func (m *Manager) Allocate(original, workshopID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	orig := normalize(original)

	if workshopID != "" {
		if rec, ok := m.byModID[workshopID]; ok && shortPattern.MatchString(rec.Short) {
			return "@" + rec.Short, nil
		}
	}

	target := strings.ToLower(orig)
	for short, o := range m.byShort {
		if strings.ToLower(o) == target && shortPattern.MatchString(short) {
			return "@" + short, nil
		}
	}

	short := m.allocateNextLocked()
	m.byShort[short] = orig
	if workshopID != "" {
		m.byModID[workshopID] = workshopRecord{Short: short, Original: orig}
	}
	if err := m.save(); err != nil {
		return "", fmt.Errorf("failed to save name mappings: %w", err)
	}
	return "@" + short, nil
}

// Remove deletes a mapping by short or original name.
func (m *Manager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := normalize(name)
	short := key
	if _, ok := m.byShort[key]; !ok {
		short = ""
		for s, orig := range m.byShort {
			if orig == key {
				short = s
				break
			}
		}
		if short == "" {
			return nil
		}
	}

	delete(m.byShort, short)
	for id, rec := range m.byModID {
		if rec.Short == short {
			delete(m.byModID, id)
		}
	}
	return m.save()
}

// All returns every mapping as short name to original name, both @-prefixed.
func (m *Manager) All() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]string, len(m.byShort))
	for short, orig := range m.byShort {
		out["@"+short] = "@" + orig
	}
	return out
}

// existingShortsLocked collects alias names already taken, from both the
// mapping file and @ folders on disk.
func (m *Manager) existingShortsLocked() map[string]bool {
	existing := make(map[string]bool)
	if entries, err := os.ReadDir(m.serverDir); err == nil {
		for _, e := range entries {
			if e.IsDir() && strings.HasPrefix(e.Name(), "@") {
				existing[strings.ToLower(strings.TrimPrefix(e.Name(), "@"))] = true
			}
		}
	}
	for short := range m.byShort {
		existing[strings.ToLower(short)] = true
	}
	return existing
}

func (m *Manager) allocateNextLocked() string {
	existing := m.existingShortsLocked()
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("m%d", i)
		if !existing[candidate] {
			return candidate
		}
	}
}

func (m *Manager) nextIndexLocked() int {
	max := 0
	for short := range m.existingShortsLocked() {
		match := shortPattern.FindStringSubmatch(short)
		if match == nil {
			continue
		}
		var n int
		fmt.Sscanf(match[1], "%d", &n)
		if n > max {
			max = n
		}
	}
	return max + 1
}
