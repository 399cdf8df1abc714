// Package profile persists named server profiles so the CLI can switch
// between servers without repeating path flags.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound = errors.New("profile not found")
	ErrExists   = errors.New("profile already exists")
)

// Profile describes one managed server. ModsPath and KeysPath override the
// default layout (mods at the server root, keys under <server>/keys) for
// servers that keep them elsewhere. Mods is the launch selection used by
// install and modlist when no explicit names are given.
type Profile struct {
	Name         string    `json:"name"`
	ServerPath   string    `json:"server_path"`
	WorkshopPath string    `json:"workshop_path"`
	ModsPath     string    `json:"mods_path,omitempty"`
	KeysPath     string    `json:"keys_path,omitempty"`
	Mods         []string  `json:"mods,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type store struct {
	Profiles map[string]Profile `json:"profiles"`
	Active   string             `json:"active,omitempty"`
}

// Store handles persistence of server profiles
type Store struct {
	path  string
	store *store
	mu    sync.RWMutex
}

// NewStore creates a profile store under the given data directory
func NewStore(dataDir string) *Store {
	return &Store{
		path: filepath.Join(dataDir, "profiles.json"),
		store: &store{
			Profiles: make(map[string]Profile),
		},
	}
}

// Load reads the store from disk
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.store = &store{Profiles: make(map[string]Profile)}
			return nil
		}
		return err
	}

	var st store
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	if st.Profiles == nil {
		st.Profiles = make(map[string]Profile)
	}

	s.store = &st
	return nil
}

// Save writes the store to disk
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// Get retrieves a profile by name
func (s *Store) Get(name string) (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.store.Profiles[name]
	return p, ok
}

// Create adds a new profile and persists the store.
func (s *Store) Create(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Profiles[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrExists, p.Name)
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.store.Profiles[p.Name] = p
	return s.saveLocked()
}

// Update replaces an existing profile and persists the store.
func (s *Store) Update(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.store.Profiles[p.Name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, p.Name)
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	s.store.Profiles[p.Name] = p
	return s.saveLocked()
}

// Delete removes a profile. Removing the active profile clears the
// active marker.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	delete(s.store.Profiles, name)
	if s.store.Active == name {
		s.store.Active = ""
	}
	return s.saveLocked()
}

// List returns all profiles sorted by name
func (s *Store) List() []Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profiles := make([]Profile, 0, len(s.store.Profiles))
	for _, p := range s.store.Profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].Name < profiles[j].Name
	})
	return profiles
}

// Active returns the currently selected profile, or false if none is set.
func (s *Store) Active() (Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.store.Active == "" {
		return Profile{}, false
	}
	p, ok := s.store.Profiles[s.store.Active]
	return p, ok
}

// SetActive marks a profile as the current one and persists the store.
func (s *Store) SetActive(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	s.store.Active = name
	return s.saveLocked()
}
