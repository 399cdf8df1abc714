package workshop

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalID marks mods that live directly under the workshop root instead of a
// numeric workshop id folder.
const LocalID = "local"

// Entry is one downloadable mod found under the workshop root.
type Entry struct {
	WorkshopID string // Numeric id folder, or LocalID
	Folder     string // Mod folder name incl. @ prefix
	Path       string // Absolute path to the mod folder
	Version    string
	SizeBytes  int64
}

// Scan walks the workshop root looking for the <workshop-id>/@Mod layout.
// When no id folders contain mods it falls back to @Mod folders directly
// under the root. Entries come back sorted by id then folder name.
func Scan(workshopDir string) ([]Entry, error) {
	root, err := os.ReadDir(workshopDir)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	foundAny := false

	for _, idEntry := range sortedDirs(root) {
		idDir := filepath.Join(workshopDir, idEntry)
		sub, err := os.ReadDir(idDir)
		if err != nil {
			continue
		}
		for _, modEntry := range sortedDirs(sub) {
			if !strings.HasPrefix(modEntry, "@") {
				continue
			}
			foundAny = true
			path := filepath.Join(idDir, modEntry)
			size, _ := FolderSize(path)
			entries = append(entries, Entry{
				WorkshopID: idEntry,
				Folder:     modEntry,
				Path:       path,
				Version:    ModVersion(path),
				SizeBytes:  size,
			})
		}
	}

	// Fallback: flat @Mod folders in the workshop root
	if !foundAny {
		for _, modEntry := range sortedDirs(root) {
			if !strings.HasPrefix(modEntry, "@") {
				continue
			}
			path := filepath.Join(workshopDir, modEntry)
			size, _ := FolderSize(path)
			entries = append(entries, Entry{
				WorkshopID: LocalID,
				Folder:     modEntry,
				Path:       path,
				Version:    ModVersion(path),
				SizeBytes:  size,
			})
		}
	}

	return entries, nil
}

// ResolveSource maps an installed mod folder name to its workshop source.
// Matching is case-insensitive since Windows servers frequently carry case
// variants of the same folder.
func ResolveSource(workshopDir, folder string) (Entry, bool) {
	entries, err := Scan(workshopDir)
	if err != nil {
		return Entry{}, false
	}
	for _, e := range entries {
		if strings.EqualFold(e.Folder, folder) {
			return e, true
		}
	}
	return Entry{}, false
}

// SourcePath builds the conventional source path for a (workshopID, folder)
// pair without scanning: <root>/<id>/<folder>, or <root>/<folder> for local
// mods.
func SourcePath(workshopDir, workshopID, folder string) string {
	if workshopID == "" || workshopID == LocalID {
		return filepath.Join(workshopDir, folder)
	}
	return filepath.Join(workshopDir, workshopID, folder)
}

func sortedDirs(entries []os.DirEntry) []string {
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
