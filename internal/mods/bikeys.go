package mods

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BikeyExt is the license-key file extension DayZ servers load from the keys
// folder.
const BikeyExt = ".bikey"

// FindBikeysInMod locates .bikey files inside a mod folder. Mods keep them in
// a handful of conventional places (keys/, Keys/, key/, Key/, or the folder
// root); only when none of those hold a key does the search fall back to a
// full recursive walk, since some mods nest them deeper.
func FindBikeysInMod(modDir string) []BikeyInfo {
	searchDirs := []string{
		filepath.Join(modDir, "keys"),
		filepath.Join(modDir, "Keys"),
		filepath.Join(modDir, "key"),
		filepath.Join(modDir, "Key"),
		modDir,
	}

	var bikeys []BikeyInfo
	searched := make(map[string]bool)

	for _, dir := range searchDirs {
		if searched[dir] {
			continue
		}
		searched[dir] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), BikeyExt) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			bikeys = append(bikeys, BikeyInfo{
				Name:     entry.Name(),
				Path:     filepath.Join(dir, entry.Name()),
				Size:     info.Size(),
				Modified: info.ModTime(),
			})
		}
	}

	if len(bikeys) == 0 {
		_ = filepath.WalkDir(modDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), BikeyExt) {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return nil
			}
			bikeys = append(bikeys, BikeyInfo{
				Name:     d.Name(),
				Path:     path,
				Size:     info.Size(),
				Modified: info.ModTime(),
			})
			return nil
		})
	}

	sort.Slice(bikeys, func(i, j int) bool { return bikeys[i].Name < bikeys[j].Name })
	return bikeys
}

// InstalledBikeys maps lowercase bikey names in the server keys folder to
// their paths.
func (c *Checker) InstalledBikeys() map[string]string {
	installed := make(map[string]string)

	entries, err := os.ReadDir(c.keysDir)
	if err != nil {
		return installed
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), BikeyExt) {
			continue
		}
		installed[strings.ToLower(entry.Name())] = filepath.Join(c.keysDir, entry.Name())
	}
	return installed
}

// copyModBikeys copies a mod's bikeys into the server keys folder, skipping
// names already present. Fails fast on the first write error but returns the
// actions that completed before it.
func (c *Checker) copyModBikeys(modDir string) ([]InstallAction, error) {
	bikeys := FindBikeysInMod(modDir)
	if len(bikeys) == 0 {
		return nil, nil
	}

	if err := c.EnsureKeysDir(); err != nil {
		return nil, err
	}

	installed := c.InstalledBikeys()
	var actions []InstallAction

	for _, bk := range bikeys {
		if _, ok := installed[strings.ToLower(bk.Name)]; ok {
			continue
		}
		dest := filepath.Join(c.keysDir, bk.Name)
		if err := copyFile(bk.Path, dest); err != nil {
			return actions, &DestWriteError{Dest: dest, Err: err}
		}
		installed[strings.ToLower(bk.Name)] = dest
		actions = append(actions, InstallAction{Source: bk.Path, Dest: dest, Kind: ActionBikey})
		c.logInfo("Copied bikey", "name", bk.Name)
	}

	return actions, nil
}

// ExtractAllBikeys scans every installed mod for bikey files and copies each
// into the server keys folder, skipping names already present. Re-running is
// idempotent: the second call copies nothing. Returns the count and names of
// newly copied keys; on a write error the prior copies stay on disk and are
// still reported.
func (c *Checker) ExtractAllBikeys() (int, []string, error) {
	names, err := c.InstalledMods()
	if err != nil {
		return 0, nil, err
	}

	var copied []string
	for i, name := range names {
		c.reportProgress(fmt.Sprintf("Extracting keys from %s", name), i+1, len(names))

		actions, err := c.copyModBikeys(filepath.Join(c.modsDir, name))
		for _, a := range actions {
			copied = append(copied, filepath.Base(a.Dest))
		}
		if err != nil {
			return len(copied), copied, err
		}
	}

	return len(copied), copied, nil
}

func (c *Checker) logInfo(msg string, keyvals ...interface{}) {
	if c.log != nil {
		c.log.Info(msg, keyvals...)
	}
}
