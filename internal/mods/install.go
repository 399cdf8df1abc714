package mods

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// SmartInstallMod copies only the files present under sourcePath but absent
// from the destination mod folder, then optionally copies the mod's bikeys
// into the server keys folder.
//
// Existing destination files are never touched. The comparison is
// presence-only, not a content hash, so a corrupted-but-present file is left
// alone (accepted limitation). Running it twice is a no-op the second time.
//
// There is no rollback: on a write error the files copied earlier in the same
// call stay on disk, the returned actions list says exactly which copies
// completed, and the error is a *DestWriteError wrapping the cause. ctx is
// checked between file copies, never mid-copy; cancellation likewise keeps
// everything already copied.
func (c *Checker) SmartInstallMod(ctx context.Context, name, sourcePath string, copyBikeys bool) (bool, []InstallAction, error) {
	name = EnsureAtPrefix(name)

	if fi, err := os.Stat(sourcePath); err != nil || !fi.IsDir() {
		return false, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourcePath)
	}

	destPath := filepath.Join(c.modsDir, name)
	missing, err := missingRelativeFiles(sourcePath, destPath)
	if err != nil {
		return false, nil, fmt.Errorf("%w: %v", ErrSourceNotFound, err)
	}

	var actions []InstallAction
	total := len(missing)

	for i, rel := range missing {
		select {
		case <-ctx.Done():
			return false, actions, ctx.Err()
		default:
		}

		c.reportProgress(fmt.Sprintf("Copying %s", rel), i+1, total)

		src := filepath.Join(sourcePath, rel)
		dest := filepath.Join(destPath, rel)

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return false, actions, &DestWriteError{Dest: dest, Err: err}
		}
		if err := copyFile(src, dest); err != nil {
			return false, actions, &DestWriteError{Dest: dest, Err: err}
		}
		actions = append(actions, InstallAction{Source: src, Dest: dest, Kind: ActionModFiles})
	}

	if copyBikeys {
		// Keys are read from the destination once content is in place; when
		// the source held no files at all, fall back to the source folder.
		keySource := destPath
		if _, err := os.Stat(destPath); err != nil {
			keySource = sourcePath
		}
		bikeyActions, err := c.copyModBikeys(keySource)
		actions = append(actions, bikeyActions...)
		if err != nil {
			return false, actions, err
		}
	}

	if len(actions) > 0 {
		c.logInfo("Smart install complete", "mod", name, "copied", len(actions))
	}
	return true, actions, nil
}

// missingRelativeFiles walks the source tree and returns the relative paths
// of regular files with no counterpart at the destination, in lexical walk
// order. Presence is the only criterion.
func missingRelativeFiles(srcRoot, destRoot string) ([]string, error) {
	var missing []string

	err := filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcRoot, path)
		if err != nil {
			return err
		}
		if _, err := os.Stat(filepath.Join(destRoot, rel)); os.IsNotExist(err) {
			missing = append(missing, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return missing, nil
}
