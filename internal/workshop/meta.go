package workshop

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
)

// versionRegex matches version assignments in meta.cpp / mod.cpp, e.g.
//   version = "1.24";
var versionRegex = regexp.MustCompile(`(?i)version\s*=\s*["']([^"']+)["']`)

// ModVersion extracts the version string from a mod folder's meta.cpp or
// mod.cpp. Returns "" when neither file exists or carries a version.
func ModVersion(modDir string) string {
	for _, filename := range []string{"meta.cpp", "mod.cpp"} {
		data, err := os.ReadFile(filepath.Join(modDir, filename))
		if err != nil {
			continue
		}
		if m := versionRegex.FindSubmatch(data); m != nil {
			return string(m[1])
		}
	}
	return ""
}

// FolderSize sums file sizes below dir. Unreadable entries are skipped so a
// single bad file never aborts a scan.
func FolderSize(dir string) (size int64, files int) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			size += info.Size()
			files++
		}
		return nil
	})
	return size, files
}
