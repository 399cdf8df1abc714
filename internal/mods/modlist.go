package mods

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ModsTxtName is the conventional filename servers read their mod list from.
const ModsTxtName = "mods.txt"

// FormatModsTxt renders mod folder names in the server list format, one
// semicolon-terminated name per entry on a single line: "@CF;@Medical;".
func FormatModsTxt(names []string) string {
	if len(names) == 0 {
		return ""
	}
	var b strings.Builder
	for _, name := range names {
		b.WriteString(EnsureAtPrefix(name))
		b.WriteString(";")
	}
	return b.String()
}

// ParseModsTxt splits server list content back into folder names. Empty
// entries from trailing or doubled semicolons are dropped.
func ParseModsTxt(content string) []string {
	var names []string
	for _, part := range strings.Split(strings.TrimSpace(content), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, EnsureAtPrefix(part))
	}
	return names
}

// LaunchParameter renders the -mod= startup argument for the given mods.
// Unlike mods.txt there is no trailing semicolon.
func LaunchParameter(names []string) string {
	if len(names) == 0 {
		return ""
	}
	prefixed := make([]string, len(names))
	for i, name := range names {
		prefixed[i] = EnsureAtPrefix(name)
	}
	return "-mod=" + strings.Join(prefixed, ";")
}

// WriteModsTxt writes the mod list file next to the mods root and returns its
// path.
func (c *Checker) WriteModsTxt(names []string) (string, error) {
	path := filepath.Join(c.serverDir, ModsTxtName)
	content := FormatModsTxt(names)
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", &DestWriteError{Dest: path, Err: err}
	}
	return path, nil
}

// SyncModsTxt regenerates mods.txt from the currently installed mods.
func (c *Checker) SyncModsTxt() (string, int, error) {
	names, err := c.InstalledMods()
	if err != nil {
		return "", 0, err
	}
	path, err := c.WriteModsTxt(names)
	if err != nil {
		return "", 0, err
	}
	c.logInfo(fmt.Sprintf("Wrote %s", ModsTxtName), "mods", len(names), "path", path)
	return path, len(names), nil
}
