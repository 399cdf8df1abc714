package mods

import "testing"

func TestExtractRepoName(t *testing.T) {
	cases := map[string]string{
		"https://github.com/owner/dayz-expansion.git": "@dayz-expansion",
		"https://github.com/owner/SomeMod":            "@SomeMod",
		"git@github.com:owner/trader-mod.git":         "@trader-mod",
		"https://github.com/owner/mymod-master":       "@mymod",
	}
	for url, want := range cases {
		if got := ExtractRepoName(url); got != want {
			t.Errorf("ExtractRepoName(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestValidateGitURL(t *testing.T) {
	for _, url := range []string{
		"https://github.com/owner/repo.git",
		"git@github.com:owner/repo.git",
		"git://example.com/repo.git",
	} {
		if err := ValidateGitURL(url); err != nil {
			t.Errorf("ValidateGitURL(%q) = %v", url, err)
		}
	}

	for _, url := range []string{"ftp://host/repo", "owner/repo", ""} {
		if err := ValidateGitURL(url); err == nil {
			t.Errorf("ValidateGitURL(%q) accepted", url)
		}
	}
}

func TestNormalizeGitURL(t *testing.T) {
	if got := NormalizeGitURL("https://github.com/owner/repo"); got != "https://github.com/owner/repo.git" {
		t.Errorf("NormalizeGitURL = %q", got)
	}
	if got := NormalizeGitURL("https://github.com/owner/repo.git"); got != "https://github.com/owner/repo.git" {
		t.Errorf("NormalizeGitURL double-appended: %q", got)
	}
}

func TestIsGitRepo(t *testing.T) {
	dir := t.TempDir()
	if IsGitRepo(dir) {
		t.Error("plain dir reported as git repo")
	}
}
