package mods

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var (
	ErrNotGitRepo      = errors.New("not a git repository")
	ErrFFNotPossible   = errors.New("fast-forward not possible, local changes exist")
	ErrNoRemote        = errors.New("no remote configured")
	ErrAlreadyUpToDate = errors.New("already up to date")
)

// CloneRepo clones a git-distributed mod to the specified path.
// progressWriter can be nil to disable progress output.
func CloneRepo(url, destPath string, progressWriter io.Writer) error {
	_, err := git.PlainClone(destPath, false, &git.CloneOptions{
		URL:      url,
		Progress: progressWriter,
		Depth:    0, // Full clone so fast-forward updates work later
	})

	if err != nil {
		return fmt.Errorf("failed to clone repository: %w", err)
	}

	return nil
}

// UpdateRepo performs a fast-forward update on a git-tracked mod folder.
// progressWriter can be nil to disable progress output.
func UpdateRepo(repoPath string, progressWriter io.Writer) error {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotGitRepo, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	// Local modifications block a fast-forward; server operators sometimes
	// edit configs inside mod folders, and those edits must not be clobbered.
	status, err := worktree.Status()
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}
	if !status.IsClean() {
		return ErrFFNotPossible
	}

	err = repo.Fetch(&git.FetchOptions{
		RemoteName: "origin",
		Progress:   progressWriter,
	})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to fetch: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("failed to get HEAD: %w", err)
	}

	remoteRefObj, err := resolveRemoteRef(repo, head)
	if err != nil {
		return err
	}

	if head.Hash() == remoteRefObj.Hash() {
		return ErrAlreadyUpToDate
	}

	err = worktree.Reset(&git.ResetOptions{
		Commit: remoteRefObj.Hash(),
		Mode:   git.HardReset,
	})
	if err != nil {
		return fmt.Errorf("failed to fast-forward: %w", err)
	}

	return nil
}

// resolveRemoteRef finds the remote tracking branch for HEAD, falling back to
// the common default branch names.
func resolveRemoteRef(repo *git.Repository, head *plumbing.Reference) (*plumbing.Reference, error) {
	branchName := head.Name().Short()
	remoteRef := plumbing.NewRemoteReferenceName("origin", branchName)

	remoteRefObj, err := repo.Reference(remoteRef, true)
	if err != nil {
		for _, defaultBranch := range []string{"main", "master"} {
			remoteRef = plumbing.NewRemoteReferenceName("origin", defaultBranch)
			remoteRefObj, err = repo.Reference(remoteRef, true)
			if err == nil {
				break
			}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to find remote branch: %w", err)
		}
	}

	return remoteRefObj, nil
}

// IsGitRepo checks if a mod folder is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// GetRepoRemoteURL gets the origin remote URL of a git-tracked mod
func GetRepoRemoteURL(repoPath string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", ErrNotGitRepo
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", ErrNoRemote
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", ErrNoRemote
	}

	return urls[0], nil
}

// GetCurrentCommit returns the current HEAD commit hash, shortened
func GetCurrentCommit(repoPath string) (string, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return "", ErrNotGitRepo
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	return head.Hash().String()[:8], nil
}

// ExtractRepoName derives a mod folder name from a git URL. DayZ mod folders
// carry an @ prefix; one is added when the repository name lacks it.
func ExtractRepoName(gitURL string) string {
	name := strings.TrimSuffix(gitURL, ".git")

	parts := strings.Split(name, "/")
	if len(parts) > 0 {
		name = parts[len(parts)-1]
	}

	for _, suffix := range []string{"-master", "-main", "-trunk"} {
		name = strings.TrimSuffix(name, suffix)
	}

	return EnsureAtPrefix(name)
}

// ValidateGitURL checks if a string looks like a valid git URL
func ValidateGitURL(url string) error {
	url = strings.ToLower(url)

	if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "git@") || strings.HasPrefix(url, "git://") {
		return nil
	}

	return fmt.Errorf("invalid git URL: must start with https://, git@, or git://")
}

// NormalizeGitURL ensures the URL ends with .git
func NormalizeGitURL(url string) string {
	if !strings.HasSuffix(url, ".git") {
		return url + ".git"
	}
	return url
}

// CleanupFailedClone removes a partially cloned mod directory
func CleanupFailedClone(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if IsGitRepo(path) {
		return nil // Don't remove valid repos
	}

	return os.RemoveAll(path)
}

// VerifyRepoIntegrity checks if a git-tracked mod folder is valid and not
// corrupted
func VerifyRepoIntegrity(repoPath string) error {
	gitDir := filepath.Join(repoPath, ".git")
	if _, err := os.Stat(gitDir); os.IsNotExist(err) {
		return fmt.Errorf("missing .git directory")
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return fmt.Errorf("corrupted repository: %w", err)
	}

	_, err = repo.Head()
	if err != nil {
		return fmt.Errorf("corrupted HEAD: %w", err)
	}

	return nil
}
