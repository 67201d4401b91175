// Package git provides the little repository metadata the tool needs
// from the working tree.
package git

import (
	"fmt"
	"os/exec"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// CurrentBranch returns the short name of the checked-out branch.
// go-git reads .git directly; when that fails (worktree layouts it does
// not understand, detached HEAD states) the git binary gets a chance
// before giving up.
func CurrentBranch() (string, error) {
	if branch, err := branchFromGoGit(); err == nil && branch != "" {
		return branch, nil
	}
	return branchFromGitBinary()
}

func branchFromGoGit() (string, error) {
	repo, err := gogit.PlainOpenWithOptions(".", &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", err
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is not on a branch")
	}
	return head.Name().Short(), nil
}

func branchFromGitBinary() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD").Output()
	if err != nil {
		return "", fmt.Errorf("not inside a git repository: %w", err)
	}
	branch := strings.TrimSpace(string(out))
	if branch == "" || branch == "HEAD" {
		return "", fmt.Errorf("HEAD is detached, check out a branch first")
	}
	return branch, nil
}
