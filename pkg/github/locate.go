package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// LocatePR resolves the pull request number for the given branch. Three
// strategies are tried in order, each only when the previous one failed
// or returned nothing:
//
//  1. search open PRs whose head branch equals branchName
//  2. gh's own "current branch PR" status
//  3. the PR associated with the checked-out ref, via gh pr view
//
// When all three come up empty the caller gets ErrNoPR and should point
// the user at the manual fallbacks (gh pr list, gh pr view).
func (c *Client) LocatePR(ctx context.Context, branchName string) (int, error) {
	if n, err := c.prByHeadBranch(ctx, branchName); err == nil && n > 0 {
		return n, nil
	} else if err != nil {
		c.debugf("head-branch PR search failed: %v", err)
	}

	if n, err := c.prFromStatus(); err == nil && n > 0 {
		return n, nil
	} else if err != nil {
		c.debugf("gh pr status lookup failed: %v", err)
	}

	if n, err := c.prFromView(); err == nil && n > 0 {
		return n, nil
	} else if err != nil {
		c.debugf("gh pr view lookup failed: %v", err)
	}

	return 0, fmt.Errorf("branch %q: %w", branchName, ErrNoPR)
}

// prByHeadBranch searches open pull requests with the branch as head.
func (c *Client) prByHeadBranch(ctx context.Context, branch string) (int, error) {
	if branch == "" {
		return 0, fmt.Errorf("empty branch name")
	}
	if err := c.ensureClients(); err != nil {
		return 0, err
	}
	repo, err := c.GetRepo()
	if err != nil {
		return 0, err
	}
	owner := strings.SplitN(repo, "/", 2)[0]

	var prs []struct {
		Number int `json:"number"`
	}
	path := fmt.Sprintf("repos/%s/pulls?state=open&head=%s:%s", repo, owner, branch)
	if err := c.rest.DoWithContext(ctx, "GET", path, nil, &prs); err != nil {
		return 0, err
	}
	if len(prs) == 0 {
		return 0, nil
	}
	return prs[0].Number, nil
}

// prFromStatus asks the gh CLI for the PR it associates with the current
// branch.
func (c *Client) prFromStatus() (int, error) {
	args := []string{"pr", "status", "--json", "number", "--jq", ".currentBranch.number"}
	if c.repo != "" {
		args = append(args, "--repo", c.repo)
	}
	stdout, _, err := c.exec(args...)
	if err != nil {
		return 0, err
	}
	return parsePRNumber(stdout.String())
}

// prFromView asks the gh CLI for the PR of the checked-out ref directly.
func (c *Client) prFromView() (int, error) {
	stdout, _, err := c.exec("pr", "view", "--json", "number", "--jq", ".number")
	if err != nil {
		return 0, err
	}
	return parsePRNumber(stdout.String())
}

// parsePRNumber extracts a PR number from gh --jq output. "null" is the
// CLI's way of saying no PR; it is not an error, just a miss that sends
// the locator on to the next strategy.
func parsePRNumber(out string) (int, error) {
	out = strings.TrimSpace(out)
	if out == "" || out == "null" {
		return 0, nil
	}
	var n int
	if err := json.Unmarshal([]byte(out), &n); err != nil {
		return 0, &ParseError{Output: out, Err: err}
	}
	return n, nil
}
