package github

import (
	"context"
	"fmt"
	"time"
)

// reviewThreadsQuery fetches the first 100 threads with up to 100 comments
// each. Threads beyond that window are a known limitation; we warn and
// move on rather than paginate.
const reviewThreadsQuery = `query($owner: String!, $repo: String!, $pr: Int!) {
	repository(owner: $owner, name: $repo) {
		pullRequest(number: $pr) {
			reviewThreads(first: 100) {
				pageInfo { hasNextPage }
				nodes {
					id
					isResolved
					comments(first: 100) {
						nodes {
							databaseId
							body
							author { login }
							createdAt
						}
					}
				}
			}
		}
	}
}`

const resolveThreadMutation = `mutation($threadId: ID!) {
	resolveReviewThread(input: {threadId: $threadId}) {
		thread { isResolved }
	}
}`

const unresolveThreadMutation = `mutation($threadId: ID!) {
	unresolveReviewThread(input: {threadId: $threadId}) {
		thread { isResolved }
	}
}`

// reviewThread is one GraphQL review thread: a node id, a resolution
// flag, and the ordered comment list (starter first).
type reviewThread struct {
	ID         string
	IsResolved bool
	Comments   []threadComment
}

type threadComment struct {
	DatabaseID int64
	Body       string
	Author     *struct {
		Login string
	}
	CreatedAt time.Time
}

func (tc threadComment) authorLogin() string {
	if tc.Author == nil || tc.Author.Login == "" {
		return "Unknown"
	}
	return tc.Author.Login
}

type reviewThreadsResponse struct {
	Repository struct {
		PullRequest struct {
			ReviewThreads struct {
				PageInfo struct {
					HasNextPage bool
				}
				Nodes []struct {
					ID         string
					IsResolved bool
					Comments   struct {
						Nodes []threadComment
					}
				}
			}
		}
	}
}

// fetchThreads queries the review threads of a pull request.
func (c *Client) fetchThreads(ctx context.Context, prNumber int) ([]reviewThread, error) {
	if err := c.ensureClients(); err != nil {
		return nil, err
	}
	repo, err := c.GetRepo()
	if err != nil {
		return nil, err
	}
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	var resp reviewThreadsResponse
	vars := map[string]interface{}{
		"owner": owner,
		"repo":  name,
		"pr":    prNumber,
	}
	if err := c.gql.DoWithContext(ctx, reviewThreadsQuery, vars, &resp); err != nil {
		return nil, &TransportError{Op: fmt.Sprintf("querying review threads for PR #%d", prNumber), Err: err}
	}

	rt := resp.Repository.PullRequest.ReviewThreads
	if rt.PageInfo.HasNextPage {
		c.debugf("PR #%d has more than 100 review threads; ignoring the rest", prNumber)
	}

	threads := make([]reviewThread, 0, len(rt.Nodes))
	for _, node := range rt.Nodes {
		threads = append(threads, reviewThread{
			ID:         node.ID,
			IsResolved: node.IsResolved,
			Comments:   node.Comments.Nodes,
		})
	}
	return threads, nil
}

// findThread returns the thread containing the given comment, either as
// starter or reply.
func findThread(threads []reviewThread, commentID int64) (reviewThread, bool) {
	for _, t := range threads {
		for _, tc := range t.Comments {
			if tc.DatabaseID == commentID {
				return t, true
			}
		}
	}
	return reviewThread{}, false
}

// ResolveThread marks the thread containing the comment as resolved. The
// thread is located by a fresh GraphQL lookup every time; thread ids are
// never cached across actions. Resolving an already-resolved thread is a
// no-op with an informational message, not an error.
func (c *Client) ResolveThread(ctx context.Context, prNumber int, comment *ReviewComment) (string, error) {
	return c.setThreadResolved(ctx, prNumber, comment, true)
}

// UnresolveThread is the inverse of ResolveThread.
func (c *Client) UnresolveThread(ctx context.Context, prNumber int, comment *ReviewComment) (string, error) {
	return c.setThreadResolved(ctx, prNumber, comment, false)
}

func (c *Client) setThreadResolved(ctx context.Context, prNumber int, comment *ReviewComment, resolved bool) (string, error) {
	if !comment.CanReply() {
		return "", &PreconditionError{Reason: "comment is not part of a review thread"}
	}

	threads, err := c.fetchThreads(ctx, prNumber)
	if err != nil {
		return "", err
	}
	thread, ok := findThread(threads, comment.ID)
	if !ok {
		return "", fmt.Errorf("no review thread contains comment %d", comment.ID)
	}

	if thread.IsResolved == resolved {
		applyResolution(comment, resolved)
		if resolved {
			return "Thread is already resolved", nil
		}
		return "Thread is already unresolved", nil
	}

	mutation := resolveThreadMutation
	if !resolved {
		mutation = unresolveThreadMutation
	}
	var resp struct{}
	vars := map[string]interface{}{"threadId": thread.ID}
	if err := c.gql.DoWithContext(ctx, mutation, vars, &resp); err != nil {
		if isPermissionErr(err) {
			return "", &PermissionError{Err: err}
		}
		return "", fmt.Errorf("updating thread %s: %w", thread.ID, err)
	}

	applyResolution(comment, resolved)
	if resolved {
		return "Marked as resolved", nil
	}
	return "Marked as unresolved", nil
}

// applyResolution syncs the local comment with the server-side thread
// state. Unresolving also clears any REST-derived resolution fields so
// IsResolved reflects the mutation immediately.
func applyResolution(comment *ReviewComment, resolved bool) {
	comment.ThreadResolved = resolved
	if !resolved {
		comment.Resolved = nil
		comment.ResolvedAt = nil
	}
}

func splitRepo(repo string) (owner, name string, err error) {
	for i := 0; i < len(repo); i++ {
		if repo[i] == '/' {
			return repo[:i], repo[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("invalid repository %q, expected owner/name", repo)
}
