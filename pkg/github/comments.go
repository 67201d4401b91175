package github

import (
	"context"
	"fmt"
)

// FetchReviewComments returns the thread-starter comments of a pull
// request, with replies and resolution state attached. Results are cached
// per session: a second call for the same PR returns the cached slice
// without network traffic unless forceRefresh is set.
//
// The REST comment list is authoritative for which comments exist. The
// GraphQL review-thread view only enriches it: when that query fails the
// full REST list is returned unfiltered, every comment unresolved with no
// replies, rather than failing the whole fetch.
func (c *Client) FetchReviewComments(ctx context.Context, prNumber int, forceRefresh bool) ([]*ReviewComment, error) {
	c.mu.Lock()
	if !forceRefresh && c.cache != nil && c.cache.prNumber == prNumber {
		cached := c.cache.comments
		c.mu.Unlock()
		c.debugf("cache hit for PR #%d (%d comments)", prNumber, len(cached))
		return cached, nil
	}
	c.mu.Unlock()

	if err := c.ensureClients(); err != nil {
		return nil, err
	}
	repo, err := c.GetRepo()
	if err != nil {
		return nil, err
	}

	var raw []*ReviewComment
	path := fmt.Sprintf("repos/%s/pulls/%d/comments?per_page=100", repo, prNumber)
	if err := c.rest.DoWithContext(ctx, "GET", path, nil, &raw); err != nil {
		return nil, &TransportError{Op: fmt.Sprintf("fetching review comments for PR #%d", prNumber), Err: err}
	}

	threads, err := c.fetchThreads(ctx, prNumber)
	if err != nil {
		c.debugf("review thread query failed, comments will be unenriched: %v", err)
		threads = nil
	}

	merged := mergeThreads(raw, threads)

	c.mu.Lock()
	c.cache = &sessionCache{prNumber: prNumber, comments: merged}
	c.mu.Unlock()

	return merged, nil
}

// InvalidateCache drops the session cache so the next fetch goes to the
// network.
func (c *Client) InvalidateCache() {
	c.mu.Lock()
	c.cache = nil
	c.mu.Unlock()
}

// threadMeta is what the merge attaches to a thread starter.
type threadMeta struct {
	isResolved bool
	replies    []Reply
}

// mergeThreads reconciles the REST comment list with the GraphQL thread
// view. A comment that appears at index >= 1 of any thread's comment list
// is a reply: it is dropped from the top level and folded into its
// starter's Replies. Starters pick up the thread's resolution state.
// Comments the thread view does not know about stay, unresolved and
// reply-less.
func mergeThreads(comments []*ReviewComment, threads []reviewThread) []*ReviewComment {
	replyIDs := make(map[int64]bool)
	starters := make(map[int64]threadMeta)

	for _, t := range threads {
		if len(t.Comments) == 0 {
			continue
		}
		var replies []Reply
		for _, tc := range t.Comments[1:] {
			replyIDs[tc.DatabaseID] = true
			replies = append(replies, Reply{
				Author:    tc.authorLogin(),
				Body:      tc.Body,
				CreatedAt: tc.CreatedAt,
			})
		}
		starters[t.Comments[0].DatabaseID] = threadMeta{
			isResolved: t.IsResolved,
			replies:    replies,
		}
	}

	merged := make([]*ReviewComment, 0, len(comments))
	for _, comment := range comments {
		if replyIDs[comment.ID] {
			continue
		}
		if meta, ok := starters[comment.ID]; ok {
			comment.ThreadResolved = meta.isResolved
			comment.Replies = meta.replies
		} else {
			comment.ThreadResolved = false
			comment.Replies = nil
		}
		merged = append(merged, comment)
	}
	return merged
}
