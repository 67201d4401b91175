package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Reply posts a reply to a review comment. The dedicated replies endpoint
// is tried first; when GitHub refuses it the engine falls back through a
// chain of alternate endpoints, each attempted only after the previous
// one failed:
//
//   - a pending-review conflict retries as a new review comment with an
//     explicit in_reply_to reference, and failing that, as a pending
//     review holding the single comment which is then submitted with a
//     COMMENT event
//   - any other failure retries once as a brand-new single-comment review
//     submitted directly with a COMMENT event
//
// The first success terminates the chain; an exhausted chain surfaces the
// last error.
func (c *Client) Reply(ctx context.Context, prNumber int, comment *ReviewComment, body string) (*Reply, error) {
	if !comment.CanReply() {
		return nil, &PreconditionError{Reason: "comment is not part of a review thread, replies are not supported"}
	}
	if err := c.ensureClients(); err != nil {
		return nil, err
	}
	repo, err := c.GetRepo()
	if err != nil {
		return nil, err
	}

	reply, primaryErr := c.postDirectReply(ctx, repo, prNumber, comment.ID, body)
	if primaryErr == nil {
		return reply, nil
	}
	c.debugf("direct reply failed: %v", primaryErr)

	if isPendingReviewConflict(primaryErr) {
		reply, err := c.postInReplyTo(ctx, repo, prNumber, comment.ID, body)
		if err == nil {
			return reply, nil
		}
		c.debugf("in_reply_to fallback failed: %v", err)
		return c.postViaPendingReview(ctx, repo, prNumber, comment, body)
	}

	return c.postViaCommentReview(ctx, repo, prNumber, comment, body)
}

// postDirectReply hits the comment's dedicated replies endpoint.
func (c *Client) postDirectReply(ctx context.Context, repo string, prNumber int, commentID int64, body string) (*Reply, error) {
	path := fmt.Sprintf("repos/%s/pulls/%d/comments/%d/replies", repo, prNumber, commentID)
	return c.postCommentPayload(ctx, path, map[string]interface{}{"body": body})
}

// postInReplyTo creates a new review comment referencing the original.
func (c *Client) postInReplyTo(ctx context.Context, repo string, prNumber int, commentID int64, body string) (*Reply, error) {
	path := fmt.Sprintf("repos/%s/pulls/%d/comments", repo, prNumber)
	return c.postCommentPayload(ctx, path, map[string]interface{}{
		"body":        body,
		"in_reply_to": commentID,
	})
}

// postViaPendingReview creates a PENDING review holding the single
// comment, then immediately submits it with a COMMENT event.
func (c *Client) postViaPendingReview(ctx context.Context, repo string, prNumber int, comment *ReviewComment, body string) (*Reply, error) {
	path := fmt.Sprintf("repos/%s/pulls/%d/reviews", repo, prNumber)
	payload := map[string]interface{}{
		"comments": []map[string]interface{}{reviewCommentPayload(comment, body)},
	}
	var review struct {
		ID int64 `json:"id"`
	}
	if err := c.postJSON(ctx, path, payload, &review); err != nil {
		return nil, fmt.Errorf("creating pending review: %w", err)
	}

	eventsPath := fmt.Sprintf("repos/%s/pulls/%d/reviews/%d/events", repo, prNumber, review.ID)
	if err := c.postJSON(ctx, eventsPath, map[string]interface{}{"event": "COMMENT"}, nil); err != nil {
		return nil, fmt.Errorf("submitting pending review %d: %w", review.ID, err)
	}
	return &Reply{Body: body}, nil
}

// postViaCommentReview posts a new single-comment review submitted
// directly with a COMMENT event.
func (c *Client) postViaCommentReview(ctx context.Context, repo string, prNumber int, comment *ReviewComment, body string) (*Reply, error) {
	path := fmt.Sprintf("repos/%s/pulls/%d/reviews", repo, prNumber)
	payload := map[string]interface{}{
		"event":    "COMMENT",
		"comments": []map[string]interface{}{reviewCommentPayload(comment, body)},
	}
	if err := c.postJSON(ctx, path, payload, nil); err != nil {
		return nil, fmt.Errorf("posting single-comment review: %w", err)
	}
	return &Reply{Body: body}, nil
}

// reviewCommentPayload positions a fallback reply at the original
// comment's location, preferring the stable position over line numbers
// that may have drifted.
func reviewCommentPayload(comment *ReviewComment, body string) map[string]interface{} {
	payload := map[string]interface{}{
		"path": comment.Path,
		"body": body,
	}
	switch {
	case comment.Position != nil:
		payload["position"] = *comment.Position
	case comment.Line != nil:
		payload["line"] = *comment.Line
		payload["side"] = comment.DisplaySide()
	case comment.OriginalPosition != nil:
		payload["position"] = *comment.OriginalPosition
	}
	return payload
}

func (c *Client) postCommentPayload(ctx context.Context, path string, payload map[string]interface{}) (*Reply, error) {
	var posted ReviewComment
	if err := c.postJSON(ctx, path, payload, &posted); err != nil {
		return nil, err
	}
	return &Reply{
		Author:    posted.Author(),
		Body:      posted.Body,
		CreatedAt: posted.CreatedAt,
		HTMLURL:   posted.HTMLURL,
	}, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload interface{}, response interface{}) error {
	body, err := encodeBody(payload)
	if err != nil {
		return err
	}
	if err := c.rest.DoWithContext(ctx, "POST", path, body, response); err != nil {
		if isPermissionErr(err) {
			return &PermissionError{Err: err}
		}
		return err
	}
	return nil
}

func encodeBody(payload interface{}) (io.Reader, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return &buf, nil
}
