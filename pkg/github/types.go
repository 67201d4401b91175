package github

import "time"

// User is the author of a comment as returned by the REST API.
type User struct {
	Login string `json:"login"`
}

// Reply is a follow-up comment inside a review thread. Replies are folded
// into their thread starter during the merge step and never appear as
// top-level comments.
type Reply struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	HTMLURL   string    `json:"htmlUrl,omitempty"`
}

// ReviewComment is one inline review comment on a pull request.
//
// The positional fields (Line, OriginalLine, StartLine, Position,
// OriginalPosition) overlap and are populated inconsistently by the API
// depending on how the comment was created and whether the code under it
// has moved since. Callers should go through ResolveLine rather than
// reading them directly.
type ReviewComment struct {
	ID               int64      `json:"id"`
	ReviewID         *int64     `json:"pull_request_review_id"`
	InReplyTo        *int64     `json:"in_reply_to_id"`
	Path             string     `json:"path"`
	DiffHunk         string     `json:"diff_hunk"`
	Line             *int       `json:"line"`
	OriginalLine     *int       `json:"original_line"`
	StartLine        *int       `json:"start_line"`
	Position         *int       `json:"position"`
	OriginalPosition *int       `json:"original_position"`
	Side             string     `json:"side"`
	User             User       `json:"user"`
	Body             string     `json:"body"`
	CreatedAt        time.Time  `json:"created_at"`
	HTMLURL          string     `json:"html_url"`
	Resolved         *bool      `json:"resolved,omitempty"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`

	// ThreadResolved and Replies are attached by the fetch merge step from
	// GraphQL review-thread data; they are not part of the REST payload.
	ThreadResolved bool    `json:"-"`
	Replies        []Reply `json:"-"`
}

// Author returns the comment author's login, or "Unknown" when the API
// returned no user (deleted accounts do this).
func (c *ReviewComment) Author() string {
	if c.User.Login == "" {
		return "Unknown"
	}
	return c.User.Login
}

// DisplaySide returns the diff side the comment sits on, defaulting to
// RIGHT when the API omitted it.
func (c *ReviewComment) DisplaySide() string {
	if c.Side == "" {
		return "RIGHT"
	}
	return c.Side
}

// IsResolved reports the display-time resolution state. Any one of an
// explicit resolution timestamp, an explicit resolved flag, or the
// thread-derived state marks the comment resolved.
func (c *ReviewComment) IsResolved() bool {
	if c.ResolvedAt != nil {
		return true
	}
	if c.Resolved != nil && *c.Resolved {
		return true
	}
	return c.ThreadResolved
}

// CanReply reports whether the comment belongs to a review. Comments
// without a review id are general PR comments and cannot be replied to or
// resolved through the thread APIs.
func (c *ReviewComment) CanReply() bool {
	return c.ReviewID != nil
}
