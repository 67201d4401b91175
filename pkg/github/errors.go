package github

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
)

// ErrNoPR is returned when every PR lookup strategy came up empty for the
// current branch.
var ErrNoPR = errors.New("no pull request found for the current branch")

// PreconditionError marks an action requested on a comment that cannot
// support it, such as resolving a comment that has no review id. It is
// returned before any network call is made.
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return e.Reason
}

// TransportError wraps a failed REST or GraphQL call. Op names the
// operation that was in flight.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError marks output from the gh CLI that could not be decoded.
type ParseError struct {
	Output string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unexpected gh output %q: %v", e.Output, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// PermissionError wraps a mutation rejected by GitHub, typically for lack
// of write access on the repository.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: %v", e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// isPermissionErr reports whether err looks like a rejected mutation
// rather than a transport failure.
func isPermissionErr(err error) bool {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == 403
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "resource not accessible") ||
		strings.Contains(msg, "viewer cannot resolve")
}

// isPendingReviewConflict reports whether err is GitHub refusing a reply
// because the user already has a pending review on the pull request. This
// selects the in_reply_to fallback path when posting replies.
func isPendingReviewConflict(err error) bool {
	if err == nil {
		return false
	}
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode != 422 {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "pending review")
}
