// Package list builds the navigable comment list: display entries for a
// generic list widget, plus a detail table retained for reply, resolve,
// and detail-view actions without re-fetching.
package list

import (
	"fmt"
	"sync"
	"time"

	"github.com/gh-tui-tools/gh-pr-threads/pkg/github"
)

// DefaultMaxLength caps the comment text portion of a display line.
const DefaultMaxLength = 300

// Severity classifies a display entry. Bot chatter renders as Info,
// human review feedback as Warning.
type Severity string

const (
	SeverityInfo    Severity = "I"
	SeverityWarning Severity = "W"
)

// Entry is one row handed to the list widget.
type Entry struct {
	Index     int
	File      string
	Line      int
	Severity  Severity
	Text      string
	CommentID int64
	Resolved  bool
}

// Detail is the retained projection of a comment backing the detail
// view. Keyed by display index, so it is only valid for the lifetime of
// the list build that produced it.
type Detail struct {
	Index     int
	Author    string
	CreatedAt time.Time
	URL       string
	Body      string
	DiffHunk  string
	Positions string
	File      string
	Line      int
	Resolved  bool
	Replies   []github.Reply
}

// Options controls list building.
type Options struct {
	MaxLength    int
	ShowFull     bool
	ShowResolved bool
	BotLogins    []string
}

// Controller owns the built list state. All mutation funnels through
// Build; the mutex serializes rebuilds against reads from the UI loop.
type Controller struct {
	opts Options

	mu       sync.Mutex
	prNumber int
	entries  []Entry
	details  map[int]Detail
	comments map[int]*github.ReviewComment
	resolved int
	total    int
}

// NewController creates a Controller with the given options.
func NewController(opts Options) *Controller {
	if opts.MaxLength <= 0 {
		opts.MaxLength = DefaultMaxLength
	}
	return &Controller{
		opts:     opts,
		details:  make(map[int]Detail),
		comments: make(map[int]*github.ReviewComment),
	}
}

// SetShowResolved flips resolved-comment visibility for subsequent
// builds.
func (ctl *Controller) SetShowResolved(show bool) {
	ctl.mu.Lock()
	ctl.opts.ShowResolved = show
	ctl.mu.Unlock()
}

// ShowResolved reports the current visibility setting.
func (ctl *Controller) ShowResolved() bool {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.opts.ShowResolved
}

// Build rebuilds the visible list from merged comments in fetch order.
// Display indices are 1-based and sequential over all comments; resolved
// comments keep their index even while hidden, so an entry's index is a
// stable handle for the lifetime of this build and no longer. The detail
// table is cleared and repopulated on every call.
func (ctl *Controller) Build(prNumber int, comments []*github.ReviewComment) []Entry {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	ctl.prNumber = prNumber
	ctl.total = len(comments)
	ctl.resolved = 0
	ctl.entries = ctl.entries[:0]
	ctl.details = make(map[int]Detail, len(comments))
	ctl.comments = make(map[int]*github.ReviewComment, len(comments))

	for i, comment := range comments {
		index := i + 1
		line := github.ResolveLine(comment)
		resolved := comment.IsResolved()

		ctl.comments[index] = comment
		ctl.details[index] = Detail{
			Index:     index,
			Author:    comment.Author(),
			CreatedAt: comment.CreatedAt,
			URL:       comment.HTMLURL,
			Body:      comment.Body,
			DiffHunk:  comment.DiffHunk,
			Positions: positionSummary(comment),
			File:      comment.Path,
			Line:      line,
			Resolved:  resolved,
			Replies:   comment.Replies,
		}

		if resolved {
			ctl.resolved++
			if !ctl.opts.ShowResolved {
				continue
			}
		}

		severity := SeverityWarning
		if isBot(comment.Author(), ctl.opts.BotLogins) {
			severity = SeverityInfo
		}
		ctl.entries = append(ctl.entries, Entry{
			Index:     index,
			File:      comment.Path,
			Line:      line,
			Severity:  severity,
			Text:      formatComment(comment, index, ctl.opts.MaxLength, ctl.opts.ShowFull),
			CommentID: comment.ID,
			Resolved:  resolved,
		})
	}

	return ctl.entries
}

// Entries returns the rows of the last Build.
func (ctl *Controller) Entries() []Entry {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return ctl.entries
}

// Detail looks up the retained detail record for a display index.
func (ctl *Controller) Detail(index int) (Detail, bool) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	d, ok := ctl.details[index]
	return d, ok
}

// Comment returns the comment behind a display index. This mapping is
// the correlation mechanism between a selected row and its comment; no
// text parsing is involved.
func (ctl *Controller) Comment(index int) (*github.ReviewComment, bool) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	c, ok := ctl.comments[index]
	return c, ok
}

// Title renders the list heading.
func (ctl *Controller) Title() string {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	return fmt.Sprintf("PR #%d review comments (%d)", ctl.prNumber, ctl.total)
}

// Summary reports visible and hidden counts, e.g. "3 shown, 2 resolved
// hidden".
func (ctl *Controller) Summary() string {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	hidden := ctl.resolved
	if ctl.opts.ShowResolved {
		hidden = 0
	}
	return SummaryLine(len(ctl.entries), hidden)
}
