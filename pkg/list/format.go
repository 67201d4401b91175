package list

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/gh-tui-tools/gh-pr-threads/pkg/github"
)

var (
	suggestionFenceRe = regexp.MustCompile("(?s)```suggestion[^\n]*\n.*?```")
	codeFenceRe       = regexp.MustCompile("(?s)```.*?```")
	whitespaceRe      = regexp.MustCompile(`\s+`)
)

// replySnippetWidth bounds each reply summary appended to a display line.
const replySnippetWidth = 60

// cleanBody flattens a markdown comment body to a single display line.
// Suggestion fences collapse to a [suggestion] placeholder, any other
// fenced block to [code], and all whitespace runs to single spaces.
func cleanBody(body string) string {
	body = suggestionFenceRe.ReplaceAllString(body, "[suggestion]")
	body = codeFenceRe.ReplaceAllString(body, "[code]")
	body = strings.ReplaceAll(body, "\n", " ")
	body = whitespaceRe.ReplaceAllString(body, " ")
	return strings.TrimSpace(body)
}

// truncate cuts s to at most width display cells, ellipsis included.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "...")
}

// summarizeReplies renders a thread's replies for the one-line view. Up
// to the last two replies appear verbatim; anything older collapses into
// a hidden-count marker.
func summarizeReplies(replies []github.Reply) string {
	if len(replies) == 0 {
		return ""
	}

	var b strings.Builder
	shown := replies
	if len(replies) > 2 {
		fmt.Fprintf(&b, " [+%d hidden]", len(replies)-2)
		shown = replies[len(replies)-2:]
	}
	for _, reply := range shown {
		snippet := truncate(cleanBody(reply.Body), replySnippetWidth)
		fmt.Fprintf(&b, " [↪ %s: %s]", reply.Author, snippet)
	}
	return b.String()
}

// formatComment renders the display line for one comment:
//
//	[index] [RESOLVED]? author: body ...reply summaries
//
// truncated to maxLength cells unless showFull is set.
func formatComment(c *github.ReviewComment, index, maxLength int, showFull bool) string {
	text := cleanBody(c.Body) + summarizeReplies(c.Replies)
	if !showFull {
		text = truncate(text, maxLength)
	}

	resolved := ""
	if c.IsResolved() {
		resolved = "[RESOLVED] "
	}
	return fmt.Sprintf("[%d] %s%s: %s", index, resolved, c.Author(), text)
}

// SummaryLine formats shown/hidden counts, e.g. "3 shown, 2 resolved
// hidden". Shared by the plain output footer and the interactive status
// line.
func SummaryLine(shown, hidden int) string {
	if hidden == 0 {
		return fmt.Sprintf("%d shown", shown)
	}
	return fmt.Sprintf("%d shown, %d resolved hidden", shown, hidden)
}

// positionSummary renders the raw positional fields for the detail view,
// where seeing which hints the API actually populated helps judge how
// trustworthy the resolved line is.
func positionSummary(c *github.ReviewComment) string {
	field := func(v *int) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%d", *v)
	}
	return fmt.Sprintf("line=%s original_line=%s start_line=%s position=%s original_position=%s side=%s",
		field(c.Line), field(c.OriginalLine), field(c.StartLine),
		field(c.Position), field(c.OriginalPosition), c.DisplaySide())
}

// isBot reports whether the author is a known automation identity. Bot
// comments are shown at a lower severity so human feedback stands out;
// they are never filtered.
func isBot(login string, extra []string) bool {
	if strings.HasSuffix(login, "[bot]") {
		return true
	}
	for _, l := range extra {
		if strings.EqualFold(login, l) {
			return true
		}
	}
	return false
}
