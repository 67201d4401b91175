package list

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gh-tui-tools/gh-pr-threads/pkg/github"
)

func TestCleanBody(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "suggestion fence collapses",
			in:   "Use this:\n```suggestion\nfoo := bar\n```\nthanks",
			want: "Use this: [suggestion] thanks",
		},
		{
			name: "code fence collapses",
			in:   "See\n```go\nfunc main() {}\n```\nabove",
			want: "See [code] above",
		},
		{
			name: "newlines and runs flatten",
			in:   "line one\n\n\nline   two\t three",
			want: "line one line two three",
		},
		{
			name: "plain text untouched",
			in:   "nothing special",
			want: "nothing special",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanBody(tt.in))
		})
	}
}

func TestFormatCommentTruncatesLongBody(t *testing.T) {
	comment := &github.ReviewComment{
		User: github.User{Login: "alice"},
		Body: strings.Repeat("a", 1000),
	}
	line := formatComment(comment, 1, 300, false)

	require.True(t, strings.HasPrefix(line, "[1] alice: "))
	text := strings.TrimPrefix(line, "[1] alice: ")
	assert.Len(t, text, 300, "truncated text is exactly the limit, ellipsis included")
	assert.True(t, strings.HasSuffix(text, "..."))
}

func TestFormatCommentShowFull(t *testing.T) {
	comment := &github.ReviewComment{
		User: github.User{Login: "alice"},
		Body: strings.Repeat("a", 1000),
	}
	line := formatComment(comment, 1, 300, true)
	assert.Greater(t, len(line), 1000)
	assert.False(t, strings.HasSuffix(line, "..."))
}

func TestFormatCommentShortBodyUntouched(t *testing.T) {
	comment := &github.ReviewComment{
		User: github.User{Login: "alice"},
		Body: "short",
	}
	assert.Equal(t, "[3] alice: short", formatComment(comment, 3, 300, false))
}

func TestFormatCommentResolvedMarker(t *testing.T) {
	comment := &github.ReviewComment{
		User:           github.User{Login: "alice"},
		Body:           "done",
		ThreadResolved: true,
	}
	assert.Equal(t, "[2] [RESOLVED] alice: done", formatComment(comment, 2, 300, false))
}

func TestSummarizeReplies(t *testing.T) {
	replies := []github.Reply{
		{Author: "a", Body: "first"},
		{Author: "b", Body: "second"},
		{Author: "c", Body: "third"},
		{Author: "d", Body: "fourth"},
	}

	out := summarizeReplies(replies)
	assert.Contains(t, out, "[+2 hidden]", "older replies collapse into a count")
	assert.Contains(t, out, "[↪ c: third]")
	assert.Contains(t, out, "[↪ d: fourth]")
	assert.NotContains(t, out, "first")

	two := summarizeReplies(replies[:2])
	assert.NotContains(t, two, "hidden")
	assert.Contains(t, two, "[↪ a: first]")
	assert.Contains(t, two, "[↪ b: second]")

	assert.Empty(t, summarizeReplies(nil))
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "3 shown", SummaryLine(3, 0))
	assert.Equal(t, "3 shown, 2 resolved hidden", SummaryLine(3, 2))
	assert.Equal(t, "0 shown, 5 resolved hidden", SummaryLine(0, 5))
}

func TestPositionSummary(t *testing.T) {
	comment := &github.ReviewComment{
		Line:             intPtr(12),
		OriginalPosition: intPtr(3),
	}
	got := positionSummary(comment)
	assert.Equal(t, "line=12 original_line=- start_line=- position=- original_position=3 side=RIGHT", got)
}

func TestIsBot(t *testing.T) {
	extra := []string{"coderabbitai"}
	assert.True(t, isBot("dependabot[bot]", nil))
	assert.True(t, isBot("coderabbitai", extra))
	assert.True(t, isBot("CodeRabbitAI", extra))
	assert.False(t, isBot("alice", extra))
}

func TestTruncateUnicode(t *testing.T) {
	// Truncation is in display cells, so wide runes are never split.
	s := strings.Repeat("é", 50)
	out := truncate(s, 20)
	require.True(t, strings.HasSuffix(out, "..."))
	assert.LessOrEqual(t, len([]rune(out)), 20)
}
