package ui

import "strings"

// FormatBlockquote prefixes every line of text with "> ".
func FormatBlockquote(text string) string {
	if text == "" {
		return ">"
	}
	var b strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("> ")
		b.WriteString(line)
	}
	return b.String()
}

// FormatQuotedReply builds the editor prefill for replying to a review
// comment: the quoted original (optionally preceded by its diff context
// as a quoted code fence) followed by blank lines for the reply.
func FormatQuotedReply(author, body, diffHunk, path string, includeContext bool) string {
	var parts []string

	if includeContext && diffHunk != "" {
		quoted := []string{"> ```diff"}
		for _, line := range strings.Split(FormatDiffWithHeaders(diffHunk, path), "\n") {
			quoted = append(quoted, "> "+line)
		}
		quoted = append(quoted, "> ```", ">")
		parts = append(parts, strings.Join(quoted, "\n"))
	}

	parts = append(parts, FormatBlockquote("@"+author+" wrote:"), ">")
	if clean := StripSuggestionBlock(body); clean != "" {
		parts = append(parts, FormatBlockquote(clean))
	}
	parts = append(parts, "", "")

	return strings.Join(parts, "\n")
}
