package ui

import (
	"regexp"
	"strings"
)

var (
	suggestionBlockRe = regexp.MustCompile("(?s)[ \t]*```suggestion[^\n]*\n.*?```[ \t]*")
	markdownImageRe   = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
)

// StripSuggestionBlock removes ```suggestion fences and markdown images
// from a comment body, leaving the prose around them.
func StripSuggestionBlock(body string) string {
	body = suggestionBlockRe.ReplaceAllString(body, "")
	body = markdownImageRe.ReplaceAllString(body, "")

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
		} else {
			lines[i] = strings.TrimRight(line, " \t")
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// FormatDiffWithHeaders prepends git-style ---/+++ headers so a bare
// hunk renders correctly inside a ```diff fence.
func FormatDiffWithHeaders(diffHunk, path string) string {
	if path == "" {
		return diffHunk
	}
	return "--- a/" + path + "\n+++ b/" + path + "\n" + diffHunk
}

// TruncateDiff limits a diff to maxLines lines, appending an ellipsis
// line when anything was cut. Non-positive maxLines disables truncation.
func TruncateDiff(diff string, maxLines int) string {
	if maxLines <= 0 {
		return diff
	}
	lines := strings.Split(diff, "\n")
	if len(lines) <= maxLines {
		return diff
	}
	return strings.Join(lines[:maxLines], "\n") + "\n..."
}

// ColorizeDiff colors diff lines: additions green, removals red, hunk
// headers cyan, context gray.
func ColorizeDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "@@"):
			lines[i] = Colorize(ColorCyan, line)
		case strings.HasPrefix(line, "+"):
			lines[i] = Colorize(ColorGreen, line)
		case strings.HasPrefix(line, "-"):
			lines[i] = Colorize(ColorRed, line)
		default:
			lines[i] = Colorize(ColorGray, line)
		}
	}
	return strings.Join(lines, "\n")
}
