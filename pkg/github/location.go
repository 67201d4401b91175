package github

import (
	"regexp"
	"strconv"
	"strings"
)

// hunkHeaderRe matches "@@ -oldStart,oldCount +newStart,newCount @@" with
// the counts optional.
var hunkHeaderRe = regexp.MustCompile(`@@ -(\d+)(?:,\d+)? \+(\d+)(?:,\d+)? @@`)

// ResolveLine derives the best available current-file line for a comment.
// The positional hints GitHub attaches are overlapping and inconsistently
// populated, so the chain below takes the first one that yields anything:
//
//  1. the comment's line field
//  2. the line computed from its diff hunk
//  3. originalLine
//  4. startLine
//  5. line 1
func ResolveLine(c *ReviewComment) int {
	if c.Line != nil {
		return *c.Line
	}
	if c.DiffHunk != "" {
		if line := LineFromDiffHunk(c.DiffHunk, c.OriginalPosition); line > 0 {
			return line
		}
	}
	if c.OriginalLine != nil {
		return *c.OriginalLine
	}
	if c.StartLine != nil {
		return *c.StartLine
	}
	return 1
}

// LineFromDiffHunk computes a new-file line number from a unified diff
// hunk. The hunk header's newStart anchors the count; walking the body,
// every line still present in the new file (anything not starting with
// "-") advances the offset. When originalPosition is set and the walk
// reaches that body index (1-based, the header being index 0), the result
// is newStart + offset - 1. Without a match the anchor itself is
// returned. A hunk whose header does not parse yields 0 so the caller can
// fall through to the next positional hint.
func LineFromDiffHunk(hunk string, originalPosition *int) int {
	lines := strings.Split(hunk, "\n")
	m := hunkHeaderRe.FindStringSubmatch(lines[0])
	if m == nil {
		return 0
	}
	newStart, err := strconv.Atoi(m[2])
	if err != nil {
		return 0
	}

	lineOffset := 0
	found := false
	for i, line := range lines[1:] {
		if !strings.HasPrefix(line, "-") {
			lineOffset++
		}
		if originalPosition != nil && i+1 == *originalPosition {
			found = true
			break
		}
	}

	if found && lineOffset > 0 {
		return newStart + lineOffset - 1
	}
	return newStart
}
