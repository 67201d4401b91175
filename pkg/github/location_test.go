package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleHunk = "@@ -10,3 +10,4 @@ func main() {\n context\n+added\n context2"

func TestResolveLineFallbackChain(t *testing.T) {
	tests := []struct {
		name    string
		comment *ReviewComment
		want    int
	}{
		{
			name:    "line wins over everything",
			comment: &ReviewComment{Line: intPtr(5), DiffHunk: sampleHunk, OriginalLine: intPtr(7), StartLine: intPtr(99)},
			want:    5,
		},
		{
			name:    "diff hunk when line is missing",
			comment: &ReviewComment{DiffHunk: sampleHunk, OriginalPosition: intPtr(2), OriginalLine: intPtr(7)},
			want:    11,
		},
		{
			name:    "original line when the hunk is empty",
			comment: &ReviewComment{OriginalLine: intPtr(7), StartLine: intPtr(99)},
			want:    7,
		},
		{
			name:    "unparsable hunk falls through to original line",
			comment: &ReviewComment{DiffHunk: "not a hunk", OriginalLine: intPtr(7)},
			want:    7,
		},
		{
			name:    "start line as last positional hint",
			comment: &ReviewComment{StartLine: intPtr(99)},
			want:    99,
		},
		{
			name:    "nothing at all defaults to line 1",
			comment: &ReviewComment{},
			want:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLine(tt.comment))
		})
	}
}

func TestLineFromDiffHunk(t *testing.T) {
	tests := []struct {
		name    string
		hunk    string
		origPos *int
		want    int
	}{
		{
			name: "anchor only when position is absent",
			hunk: sampleHunk,
			want: 10,
		},
		{
			name:    "walk stops at original position",
			hunk:    sampleHunk,
			origPos: intPtr(2),
			want:    11,
		},
		{
			name:    "removed lines do not advance the offset",
			hunk:    "@@ -3,4 +3,3 @@\n kept\n-removed\n kept2",
			origPos: intPtr(3),
			want:    4,
		},
		{
			name:    "position beyond the hunk returns the anchor",
			hunk:    sampleHunk,
			origPos: intPtr(50),
			want:    10,
		},
		{
			name: "counts are optional in the header",
			hunk: "@@ -1 +1 @@\n+only",
			want: 1,
		},
		{
			name: "missing header yields zero",
			hunk: "just some text\nwith lines",
			want: 0,
		},
		{
			name: "empty hunk yields zero",
			hunk: "",
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineFromDiffHunk(tt.hunk, tt.origPos))
		})
	}
}
