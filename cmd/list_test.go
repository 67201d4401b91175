package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/gh-tui-tools/gh-pr-threads/pkg/github"
	"github.com/gh-tui-tools/gh-pr-threads/pkg/list"
	"github.com/gh-tui-tools/gh-pr-threads/pkg/ui"
)

func TestMarkResolved(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		resolved bool
		want     string
	}{
		{
			name:     "resolve inserts marker after index",
			text:     "[3] alice: looks wrong",
			resolved: true,
			want:     "[3] [RESOLVED] alice: looks wrong",
		},
		{
			name:     "unresolve strips marker",
			text:     "[3] [RESOLVED] alice: looks wrong",
			resolved: false,
			want:     "[3] alice: looks wrong",
		},
		{
			name:     "resolve is idempotent",
			text:     "[3] [RESOLVED] alice: looks wrong",
			resolved: true,
			want:     "[3] [RESOLVED] alice: looks wrong",
		},
		{
			name:     "unresolve is idempotent",
			text:     "[3] alice: looks wrong",
			resolved: false,
			want:     "[3] alice: looks wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &threadItem{entry: list.Entry{Text: tt.text}}
			item.markResolved(tt.resolved)
			if item.entry.Text != tt.want {
				t.Errorf("markResolved(%v) text = %q, want %q", tt.resolved, item.entry.Text, tt.want)
			}
			if item.entry.Resolved != tt.resolved {
				t.Errorf("markResolved(%v) resolved = %v", tt.resolved, item.entry.Resolved)
			}
		})
	}
}

func TestResolvePRNumberExplicitArg(t *testing.T) {
	client := github.NewClient()
	ctx := context.Background()

	n, err := resolvePRNumber(ctx, client, []string{"42"})
	if err != nil {
		t.Fatalf("resolvePRNumber returned error: %v", err)
	}
	if n != 42 {
		t.Errorf("resolvePRNumber = %d, want 42", n)
	}

	for _, bad := range []string{"abc", "0", "-3"} {
		if _, err := resolvePRNumber(ctx, client, []string{bad}); err == nil {
			t.Errorf("resolvePRNumber(%q) expected error", bad)
		}
	}
}

func TestThreadItemRendererTitle(t *testing.T) {
	ui.SetColorsEnabled(false)
	defer ui.SetColorsEnabled(true)

	r := &threadItemRenderer{}
	line := 12
	item := &threadItem{
		entry: list.Entry{
			File:     "pkg/server/server.go",
			Line:     12,
			Severity: list.SeverityWarning,
			Text:     "[1] alice: looks wrong",
		},
		comment: &github.ReviewComment{Line: &line},
	}

	got := r.Title(item)
	want := "W pkg/server/server.go:12 [1] alice: looks wrong"
	if got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}

func TestThreadItemRendererPreview(t *testing.T) {
	ui.SetColorsEnabled(false)
	defer ui.SetColorsEnabled(true)

	ctl := list.NewController(list.Options{})
	line := 12
	comment := &github.ReviewComment{
		ID:       1,
		Path:     "a.go",
		Line:     &line,
		User:     github.User{Login: "alice"},
		Body:     "please fix",
		DiffHunk: "@@ -10,3 +10,4 @@\n ctx\n+new\n ctx2",
		HTMLURL:  "https://example.com/c/1",
		Replies: []github.Reply{
			{Author: "bob", Body: "done"},
		},
	}
	ctl.Build(5, []*github.ReviewComment{comment})
	items := buildItems(ctl)
	if len(items) != 1 {
		t.Fatalf("buildItems returned %d items, want 1", len(items))
	}

	preview := (&threadItemRenderer{}).Preview(items[0])
	for _, want := range []string{
		"Author: @alice",
		"Location: a.go:12",
		"Status: unresolved",
		"--- Comment ---",
		"--- Context ---",
		"--- Replies ---",
		"Reply 1 by @bob",
		"line=12",
	} {
		if !strings.Contains(preview, want) {
			t.Errorf("Preview() missing %q\n%s", want, preview)
		}
	}
}

func TestThreadItemRendererPreviewStatusEmoji(t *testing.T) {
	ui.SetColorsEnabled(true)
	defer ui.SetColorsEnabled(true)

	ctl := list.NewController(list.Options{ShowResolved: true})
	reviewID := int64(10)
	comment := &github.ReviewComment{
		ID:             1,
		Path:           "a.go",
		User:           github.User{Login: "alice"},
		ReviewID:       &reviewID,
		ThreadResolved: true,
	}
	ctl.Build(5, []*github.ReviewComment{comment})
	items := buildItems(ctl)

	preview := (&threadItemRenderer{}).Preview(items[0])
	if !strings.Contains(preview, "✅ resolved") {
		t.Errorf("Preview() missing emoji status marker on capable terminals\n%s", preview)
	}
}

func TestBuildItemsSkipsNothingVisible(t *testing.T) {
	ctl := list.NewController(list.Options{ShowResolved: true})
	reviewID := int64(10)
	comments := []*github.ReviewComment{
		{ID: 1, Path: "a.go", User: github.User{Login: "alice"}, Body: "x", ReviewID: &reviewID},
		{ID: 2, Path: "b.go", User: github.User{Login: "bob"}, Body: "y", ReviewID: &reviewID, ThreadResolved: true},
	}
	ctl.Build(5, comments)

	items := buildItems(ctl)
	if len(items) != 2 {
		t.Fatalf("buildItems returned %d items, want 2", len(items))
	}
	if !items[1].entry.Resolved {
		t.Errorf("second item should carry the resolved flag")
	}
	if items[0].comment.ID != items[0].entry.CommentID {
		t.Errorf("entry and comment must agree on the comment id")
	}
}
