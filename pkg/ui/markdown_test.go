package ui

import "testing"

func TestCodeFenceLanguageFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"pkg/github/comments.go", "go"},
		{"scripts/deploy.py", "python"},
		{"lib/worker.rb", "ruby"},
		{"web/app.tsx", "typescript"},
		{"web/legacy.mjs", "javascript"},
		{"src/main.rs", "rust"},
		{"Server.java", "java"},
		{"core/buf.c", "c"},
		{"core/buf.h", "c"},
		{"engine/mesh.cpp", "cpp"},
		{"install.sh", "bash"},
		{"deploy/values.yaml", "yaml"},
		{"config.json", "json"},
		{"README.md", "markdown"},
		{"LICENSE", ""},
		{"", ""},
		{"weird.GO", "go"},
	}

	for _, tt := range tests {
		if got := CodeFenceLanguageFromPath(tt.path); got != tt.expected {
			t.Errorf("CodeFenceLanguageFromPath(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := WrapText("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("WrapText() = %q, want %q", got, want)
	}
}
