package ui

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

var (
	mdOnce     sync.Once
	mdRenderer *glamour.TermRenderer
	mdErr      error
)

func markdownRenderer() (*glamour.TermRenderer, error) {
	mdOnce.Do(func() {
		mdRenderer, mdErr = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
	})
	return mdRenderer, mdErr
}

// WarmupMarkdownRenderer initializes glamour in the background so the
// first detail view opens without a style-loading stall.
func WarmupMarkdownRenderer() {
	go func() {
		_, _ = markdownRenderer()
	}()
}

// RenderMarkdown renders a markdown string for the terminal. Callers
// should fall back to WrapText when this errors.
func RenderMarkdown(md string) (string, error) {
	r, err := markdownRenderer()
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// WrapText soft-wraps text at the given width.
func WrapText(text string, width int) string {
	return wordwrap.String(text, width)
}

// CodeFenceLanguageFromPath guesses the fence language for syntax
// highlighting from a file extension.
func CodeFenceLanguageFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".py":
		return "python"
	case ".rb":
		return "ruby"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".rs":
		return "rust"
	case ".java":
		return "java"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".hpp":
		return "cpp"
	case ".sh", ".bash":
		return "bash"
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".md":
		return "markdown"
	default:
		return ""
	}
}
