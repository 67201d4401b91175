package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrNoSelection is returned when the user quits the selector without
// picking anything.
var ErrNoSelection = errors.New("no selection made")

// ItemRenderer turns items into their list and detail representations.
type ItemRenderer[T any] interface {
	// Title is the one-line list row.
	Title(item T) string
	// Description is appended to the row when non-empty.
	Description(item T) string
	// Preview is the full detail-pane content.
	Preview(item T) string
	// FilterValue feeds the fuzzy filter.
	FilterValue(item T) string
}

// CustomAction runs against the selected item and returns a status
// message for the footer.
type CustomAction[T any] func(item T) (string, error)

// EditorPreparer returns the prefill content for an editor-backed
// action.
type EditorPreparer[T any] func(item T) (string, error)

// EditorCompleter receives the edited body once the editor exits.
type EditorCompleter[T any] func(item T, body string) (string, error)

// SelectorOptions configures the interactive selector. Nil callbacks
// disable their key binding and drop it from the help line.
type SelectorOptions[T any] struct {
	Items    []T
	Renderer ItemRenderer[T]
	Title    string
	// Status renders the footer count line from the currently visible
	// and hidden item counts. It is re-evaluated whenever the visible
	// set changes (filter toggle, refresh). Nil leaves the footer to
	// the action hints alone.
	Status func(visible, hidden int) string

	// r / u
	ResolveAction   CustomAction[T]
	UnresolveAction CustomAction[T]
	// p, via editor
	ReplyPrepare  EditorPreparer[T]
	ReplyComplete EditorCompleter[T]
	// o
	OnOpen CustomAction[T]
	// y
	YankAction CustomAction[T]
	// s, may be slow; runs as a background command
	SummarizeAction CustomAction[T]
	// i, returns fresh items plus a new list title
	RefreshItems func() ([]T, string, error)
	// h toggles hideResolved; FilterDefault is the starting state
	FilterFunc    func(item T, hideResolved bool) bool
	FilterDefault bool

	// Editor overrides $EDITOR for editor-backed actions.
	Editor string
}

// SelectionModel is the bubbletea model behind Select.
type SelectionModel[T any] struct {
	list     list.Model
	viewport viewport.Model
	items    []T
	opts     SelectorOptions[T]

	windowSize   tea.WindowSizeMsg
	filterActive bool
	statusLine   string

	showDetail    bool
	showHelp      bool
	refreshing    bool
	summarizing   bool
	confirmation  string
	loadingDetail bool

	pendingEditorItem    T
	pendingEditorTmpFile string

	result []T
}

type listItem[T any] struct {
	value    T
	renderer ItemRenderer[T]
}

func (i listItem[T]) Title() string       { return i.renderer.Title(i.value) }
func (i listItem[T]) Description() string { return i.renderer.Description(i.value) }
func (i listItem[T]) FilterValue() string { return i.renderer.FilterValue(i.value) }

type (
	loadDetailMsg      struct{}
	editorFinishedMsg  struct{ err error }
	refreshFinishedMsg struct {
		items  interface{}
		status string
		err    error
	}
	summaryFinishedMsg struct {
		text string
		err  error
	}
)

// SanitizeEditorContent normalizes an edited buffer: CRLF to LF, trailing
// whitespace stripped. An all-whitespace buffer becomes empty, which
// callers treat as a cancelled action.
func SanitizeEditorContent(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func splitActionKey(binding string) (key, desc string) {
	parts := strings.SplitN(binding, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
