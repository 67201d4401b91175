//go:build !coverage

package ui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
)

// Select runs the interactive selector and returns the item the user
// picked, or ErrNoSelection when they quit.
func Select[T any](opts SelectorOptions[T]) (T, error) {
	l := list.New(nil, itemDelegate[T]{renderer: opts.Renderer}, 0, 0)
	l.Title = opts.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	l.Styles.StatusBar = lipgloss.NewStyle().Padding(0, 1)
	l.KeyMap.Quit.SetKeys()

	m := SelectionModel[T]{
		list:         l,
		items:        opts.Items,
		opts:         opts,
		filterActive: opts.FilterDefault,
	}
	m.updateVisibleItems()

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		var zero T
		return zero, err
	}

	final := finalModel.(SelectionModel[T])
	if len(final.result) == 0 {
		var zero T
		return zero, ErrNoSelection
	}
	return final.result[0], nil
}

func (m SelectionModel[T]) Init() tea.Cmd {
	return nil
}

func (m SelectionModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowSize = msg
		listHeight := msg.Height - 5
		if listHeight < 1 {
			listHeight = 1
		}
		m.list.SetSize(msg.Width, listHeight)
		m.viewport = viewport.New(msg.Width, listHeight)
		return m, nil

	case loadDetailMsg:
		m.loadingDetail = false
		if selected := m.selectedValue(); selected != nil {
			m.viewport.SetContent(m.opts.Renderer.Preview(*selected))
			m.viewport.GotoTop()
		}
		return m, nil

	case refreshFinishedMsg:
		m.refreshing = false
		if msg.err != nil {
			return m, m.list.NewStatusMessage(Colorize(ColorRed, fmt.Sprintf("Refresh failed: %v", msg.err)))
		}
		if items, ok := msg.items.([]T); ok {
			m.items = items
			m.list.Title = msg.status
			m.updateVisibleItems()
			return m, m.list.NewStatusMessage(Colorize(ColorGreen, "Refreshed"))
		}
		return m, nil

	case summaryFinishedMsg:
		m.summarizing = false
		if msg.err != nil {
			return m, m.list.NewStatusMessage(Colorize(ColorRed, fmt.Sprintf("Summary failed: %v", msg.err)))
		}
		m.confirmation = fmt.Sprintf("%s\n\nPress any key to continue...", msg.text)
		return m, nil

	case editorFinishedMsg:
		return m.handleEditorFinished(msg)

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if m.confirmation != "" {
			m.confirmation = ""
			return m, nil
		}
		if m.list.SettingFilter() {
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
		if m.showDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m SelectionModel[T]) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "left", "h", "q":
		m.showDetail = false
		return m, nil
	case "ctrl+f":
		m.viewport.PageDown()
		return m, nil
	case "ctrl+b":
		m.viewport.PageUp()
		return m, nil
	case "r", "u", "p", "o", "y", "s":
		m.showDetail = false
		return m.dispatchAction(msg.String())
	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
}

func (m SelectionModel[T]) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = true
		return m, nil
	case "q":
		m.result = nil
		return m, tea.Quit
	case "enter", "right", "l":
		if m.selectedValue() == nil {
			return m, nil
		}
		m.showDetail = true
		m.loadingDetail = true
		m.viewport.SetContent("Loading...")
		return m, func() tea.Msg { return loadDetailMsg{} }
	case "h", "tab":
		if m.opts.FilterFunc != nil {
			m.filterActive = !m.filterActive
			m.updateVisibleItems()
			if m.filterActive {
				return m, m.list.NewStatusMessage("Hiding resolved")
			}
			return m, m.list.NewStatusMessage("Showing all")
		}
		return m, nil
	case "i":
		if m.opts.RefreshItems != nil && !m.refreshing {
			m.refreshing = true
			Debugf("refreshing item list")
			refresh := m.opts.RefreshItems
			return m, func() tea.Msg {
				items, status, err := refresh()
				return refreshFinishedMsg{items: items, status: status, err: err}
			}
		}
		return m, nil
	case "r", "u", "p", "o", "y", "s":
		return m.dispatchAction(msg.String())
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// dispatchAction routes a single-key action to its callback.
func (m SelectionModel[T]) dispatchAction(key string) (tea.Model, tea.Cmd) {
	selected := m.selectedValue()
	if selected == nil {
		return m, nil
	}
	item := *selected
	Debugf("dispatching %q on list index %d", key, m.list.Index())

	var action CustomAction[T]
	switch key {
	case "r":
		action = m.opts.ResolveAction
	case "u":
		action = m.opts.UnresolveAction
	case "o":
		action = m.opts.OnOpen
	case "y":
		action = m.opts.YankAction
	case "p":
		if m.opts.ReplyPrepare != nil {
			cmd := m.startEditor(item)
			return m, cmd
		}
		return m, nil
	case "s":
		if m.opts.SummarizeAction != nil && !m.summarizing {
			m.summarizing = true
			summarize := m.opts.SummarizeAction
			cmd := func() tea.Msg {
				text, err := summarize(item)
				return summaryFinishedMsg{text: text, err: err}
			}
			return m, tea.Batch(m.list.NewStatusMessage("Summarizing..."), cmd)
		}
		return m, nil
	}

	if action == nil {
		return m, nil
	}
	statusMsg, err := action(item)
	if err != nil {
		return m, m.list.NewStatusMessage(Colorize(ColorRed, err.Error()))
	}
	m.list.SetItem(m.list.Index(), listItem[T]{value: item, renderer: m.opts.Renderer})
	if statusMsg != "" {
		return m, m.list.NewStatusMessage(statusMsg)
	}
	return m, nil
}

func (m *SelectionModel[T]) selectedValue() *T {
	selected := m.list.SelectedItem()
	if selected == nil {
		return nil
	}
	item := selected.(listItem[T])
	return &item.value
}

func (m *SelectionModel[T]) editorCommand() string {
	if m.opts.Editor != "" {
		return m.opts.Editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vim"
}

// startEditor writes the reply prefill to a temp file and hands the
// terminal to the user's editor.
func (m *SelectionModel[T]) startEditor(item T) tea.Cmd {
	content, err := m.opts.ReplyPrepare(item)
	if err != nil {
		return m.list.NewStatusMessage(Colorize(ColorRed, err.Error()))
	}

	tmpFile, err := os.CreateTemp("", "gh-pr-threads-*.md")
	if err != nil {
		return m.list.NewStatusMessage(Colorize(ColorRed, fmt.Sprintf("Failed to create temp file: %v", err)))
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		_ = tmpFile.Close()
		return m.list.NewStatusMessage(Colorize(ColorRed, fmt.Sprintf("Failed to write temp file: %v", err)))
	}
	_ = tmpFile.Close()

	m.pendingEditorItem = item
	m.pendingEditorTmpFile = tmpFile.Name()
	Debugf("editor prefill written to %s", tmpFile.Name())

	c := exec.Command(m.editorCommand(), tmpFile.Name())
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (m SelectionModel[T]) handleEditorFinished(msg editorFinishedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return m, m.list.NewStatusMessage(Colorize(ColorRed, fmt.Sprintf("Editor error: %v", msg.err)))
	}
	if m.pendingEditorTmpFile == "" {
		return m, nil
	}

	content, err := os.ReadFile(m.pendingEditorTmpFile)
	_ = os.Remove(m.pendingEditorTmpFile)
	m.pendingEditorTmpFile = ""
	if err != nil {
		return m, m.list.NewStatusMessage(Colorize(ColorRed, fmt.Sprintf("Failed to read temp file: %v", err)))
	}

	body := SanitizeEditorContent(string(content))
	if body == "" {
		return m, m.list.NewStatusMessage("Cancelled (empty content)")
	}
	if m.opts.ReplyComplete == nil {
		return m, nil
	}

	result, err := m.opts.ReplyComplete(m.pendingEditorItem, body)
	if err != nil {
		return m, m.list.NewStatusMessage(Colorize(ColorRed, err.Error()))
	}
	if strings.Contains(result, "https://") {
		m.confirmation = fmt.Sprintf("%s\n\nPress any key to continue...", result)
		return m, nil
	}
	if result != "" {
		return m, m.list.NewStatusMessage(result)
	}
	return m, nil
}

func (m *SelectionModel[T]) updateVisibleItems() {
	listItems := make([]list.Item, 0, len(m.items))
	for _, item := range m.items {
		if m.opts.FilterFunc == nil || m.opts.FilterFunc(item, m.filterActive) {
			listItems = append(listItems, listItem[T]{value: item, renderer: m.opts.Renderer})
		}
	}
	m.list.SetItems(listItems)
	if m.opts.Status != nil {
		m.statusLine = m.opts.Status(len(listItems), len(m.items)-len(listItems))
	}
}

func (m SelectionModel[T]) View() string {
	if m.showHelp {
		return m.renderOverlay(m.helpText())
	}
	if m.confirmation != "" {
		return m.renderOverlay(m.confirmation)
	}

	if m.showDetail {
		header := titleStyle.Render("Detail View") + "  " + dimStyle.Render(strings.Join(m.actionHints(true), " | "))
		footer := dimStyle.Render(strings.Join(m.actionHints(true), " | "))

		available := m.windowSize.Height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
		if available < 1 {
			available = 1
		}
		m.viewport.Height = available
		m.viewport.Width = m.windowSize.Width

		return lipgloss.JoinVertical(lipgloss.Left, header, "", m.viewport.View(), "", footer)
	}

	var footer string
	switch {
	case m.refreshing:
		footer = dimStyle.Render("Refreshing...")
	case m.summarizing:
		footer = dimStyle.Render("Summarizing...")
	default:
		hints := m.actionHints(false)
		if m.statusLine != "" {
			hints = append([]string{m.statusLine}, hints...)
		}
		footer = dimStyle.Render(strings.Join(hints, " | "))
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), "", footer)
}

func (m SelectionModel[T]) actionHints(detail bool) []string {
	var hints []string
	if detail {
		hints = append(hints, "q/esc:back")
	} else {
		hints = append(hints, "enter:view")
	}
	if m.opts.ResolveAction != nil {
		hints = append(hints, "r:resolve")
	}
	if m.opts.UnresolveAction != nil {
		hints = append(hints, "u:unresolve")
	}
	if m.opts.ReplyPrepare != nil {
		hints = append(hints, "p:reply")
	}
	if m.opts.YankAction != nil {
		hints = append(hints, "y:yank url")
	}
	if m.opts.SummarizeAction != nil {
		hints = append(hints, "s:summarize")
	}
	if m.opts.OnOpen != nil {
		hints = append(hints, "o:open")
	}
	if detail {
		hints = append(hints, "ctrl+f/b:scroll")
		return hints
	}
	if m.opts.RefreshItems != nil {
		hints = append(hints, "i:refresh")
	}
	if m.opts.FilterFunc != nil {
		hints = append(hints, "h:toggle resolved")
	}
	hints = append(hints, "?:help", "q:quit")
	return hints
}

func (m SelectionModel[T]) helpText() string {
	text := `Keyboard Shortcuts

Navigation:
  ↑/↓, j/k     Move up/down
  enter, l, →  View detail
  ←, esc       Back (from detail)
  q            Quit (list) / Back (detail)
  /            Filter items
  h            Toggle resolved visibility

Actions:`
	for _, hint := range m.actionHints(false) {
		key, desc, found := strings.Cut(hint, ":")
		if !found || key == "enter" || key == "?" || key == "q" || key == "h" {
			continue
		}
		text += fmt.Sprintf("\n  %-12s %s", key, desc)
	}
	text += `

Detail View:
  ctrl+f       Page down
  ctrl+b       Page up

Press any key to close this help...`
	return text
}

// renderOverlay centers boxed content in the window.
func (m SelectionModel[T]) renderOverlay(content string) string {
	width := m.windowSize.Width
	height := m.windowSize.Height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("205")).
		Padding(1, 2).
		Render(content)

	topPadding := (height - lipgloss.Height(box)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	leftPadding := (width - lipgloss.Width(box)) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var lines []string
	for i := 0; i < topPadding; i++ {
		lines = append(lines, "")
	}
	for _, line := range strings.Split(box, "\n") {
		lines = append(lines, strings.Repeat(" ", leftPadding)+line)
	}
	return strings.Join(lines, "\n")
}

type itemDelegate[T any] struct {
	renderer ItemRenderer[T]
}

func (d itemDelegate[T]) Height() int  { return 1 }
func (d itemDelegate[T]) Spacing() int { return 0 }

func (d itemDelegate[T]) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d itemDelegate[T]) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(listItem[T])
	if !ok {
		return
	}

	title := i.Title()
	if desc := i.Description(); desc != "" {
		title = fmt.Sprintf("%s - %s", title, desc)
	}

	maxWidth := m.Width() - 4
	if maxWidth > 3 && len(title) > maxWidth {
		title = title[:maxWidth-3] + "..."
	}

	if index == m.Index() {
		fmt.Fprint(w, selectedStyle.Render("> "+title))
		return
	}
	fmt.Fprint(w, "  "+title)
}
