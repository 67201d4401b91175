package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/gh-tui-tools/gh-pr-threads/pkg/ai"
	"github.com/gh-tui-tools/gh-pr-threads/pkg/config"
	"github.com/gh-tui-tools/gh-pr-threads/pkg/git"
	"github.com/gh-tui-tools/gh-pr-threads/pkg/github"
	"github.com/gh-tui-tools/gh-pr-threads/pkg/list"
	"github.com/gh-tui-tools/gh-pr-threads/pkg/ui"
)

var (
	plainFlag        bool
	showResolvedFlag bool
	showFullFlag     bool
	refreshFlag      bool
)

var listCmd = &cobra.Command{
	Use:   "list [PR_NUMBER]",
	Short: "List review comments on a pull request",
	Long: `List GitHub pull request review comments.

When no PR number is given, the PR is located from the current branch.
By default an interactive list opens; with --plain the comments are
printed one per line in file:line: form, suitable for quickfix lists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	addListFlags(listCmd)
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&plainFlag, "plain", false, "Print comments to stdout instead of opening the interactive list")
	cmd.Flags().BoolVar(&showResolvedFlag, "show-resolved", false, "Include resolved comments")
	cmd.Flags().BoolVar(&showFullFlag, "full", false, "Do not truncate comment text")
	cmd.Flags().BoolVar(&refreshFlag, "refresh", false, "Bypass the session cache and re-fetch")
}

func runList(cmd *cobra.Command, args []string) error {
	ui.SetUIDebug(debugFlag)

	cfg := config.LoadConfig()

	client := github.NewClient()
	client.SetDebug(debugFlag)
	client.SetTimeout(cfg.RequestTimeout())
	if repoFlag != "" {
		client.SetRepo(repoFlag)
	}

	ctx := context.Background()

	prNumber, err := resolvePRNumber(ctx, client, args)
	if err != nil {
		return err
	}

	comments, err := fetchWithSpinner(ctx, client, prNumber, refreshFlag)
	if err != nil {
		return fmt.Errorf("failed to fetch review comments: %w", err)
	}

	if len(comments) == 0 {
		repo, _ := client.GetRepo()
		fmt.Printf("No review comments found in %s\n",
			ui.CreateHyperlink(fmt.Sprintf("https://github.com/%s/pull/%d", repo, prNumber),
				ui.Colorize(ui.ColorCyan, fmt.Sprintf("PR #%d", prNumber))))
		return nil
	}

	showResolved := showResolvedFlag || cfg.ShowResolved

	if plainFlag {
		ctl := list.NewController(list.Options{
			MaxLength:    cfg.MaxCommentLength,
			ShowFull:     showFullFlag,
			ShowResolved: showResolved,
			BotLogins:    cfg.BotLogins,
		})
		ctl.Build(prNumber, comments)
		printPlain(ctl)
		return nil
	}

	// The interactive list builds every entry and hides resolved ones
	// with the toggleable filter, so "h" works without a re-fetch.
	ctl := list.NewController(list.Options{
		MaxLength:    cfg.MaxCommentLength,
		ShowFull:     showFullFlag,
		ShowResolved: true,
		BotLogins:    cfg.BotLogins,
	})
	ctl.Build(prNumber, comments)

	ui.WarmupMarkdownRenderer()
	return runInteractive(ctx, client, cfg, ctl, prNumber, !showResolved)
}

// resolvePRNumber parses an explicit PR argument or locates the PR for
// the current branch.
func resolvePRNumber(ctx context.Context, client *github.Client, args []string) (int, error) {
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid PR number: %s", args[0])
		}
		return n, nil
	}

	branch, err := git.CurrentBranch()
	if err != nil {
		return 0, fmt.Errorf("could not determine current branch (pass a PR number explicitly): %w", err)
	}

	prNumber, err := client.LocatePR(ctx, branch)
	if err != nil {
		if errors.Is(err, github.ErrNoPR) {
			return 0, fmt.Errorf("no open pull request found for branch %q\nCheck with `gh pr list --head %s`, or pass a PR number explicitly", branch, branch)
		}
		return 0, err
	}
	return prNumber, nil
}

func fetchWithSpinner(ctx context.Context, client *github.Client, prNumber int, force bool) ([]*github.ReviewComment, error) {
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithSuffix(fmt.Sprintf(" Fetching review comments for PR #%d...", prNumber)))
	sp.Start()
	comments, err := client.FetchReviewComments(ctx, prNumber, force)
	sp.Stop()
	return comments, err
}

// printPlain writes entries in file:line: form for quickfix consumers.
func printPlain(ctl *list.Controller) {
	fmt.Println(ctl.Title())
	for _, e := range ctl.Entries() {
		fmt.Printf("%s:%d: %s %s\n", e.File, e.Line, e.Severity, e.Text)
	}
	fmt.Println(ctl.Summary())
}

// threadItem pairs a display entry with the comment behind it. Items
// are pointers so actions can update the row in place.
type threadItem struct {
	entry   list.Entry
	comment *github.ReviewComment
	detail  list.Detail
}

var indexPrefixRe = regexp.MustCompile(`^(\[\d+\]) `)

// markResolved flips the entry's resolved marker without rebuilding the
// whole list.
func (item *threadItem) markResolved(resolved bool) {
	item.entry.Resolved = resolved
	item.detail.Resolved = resolved

	text := strings.Replace(item.entry.Text, "[RESOLVED] ", "", 1)
	if resolved {
		text = indexPrefixRe.ReplaceAllString(text, "$1 [RESOLVED] ")
	}
	item.entry.Text = text
}

func buildItems(ctl *list.Controller) []*threadItem {
	entries := ctl.Entries()
	items := make([]*threadItem, 0, len(entries))
	for _, e := range entries {
		comment, ok := ctl.Comment(e.Index)
		if !ok {
			continue
		}
		detail, _ := ctl.Detail(e.Index)
		items = append(items, &threadItem{entry: e, comment: comment, detail: detail})
	}
	return items
}

func runInteractive(ctx context.Context, client *github.Client, cfg *config.Config, ctl *list.Controller, prNumber int, hideResolved bool) error {
	items := buildItems(ctl)
	renderer := &threadItemRenderer{}

	resolveAction := func(item *threadItem) (string, error) {
		msg, err := client.ResolveThread(ctx, prNumber, item.comment)
		if err != nil {
			return "", err
		}
		item.markResolved(item.comment.IsResolved())
		return msg, nil
	}

	unresolveAction := func(item *threadItem) (string, error) {
		msg, err := client.UnresolveThread(ctx, prNumber, item.comment)
		if err != nil {
			return "", err
		}
		item.markResolved(item.comment.IsResolved())
		return msg, nil
	}

	replyPrepare := func(item *threadItem) (string, error) {
		if !item.comment.CanReply() {
			return "", fmt.Errorf("comment %d does not belong to a review and cannot be replied to", item.comment.ID)
		}
		return ui.FormatQuotedReply(item.comment.Author(), item.comment.Body,
			item.comment.DiffHunk, item.comment.Path, false), nil
	}

	replyComplete := func(item *threadItem, body string) (string, error) {
		reply, err := client.Reply(ctx, prNumber, item.comment, body)
		if err != nil {
			return "", fmt.Errorf("failed to post reply: %w", err)
		}
		item.comment.Replies = append(item.comment.Replies, *reply)
		item.detail.Replies = item.comment.Replies
		if reply.HTMLURL != "" {
			return fmt.Sprintf("Posted %s.", ui.CreateHyperlink(reply.HTMLURL, "a reply")), nil
		}
		return "Posted a reply.", nil
	}

	openAction := func(item *threadItem) (string, error) {
		if item.comment.HTMLURL == "" {
			return "", fmt.Errorf("comment has no URL")
		}
		if err := openURLInBrowser(item.comment.HTMLURL); err != nil {
			return "", err
		}
		return fmt.Sprintf("Opened comment %d in browser", item.comment.ID), nil
	}

	yankAction := func(item *threadItem) (string, error) {
		if item.comment.HTMLURL == "" {
			return "", fmt.Errorf("comment has no URL")
		}
		if err := clipboard.WriteAll(item.comment.HTMLURL); err != nil {
			return "", fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		return "Copied comment URL to clipboard", nil
	}

	var summarizeAction ui.CustomAction[*threadItem]
	if provider := ai.NewGeminiProvider(); provider != nil {
		summarizeAction = func(item *threadItem) (string, error) {
			sctx, cancel := context.WithTimeout(ctx, 60*time.Second)
			defer cancel()

			replies := make([]ai.ReplyContent, 0, len(item.comment.Replies))
			for _, r := range item.comment.Replies {
				replies = append(replies, ai.ReplyContent{Author: r.Author, Body: r.Body})
			}
			resp, err := provider.SummarizeThread(sctx, &ai.SummaryRequest{
				FilePath: item.comment.Path,
				Line:     item.entry.Line,
				Author:   item.comment.Author(),
				Body:     item.comment.Body,
				Replies:  replies,
				DiffHunk: item.comment.DiffHunk,
				Language: ui.CodeFenceLanguageFromPath(item.comment.Path),
			})
			if err != nil {
				return "", err
			}
			return resp.Summary, nil
		}
	}

	refreshItems := func() ([]*threadItem, string, error) {
		fresh, err := client.FetchReviewComments(ctx, prNumber, true)
		if err != nil {
			return nil, "", err
		}
		ctl.Build(prNumber, fresh)
		return buildItems(ctl), ctl.Title(), nil
	}

	filterFunc := func(item *threadItem, hideResolved bool) bool {
		return !hideResolved || !item.entry.Resolved
	}

	_, err := ui.Select(ui.SelectorOptions[*threadItem]{
		Items:    items,
		Renderer: renderer,
		Title:    ctl.Title(),
		Status:   list.SummaryLine,

		ResolveAction:   resolveAction,
		UnresolveAction: unresolveAction,
		ReplyPrepare:    replyPrepare,
		ReplyComplete:   replyComplete,
		OnOpen:          openAction,
		YankAction:      yankAction,
		SummarizeAction: summarizeAction,
		RefreshItems:    refreshItems,

		FilterFunc:    filterFunc,
		FilterDefault: hideResolved,

		Editor: cfg.Editor,
	})
	if err != nil && !errors.Is(err, ui.ErrNoSelection) {
		return err
	}
	return nil
}

// threadItemRenderer implements ui.ItemRenderer for review comment
// threads.
type threadItemRenderer struct{}

func (r *threadItemRenderer) Title(item *threadItem) string {
	sev := ui.Colorize(ui.ColorYellow, string(item.entry.Severity))
	if item.entry.Severity == list.SeverityInfo {
		sev = ui.Colorize(ui.ColorGray, string(item.entry.Severity))
	}
	return fmt.Sprintf("%s %s:%d %s", sev, item.entry.File, item.entry.Line, item.entry.Text)
}

func (r *threadItemRenderer) Description(item *threadItem) string {
	return ""
}

func (r *threadItemRenderer) Preview(item *threadItem) string {
	comment := item.comment
	var preview strings.Builder

	status := ui.EmojiText("🟡 unresolved", "unresolved")
	statusColor := ui.ColorYellow
	if item.entry.Resolved {
		status = ui.EmojiText("✅ resolved", "resolved")
		statusColor = ui.ColorGreen
	}
	preview.WriteString(ui.Colorize(ui.ColorCyan, fmt.Sprintf("Author: @%s\n", comment.Author())))
	preview.WriteString(ui.Colorize(ui.ColorCyan, fmt.Sprintf("Location: %s:%d\n", item.entry.File, item.entry.Line)))
	preview.WriteString(ui.Colorize(ui.ColorCyan, fmt.Sprintf("Status: %s\n", ui.Colorize(statusColor, status))))
	if comment.HTMLURL != "" {
		preview.WriteString(ui.Colorize(ui.ColorCyan, fmt.Sprintf("URL: %s\n", ui.CreateHyperlink(comment.HTMLURL, comment.HTMLURL))))
	}
	if !comment.CreatedAt.IsZero() {
		preview.WriteString(ui.Colorize(ui.ColorCyan, fmt.Sprintf("Time: %s\n", ui.FormatRelativeTime(comment.CreatedAt))))
	}
	preview.WriteString(ui.Colorize(ui.ColorGray, item.detail.Positions+"\n"))

	body := ui.StripSuggestionBlock(comment.Body)
	if body != "" {
		preview.WriteString("\n--- Comment ---\n")

		bodyLines := strings.Split(body, "\n")
		if len(bodyLines) > 200 {
			body = strings.Join(bodyLines[:200], "\n") + "\n\n...(truncated, content too long)"
		}
		if rendered, err := ui.RenderMarkdown(body); err == nil && rendered != "" {
			preview.WriteString(rendered)
		} else {
			preview.WriteString(ui.WrapText(body, 80))
		}
		preview.WriteString("\n")
	}

	if comment.DiffHunk != "" {
		preview.WriteString(ui.Colorize(ui.ColorCyan, "\n--- Context ---\n"))
		preview.WriteString(ui.ColorizeDiff(ui.TruncateDiff(comment.DiffHunk, 8)))
		preview.WriteString("\n")
	}

	if len(comment.Replies) > 0 {
		preview.WriteString("\n--- Replies ---\n")
		for i, reply := range comment.Replies {
			preview.WriteString("\n")

			header := fmt.Sprintf("Reply %d by @%s", i+1, reply.Author)
			if reply.HTMLURL != "" {
				header += fmt.Sprintf(" | %s", ui.CreateHyperlink(reply.HTMLURL, reply.HTMLURL))
			}
			if !reply.CreatedAt.IsZero() {
				header += fmt.Sprintf(" | %s", ui.FormatRelativeTime(reply.CreatedAt))
			}
			preview.WriteString(header + "\n")

			replyBody := reply.Body
			replyLines := strings.Split(replyBody, "\n")
			if len(replyLines) > 100 {
				replyBody = strings.Join(replyLines[:100], "\n") + "\n\n...(truncated, content too long)"
			}
			if rendered, err := ui.RenderMarkdown(replyBody); err == nil && rendered != "" {
				preview.WriteString(rendered)
			} else {
				preview.WriteString(ui.WrapText(replyBody, 80))
			}
			preview.WriteString("\n")
		}
	}

	return preview.String()
}

func (r *threadItemRenderer) FilterValue(item *threadItem) string {
	return item.entry.File + " " + item.entry.Text + " " + item.comment.Body
}

// openURLInBrowser opens url with the platform's opener.
func openURLInBrowser(url string) error {
	var openCmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		openCmd = exec.Command("open", url)
	case "windows":
		openCmd = exec.Command("cmd", "/c", "start", url)
	default:
		openCmd = exec.Command("xdg-open", url)
	}
	if err := openCmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
