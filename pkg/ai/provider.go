package ai

import "context"

// Provider summarizes review threads.
type Provider interface {
	// SummarizeThread condenses a review conversation into a short
	// paragraph the user can read without opening the full thread.
	SummarizeThread(ctx context.Context, req *SummaryRequest) (*SummaryResponse, error)

	// Name returns the provider name (e.g. "gemini").
	Name() string

	// Model returns the model in use.
	Model() string
}

// SummaryRequest carries the thread content to summarize.
type SummaryRequest struct {
	// FilePath and Line locate the comment in the working tree.
	FilePath string
	Line     int

	// Author and Body are the thread starter.
	Author string
	Body   string

	// Replies are the follow-ups, as "author: body" pairs.
	Replies []ReplyContent

	// DiffHunk is the code context the thread hangs on, may be empty.
	DiffHunk string

	// Language labels the code-context fence, guessed from FilePath.
	// May be empty.
	Language string
}

// ReplyContent is one follow-up comment in the thread.
type ReplyContent struct {
	Author string
	Body   string
}

// SummaryResponse is the provider's answer.
type SummaryResponse struct {
	// Summary is a short plain-text paragraph.
	Summary string
}
