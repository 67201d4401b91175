package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements Provider against the Gemini API.
type GeminiProvider struct {
	apiKey string
	model  string
}

// NewGeminiProvider builds a provider from GEMINI_API_KEY. Returns nil
// when no key is configured; callers treat a nil provider as the feature
// being off.
func NewGeminiProvider() *GeminiProvider {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiProvider{apiKey: apiKey, model: model}
}

func (p *GeminiProvider) Name() string  { return "gemini" }
func (p *GeminiProvider) Model() string { return p.model }

// SummarizeThread asks Gemini for a short summary of the conversation.
func (p *GeminiProvider) SummarizeThread(ctx context.Context, req *SummaryRequest) (*SummaryResponse, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	defer func() { _ = client.Close() }()

	model := client.GenerativeModel(p.model)
	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("generating summary: %w", err)
	}

	summary := extractText(resp)
	if summary == "" {
		return nil, fmt.Errorf("model returned no text")
	}
	return &SummaryResponse{Summary: summary}, nil
}

func buildPrompt(req *SummaryRequest) string {
	var b strings.Builder
	b.WriteString("Summarize this code review thread in one short paragraph. ")
	b.WriteString("State what the reviewer wants changed and whether the discussion reached a conclusion. Plain text only.\n\n")
	fmt.Fprintf(&b, "File: %s:%d\n\n", req.FilePath, req.Line)
	if req.DiffHunk != "" {
		fmt.Fprintf(&b, "Code context:\n```%s\n%s\n```\n\n", req.Language, req.DiffHunk)
	}
	fmt.Fprintf(&b, "%s: %s\n", req.Author, req.Body)
	for _, reply := range req.Replies {
		fmt.Fprintf(&b, "%s: %s\n", reply.Author, reply.Body)
	}
	return b.String()
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
