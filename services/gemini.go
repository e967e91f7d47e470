package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	ErrSummarizerUnavailable = errors.New("summarizer is not configured")
	ErrEmptySummary          = errors.New("model returned no text")
)

// Summarizer turns a prompt into generated text.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

type GeminiSummarizer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiSummarizer builds a Gemini client. Extra options are appended
// after the API key.
func NewGeminiSummarizer(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*GeminiSummarizer, error) {
	if apiKey == "" {
		return nil, ErrSummarizerUnavailable
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiSummarizer{
		client: client,
		model:  client.GenerativeModel(strings.TrimPrefix(model, "models/")),
	}, nil
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		// first candidate with content wins
		if b.Len() > 0 {
			break
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptySummary
	}
	return b.String(), nil
}

func (g *GeminiSummarizer) Close() error {
	return g.client.Close()
}

// UnavailableSummarizer fails every call. main uses it when GEMINI_API_KEY
// is empty.
type UnavailableSummarizer struct{}

func (UnavailableSummarizer) Summarize(context.Context, string) (string, error) {
	return "", ErrSummarizerUnavailable
}
