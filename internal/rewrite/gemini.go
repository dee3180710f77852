package rewrite

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"newspress/internal/schedule"
)

// GeminiRewriter rewrites articles through the Gemini API.
type GeminiRewriter struct {
	model       string
	temperature float32
	client      *genai.Client
}

// NewGeminiRewriter creates a Gemini-backed rewriter.
func NewGeminiRewriter(ctx context.Context, apiKey, model string, temperature float32) (*GeminiRewriter, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiRewriter{
		model:       model,
		temperature: temperature,
		client:      client,
	}, nil
}

// Name identifies the provider.
func (r *GeminiRewriter) Name() string { return "gemini" }

// Rewrite sends the rewrite prompt and parses the JSON reply. Gemini may
// wrap the object in a code fence; parseResult tolerates that.
func (r *GeminiRewriter) Rewrite(ctx context.Context, title, body string, category schedule.Category) (*Result, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: buildRewritePrompt(title, body, category)}},
		Role:  "user",
	}}

	temperature := r.temperature
	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopK:            genai.Ptr[float32](40),
		TopP:            genai.Ptr[float32](0.95),
		MaxOutputTokens: 2048,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}
	return parseResult(r.Name(), text)
}
