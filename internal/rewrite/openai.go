package rewrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"newspress/internal/schedule"
)

// OpenAIRewriter rewrites articles through the OpenAI chat completions API.
type OpenAIRewriter struct {
	apiKey      string
	model       string
	temperature float32
	baseURL     string
	httpClient  *http.Client
}

// NewOpenAIRewriter creates an OpenAI-backed rewriter.
func NewOpenAIRewriter(apiKey, model string, temperature float32) *OpenAIRewriter {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIRewriter{
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		baseURL:     "https://api.openai.com/v1",
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Name identifies the provider.
func (r *OpenAIRewriter) Name() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    float32         `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Rewrite sends the rewrite prompt and parses the JSON reply.
func (r *OpenAIRewriter) Rewrite(ctx context.Context, title, body string, category schedule.Category) (*Result, error) {
	request := chatRequest{
		Model: r.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildRewritePrompt(title, body, category)},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		Temperature:    r.temperature,
	}

	reqBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", r.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}

	return parseResult(r.Name(), chatResp.Choices[0].Message.Content)
}
