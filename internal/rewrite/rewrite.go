// Package rewrite turns raw investment-report text into reader-friendly
// articles through a generative text API, with a secondary provider fallback.
package rewrite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"newspress/internal/logger"
	"newspress/internal/schedule"
)

// Result is the rewritten article content.
type Result struct {
	Title         string `json:"title"`
	Body          string `json:"content"`
	Summary       string `json:"summary,omitempty"`
	InvestmentTip string `json:"investmentTip,omitempty"`
}

// RewriteError reports a failed rewrite. Per-article: the caller skips the
// article (or falls back to the original text) and continues the batch.
type RewriteError struct {
	Provider string
	Err      error
}

func (e *RewriteError) Error() string {
	return fmt.Sprintf("rewrite (%s): %v", e.Provider, e.Err)
}

func (e *RewriteError) Unwrap() error {
	return e.Err
}

// Rewriter produces a rewritten article from the original title and body.
type Rewriter interface {
	Rewrite(ctx context.Context, title, body string, category schedule.Category) (*Result, error)
	Name() string
}

// FallbackRewriter tries the primary provider and retries once with the
// secondary on any failure. Either may be nil.
type FallbackRewriter struct {
	primary   Rewriter
	secondary Rewriter
}

// NewFallbackRewriter builds the provider chain. At least one provider must
// be non-nil.
func NewFallbackRewriter(primary, secondary Rewriter) (*FallbackRewriter, error) {
	if primary == nil && secondary == nil {
		return nil, fmt.Errorf("no rewrite provider configured")
	}
	if primary == nil {
		primary, secondary = secondary, nil
	}
	return &FallbackRewriter{primary: primary, secondary: secondary}, nil
}

// Name identifies the chain by its primary provider.
func (f *FallbackRewriter) Name() string {
	return f.primary.Name()
}

// Rewrite tries the primary provider, then the secondary. When both fail the
// last error is returned wrapped in a RewriteError.
func (f *FallbackRewriter) Rewrite(ctx context.Context, title, body string, category schedule.Category) (*Result, error) {
	result, err := f.primary.Rewrite(ctx, title, body, category)
	if err == nil {
		return result, nil
	}
	if f.secondary == nil {
		return nil, &RewriteError{Provider: f.primary.Name(), Err: err}
	}

	logger.Warn("primary rewrite provider failed, trying secondary",
		"primary", f.primary.Name(), "secondary", f.secondary.Name(), "error", err.Error())

	result, err = f.secondary.Rewrite(ctx, title, body, category)
	if err != nil {
		return nil, &RewriteError{Provider: f.secondary.Name(), Err: err}
	}
	return result, nil
}

// parseResult extracts the JSON result object from a model reply, tolerating
// markdown code fences and prose around the object.
func parseResult(provider, text string) (*Result, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, &RewriteError{Provider: provider, Err: fmt.Errorf("no JSON object in model reply")}
	}

	var result Result
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, &RewriteError{Provider: provider, Err: fmt.Errorf("parsing model reply: %w", err)}
	}
	if result.Title == "" || result.Body == "" {
		return nil, &RewriteError{Provider: provider, Err: fmt.Errorf("model reply missing title or content")}
	}
	return &result, nil
}
