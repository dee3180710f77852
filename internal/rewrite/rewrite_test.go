package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"newspress/internal/schedule"
)

type stubRewriter struct {
	name   string
	result *Result
	err    error
	calls  int
}

func (s *stubRewriter) Name() string { return s.name }

func (s *stubRewriter) Rewrite(ctx context.Context, title, body string, category schedule.Category) (*Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func TestFallbackUsesPrimaryFirst(t *testing.T) {
	primary := &stubRewriter{name: "primary", result: &Result{Title: "t", Body: "b"}}
	secondary := &stubRewriter{name: "secondary", result: &Result{Title: "t2", Body: "b2"}}

	f, err := NewFallbackRewriter(primary, secondary)
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.Rewrite(context.Background(), "원본", "내용", schedule.Economy)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "t" {
		t.Errorf("expected primary result, got %q", got.Title)
	}
	if secondary.calls != 0 {
		t.Error("secondary should not be called when primary succeeds")
	}
}

func TestFallbackOnPrimaryFailure(t *testing.T) {
	primary := &stubRewriter{name: "primary", err: fmt.Errorf("quota exceeded")}
	secondary := &stubRewriter{name: "secondary", result: &Result{Title: "t2", Body: "b2"}}

	f, _ := NewFallbackRewriter(primary, secondary)
	got, err := f.Rewrite(context.Background(), "원본", "내용", schedule.Economy)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "t2" {
		t.Errorf("expected secondary result, got %q", got.Title)
	}
}

func TestFallbackBothFail(t *testing.T) {
	primary := &stubRewriter{name: "primary", err: fmt.Errorf("down")}
	secondary := &stubRewriter{name: "secondary", err: fmt.Errorf("also down")}

	f, _ := NewFallbackRewriter(primary, secondary)
	_, err := f.Rewrite(context.Background(), "원본", "내용", schedule.Economy)
	if err == nil {
		t.Fatal("expected an error when both providers fail")
	}
	var rewriteErr *RewriteError
	if !errors.As(err, &rewriteErr) {
		t.Fatalf("expected a *RewriteError, got %T", err)
	}
	if rewriteErr.Provider != "secondary" {
		t.Errorf("error should carry the last provider, got %q", rewriteErr.Provider)
	}
}

func TestFallbackSingleProvider(t *testing.T) {
	only := &stubRewriter{name: "only", result: &Result{Title: "t", Body: "b"}}
	f, err := NewFallbackRewriter(nil, only)
	if err != nil {
		t.Fatal(err)
	}
	if f.Name() != "only" {
		t.Errorf("single provider should become primary, got %q", f.Name())
	}

	if _, err := NewFallbackRewriter(nil, nil); err == nil {
		t.Error("expected an error with no providers")
	}
}

func TestParseResult(t *testing.T) {
	raw := `{"title":"📈 제목","summary":"요약","content":"본문","investmentTip":"팁"}`

	tests := []struct {
		name string
		text string
	}{
		{"bare object", raw},
		{"code fence", "```json\n" + raw + "\n```"},
		{"surrounding prose", "결과는 다음과 같습니다:\n" + raw + "\n감사합니다."},
	}

	for _, tt := range tests {
		got, err := parseResult("test", tt.text)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if got.Title != "📈 제목" || got.Body != "본문" {
			t.Errorf("%s: unexpected result %+v", tt.name, got)
		}
	}
}

func TestParseResultErrors(t *testing.T) {
	cases := []string{
		"no json here",
		`{"summary":"only summary"}`,
		"{broken",
	}
	for _, text := range cases {
		if _, err := parseResult("test", text); err == nil {
			t.Errorf("expected error for %q", text)
		}
	}
}

func TestBuildRewritePromptIncludesInputs(t *testing.T) {
	prompt := buildRewritePrompt("금리 발표", "본문 텍스트", schedule.Economy)
	for _, want := range []string{"금리 발표", "본문 텍스트", "economy"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}
}
