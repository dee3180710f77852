package render

import (
	"strings"
	"testing"

	"newspress/internal/core"
	"newspress/internal/schedule"
)

func TestFormatBold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"**중요** 발표", "<strong>중요</strong> 발표"},
		{"plain text", "plain text"},
		{"**a** and **b**", "<strong>a</strong> and <strong>b</strong>"},
	}
	for _, tt := range tests {
		if got := formatBold(tt.in); got != tt.want {
			t.Errorf("formatBold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestArticleHTML(t *testing.T) {
	a := core.Article{
		ID:            "f1",
		Title:         "📈 금리가 내려갔어요",
		Body:          "📢 첫 단락입니다.\n\n💡 **두 번째** 단락입니다.\n\n🚀 마지막 단락입니다.",
		Category:      schedule.Economy,
		Summary:       "한 줄 요약입니다.",
		InvestmentTip: "📊 투자 포인트: 분산 투자하세요.",
		OriginalTitle: "원본 리포트 제목",
		OriginalBody:  "### 섹션 제목\n\n일반 단락입니다.\n\n- 항목 하나\n- 항목 둘",
	}

	html := ArticleHTML(a)

	for _, want := range []string{
		"경제",                          // category badge label
		"한 줄 요약입니다.",                  // summary box
		"<strong>두 번째</strong>",       // bold conversion in body
		"📊 투자 포인트: 분산 투자하세요.",         // tip box
		"원본 리포트 제목",                   // original section
		"<h3 style=",                  // ### heading
		"<li style=",                  // dash list
		"이 기사는 AI가 원본 투자 리포트를 쉽게 재작성", // footer notice
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}

	if strings.Count(html, "<p style=\"line-height: 1.9;") != 3 {
		t.Errorf("expected 3 body paragraphs, got %d", strings.Count(html, "<p style=\"line-height: 1.9;"))
	}
}

func TestArticleHTMLOmitsEmptySections(t *testing.T) {
	a := core.Article{Title: "t", Body: "본문", Category: schedule.Sports}
	html := ArticleHTML(a)

	if strings.Contains(html, "한 줄 요약") {
		t.Error("summary box should be omitted without a summary")
	}
	if strings.Contains(html, "투자 포인트") {
		t.Error("tip box should be omitted without a tip")
	}
	if strings.Contains(html, "원본 투자 리포트") {
		t.Error("original section should be omitted without original content")
	}
}

func TestOriginalBodyTable(t *testing.T) {
	a := core.Article{
		Title:        "t",
		Body:         "본문",
		Category:     schedule.Economy,
		OriginalBody: "| 지표 | 값 |\n| --- | --- |\n| 금리 | 3.5% |",
	}
	html := ArticleHTML(a)

	if !strings.Contains(html, "<thead><tr><th") {
		t.Error("expected a table header row")
	}
	if !strings.Contains(html, "금리") || !strings.Contains(html, "3.5%") {
		t.Error("expected table cells in output")
	}
	if strings.Contains(html, "---") {
		t.Error("separator rows should be skipped")
	}
}

func TestBriefingHTML(t *testing.T) {
	items := []core.Article{
		{Title: "뉴스 하나", Body: "내용 하나"},
		{Title: "뉴스 둘", Body: "내용 둘"},
	}
	body, excerpt := BriefingHTML(items, "2025-09-15")

	if !strings.Contains(body, "<h3>1. 뉴스 하나</h3>") || !strings.Contains(body, "<h3>2. 뉴스 둘</h3>") {
		t.Error("briefing should number items in order")
	}
	if !strings.Contains(excerpt, "2건") {
		t.Errorf("excerpt should mention the item count, got %q", excerpt)
	}
}
