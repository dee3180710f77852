package scoring

import (
	"testing"

	"newspress/internal/core"
	"newspress/internal/schedule"
)

func TestScoreKeywordTiers(t *testing.T) {
	tests := []struct {
		name  string
		title string
		body  string
		want  int
	}{
		{"high keyword", "긴급 속보", "", 10},
		{"medium keyword", "", "배당 확대", 5},
		{"low keyword", "", "내년 계획", 2},
		{"economy bonus", "economy outlook", "", 3},
		{"finance bonus", "금융 시장", "", 3},
		{"high plus economy", "기준금리 결정", "경제 전반에 영향", 10 + 3},
		{"no keywords", "hello", "world", 0},
	}

	for _, tt := range tests {
		if got := Score(tt.title, tt.body, ""); got != tt.want {
			t.Errorf("%s: Score = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestScoreCaseInsensitive(t *testing.T) {
	if Score("IPO 준비", "", "") != Score("ipo 준비", "", "") {
		t.Error("score should be case-insensitive")
	}
	if Score("M&A 성사", "", "") != 10 {
		t.Errorf("M&A should score 10, got %d", Score("M&A 성사", "", ""))
	}
}

func TestScoreCategoryContributes(t *testing.T) {
	if got := Score("", "", "economy"); got != 3 {
		t.Errorf("economy category should add the domain bonus, got %d", got)
	}
	if got := Score("", "", "business_finance"); got != 3 {
		t.Errorf("business_finance category should add the domain bonus, got %d", got)
	}
}

func TestScoreMonotoneUnderAddedKeyword(t *testing.T) {
	base := "분기 매출 발표"
	for _, extra := range []string{"파산", "상장", "서킷브레이커", "배당"} {
		before := Score(base, "", "")
		after := Score(base+" "+extra, "", "")
		if after < before {
			t.Errorf("appending %q decreased score: %d -> %d", extra, before, after)
		}
	}
}

func TestScoreNeverNegative(t *testing.T) {
	inputs := []string{"", "plain text", "감소 하락 파산"}
	for _, in := range inputs {
		if got := Score(in, "", ""); got < 0 {
			t.Errorf("Score(%q) = %d, want >= 0", in, got)
		}
	}
}

func TestSortByScore(t *testing.T) {
	articles := []core.Article{
		{ID: "a", Title: "날씨 소식", Category: schedule.Culture},
		{ID: "b", Title: "기준금리 인상 긴급 발표", Category: schedule.Economy},
		{ID: "c", Title: "배당 검토", Category: schedule.BusinessFinance},
	}

	scored := SortByScore(articles, 0)
	if len(scored) != 3 {
		t.Fatalf("expected 3 scored articles, got %d", len(scored))
	}
	if scored[0].Article.ID != "b" {
		t.Errorf("highest-impact article should sort first, got %q", scored[0].Article.ID)
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > scored[i-1].Score {
			t.Errorf("scores not descending at %d: %d > %d", i, scored[i].Score, scored[i-1].Score)
		}
	}

	top := TopNews(articles, 2)
	if len(top) != 2 {
		t.Errorf("TopNews(2) should return 2 items, got %d", len(top))
	}
}
