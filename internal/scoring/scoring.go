// Package scoring ranks news items by keyword-weighted importance. The score
// feeds the manual curation API only; the automatic scheduler ignores it.
package scoring

import (
	"sort"
	"strings"

	"newspress/internal/core"
)

// Keyword weights per tier.
const (
	highWeight   = 10
	mediumWeight = 5
	lowWeight    = 2
	domainBonus  = 3
)

var highKeywords = []string{
	"금리 인상", "금리 인하", "기준금리",
	"실적 발표", "어닝 서프라이즈", "실적 쇼크",
	"m&a", "인수합병", "기업 인수",
	"역대 최고", "사상 최대", "기록 경신",
	"상장", "ipo", "공모주",
	"파산", "부도", "워크아웃", "법정관리",
	"주가 급등", "주가 급락", "서킷브레이커",
	"긴급", "이례적", "역사적",
}

var mediumKeywords = []string{
	"투자", "배당", "자사주",
	"매출", "영업이익", "순이익",
	"신제품", "신사업", "사업 확장",
	"제재", "규제", "정책",
	"협력", "파트너십", "계약",
	"증가", "감소", "상승", "하락",
}

var lowKeywords = []string{
	"발표", "계획", "예정",
	"전망", "예상", "추정",
	"검토", "고려", "논의",
}

// Score computes the importance score of a news item from its title, body
// and category. Each keyword is an independent substring check: +10 per high
// keyword present, +5 medium, +2 low, plus a +3 bonus each for economy and
// business/finance mentions. Pure and total; never negative.
func Score(title, body, category string) int {
	text := strings.ToLower(title + " " + body + " " + category)

	score := 0
	for _, kw := range highKeywords {
		if strings.Contains(text, kw) {
			score += highWeight
		}
	}
	for _, kw := range mediumKeywords {
		if strings.Contains(text, kw) {
			score += mediumWeight
		}
	}
	for _, kw := range lowKeywords {
		if strings.Contains(text, kw) {
			score += lowWeight
		}
	}

	if strings.Contains(text, "economy") || strings.Contains(text, "경제") {
		score += domainBonus
	}
	if strings.Contains(text, "business_finance") || strings.Contains(text, "비즈니스") || strings.Contains(text, "금융") {
		score += domainBonus
	}

	return score
}

// ScoredArticle pairs a prepared article with its importance score.
type ScoredArticle struct {
	Article core.Article `json:"article"`
	Score   int          `json:"score"`
}

// SortByScore returns the articles in descending score order, truncated to
// limit when limit is positive.
func SortByScore(articles []core.Article, limit int) []ScoredArticle {
	scored := make([]ScoredArticle, len(articles))
	for i, a := range articles {
		scored[i] = ScoredArticle{Article: a, Score: Score(a.Title, a.Body, string(a.Category))}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if limit > 0 && limit < len(scored) {
		scored = scored[:limit]
	}
	return scored
}

// TopNews returns the count highest-scoring articles.
func TopNews(articles []core.Article, count int) []ScoredArticle {
	return SortByScore(articles, count)
}
