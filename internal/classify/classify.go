// Package classify maps raw news file names to content categories using
// ordered keyword rules.
package classify

import (
	"strings"

	"newspress/internal/schedule"
)

// DefaultCategory is returned when no rule matches a file name. Every file
// gets a category; classification never fails.
const DefaultCategory = schedule.Economy

// rule pairs a category with the substrings that select it. English names
// and Korean synonyms are both accepted.
type rule struct {
	category schedule.Category
	keywords []string
}

// Rule order matters: business_finance must be tested before any looser rule
// could claim a file whose name contains it as a substring. Keep the list
// most-specific-first.
var rules = []rule{
	{schedule.BusinessFinance, []string{"business_finance", "비즈니스금융"}},
	{schedule.Economy, []string{"economy", "경제"}},
	{schedule.Sports, []string{"sports", "스포츠"}},
	{schedule.Culture, []string{"culture", "문화"}},
	{schedule.Environment, []string{"environment", "환경"}},
	{schedule.Health, []string{"health", "건강"}},
	{schedule.Science, []string{"science", "과학"}},
	{schedule.Technology, []string{"technology", "기술"}},
	{schedule.Politics, []string{"politics", "정치"}},
	{schedule.WorldAffairs, []string{"world", "국제"}},
}

// Classify returns the category for a news file name, falling back to
// DefaultCategory when nothing matches.
func Classify(fileName string) schedule.Category {
	cat, _ := ClassifyWithMatch(fileName)
	return cat
}

// ClassifyWithMatch is Classify plus a flag reporting whether any rule
// matched, so callers can log unrecognized naming conventions.
func ClassifyWithMatch(fileName string) (schedule.Category, bool) {
	name := normalize(fileName)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(name, kw) {
				return r.category, true
			}
		}
	}
	return DefaultCategory, false
}

func normalize(fileName string) string {
	name := strings.TrimSuffix(fileName, "_card.txt")
	name = strings.TrimSuffix(name, ".txt")
	return strings.TrimSpace(strings.ToLower(name))
}
