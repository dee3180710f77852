// Package schedule decides which news categories are due for publication at a
// given wall-clock time. Two policies are supported: a fixed hour table and a
// randomized single-category-per-slot rotation generated once per process.
package schedule

import "time"

// Category is one of the ten fixed content-domain labels used for both
// classification and rotation. The set is closed.
type Category string

const (
	Economy         Category = "economy"
	BusinessFinance Category = "business_finance"
	Sports          Category = "sports"
	Culture         Category = "culture"
	Environment     Category = "environment"
	Health          Category = "health"
	Science         Category = "science"
	Technology      Category = "technology"
	Politics        Category = "politics"
	WorldAffairs    Category = "world_affairs"
)

// Categories returns all categories in canonical rotation order.
func Categories() []Category {
	return []Category{
		Economy,
		BusinessFinance,
		Sports,
		Culture,
		Environment,
		Health,
		Science,
		Technology,
		Politics,
		WorldAffairs,
	}
}

var categoryLabels = map[Category]string{
	Economy:         "경제",
	BusinessFinance: "비즈니스금융",
	Sports:          "스포츠",
	Culture:         "문화예술",
	Environment:     "환경",
	Health:          "건강",
	Science:         "과학",
	Technology:      "기술",
	Politics:        "정치",
	WorldAffairs:    "국제정세",
}

// Label returns the Korean display label for the category, or the raw value
// if the category is unknown.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is one of the ten defined categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Slot is a scheduled time-of-day paired with the categories due then.
type Slot struct {
	Hour       int        `json:"hour"`
	Minute     int        `json:"minute"`
	Categories []Category `json:"categories"`
}

// timeOfDay returns the slot position in minutes from midnight.
func (s Slot) timeOfDay() int {
	return s.Hour*60 + s.Minute
}

// At returns the slot's wall-clock time on the same day as ref.
func (s Slot) At(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), s.Hour, s.Minute, 0, 0, ref.Location())
}

// Policy maps wall-clock time to the categories due for publication.
// Implementations are pure with respect to time: CategoriesDueAt never fails
// and an empty result is the normal outcome for most invocations.
type Policy interface {
	CategoriesDueAt(t time.Time) []Category
	NextPublishTime(t time.Time) time.Time
	Slots() []Slot
}

// nextSlotTime computes the smallest scheduled time strictly after t across
// the given slots, rolling over to the first slot of the next day when no
// slot remains today. Slots must be sorted by time of day.
func nextSlotTime(slots []Slot, t time.Time) time.Time {
	if len(slots) == 0 {
		return t
	}
	minutes := t.Hour()*60 + t.Minute()
	for _, s := range slots {
		if s.timeOfDay() > minutes {
			return s.At(t)
		}
	}
	return slots[0].At(t.AddDate(0, 0, 1))
}
