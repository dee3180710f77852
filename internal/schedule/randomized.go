package schedule

import (
	"math/rand"
	"time"
)

const (
	// anchorHour is the time of day the first randomized slot lands on.
	anchorHour = 14

	// minGapMinutes and maxGapMinutes bound the random interval between
	// consecutive randomized slots.
	minGapMinutes = 30
	maxGapMinutes = 90

	// dueToleranceMinutes is the window around a slot in which an exact
	// trigger counts as due.
	dueToleranceMinutes = 5

	// closestToleranceMinutes is the looser bound used by ClosestSlot for
	// imprecise external triggers.
	closestToleranceMinutes = 30
)

// RandomizedPolicy assigns each category its own slot. The category order is
// shuffled once at construction and slot times start at 14:00 with a uniform
// random 30-90 minute gap between consecutive slots.
type RandomizedPolicy struct {
	slots []Slot
}

// NewRandomizedPolicy generates a day's randomized schedule. A nil rng falls
// back to a time-seeded source; tests pass a fixed seed for determinism.
func NewRandomizedPolicy(rng *rand.Rand) *RandomizedPolicy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cats := Categories()
	rng.Shuffle(len(cats), func(i, j int) {
		cats[i], cats[j] = cats[j], cats[i]
	})

	// Slot times must stay within the day and strictly increase, so each
	// gap draw is capped by the minutes still needed for the slots after it.
	const lastMinuteOfDay = 23*60 + 59
	slots := make([]Slot, 0, len(cats))
	minutes := anchorHour * 60
	for i, c := range cats {
		if i > 0 {
			remaining := len(cats) - 1 - i
			hi := lastMinuteOfDay - minutes - remaining*minGapMinutes
			if hi > maxGapMinutes {
				hi = maxGapMinutes
			}
			minutes += minGapMinutes + rng.Intn(hi-minGapMinutes+1)
		}
		slots = append(slots, Slot{
			Hour:       minutes / 60,
			Minute:     minutes % 60,
			Categories: []Category{c},
		})
	}
	return &RandomizedPolicy{slots: slots}
}

// CategoriesDueAt returns the categories of every slot within five minutes
// of t, boundary inclusive.
func (p *RandomizedPolicy) CategoriesDueAt(t time.Time) []Category {
	minutes := t.Hour()*60 + t.Minute()
	var due []Category
	for _, s := range p.slots {
		if absInt(minutes-s.timeOfDay()) <= dueToleranceMinutes {
			due = append(due, s.Categories...)
		}
	}
	return due
}

// ClosestSlot returns the single slot nearest to t within thirty minutes,
// for triggers that fire off-schedule. Ties resolve to the smallest absolute
// difference, then to the earliest slot in generation order. The second
// return value is false when no slot is within the bound.
func (p *RandomizedPolicy) ClosestSlot(t time.Time) (Slot, bool) {
	minutes := t.Hour()*60 + t.Minute()
	best := -1
	bestDiff := closestToleranceMinutes + 1
	for i, s := range p.slots {
		diff := absInt(minutes - s.timeOfDay())
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	if best < 0 || bestDiff > closestToleranceMinutes {
		return Slot{}, false
	}
	return p.slots[best], true
}

// NextPublishTime returns the earliest slot time strictly after t, rolling
// over to the first slot of the next day when today's slots are exhausted.
func (p *RandomizedPolicy) NextPublishTime(t time.Time) time.Time {
	return nextSlotTime(p.slots, t)
}

// Slots returns the generated schedule ordered by time of day.
func (p *RandomizedPolicy) Slots() []Slot {
	out := make([]Slot, len(p.slots))
	copy(out, p.slots)
	return out
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
