package schedule

import "time"

// FixedSlotPolicy publishes on a hard-coded hour table. Matching is by hour
// equality only; the minute the trigger fires at does not matter.
type FixedSlotPolicy struct {
	slots []Slot
}

// FixedSlotOptions controls construction of the fixed hour table.
type FixedSlotOptions struct {
	// IncludeTestSlot adds a 12:00 slot duplicating the 14:00 categories.
	// With it enabled the day's rotation covers economy, business_finance
	// and sports twice, so it is off by default.
	IncludeTestSlot bool
}

// NewFixedSlotPolicy returns the standard four-slot publication table:
// 14:00, 18:00, 20:00 and 22:00, covering every category exactly once.
func NewFixedSlotPolicy(opts FixedSlotOptions) *FixedSlotPolicy {
	var slots []Slot
	if opts.IncludeTestSlot {
		slots = append(slots, Slot{Hour: 12, Categories: []Category{Economy, BusinessFinance, Sports}})
	}
	slots = append(slots,
		Slot{Hour: 14, Categories: []Category{Economy, BusinessFinance, Sports}},
		Slot{Hour: 18, Categories: []Category{Culture, Environment}},
		Slot{Hour: 20, Categories: []Category{Health, Science}},
		Slot{Hour: 22, Categories: []Category{Technology, Politics, WorldAffairs}},
	)
	return &FixedSlotPolicy{slots: slots}
}

// CategoriesDueAt returns the categories of the slot whose hour equals the
// hour of t, or nil when no slot matches.
func (p *FixedSlotPolicy) CategoriesDueAt(t time.Time) []Category {
	hour := t.Hour()
	for _, s := range p.slots {
		if s.Hour == hour {
			out := make([]Category, len(s.Categories))
			copy(out, s.Categories)
			return out
		}
	}
	return nil
}

// NextPublishTime returns the earliest slot time strictly after t, rolling
// over to the first slot of the next day when today's slots are exhausted.
func (p *FixedSlotPolicy) NextPublishTime(t time.Time) time.Time {
	return nextSlotTime(p.slots, t)
}

// Slots returns the publication table ordered by time of day.
func (p *FixedSlotPolicy) Slots() []Slot {
	out := make([]Slot, len(p.slots))
	copy(out, p.slots)
	return out
}
