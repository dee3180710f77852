package gate

import (
	"sync"

	"newspress/internal/core"
	"newspress/internal/pool"
	"newspress/internal/schedule"
)

// RotationGate is the rotation-index publication policy: instead of matching
// wall-clock slots it always publishes "the next category in line". An
// external timer invokes it at whatever cadence it likes; the index advances
// by exactly one per confirmed publish and wraps modulo the category count.
type RotationGate struct {
	mu        sync.Mutex
	index     int
	order     []schedule.Category
	published *PublishedSet
}

// NewRotationGate returns a rotation gate starting at the first category in
// canonical order.
func NewRotationGate(published *PublishedSet) *RotationGate {
	return &RotationGate{
		order:     schedule.Categories(),
		published: published,
	}
}

// Published exposes the underlying published record.
func (g *RotationGate) Published() *PublishedSet {
	return g.published
}

// Current returns the category next in rotation.
func (g *RotationGate) Current() schedule.Category {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.order[g.index%len(g.order)]
}

// Index returns the monotonically increasing publish counter.
func (g *RotationGate) Index() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.index
}

// SelectNext returns the first unpublished pool article of the current
// rotation category, or false when the category has no eligible candidate.
// Selection does not advance the rotation or mark anything published.
func (g *RotationGate) SelectNext(p *pool.Pool) (core.Article, bool) {
	cat := g.Current()
	for _, a := range p.AllByCategory(cat) {
		if g.published.Has(a.ID) {
			continue
		}
		return a, true
	}
	return core.Article{}, false
}

// Advance moves the rotation forward after a confirmed publish.
func (g *RotationGate) Advance() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.index++
}

// MarkPublished records a confirmed publication. Idempotent.
func (g *RotationGate) MarkPublished(id string) {
	g.published.MarkPublished(id)
}
