// Package gate decides which prepared articles may be published right now
// and remembers what has already gone out. The published record is memory
// only: it resets with the process, a documented limitation of the system.
package gate

import (
	"sync"
	"time"

	"newspress/internal/core"
	"newspress/internal/pool"
	"newspress/internal/schedule"
)

// PublishedSet tracks article ids that have been successfully published.
// Ids are only ever added; within one process lifetime an id never leaves
// the set. This is the at-most-once publication guarantee.
type PublishedSet struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

// NewPublishedSet returns an empty published record.
func NewPublishedSet() *PublishedSet {
	return &PublishedSet{ids: make(map[string]struct{})}
}

// MarkPublished records the id. Marking an already-published id is a no-op.
func (s *PublishedSet) MarkPublished(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// Has reports whether the id has been published.
func (s *PublishedSet) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of published ids.
func (s *PublishedSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Gate selects due articles by matching the schedule policy against the
// wall clock.
type Gate struct {
	policy    schedule.Policy
	published *PublishedSet
}

// New returns a gate over the given policy and published record.
func New(policy schedule.Policy, published *PublishedSet) *Gate {
	return &Gate{policy: policy, published: published}
}

// Published exposes the underlying published record.
func (g *Gate) Published() *PublishedSet {
	return g.published
}

// SelectDue returns the articles eligible for publication at now: for each
// due category, the first unpublished pool article of that category in pool
// order, at most one per category. Categories with no eligible article are
// skipped silently. Selection does not mark anything published; callers mark
// after the external publish call succeeds, so a downstream failure leaves
// the article eligible for retry on the next invocation.
func (g *Gate) SelectDue(now time.Time, p *pool.Pool) []core.Article {
	categories := g.policy.CategoriesDueAt(now)
	if len(categories) == 0 {
		return nil
	}

	var due []core.Article
	for _, cat := range categories {
		for _, a := range p.AllByCategory(cat) {
			if g.published.Has(a.ID) {
				continue
			}
			due = append(due, a)
			break
		}
	}
	return due
}

// MarkPublished records a confirmed publication. Idempotent.
func (g *Gate) MarkPublished(id string) {
	g.published.MarkPublished(id)
}
