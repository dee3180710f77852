// Package pool holds the day's prepared articles between the prepare pass
// and the publish passes. Contents live in memory only and reset on process
// restart.
package pool

import (
	"sync"

	"newspress/internal/core"
	"newspress/internal/schedule"
)

// Pool is a keyed collection of prepared articles. The prepare pass is the
// single writer (wholesale ReplaceAll); publish passes read. The lock keeps
// an overlapping prepare and publish from corrupting the map.
type Pool struct {
	mu    sync.RWMutex
	byID  map[string]core.Article
	order []string // insertion order of the last ReplaceAll
}

// New returns an empty pool.
func New() *Pool {
	return &Pool{byID: make(map[string]core.Article)}
}

// ReplaceAll swaps the pool contents for today's batch. Existing entries are
// dropped; the given order becomes the pool iteration order.
func (p *Pool) ReplaceAll(articles []core.Article) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.byID = make(map[string]core.Article, len(articles))
	p.order = p.order[:0]
	for _, a := range articles {
		if _, dup := p.byID[a.ID]; dup {
			continue
		}
		p.byID[a.ID] = a
		p.order = append(p.order, a.ID)
	}
}

// Get returns the article with the given id.
func (p *Pool) Get(id string) (core.Article, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	a, ok := p.byID[id]
	return a, ok
}

// AllByCategory returns the articles of the given category in pool iteration
// order.
func (p *Pool) AllByCategory(cat schedule.Category) []core.Article {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []core.Article
	for _, id := range p.order {
		if a := p.byID[id]; a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}

// Snapshot returns all pooled articles in iteration order.
func (p *Pool) Snapshot() []core.Article {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]core.Article, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.byID[id])
	}
	return out
}

// Len returns the number of pooled articles.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byID)
}
