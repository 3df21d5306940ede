// Package idgen hands out time-derived identifiers that never repeat within a process.
package idgen

import (
	"sync"
	"time"
)

// Generator returns Unix-millisecond ids. When two calls land in the same
// millisecond, or the clock steps backwards, the id is bumped past the last one.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock is used by tests to pin the clock.
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe records an id issued elsewhere (e.g. loaded from disk) so Next never reissues it.
func (g *Generator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id > g.last {
		g.last = id
	}
}
