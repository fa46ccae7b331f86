package services

import "sync"

// inflightGuard tracks entity IDs with a pending request so a second
// submission for the same entity is rejected instead of duplicated.
type inflightGuard struct {
	mu  sync.Mutex
	ids map[int]struct{}
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{ids: make(map[int]struct{})}
}

// begin marks the ID as busy. Returns false when it already is.
func (g *inflightGuard) begin(id int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.ids[id]; busy {
		return false
	}
	g.ids[id] = struct{}{}
	return true
}

// end releases the ID.
func (g *inflightGuard) end(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.ids, id)
}
