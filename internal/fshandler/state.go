package fshandler

import (
	"sync"

	"github.com/jamesblissett/tagfs/internal/store"
)

// resultCache holds a query node's materialized rows between invalidations:
// the ResultMaterialized(E, rows) state of the spec's per-node state
// machine (Empty -> PartialExpression(E) -> ResultMaterialized(E, rows)).
// A node absent from the cache is in Empty or PartialExpression - building
// its entry key never forces materialization, only reading the result
// sentinel (or a stored-query / tag-browser directory, which behave
// identically) does.
type resultCache struct {
	mu   sync.Mutex
	rows map[string][]store.Path
}

func newResultCache() *resultCache {
	return &resultCache{rows: make(map[string][]store.Path)}
}

func (c *resultCache) get(key string) ([]store.Path, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows, ok := c.rows[key]
	return rows, ok
}

func (c *resultCache) set(key string, rows []store.Path) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows[key] = rows
}

// clear transitions every ResultMaterialized node back to
// PartialExpression, the response to any tag-store mutation.
func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rows = make(map[string][]store.Path)
}
