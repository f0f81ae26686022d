// registry.go implements the mount-lifetime inode table: a single mutex
// guarding two maps, one per direction, the same one-lock-one-map shape the
// teacher uses for its audit logger rather than reaching for a third-party
// LRU/cache library.
package entry

import "sync"

// Registry assigns and remembers stable inodes for synthetic entries for
// the lifetime of a mount. It never persists across remounts.
type Registry struct {
	mu    sync.RWMutex
	byIno map[Ino]Entry
	byKey map[string]Ino
	root  Entry
}

// NewRegistry returns an empty registry with the fixed root entry
// pre-registered at RootIno.
func NewRegistry() *Registry {
	r := &Registry{
		byIno: make(map[Ino]Entry),
		byKey: make(map[string]Ino),
		root:  Entry{Kind: KindRoot},
	}
	r.byIno[RootIno] = r.root
	r.byKey[r.root.Key()] = RootIno
	return r
}

// Allocate returns the stable inode for e, assigning one on first sight.
// Calling Allocate twice with Entry values of equal identity (same Kind and
// discriminating fields) returns the same inode.
func (r *Registry) Allocate(e Entry) Ino {
	key := e.Key()

	r.mu.RLock()
	if ino, ok := r.byKey[key]; ok {
		r.mu.RUnlock()
		return ino
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if ino, ok := r.byKey[key]; ok {
		return ino
	}

	ino := hashKey(key)
	for {
		existing, taken := r.byIno[ino]
		if !taken || existing.Key() == key {
			break
		}
		ino++ // resolve a hash collision by linear probing
	}

	r.byIno[ino] = e
	r.byKey[key] = ino
	return ino
}

// Lookup returns the entry registered at ino, if any.
func (r *Registry) Lookup(ino Ino) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byIno[ino]
	return e, ok
}

// Invalidate discards every allocation except the fixed root. Called after
// any tag mutation: inode identities for query/result/projection entries
// are derived from query expressions and path ids, which a mutation can
// change the meaning of, so the simplest correct response is to drop the
// whole table and let lookups re-allocate.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byIno = map[Ino]Entry{RootIno: r.root}
	r.byKey = map[string]Ino{r.root.Key(): RootIno}
}
