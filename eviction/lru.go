package eviction

// lru keeps keys ordered by last use; the least recently used key sits at the front.
type lru struct {
	order
}

func newLRU() *lru {
	return &lru{order: newOrder()}
}

func (l *lru) OnGet(k string) { l.moveToBack(k) }

// OnPut treats an overwrite as a use.
func (l *lru) OnPut(k string) {
	if l.has(k) {
		l.moveToBack(k)
		return
	}
	l.pushBack(k)
}

func (l *lru) Remove(k string) { l.remove(k) }

func (l *lru) Evict() (string, bool) { return l.popFront() }

func (l *lru) Clear() { l.clear() }
