package eviction

// fifo keeps keys in insertion order. Reads and overwrites do not move them.
type fifo struct {
	order
}

func newFIFO() *fifo {
	return &fifo{order: newOrder()}
}

func (f *fifo) OnGet(string) {}

func (f *fifo) OnPut(k string) {
	if !f.has(k) {
		f.pushBack(k)
	}
}

func (f *fifo) Remove(k string) { f.remove(k) }

func (f *fifo) Evict() (string, bool) { return f.popFront() }

func (f *fifo) Clear() { f.clear() }
