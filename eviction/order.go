package eviction

import "container/list"

// order is a key list with O(1) lookup. Front is the next victim.
type order struct {
	l     *list.List
	elems map[string]*list.Element
}

func newOrder() order {
	return order{l: list.New(), elems: make(map[string]*list.Element)}
}

func (o *order) has(k string) bool {
	_, ok := o.elems[k]
	return ok
}

func (o *order) pushBack(k string) {
	o.elems[k] = o.l.PushBack(k)
}

func (o *order) moveToBack(k string) {
	if e, ok := o.elems[k]; ok {
		o.l.MoveToBack(e)
	}
}

func (o *order) remove(k string) {
	if e, ok := o.elems[k]; ok {
		o.l.Remove(e)
		delete(o.elems, k)
	}
}

func (o *order) popFront() (string, bool) {
	e := o.l.Front()
	if e == nil {
		return "", false
	}
	k := e.Value.(string)
	o.l.Remove(e)
	delete(o.elems, k)
	return k, true
}

func (o *order) clear() {
	o.l.Init()
	o.elems = make(map[string]*list.Element)
}
