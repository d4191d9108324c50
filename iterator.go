package hybridcache

// IterEntry is one iteration result. Present is false when the key was
// deleted or expired after the iterator was created.
type IterEntry[V any] struct {
	Key     string
	Value   V
	Present bool
}

// Iterator walks the (key, value) pairs that were live when Iter was called,
// from least- to most-recently promoted. The key set is frozen at creation:
// later insertions are invisible, later deletions surface as absent. It is
// finite and cannot be restarted; create a new one instead.
type Iterator[V any] struct {
	c    *cache[V]
	keys []string
	pos  int
}

func (c *cache[V]) Iter() *Iterator[V] {
	c.pruneHead()
	return &Iterator[V]{c: c, keys: c.order.Keys()}
}

// Next returns the next entry and whether the iteration is still in progress.
func (it *Iterator[V]) Next() (IterEntry[V], bool) {
	if it.pos >= len(it.keys) {
		return IterEntry[V]{}, false
	}
	key := it.keys[it.pos]
	it.pos++

	v, ok := it.c.Peek(key)
	return IterEntry[V]{Key: key, Value: v, Present: ok}, true
}
