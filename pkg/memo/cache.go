package memo

// Stats counts cache lookups.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// Cache maps content keys to computed results. Entries are populated on
// first computation and never evicted. A Cache is not safe for concurrent use.
type Cache[V any] struct {
	entries map[Key]V
	stats   Stats
}

// New creates an empty cache.
func New[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[Key]V)}
}

// Get returns the value stored under k.
func (c *Cache[V]) Get(k Key) (V, bool) {
	v, ok := c.entries[k]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}

// Put stores v under k, replacing any previous value.
func (c *Cache[V]) Put(k Key, v V) {
	c.entries[k] = v
}

// Do returns the value under k, calling compute and storing its result on a
// miss. Errors are returned to the caller and not cached.
func (c *Cache[V]) Do(k Key, compute func() (V, error)) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	c.Put(k, v)
	return v, nil
}

// Len returns the number of stored entries.
func (c *Cache[V]) Len() int {
	return len(c.entries)
}

// Stats returns lookup counters.
func (c *Cache[V]) Stats() Stats {
	return c.stats
}
