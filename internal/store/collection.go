package store

type keyed interface {
	Key() string
}

// collection keeps entities in insertion order with a revision per key.
// Revisions survive removal so a reinserted entity keeps counting up.
type collection[T keyed] struct {
	items     map[string]T
	order     []string
	revisions map[string]uint64
}

func newCollection[T keyed]() *collection[T] {
	return &collection[T]{
		items:     make(map[string]T),
		revisions: make(map[string]uint64),
	}
}

func (c *collection[T]) get(key string) (T, bool) {
	item, ok := c.items[key]
	return item, ok
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.items[key])
	}
	return out
}

func (c *collection[T]) upsert(item T) {
	key := item.Key()
	if _, exists := c.items[key]; !exists {
		c.order = append(c.order, key)
	}
	c.items[key] = item
	c.revisions[key]++
}

// replace swaps the entity stored under oldKey for item, keeping its slot.
func (c *collection[T]) replace(oldKey string, item T) {
	newKey := item.Key()
	if _, exists := c.items[oldKey]; !exists || oldKey == newKey {
		c.upsert(item)
		return
	}

	delete(c.items, oldKey)
	c.revisions[oldKey]++
	if _, dup := c.items[newKey]; dup {
		c.order = removeKey(c.order, oldKey)
	} else {
		for i, key := range c.order {
			if key == oldKey {
				c.order[i] = newKey
				break
			}
		}
	}
	c.items[newKey] = item
	c.revisions[newKey]++
}

func (c *collection[T]) remove(key string) {
	if _, exists := c.items[key]; !exists {
		return
	}
	delete(c.items, key)
	c.order = removeKey(c.order, key)
	c.revisions[key]++
}

func (c *collection[T]) reset(items []T) {
	for key := range c.items {
		c.revisions[key]++
	}
	c.items = make(map[string]T, len(items))
	c.order = c.order[:0]
	for _, item := range items {
		c.upsert(item)
	}
}

func (c *collection[T]) revision(key string) uint64 {
	return c.revisions[key]
}

func removeKey(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}
