package database

// Record is a value stored in a Collection. Key must return the record's
// own id; Clone must return a copy that shares no mutable memory.
type Record[R any] interface {
	Key() uint64
	Clone() R
}

// Collection maps ids to records. It has no locking of its own; callers
// go through DB to serialize access.
type Collection[R Record[R]] struct {
	items map[uint64]R
}

// NewCollection returns an empty collection
func NewCollection[R Record[R]]() *Collection[R] {
	return &Collection[R]{items: make(map[uint64]R)}
}

// Insert stores r under r.Key(), replacing any record already there.
func (c *Collection[R]) Insert(r R) {
	c.items[r.Key()] = r.Clone()
}

// Update has the same semantics as Insert. Updating an id that does not
// exist creates it.
func (c *Collection[R]) Update(r R) {
	c.Insert(r)
}

// Get returns a copy of the record stored under id.
func (c *Collection[R]) Get(id uint64) (R, bool) {
	r, ok := c.items[id]
	if !ok {
		var zero R
		return zero, false
	}
	return r.Clone(), true
}

// All returns copies of every record in no particular order.
func (c *Collection[R]) All() []R {
	out := make([]R, 0, len(c.items))
	for _, r := range c.items {
		out = append(out, r.Clone())
	}
	return out
}

// Find returns the first record for which match is true. Iteration order
// is unspecified.
func (c *Collection[R]) Find(match func(R) bool) (R, bool) {
	for _, r := range c.items {
		if match(r) {
			return r.Clone(), true
		}
	}
	var zero R
	return zero, false
}

// Delete removes id. Deleting a missing id does nothing.
func (c *Collection[R]) Delete(id uint64) {
	delete(c.items, id)
}

// Len returns the number of records
func (c *Collection[R]) Len() int {
	return len(c.items)
}

func (c *Collection[R]) export() map[uint64]R {
	out := make(map[uint64]R, len(c.items))
	for id, r := range c.items {
		out[id] = r.Clone()
	}
	return out
}
