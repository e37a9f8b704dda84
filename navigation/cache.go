package navigation

// FieldCache holds the last generated field and tracks whether sources changed since
// Invalidation never recomputes; the next Update does
type FieldCache struct {
	Field *FlowField

	// PendingUpdate latches true on any source or dimension change, cleared after compute
	PendingUpdate bool

	// Generation increments on every successful recompute
	Generation uint64
}

// NewFieldCache creates an empty cache that computes on first Update
func NewFieldCache() *FieldCache {
	return &FieldCache{PendingUpdate: true}
}

// MarkDirty forces recomputation on next Update
func (c *FieldCache) MarkDirty() {
	c.PendingUpdate = true
}

// Update recomputes the field if dirty and returns whether it did
// On error the previous field is dropped; no partial field is kept
func (c *FieldCache) Update(width, height int, sources []Source) (bool, error) {
	if !c.PendingUpdate && c.Field != nil {
		return false, nil
	}
	field, err := GenerateField(width, height, sources)
	if err != nil {
		c.Field = nil
		return false, err
	}
	c.Field = field
	c.PendingUpdate = false
	c.Generation++
	return true, nil
}

// IsValid returns true if the cached field matches the current sources
func (c *FieldCache) IsValid() bool {
	return c.Field != nil && !c.PendingUpdate
}
