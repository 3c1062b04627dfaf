package taghelper

// ItemKey identifies an entry in a Context's Items store. The set is closed.
type ItemKey int

const (
	// ItemSuppressed holds the suppression marker.
	ItemSuppressed ItemKey = iota + 1
)

func (k ItemKey) String() string {
	switch k {
	case ItemSuppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}

// Context is the per-element processing context. It is created by the host
// before the first helper runs and discarded after the last one; it is never
// shared between elements.
type Context struct {
	TagName  string
	UniqueID string

	attributes AttributeList
	items      map[ItemKey]any
}

// NewContext snapshots attrs so later Output mutations do not leak into
// AllAttributes.
func NewContext(tagName string, attrs AttributeList, uniqueID string) *Context {
	return &Context{
		TagName:    tagName,
		UniqueID:   uniqueID,
		attributes: attrs.Clone(),
		items:      make(map[ItemKey]any),
	}
}

// AllAttributes returns a copy of the element's original attributes.
func (c *Context) AllAttributes() AttributeList {
	return c.attributes.Clone()
}

// Attribute looks up an original attribute by name (case-insensitive).
func (c *Context) Attribute(name string) (Attribute, bool) {
	return c.attributes.Get(name)
}

// Item returns the value stored under key.
func (c *Context) Item(key ItemKey) (any, bool) {
	v, ok := c.items[key]
	return v, ok
}

// SetItem stores value under key.
func (c *Context) SetItem(key ItemKey, value any) {
	if c.items == nil {
		c.items = make(map[ItemKey]any)
	}
	c.items[key] = value
}
