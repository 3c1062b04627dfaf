package taghelper

type suppressionMarker struct{}

var suppressed = suppressionMarker{}

// SetSuppressed records that the element must not render. It is idempotent.
// A nil context is a programming error and panics.
func SetSuppressed(tc *Context) {
	if tc == nil {
		panic("taghelper: SetSuppressed called with nil context")
	}
	tc.SetItem(ItemSuppressed, suppressed)
	tracer().Debugf("taghelper: <%s> suppressed", tc.TagName)
}

// IsSuppressed reports whether an earlier helper suppressed the element. A
// nil context is a programming error and panics.
func IsSuppressed(tc *Context) bool {
	if tc == nil {
		panic("taghelper: IsSuppressed called with nil context")
	}
	v, ok := tc.Item(ItemSuppressed)
	if !ok {
		return false
	}
	_, marker := v.(suppressionMarker)
	return marker
}
