package taghelper

import "strings"

// Attribute is a single name/value pair on an element.
type Attribute struct {
	Name  string
	Value string
}

// AttributeList is an ordered attribute collection with case-insensitive
// name matching.
type AttributeList []Attribute

// Clone returns an independent copy.
func (l AttributeList) Clone() AttributeList {
	if l == nil {
		return nil
	}
	return append(AttributeList(nil), l...)
}

// Get returns the first attribute called name.
func (l AttributeList) Get(name string) (Attribute, bool) {
	if i := l.index(name); i >= 0 {
		return l[i], true
	}
	return Attribute{}, false
}

// Value returns the value of name, or "" when absent.
func (l AttributeList) Value(name string) string {
	attr, _ := l.Get(name)
	return attr.Value
}

// ContainsName reports whether an attribute called name exists.
func (l AttributeList) ContainsName(name string) bool {
	return l.index(name) >= 0
}

// WithPrefix returns the attributes whose names start with prefix, in order.
func (l AttributeList) WithPrefix(prefix string) AttributeList {
	var out AttributeList
	for _, attr := range l {
		if hasPrefixFold(attr.Name, prefix) {
			out = append(out, attr)
		}
	}
	return out
}

// SetAttribute replaces the first attribute called name, or appends it.
func (l *AttributeList) SetAttribute(name, value string) {
	if i := l.index(name); i >= 0 {
		(*l)[i].Value = value
		return
	}
	*l = append(*l, Attribute{Name: name, Value: value})
}

// Add appends an attribute without checking for duplicates.
func (l *AttributeList) Add(name, value string) {
	*l = append(*l, Attribute{Name: name, Value: value})
}

// Remove deletes every attribute called name and reports whether any existed.
func (l *AttributeList) Remove(name string) bool {
	kept := (*l)[:0]
	removed := false
	for _, attr := range *l {
		if strings.EqualFold(attr.Name, name) {
			removed = true
			continue
		}
		kept = append(kept, attr)
	}
	*l = kept
	return removed
}

// RemovePrefix deletes every attribute whose name starts with prefix.
func (l *AttributeList) RemovePrefix(prefix string) {
	kept := (*l)[:0]
	for _, attr := range *l {
		if hasPrefixFold(attr.Name, prefix) {
			continue
		}
		kept = append(kept, attr)
	}
	*l = kept
}

func (l AttributeList) index(name string) int {
	for i, attr := range l {
		if strings.EqualFold(attr.Name, name) {
			return i
		}
	}
	return -1
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
