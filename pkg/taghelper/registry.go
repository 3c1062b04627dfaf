package taghelper

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// AnyTag matches every element name in a Target.
const AnyTag = "*"

// Target selects elements by tag name and required attributes. Every listed
// attribute must be present; a trailing '*' makes the name a prefix match.
type Target struct {
	Tag        string
	Attributes []string
}

// Factory builds a helper instance for one element.
type Factory func(b *Binding) (Helper, error)

// Descriptor registers a helper.
type Descriptor struct {
	Name    string
	Targets []Target
	// Bound lists the attributes the helper consumes. They are removed from
	// the output before processing. A trailing '*' removes by prefix.
	Bound   []string
	Order   int
	Factory Factory
}

type entry struct {
	desc  Descriptor
	index int
}

// Registry stores helper descriptors and selects them per element.
type Registry struct {
	mu      sync.RWMutex
	entries []entry
	byName  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register adds a descriptor. Names must be unique and at least one target
// is required.
func (r *Registry) Register(desc Descriptor) error {
	name := strings.TrimSpace(desc.Name)
	if name == "" {
		return errors.New("taghelper: descriptor name is required")
	}
	if desc.Factory == nil {
		return fmt.Errorf("taghelper: descriptor %q has no factory", name)
	}
	if len(desc.Targets) == 0 {
		return fmt.Errorf("taghelper: descriptor %q has no targets", name)
	}
	for _, target := range desc.Targets {
		if strings.TrimSpace(target.Tag) == "" {
			return fmt.Errorf("taghelper: descriptor %q has a target without tag", name)
		}
	}
	desc.Name = name

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("taghelper: descriptor %q already registered", name)
	}
	r.byName[name] = len(r.entries)
	r.entries = append(r.entries, entry{desc: desc, index: len(r.entries)})
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(desc Descriptor) {
	if err := r.Register(desc); err != nil {
		panic(err)
	}
}

// Has reports whether a descriptor called name exists.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}

// List returns the registered names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.desc.Name
	}
	return names
}

// Resolve returns the descriptors matching an element, sorted by Order and
// then by registration order. The result is stable for identical input.
func (r *Registry) Resolve(tag string, attrs AttributeList) []Descriptor {
	r.mu.RLock()
	matched := make([]entry, 0, 4)
	for _, e := range r.entries {
		if e.desc.matches(tag, attrs) {
			matched = append(matched, e)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].desc.Order == matched[j].desc.Order {
			return matched[i].index < matched[j].index
		}
		return matched[i].desc.Order < matched[j].desc.Order
	})

	out := make([]Descriptor, len(matched))
	for i, e := range matched {
		out[i] = e.desc
	}
	return out
}

func (d Descriptor) matches(tag string, attrs AttributeList) bool {
	for _, target := range d.Targets {
		if target.matches(tag, attrs) {
			return true
		}
	}
	return false
}

func (t Target) matches(tag string, attrs AttributeList) bool {
	if t.Tag != AnyTag && !strings.EqualFold(t.Tag, tag) {
		return false
	}
	for _, name := range t.Attributes {
		if prefix, ok := strings.CutSuffix(name, "*"); ok {
			if !hasLongerPrefix(attrs, prefix) {
				return false
			}
			continue
		}
		if !attrs.ContainsName(name) {
			return false
		}
	}
	return true
}

func hasLongerPrefix(attrs AttributeList, prefix string) bool {
	for _, attr := range attrs {
		if len(attr.Name) > len(prefix) && hasPrefixFold(attr.Name, prefix) {
			return true
		}
	}
	return false
}
