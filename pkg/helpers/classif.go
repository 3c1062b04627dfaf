package helpers

import (
	"context"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

const attrClassIfPrefix = "asp-class-if-"

// ClassIf adds the class names toggled on and removes those toggled off.
// Existing names keep their order and duplicates collapse. Names are
// compared case-sensitively.
type ClassIf struct {
	Toggles []taghelper.Toggle
}

func classIfDescriptor() taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "class-if",
		Targets: []taghelper.Target{anyTag(attrClassIfPrefix + "*")},
		Bound:   []string{attrClassIfPrefix + "*"},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			toggles, err := b.PrefixedBool(attrClassIfPrefix)
			if err != nil {
				return nil, err
			}
			return &ClassIf{Toggles: toggles}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *ClassIf) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *ClassIf) Process(_ context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if err := checkArgs("asp-class-if", tc, out); err != nil {
		return err
	}
	existing, _ := tc.Attribute("class")
	out.Attributes.SetAttribute("class", MergeClasses(existing.Value, h.Toggles))
	return nil
}

// MergeClasses applies toggles to a class attribute value.
func MergeClasses(existing string, toggles []taghelper.Toggle) string {
	remove := make(map[string]struct{})
	for _, t := range toggles {
		if !t.On {
			remove[t.Name] = struct{}{}
		}
	}

	seen := make(map[string]struct{})
	var names []string
	add := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		if _, drop := remove[name]; drop {
			return
		}
		names = append(names, name)
	}
	for _, name := range strings.Fields(existing) {
		add(name)
	}
	for _, t := range toggles {
		if t.On {
			add(t.Name)
		}
	}
	return strings.Join(names, " ")
}
