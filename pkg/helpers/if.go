package helpers

import (
	"context"

	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

const attrIf = "asp-if"

// If suppresses the element when Predicate is false. It runs before every
// other content helper so they can observe the suppression marker.
type If struct {
	Predicate bool
}

func ifDescriptor() taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "if",
		Targets: []taghelper.Target{anyTag(attrIf)},
		Bound:   []string{attrIf},
		Order:   taghelper.OrderIf,
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			predicate, err := b.Bool(attrIf, true)
			if err != nil {
				return nil, err
			}
			return &If{Predicate: predicate}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *If) Order() int { return taghelper.OrderIf }

// Process implements taghelper.Helper.
func (h *If) Process(_ context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if err := checkArgs(attrIf, tc, out); err != nil {
		return err
	}
	if !h.Predicate {
		out.SuppressOutput()
		taghelper.SetSuppressed(tc)
	}
	return nil
}
