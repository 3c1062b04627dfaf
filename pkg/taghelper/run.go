package taghelper

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/metadata"
	"github.com/goliatone/go-taghelpers/pkg/predicate"
)

// Runner instantiates and executes the helpers resolved for an element.
type Runner struct {
	Evaluator predicate.Evaluator
	Metadata  metadata.Provider
}

type bound struct {
	name   string
	helper Helper
}

// Run executes descriptors against one element with a default Runner.
func Run(ctx context.Context, view *ViewContext, descriptors []Descriptor, tc *Context, out *Output) error {
	var r Runner
	return r.Run(ctx, view, descriptors, tc, out)
}

// Run strips bound attributes from out, builds every helper, then calls
// Process in order. It stops at the first error or when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, view *ViewContext, descriptors []Descriptor, tc *Context, out *Output) error {
	if err := CheckArgs(tc, out); err != nil {
		return err
	}
	if len(descriptors) == 0 {
		return nil
	}

	for _, desc := range descriptors {
		for _, name := range desc.Bound {
			if prefix, ok := strings.CutSuffix(name, "*"); ok {
				out.Attributes.RemovePrefix(prefix)
				continue
			}
			out.Attributes.Remove(name)
		}
	}

	binding := NewBinding(tc, view, r.Evaluator, r.Metadata)
	helpers := make([]bound, 0, len(descriptors))
	for _, desc := range descriptors {
		helper, err := desc.Factory(binding)
		if err != nil {
			return fmt.Errorf("taghelper: %s on <%s>: %w", desc.Name, tc.TagName, err)
		}
		if helper == nil {
			continue
		}
		helpers = append(helpers, bound{name: desc.Name, helper: helper})
	}

	sort.SliceStable(helpers, func(i, j int) bool {
		return helpers[i].helper.Order() < helpers[j].helper.Order()
	})

	for _, h := range helpers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := h.helper.Process(ctx, tc, out); err != nil {
			return fmt.Errorf("taghelper: %s on <%s>: %w", h.name, tc.TagName, err)
		}
	}
	tracer().Debugf("taghelper: ran %d helper(s) on <%s>", len(helpers), tc.TagName)
	return nil
}
