package helpers

import (
	"context"

	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

const attrEnabled = "asp-enabled"

// enabledTags are the elements that support the disabled attribute.
var enabledTags = []string{"button", "fieldset", "keygen", "optgroup", "option", "select", "textarea", "input"}

// Enabled adds disabled="disabled" when IsEnabled is false.
type Enabled struct {
	IsEnabled bool
}

// NewEnabled returns an Enabled helper in its default, enabled state.
func NewEnabled() *Enabled {
	return &Enabled{IsEnabled: true}
}

func enabledDescriptor() taghelper.Descriptor {
	targets := make([]taghelper.Target, 0, len(enabledTags))
	for _, tag := range enabledTags {
		targets = append(targets, taghelper.Target{Tag: tag, Attributes: []string{attrEnabled}})
	}
	return taghelper.Descriptor{
		Name:    "enabled",
		Targets: targets,
		Bound:   []string{attrEnabled},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			enabled, err := b.Bool(attrEnabled, true)
			if err != nil {
				return nil, err
			}
			return &Enabled{IsEnabled: enabled}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *Enabled) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *Enabled) Process(_ context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard(attrEnabled, tc, out); !ok {
		return err
	}
	if !h.IsEnabled {
		out.Attributes.SetAttribute("disabled", "disabled")
	}
	return nil
}
