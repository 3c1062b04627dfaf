package helpers

import (
	"context"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/metadata"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
	"github.com/goliatone/go-taghelpers/pkg/views"
)

const (
	attrDescriptionFor = "asp-description-for"
	attrFor            = "asp-for"
)

// DescriptionFor fills the element with the description of a model
// property, unless another helper already set the content. Existing child
// content wins over the description.
type DescriptionFor struct {
	For metadata.Expression
}

func descriptionForDescriptor() taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "description-for",
		Targets: []taghelper.Target{anyTag(attrDescriptionFor)},
		Bound:   []string{attrDescriptionFor},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			expr, err := b.Expression(attrDescriptionFor)
			if err != nil {
				return nil, err
			}
			return &DescriptionFor{For: expr}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *DescriptionFor) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *DescriptionFor) Process(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard(attrDescriptionFor, tc, out); !ok {
		return err
	}
	description := h.For.Metadata.Description
	if description == "" || out.IsContentModified() {
		return nil
	}
	child, err := out.GetChildContent(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(child) != "" {
		out.Content.SetHTML(child)
		return nil
	}
	out.Content.SetContent(description)
	return nil
}

// LabelTitle sets a label's title to the property description when the
// label has no title yet.
type LabelTitle struct {
	For metadata.Expression
}

func labelTitleDescriptor() taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "label-title",
		Targets: []taghelper.Target{{Tag: "label", Attributes: []string{attrFor}}},
		Bound:   []string{attrFor},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			expr, err := b.Expression(attrFor)
			if err != nil {
				return nil, err
			}
			return &LabelTitle{For: expr}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *LabelTitle) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *LabelTitle) Process(_ context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard("label-title", tc, out); !ok {
		return err
	}
	description := h.For.Metadata.Description
	if description != "" && !out.Attributes.ContainsName("title") {
		out.Attributes.Add("title", description)
	}
	return nil
}

// LabelFor gives an empty label the property's display name and points its
// for attribute at the field id.
type LabelFor struct {
	For       metadata.Expression
	Generator *views.Generator
}

func labelForDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "label-for",
		Targets: []taghelper.Target{{Tag: "label", Attributes: []string{attrFor}}},
		Bound:   []string{attrFor},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			expr, err := b.Expression(attrFor)
			if err != nil {
				return nil, err
			}
			return &LabelFor{For: expr, Generator: svc.Generator}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *LabelFor) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *LabelFor) Process(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard("label-for", tc, out); !ok {
		return err
	}
	if !out.Attributes.ContainsName("for") {
		out.Attributes.SetAttribute("for", h.For.FieldID())
	}
	if out.IsContentModified() {
		return nil
	}
	child, err := out.GetChildContent(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(child) == "" {
		out.Content.SetHTML(h.Generator.DisplayName(h.For))
	}
	return nil
}
