package helpers

import (
	"context"
	"fmt"

	"github.com/goliatone/go-taghelpers/pkg/metadata"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
	"github.com/goliatone/go-taghelpers/pkg/views"
)

const (
	attrDisplayNameFor = "asp-display-name-for"
	attrDisplayFor     = "asp-display-for"
	attrEditorFor      = "asp-editor-for"
	attrTemplateName   = "asp-template-name"
	attrHTMLFieldName  = "asp-html-field-name"

	attrElementFor          = "for"
	attrElementTemplateName = "template-name"
	attrElementFieldName    = "html-field-name"
)

// DisplayNameFor appends a property's display name after the element's
// content. As an element (<display-name for="...">) the tag itself is
// dropped.
type DisplayNameFor struct {
	For       metadata.Expression
	Generator *views.Generator
	// Element removes the host tag.
	Element bool
}

func displayNameForDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "display-name-for",
		Targets: []taghelper.Target{anyTag(attrDisplayNameFor)},
		Bound:   []string{attrDisplayNameFor},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			expr, err := b.Expression(attrDisplayNameFor)
			if err != nil {
				return nil, err
			}
			return &DisplayNameFor{For: expr, Generator: svc.Generator}, nil
		},
	}
}

func displayNameDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "display-name",
		Targets: []taghelper.Target{{Tag: "display-name", Attributes: []string{attrElementFor}}},
		Bound:   []string{attrElementFor},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			expr, err := b.Expression(attrElementFor)
			if err != nil {
				return nil, err
			}
			return &DisplayNameFor{For: expr, Generator: svc.Generator, Element: true}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *DisplayNameFor) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *DisplayNameFor) Process(_ context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard(attrDisplayNameFor, tc, out); !ok {
		return err
	}
	out.PostContent.AppendHTML(h.Generator.DisplayName(h.For))
	if h.Element {
		out.TagName = ""
	}
	return nil
}

// DisplayFor renders display markup for a property. The attribute form
// appends it after the element's content; the element form
// (<display for="...">) replaces the element.
type DisplayFor struct {
	For          metadata.Expression
	TemplateName string
	Generator    *views.Generator
	Element      bool
}

func displayForDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "display-for",
		Targets: []taghelper.Target{anyTag(attrDisplayFor)},
		Bound:   []string{attrDisplayFor, attrTemplateName},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			expr, err := b.Expression(attrDisplayFor)
			if err != nil {
				return nil, err
			}
			return &DisplayFor{
				For:          expr,
				TemplateName: b.String(attrTemplateName),
				Generator:    svc.Generator,
			}, nil
		},
	}
}

func displayDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "display",
		Targets: []taghelper.Target{{Tag: "display", Attributes: []string{attrElementFor}}},
		Bound:   []string{attrElementFor, attrElementTemplateName},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			expr, err := b.Expression(attrElementFor)
			if err != nil {
				return nil, err
			}
			return &DisplayFor{
				For:          expr,
				TemplateName: b.String(attrElementTemplateName),
				Generator:    svc.Generator,
				Element:      true,
			}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *DisplayFor) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *DisplayFor) Process(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard(attrDisplayFor, tc, out); !ok {
		return err
	}
	markup, err := h.Generator.Display(ctx, h.For, h.TemplateName)
	if err != nil {
		return fmt.Errorf("helpers: display %q: %w", h.For.Name, err)
	}
	if h.Element {
		out.Content.SetHTML(markup)
		out.TagName = ""
		return nil
	}
	out.PostContent.AppendHTML(markup)
	return nil
}

// EditorFor renders editor markup for a property, in attribute or element
// form like DisplayFor.
type EditorFor struct {
	For           metadata.Expression
	HTMLFieldName string
	TemplateName  string
	Generator     *views.Generator
	Element       bool
}

func editorForDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "editor-for",
		Targets: []taghelper.Target{anyTag(attrEditorFor)},
		Bound:   []string{attrEditorFor, attrHTMLFieldName, attrTemplateName},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			expr, err := b.Expression(attrEditorFor)
			if err != nil {
				return nil, err
			}
			return &EditorFor{
				For:           expr,
				HTMLFieldName: b.String(attrHTMLFieldName),
				TemplateName:  b.String(attrTemplateName),
				Generator:     svc.Generator,
			}, nil
		},
	}
}

func editorDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "editor",
		Targets: []taghelper.Target{{Tag: "editor", Attributes: []string{attrElementFor}}},
		Bound:   []string{attrElementFor, attrElementFieldName, attrElementTemplateName},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			expr, err := b.Expression(attrElementFor)
			if err != nil {
				return nil, err
			}
			return &EditorFor{
				For:           expr,
				HTMLFieldName: b.String(attrElementFieldName),
				TemplateName:  b.String(attrElementTemplateName),
				Generator:     svc.Generator,
				Element:       true,
			}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *EditorFor) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *EditorFor) Process(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard(attrEditorFor, tc, out); !ok {
		return err
	}
	markup, err := h.Generator.Editor(ctx, h.For, h.HTMLFieldName, h.TemplateName)
	if err != nil {
		return fmt.Errorf("helpers: editor %q: %w", h.For.Name, err)
	}
	if h.Element {
		out.Content.SetHTML(markup)
		out.TagName = ""
		return nil
	}
	out.PostContent.AppendHTML(markup)
	return nil
}
