package helpers

import (
	"context"
	"fmt"

	"github.com/goliatone/go-taghelpers/pkg/markdown"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

const (
	attrAllowHTML           = "allow-html"
	attrNormalizeIndent     = "normalize-indentation"
	attrPreserveIndentation = "preserve-indentation"
)

// Markdown replaces a <markdown> element with its body rendered as HTML.
// A blank body leaves the element untouched.
type Markdown struct {
	Renderer *markdown.Renderer
	Options  markdown.Options
}

func markdownDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "markdown",
		Targets: []taghelper.Target{{Tag: "markdown"}},
		Bound:   []string{attrAllowHTML, attrNormalizeIndent, attrPreserveIndentation},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			opts := markdown.DefaultOptions()
			var err error
			if opts.AllowHTML, err = b.Bool(attrAllowHTML, opts.AllowHTML); err != nil {
				return nil, err
			}
			if b.Has(attrPreserveIndentation) {
				preserve, err := b.Bool(attrPreserveIndentation, false)
				if err != nil {
					return nil, err
				}
				opts.NormalizeIndentation = !preserve
			}
			if opts.NormalizeIndentation, err = b.Bool(attrNormalizeIndent, opts.NormalizeIndentation); err != nil {
				return nil, err
			}
			return &Markdown{Renderer: svc.Markdown, Options: opts}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *Markdown) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *Markdown) Process(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard("markdown", tc, out); !ok {
		return err
	}
	source, err := out.GetChildContent(ctx)
	if err != nil {
		return err
	}
	if markdown.IsBlank(source) {
		return nil
	}

	renderer := h.Renderer
	if renderer == nil {
		renderer = markdown.New()
	}
	rendered, err := renderer.Render(ctx, source, h.Options)
	if err != nil {
		return fmt.Errorf("helpers: markdown: %w", err)
	}
	out.Content.SetHTML(rendered)
	out.TagName = ""
	return nil
}
