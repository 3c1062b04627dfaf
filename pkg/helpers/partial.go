package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/taghelper"
	"github.com/goliatone/go-taghelpers/pkg/views"
)

const (
	attrName           = "name"
	attrModel          = "model"
	attrOptional       = "optional"
	attrFallbackName   = "fallback-name"
	attrViewDataPrefix = "view-data-"
)

// ErrNoPartials is returned when a partial is requested but no view engine
// was configured.
var ErrNoPartials = errors.New("helpers: no partial view engine configured")

// Partial replaces a <partial name="..."> element with the rendered view.
type Partial struct {
	Partials *views.Partials
	View     *taghelper.ViewContext
	Name     string
	Model    any
}

func partialDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "partial",
		Targets: []taghelper.Target{{Tag: "partial", Attributes: []string{attrName}}},
		Bound:   []string{attrName, attrModel},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			model, err := partialModel(b, false)
			if err != nil {
				return nil, err
			}
			return &Partial{
				Partials: svc.Partials,
				View:     b.View(),
				Name:     b.String(attrName),
				Model:    model,
			}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *Partial) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *Partial) Process(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard("partial", tc, out); !ok {
		return err
	}
	if h.Partials == nil {
		return ErrNoPartials
	}
	out.TagName = ""
	rendered, err := h.Partials.Render(ctx, h.Name, h.Model, viewValues(h.View, nil))
	if err != nil {
		return fmt.Errorf("helpers: partial: %w", err)
	}
	out.Content.SetHTML(rendered)
	return nil
}

// RenderPartial renders a partial view with optional fallback. It runs
// last so every other helper on the element, asp-if included, has had its
// say.
type RenderPartial struct {
	Partials     *views.Partials
	View         *taghelper.ViewContext
	Name         string
	FallbackName string
	Optional     bool
	Model        any
	// ViewData is merged over the page's view data.
	ViewData map[string]any

	hasFor   bool
	hasModel bool
}

func renderPartialDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "render-partial",
		Targets: []taghelper.Target{{Tag: "render-partial"}},
		Bound:   []string{attrName, attrElementFor, attrModel, attrOptional, attrFallbackName, attrViewDataPrefix + "*"},
		Order:   taghelper.OrderRenderPartial,
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			h := &RenderPartial{
				Partials:     svc.Partials,
				View:         b.View(),
				Name:         b.String(attrName),
				FallbackName: b.String(attrFallbackName),
				hasFor:       b.Has(attrElementFor),
				hasModel:     b.Has(attrModel),
			}
			optional, err := b.Bool(attrOptional, false)
			if err != nil {
				return nil, err
			}
			h.Optional = optional
			if !h.hasFor || !h.hasModel {
				if h.Model, err = partialModel(b, true); err != nil {
					return nil, err
				}
			}
			for _, attr := range b.Prefixed(attrViewDataPrefix) {
				if h.ViewData == nil {
					h.ViewData = make(map[string]any)
				}
				h.ViewData[attr.Name] = attr.Value
			}
			return h, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *RenderPartial) Order() int { return taghelper.OrderRenderPartial }

// Process implements taghelper.Helper.
func (h *RenderPartial) Process(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if err := checkArgs("render-partial", tc, out); err != nil {
		return err
	}
	if taghelper.IsSuppressed(tc) {
		out.SuppressOutput()
		return nil
	}
	if h.hasFor && h.hasModel {
		return fmt.Errorf("helpers: render-partial: %q and %q cannot be used together", attrElementFor, attrModel)
	}
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("helpers: render-partial: %q is required", attrName)
	}
	if h.Partials == nil {
		return ErrNoPartials
	}

	out.TagName = ""
	name := h.Name
	if _, ok := h.Partials.Find(name); !ok {
		fallback := strings.TrimSpace(h.FallbackName)
		_, found := h.Partials.Find(fallback)
		switch {
		case fallback != "" && found:
			name = fallback
		case h.Optional:
			out.SuppressOutput()
			return nil
		default:
			searched := []string{h.Name}
			if fallback != "" {
				searched = append(searched, fallback)
			}
			return fmt.Errorf("helpers: render-partial: %w: searched %q", views.ErrViewNotFound, searched)
		}
	}

	rendered, err := h.Partials.Render(ctx, name, h.Model, viewValues(h.View, h.ViewData))
	if err != nil {
		return fmt.Errorf("helpers: render-partial: %w", err)
	}
	out.Content.SetHTML(rendered)
	return nil
}

// partialModel resolves the partial's model: the "model" attribute as a
// view-data path, the "for" attribute as a model expression when allowed,
// else the page model.
func partialModel(b *taghelper.Binding, allowFor bool) (any, error) {
	if b.Has(attrModel) {
		value, _ := b.Value(attrModel)
		return value, nil
	}
	if allowFor && b.Has(attrElementFor) {
		expr, err := b.Expression(attrElementFor)
		if err != nil {
			return nil, err
		}
		return expr.Model, nil
	}
	if view := b.View(); view != nil {
		return view.Model, nil
	}
	return nil, nil
}

func viewValues(view *taghelper.ViewContext, overrides map[string]any) map[string]any {
	out := make(map[string]any)
	if view != nil {
		for k, v := range view.Values {
			out[k] = v
		}
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
