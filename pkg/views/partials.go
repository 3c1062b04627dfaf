// Package views renders partial views and display/editor templates on top of
// a template.TemplateRenderer.
package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/render/template"
)

// ErrViewNotFound is returned when no search location holds the named view.
var ErrViewNotFound = errors.New("views: view not found")

// DefaultSearchPaths are the locations a bare partial name is looked up in,
// in order.
var DefaultSearchPaths = []string{"", "shared/"}

// PartialsOption configures Partials.
type PartialsOption func(*Partials)

// WithSearchPaths replaces the default search locations. Each entry is a
// directory prefix relative to the template root; "" is the root itself.
func WithSearchPaths(paths ...string) PartialsOption {
	return func(p *Partials) {
		p.searchPaths = normalizePrefixes(paths)
	}
}

// Partials finds and renders partial views by name.
type Partials struct {
	engine      template.TemplateRenderer
	searchPaths []string
}

// NewPartials wraps engine.
func NewPartials(engine template.TemplateRenderer, opts ...PartialsOption) *Partials {
	p := &Partials{
		engine:      engine,
		searchPaths: normalizePrefixes(DefaultSearchPaths),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Find resolves name to a template path. Names containing a slash are taken
// as given; bare names are tried under each search path.
func (p *Partials) Find(name string) (string, bool) {
	if p == nil || p.engine == nil {
		return "", false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if strings.Contains(name, "/") {
		if p.engine.Exists(name) {
			return strings.TrimPrefix(name, "/"), true
		}
		return "", false
	}
	for _, prefix := range p.searchPaths {
		candidate := prefix + name
		if p.engine.Exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Render renders the named partial. The template sees the view data values
// plus "model". A missing view yields ErrViewNotFound.
func (p *Partials) Render(ctx context.Context, name string, model any, values map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resolved, ok := p.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrViewNotFound, name)
	}

	data := make(map[string]any, len(values)+1)
	for key, value := range values {
		data[key] = value
	}
	data["model"] = model

	rendered, err := p.engine.RenderTemplate(resolved, data)
	if err != nil {
		return "", fmt.Errorf("views: render partial %q: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return rendered, nil
}

func normalizePrefixes(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, raw := range paths {
		prefix := strings.Trim(strings.TrimSpace(raw), "/")
		if prefix != "" {
			prefix += "/"
		}
		if _, dup := seen[prefix]; dup {
			continue
		}
		seen[prefix] = struct{}{}
		out = append(out, prefix)
	}
	return out
}
