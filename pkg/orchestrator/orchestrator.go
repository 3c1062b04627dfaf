package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/authz"
	"github.com/goliatone/go-taghelpers/pkg/helpers"
	"github.com/goliatone/go-taghelpers/pkg/markdown"
	"github.com/goliatone/go-taghelpers/pkg/markup"
	"github.com/goliatone/go-taghelpers/pkg/metadata"
	"github.com/goliatone/go-taghelpers/pkg/predicate"
	"github.com/goliatone/go-taghelpers/pkg/render/template"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
	"github.com/goliatone/go-taghelpers/pkg/views"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithTemplates sets the engine pages, partial views and display/editor
// templates are rendered with.
func WithTemplates(engine template.TemplateRenderer) Option {
	return func(o *Orchestrator) {
		o.templates = engine
	}
}

// WithRegistry injects a helper registry. The default registry holds the
// whole helper pack.
func WithRegistry(registry *taghelper.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithAuthorizer sets the authorizer used by asp-authz attributes.
func WithAuthorizer(authorizer authz.Authorizer) Option {
	return func(o *Orchestrator) {
		o.services.Authorizer = authorizer
	}
}

// WithWebRoot sets the file system script inlining reads from.
func WithWebRoot(root fs.FS) Option {
	return func(o *Orchestrator) {
		o.services.WebRoot = root
	}
}

// WithMarkdown replaces the markdown renderer.
func WithMarkdown(renderer *markdown.Renderer) Option {
	return func(o *Orchestrator) {
		o.services.Markdown = renderer
	}
}

// WithMetadata sets the struct metadata provider used for model expressions
// and nested display/editor properties.
func WithMetadata(provider *metadata.StructProvider) Option {
	return func(o *Orchestrator) {
		o.metadata = provider
	}
}

// WithEvaluator sets the predicate evaluator for boolean helper attributes.
func WithEvaluator(evaluator predicate.Evaluator) Option {
	return func(o *Orchestrator) {
		o.evaluator = evaluator
	}
}

// WithPartialSearchPaths overrides the prefixes partial names are resolved
// against.
func WithPartialSearchPaths(paths ...string) Option {
	return func(o *Orchestrator) {
		o.searchPaths = append([]string(nil), paths...)
	}
}

// WithTransformers registers transformers that run against the page data
// before a page template is rendered.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		if len(transformers) == 0 {
			return
		}
		o.transformers = append(o.transformers, transformers...)
	}
}

// Orchestrator coordinates page rendering and tag helper processing. Missing
// collaborators are initialised with the built-in implementations so callers
// can start with a single constructor call.
type Orchestrator struct {
	templates    template.TemplateRenderer
	registry     *taghelper.Registry
	services     helpers.Services
	metadata     *metadata.StructProvider
	evaluator    predicate.Evaluator
	searchPaths  []string
	transformers []Transformer

	processor     *markup.Processor
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one rendering.
type Request struct {
	// Template names a page template. Optional when Fragment is supplied.
	Template string

	// Fragment is markup processed directly, bypassing the template engine.
	Fragment string

	// View carries the model, view data and principal. A nil View renders
	// with an anonymous principal and no model.
	View *taghelper.ViewContext
}

// Generate renders the request and returns the processed markup.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	view := req.View
	if view == nil {
		view = taghelper.NewViewContext(nil, nil, nil)
	}

	source, err := o.source(ctx, req, view)
	if err != nil {
		return nil, err
	}

	output, err := o.processor.Render(ctx, view, source)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: process %s: %w", describe(req), err)
	}
	return []byte(output), nil
}

// Registry returns the helper registry in use.
func (o *Orchestrator) Registry() *taghelper.Registry {
	return o.registry
}

func (o *Orchestrator) source(ctx context.Context, req Request, view *taghelper.ViewContext) (string, error) {
	name := strings.TrimSpace(req.Template)
	if name == "" {
		return req.Fragment, nil
	}
	if o.templates == nil {
		return "", fmt.Errorf("orchestrator: template %q requested without a template engine", name)
	}

	data := pageData(view)
	for _, transformer := range o.transformers {
		if transformer == nil {
			continue
		}
		if err := transformer.Transform(ctx, view, data); err != nil {
			return "", fmt.Errorf("orchestrator: transform page data: %w", err)
		}
	}

	out, err := o.templates.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("orchestrator: render template %q: %w", name, err)
	}
	return out, nil
}

// pageData exposes the view to page templates: view values at the top level,
// the model as "model" and the principal as "user".
func pageData(view *taghelper.ViewContext) map[string]any {
	scope := view.Scope()
	data := make(map[string]any, len(scope.Values)+len(scope.Extras))
	maps.Copy(data, scope.Values)
	maps.Copy(data, scope.Extras)
	return data
}

func describe(req Request) string {
	if name := strings.TrimSpace(req.Template); name != "" {
		return fmt.Sprintf("template %q", name)
	}
	return "fragment"
}

func (o *Orchestrator) applyDefaults() {
	if o.metadata == nil {
		o.metadata = metadata.NewStructProvider()
	}
	if o.templates != nil {
		if o.services.Partials == nil {
			var opts []views.PartialsOption
			if len(o.searchPaths) > 0 {
				opts = append(opts, views.WithSearchPaths(o.searchPaths...))
			}
			o.services.Partials = views.NewPartials(o.templates, opts...)
		}
		if o.services.Generator == nil {
			o.services.Generator = views.NewGenerator(
				views.WithTemplates(o.templates),
				views.WithMetadata(o.metadata),
			)
		}
	}

	if o.registry == nil {
		registry, err := helpers.NewRegistry(o.services)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}

	o.processor = markup.New(o.registry,
		markup.WithEvaluator(o.evaluator),
		markup.WithMetadata(o.metadata),
	)
}
