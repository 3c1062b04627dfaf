package sample

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/authz"
	"github.com/goliatone/go-taghelpers/pkg/orchestrator"
	"github.com/goliatone/go-taghelpers/pkg/render/template/gotemplate"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

// Component bundles the sample's template engine, helper pipeline and
// configuration.
type Component struct {
	opts   Options
	engine *gotemplate.Engine
	gen    *orchestrator.Orchestrator
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) (*Component, error) {
	return NewWithOptions(NewOptions(fns...))
}

// NewWithOptions constructs a component from a pre-built Options value.
func NewWithOptions(opts Options) (*Component, error) {
	opts = NewOptions(func(o *Options) { *o = opts })

	var engineOpts []gotemplate.Option
	if opts.TemplatesDir != "" {
		engineOpts = append(engineOpts, gotemplate.WithBaseDir(opts.TemplatesDir))
	} else {
		engineOpts = append(engineOpts, gotemplate.WithFS(opts.Templates))
	}
	engine, err := gotemplate.New(engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("sample: template engine: %w", err)
	}

	authorizer, err := NewAuthorizer()
	if err != nil {
		return nil, fmt.Errorf("sample: authorizer: %w", err)
	}

	genOpts := []orchestrator.Option{
		orchestrator.WithTemplates(engine),
		orchestrator.WithAuthorizer(authorizer),
		orchestrator.WithWebRoot(opts.WebRoot),
	}
	if len(strings.TrimSpace(string(opts.Preset))) > 0 {
		preset, err := orchestrator.NewPresetTransformer(opts.Preset)
		if err != nil {
			return nil, fmt.Errorf("sample: %w", err)
		}
		genOpts = append(genOpts, orchestrator.WithTransformers(preset))
	}

	return &Component{
		opts:   opts,
		engine: engine,
		gen:    orchestrator.New(genOpts...),
	}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the net/http handler serving pages and static files.
func (c *Component) Handler() http.Handler {
	return newHandler(c)
}

// RegisterRoutes registers the component handler under its path base on mux.
func (c *Component) RegisterRoutes(mux Mux) (string, error) {
	if c == nil {
		return "", errors.New("sample: nil component")
	}
	return registerRoutes(mux, c.opts.PathBase, c.Handler())
}

// Watch resets the template cache whenever a file under TemplatesDir
// changes. It blocks until ctx is done. Embedded templates are never
// watched.
func (c *Component) Watch(ctx context.Context, onChange func(name string)) error {
	if c.opts.TemplatesDir == "" {
		return errors.New("sample: watch requires a templates directory")
	}
	return c.engine.Watch(ctx, c.opts.TemplatesDir, onChange)
}

// HasPage reports whether name is a renderable page. Partials, layouts and
// display/editor templates live in subdirectories and are not pages.
func (c *Component) HasPage(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\.`) || strings.HasPrefix(name, "_") {
		return false
	}
	return c.engine.Exists(name)
}

// RenderPage renders page for principal.
func (c *Component) RenderPage(ctx context.Context, page string, principal *authz.Principal) ([]byte, error) {
	if !c.HasPage(page) {
		return nil, StatusError{Code: http.StatusNotFound, Err: fmt.Errorf("sample: page %q not found", page)}
	}
	return c.gen.Generate(ctx, orchestrator.Request{Template: page, View: c.newView(principal)})
}

func (c *Component) newView(principal *authz.Principal) *taghelper.ViewContext {
	view := taghelper.NewViewContext(NewCustomer(), map[string]any{
		"countries": c.opts.Countries,
		"path_base": c.opts.PathBase,
	}, principal)
	view.PathBase = c.opts.PathBase
	return view
}
