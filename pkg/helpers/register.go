// Package helpers is the tag helper pack: conditional rendering,
// authorization, class toggles, model metadata, display and editor
// templates, partial views, markdown and script inlining.
//
// Register wires every helper into a taghelper.Registry. Each helper is
// also an exported type so it can be driven directly.
package helpers

import (
	"fmt"
	"io/fs"

	"github.com/goliatone/go-taghelpers/pkg/authz"
	"github.com/goliatone/go-taghelpers/pkg/markdown"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
	"github.com/goliatone/go-taghelpers/pkg/views"
)

// Services are the collaborators helpers depend on. Nil members disable the
// helpers that need them: they fail when used, except WebRoot, whose absence
// makes script inlining a no-op.
type Services struct {
	Authorizer authz.Authorizer
	Partials   *views.Partials
	Generator  *views.Generator
	Markdown   *markdown.Renderer
	WebRoot    fs.FS
}

func (s Services) withDefaults() Services {
	if s.Generator == nil {
		s.Generator = views.NewGenerator()
	}
	if s.Markdown == nil {
		s.Markdown = markdown.New()
	}
	return s
}

// Descriptors returns the descriptor of every helper in the pack, in
// registration order.
func Descriptors(svc Services) []taghelper.Descriptor {
	svc = svc.withDefaults()
	return []taghelper.Descriptor{
		ifDescriptor(),
		authzDescriptor(svc),
		classIfDescriptor(),
		enabledDescriptor(),
		descriptionForDescriptor(),
		displayNameForDescriptor(svc),
		displayNameDescriptor(svc),
		displayForDescriptor(svc),
		displayDescriptor(svc),
		editorForDescriptor(svc),
		editorDescriptor(svc),
		labelTitleDescriptor(),
		labelForDescriptor(svc),
		datalistDescriptor(),
		partialDescriptor(svc),
		renderPartialDescriptor(svc),
		markdownDescriptor(svc),
		scriptInliningDescriptor(svc),
	}
}

// Register adds the pack to reg.
func Register(reg *taghelper.Registry, svc Services) error {
	if reg == nil {
		return fmt.Errorf("helpers: nil registry")
	}
	for _, desc := range Descriptors(svc) {
		if err := reg.Register(desc); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the whole pack.
func NewRegistry(svc Services) (*taghelper.Registry, error) {
	reg := taghelper.NewRegistry()
	if err := Register(reg, svc); err != nil {
		return nil, err
	}
	return reg, nil
}

// guard validates the arguments and reports whether the element is still
// live. A false result with a nil error means the element was suppressed.
func guard(helper string, tc *taghelper.Context, out *taghelper.Output) (bool, error) {
	if err := taghelper.CheckArgs(tc, out); err != nil {
		return false, fmt.Errorf("helpers: %s: %w", helper, err)
	}
	return !taghelper.IsSuppressed(tc), nil
}

func checkArgs(helper string, tc *taghelper.Context, out *taghelper.Output) error {
	if err := taghelper.CheckArgs(tc, out); err != nil {
		return fmt.Errorf("helpers: %s: %w", helper, err)
	}
	return nil
}

func anyTag(attrs ...string) taghelper.Target {
	return taghelper.Target{Tag: taghelper.AnyTag, Attributes: attrs}
}
