// Package taghelpers is the top-level entry point for the tag helper pack:
// it re-exports the orchestrator and the per-request types so a caller can
// render pages without importing the pkg/ tree.
package taghelpers

import (
	"context"

	"github.com/goliatone/go-taghelpers/pkg/authz"
	"github.com/goliatone/go-taghelpers/pkg/orchestrator"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

// ViewContext aliases taghelper.ViewContext, the per-request rendering state.
type ViewContext = taghelper.ViewContext

// Principal aliases authz.Principal.
type Principal = authz.Principal

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewViewContext builds the view state for one request. A nil principal is
// anonymous.
func NewViewContext(model any, values map[string]any, principal *Principal) *ViewContext {
	return taghelper.NewViewContext(model, values, principal)
}

// Render processes fragment with the default helper pack and returns the
// resulting markup. Helpers that need templates, an authorizer or a web root
// fail or no-op; use NewOrchestrator to supply them.
func Render(ctx context.Context, fragment string, view *ViewContext) (string, error) {
	output, err := orchestrator.New().Generate(ctx, orchestrator.Request{Fragment: fragment, View: view})
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// GenerateHTML renders the named page template with the supplied options.
func GenerateHTML(ctx context.Context, template string, view *ViewContext, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{Template: template, View: view})
}
