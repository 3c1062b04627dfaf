package taghelper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/metadata"
	"github.com/goliatone/go-taghelpers/pkg/predicate"
	"github.com/goliatone/go-taghelpers/pkg/predicate/expr"
)

// Binding gives a Factory typed access to the element's attributes and the
// request's view state.
type Binding struct {
	tc        *Context
	view      *ViewContext
	evaluator predicate.Evaluator
	metadata  metadata.Provider
}

// NewBinding constructs a Binding. Nil collaborators fall back to the
// expression evaluator and the struct-tag metadata provider.
func NewBinding(tc *Context, view *ViewContext, evaluator predicate.Evaluator, provider metadata.Provider) *Binding {
	if evaluator == nil {
		evaluator = expr.New()
	}
	if provider == nil {
		provider = defaultProvider
	}
	return &Binding{tc: tc, view: view, evaluator: evaluator, metadata: provider}
}

var defaultProvider = metadata.NewStructProvider()

// Context returns the element context.
func (b *Binding) Context() *Context { return b.tc }

// View returns the request view context, which may be nil.
func (b *Binding) View() *ViewContext { return b.view }

// Has reports whether the element carries name.
func (b *Binding) Has(name string) bool {
	return b.tc != nil && b.tc.attributes.ContainsName(name)
}

// String returns the raw attribute value.
func (b *Binding) String(name string) string {
	if b.tc == nil {
		return ""
	}
	return b.tc.attributes.Value(name)
}

// Bool interprets name as a boolean. An absent attribute yields def, a
// valueless attribute is true, "true"/"false" are literals, and anything else
// is evaluated as a predicate expression against the view.
func (b *Binding) Bool(name string, def bool) (bool, error) {
	attr, ok := b.attr(name)
	if !ok {
		return def, nil
	}
	return b.boolValue(attr)
}

// Prefixed returns the attributes starting with prefix in document order,
// with the prefix stripped from each name.
func (b *Binding) Prefixed(prefix string) []Attribute {
	if b.tc == nil {
		return nil
	}
	var out []Attribute
	for _, attr := range b.tc.attributes.WithPrefix(prefix) {
		suffix := attr.Name[len(prefix):]
		if suffix == "" {
			continue
		}
		out = append(out, Attribute{Name: suffix, Value: attr.Value})
	}
	return out
}

// PrefixedBool evaluates every prefixed attribute as a boolean.
func (b *Binding) PrefixedBool(prefix string) ([]Toggle, error) {
	pairs := b.Prefixed(prefix)
	out := make([]Toggle, 0, len(pairs))
	for _, pair := range pairs {
		on, err := b.boolValue(Attribute{Name: prefix + pair.Name, Value: pair.Value})
		if err != nil {
			return nil, err
		}
		out = append(out, Toggle{Name: pair.Name, On: on})
	}
	return out, nil
}

// Toggle is a named boolean, e.g. one asp-class-if-* entry.
type Toggle struct {
	Name string
	On   bool
}

// Expression resolves the attribute value as a model expression relative to
// the view's model.
func (b *Binding) Expression(name string) (metadata.Expression, error) {
	path := strings.TrimSpace(b.String(name))
	if path == "" {
		return metadata.Expression{}, fmt.Errorf("taghelper: attribute %q requires a model expression", name)
	}
	if b.view == nil {
		return metadata.Expression{}, fmt.Errorf("taghelper: attribute %q: %w", name, ErrNilView)
	}
	return b.metadata.ForExpression(b.view.Model, path)
}

// Value looks up the attribute value as a path into the view data. "model"
// addresses the page model.
func (b *Binding) Value(name string) (any, bool) {
	path := strings.TrimSpace(b.String(name))
	if path == "" || b.view == nil {
		return nil, false
	}
	return expr.Resolve(b.view.Scope().Values, path)
}

func (b *Binding) attr(name string) (Attribute, bool) {
	if b.tc == nil {
		return Attribute{}, false
	}
	return b.tc.attributes.Get(name)
}

func (b *Binding) boolValue(attr Attribute) (bool, error) {
	raw := strings.TrimSpace(attr.Value)
	if raw == "" {
		return true, nil
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v, nil
	}
	v, err := b.evaluator.Eval(attr.Name, raw, b.view.Scope())
	if err != nil {
		return false, fmt.Errorf("taghelper: %w", err)
	}
	return v, nil
}
