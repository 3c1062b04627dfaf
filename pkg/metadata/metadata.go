// Package metadata describes model properties for display purposes: labels,
// descriptions, prompts and template hints. Helpers such as
// asp-description-for and asp-display-name-for resolve a model expression
// through a Provider and render what it reports.
package metadata

import (
	"reflect"
	"strings"
)

// Metadata is the display information attached to one model property.
type Metadata struct {
	// PropertyName is the Go field name (or map key) of the last path segment.
	PropertyName string
	// DisplayName is the human label. Empty when none was declared.
	DisplayName  string
	Description  string
	Prompt       string
	DataType     string
	TemplateHint string
	Required     bool
	// ContainerType is the Go type name that declares the property.
	ContainerType string
	// Type is the declared Go type, nil for dynamic map values.
	Type reflect.Type
}

// Label returns the display name, falling back to the property name.
func (m Metadata) Label() string {
	if strings.TrimSpace(m.DisplayName) != "" {
		return m.DisplayName
	}
	return m.PropertyName
}

// Expression is a resolved model expression: the path a helper was bound to,
// the metadata for its final segment, and the value found at that path (nil
// when an intermediate value was nil).
type Expression struct {
	Name     string
	Metadata Metadata
	Model    any
}

// FieldID converts the expression path into an id suitable for HTML, e.g.
// "Orders[0].Total" becomes "Orders_0__Total".
func (e Expression) FieldID() string {
	replacer := strings.NewReplacer(".", "_", "[", "_", "]", "_")
	return replacer.Replace(e.Name)
}

// FieldName is the HTML form field name for the expression.
func (e Expression) FieldName() string {
	return e.Name
}

// Provider resolves model expressions into metadata.
type Provider interface {
	ForExpression(model any, expression string) (Expression, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(model any, expression string) (Expression, error)

// ForExpression delegates to the underlying function.
func (fn ProviderFunc) ForExpression(model any, expression string) (Expression, error) {
	return fn(model, expression)
}
