// Package orchestrator wires the page template → tag helper pipeline: a page
// is rendered by the template engine, then every element carrying helper
// attributes is processed by the registered tag helpers before the markup is
// returned.
package orchestrator
