// Package template defines the engine contract used to render partial views
// and display/editor templates. The gotemplate subpackage provides the
// pongo2-backed implementation.
package template
