package taghelper

import (
	"html"
	"strings"
)

// Content is one of an Output's markup buffers. Text appended through Append
// and SetContent is HTML-escaped; the HTML variants are written verbatim.
type Content struct {
	b        strings.Builder
	modified bool
}

// Append escapes text and appends it.
func (c *Content) Append(text string) *Content {
	c.modified = true
	c.b.WriteString(html.EscapeString(text))
	return c
}

// AppendHTML appends markup without escaping.
func (c *Content) AppendHTML(markup string) *Content {
	c.modified = true
	c.b.WriteString(markup)
	return c
}

// SetContent replaces the buffer with escaped text.
func (c *Content) SetContent(text string) *Content {
	c.b.Reset()
	return c.Append(text)
}

// SetHTML replaces the buffer with markup.
func (c *Content) SetHTML(markup string) *Content {
	c.b.Reset()
	return c.AppendHTML(markup)
}

// Clear empties the buffer and marks it modified.
func (c *Content) Clear() *Content {
	c.b.Reset()
	c.modified = true
	return c
}

// IsModified reports whether anything wrote to the buffer, including Clear.
func (c *Content) IsModified() bool {
	return c.modified
}

// IsEmptyOrWhiteSpace reports whether the buffer holds only whitespace.
func (c *Content) IsEmptyOrWhiteSpace() bool {
	return strings.TrimSpace(c.b.String()) == ""
}

// String returns the buffered markup.
func (c *Content) String() string {
	return c.b.String()
}
