// Package markdown converts markdown bodies into HTML for the <markdown>
// helper.
//
// Conversion is CommonMark via goldmark. Embedded HTML is escaped and
// rendered as text unless AllowHTML is set, in which case it passes through
// and the whole result is sanitised against a fixed allow-list. Bodies that
// are indented to line up with the surrounding template are normalised
// first so they are not mistaken for indented code blocks.
package markdown
