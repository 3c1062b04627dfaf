// Package taghelper defines the element-processing model shared by every tag
// helper: the per-element Context with its Items store, the Output a helper
// mutates, the per-request ViewContext, and the Registry that selects and
// orders helpers for an element.
//
// Helpers bound to the same element cooperate through the suppression
// marker. A helper that decides the element must not render calls
// Output.SuppressOutput and SetSuppressed; helpers running later check
// IsSuppressed before producing content so suppressed output is never
// resurrected. Ordering is deterministic: lower Order values run first and
// ties keep registration order.
package taghelper

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'taghelpers'.
func tracer() tracing.Trace {
	return tracing.Select("taghelpers")
}
