package taghelper

import (
	"context"
	"math"
)

// Well-known helper orders. Lower values run earlier.
const (
	OrderDatalist      = -1000
	OrderIf            = -100
	OrderAuthz         = -10
	OrderDefault       = 0
	OrderRenderPartial = math.MaxInt32
)

// Helper processes one element. Process may mutate out; it must consult
// IsSuppressed before producing content.
type Helper interface {
	Order() int
	Process(ctx context.Context, tc *Context, out *Output) error
}

// HelperFunc adapts a function into a Helper with OrderDefault.
type HelperFunc func(ctx context.Context, tc *Context, out *Output) error

// Order implements Helper.
func (fn HelperFunc) Order() int { return OrderDefault }

// Process implements Helper.
func (fn HelperFunc) Process(ctx context.Context, tc *Context, out *Output) error {
	return fn(ctx, tc, out)
}
