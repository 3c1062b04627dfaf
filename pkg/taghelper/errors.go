package taghelper

import "errors"

var (
	// ErrNilContext is returned by Process when the element context is nil.
	ErrNilContext = errors.New("taghelper: nil element context")
	// ErrNilOutput is returned by Process when the output is nil.
	ErrNilOutput = errors.New("taghelper: nil output")
	// ErrNilView is returned by helpers that require a ViewContext.
	ErrNilView = errors.New("taghelper: nil view context")
)

// CheckArgs validates the arguments every Process implementation receives.
func CheckArgs(tc *Context, out *Output) error {
	if tc == nil {
		return ErrNilContext
	}
	if out == nil {
		return ErrNilOutput
	}
	return nil
}
