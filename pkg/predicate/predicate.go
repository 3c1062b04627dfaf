// Package predicate defines how boolean helper attributes such as asp-if,
// asp-enabled and asp-class-if-* are evaluated when their value is an
// expression rather than a literal.
package predicate

// Evaluator resolves a predicate expression to a boolean using the supplied
// scope. The attribute name is passed for diagnostics only.
type Evaluator interface {
	Eval(attribute, expression string, scope Scope) (bool, error)
}

// Scope carries the inputs an Evaluator may read. Values typically holds the
// page view data plus the model under the "model" key, while Extras carries
// request information such as the current user.
type Scope struct {
	Values map[string]any
	Extras map[string]any
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(attribute, expression string, scope Scope) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(attribute, expression string, scope Scope) (bool, error) {
	return fn(attribute, expression, scope)
}
