package taghelper

import (
	"sync"

	"github.com/goliatone/go-taghelpers/pkg/authz"
	"github.com/goliatone/go-taghelpers/pkg/predicate"
)

// ViewContext carries per-request rendering state. It may be shared by
// elements processed concurrently; the authorization cache is guarded.
type ViewContext struct {
	Model     any
	Values    map[string]any
	Principal *authz.Principal
	// PathBase is the request's mount prefix, e.g. "/app".
	PathBase string

	mu    sync.Mutex
	authz map[string]bool
}

// NewViewContext builds a ViewContext for model.
func NewViewContext(model any, values map[string]any, principal *authz.Principal) *ViewContext {
	if principal == nil {
		principal = authz.Anonymous()
	}
	return &ViewContext{Model: model, Values: values, Principal: principal}
}

// Authorization returns a memoised authorization result.
func (v *ViewContext) Authorization(key string) (allowed, ok bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	allowed, ok = v.authz[key]
	return allowed, ok
}

// StoreAuthorization memoises an authorization result for the rest of the
// request.
func (v *ViewContext) StoreAuthorization(key string, allowed bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.authz == nil {
		v.authz = make(map[string]bool)
	}
	v.authz[key] = allowed
}

// Scope exposes the view data to predicate expressions. The model is
// available as "model" and the principal as "user" in Extras.
func (v *ViewContext) Scope() predicate.Scope {
	if v == nil {
		return predicate.Scope{}
	}
	values := make(map[string]any, len(v.Values)+1)
	for k, val := range v.Values {
		values[k] = val
	}
	if _, exists := values["model"]; !exists {
		values["model"] = v.Model
	}

	principal := v.Principal
	if principal == nil {
		principal = authz.Anonymous()
	}
	return predicate.Scope{
		Values: values,
		Extras: map[string]any{
			"user": map[string]any{
				"name":          principal.Name,
				"authenticated": principal.Authenticated,
				"roles":         principal.Roles,
				"claims":        principal.Claims,
			},
		},
	}
}
