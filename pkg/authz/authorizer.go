// Package authz provides the authorization service the asp-authz helper
// consults: a principal model, composable policy requirements, and a
// registry-backed Authorizer.
package authz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownPolicy is returned when Authorize is asked for a policy that was
// never registered.
var ErrUnknownPolicy = errors.New("authz: unknown policy")

// Authorizer decides whether principal satisfies the named policy for
// resource.
type Authorizer interface {
	Authorize(ctx context.Context, principal *Principal, resource any, policy string) (bool, error)
}

// AuthorizerFunc adapts a function into an Authorizer.
type AuthorizerFunc func(ctx context.Context, principal *Principal, resource any, policy string) (bool, error)

// Authorize delegates to the underlying function.
func (fn AuthorizerFunc) Authorize(ctx context.Context, principal *Principal, resource any, policy string) (bool, error) {
	return fn(ctx, principal, resource, policy)
}

// PolicyAuthorizer stores named policies. Lookups are case-insensitive.
type PolicyAuthorizer struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewPolicyAuthorizer constructs an authorizer seeded with policies.
func NewPolicyAuthorizer(policies ...Policy) (*PolicyAuthorizer, error) {
	a := &PolicyAuthorizer{policies: make(map[string]Policy)}
	for _, policy := range policies {
		if err := a.Add(policy); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Add registers policy. Duplicate names are rejected.
func (a *PolicyAuthorizer) Add(policy Policy) error {
	key := normalizeName(policy.Name)
	if key == "" {
		return errors.New("authz: policy name must not be empty")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, exists := a.policies[key]; exists {
		return fmt.Errorf("authz: policy %q already registered", policy.Name)
	}
	a.policies[key] = policy
	return nil
}

// Has reports whether a policy with the given name exists.
func (a *PolicyAuthorizer) Has(name string) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.policies[normalizeName(name)]
	return ok
}

// List returns the registered policy names sorted alphabetically.
func (a *PolicyAuthorizer) List() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	names := make([]string, 0, len(a.policies))
	for _, policy := range a.policies {
		names = append(names, policy.Name)
	}
	sort.Strings(names)
	return names
}

// Authorize evaluates the named policy.
func (a *PolicyAuthorizer) Authorize(ctx context.Context, principal *Principal, resource any, policy string) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	a.mu.RLock()
	p, ok := a.policies[normalizeName(policy)]
	a.mu.RUnlock()
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
	allowed, err := p.Evaluate(ctx, principal, resource)
	if err != nil {
		return false, fmt.Errorf("authz: policy %q: %w", p.Name, err)
	}
	return allowed, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
