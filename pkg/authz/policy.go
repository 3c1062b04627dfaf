package authz

import (
	"context"
	"strings"
)

// Requirement is one condition a policy checks. The resource is whatever the
// caller passed to Authorize, usually the page model.
type Requirement interface {
	Allowed(ctx context.Context, principal *Principal, resource any) (bool, error)
}

// RequirementFunc adapts a function into a Requirement.
type RequirementFunc func(ctx context.Context, principal *Principal, resource any) (bool, error)

// Allowed delegates to the underlying function.
func (fn RequirementFunc) Allowed(ctx context.Context, principal *Principal, resource any) (bool, error) {
	return fn(ctx, principal, resource)
}

// Policy is a named set of requirements that must all pass.
type Policy struct {
	Name         string
	Requirements []Requirement
}

// NewPolicy builds a policy from requirements.
func NewPolicy(name string, requirements ...Requirement) Policy {
	return Policy{Name: strings.TrimSpace(name), Requirements: requirements}
}

// Evaluate checks every requirement in order and stops at the first denial.
func (p Policy) Evaluate(ctx context.Context, principal *Principal, resource any) (bool, error) {
	for _, requirement := range p.Requirements {
		if requirement == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
		ok, err := requirement.Allowed(ctx, principal, resource)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// RequireAuthenticatedUser passes for signed-in principals only.
func RequireAuthenticatedUser() Requirement {
	return RequirementFunc(func(_ context.Context, principal *Principal, _ any) (bool, error) {
		return principal.IsAuthenticated(), nil
	})
}

// RequireRole passes when the principal is in any of roles.
func RequireRole(roles ...string) Requirement {
	return RequirementFunc(func(_ context.Context, principal *Principal, _ any) (bool, error) {
		for _, role := range roles {
			if principal.IsInRole(role) {
				return true, nil
			}
		}
		return false, nil
	})
}

// RequireClaim passes when the principal carries claim with one of allowed
// values (any value when none are listed).
func RequireClaim(claim string, allowed ...string) Requirement {
	return RequirementFunc(func(_ context.Context, principal *Principal, _ any) (bool, error) {
		return principal.HasClaim(claim, allowed...), nil
	})
}

// RequireAssertion wraps an arbitrary check.
func RequireAssertion(fn func(principal *Principal, resource any) bool) Requirement {
	return RequirementFunc(func(_ context.Context, principal *Principal, resource any) (bool, error) {
		if fn == nil {
			return false, nil
		}
		return fn(principal, resource), nil
	})
}
