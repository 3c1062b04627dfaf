package authz

import "strings"

// Principal describes the user a view is rendered for.
type Principal struct {
	Name          string
	Authenticated bool
	Roles         []string
	Claims        map[string]string
}

// Anonymous returns an unauthenticated principal.
func Anonymous() *Principal {
	return &Principal{}
}

// IsAuthenticated reports whether p represents a signed-in user. A nil
// principal is anonymous.
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.Authenticated
}

// IsInRole reports whether p carries role. Comparison is case-insensitive.
func (p *Principal) IsInRole(role string) bool {
	if p == nil {
		return false
	}
	role = strings.TrimSpace(role)
	for _, candidate := range p.Roles {
		if strings.EqualFold(candidate, role) {
			return true
		}
	}
	return false
}

// HasClaim reports whether p carries the claim. With no allowed values any
// value matches; otherwise one must match exactly.
func (p *Principal) HasClaim(claim string, allowed ...string) bool {
	if p == nil || p.Claims == nil {
		return false
	}
	value, ok := p.Claims[claim]
	if !ok {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}
