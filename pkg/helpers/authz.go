package helpers

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-taghelpers/pkg/authz"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

const (
	attrAuthz           = "asp-authz"
	attrAuthzPolicy     = "asp-authz-policy"
	attrAuthzRole       = "asp-authz-role"
	attrAuthzPermission = "asp-authz-permission"
)

// ErrNoAuthorizer is returned when a policy check is requested but no
// Authorizer was configured.
var ErrNoAuthorizer = errors.New("helpers: no authorizer configured")

// Authz suppresses the element unless the request principal satisfies the
// configured authentication, policy or role requirement.
//
// Policy results are memoised on the ViewContext for the rest of the
// request, keyed by policy (and permission).
type Authz struct {
	Authorizer authz.Authorizer
	View       *taghelper.ViewContext

	RequiresAuthentication bool
	Policy                 string
	Role                   string
	Permission             string
}

func authzDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name: "authz",
		Targets: []taghelper.Target{
			anyTag(attrAuthz),
			anyTag(attrAuthzPolicy),
			anyTag(attrAuthzRole),
			anyTag(attrAuthzPermission),
		},
		Bound: []string{attrAuthz, attrAuthzPolicy, attrAuthzRole, attrAuthzPermission},
		Order: taghelper.OrderAuthz,
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			required, err := b.Bool(attrAuthz, false)
			if err != nil {
				return nil, err
			}
			return &Authz{
				Authorizer:             svc.Authorizer,
				View:                   b.View(),
				RequiresAuthentication: required,
				Policy:                 b.String(attrAuthzPolicy),
				Role:                   b.String(attrAuthzRole),
				Permission:             b.String(attrAuthzPermission),
			}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *Authz) Order() int { return taghelper.OrderAuthz }

// Process implements taghelper.Helper.
func (h *Authz) Process(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard(attrAuthz, tc, out); !ok {
		return err
	}
	if h.View == nil {
		return fmt.Errorf("helpers: %s: %w", attrAuthz, taghelper.ErrNilView)
	}

	user := h.View.Principal
	if user == nil {
		user = authz.Anonymous()
	}
	requiresAuth := h.RequiresAuthentication || h.Policy != "" || h.Role != ""

	var show bool
	switch {
	case tc.AllAttributes().ContainsName(attrAuthz) && !requiresAuth && !user.IsAuthenticated():
		// asp-authz="false" for an anonymous user
		show = true
	case h.Policy != "":
		allowed, err := h.authorizePolicy(ctx, user)
		if err != nil {
			return err
		}
		show = allowed
	case h.Role != "":
		show = user.IsInRole(h.Role)
	case requiresAuth && user.IsAuthenticated():
		show = true
	}

	if !show {
		out.SuppressOutput()
		taghelper.SetSuppressed(tc)
	}
	return nil
}

func (h *Authz) authorizePolicy(ctx context.Context, user *authz.Principal) (bool, error) {
	key := attrAuthzPolicy + "." + h.Policy
	var resource any = h.View.Model
	if h.Permission != "" {
		key = attrAuthzPermission + "." + h.Policy + "." + h.Permission
		resource = h.Permission
	}
	if allowed, ok := h.View.Authorization(key); ok {
		return allowed, nil
	}
	if h.Authorizer == nil {
		return false, fmt.Errorf("%w for policy %q", ErrNoAuthorizer, h.Policy)
	}
	allowed, err := h.Authorizer.Authorize(ctx, user, resource, h.Policy)
	if err != nil {
		return false, fmt.Errorf("helpers: %s %q: %w", attrAuthzPolicy, h.Policy, err)
	}
	h.View.StoreAuthorization(key, allowed)
	return allowed, nil
}
