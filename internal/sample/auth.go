package sample

import (
	"net/http"
	"slices"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/authz"
)

// AuthenticateFunc resolves the principal for a request.
type AuthenticateFunc func(r *http.Request) *authz.Principal

// QueryAuth authenticates from the "auth" query parameter; see PrincipalFor.
func QueryAuth(r *http.Request) *authz.Principal {
	if r == nil || r.URL == nil {
		return authz.Anonymous()
	}
	return PrincipalFor(r.URL.Query().Get("auth"))
}

// PrincipalFor maps an auth mode to a principal: "admin" signs in
// AdminUser, any other value StandardUser, and an empty mode is anonymous.
func PrincipalFor(mode string) *authz.Principal {
	mode = strings.TrimSpace(mode)
	switch {
	case mode == "":
		return authz.Anonymous()
	case strings.EqualFold(mode, "admin"):
		return &authz.Principal{
			Name:          "AdminUser",
			Authenticated: true,
			Roles:         []string{"admin"},
			Claims:        map[string]string{"Name": "AdminUser", "IsAdmin": "true"},
		}
	default:
		return &authz.Principal{
			Name:          "StandardUser",
			Authenticated: true,
			Roles:         []string{"standard"},
			Claims:        map[string]string{"Name": "StandardUser"},
		}
	}
}

var (
	standardPermissions = []string{"ViewUsers"}
	adminPermissions    = []string{"ViewUsers", "ManageUsers"}
)

// AdminPolicy admits authenticated users carrying IsAdmin=true.
func AdminPolicy() authz.Policy {
	return authz.NewPolicy("AdminPolicy",
		authz.RequireAuthenticatedUser(),
		authz.RequireClaim("IsAdmin", "true"),
		authz.RequireAssertion(func(_ *authz.Principal, resource any) bool {
			return resource != nil
		}),
	)
}

// PermissionPolicy checks the permission passed as the resource against the
// user's role.
func PermissionPolicy() authz.Policy {
	return authz.NewPolicy("PermissionPolicy",
		authz.RequireAuthenticatedUser(),
		authz.RequireAssertion(func(principal *authz.Principal, resource any) bool {
			permission, _ := resource.(string)
			if principal.IsInRole("admin") {
				return slices.Contains(adminPermissions, permission)
			}
			return slices.Contains(standardPermissions, permission)
		}),
	)
}

// NewAuthorizer returns an authorizer holding the sample policies.
func NewAuthorizer() (*authz.PolicyAuthorizer, error) {
	return authz.NewPolicyAuthorizer(AdminPolicy(), PermissionPolicy())
}
