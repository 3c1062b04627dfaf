package authz

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func adminPolicy() Policy {
	return NewPolicy("AdminPolicy",
		RequireAuthenticatedUser(),
		RequireClaim("IsAdmin", "true"),
	)
}

func permissionPolicy() Policy {
	standard := []string{"ViewUsers"}
	admin := []string{"ViewUsers", "ManageUsers"}
	return NewPolicy("PermissionPolicy",
		RequireAuthenticatedUser(),
		RequireAssertion(func(principal *Principal, resource any) bool {
			permission, _ := resource.(string)
			if principal.IsInRole("admin") {
				return slices.Contains(admin, permission)
			}
			return slices.Contains(standard, permission)
		}),
	)
}

func TestPolicyAuthorizerEvaluatesRequirements(t *testing.T) {
	t.Parallel()

	authorizer, err := NewPolicyAuthorizer(adminPolicy(), permissionPolicy())
	if err != nil {
		t.Fatalf("NewPolicyAuthorizer: %v", err)
	}

	admin := &Principal{
		Name:          "AdminUser",
		Authenticated: true,
		Roles:         []string{"admin"},
		Claims:        map[string]string{"IsAdmin": "true"},
	}
	user := &Principal{Name: "StandardUser", Authenticated: true}

	cases := []struct {
		name      string
		principal *Principal
		resource  any
		policy    string
		want      bool
	}{
		{"admin passes admin policy", admin, nil, "AdminPolicy", true},
		{"policy names are case-insensitive", admin, nil, "adminpolicy", true},
		{"user fails admin policy", user, nil, "AdminPolicy", false},
		{"anonymous fails admin policy", Anonymous(), nil, "AdminPolicy", false},
		{"nil principal fails admin policy", nil, nil, "AdminPolicy", false},
		{"admin can manage users", admin, "ManageUsers", "PermissionPolicy", true},
		{"user can view users", user, "ViewUsers", "PermissionPolicy", true},
		{"user cannot manage users", user, "ManageUsers", "PermissionPolicy", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := authorizer.Authorize(context.Background(), tc.principal, tc.resource, tc.policy)
			if err != nil {
				t.Fatalf("Authorize: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPolicyAuthorizerUnknownPolicy(t *testing.T) {
	t.Parallel()

	authorizer, err := NewPolicyAuthorizer()
	if err != nil {
		t.Fatalf("NewPolicyAuthorizer: %v", err)
	}
	_, err = authorizer.Authorize(context.Background(), Anonymous(), nil, "Missing")
	if !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestPolicyAuthorizerRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := NewPolicyAuthorizer(adminPolicy(), NewPolicy("adminpolicy"))
	if err == nil {
		t.Fatalf("expected duplicate policy error")
	}
	if _, err := NewPolicyAuthorizer(NewPolicy("  ")); err == nil {
		t.Fatalf("expected empty name error")
	}
}

func TestPolicyAuthorizerHonoursCancellation(t *testing.T) {
	t.Parallel()

	authorizer, err := NewPolicyAuthorizer(adminPolicy())
	if err != nil {
		t.Fatalf("NewPolicyAuthorizer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := authorizer.Authorize(ctx, &Principal{Authenticated: true}, nil, "AdminPolicy")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ok {
		t.Fatalf("expected denial on cancellation")
	}
}

func TestPrincipalRolesAndClaims(t *testing.T) {
	t.Parallel()

	p := &Principal{Roles: []string{"Editor"}, Claims: map[string]string{"tier": "gold"}}
	if !p.IsInRole("editor") {
		t.Fatalf("expected case-insensitive role match")
	}
	if p.IsInRole("admin") {
		t.Fatalf("unexpected role match")
	}
	if !p.HasClaim("tier") || !p.HasClaim("tier", "silver", "gold") {
		t.Fatalf("expected claim match")
	}
	if p.HasClaim("tier", "silver") {
		t.Fatalf("unexpected claim value match")
	}
	if got := authorizerNames(t); !slices.Equal(got, []string{"AdminPolicy", "PermissionPolicy"}) {
		t.Fatalf("unexpected policy list %v", got)
	}
}

func authorizerNames(t *testing.T) []string {
	t.Helper()
	a, err := NewPolicyAuthorizer(permissionPolicy(), adminPolicy())
	if err != nil {
		t.Fatalf("NewPolicyAuthorizer: %v", err)
	}
	return a.List()
}
