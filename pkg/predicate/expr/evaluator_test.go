package expr

import (
	"strings"
	"testing"

	"github.com/goliatone/go-taghelpers/pkg/predicate"
)

type customer struct {
	FirstName string
	IsActive  bool
	Orders    []order
	Address   *address
}

type order struct {
	Total float64
}

type address struct {
	Country string
}

func TestEvaluatorLiterals(t *testing.T) {
	t.Parallel()

	eval := New()
	cases := map[string]bool{
		"true":  true,
		"FALSE": false,
		"null":  false,
		"0":     false,
		"1":     true,
		`"x"`:   true,
		`''`:    false,
		"":      false,
		"   ":   false,
	}
	for expression, want := range cases {
		got, err := eval.Eval("asp-if", expression, predicate.Scope{})
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", expression, err)
		}
		if got != want {
			t.Fatalf("Eval(%q): expected %v, got %v", expression, want, got)
		}
	}
}

func TestEvaluatorBooleanComparison(t *testing.T) {
	t.Parallel()

	eval := New()

	ok, err := eval.Eval("asp-if", "enabled == true", predicate.Scope{
		Values: map[string]any{"enabled": "true"},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for string true")
	}

	ok, err = eval.Eval("asp-if", "!enabled", predicate.Scope{
		Values: map[string]any{"enabled": false},
	})
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true for !false")
	}
}

func TestEvaluatorStructLookup(t *testing.T) {
	t.Parallel()

	eval := New()
	scope := predicate.Scope{
		Values: map[string]any{
			"model": &customer{
				FirstName: "Ada",
				IsActive:  true,
				Orders:    []order{{Total: 12.5}},
				Address:   &address{Country: "UK"},
			},
		},
	}

	cases := []struct {
		expression string
		want       bool
	}{
		{"model.IsActive", true},
		{"model.isactive", true},
		{`model.FirstName == "Ada"`, true},
		{`model.Address.Country != "UK"`, false},
		{"model.Orders", true},
		{"model.Orders.0.Total == 12.5", true},
		{"model.Orders.3.Total", false},
		{"model.Missing", false},
		{"model.Missing == null", true},
	}
	for _, tc := range cases {
		got, err := eval.Eval("asp-if", tc.expression, scope)
		if err != nil {
			t.Fatalf("Eval(%q) returned error: %v", tc.expression, err)
		}
		if got != tc.want {
			t.Fatalf("Eval(%q): expected %v, got %v", tc.expression, tc.want, got)
		}
	}
}

func TestEvaluatorExtrasFallback(t *testing.T) {
	t.Parallel()

	eval := New()
	scope := predicate.Scope{
		Values: map[string]any{"role": "viewer"},
		Extras: map[string]any{
			"role": "admin",
			"user": map[string]any{"authenticated": true},
		},
	}

	ok, err := eval.Eval("asp-if", `role == "viewer" && extras.role == "admin"`, scope)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected values to shadow extras unless prefixed")
	}

	ok, err = eval.Eval("asp-if", "user.authenticated", scope)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected extras fallback for user.authenticated")
	}
}

func TestEvaluatorComposition(t *testing.T) {
	t.Parallel()

	eval := New()
	scope := predicate.Scope{
		Values: map[string]any{"a": true, "b": false, "c": 3},
	}

	ok, err := eval.Eval("asp-if", "a && (b || c == 3) && !b", scope)
	if err != nil {
		t.Fatalf("Eval returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected composed expression to be true")
	}
}

func TestEvaluatorErrors(t *testing.T) {
	t.Parallel()

	eval := New()
	for _, expression := range []string{"a = 1", "a & b", "(a", `a == "open`, "a ==", "a b"} {
		_, err := eval.Eval("asp-if", expression, predicate.Scope{})
		if err == nil {
			t.Fatalf("expected error for %q", expression)
		}
		if !strings.Contains(err.Error(), "predicate/expr") {
			t.Fatalf("expected package prefix in error, got %v", err)
		}
		if !strings.Contains(err.Error(), `"asp-if"`) {
			t.Fatalf("expected attribute name in error, got %v", err)
		}
	}
}
