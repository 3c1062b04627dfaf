package metadata

import (
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type customer struct {
	ID        int
	FirstName string     `display:"First name" prompt:"Enter customer's first name" description:"The customer's first name." validate:"required,max=100"`
	LastName  string     `display:"Last name" description:"The customer's last name." validate:"required"`
	BirthDate *time.Time `display:"Birth date" description:"The customer's date of birth." datatype:"date"`
	Orders    []order
	Notes     map[string]any
	secret    string
}

type order struct {
	PlacedBy *customer `display:"Placed By" description:"The customer that placed the order."`
	Total    float64   `datatype:"currency" uihint:"money"`
}

var ignoreType = cmpopts.IgnoreFields(Metadata{}, "Type")

func TestStructProviderReadsTags(t *testing.T) {
	t.Parallel()

	p := NewStructProvider()
	expr, err := p.ForExpression(&customer{FirstName: "Ada"}, "FirstName")
	if err != nil {
		t.Fatalf("ForExpression: %v", err)
	}

	want := Metadata{
		PropertyName:  "FirstName",
		DisplayName:   "First name",
		Description:   "The customer's first name.",
		Prompt:        "Enter customer's first name",
		Required:      true,
		ContainerType: "customer",
	}
	if diff := cmp.Diff(want, expr.Metadata, ignoreType); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}
	if expr.Model != "Ada" {
		t.Fatalf("expected model value Ada, got %v", expr.Model)
	}
	if expr.Metadata.Type != reflect.TypeOf("") {
		t.Fatalf("expected string type, got %v", expr.Metadata.Type)
	}
}

func TestStructProviderNestedPaths(t *testing.T) {
	t.Parallel()

	p := NewStructProvider()
	model := &customer{
		Orders: []order{{Total: 12.5, PlacedBy: &customer{LastName: "Lovelace"}}},
		Notes:  map[string]any{"vip": true},
	}

	cases := []struct {
		path     string
		property string
		display  string
		model    any
		fieldID  string
	}{
		{"Orders[0].Total", "Total", "", 12.5, "Orders_0__Total"},
		{"Orders.0.PlacedBy.LastName", "LastName", "Last name", "Lovelace", "Orders_0_PlacedBy_LastName"},
		{"Notes.vip", "vip", "", true, "Notes_vip"},
		{"firstname", "FirstName", "First name", "", "firstname"},
	}
	for _, tc := range cases {
		expr, err := p.ForExpression(model, tc.path)
		if err != nil {
			t.Fatalf("ForExpression(%q): %v", tc.path, err)
		}
		if expr.Metadata.PropertyName != tc.property {
			t.Fatalf("%q: expected property %q, got %q", tc.path, tc.property, expr.Metadata.PropertyName)
		}
		if expr.Metadata.DisplayName != tc.display {
			t.Fatalf("%q: expected display %q, got %q", tc.path, tc.display, expr.Metadata.DisplayName)
		}
		if diff := cmp.Diff(tc.model, expr.Model); diff != "" {
			t.Fatalf("%q: model mismatch (-want +got):\n%s", tc.path, diff)
		}
		if got := expr.FieldID(); got != tc.fieldID {
			t.Fatalf("%q: expected id %q, got %q", tc.path, tc.fieldID, got)
		}
	}
}

func TestStructProviderNilModelsKeepMetadata(t *testing.T) {
	t.Parallel()

	p := NewStructProvider()
	var model *customer
	expr, err := p.ForExpression(model, "BirthDate")
	if err != nil {
		t.Fatalf("ForExpression: %v", err)
	}
	if expr.Metadata.DataType != "date" || expr.Metadata.Label() != "Birth date" {
		t.Fatalf("unexpected metadata %+v", expr.Metadata)
	}
	if expr.Model != nil {
		t.Fatalf("expected nil model, got %v", expr.Model)
	}

	expr, err = p.ForExpression(&order{}, "PlacedBy.FirstName")
	if err != nil {
		t.Fatalf("ForExpression through nil pointer: %v", err)
	}
	if expr.Metadata.Description != "The customer's first name." {
		t.Fatalf("unexpected description %q", expr.Metadata.Description)
	}
}

func TestStructProviderErrors(t *testing.T) {
	t.Parallel()

	p := NewStructProvider()
	for _, path := range []string{"", "Missing", "secret", "FirstName.Length", "Orders[x]", "ID[0]", ".ID"} {
		if _, err := p.ForExpression(&customer{}, path); err == nil {
			t.Fatalf("expected error for %q", path)
		}
	}
	if _, err := p.ForExpression(nil, "ID"); err == nil {
		t.Fatalf("expected error for nil model")
	}
}

func TestLabelFallsBackToPropertyName(t *testing.T) {
	t.Parallel()

	p := NewStructProvider()
	expr, err := p.ForExpression(customer{}, "ID")
	if err != nil {
		t.Fatalf("ForExpression: %v", err)
	}
	if got := expr.Metadata.Label(); got != "ID" {
		t.Fatalf("expected ID, got %q", got)
	}
}

func TestOverlayOverridesTags(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"meta/customer.yaml": {Data: []byte(strings.TrimSpace(`
customer:
  FirstName:
    display: Given name
  ID:
    description: Internal identifier.
    required: true
`))},
		"meta/readme.txt": {Data: []byte("ignored")},
	}
	overlay, err := LoadOverlayFS(fsys)
	if err != nil {
		t.Fatalf("LoadOverlayFS: %v", err)
	}
	if overlay.Empty() {
		t.Fatalf("expected overlay entries")
	}

	p := NewStructProvider(WithOverlay(overlay))
	first, ok := p.ForType(reflect.TypeOf(&customer{}), "FirstName")
	if !ok {
		t.Fatalf("expected FirstName metadata")
	}
	if first.DisplayName != "Given name" || first.Description != "The customer's first name." {
		t.Fatalf("unexpected overlay merge %+v", first)
	}
	id, _ := p.ForType(reflect.TypeOf(customer{}), "ID")
	if id.Description != "Internal identifier." || !id.Required {
		t.Fatalf("unexpected overlay for ID %+v", id)
	}
}

func TestOverlayRejectsDuplicates(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"a.yml": {Data: []byte("customer:\n  ID:\n    display: A\n")},
		"b.yml": {Data: []byte("customer:\n  ID:\n    display: B\n")},
	}
	if _, err := LoadOverlayFS(fsys); err == nil {
		t.Fatalf("expected duplicate overlay error")
	}
	if _, err := ParseOverlay([]byte("- not a map")); err == nil {
		t.Fatalf("expected parse error")
	}
}
