package helpers_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taghelpers/pkg/helpers"
	"github.com/goliatone/go-taghelpers/pkg/metadata"
	"github.com/goliatone/go-taghelpers/pkg/render/template/gotemplate"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
	"github.com/goliatone/go-taghelpers/pkg/testsupport"
	"github.com/goliatone/go-taghelpers/pkg/views"
)

func TestDescriptionFor(t *testing.T) {
	view := taghelper.NewViewContext(sampleCustomer(), nil, nil)
	tests := []struct {
		in   string
		want string
	}{
		{in: `<small asp-description-for="FirstName"></small>`, want: `<small>The customer&#39;s first name.</small>`},
		{in: `<small asp-description-for="FirstName">  </small>`, want: `<small>The customer&#39;s first name.</small>`},
		{in: `<small asp-description-for="LastName">custom <b>text</b></small>`, want: `<small>custom <b>text</b></small>`},
		{in: `<small asp-description-for="Country">kept</small>`, want: `<small>kept</small>`},
		{in: `<small asp-description-for="Orders[0].PlacedOn"></small>`, want: `<small>The date and time the order was placed.</small>`},
	}
	for _, tt := range tests {
		if got := render(t, helpers.Services{}, view, tt.in); got != tt.want {
			t.Fatalf("render %q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestDescriptionForKeepsModifiedContent(t *testing.T) {
	expr, err := metadata.NewStructProvider().ForExpression(sampleCustomer(), "FirstName")
	if err != nil {
		t.Fatalf("expression: %v", err)
	}
	tc := taghelper.NewContext("p", nil, "1")
	out := taghelper.NewOutput("p", nil, nil)
	out.Content.SetHTML("set by another helper")

	h := &helpers.DescriptionFor{For: expr}
	if err := h.Process(context.Background(), tc, out); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := out.Content.String(); got != "set by another helper" {
		t.Fatalf("expected content to be kept, got %q", got)
	}
}

func TestModelExpressionErrors(t *testing.T) {
	view := taghelper.NewViewContext(sampleCustomer(), nil, nil)
	for _, in := range []string{
		`<small asp-description-for="Missing"></small>`,
		`<small asp-description-for=""></small>`,
	} {
		if _, err := tryRender(helpers.Services{}, view, in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
	if _, err := tryRender(helpers.Services{}, nil, `<span asp-display-name-for="FirstName"></span>`); err == nil {
		t.Fatalf("expected error without a view")
	}
}

func TestLabelHelpers(t *testing.T) {
	view := taghelper.NewViewContext(sampleCustomer(), nil, nil)
	tests := []struct {
		in   string
		want string
	}{
		{
			in:   `<label asp-for="FirstName"></label>`,
			want: `<label title="The customer&#39;s first name." for="FirstName">First name</label>`,
		},
		{
			in:   `<label asp-for="LastName" title="Surname" for="ln">Family</label>`,
			want: `<label title="Surname" for="ln">Family</label>`,
		},
		{
			in:   `<label asp-for="Orders[0].Total"></label>`,
			want: `<label for="Orders_0__Total">Total</label>`,
		},
	}
	for _, tt := range tests {
		if got := render(t, helpers.Services{}, view, tt.in); got != tt.want {
			t.Fatalf("render %q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestDisplayNameHelpers(t *testing.T) {
	view := taghelper.NewViewContext(sampleCustomer(), nil, nil)
	got := render(t, helpers.Services{}, view,
		`<th asp-display-name-for="LastName">:</th><display-name for="Country" /><display-name for="Referrer.FirstName"></display-name>`)
	want := `<th>:Last name</th>CountryFirst name`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDisplayAndEditorHelpers(t *testing.T) {
	view := taghelper.NewViewContext(sampleCustomer(), nil, nil)
	got := render(t, helpers.Services{}, view,
		`<dd asp-display-for="FirstName"></dd>`+
			`<display for="Orders[0].Total"></display>`+
			`<div asp-editor-for="Country" asp-html-field-name="c">:</div>`+
			`<editor for="FirstName" />`)

	want := `<dd>Ada</dd>` +
		`9.50` +
		`<div>:<input class="text-box single-line" id="c" name="c" type="text" value="NZ" /></div>` +
		`<input class="text-box single-line" id="FirstName" name="FirstName" type="text" value="Ada" placeholder="Enter customer&#39;s first name" required="required" />`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected markup (-want +got):\n%s", diff)
	}
}

func TestDisplayUsesTemplates(t *testing.T) {
	files := fstest.MapFS{
		"display/currency.tpl": {Data: []byte(`<span class="money">${{ value }}</span>`)},
		"editor/fancy.tpl":     {Data: []byte(`<input data-fancy name="{{ name }}" value="{{ value }}">`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	svc := helpers.Services{Generator: views.NewGenerator(views.WithTemplates(engine))}
	view := taghelper.NewViewContext(sampleCustomer(), nil, nil)

	got := render(t, svc, view,
		`<table><tr><td asp-display-for="Orders[0].Total"></td></tr></table>`+
			`<p asp-editor-for="LastName" asp-template-name="fancy"></p>`)

	doc := testsupport.MustParseHTML(t, got)
	if text := doc.Find("td span.money").Text(); text != "$9.50" {
		t.Fatalf("expected currency template, got %q in %q", text, got)
	}
	input := doc.Find("p input[data-fancy]")
	if name, _ := input.Attr("name"); name != "LastName" {
		t.Fatalf("expected editor template input, got %q", got)
	}
	if value, _ := input.Attr("value"); value != "Lovelace" {
		t.Fatalf("expected value Lovelace, got %q", value)
	}
}

func TestDatalist(t *testing.T) {
	view := taghelper.NewViewContext(sampleCustomer(), map[string]any{
		"countries": []string{"NZ", "A&B"},
		"numbers":   []int{1, 2},
		"empty":     []string{},
		"scalar":    "x",
	}, nil)

	got := render(t, helpers.Services{}, view,
		`<datalist id="c" asp-list="countries"></datalist><datalist asp-list="numbers"><option value="0"></option></datalist>`+
			`<datalist asp-list="empty"></datalist><datalist asp-list="missing"></datalist>`)
	want := "<datalist id=\"c\"><option value=\"NZ\"></option>\n<option value=\"A&amp;B\"></option>\n</datalist>" +
		"<datalist><option value=\"0\"></option><option value=\"1\"></option>\n<option value=\"2\"></option>\n</datalist>" +
		"<datalist></datalist><datalist></datalist>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected datalist markup (-want +got):\n%s", diff)
	}

	if _, err := tryRender(helpers.Services{}, view, `<datalist asp-list="scalar"></datalist>`); err == nil || !strings.Contains(err.Error(), "expected a list") {
		t.Fatalf("expected list type error, got %v", err)
	}
}
