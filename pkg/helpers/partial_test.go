package helpers_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-taghelpers/pkg/helpers"
	"github.com/goliatone/go-taghelpers/pkg/render/template/gotemplate"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
	"github.com/goliatone/go-taghelpers/pkg/views"
)

func partialServices(t *testing.T) helpers.Services {
	t.Helper()
	files := fstest.MapFS{
		"shared/_customer.tpl": {Data: []byte(`<b>{{ model.FirstName }}</b>{% if title %}<i>{{ title }}</i>{% endif %}`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return helpers.Services{Partials: views.NewPartials(engine)}
}

func TestPartialHelpers(t *testing.T) {
	svc := partialServices(t)
	view := taghelper.NewViewContext(sampleCustomer(), map[string]any{
		"pick": map[string]any{"FirstName": "Lin"},
	}, nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "page model", in: `<partial name="_customer"></partial>`, want: `<b>Ada</b>`},
		{name: "view data model", in: `<partial name="_customer" model="pick" />`, want: `<b>Lin</b>`},
		{name: "render partial", in: `<render-partial name="_customer"></render-partial>`, want: `<b>Ada</b>`},
		{name: "for expression", in: `<render-partial name="_customer" for="Referrer"></render-partial>`, want: `<b>Grace</b>`},
		{name: "view data attributes", in: `<render-partial name="shared/_customer" view-data-title="Hi"></render-partial>`, want: `<b>Ada</b><i>Hi</i>`},
		{name: "fallback", in: `<render-partial name="_missing" fallback-name="_customer" model="pick"></render-partial>`, want: `<b>Lin</b>`},
		{name: "optional", in: `<p><render-partial name="_missing" optional></render-partial></p>`, want: `<p></p>`},
		{name: "suppressed", in: `<render-partial name="_missing" asp-if="false"></render-partial>`, want: ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, svc, view, tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRenderPartialErrors(t *testing.T) {
	svc := partialServices(t)
	view := taghelper.NewViewContext(sampleCustomer(), nil, nil)

	_, err := tryRender(svc, view, `<render-partial name="_missing" fallback-name="_gone"></render-partial>`)
	if !errors.Is(err, views.ErrViewNotFound) {
		t.Fatalf("expected ErrViewNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "_gone") {
		t.Fatalf("expected searched names in error, got %v", err)
	}

	_, err = tryRender(svc, view, `<render-partial name="_customer" for="Referrer" model="pick"></render-partial>`)
	if err == nil || !strings.Contains(err.Error(), "cannot be used together") {
		t.Fatalf("expected for/model conflict, got %v", err)
	}

	_, err = tryRender(svc, view, `<render-partial></render-partial>`)
	if err == nil || !strings.Contains(err.Error(), `"name" is required`) {
		t.Fatalf("expected missing name error, got %v", err)
	}

	_, err = tryRender(helpers.Services{}, view, `<partial name="_customer"></partial>`)
	if !errors.Is(err, helpers.ErrNoPartials) {
		t.Fatalf("expected ErrNoPartials, got %v", err)
	}
}
