package taghelpers_test

import (
	"strings"
	"testing"
	"testing/fstest"

	taghelpers "github.com/goliatone/go-taghelpers"
	"github.com/goliatone/go-taghelpers/pkg/orchestrator"
	"github.com/goliatone/go-taghelpers/pkg/render/template/gotemplate"
	"github.com/goliatone/go-taghelpers/pkg/testsupport"
)

func TestRenderAppliesDefaultPack(t *testing.T) {
	view := taghelpers.NewViewContext(nil, map[string]any{"ready": true}, nil)

	got, err := taghelpers.Render(testsupport.Context(), `<button asp-enabled="!ready">Go</button><markdown>*hi*</markdown>`, view)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<button disabled="disabled">Go</button><p><em>hi</em></p>`
	if strings.TrimSpace(got) != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGenerateHTMLUsesTemplates(t *testing.T) {
	engine, err := gotemplate.New(gotemplate.WithFS(fstest.MapFS{
		"index.tpl": {Data: []byte(`<p asp-authz="true">{{ user.name }}</p><p asp-authz="false">guest</p>`)},
	}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	view := taghelpers.NewViewContext(nil, nil, &taghelpers.Principal{Name: "ada", Authenticated: true})
	out, err := taghelpers.GenerateHTML(testsupport.Context(), "index", view, orchestrator.WithTemplates(engine))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got, want := string(out), `<p>ada</p>`; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
