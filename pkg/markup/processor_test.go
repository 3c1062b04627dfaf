package markup_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/goliatone/go-taghelpers/pkg/markup"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

func upperHelper() taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "upper",
		Targets: []taghelper.Target{{Tag: "shout"}},
		Factory: func(*taghelper.Binding) (taghelper.Helper, error) {
			return taghelper.HelperFunc(func(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
				child, err := out.GetChildContent(ctx)
				if err != nil {
					return err
				}
				out.TagName = "strong"
				out.Content.SetHTML(strings.ToUpper(child))
				return nil
			}), nil
		},
	}
}

func markHelper() taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "mark",
		Targets: []taghelper.Target{{Tag: taghelper.AnyTag, Attributes: []string{"data-mark"}}},
		Bound:   []string{"data-mark"},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			label := b.String("data-mark")
			return taghelper.HelperFunc(func(_ context.Context, _ *taghelper.Context, out *taghelper.Output) error {
				out.Attributes.SetAttribute("class", label)
				out.PreElement.AppendHTML("<!--m-->")
				out.PostContent.Append("<end>")
				return nil
			}), nil
		},
	}
}

func newProcessor(t *testing.T, descs ...taghelper.Descriptor) *markup.Processor {
	t.Helper()
	reg := taghelper.NewRegistry()
	for _, d := range descs {
		if err := reg.Register(d); err != nil {
			t.Fatalf("register %s: %v", d.Name, err)
		}
	}
	return markup.New(reg)
}

func TestRenderLeavesUntouchedMarkupAlone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "taghelpers")
	defer teardown()

	inputs := []string{
		`<DIV Class='a'>text &amp; more<br>line</DIV>`,
		`<!doctype html><p>unclosed<p>second`,
		`<ul><li>one</li></span><li>two</ul>`,
		`<script>if (a < b) { x = "</div>" }</script>`,
		`<!-- comment --><img src=x.png alt="">`,
	}
	p := newProcessor(t, upperHelper(), markHelper())
	for _, in := range inputs {
		got, err := p.Render(context.Background(), nil, in)
		if err != nil {
			t.Fatalf("render %q: %v", in, err)
		}
		if got != in {
			t.Fatalf("expected round trip of %q, got %q", in, got)
		}
	}
}

func TestRenderRunsHelpersRecursively(t *testing.T) {
	p := newProcessor(t, upperHelper(), markHelper())

	got, err := p.Render(context.Background(), nil, `<p>a <shout>hi <em data-mark="x">there</em></shout> b</p>`)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<p>a <strong>HI <!--M--><EM CLASS="X">THERE&LT;END&GT;</EM></strong> b</p>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderWritesOutputParts(t *testing.T) {
	p := newProcessor(t, markHelper())

	tests := []struct {
		in   string
		want string
	}{
		{in: `<div data-mark="a">x</div>`, want: `<!--m--><div class="a">x&lt;end&gt;</div>`},
		{in: `<input data-mark="b" disabled>`, want: `<!--m--><input disabled="" class="b">`},
		{in: `<span data-mark="c"/>`, want: `<!--m--><span class="c" />`},
		{in: `<p data-mark='q"t'>y</p>`, want: `<!--m--><p class="q&#34;t">y&lt;end&gt;</p>`},
	}
	for _, tt := range tests {
		got, err := p.Render(context.Background(), nil, tt.in)
		if err != nil {
			t.Fatalf("render %q: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("render %q: expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSuppressedElementWritesNothing(t *testing.T) {
	hide := taghelper.Descriptor{
		Name:    "hide",
		Targets: []taghelper.Target{{Tag: taghelper.AnyTag, Attributes: []string{"hidden-by-helper"}}},
		Bound:   []string{"hidden-by-helper"},
		Factory: func(*taghelper.Binding) (taghelper.Helper, error) {
			return taghelper.HelperFunc(func(_ context.Context, tc *taghelper.Context, out *taghelper.Output) error {
				out.SuppressOutput()
				taghelper.SetSuppressed(tc)
				return nil
			}), nil
		},
	}
	p := newProcessor(t, hide)
	got, err := p.Render(context.Background(), nil, `<a>keep</a><b hidden-by-helper><i>gone</i></b><c>also</c>`)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != `<a>keep</a><c>also</c>` {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestContextsAreScopedPerElement(t *testing.T) {
	var seen []string
	spy := taghelper.Descriptor{
		Name:    "spy",
		Targets: []taghelper.Target{{Tag: "x-item"}},
		Factory: func(*taghelper.Binding) (taghelper.Helper, error) {
			return taghelper.HelperFunc(func(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
				if _, err := out.GetChildContent(ctx); err != nil {
					return err
				}
				state := "clean"
				if taghelper.IsSuppressed(tc) {
					state = "suppressed"
				}
				seen = append(seen, tc.UniqueID+":"+state)
				if _, ok := tc.Attribute("suppress"); ok {
					taghelper.SetSuppressed(tc)
				}
				return nil
			}), nil
		},
	}
	p := newProcessor(t, spy)
	if _, err := p.Render(context.Background(), nil, `<x-item suppress="1"><x-item></x-item></x-item><x-item></x-item>`); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := []string{"th-2:clean", "th-1:clean", "th-3:clean"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, seen)
	}
}

func TestRenderPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	failing := taghelper.Descriptor{
		Name:    "fail",
		Targets: []taghelper.Target{{Tag: "fail"}},
		Factory: func(*taghelper.Binding) (taghelper.Helper, error) {
			return taghelper.HelperFunc(func(context.Context, *taghelper.Context, *taghelper.Output) error {
				return boom
			}), nil
		},
	}
	p := newProcessor(t, failing)
	_, err := p.Render(context.Background(), nil, `<div><fail></fail></div>`)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if !strings.Contains(err.Error(), "markup:") {
		t.Fatalf("expected markup prefix, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Render(ctx, nil, `<fail></fail>`); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
