package taghelper

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttributeListOperations(t *testing.T) {
	t.Parallel()

	var attrs AttributeList
	attrs.Add("class", "a")
	attrs.Add("ID", "x")
	attrs.SetAttribute("Class", "b")
	attrs.SetAttribute("title", "t")
	attrs.Add("data-one", "1")
	attrs.Add("data-two", "2")

	want := AttributeList{
		{Name: "class", Value: "b"},
		{Name: "ID", Value: "x"},
		{Name: "title", Value: "t"},
		{Name: "data-one", Value: "1"},
		{Name: "data-two", Value: "2"},
	}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}

	if !attrs.ContainsName("id") || attrs.Value("Id") != "x" {
		t.Fatalf("expected case-insensitive lookup")
	}
	if !attrs.Remove("id") || attrs.Remove("id") {
		t.Fatalf("unexpected Remove result")
	}
	attrs.RemovePrefix("data-")
	if diff := cmp.Diff(AttributeList{{Name: "class", Value: "b"}, {Name: "title", Value: "t"}}, attrs); diff != "" {
		t.Fatalf("after removal (-want +got):\n%s", diff)
	}
}

func TestContentEscaping(t *testing.T) {
	t.Parallel()

	var c Content
	if c.IsModified() || !c.IsEmptyOrWhiteSpace() {
		t.Fatalf("zero content must be unmodified and empty")
	}
	c.Append("<b>").AppendHTML("<i>x</i>")
	if got := c.String(); got != "&lt;b&gt;<i>x</i>" {
		t.Fatalf("unexpected content %q", got)
	}
	c.SetContent("a & b")
	if got := c.String(); got != "a &amp; b" {
		t.Fatalf("unexpected content %q", got)
	}
	c.Clear()
	if !c.IsModified() || c.String() != "" {
		t.Fatalf("Clear must empty and mark modified")
	}
}

func TestOutputSuppressOutput(t *testing.T) {
	t.Parallel()

	out := NewOutput("div", AttributeList{{Name: "id", Value: "x"}}, nil)
	out.PreElement.AppendHTML("<hr>")
	out.PostContent.Append("tail")
	out.SuppressOutput()

	if out.TagName != "" {
		t.Fatalf("expected tag cleared, got %q", out.TagName)
	}
	if !out.IsContentModified() {
		t.Fatalf("suppressed output must count as modified content")
	}
	for name, buf := range map[string]*Content{
		"pre-element":  &out.PreElement,
		"post-content": &out.PostContent,
		"content":      &out.Content,
	} {
		if buf.String() != "" {
			t.Fatalf("%s not cleared: %q", name, buf.String())
		}
	}
}

func TestOutputChildContentIsCached(t *testing.T) {
	t.Parallel()

	calls := 0
	out := NewOutput("p", nil, func(context.Context) (string, error) {
		calls++
		return "<b>hi</b>", nil
	})
	for i := 0; i < 3; i++ {
		got, err := out.GetChildContent(context.Background())
		if err != nil || got != "<b>hi</b>" {
			t.Fatalf("unexpected child content %q, %v", got, err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one render, got %d", calls)
	}

	boom := errors.New("boom")
	failing := NewOutput("p", nil, func(context.Context) (string, error) { return "", boom })
	if _, err := failing.GetChildContent(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected error, got %v", err)
	}

	empty := NewOutput("p", nil, nil)
	if got, err := empty.GetChildContent(context.Background()); got != "" || err != nil {
		t.Fatalf("expected empty child content, got %q, %v", got, err)
	}
}
