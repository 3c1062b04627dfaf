package taghelper

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSuppressionMarker(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "taghelpers")
	defer teardown()

	tc := NewContext("div", nil, "1")
	if IsSuppressed(tc) {
		t.Fatalf("fresh context must not be suppressed")
	}
	SetSuppressed(tc)
	SetSuppressed(tc)
	if !IsSuppressed(tc) {
		t.Fatalf("expected suppressed after SetSuppressed")
	}

	sibling := NewContext("div", nil, "2")
	if IsSuppressed(sibling) {
		t.Fatalf("suppression leaked to a sibling context")
	}
}

func TestSuppressionIgnoresForeignValues(t *testing.T) {
	t.Parallel()

	tc := NewContext("div", nil, "1")
	tc.SetItem(ItemSuppressed, true)
	if IsSuppressed(tc) {
		t.Fatalf("only the marker value counts as suppression")
	}
}

func TestSuppressionPanicsOnNilContext(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]func(){
		"IsSuppressed":  func() { IsSuppressed(nil) },
		"SetSuppressed": func() { SetSuppressed(nil) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}
}

func TestContextSnapshotsAttributes(t *testing.T) {
	t.Parallel()

	attrs := AttributeList{{Name: "class", Value: "a"}}
	tc := NewContext("div", attrs, "1")
	attrs[0].Value = "b"

	if got := tc.AllAttributes().Value("class"); got != "a" {
		t.Fatalf("expected snapshot value a, got %q", got)
	}
	all := tc.AllAttributes()
	all.SetAttribute("class", "c")
	if got, _ := tc.Attribute("CLASS"); got.Value != "a" {
		t.Fatalf("AllAttributes must return a copy, got %q", got.Value)
	}
}
