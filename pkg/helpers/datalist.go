package helpers

import (
	"context"
	"fmt"
	"html"
	"reflect"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

const attrList = "asp-list"

// Datalist appends an <option> per list entry to a <datalist>. It does
// nothing for a missing or empty list.
type Datalist struct {
	List []string
}

func datalistDescriptor() taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "datalist",
		Targets: []taghelper.Target{{Tag: "datalist", Attributes: []string{attrList}}},
		Bound:   []string{attrList},
		Order:   taghelper.OrderDatalist,
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			value, ok := b.Value(attrList)
			if !ok {
				return &Datalist{}, nil
			}
			list, err := stringList(value)
			if err != nil {
				return nil, fmt.Errorf("%s %q: %w", attrList, b.String(attrList), err)
			}
			return &Datalist{List: list}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *Datalist) Order() int { return taghelper.OrderDatalist }

// Process implements taghelper.Helper.
func (h *Datalist) Process(_ context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if err := checkArgs(attrList, tc, out); err != nil {
		return err
	}
	if len(h.List) == 0 {
		return nil
	}
	var builder strings.Builder
	for _, item := range h.List {
		builder.WriteString(`<option value="`)
		builder.WriteString(html.EscapeString(item))
		builder.WriteString("\"></option>\n")
	}
	out.PostContent.AppendHTML(builder.String())
	return nil
}

// stringList accepts any slice or array and formats its elements.
func stringList(value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("helpers: expected a list, got %T", value)
	}
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, fmt.Sprint(rv.Index(i).Interface()))
	}
	return out, nil
}
