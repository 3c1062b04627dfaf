package metadata

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Struct tag keys read by StructProvider.
const (
	TagDisplay     = "display"
	TagDescription = "description"
	TagPrompt      = "prompt"
	TagDataType    = "datatype"
	TagUIHint      = "uihint"
	TagValidate    = "validate"
)

// StructProvider reads metadata from struct tags, optionally overridden by an
// Overlay. Field metadata is cached per struct type.
type StructProvider struct {
	overlay *Overlay

	mu    sync.RWMutex
	cache map[fieldKey]Metadata
}

type fieldKey struct {
	typ   reflect.Type
	field string
}

// Option customises a StructProvider.
type Option func(*StructProvider)

// WithOverlay layers YAML-sourced metadata over struct tags.
func WithOverlay(overlay *Overlay) Option {
	return func(p *StructProvider) {
		p.overlay = overlay
	}
}

// NewStructProvider constructs a StructProvider.
func NewStructProvider(opts ...Option) *StructProvider {
	p := &StructProvider{cache: make(map[fieldKey]Metadata)}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

var _ Provider = (*StructProvider)(nil)

// ForExpression walks expression (dot separated, with optional [index]
// segments) from model. Types are followed even through nil pointers so
// metadata is available for empty models.
func (p *StructProvider) ForExpression(model any, expression string) (Expression, error) {
	path := strings.TrimSpace(expression)
	if path == "" {
		return Expression{}, fmt.Errorf("metadata: empty expression")
	}
	segments, err := splitPath(path)
	if err != nil {
		return Expression{}, err
	}

	value := reflect.ValueOf(model)
	typ := reflect.TypeOf(model)
	if typ == nil {
		return Expression{}, fmt.Errorf("metadata: cannot resolve %q against a nil model", path)
	}

	var meta Metadata
	for _, seg := range segments {
		value, typ = deref(value, typ)
		if seg.index >= 0 {
			value, typ, err = indexInto(value, typ, seg.index, path)
			if err != nil {
				return Expression{}, err
			}
			meta = Metadata{PropertyName: meta.PropertyName, Type: typ}
			continue
		}

		switch typ.Kind() {
		case reflect.Struct:
			field, ok := findField(typ, seg.name)
			if !ok {
				return Expression{}, fmt.Errorf("metadata: %s has no field %q (expression %q)", typ.Name(), seg.name, path)
			}
			meta = p.fieldMetadata(typ, field)
			if value.IsValid() {
				value = value.FieldByIndex(field.Index)
			}
			typ = field.Type
		case reflect.Map:
			if typ.Key().Kind() != reflect.String {
				return Expression{}, fmt.Errorf("metadata: map key type %s not supported (expression %q)", typ.Key(), path)
			}
			var next reflect.Value
			if value.IsValid() && !value.IsNil() {
				next = value.MapIndex(reflect.ValueOf(seg.name).Convert(typ.Key()))
			}
			typ = typ.Elem()
			if next.IsValid() && typ.Kind() == reflect.Interface && !next.IsNil() {
				next = next.Elem()
				typ = next.Type()
			}
			value = next
			meta = Metadata{PropertyName: seg.name, ContainerType: "map", Type: typ}
		default:
			return Expression{}, fmt.Errorf("metadata: cannot select %q from %s (expression %q)", seg.name, typ, path)
		}
	}

	out := Expression{Name: path, Metadata: meta}
	if value.IsValid() && value.CanInterface() {
		out.Model = value.Interface()
	}
	return out, nil
}

// ForType returns metadata for the named field of a struct type.
func (p *StructProvider) ForType(typ reflect.Type, field string) (Metadata, bool) {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		return Metadata{}, false
	}
	f, ok := findField(typ, field)
	if !ok {
		return Metadata{}, false
	}
	return p.fieldMetadata(typ, f), true
}

func (p *StructProvider) fieldMetadata(typ reflect.Type, field reflect.StructField) Metadata {
	key := fieldKey{typ: typ, field: field.Name}
	p.mu.RLock()
	meta, ok := p.cache[key]
	p.mu.RUnlock()
	if ok {
		return meta
	}

	meta = Metadata{
		PropertyName:  field.Name,
		DisplayName:   field.Tag.Get(TagDisplay),
		Description:   field.Tag.Get(TagDescription),
		Prompt:        field.Tag.Get(TagPrompt),
		DataType:      field.Tag.Get(TagDataType),
		TemplateHint:  field.Tag.Get(TagUIHint),
		Required:      hasRule(field.Tag.Get(TagValidate), "required"),
		ContainerType: typ.Name(),
		Type:          field.Type,
	}
	if p.overlay != nil {
		meta = p.overlay.apply(typ.Name(), field.Name, meta)
	}

	p.mu.Lock()
	p.cache[key] = meta
	p.mu.Unlock()
	return meta
}

type segment struct {
	name  string
	index int
}

// splitPath turns "Orders[0].Total" into [{Orders -1} {"" 0} {Total -1}].
func splitPath(path string) ([]segment, error) {
	var out []segment
	for _, part := range strings.Split(path, ".") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("metadata: malformed expression %q", path)
		}
		name := part
		rest := ""
		if i := strings.IndexByte(part, '['); i >= 0 {
			name, rest = part[:i], part[i:]
		}
		if name != "" {
			if n, err := strconv.Atoi(name); err == nil && len(out) > 0 {
				out = append(out, segment{index: n})
			} else {
				out = append(out, segment{name: name, index: -1})
			}
		}
		for rest != "" {
			end := strings.IndexByte(rest, ']')
			if rest[0] != '[' || end < 0 {
				return nil, fmt.Errorf("metadata: malformed index in %q", path)
			}
			n, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("metadata: invalid index in %q", path)
			}
			out = append(out, segment{index: n})
			rest = rest[end+1:]
		}
	}
	if len(out) == 0 || out[0].index >= 0 {
		return nil, fmt.Errorf("metadata: malformed expression %q", path)
	}
	return out, nil
}

func deref(value reflect.Value, typ reflect.Type) (reflect.Value, reflect.Type) {
	if value.IsValid() && value.Kind() == reflect.Interface {
		if value.IsNil() {
			value = reflect.Value{}
		} else {
			value = value.Elem()
			typ = value.Type()
		}
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
		if value.IsValid() {
			if value.IsNil() {
				value = reflect.Value{}
			} else {
				value = value.Elem()
			}
		}
	}
	return value, typ
}

func indexInto(value reflect.Value, typ reflect.Type, index int, path string) (reflect.Value, reflect.Type, error) {
	switch typ.Kind() {
	case reflect.Slice, reflect.Array:
		elem := typ.Elem()
		if value.IsValid() && index < value.Len() {
			return value.Index(index), elem, nil
		}
		return reflect.Value{}, elem, nil
	default:
		return reflect.Value{}, nil, fmt.Errorf("metadata: cannot index %s (expression %q)", typ, path)
	}
}

func findField(typ reflect.Type, name string) (reflect.StructField, bool) {
	if field, ok := typ.FieldByName(name); ok && field.IsExported() {
		return field, true
	}
	field, ok := typ.FieldByNameFunc(func(candidate string) bool {
		return strings.EqualFold(candidate, name)
	})
	if !ok || !field.IsExported() {
		return reflect.StructField{}, false
	}
	return field, true
}

func hasRule(tag, rule string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.TrimSpace(part) == rule {
			return true
		}
	}
	return false
}
