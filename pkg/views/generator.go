package views

import (
	"context"
	"fmt"
	"html"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-taghelpers/pkg/metadata"
	"github.com/goliatone/go-taghelpers/pkg/render/template"
)

const (
	defaultDisplayPrefix = "display/"
	defaultEditorPrefix  = "editor/"
)

var timeType = reflect.TypeOf(time.Time{})

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithTemplates sets the engine display and editor templates are looked up
// in. Without one only the built-in markup is produced.
func WithTemplates(engine template.TemplateRenderer) GeneratorOption {
	return func(g *Generator) {
		g.engine = engine
	}
}

// WithMetadata sets the provider used for nested struct properties.
func WithMetadata(provider *metadata.StructProvider) GeneratorOption {
	return func(g *Generator) {
		if provider != nil {
			g.metadata = provider
		}
	}
}

// WithTemplatePrefixes overrides the "display/" and "editor/" directories.
func WithTemplatePrefixes(display, editor string) GeneratorOption {
	return func(g *Generator) {
		if p := normalizePrefixes([]string{display}); len(p) == 1 && p[0] != "" {
			g.displayPrefix = p[0]
		}
		if p := normalizePrefixes([]string{editor}); len(p) == 1 && p[0] != "" {
			g.editorPrefix = p[0]
		}
	}
}

// Generator produces display and editor markup for model expressions.
//
// A template is chosen by trying, in order, the explicit template name, the
// metadata template hint, the metadata data type and the Go type name (for
// example "string", "bool" or "time") under the display or editor prefix.
// When none exists the built-in markup is used.
type Generator struct {
	engine        template.TemplateRenderer
	metadata      *metadata.StructProvider
	displayPrefix string
	editorPrefix  string
}

// NewGenerator constructs a Generator.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		metadata:      metadata.NewStructProvider(),
		displayPrefix: defaultDisplayPrefix,
		editorPrefix:  defaultEditorPrefix,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// DisplayName returns the HTML-escaped label for the expression.
func (g *Generator) DisplayName(expr metadata.Expression) string {
	return html.EscapeString(expr.Metadata.Label())
}

// Display renders read-only markup for the expression's value.
func (g *Generator) Display(ctx context.Context, expr metadata.Expression, templateName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return g.display(ctx, expr, templateName, 0)
}

// Editor renders form controls for the expression. fieldName overrides the
// HTML name, which otherwise is the expression path.
func (g *Generator) Editor(ctx context.Context, expr metadata.Expression, fieldName, templateName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name := strings.TrimSpace(fieldName)
	if name == "" {
		name = expr.FieldName()
	}
	return g.editor(ctx, expr, name, templateName, 0)
}

func (g *Generator) display(ctx context.Context, expr metadata.Expression, templateName string, depth int) (string, error) {
	if rendered, ok, err := g.renderTemplate(g.displayPrefix, expr, expr.FieldName(), templateName); ok || err != nil {
		return rendered, err
	}

	value, typ := indirect(expr)
	if !value.IsValid() {
		return "", nil
	}
	switch {
	case typ.Kind() == reflect.Bool:
		return checkbox("", "", value.Bool(), true), nil
	case typ == timeType:
		return html.EscapeString(formatTime(value.Interface().(time.Time), expr.Metadata.DataType)), nil
	case typ.Kind() == reflect.Struct:
		if depth > 0 {
			return "", nil
		}
		return g.structDisplay(ctx, value, typ, expr.FieldName(), depth)
	case typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array:
		if depth > 0 {
			return "", nil
		}
		var builder strings.Builder
		for i := 0; i < value.Len(); i++ {
			item := metadata.Expression{
				Name:     fmt.Sprintf("%s[%d]", expr.FieldName(), i),
				Metadata: metadata.Metadata{PropertyName: expr.Metadata.PropertyName, Type: typ.Elem()},
				Model:    value.Index(i).Interface(),
			}
			rendered, err := g.display(ctx, item, "", depth)
			if err != nil {
				return "", err
			}
			builder.WriteString(rendered)
		}
		return builder.String(), nil
	default:
		return html.EscapeString(formatScalar(value, expr.Metadata.DataType)), nil
	}
}

func (g *Generator) structDisplay(ctx context.Context, value reflect.Value, typ reflect.Type, prefix string, depth int) (string, error) {
	var builder strings.Builder
	for _, field := range reflect.VisibleFields(typ) {
		if !field.IsExported() || field.Anonymous || !simpleType(field.Type) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fieldValue, err := value.FieldByIndexErr(field.Index)
		if err != nil {
			continue
		}
		meta, _ := g.metadata.ForType(typ, field.Name)
		child := metadata.Expression{
			Name:     joinName(prefix, field.Name),
			Metadata: meta,
			Model:    fieldValue.Interface(),
		}
		rendered, err := g.display(ctx, child, "", depth+1)
		if err != nil {
			return "", err
		}
		builder.WriteString(`<div class="display-label">`)
		builder.WriteString(html.EscapeString(meta.Label()))
		builder.WriteString("</div>\n")
		builder.WriteString(`<div class="display-field">`)
		builder.WriteString(rendered)
		builder.WriteString("</div>\n")
	}
	return builder.String(), nil
}

func (g *Generator) editor(ctx context.Context, expr metadata.Expression, name, templateName string, depth int) (string, error) {
	if rendered, ok, err := g.renderTemplate(g.editorPrefix, expr, name, templateName); ok || err != nil {
		return rendered, err
	}

	meta := expr.Metadata
	id := fieldID(name)
	value, typ := indirect(expr)
	if typ == nil {
		typ = meta.Type
		for typ != nil && typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
	}

	switch {
	case typ != nil && typ.Kind() == reflect.Bool:
		return checkbox(id, name, value.IsValid() && value.Bool(), false), nil
	case typ != nil && typ.Kind() == reflect.Struct && typ != timeType:
		if depth > 0 {
			return "", nil
		}
		return g.structEditor(ctx, value, typ, name, depth)
	case strings.EqualFold(meta.DataType, "multilinetext"):
		var builder strings.Builder
		builder.WriteString(`<textarea class="text-box multi-line" id="`)
		builder.WriteString(html.EscapeString(id))
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`"`)
		writeInputHints(&builder, meta)
		builder.WriteString(">")
		if value.IsValid() {
			builder.WriteString(html.EscapeString(formatScalar(value, meta.DataType)))
		}
		builder.WriteString("</textarea>")
		return builder.String(), nil
	}

	inputType := inputTypeFor(typ, meta.DataType)
	var builder strings.Builder
	builder.WriteString(`<input class="text-box single-line" id="`)
	builder.WriteString(html.EscapeString(id))
	builder.WriteString(`" name="`)
	builder.WriteString(html.EscapeString(name))
	builder.WriteString(`" type="`)
	builder.WriteString(inputType)
	builder.WriteString(`"`)
	if value.IsValid() && inputType != "password" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(editorValue(value, typ, inputType, meta.DataType)))
		builder.WriteString(`"`)
	}
	writeInputHints(&builder, meta)
	builder.WriteString(" />")
	return builder.String(), nil
}

func (g *Generator) structEditor(ctx context.Context, value reflect.Value, typ reflect.Type, prefix string, depth int) (string, error) {
	var builder strings.Builder
	for _, field := range reflect.VisibleFields(typ) {
		if !field.IsExported() || field.Anonymous || !simpleType(field.Type) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		meta, _ := g.metadata.ForType(typ, field.Name)
		name := joinName(prefix, field.Name)
		child := metadata.Expression{Name: name, Metadata: meta}
		if value.IsValid() {
			if fieldValue, err := value.FieldByIndexErr(field.Index); err == nil {
				child.Model = fieldValue.Interface()
			}
		}
		rendered, err := g.editor(ctx, child, name, "", depth+1)
		if err != nil {
			return "", err
		}
		builder.WriteString(`<div class="editor-label"><label for="`)
		builder.WriteString(html.EscapeString(fieldID(name)))
		builder.WriteString(`">`)
		builder.WriteString(html.EscapeString(meta.Label()))
		builder.WriteString("</label></div>\n")
		builder.WriteString(`<div class="editor-field">`)
		builder.WriteString(rendered)
		builder.WriteString("</div>\n")
	}
	return builder.String(), nil
}

// renderTemplate reports ok=false when no candidate template exists.
func (g *Generator) renderTemplate(prefix string, expr metadata.Expression, name, templateName string) (string, bool, error) {
	if g.engine == nil {
		return "", false, nil
	}
	for _, candidate := range g.candidates(expr, templateName) {
		path := prefix + candidate
		if !g.engine.Exists(path) {
			continue
		}
		meta := expr.Metadata
		value, _ := indirect(expr)
		formatted := ""
		if value.IsValid() {
			formatted = formatScalar(value, meta.DataType)
		}
		data := map[string]any{
			"model":       expr.Model,
			"value":       formatted,
			"name":        name,
			"id":          fieldID(name),
			"label":       meta.Label(),
			"description": meta.Description,
			"prompt":      meta.Prompt,
			"datatype":    meta.DataType,
			"required":    meta.Required,
		}
		rendered, err := g.engine.RenderTemplate(path, data)
		if err != nil {
			return "", true, fmt.Errorf("views: render %q for %q: %w", path, expr.Name, err)
		}
		return rendered, true, nil
	}
	return "", false, nil
}

func (g *Generator) candidates(expr metadata.Expression, templateName string) []string {
	var out []string
	seen := map[string]struct{}{}
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	add(templateName)
	add(expr.Metadata.TemplateHint)
	add(strings.ToLower(expr.Metadata.DataType))
	add(typeName(expr))
	return out
}

// typeName is the template name for the expression's Go type: the kind for
// builtin types, "time" for time.Time and the lowercased name otherwise.
func typeName(expr metadata.Expression) string {
	_, typ := indirect(expr)
	if typ == nil {
		typ = expr.Metadata.Type
		for typ != nil && typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
	}
	if typ == nil {
		return ""
	}
	if typ == timeType {
		return "time"
	}
	if typ.PkgPath() == "" {
		return typ.Kind().String()
	}
	return strings.ToLower(typ.Name())
}

// indirect returns the dereferenced value and its type. The value is invalid
// for nil models.
func indirect(expr metadata.Expression) (reflect.Value, reflect.Type) {
	value := reflect.ValueOf(expr.Model)
	for value.IsValid() && (value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface) {
		if value.IsNil() {
			return reflect.Value{}, nil
		}
		value = value.Elem()
	}
	if !value.IsValid() {
		return value, nil
	}
	return value, value.Type()
}

func simpleType(typ reflect.Type) bool {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	switch typ.Kind() {
	case reflect.Struct:
		return typ == timeType
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Func, reflect.Chan, reflect.Interface:
		return false
	default:
		return true
	}
}

func inputTypeFor(typ reflect.Type, dataType string) string {
	switch strings.ToLower(strings.TrimSpace(dataType)) {
	case "password":
		return "password"
	case "emailaddress", "email":
		return "email"
	case "url", "imageurl":
		return "url"
	case "phonenumber", "tel":
		return "tel"
	case "date":
		return "date"
	case "time":
		return "time"
	case "datetime":
		return "datetime-local"
	}
	if typ == nil {
		return "text"
	}
	if typ == timeType {
		return "datetime-local"
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "text"
	}
}

func editorValue(value reflect.Value, typ reflect.Type, inputType, dataType string) string {
	if typ == timeType {
		t := value.Interface().(time.Time)
		switch inputType {
		case "date":
			return t.Format(time.DateOnly)
		case "time":
			return t.Format("15:04")
		default:
			return t.Format("2006-01-02T15:04")
		}
	}
	if strings.EqualFold(dataType, "currency") {
		return formatScalar(value, "")
	}
	return formatScalar(value, dataType)
}

func formatScalar(value reflect.Value, dataType string) string {
	if value.Type() == timeType {
		return formatTime(value.Interface().(time.Time), dataType)
	}
	switch value.Kind() {
	case reflect.String:
		return value.String()
	case reflect.Bool:
		return strconv.FormatBool(value.Bool())
	case reflect.Float32, reflect.Float64:
		if strings.EqualFold(dataType, "currency") {
			return strconv.FormatFloat(value.Float(), 'f', 2, 64)
		}
		return strconv.FormatFloat(value.Float(), 'f', -1, 64)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if strings.EqualFold(dataType, "currency") {
			return strconv.FormatInt(value.Int(), 10) + ".00"
		}
		return strconv.FormatInt(value.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(value.Uint(), 10)
	default:
		if value.CanInterface() {
			return fmt.Sprint(value.Interface())
		}
		return ""
	}
}

func formatTime(t time.Time, dataType string) string {
	switch strings.ToLower(strings.TrimSpace(dataType)) {
	case "date":
		return t.Format(time.DateOnly)
	case "time":
		return t.Format(time.TimeOnly)
	default:
		return t.Format(time.DateTime)
	}
}

func checkbox(id, name string, checked, disabled bool) string {
	var builder strings.Builder
	builder.WriteString(`<input class="check-box"`)
	if checked {
		builder.WriteString(` checked="checked"`)
	}
	if disabled {
		builder.WriteString(` disabled="disabled"`)
	}
	if id != "" {
		builder.WriteString(` id="`)
		builder.WriteString(html.EscapeString(id))
		builder.WriteString(`"`)
	}
	if name != "" {
		builder.WriteString(` name="`)
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`"`)
	}
	builder.WriteString(` type="checkbox"`)
	if !disabled {
		builder.WriteString(` value="true"`)
	}
	builder.WriteString(" />")
	return builder.String()
}

func writeInputHints(builder *strings.Builder, meta metadata.Metadata) {
	if prompt := strings.TrimSpace(meta.Prompt); prompt != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(prompt))
		builder.WriteString(`"`)
	}
	if meta.Required {
		builder.WriteString(` required="required"`)
	}
}

func fieldID(name string) string {
	return metadata.Expression{Name: name}.FieldID()
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
