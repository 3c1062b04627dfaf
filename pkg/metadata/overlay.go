package metadata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Overlay holds metadata declared outside the Go types, keyed by type name
// and then field name:
//
//	Customer:
//	  FirstName:
//	    display: First name
//	    description: The customer's first name.
//	    required: true
type Overlay struct {
	types map[string]map[string]FieldOverlay
}

// FieldOverlay overrides individual metadata values. Unset fields keep the
// struct tag value.
type FieldOverlay struct {
	Display     *string `yaml:"display"`
	Description *string `yaml:"description"`
	Prompt      *string `yaml:"prompt"`
	DataType    *string `yaml:"datatype"`
	UIHint      *string `yaml:"uihint"`
	Required    *bool   `yaml:"required"`
}

// ParseOverlay decodes a single YAML overlay document.
func ParseOverlay(data []byte) (*Overlay, error) {
	overlay := &Overlay{types: make(map[string]map[string]FieldOverlay)}
	if err := overlay.merge(data, "<inline>"); err != nil {
		return nil, err
	}
	return overlay, nil
}

// LoadOverlayFS walks fsys and merges every .yaml/.yml file. Declaring the
// same type and field twice is an error.
func LoadOverlayFS(fsys fs.FS) (*Overlay, error) {
	overlay := &Overlay{types: make(map[string]map[string]FieldOverlay)}
	if fsys == nil {
		return overlay, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isOverlayFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("metadata: read %s: %w", path, err)
		}
		return overlay.merge(data, path)
	})
	if err != nil {
		return nil, err
	}
	return overlay, nil
}

// Field returns the overlay for typeName.field.
func (o *Overlay) Field(typeName, field string) (FieldOverlay, bool) {
	if o == nil {
		return FieldOverlay{}, false
	}
	fields, ok := o.types[typeName]
	if !ok {
		return FieldOverlay{}, false
	}
	f, ok := fields[field]
	return f, ok
}

// Empty reports whether the overlay declares anything.
func (o *Overlay) Empty() bool {
	return o == nil || len(o.types) == 0
}

func (o *Overlay) merge(data []byte, source string) error {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	var doc map[string]map[string]FieldOverlay
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("metadata: parse %s: %w", source, err)
	}
	for typeName, fields := range doc {
		typeName = strings.TrimSpace(typeName)
		if typeName == "" {
			return fmt.Errorf("metadata: file %s declares an empty type name", source)
		}
		existing := o.types[typeName]
		if existing == nil {
			existing = make(map[string]FieldOverlay, len(fields))
			o.types[typeName] = existing
		}
		for field, value := range fields {
			if _, dup := existing[field]; dup {
				return fmt.Errorf("metadata: duplicate overlay for %s.%s (file %s)", typeName, field, source)
			}
			existing[field] = value
		}
	}
	return nil
}

func (o *Overlay) apply(typeName, field string, meta Metadata) Metadata {
	f, ok := o.Field(typeName, field)
	if !ok {
		return meta
	}
	if f.Display != nil {
		meta.DisplayName = *f.Display
	}
	if f.Description != nil {
		meta.Description = *f.Description
	}
	if f.Prompt != nil {
		meta.Prompt = *f.Prompt
	}
	if f.DataType != nil {
		meta.DataType = *f.DataType
	}
	if f.UIHint != nil {
		meta.TemplateHint = *f.UIHint
	}
	if f.Required != nil {
		meta.Required = *f.Required
	}
	return meta
}

func isOverlayFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
