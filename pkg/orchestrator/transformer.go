package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/taghelper"
	"gopkg.in/yaml.v3"
)

// Transformer mutates page data before the page template renders.
// Implementations can inject site-wide values or derive values from the view.
type Transformer interface {
	Transform(ctx context.Context, view *taghelper.ViewContext, data map[string]any) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, view *taghelper.ViewContext, data map[string]any) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, view *taghelper.ViewContext, data map[string]any) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, view, data)
}

// PresetTransformer applies values loaded from a YAML document. Defaults
// only fill keys the page data does not already carry; overrides always win.
//
//	defaults:
//	  title: Tag helper pack
//	overrides:
//	  footer: Rendered by taghelpers
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Defaults  map[string]any `yaml:"defaults"`
	Overrides map[string]any `yaml:"overrides"`
}

// NewPresetTransformer constructs a transformer from raw YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform merges the preset into data.
func (t *PresetTransformer) Transform(ctx context.Context, _ *taghelper.ViewContext, data map[string]any) error {
	if data == nil {
		return errors.New("preset transformer: page data is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	for key, value := range t.document.Defaults {
		if _, exists := data[key]; !exists {
			data[key] = value
		}
	}
	for key, value := range t.document.Overrides {
		data[key] = value
	}
	return nil
}
