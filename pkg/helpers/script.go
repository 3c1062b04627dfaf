package helpers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

const (
	attrInline = "inline"
	attrSrc    = "src"
)

// ScriptInlining replaces a <script inline src="..."> reference with the
// file's content when the file lives in the web root. Absolute URLs and
// missing files leave the element alone.
type ScriptInlining struct {
	WebRoot fs.FS
	View    *taghelper.ViewContext
	Inline  bool
}

func scriptInliningDescriptor(svc Services) taghelper.Descriptor {
	return taghelper.Descriptor{
		Name:    "script-inlining",
		Targets: []taghelper.Target{{Tag: "script", Attributes: []string{attrInline}}},
		Bound:   []string{attrInline},
		Factory: func(b *taghelper.Binding) (taghelper.Helper, error) {
			inline, err := b.Bool(attrInline, false)
			if err != nil {
				return nil, err
			}
			return &ScriptInlining{WebRoot: svc.WebRoot, View: b.View(), Inline: inline}, nil
		},
	}
}

// Order implements taghelper.Helper.
func (h *ScriptInlining) Order() int { return taghelper.OrderDefault }

// Process implements taghelper.Helper.
func (h *ScriptInlining) Process(ctx context.Context, tc *taghelper.Context, out *taghelper.Output) error {
	if ok, err := guard("script inline", tc, out); !ok {
		return err
	}
	if !h.Inline || h.WebRoot == nil {
		return nil
	}
	src, ok := out.Attributes.Get(attrSrc)
	if !ok {
		return nil
	}

	resolved := src.Value
	if i := strings.IndexByte(resolved, '?'); i >= 0 {
		resolved = resolved[:i]
	}
	if isAbsoluteURL(resolved) {
		return nil
	}

	name, found := h.locate(resolved)
	if !found {
		return nil
	}
	content, err := readFile(ctx, h.WebRoot, name)
	if err != nil {
		return fmt.Errorf("helpers: inline %q: %w", src.Value, err)
	}
	out.Content.AppendHTML(content)
	out.Attributes.Remove(attrSrc)
	return nil
}

// locate finds the file, retrying without the request path base.
func (h *ScriptInlining) locate(resolved string) (string, bool) {
	if name, ok := statFile(h.WebRoot, resolved); ok {
		return name, true
	}
	if h.View == nil || h.View.PathBase == "" {
		return "", false
	}
	base := "/" + strings.Trim(h.View.PathBase, "/")
	if len(resolved) < len(base) || !strings.EqualFold(resolved[:len(base)], base) {
		return "", false
	}
	return statFile(h.WebRoot, resolved[len(base):])
}

func statFile(root fs.FS, p string) (string, bool) {
	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}
	info, err := fs.Stat(root, name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return name, true
}

func isAbsoluteURL(raw string) bool {
	if strings.HasPrefix(raw, "//") {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs()
}

// readFile reads name in chunks, stopping when ctx is cancelled.
func readFile(ctx context.Context, root fs.FS, name string) (string, error) {
	f, err := root.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var builder strings.Builder
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := f.Read(buf)
		builder.Write(buf[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return builder.String(), nil
}
