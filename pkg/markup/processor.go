// Package markup hosts tag helpers: it tokenizes a markup fragment, runs the
// helpers registered for each element and writes the result.
//
// Elements without helpers are written back byte for byte. Text is never
// re-encoded, so element bodies such as markdown reach their helper intact.
package markup

import (
	"context"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/goliatone/go-taghelpers/pkg/metadata"
	"github.com/goliatone/go-taghelpers/pkg/predicate"
	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

func tracer() tracing.Trace {
	return tracing.Select("taghelpers")
}

// Option configures a Processor.
type Option func(*Processor)

// WithEvaluator sets the predicate evaluator used for boolean attributes.
func WithEvaluator(evaluator predicate.Evaluator) Option {
	return func(p *Processor) {
		p.runner.Evaluator = evaluator
	}
}

// WithMetadata sets the metadata provider used for model expressions.
func WithMetadata(provider metadata.Provider) Option {
	return func(p *Processor) {
		p.runner.Metadata = provider
	}
}

// Processor runs the helpers of a Registry over markup.
type Processor struct {
	registry *taghelper.Registry
	runner   taghelper.Runner
}

// New constructs a Processor for registry.
func New(registry *taghelper.Registry, opts ...Option) *Processor {
	p := &Processor{registry: registry}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Render processes fragment and returns the resulting markup.
func (p *Processor) Render(ctx context.Context, view *taghelper.ViewContext, fragment string) (string, error) {
	var out strings.Builder
	if err := p.Execute(ctx, view, strings.NewReader(fragment), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// Execute processes the markup read from r and writes it to w. Nothing is
// written when processing fails.
func (p *Processor) Execute(ctx context.Context, view *taghelper.ViewContext, r io.Reader, w io.Writer) error {
	if p == nil || p.registry == nil {
		return fmt.Errorf("markup: processor has no registry")
	}
	nodes, err := parse(r)
	if err != nil {
		return fmt.Errorf("markup: tokenize: %w", err)
	}

	run := &pass{processor: p, view: view}
	var buf strings.Builder
	if err := run.writeNodes(ctx, &buf, nodes); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err = io.WriteString(w, buf.String())
	return err
}

// pass is one Execute call. It numbers elements for Context.UniqueID.
type pass struct {
	processor *Processor
	view      *taghelper.ViewContext
	seq       int
}

func (r *pass) writeNodes(ctx context.Context, buf *strings.Builder, nodes []*node) error {
	for _, n := range nodes {
		if err := r.writeNode(ctx, buf, n); err != nil {
			return err
		}
	}
	return nil
}

func (r *pass) writeNode(ctx context.Context, buf *strings.Builder, n *node) error {
	if n.kind == textNode {
		buf.Write(n.raw)
		return nil
	}

	descriptors := r.processor.registry.Resolve(n.tag, n.attrs)
	if len(descriptors) == 0 {
		buf.Write(n.raw)
		if err := r.writeNodes(ctx, buf, n.children); err != nil {
			return err
		}
		buf.Write(n.rawEnd)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	r.seq++
	tc := taghelper.NewContext(n.tag, n.attrs, "th-"+strconv.Itoa(r.seq))

	var children taghelper.ChildContentFunc
	if len(n.children) > 0 {
		children = func(ctx context.Context) (string, error) {
			var inner strings.Builder
			if err := r.writeNodes(ctx, &inner, n.children); err != nil {
				return "", err
			}
			return inner.String(), nil
		}
	}
	out := taghelper.NewOutput(n.tag, n.attrs, children)
	switch {
	case n.void:
		out.TagMode = taghelper.TagModeStartTagOnly
	case n.selfClosing:
		out.TagMode = taghelper.TagModeSelfClosing
	}

	if err := r.processor.runner.Run(ctx, r.view, descriptors, tc, out); err != nil {
		return fmt.Errorf("markup: %w", err)
	}
	return writeOutput(ctx, buf, out)
}

func writeOutput(ctx context.Context, buf *strings.Builder, out *taghelper.Output) error {
	buf.WriteString(out.PreElement.String())

	hasTag := out.TagName != ""
	if hasTag {
		buf.WriteByte('<')
		buf.WriteString(out.TagName)
		for _, attr := range out.Attributes {
			buf.WriteByte(' ')
			buf.WriteString(attr.Name)
			buf.WriteString(`="`)
			buf.WriteString(html.EscapeString(attr.Value))
			buf.WriteByte('"')
		}
		if out.TagMode == taghelper.TagModeSelfClosing {
			buf.WriteString(" /")
		}
		buf.WriteByte('>')
	}

	if !hasTag || out.TagMode == taghelper.TagModeStartTagAndEndTag {
		buf.WriteString(out.PreContent.String())
		if out.IsContentModified() {
			buf.WriteString(out.Content.String())
		} else {
			child, err := out.GetChildContent(ctx)
			if err != nil {
				return err
			}
			buf.WriteString(child)
		}
		buf.WriteString(out.PostContent.String())
	}

	if hasTag && out.TagMode == taghelper.TagModeStartTagAndEndTag {
		buf.WriteString("</")
		buf.WriteString(out.TagName)
		buf.WriteByte('>')
	}

	buf.WriteString(out.PostElement.String())
	tracer().Debugf("markup: wrote <%s> (%d attribute(s))", out.TagName, len(out.Attributes))
	return nil
}
