package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Options controls a single conversion.
type Options struct {
	// AllowHTML passes embedded HTML through and sanitises the result.
	AllowHTML bool
	// NormalizeIndentation strips the common indent before conversion.
	NormalizeIndentation bool
}

// DefaultOptions escapes HTML and normalises indentation.
func DefaultOptions() Options {
	return Options{NormalizeIndentation: true}
}

// Renderer converts markdown. It is safe for concurrent use.
type Renderer struct {
	escaping goldmark.Markdown
	raw      goldmark.Markdown
}

// New builds a Renderer with both conversion pipelines prepared.
func New() *Renderer {
	return &Renderer{
		escaping: goldmark.New(goldmark.WithParser(textOnlyParser())),
		raw: goldmark.New(
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

var defaultRenderer = New()

// Render converts source with the shared Renderer.
func Render(ctx context.Context, source string, opts Options) (string, error) {
	return defaultRenderer.Render(ctx, source, opts)
}

// Render converts source to HTML. Malformed markdown never fails; the only
// errors are cancellation and writer failures.
func (r *Renderer) Render(ctx context.Context, source string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if opts.NormalizeIndentation {
		source = NormalizeIndentation(source)
	}

	md := r.escaping
	if opts.AllowHTML {
		md = r.raw
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: convert: %w", err)
	}

	out := buf.String()
	if opts.AllowHTML {
		out = Sanitize(out)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return out, nil
}

// IsBlank reports whether source has nothing to convert.
func IsBlank(source string) bool {
	return strings.TrimSpace(source) == ""
}

// textOnlyParser is the CommonMark parser without the HTML block and raw HTML
// inline parsers, so markup in the source is read as literal text.
func textOnlyParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(without(parser.DefaultBlockParsers(), parser.NewHTMLBlockParser())...),
		parser.WithInlineParsers(without(parser.DefaultInlineParsers(), parser.NewRawHTMLParser())...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}

func without(values []util.PrioritizedValue, drop any) []util.PrioritizedValue {
	out := values[:0]
	for _, v := range values {
		if v.Value == drop {
			continue
		}
		out = append(out, v)
	}
	return out
}
