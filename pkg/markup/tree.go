package markup

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/goliatone/go-taghelpers/pkg/taghelper"
)

type nodeKind int

const (
	textNode nodeKind = iota
	elementNode
)

// node is a light element tree. Every node keeps the source bytes it was
// parsed from so untouched markup round-trips exactly.
type node struct {
	kind     nodeKind
	tag      string
	attrs    taghelper.AttributeList
	raw      []byte
	rawEnd   []byte
	children []*node

	selfClosing bool
	void        bool
}

var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "keygen": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

func isVoid(tag string) bool {
	_, ok := voidElements[tag]
	return ok
}

// parse tokenizes r into a forest. Void elements never take children, end
// tags close the nearest open element with the same name, and end tags with
// no open match are kept as text.
func parse(r io.Reader) ([]*node, error) {
	z := html.NewTokenizer(r)
	root := &node{kind: elementNode}
	stack := []*node{root}

	appendChild := func(n *node) {
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, n)
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return root.children, nil
		}
		raw := bytes.Clone(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			el := &node{
				kind:        elementNode,
				tag:         string(name),
				raw:         raw,
				selfClosing: tt == html.SelfClosingTagToken,
			}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				el.attrs.Add(string(key), string(val))
			}
			el.void = isVoid(el.tag)
			appendChild(el)
			if !el.void && !el.selfClosing {
				stack = append(stack, el)
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if i := openIndex(stack, tag); i > 0 {
				stack[i].rawEnd = raw
				stack = stack[:i]
				continue
			}
			appendChild(&node{kind: textNode, raw: raw})
		default:
			// Text, comments and doctypes are emitted as written.
			appendChild(&node{kind: textNode, raw: raw})
		}
	}
}

func openIndex(stack []*node, tag string) int {
	for i := len(stack) - 1; i > 0; i-- {
		if strings.EqualFold(stack[i].tag, tag) {
			return i
		}
	}
	return -1
}
