package markdown

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// safeURL accepts http(s) and mailto URLs plus scheme-less references
// (relative paths, fragments, queries and the empty string). Protocol-relative
// references ("//host", "/\host") are rejected.
var safeURL = regexp.MustCompile(`^(?i:(?:https?|mailto):|[?#]|$|/(?:[^/\\]|$)|[^:/?#\\]+(?:[/?#]|$))`)

// Sanitize filters converted HTML through the allow-list used when raw HTML
// is permitted. Disallowed elements are removed and their text is kept.
func Sanitize(html string) string {
	return sanitizer().Sanitize(html)
}

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.NewPolicy()

		// Everything goldmark emits for CommonMark.
		p.AllowElements(
			"p", "h1", "h2", "h3", "h4", "h5", "h6",
			"em", "strong", "code", "pre", "blockquote",
			"ul", "ol", "li", "hr", "br", "a", "img",
		)
		p.AllowElements("footer", "video", "source", "iframe")

		p.AllowAttrs("class", "controls").Globally()
		p.AllowAttrs("href").Matching(safeURL).OnElements("a")
		p.AllowAttrs("title").OnElements("a", "img")
		p.AllowAttrs("alt").OnElements("img")
		p.AllowAttrs("src").Matching(safeURL).OnElements("img", "video", "source", "iframe")
		p.AllowAttrs("start").Matching(regexp.MustCompile(`^[0-9]+$`)).OnElements("ol")
		p.AllowAttrs("type").OnElements("source")

		policy = p
	})
	return policy
}
