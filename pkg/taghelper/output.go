package taghelper

import (
	"context"
	"sync"
)

// TagMode describes how the element's tag is written.
type TagMode int

const (
	TagModeStartTagAndEndTag TagMode = iota
	TagModeSelfClosing
	TagModeStartTagOnly
)

// ChildContentFunc renders an element's children on demand.
type ChildContentFunc func(ctx context.Context) (string, error)

// Output is the rendered form of one element. An empty TagName means only
// the inner buffers are emitted.
type Output struct {
	TagName    string
	TagMode    TagMode
	Attributes AttributeList

	PreElement  Content
	PreContent  Content
	Content     Content
	PostContent Content
	PostElement Content

	children ChildContentFunc
	once     sync.Once
	child    string
	childErr error
}

// NewOutput builds an Output for an element. children may be nil for
// elements without content.
func NewOutput(tagName string, attrs AttributeList, children ChildContentFunc) *Output {
	return &Output{
		TagName:    tagName,
		Attributes: attrs.Clone(),
		children:   children,
	}
}

// SuppressOutput clears the tag and every buffer so nothing is emitted.
func (o *Output) SuppressOutput() {
	o.TagName = ""
	o.PreElement.Clear()
	o.PreContent.Clear()
	o.Content.Clear()
	o.PostContent.Clear()
	o.PostElement.Clear()
}

// IsContentModified reports whether a helper replaced the element content.
func (o *Output) IsContentModified() bool {
	return o.Content.IsModified()
}

// GetChildContent renders the element's children once and caches the
// result, including an error.
func (o *Output) GetChildContent(ctx context.Context) (string, error) {
	o.once.Do(func() {
		if o.children == nil {
			return
		}
		o.child, o.childErr = o.children(ctx)
	})
	return o.child, o.childErr
}
