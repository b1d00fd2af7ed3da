// Package dom provides a minimal in-memory element tree that hosts a window.List.
//
// Elements carry a tag, class name, inline style, text, attributes and
// children, plus a vertical scroll offset with synchronous scroll listeners.
// No layout is performed here; hosts such as the terminal viewport read the
// inline styles and place nodes themselves.
package dom

import (
	"maps"
	"strconv"
	"strings"

	"github.com/rshade/vlist/internal/window"
)

// Element is a node in the in-memory tree. It satisfies both window.Node and
// window.Container.
type Element struct {
	tag       string
	className string
	style     window.Style
	text      string
	attrs     map[string]string
	children  []*Element
	parent    *Element

	scrollTop float64
	listeners []func()
}

// NewElement returns a detached element with the given tag.
func NewElement(tag string) *Element {
	return &Element{
		tag:   tag,
		style: window.Style{},
		attrs: map[string]string{},
	}
}

// NewText returns a detached "div" element holding text.
func NewText(text string) *Element {
	e := NewElement("div")
	e.text = text
	return e
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// ClassName returns the class attribute.
func (e *Element) ClassName() string { return e.className }

// SetClassName replaces the class attribute.
func (e *Element) SetClassName(name string) { e.className = name }

// Text returns the element's own text content.
func (e *Element) Text() string { return e.text }

// SetText replaces the element's text content.
func (e *Element) SetText(text string) { e.text = text }

// Style returns a copy of the inline style.
func (e *Element) Style() window.Style {
	return maps.Clone(e.style)
}

// StyleValue returns a single inline style property.
func (e *Element) StyleValue(prop string) string {
	return e.style[prop]
}

// ApplyStyle merges s onto the inline style.
func (e *Element) ApplyStyle(s window.Style) {
	maps.Copy(e.style, s)
}

// Attr returns the attribute value and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) {
	e.attrs[name] = value
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child elements in order.
func (e *Element) Children() []*Element {
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// AppendChild attaches child as the last child, detaching it from any previous parent.
func (e *Element) AppendChild(child *Element) {
	if child == nil {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// ReplaceChildren discards all children and appends nodes in order. Nodes that
// are not *Element values cannot live in this tree and are skipped.
func (e *Element) ReplaceChildren(nodes ...window.Node) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = e.children[:0]
	for _, n := range nodes {
		if child, ok := n.(*Element); ok {
			e.AppendChild(child)
		}
	}
}

// CreateNode returns a new detached "div".
func (e *Element) CreateNode() window.Node {
	return NewElement("div")
}

// ScrollTop returns the current vertical scroll offset.
func (e *Element) ScrollTop() float64 { return e.scrollTop }

// SetScrollTop moves the scroll offset and dispatches a scroll event to every
// listener, in registration order, before returning. Negative values clamp to 0.
// Like a browser, no event fires when the offset does not change.
func (e *Element) SetScrollTop(v float64) {
	if v < 0 {
		v = 0
	}
	if v == e.scrollTop {
		return
	}
	e.scrollTop = v
	e.DispatchScroll()
}

// DispatchScroll runs the scroll listeners without changing the offset.
func (e *Element) DispatchScroll() {
	for _, fn := range e.listeners {
		fn()
	}
}

// AddScrollListener registers fn for scroll events.
func (e *Element) AddScrollListener(fn func()) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

// ListenerCount returns the number of registered scroll listeners.
func (e *Element) ListenerCount() int {
	return len(e.listeners)
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// ParsePx parses a pixel length such as "120px" or "12.5px". A bare number is
// accepted. ok is false for empty or malformed values.
func ParsePx(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
