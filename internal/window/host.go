package window

// Node is a host-owned visual element the engine can position.
type Node interface {
	// ApplyStyle merges s onto the node's inline style.
	ApplyStyle(s Style)
}

// Container is the scrollable host element a List renders into.
type Container interface {
	Node

	// SetClassName replaces the container's class attribute.
	SetClassName(name string)

	// ScrollTop returns the current vertical scroll offset.
	ScrollTop() float64

	// AddScrollListener registers fn to run synchronously on every scroll event.
	AddScrollListener(fn func())

	// CreateNode returns a new, detached, empty node (used for spacers).
	CreateNode() Node

	// ReplaceChildren discards all current children and appends nodes in order.
	ReplaceChildren(nodes ...Node)
}
