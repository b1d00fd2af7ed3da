package window

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Construction errors.
var (
	ErrNilContainer          = errors.New("container is required")
	ErrNilRenderItem         = errors.New("render item function is required")
	ErrInvalidViewportHeight = errors.New("viewport height must be non-negative")
	ErrInvalidItemHeight     = errors.New("item height must be non-negative")
)

// RenderFunc produces the node for one item. It is called once per visible item
// per render pass; the engine positions whatever node it returns. A nil node
// is left out of the frame.
type RenderFunc[T any] func(item T, index int) Node

// Options configures a List. Options are fixed for the lifetime of the List.
type Options[T any] struct {
	// Data is the ordered item sequence.
	Data []T

	// ItemHeight is the fixed per-item height. Zero selects DefaultItemHeight.
	// Ignored when DynamicHeight is set.
	ItemHeight float64

	// Height is the viewport height.
	Height float64

	// RenderItem is required.
	RenderItem RenderFunc[T]

	// ClassName is applied to the container when non-empty.
	ClassName string

	// Styles are merged onto the container after the structural styles.
	Styles Style

	// DynamicHeight switches the list to per-item heights. Rendered items then
	// also get an explicit height.
	DynamicHeight HeightFunc[T]

	// Logger receives debug output. Nil disables logging.
	Logger *zerolog.Logger
}

// List renders the visible window of Data into a Container.
type List[T any] struct {
	container Container
	opts      Options[T]
	positions *PositionTable
	logger    zerolog.Logger

	rng      Range
	frame    Frame
	rendered bool
	renders  int
}

// New builds the position table, styles the container, attaches a scroll
// listener and performs the initial render.
func New[T any](container Container, opts Options[T]) (*List[T], error) {
	if container == nil {
		return nil, ErrNilContainer
	}
	if opts.RenderItem == nil {
		return nil, ErrNilRenderItem
	}
	if opts.Height < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidViewportHeight, opts.Height)
	}
	if opts.ItemHeight < 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidItemHeight, opts.ItemHeight)
	}

	positions, err := buildPositions(opts)
	if err != nil {
		return nil, fmt.Errorf("building position table: %w", err)
	}

	l := &List[T]{
		container: container,
		opts:      opts,
		positions: positions,
		logger:    zerolog.Nop(),
	}
	if opts.Logger != nil {
		l.logger = *opts.Logger
	}

	l.logger.Debug().
		Int("items", positions.Len()).
		Bool("dynamic", opts.DynamicHeight != nil).
		Float64("total_height", positions.TotalHeight()).
		Float64("viewport_height", opts.Height).
		Msg("position table built")

	if opts.ClassName != "" {
		container.SetClassName(opts.ClassName)
	}
	container.ApplyStyle(MergeStyles(ContainerStyle(opts.Height), opts.Styles))

	container.AddScrollListener(func() { l.HandleScroll() })

	l.rng = positions.Resolve(container.ScrollTop(), opts.Height)
	l.render()

	return l, nil
}

func buildPositions[T any](opts Options[T]) (*PositionTable, error) {
	if opts.DynamicHeight != nil {
		return NewPositionTable(opts.Data, opts.DynamicHeight)
	}
	return NewFixedPositionTable(len(opts.Data), opts.ItemHeight), nil
}

// HandleScroll resolves the range for the container's current scroll offset and
// re-renders when it differs from the last rendered range. It reports whether a
// render pass ran.
func (l *List[T]) HandleScroll() bool {
	next := l.positions.Resolve(l.container.ScrollTop(), l.opts.Height)
	if l.rendered && next == l.rng {
		return false
	}
	l.rng = next
	l.render()
	return true
}

// render rebuilds the container's children for the current range.
func (l *List[T]) render() {
	frame := BuildFrame(l.positions, l.rng, l.opts.DynamicHeight != nil)

	nodes := make([]Node, 0, len(frame.Items)+2)

	top := l.container.CreateNode()
	top.ApplyStyle(spacerStyle(frame.TopSpacer))
	nodes = append(nodes, top)

	for _, p := range frame.Items {
		node := l.opts.RenderItem(l.opts.Data[p.Index], p.Index)
		if node == nil {
			continue
		}
		node.ApplyStyle(placementStyle(p))
		nodes = append(nodes, node)
	}

	bottom := l.container.CreateNode()
	bottom.ApplyStyle(spacerStyle(frame.BottomSpacer))
	nodes = append(nodes, bottom)

	l.container.ReplaceChildren(nodes...)

	l.frame = frame
	l.rendered = true
	l.renders++

	l.logger.Debug().
		Stringer("range", frame.Range).
		Float64("top_spacer", frame.TopSpacer).
		Float64("bottom_spacer", frame.BottomSpacer).
		Int("nodes", len(nodes)).
		Msg("render pass")
}

// Range returns the last rendered range.
func (l *List[T]) Range() Range {
	return l.rng
}

// Frame returns the layout instructions of the last render pass.
func (l *List[T]) Frame() Frame {
	return l.frame
}

// Positions returns the list's position table.
func (l *List[T]) Positions() *PositionTable {
	return l.positions
}

// RenderCount returns how many render passes have run, including the initial one.
func (l *List[T]) RenderCount() int {
	return l.renders
}

// ViewportHeight returns the fixed viewport height.
func (l *List[T]) ViewportHeight() float64 {
	return l.opts.Height
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.opts.Data)
}

// Item returns the item at index and whether index is in bounds.
func (l *List[T]) Item(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(l.opts.Data) {
		return zero, false
	}
	return l.opts.Data[index], true
}
