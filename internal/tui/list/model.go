package listview

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/vlist/internal/dom"
	"github.com/rshade/vlist/internal/window"
)

// wheelStep is the number of rows one mouse wheel notch scrolls.
const wheelStep = 3

// indexAttr marks item nodes with their data index so View can tell them from spacers.
const indexAttr = "data-index"

// defaultClassName is the container class when none is configured.
const defaultClassName = "vlist"

// ErrNilRenderFunc is returned when Options.Render is nil.
var ErrNilRenderFunc = errors.New("render function is required")

// RenderFunc renders the item at index to one or more lines of text.
type RenderFunc[T any] func(item T, index int) string

// Options configures a VirtualListModel.
type Options[T any] struct {
	// Items is the complete list.
	Items []T

	// Height is the viewport height in rows, excluding the status line.
	Height int

	// Width is the render width in columns. Zero disables truncation.
	Width int

	// ItemHeight is the fixed row count per item. Zero means one row.
	// Ignored when Dynamic is set.
	ItemHeight int

	// Dynamic gives per-item row counts.
	Dynamic window.HeightFunc[T]

	// Render is required.
	Render RenderFunc[T]

	// ClassName is set on the container; it defaults to "vlist".
	ClassName string

	// Styles are merged onto the container's structural styles.
	Styles window.Style

	// Logger receives debug output from the engine. Nil disables logging.
	Logger *zerolog.Logger
}

// VirtualListModel is a Bubble Tea model that shows only the items inside its
// viewport. Rendering is delegated to a window.List attached to an in-memory
// container; the model turns key and mouse input into scroll offsets.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	container *dom.Element
	list      *window.List[T]

	// fixedRows is the per-item row count in fixed mode.
	fixedRows int

	// selected is the currently selected item index (0-based)
	selected int

	// height is the viewport height in rows
	height int

	// width is the viewport width in columns
	width int

	keys KeyMap
}

// NewVirtualListModel creates a list model and performs the initial render.
func NewVirtualListModel[T any](opts Options[T]) (*VirtualListModel[T], error) {
	if opts.Render == nil {
		return nil, ErrNilRenderFunc
	}
	if opts.Height < 0 {
		return nil, fmt.Errorf("%w: got %d", window.ErrInvalidViewportHeight, opts.Height)
	}
	if opts.ItemHeight < 0 {
		return nil, fmt.Errorf("%w: got %d", window.ErrInvalidItemHeight, opts.ItemHeight)
	}

	m := &VirtualListModel[T]{
		items:      opts.Items,
		renderFunc: opts.Render,
		container:  dom.NewElement("div"),
		fixedRows:  max(opts.ItemHeight, 1),
		height:     opts.Height,
		width:      opts.Width,
		keys:       DefaultKeyMap(),
	}

	list, err := window.New(m.container, window.Options[T]{
		Data:          opts.Items,
		ItemHeight:    float64(m.fixedRows),
		Height:        float64(opts.Height),
		RenderItem:    m.renderNode,
		ClassName:     cmp.Or(opts.ClassName, defaultClassName),
		Styles:        opts.Styles,
		DynamicHeight: opts.Dynamic,
		Logger:        opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	m.list = list

	return m, nil
}

// renderNode is the window.RenderFunc backing the list.
func (m *VirtualListModel[T]) renderNode(item T, index int) window.Node {
	n := dom.NewText(m.renderFunc(item, index))
	n.SetAttr(indexAttr, strconv.Itoa(index))
	return n
}

// Init initializes the model (required for tea.Model interface).
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard, mouse and resize messages.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKeyMsg(msg)
	case tea.MouseMsg:
		m.handleMouseMsg(msg)
	case tea.WindowSizeMsg:
		// The engine's viewport height is fixed for its lifetime; only the
		// render width follows the terminal.
		m.width = msg.Width
	}

	return m, nil
}

// handleKeyMsg processes keyboard input for navigation.
func (m *VirtualListModel[T]) handleKeyMsg(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	last := len(m.items) - 1
	switch {
	case key.Matches(msg, m.keys.Up):
		m.SetSelected(m.selected - 1)
	case key.Matches(msg, m.keys.Down):
		m.SetSelected(m.selected + 1)
	case key.Matches(msg, m.keys.PageUp):
		m.SetSelected(m.pageTarget(-1))
	case key.Matches(msg, m.keys.PageDown):
		m.SetSelected(m.pageTarget(1))
	case key.Matches(msg, m.keys.Home):
		m.SetSelected(0)
	case key.Matches(msg, m.keys.End):
		m.SetSelected(last)
	}
}

// pageTarget returns the item one viewport height above (dir < 0) or below the
// selection. It always moves by at least one item when possible.
func (m *VirtualListModel[T]) pageTarget(dir int) int {
	positions := m.list.Positions()
	y := positions.Offset(m.selected) + float64(dir*max(m.height, 1))
	target := positions.Resolve(math.Max(y, 0), 0).Start
	if target == m.selected {
		target += dir
	}
	return target
}

func (m *VirtualListModel[T]) handleMouseMsg(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	//nolint:exhaustive // Only wheel buttons scroll.
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ScrollTo(m.ScrollTop() - wheelStep)
	case tea.MouseButtonWheelDown:
		m.ScrollTo(m.ScrollTop() + wheelStep)
	}
}

// ScrollTo moves the viewport so row y is at the top, clamped so the viewport
// never starts past the last full page.
func (m *VirtualListModel[T]) ScrollTo(y int) {
	maxTop := max(int(m.list.Positions().TotalHeight())-m.height, 0)
	y = min(max(y, 0), maxTop)
	m.container.SetScrollTop(float64(y))
}

// scrollIntoView scrolls the minimum distance that makes the selected item
// visible. Items taller than the viewport are aligned to the top.
func (m *VirtualListModel[T]) scrollIntoView() {
	positions := m.list.Positions()
	top := int(positions.Offset(m.selected))
	bottom := top + int(positions.Height(m.selected))
	scrollTop := m.ScrollTop()

	switch {
	case top < scrollTop:
		m.ScrollTo(top)
	case bottom > scrollTop+m.height:
		if bottom-top > m.height {
			m.ScrollTo(top)
		} else {
			m.ScrollTo(bottom - m.height)
		}
	}
}

// View lays the container's current children out on the viewport grid and
// appends a status line.
func (m *VirtualListModel[T]) View() string {
	rows := make([]string, m.height)
	scrollTop := m.ScrollTop()

	for _, child := range m.container.Children() {
		attr, ok := child.Attr(indexAttr)
		if !ok {
			continue
		}
		index, err := strconv.Atoi(attr)
		if err != nil {
			continue
		}
		top, ok := dom.ParsePx(child.StyleValue(window.PropTop))
		if !ok {
			continue
		}
		h := m.fixedRows
		if v, hasHeight := dom.ParsePx(child.StyleValue(window.PropHeight)); hasHeight {
			h = int(v)
		}

		lines := strings.Split(child.Text(), "\n")
		for k := range h {
			row := int(top) - scrollTop + k
			if row < 0 || row >= m.height {
				continue
			}
			line := ""
			if k < len(lines) {
				line = lines[k]
			}
			rows[row] = m.renderRow(line, index == m.selected)
		}
	}

	if m.height == 0 {
		return m.statusLine()
	}
	return strings.Join(rows, "\n") + "\n" + m.statusLine()
}

func (m *VirtualListModel[T]) renderRow(line string, selected bool) string {
	if m.width > 0 {
		// Truncate before styling; Width alone would wrap long lines.
		line = ItemStyle.MaxWidth(m.width).Render(line)
	}
	if !selected {
		return line
	}
	style := SelectedStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(line)
}

func (m *VirtualListModel[T]) statusLine() string {
	if len(m.items) == 0 {
		return StatusStyle.Render("no items")
	}
	r := m.list.Range()
	return StatusStyle.Render(fmt.Sprintf("items %d-%d of %d  selected %d",
		r.Start+1, r.End+1, len(m.items), m.selected+1))
}

// ItemCount returns the total number of items in the list.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the currently selected item index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected sets the selected item index, capping to valid bounds, and
// scrolls it into view.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}

	switch {
	case index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}

	m.scrollIntoView()
}

// ScrollTop returns the current scroll offset in rows.
func (m *VirtualListModel[T]) ScrollTop() int {
	return int(m.container.ScrollTop())
}

// Range returns the rendered item range.
func (m *VirtualListModel[T]) Range() window.Range {
	return m.list.Range()
}

// VisibleFrom returns the first rendered item index (inclusive).
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.list.Range().Start
}

// VisibleTo returns the last rendered item index (exclusive).
func (m *VirtualListModel[T]) VisibleTo() int {
	return m.list.Range().End + 1
}

// RenderCount returns how many render passes the engine has run.
func (m *VirtualListModel[T]) RenderCount() int {
	return m.list.RenderCount()
}

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the currently selected item.
// Returns nil if list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}

// Container returns the element tree the engine renders into.
func (m *VirtualListModel[T]) Container() *dom.Element {
	return m.container
}
