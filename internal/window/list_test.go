package window_test

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/vlist/internal/dom"
	"github.com/rshade/vlist/internal/window"
)

func renderLabel(item string, index int) window.Node {
	e := dom.NewText(item)
	e.SetAttr("data-index", strconv.Itoa(index))
	return e
}

func labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("item %d", i)
	}
	return out
}

// itemChildren returns the rendered item nodes, skipping the two spacers.
func itemChildren(t *testing.T, container *dom.Element) []*dom.Element {
	t.Helper()
	children := container.Children()
	require.GreaterOrEqual(t, len(children), 2, "expected top and bottom spacers")
	return children[1 : len(children)-1]
}

func spacerHeights(t *testing.T, container *dom.Element) (float64, float64) {
	t.Helper()
	children := container.Children()
	require.GreaterOrEqual(t, len(children), 2)
	top, ok := dom.ParsePx(children[0].StyleValue(window.PropHeight))
	require.True(t, ok)
	bottom, ok := dom.ParsePx(children[len(children)-1].StyleValue(window.PropHeight))
	require.True(t, ok)
	return top, bottom
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		container window.Container
		opts      window.Options[string]
		wantErr   error
	}{
		{
			name:    "nil container",
			opts:    window.Options[string]{RenderItem: renderLabel},
			wantErr: window.ErrNilContainer,
		},
		{
			name:      "nil render item",
			container: dom.NewElement("div"),
			opts:      window.Options[string]{},
			wantErr:   window.ErrNilRenderItem,
		},
		{
			name:      "negative viewport",
			container: dom.NewElement("div"),
			opts:      window.Options[string]{RenderItem: renderLabel, Height: -1},
			wantErr:   window.ErrInvalidViewportHeight,
		},
		{
			name:      "negative item height",
			container: dom.NewElement("div"),
			opts:      window.Options[string]{RenderItem: renderLabel, ItemHeight: -3},
			wantErr:   window.ErrInvalidItemHeight,
		},
		{
			name:      "invalid dynamic height",
			container: dom.NewElement("div"),
			opts: window.Options[string]{
				Data:          []string{"a"},
				RenderItem:    renderLabel,
				DynamicHeight: func(string, int) float64 { return 0 },
			},
			wantErr: window.ErrInvalidHeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := window.New(tt.container, tt.opts)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, l)
		})
	}
}

func TestNew_ContainerStyles(t *testing.T) {
	container := dom.NewElement("div")

	_, err := window.New(container, window.Options[string]{
		Data:       labels(3),
		Height:     500,
		RenderItem: renderLabel,
		ClassName:  "feed",
		Styles: window.Style{
			"background": "black",
			"height":     "640px",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "feed", container.ClassName())
	assert.Equal(t, "relative", container.StyleValue(window.PropPosition))
	assert.Equal(t, "auto", container.StyleValue(window.PropOverflowY))
	assert.Equal(t, "black", container.StyleValue("background"))
	assert.Equal(t, "640px", container.StyleValue(window.PropHeight), "caller styles apply after structural styles")
	assert.Equal(t, 1, container.ListenerCount())
}

func TestNew_FixedHeightInitialRender(t *testing.T) {
	container := dom.NewElement("div")

	l, err := window.New(container, window.Options[string]{
		Data:       labels(1000),
		ItemHeight: 50,
		Height:     500,
		RenderItem: renderLabel,
	})
	require.NoError(t, err)

	assert.Equal(t, window.Range{Start: 0, End: 10}, l.Range())
	assert.Equal(t, 1, l.RenderCount())

	items := itemChildren(t, container)
	require.Len(t, items, 11)
	for i, item := range items {
		assert.Equal(t, fmt.Sprintf("item %d", i), item.Text())
		assert.Equal(t, "absolute", item.StyleValue(window.PropPosition))
		assert.Equal(t, window.Px(float64(i)*50), item.StyleValue(window.PropTop))
		assert.Equal(t, "100%", item.StyleValue(window.PropWidth))
		assert.Empty(t, item.StyleValue(window.PropHeight), "fixed mode sets no explicit height")
	}

	top, bottom := spacerHeights(t, container)
	assert.Zero(t, top)
	assert.InDelta(t, 1000*50-500-50, bottom, 1e-9)
}

func TestNew_DefaultItemHeight(t *testing.T) {
	l, err := window.New(dom.NewElement("div"), window.Options[string]{
		Data:       labels(10),
		Height:     100,
		RenderItem: renderLabel,
	})
	require.NoError(t, err)

	assert.InDelta(t, 10*window.DefaultItemHeight, l.Positions().TotalHeight(), 1e-9)
	assert.Equal(t, window.Range{Start: 0, End: 2}, l.Range())
}

func TestList_DynamicHeightScroll(t *testing.T) {
	container := dom.NewElement("div")
	heights := []float64{100, 200, 50}

	l, err := window.New(container, window.Options[float64]{
		Data:   heights,
		Height: 150,
		RenderItem: func(item float64, index int) window.Node {
			return dom.NewText(strconv.Itoa(index))
		},
		DynamicHeight: itemAsHeight,
	})
	require.NoError(t, err)

	container.SetScrollTop(50)

	assert.Equal(t, []float64{0, 100, 300}, l.Positions().Offsets())
	assert.Equal(t, window.Range{Start: 0, End: 1}, l.Range())

	items := itemChildren(t, container)
	require.Len(t, items, 2)
	assert.Equal(t, "100px", items[0].StyleValue(window.PropHeight))
	assert.Equal(t, "200px", items[1].StyleValue(window.PropHeight))
	assert.Equal(t, "100px", items[1].StyleValue(window.PropTop))

	top, bottom := spacerHeights(t, container)
	assert.Zero(t, top)
	assert.InDelta(t, 50.0, bottom, 1e-9)
}

func TestList_RendersOnlyOnRangeChange(t *testing.T) {
	container := dom.NewElement("div")
	calls := 0

	l, err := window.New(container, window.Options[string]{
		Data:       labels(100),
		ItemHeight: 10,
		Height:     50,
		RenderItem: func(item string, index int) window.Node {
			calls++
			return renderLabel(item, index)
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, l.RenderCount())
	initialCalls := calls

	// Same rows stay visible within one row of scrolling.
	container.SetScrollTop(4)
	assert.Equal(t, 1, l.RenderCount())
	assert.Equal(t, initialCalls, calls)

	container.SetScrollTop(10)
	assert.Equal(t, 2, l.RenderCount())
	assert.Equal(t, window.Range{Start: 1, End: 6}, l.Range())

	// Idempotence: the same scroll position delivered again renders nothing.
	container.DispatchScroll()
	assert.False(t, l.HandleScroll())
	assert.Equal(t, 2, l.RenderCount())
	assert.Equal(t, window.Range{Start: 1, End: 6}, l.Range())
}

func TestList_FullRebuildLeavesNoStaleNodes(t *testing.T) {
	container := dom.NewElement("div")

	_, err := window.New(container, window.Options[string]{
		Data:       labels(100),
		ItemHeight: 10,
		Height:     30,
		RenderItem: renderLabel,
	})
	require.NoError(t, err)

	container.SetScrollTop(500)

	items := itemChildren(t, container)
	require.Len(t, items, 4)
	for i, item := range items {
		idx, ok := item.Attr("data-index")
		require.True(t, ok)
		assert.Equal(t, strconv.Itoa(50+i), idx)
	}
	assert.Len(t, container.Children(), 6)
}

func TestList_ScrollPastEnd(t *testing.T) {
	container := dom.NewElement("div")

	l, err := window.New(container, window.Options[string]{
		Data:       labels(20),
		ItemHeight: 10,
		Height:     50,
		RenderItem: renderLabel,
	})
	require.NoError(t, err)

	container.SetScrollTop(10_000)

	assert.Equal(t, window.Range{Start: 19, End: 19}, l.Range())
	items := itemChildren(t, container)
	require.Len(t, items, 1)

	top, bottom := spacerHeights(t, container)
	assert.InDelta(t, 190.0, top, 1e-9)
	assert.Zero(t, bottom)
}

func TestList_EmptyData(t *testing.T) {
	container := dom.NewElement("div")

	l, err := window.New(container, window.Options[string]{
		Height:     500,
		RenderItem: renderLabel,
	})
	require.NoError(t, err)

	assert.Zero(t, l.Positions().TotalHeight())
	assert.True(t, l.Range().IsEmpty())
	assert.Equal(t, 1, l.RenderCount())

	children := container.Children()
	require.Len(t, children, 2)
	top, bottom := spacerHeights(t, container)
	assert.Zero(t, top)
	assert.Zero(t, bottom)

	container.SetScrollTop(100)
	assert.True(t, l.Range().IsEmpty())
	assert.Equal(t, 1, l.RenderCount())
}

func TestList_NilNodeSkipped(t *testing.T) {
	container := dom.NewElement("div")

	_, err := window.New(container, window.Options[string]{
		Data:       labels(3),
		ItemHeight: 10,
		Height:     100,
		RenderItem: func(item string, index int) window.Node {
			if index == 1 {
				return nil
			}
			return renderLabel(item, index)
		},
	})
	require.NoError(t, err)

	assert.Len(t, itemChildren(t, container), 2)
}

func TestList_RenderPanicPropagates(t *testing.T) {
	container := dom.NewElement("div")

	assert.PanicsWithValue(t, "boom", func() {
		_, _ = window.New(container, window.Options[string]{
			Data:       labels(3),
			Height:     100,
			RenderItem: func(string, int) window.Node { panic("boom") },
		})
	})
}

func TestList_LogsRenderPasses(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := window.New(dom.NewElement("div"), window.Options[string]{
		Data:       labels(5),
		Height:     100,
		RenderItem: renderLabel,
		Logger:     &logger,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "position table built")
	assert.Contains(t, buf.String(), "render pass")
	assert.Contains(t, buf.String(), `"range":"[0..2]"`)
}

func TestList_Accessors(t *testing.T) {
	l, err := window.New(dom.NewElement("div"), window.Options[string]{
		Data:       labels(4),
		ItemHeight: 20,
		Height:     40,
		RenderItem: renderLabel,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, l.Len())
	assert.InDelta(t, 40.0, l.ViewportHeight(), 1e-9)

	item, ok := l.Item(2)
	assert.True(t, ok)
	assert.Equal(t, "item 2", item)

	_, ok = l.Item(4)
	assert.False(t, ok)

	frame := l.Frame()
	assert.Equal(t, l.Range(), frame.Range)
	assert.InDelta(t, 80.0, frame.TotalHeight, 1e-9)
}
