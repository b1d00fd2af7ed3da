package window

// Placement positions one rendered item inside the container.
type Placement struct {
	Index int
	Top   float64
	// Height is the item's height from the position table. It is only applied
	// to the node when ExplicitHeight is set (dynamic-height mode).
	Height         float64
	ExplicitHeight bool
}

// Frame is the set of layout instructions for one render pass.
type Frame struct {
	Range        Range
	TopSpacer    float64
	Items        []Placement
	BottomSpacer float64
	TotalHeight  float64
}

// RenderedHeight returns the summed height of the placed items.
func (f Frame) RenderedHeight() float64 {
	sum := 0.0
	for _, p := range f.Items {
		sum += p.Height
	}
	return sum
}

// BuildFrame computes the spacer heights and item placements for r.
//
// The top spacer reserves offset[start]; the bottom spacer reserves everything
// after the last placed item and is never negative. End is clamped to the last
// index before any lookup. An empty range or table yields two zero spacers and
// no items.
func BuildFrame(t *PositionTable, r Range, explicitHeight bool) Frame {
	frame := Frame{Range: r, TotalHeight: t.TotalHeight()}
	if t.Len() == 0 || r.IsEmpty() {
		frame.Range = EmptyRange
		return frame
	}

	start := r.Start
	if start < 0 {
		start = 0
	}
	end := min(r.End, t.LastIndex())
	if start > end {
		start = end
	}
	frame.Range = Range{Start: start, End: end}

	frame.TopSpacer = t.Offset(start)

	frame.Items = make([]Placement, 0, end-start+1)
	for i := start; i <= end; i++ {
		frame.Items = append(frame.Items, Placement{
			Index:          i,
			Top:            t.Offset(i),
			Height:         t.Height(i),
			ExplicitHeight: explicitHeight,
		})
	}

	bottom := t.TotalHeight() - t.Offset(end) - t.Height(end)
	if bottom < 0 {
		bottom = 0
	}
	frame.BottomSpacer = bottom

	return frame
}
