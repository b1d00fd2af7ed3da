package window

import (
	"errors"
	"fmt"
	"math"
)

// DefaultItemHeight is used when neither a fixed item height nor a dynamic
// height function is configured.
const DefaultItemHeight = 50.0

// ErrInvalidHeight is returned when a height function yields a value that is
// not a positive finite number.
var ErrInvalidHeight = errors.New("item height must be a positive finite number")

// HeightFunc returns the height of the item at index.
type HeightFunc[T any] func(item T, index int) float64

// PositionTable maps item indices to top offsets.
//
// Entry i is the sum of the heights of items 0..i-1. A table built with
// NewFixedPositionTable stores nothing per item and computes offsets as
// index*itemHeight when that product equals the running sum exactly.
type PositionTable struct {
	count   int
	offsets []float64
	heights []float64

	// fixed is the per-item height in fixed mode, 0 in dynamic mode.
	fixed float64
	total float64
}

// NewPositionTable builds the table for items using h. It is O(n) in time and
// space. h is called exactly once per item.
func NewPositionTable[T any](items []T, h HeightFunc[T]) (*PositionTable, error) {
	t := &PositionTable{
		count:   len(items),
		offsets: make([]float64, len(items)),
		heights: make([]float64, len(items)),
	}

	current := 0.0
	for i, item := range items {
		height := h(item, i)
		if height <= 0 || math.IsNaN(height) || math.IsInf(height, 0) {
			return nil, fmt.Errorf("item %d: height %v: %w", i, height, ErrInvalidHeight)
		}
		t.offsets[i] = current
		t.heights[i] = height
		current += height
	}
	t.total = current

	return t, nil
}

// maxExactFloat is 2^53, below which every integer is exactly representable.
const maxExactFloat = 1 << 53

// NewFixedPositionTable returns a table for n items of identical height.
// A non-positive or non-finite itemHeight falls back to DefaultItemHeight.
//
// The arithmetic form is used only for whole-number heights whose total stays
// below 2^53. Any other height gets a slice-backed table, so offsets match a
// running sum bit for bit.
func NewFixedPositionTable(n int, itemHeight float64) *PositionTable {
	if itemHeight <= 0 || math.IsNaN(itemHeight) || math.IsInf(itemHeight, 0) {
		itemHeight = DefaultItemHeight
	}
	if n < 0 {
		n = 0
	}

	total := float64(n) * itemHeight
	if itemHeight != math.Trunc(itemHeight) || total >= maxExactFloat {
		t, _ := NewPositionTable(make([]struct{}, n), func(struct{}, int) float64 {
			return itemHeight
		})
		return t
	}

	return &PositionTable{
		count: n,
		fixed: itemHeight,
		total: total,
	}
}

// Len returns the number of items in the table.
func (t *PositionTable) Len() int {
	return t.count
}

// LastIndex returns the index of the last item, or -1 for an empty table.
func (t *PositionTable) LastIndex() int {
	return t.count - 1
}

// IsFixed reports whether the table was built in fixed-height mode.
func (t *PositionTable) IsFixed() bool {
	return t.fixed > 0
}

// TotalHeight returns the content height: last offset plus last height, 0 when empty.
func (t *PositionTable) TotalHeight() float64 {
	return t.total
}

// Offset returns the top offset of item i. Indices outside [0, LastIndex] are
// clamped; an empty table always returns 0.
func (t *PositionTable) Offset(i int) float64 {
	if t.count == 0 {
		return 0
	}
	i = t.clamp(i)
	if t.IsFixed() {
		return float64(i) * t.fixed
	}
	return t.offsets[i]
}

// Height returns the height of item i, clamping i like Offset.
func (t *PositionTable) Height(i int) float64 {
	if t.count == 0 {
		return 0
	}
	if t.IsFixed() {
		return t.fixed
	}
	return t.heights[t.clamp(i)]
}

// Offsets returns a copy of all top offsets.
func (t *PositionTable) Offsets() []float64 {
	out := make([]float64, t.count)
	for i := range out {
		out[i] = t.Offset(i)
	}
	return out
}

func (t *PositionTable) clamp(i int) int {
	switch {
	case i < 0:
		return 0
	case i > t.count-1:
		return t.count - 1
	default:
		return i
	}
}
