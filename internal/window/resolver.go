package window

import (
	"fmt"
	"math"
	"sort"
)

// Range is an inclusive interval of item indices.
type Range struct {
	Start int
	End   int
}

// EmptyRange is the range resolved against a table with no items.
//
//nolint:gochecknoglobals // Sentinel value compared against resolved ranges.
var EmptyRange = Range{Start: 0, End: -1}

// IsEmpty reports whether the range selects no items.
func (r Range) IsEmpty() bool {
	return r.End < r.Start
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.IsEmpty() {
		return 0
	}
	return r.End - r.Start + 1
}

// Contains reports whether index lies inside the range.
func (r Range) Contains(index int) bool {
	return !r.IsEmpty() && index >= r.Start && index <= r.End
}

func (r Range) String() string {
	if r.IsEmpty() {
		return "[]"
	}
	return fmt.Sprintf("[%d..%d]", r.Start, r.End)
}

// Resolve returns the visible range for the interval [scrollTop, scrollTop+viewportHeight).
//
// Start is the item starting at or straddling scrollTop, so a row that is
// partially scrolled past the top edge is still rendered. End is the last item
// whose offset is at or above the bottom edge; an item starting exactly on the
// edge is included. A negative scrollTop is treated as 0, and a scrollTop at or
// beyond the total content height clamps Start to the last index.
func (t *PositionTable) Resolve(scrollTop, viewportHeight float64) Range {
	if t.count == 0 {
		return EmptyRange
	}
	if scrollTop < 0 || math.IsNaN(scrollTop) {
		scrollTop = 0
	}
	if viewportHeight < 0 || math.IsNaN(viewportHeight) {
		viewportHeight = 0
	}

	last := t.LastIndex()

	start := last
	if scrollTop < t.total {
		start = t.lastStartingAtOrBefore(scrollTop)
	}

	end := t.lastStartingAtOrBefore(scrollTop + viewportHeight)
	if end < start {
		end = start
	}
	if end > last {
		end = last
	}

	return Range{Start: start, End: end}
}

// lastStartingAtOrBefore returns the largest index whose offset is <= y,
// clamped to [0, LastIndex].
func (t *PositionTable) lastStartingAtOrBefore(y float64) int {
	last := t.LastIndex()

	var i int
	if t.IsFixed() {
		q := math.Floor(y / t.fixed)
		if q >= float64(last) {
			return last
		}
		i = int(q)
		// The quotient can round across an integer boundary.
		if i > 0 && float64(i)*t.fixed > y {
			i--
		} else if i < last && float64(i+1)*t.fixed <= y {
			i++
		}
	} else {
		i = sort.Search(t.count, func(k int) bool { return t.offsets[k] > y }) - 1
	}

	switch {
	case i < 0:
		return 0
	case i > last:
		return last
	default:
		return i
	}
}
