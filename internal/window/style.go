package window

import (
	"maps"
	"strconv"
)

// Style is a set of inline style properties, keyed by CSS property name.
type Style map[string]string

// Structural style property names the engine relies on.
const (
	PropPosition  = "position"
	PropOverflowY = "overflow-y"
	PropHeight    = "height"
	PropTop       = "top"
	PropWidth     = "width"
)

// Px formats v as a pixel length.
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// ContainerStyle returns the structural styles a scroll container needs for a
// viewport of the given height.
func ContainerStyle(viewportHeight float64) Style {
	return Style{
		PropPosition:  "relative",
		PropOverflowY: "auto",
		PropHeight:    Px(viewportHeight),
	}
}

// MergeStyles returns base with every property of overrides applied on top.
// Neither argument is modified. Structural styles go in base and caller
// overrides in overrides, so callers can replace any property they set.
func MergeStyles(base, overrides Style) Style {
	out := make(Style, len(base)+len(overrides))
	maps.Copy(out, base)
	maps.Copy(out, overrides)
	return out
}

// placementStyle returns the positioning patch applied to a rendered item node.
func placementStyle(p Placement) Style {
	s := Style{
		PropPosition: "absolute",
		PropTop:      Px(p.Top),
		PropWidth:    "100%",
	}
	if p.ExplicitHeight {
		s[PropHeight] = Px(p.Height)
	}
	return s
}

func spacerStyle(height float64) Style {
	return Style{PropHeight: Px(height)}
}
