// Package window implements a windowed (virtualized) list engine.
//
// Only the items intersecting a fixed-size viewport are materialized as host
// nodes; two spacers reserve the scroll extent of everything above and below
// the window. The package is split into three parts:
//   - PositionTable: cumulative top offsets per item index (fixed or dynamic heights)
//   - Resolve: maps a scroll interval to an inclusive visible index Range
//   - BuildFrame / List: turns a Range into spacer and item placement
//     instructions and applies them to a Container as a full rebuild
//
// The engine is single-threaded: a List must only be driven from the goroutine
// that delivers its scroll events.
package window
