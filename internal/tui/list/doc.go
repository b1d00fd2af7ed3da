// Package listview hosts a window.List inside a Bubble Tea program.
//
// The model owns an in-memory dom container and a window.List with one unit
// per terminal row. Scrolling moves the container's scroll offset, the list
// re-renders only the rows in range, and View lays the container's absolutely
// positioned children out on a fixed-height character grid. Keyboard
// navigation (up/down, j/k, pgup/pgdn, home/end) moves a selection that is
// always scrolled into view; the mouse wheel scrolls without moving it.
package listview
