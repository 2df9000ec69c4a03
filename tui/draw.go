// Package tui holds small drawing helpers for tcell screens. Everything
// here is a pure consumer of application state: helpers write cells and
// never mutate state or touch the event stream.
package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Text draws s at (x, y) clipped to maxW screen cells, accounting for
// wide runes. Returns the number of cells written.
func Text(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if col+w > maxW {
			break
		}
		s.SetContent(x+col, y, r, nil, style)
		col += w
	}
	return col
}

// Fill paints a rectangle with the given rune and style.
func Fill(s tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			s.SetContent(x+col, y+row, r, nil, style)
		}
	}
}

// Box draws a single-line border around the rectangle and an optional
// title on the top edge.
func Box(s tcell.Screen, x, y, w, h int, title string, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for col := 1; col < w-1; col++ {
		s.SetContent(x+col, y, '─', nil, style)
		s.SetContent(x+col, y+h-1, '─', nil, style)
	}
	for row := 1; row < h-1; row++ {
		s.SetContent(x, y+row, '│', nil, style)
		s.SetContent(x+w-1, y+row, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)

	if title != "" && w > 4 {
		Text(s, x+2, y, w-4, " "+title+" ", style.Bold(true))
	}
}

// Truncate shortens s to fit in w cells, appending an ellipsis when it
// had to cut.
func Truncate(s string, w int) string {
	return runewidth.Truncate(s, w, "…")
}

// Pad right-pads s with spaces to exactly w cells.
func Pad(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}
