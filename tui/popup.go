package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Popup draws a centered box with the given title and lines, sized to
// the content and clamped to the screen.
func Popup(s tcell.Screen, title string, lines []string, style tcell.Style) {
	sw, sh := s.Size()

	w := runewidth.StringWidth(title) + 6
	for _, l := range lines {
		if lw := runewidth.StringWidth(l) + 4; lw > w {
			w = lw
		}
	}
	h := len(lines) + 2
	if w > sw {
		w = sw
	}
	if h > sh {
		h = sh
	}
	x := (sw - w) / 2
	y := (sh - h) / 2

	Fill(s, x, y, w, h, ' ', style)
	Box(s, x, y, w, h, title, style)
	for i, l := range lines {
		if i+1 >= h-1 {
			break
		}
		Text(s, x+2, y+1+i, w-4, l, style)
	}
}
