package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"intrack/terminal"
)

// Input is a single-line text field. It owns its rune buffer and cursor;
// the page that hosts it decides when it has focus.
type Input struct {
	runes  []rune
	cursor int
}

// Text returns the current contents.
func (in *Input) Text() string { return string(in.runes) }

// SetText replaces the contents and moves the cursor to the end.
func (in *Input) SetText(s string) {
	in.runes = []rune(s)
	in.cursor = len(in.runes)
}

// Reset clears the field.
func (in *Input) Reset() {
	in.runes = in.runes[:0]
	in.cursor = 0
}

// Handle applies one event to the field. It reports whether the event
// was consumed; navigation and quit keys fall through to the caller.
func (in *Input) Handle(ev terminal.Event) bool {
	switch ev.Type {
	case terminal.EventPaste:
		for _, r := range ev.Text {
			if r == '\n' || r == '\r' || r == '\t' {
				r = ' '
			}
			in.insert(r)
		}
		return true
	case terminal.EventKey:
	default:
		return false
	}

	switch ev.Key {
	case tcell.KeyRune:
		if !ev.IsRune() {
			return false
		}
		in.insert(ev.Rune)
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if in.cursor > 0 {
			in.runes = append(in.runes[:in.cursor-1], in.runes[in.cursor:]...)
			in.cursor--
		}
		return true
	case tcell.KeyDelete:
		if in.cursor < len(in.runes) {
			in.runes = append(in.runes[:in.cursor], in.runes[in.cursor+1:]...)
		}
		return true
	case tcell.KeyLeft:
		if in.cursor > 0 {
			in.cursor--
		}
		return true
	case tcell.KeyRight:
		if in.cursor < len(in.runes) {
			in.cursor++
		}
		return true
	case tcell.KeyHome, tcell.KeyCtrlA:
		in.cursor = 0
		return true
	case tcell.KeyEnd, tcell.KeyCtrlE:
		in.cursor = len(in.runes)
		return true
	case tcell.KeyCtrlU:
		in.Reset()
		return true
	}
	return false
}

func (in *Input) insert(r rune) {
	in.runes = append(in.runes, 0)
	copy(in.runes[in.cursor+1:], in.runes[in.cursor:])
	in.runes[in.cursor] = r
	in.cursor++
}

// Render draws the field at (x, y) within w cells. The prefix is drawn
// first, then the text, then the cursor cell in reverse video when
// focused.
func (in *Input) Render(s tcell.Screen, x, y, w int, prefix string, focused bool, style tcell.Style) {
	used := Text(s, x, y, w, prefix, style)
	x += used
	w -= used
	if w <= 0 {
		return
	}

	// Scroll the view so the cursor stays visible.
	start := 0
	if in.cursor >= w {
		start = in.cursor - w + 1
	}
	visible := in.runes[start:]

	col := 0
	for i, r := range visible {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			rw = 1
		}
		if col+rw > w {
			break
		}
		st := style
		if focused && start+i == in.cursor {
			st = st.Reverse(true)
		}
		s.SetContent(x+col, y, r, nil, st)
		col += rw
	}
	if focused && in.cursor >= len(in.runes) && col < w {
		s.SetContent(x+col, y, ' ', nil, style.Reverse(true))
	}
}
