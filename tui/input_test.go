package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"intrack/terminal"
)

func key(k tcell.Key, r rune) terminal.Event {
	return terminal.Event{Type: terminal.EventKey, When: time.Now(), Key: k, Rune: r}
}

func char(r rune) terminal.Event { return key(tcell.KeyRune, r) }

func TestInputTyping(t *testing.T) {
	var in Input
	for _, r := range "hello" {
		if !in.Handle(char(r)) {
			t.Fatalf("rune %q not consumed", r)
		}
	}
	if got := in.Text(); got != "hello" {
		t.Fatalf("Text() = %q, want %q", got, "hello")
	}
}

func TestInputEditing(t *testing.T) {
	var in Input
	in.SetText("abc")
	in.Handle(key(tcell.KeyLeft, 0))
	in.Handle(key(tcell.KeyBackspace2, 0))
	if got := in.Text(); got != "ac" {
		t.Fatalf("after backspace: %q, want %q", got, "ac")
	}
	in.Handle(key(tcell.KeyHome, 0))
	in.Handle(key(tcell.KeyDelete, 0))
	if got := in.Text(); got != "c" {
		t.Fatalf("after delete: %q, want %q", got, "c")
	}
	in.Handle(key(tcell.KeyCtrlU, 0))
	if got := in.Text(); got != "" {
		t.Fatalf("after ctrl-u: %q, want empty", got)
	}
}

func TestInputPasteFlattensWhitespace(t *testing.T) {
	var in Input
	in.Handle(terminal.Event{Type: terminal.EventPaste, Text: "a\nb\tc"})
	if got := in.Text(); got != "a b c" {
		t.Fatalf("paste: %q, want %q", got, "a b c")
	}
}

func TestInputIgnoresNavigation(t *testing.T) {
	var in Input
	for _, k := range []tcell.Key{tcell.KeyEnter, tcell.KeyEscape, tcell.KeyDown} {
		if in.Handle(key(k, 0)) {
			t.Fatalf("key %v should not be consumed", k)
		}
	}
}

func TestPadAndTruncate(t *testing.T) {
	if got := Pad("ab", 4); got != "ab  " {
		t.Fatalf("Pad = %q", got)
	}
	if got := Truncate("abcdef", 4); got != "abc…" {
		t.Fatalf("Truncate = %q", got)
	}
}
