// Package terminal owns the physical terminal: the Session manages raw
// mode and the alternate screen, and the Multiplexer merges raw input
// with tick and render timers into one ordered event stream.
package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// EventType discriminates the Event union.
type EventType uint8

const (
	EventInit EventType = iota
	EventTick
	EventRender
	EventKey
	EventMouse
	EventResize
	EventPaste
	EventFocusGained
	EventFocusLost
	EventError
	EventClosed
)

var eventTypeNames = [...]string{
	EventInit:        "Init",
	EventTick:        "Tick",
	EventRender:      "Render",
	EventKey:         "Key",
	EventMouse:       "Mouse",
	EventResize:      "Resize",
	EventPaste:       "Paste",
	EventFocusGained: "FocusGained",
	EventFocusLost:   "FocusLost",
	EventError:       "Error",
	EventClosed:      "Closed",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "Unknown"
}

// Event is one logical occurrence delivered by the multiplexer.
// Produced only by the multiplexer's background task, consumed only by
// the application loop, immutable once constructed. Which extra fields
// are meaningful depends on Type.
type Event struct {
	Type EventType
	When time.Time

	// EventKey
	Key  tcell.Key
	Rune rune
	Mods tcell.ModMask

	// EventMouse
	MouseX, MouseY int
	Buttons        tcell.ButtonMask

	// EventResize
	Width, Height int

	// EventPaste
	Text string

	// EventError
	Err error
}

// IsRune reports whether the event is a plain character press, with no
// modifiers beyond shift.
func (e Event) IsRune() bool {
	return e.Type == EventKey && e.Key == tcell.KeyRune &&
		e.Mods&^tcell.ModShift == 0
}

// IsChar reports whether the event is a plain key press of ch.
func (e Event) IsChar(ch rune) bool {
	return e.IsRune() && e.Rune == ch
}

// IsKey reports whether the event is a press of the given special key.
func (e Event) IsKey(k tcell.Key) bool {
	return e.Type == EventKey && e.Key == k
}
