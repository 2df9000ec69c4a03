package app

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"intrack/terminal"
)

// Page is the screen currently shown.
type Page uint8

const (
	PageTable Page = iota
	PageThread
)

// Focus is the widget that receives key events within a page.
type Focus uint8

const (
	FocusTable Focus = iota
	FocusTableFilter
	FocusThread
)

// Propagation is a handler's verdict on an event.
type Propagation uint8

const (
	// Continue hands the event to the global bindings.
	Continue Propagation = iota
	// Stop consumes the event.
	Stop
)

type routeKey struct {
	page  Page
	focus Focus
}

type handler func(*App, terminal.Event) Propagation

// Exactly one handler per reachable (page, focus) pair.
var routes = map[routeKey]handler{
	{PageTable, FocusTable}:       handleTable,
	{PageTable, FocusTableFilter}: handleTableFilter,
	{PageThread, FocusThread}:     handleThread,
}

// primaryFocus is where focus lands when it is found pointing at a
// widget the current page does not have.
func primaryFocus(p Page) Focus {
	if p == PageThread {
		return FocusThread
	}
	return FocusTable
}

// Route dispatches one event to the handler for the current page and
// focus. A (page, focus) pair with no handler means focus drifted out
// of sync with the page; it is reset and the event dropped. Events the
// page handler leaves alone fall through to the global bindings.
func (a *App) Route(ev terminal.Event) Propagation {
	h, ok := routes[routeKey{a.page, a.focus}]
	if !ok {
		slog.Warn("focus out of sync with page", "page", a.page, "focus", a.focus)
		a.focus = primaryFocus(a.page)
		return Stop
	}

	if h(a, ev) == Stop {
		return Stop
	}

	if ev.Type == terminal.EventKey {
		if ev.Key == tcell.KeyCtrlC || ev.IsChar('q') {
			a.quit = true
			return Stop
		}
	}
	return Continue
}
