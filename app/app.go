// Package app ties the projected issue store, the terminal session and
// the external editor together into the interactive tracker: one event
// loop that serves editor requests, draws, and routes input.
package app

import (
	"log/slog"

	"intrack/editor"
	"intrack/store"
	"intrack/terminal"
)

// App owns all interactive state. It is single-goroutine: the event
// loop is the only caller of its methods once Run starts.
type App struct {
	store   *store.Store
	logPath string
	author  string
	session *terminal.Session
	slot    editor.Slot
	edit    editor.Runner

	page   Page
	focus  Focus
	table  tableState
	thread threadState
	quit   bool
}

// New builds an App over a loaded store. Records are appended to
// logPath; author stamps new issues and comments.
func New(st *store.Store, logPath, author string, session *terminal.Session) *App {
	return &App{
		store:   st,
		logPath: logPath,
		author:  author,
		session: session,
		edit:    editor.Run,
		page:    PageTable,
		focus:   FocusTable,
		table:   newTableState(),
	}
}

// Run processes events until the stream ends or the user quits. Each
// iteration: serve any pending editor request, draw for events that can
// change what is on screen, then route the event.
func (a *App) Run() error {
	for {
		ev, ok := a.session.Next()
		if !ok {
			return nil
		}
		// Decode errors are per-event; the stream stays usable.
		if ev.Type == terminal.EventError {
			slog.Warn("input decode error", "error", ev.Err)
		}

		if err := a.handshake(); err != nil {
			return err
		}

		switch ev.Type {
		case terminal.EventInit, terminal.EventRender, terminal.EventKey,
			terminal.EventMouse, terminal.EventResize, terminal.EventPaste:
			a.draw()
		}

		a.Route(ev)

		if a.quit {
			return nil
		}
	}
}
