package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"intrack/core"
)

// Config carries the session's capture flags and timer rates.
type Config struct {
	TickRate  float64 // tick events per second
	FrameRate float64 // render events per second
	Mouse     bool    // enable mouse capture
	Paste     bool    // enable bracketed paste capture
}

// Session owns the physical terminal for the lifetime of the program.
//
// State machine: Uninitialized -> RawMode -> Closed. Enter moves to raw
// mode (alternate screen, hidden cursor, capture flags); Exit reverses
// exactly what Enter enabled and is safe to call repeatedly; Close is
// terminal. Suspend and Resume are Exit/Enter aliases used to yield the
// terminal to a foreground child process.
//
// Owned exclusively by the application loop; not safe for concurrent use.
type Session struct {
	screen tcell.Screen
	mux    *Multiplexer
	cfg    Config

	raw      bool // currently in raw mode
	started  bool // screen.Init has run at least once
	closed   bool
	cleanups int // times Exit actually tore capabilities down
}

// NewSession wraps a screen. The screen must not be initialized yet;
// Enter performs initialization so that restoration stays paired with it.
func NewSession(screen tcell.Screen, cfg Config) *Session {
	return &Session{
		screen: screen,
		mux:    NewMultiplexer(screen, cfg.TickRate, cfg.FrameRate),
		cfg:    cfg,
	}
}

// Enter enables raw input mode on the alternate screen, hides the
// cursor, enables the configured capture flags, and starts the event
// multiplexer. Calling Enter while already in raw mode is a no-op.
func (s *Session) Enter() error {
	if s.closed {
		return fmt.Errorf("session is closed")
	}
	if s.raw {
		return nil
	}

	if !s.started {
		if err := s.screen.Init(); err != nil {
			return fmt.Errorf("initialize terminal: %w", err)
		}
		s.started = true
		core.SetCrashScreen(s.screen)
	} else {
		if err := s.screen.Resume(); err != nil {
			return fmt.Errorf("re-enter raw mode: %w", err)
		}
	}

	if s.cfg.Mouse {
		s.screen.EnableMouse()
	}
	if s.cfg.Paste {
		s.screen.EnablePaste()
	}
	s.screen.EnableFocus()
	s.screen.HideCursor()
	s.raw = true

	s.mux.Start()
	slog.Debug("terminal session entered", "mouse", s.cfg.Mouse, "paste", s.cfg.Paste)
	return nil
}

// Exit stops the multiplexer and, if the session is in raw mode,
// reverses the capabilities Enter enabled, flushes pending output, and
// leaves the alternate screen. Safe to call any number of times; only
// the first call after an Enter performs cleanup.
func (s *Session) Exit() error {
	s.mux.Stop()
	if !s.raw {
		return nil
	}

	if s.cfg.Paste {
		s.screen.DisablePaste()
	}
	if s.cfg.Mouse {
		s.screen.DisableMouse()
	}
	s.screen.DisableFocus()
	s.screen.Show() // flush pending output before leaving
	if err := s.screen.Suspend(); err != nil {
		s.raw = false
		return fmt.Errorf("leave raw mode: %w", err)
	}
	s.raw = false
	s.cleanups++
	slog.Debug("terminal session exited")
	return nil
}

// Suspend yields the terminal to a foreground child process.
func (s *Session) Suspend() error { return s.Exit() }

// Resume reclaims the terminal after a child process returns.
func (s *Session) Resume() error { return s.Enter() }

// Close restores the terminal and destroys the session. Always called
// on teardown, including error paths; subsequent calls are no-ops.
func (s *Session) Close() {
	if s.closed {
		return
	}
	if err := s.Exit(); err != nil {
		slog.Warn("session exit during close", "error", err)
	}
	s.mux.Close()
	if s.started {
		s.screen.Fini()
		core.SetCrashScreen(nil)
	}
	s.closed = true
}

// Next blocks for the next multiplexed event; false means no more
// events will arrive.
func (s *Session) Next() (Event, bool) { return s.mux.Next() }

// Size reports the current screen dimensions.
func (s *Session) Size() (int, int) { return s.screen.Size() }

// Screen exposes the underlying screen to the rendering layer, which
// is a pure consumer of it.
func (s *Session) Screen() tcell.Screen { return s.screen }

// Raw reports whether the session currently holds the terminal.
func (s *Session) Raw() bool { return s.raw }
