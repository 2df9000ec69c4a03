package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	return screen
}

// nextEvent pulls one event with a deadline so a broken multiplexer
// fails the test instead of hanging it.
func nextEvent(t *testing.T, m *Multiplexer) Event {
	t.Helper()
	type result struct {
		ev Event
		ok bool
	}
	ch := make(chan result, 1)
	go func() {
		ev, ok := m.Next()
		ch <- result{ev, ok}
	}()
	select {
	case r := <-ch:
		if !r.ok {
			t.Fatal("Next reported end of events")
		}
		return r.ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for an event")
	}
	panic("unreachable")
}

// waitFor drains events until one matches the wanted type.
func waitFor(t *testing.T, m *Multiplexer, want EventType) Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		ev := nextEvent(t, m)
		if ev.Type == want {
			return ev
		}
	}
	t.Fatalf("no %v event arrived", want)
	panic("unreachable")
}

func TestMultiplexerEmitsInitFirst(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMultiplexer(screen, 100, 100)
	m.Start()
	defer m.Close()

	if ev := nextEvent(t, m); ev.Type != EventInit {
		t.Errorf("first event = %v, want Init", ev.Type)
	}
}

func TestMultiplexerTickAndRender(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMultiplexer(screen, 200, 200)
	m.Start()
	defer m.Close()

	waitFor(t, m, EventTick)
	waitFor(t, m, EventRender)
}

func TestMultiplexerDecodesKey(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMultiplexer(screen, 100, 100)
	m.Start()
	defer m.Close()

	waitFor(t, m, EventInit)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	ev := waitFor(t, m, EventKey)
	if ev.Key != tcell.KeyRune || ev.Rune != 'x' {
		t.Errorf("decoded key = %v/%q", ev.Key, ev.Rune)
	}
	if !ev.IsChar('x') {
		t.Error("IsChar('x') should be true")
	}
}

func TestMultiplexerDecodesResize(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMultiplexer(screen, 100, 100)
	m.Start()
	defer m.Close()

	waitFor(t, m, EventInit)
	screen.SetSize(120, 40)

	// The screen posts one resize on Init as well; wait for ours.
	deadline := time.Now().Add(2 * time.Second)
	for {
		ev := waitFor(t, m, EventResize)
		if ev.Width == 120 && ev.Height == 40 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("resize = %dx%d, want 120x40", ev.Width, ev.Height)
		}
	}
}

func TestStopIsBoundedAndSilencesDelivery(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMultiplexer(screen, 1000, 1000)
	m.Start()

	start := time.Now()
	m.Stop()
	if elapsed := time.Since(start); elapsed > stopLimit+100*time.Millisecond {
		t.Errorf("Stop took %v, beyond the bounded wait", elapsed)
	}

	// Whatever is buffered was sent before Stop returned. After a
	// drain, no further event may appear even across many timer
	// periods of the old (cancelled) run.
	m.Drain()
	time.Sleep(50 * time.Millisecond)
	if leaked := m.Drain(); len(leaked) != 0 {
		t.Errorf("%d events delivered after Stop returned: %+v", len(leaked), leaked)
	}
}

func TestStopTwiceIsHarmless(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMultiplexer(screen, 100, 100)
	m.Start()
	m.Stop()
	m.Stop() // second stop with nothing running
}

func TestRestartUsesFreshToken(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMultiplexer(screen, 200, 200)

	m.Start()
	waitFor(t, m, EventInit)
	m.Start() // implicit stop + restart
	defer m.Close()

	// The new run must emit its own Init and keep ticking.
	waitFor(t, m, EventInit)
	waitFor(t, m, EventTick)
}

func TestRestartDropsUndeliveredEvents(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMultiplexer(screen, 200, 200)

	m.Start()
	screen.InjectKey(tcell.KeyRune, 'z', tcell.ModNone)
	time.Sleep(100 * time.Millisecond) // let the key reach the queue
	m.Stop()

	m.Start()
	defer m.Close()

	// A fresh run begins with its own Init; nothing buffered by the
	// old run may arrive first.
	if ev := nextEvent(t, m); ev.Type != EventInit {
		t.Fatalf("first event after restart = %v, want Init", ev.Type)
	}
}

func TestNextReportsEndAfterClose(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMultiplexer(screen, 100, 100)
	m.Start()
	m.Close()
	m.Drain()

	done := make(chan bool, 1)
	go func() {
		_, ok := m.Next()
		done <- ok
	}()
	select {
	case ok := <-done:
		if ok {
			t.Error("Next after Close must report no more events")
		}
	case <-time.After(time.Second):
		t.Error("Next blocked after Close")
	}
}
