package terminal

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"intrack/core"
)

const (
	// eventBuffer sizes the delivery channel. The consumer is the
	// foreground loop, which drains far faster than input arrives.
	eventBuffer = 256

	// stopPoll and stopLimit bound how long Stop waits for the
	// background task before abandoning it.
	stopPoll  = 10 * time.Millisecond
	stopLimit = 500 * time.Millisecond
)

// Multiplexer runs one background task racing three sources - raw screen
// input, a tick timer, and a render timer - and forwards exactly one
// Event per firing into an ordered delivery channel.
//
// Start cancels and replaces any previous run, so a restart can never
// receive deliveries from a stale task: every send is gated on the run's
// own cancellation token.
type Multiplexer struct {
	screen    tcell.Screen
	tickRate  float64 // ticks per second
	frameRate float64 // render events per second

	out  chan Event
	quit chan struct{} // closed on final teardown, unblocks Next

	mu     sync.Mutex
	cancel chan struct{} // current run's cancellation token
	done   chan struct{} // closed when the current run's task exits
}

// NewMultiplexer wires a multiplexer to a screen. Rates are in events
// per second; zero or negative rates fall back to 4 ticks and 10 frames.
func NewMultiplexer(screen tcell.Screen, tickRate, frameRate float64) *Multiplexer {
	if tickRate <= 0 {
		tickRate = 4
	}
	if frameRate <= 0 {
		frameRate = 10
	}
	return &Multiplexer{
		screen:    screen,
		tickRate:  tickRate,
		frameRate: frameRate,
		out:       make(chan Event, eventBuffer),
		quit:      make(chan struct{}),
	}
}

// Start launches the background task, first cancelling any previous run
// and dropping its undelivered events, then establishing a fresh
// cancellation token. It immediately queues an Init event. Safe to call
// repeatedly; each call is a full restart.
func (m *Multiplexer) Start() {
	m.Stop()
	m.Drain() // undelivered events from the previous run never reach this one

	m.mu.Lock()
	cancel := make(chan struct{})
	done := make(chan struct{})
	m.cancel = cancel
	m.done = done
	m.mu.Unlock()

	core.Go(func() {
		defer close(done)
		m.run(cancel)
	})
}

// Stop signals cancellation and waits for the task with a bounded wait.
// A task wedged in a blocking read is abandoned after the limit; its
// token is already cancelled, so it can never deliver another event.
// Stop never blocks indefinitely and is a no-op when nothing runs.
func (m *Multiplexer) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()
	if cancel == nil {
		return
	}

	close(cancel)
	// A synthetic interrupt unblocks the poll goroutine.
	_ = m.screen.PostEvent(tcell.NewEventInterrupt(nil))

	waited := time.Duration(0)
	for {
		select {
		case <-done:
			return
		case <-time.After(stopPoll):
			waited += stopPoll
			if waited >= stopLimit {
				return // abandoned; token already cancelled
			}
		}
	}
}

// Close tears the multiplexer down for good. Next unblocks and reports
// no more events.
func (m *Multiplexer) Close() {
	m.Stop()
	select {
	case <-m.quit:
	default:
		close(m.quit)
	}
}

// Next blocks until the next queued event arrives. The second return is
// false once no more events will ever be delivered. This is the single
// suspension point of the application loop.
func (m *Multiplexer) Next() (Event, bool) {
	select {
	case ev := <-m.out:
		return ev, true
	case <-m.quit:
		return Event{Type: EventClosed, When: time.Now()}, false
	}
}

// Drain consumes any queued events without blocking. Start uses it so a
// restart begins with an empty queue; tests use it to settle the stream.
func (m *Multiplexer) Drain() []Event {
	var out []Event
	for {
		select {
		case ev := <-m.out:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// run is the background task body: one select loop racing the three
// sources until the token cancels.
func (m *Multiplexer) run(cancel chan struct{}) {
	tick := time.NewTicker(time.Duration(float64(time.Second) / m.tickRate))
	defer tick.Stop()
	render := time.NewTicker(time.Duration(float64(time.Second) / m.frameRate))
	defer render.Stop()

	// PollEvent blocks, so a dedicated goroutine pumps screen events
	// into raw. It exits on cancellation or when the screen reports
	// end-of-events (nil after Fini).
	raw := make(chan tcell.Event, 16)
	core.Go(func() {
		for {
			select {
			case <-cancel:
				return
			default:
			}
			ev := m.screen.PollEvent()
			select {
			case raw <- ev:
			case <-cancel:
				return
			}
			if ev == nil {
				return
			}
		}
	})

	if !m.send(cancel, Event{Type: EventInit, When: time.Now()}) {
		return
	}

	var paste *strings.Builder
	for {
		select {
		case <-cancel:
			return
		case ev := <-raw:
			if ev == nil {
				m.send(cancel, Event{Type: EventClosed, When: time.Now()})
				return
			}
			out, ok := decode(ev, &paste)
			if !ok {
				continue
			}
			if !m.send(cancel, out) {
				return
			}
		case <-tick.C:
			if !m.send(cancel, Event{Type: EventTick, When: time.Now()}) {
				return
			}
		case <-render.C:
			if !m.send(cancel, Event{Type: EventRender, When: time.Now()}) {
				return
			}
		}
	}
}

// send delivers one event unless the run has been cancelled.
func (m *Multiplexer) send(cancel chan struct{}, ev Event) bool {
	select {
	case <-cancel:
		return false
	default:
	}
	select {
	case m.out <- ev:
		return true
	case <-cancel:
		return false
	}
}

// decode maps a tcell event onto the Event union. Bracketed paste
// arrives as a start/end marker pair with the payload in between as key
// events; the builder accumulates it into one Paste event. The boolean
// is false for events that produce no delivery (paste-in-progress keys,
// interrupts, unknown event kinds).
func decode(ev tcell.Event, paste **strings.Builder) (Event, bool) {
	switch tev := ev.(type) {
	case *tcell.EventPaste:
		if tev.Start() {
			*paste = &strings.Builder{}
			return Event{}, false
		}
		if *paste == nil {
			return Event{}, false
		}
		text := (*paste).String()
		*paste = nil
		return Event{Type: EventPaste, When: tev.When(), Text: text}, true

	case *tcell.EventKey:
		if *paste != nil {
			switch tev.Key() {
			case tcell.KeyRune:
				(*paste).WriteRune(tev.Rune())
			case tcell.KeyEnter:
				(*paste).WriteByte('\n')
			case tcell.KeyTab:
				(*paste).WriteByte('\t')
			}
			return Event{}, false
		}
		return Event{
			Type: EventKey,
			When: tev.When(),
			Key:  tev.Key(),
			Rune: tev.Rune(),
			Mods: tev.Modifiers(),
		}, true

	case *tcell.EventMouse:
		x, y := tev.Position()
		return Event{
			Type:    EventMouse,
			When:    tev.When(),
			MouseX:  x,
			MouseY:  y,
			Buttons: tev.Buttons(),
			Mods:    tev.Modifiers(),
		}, true

	case *tcell.EventResize:
		w, h := tev.Size()
		return Event{Type: EventResize, When: tev.When(), Width: w, Height: h}, true

	case *tcell.EventFocus:
		if tev.Focused {
			return Event{Type: EventFocusGained, When: tev.When()}, true
		}
		return Event{Type: EventFocusLost, When: tev.When()}, true

	case *tcell.EventError:
		// One Error event per decode failure; the loop keeps running.
		return Event{Type: EventError, When: tev.When(), Err: tev}, true

	case *tcell.EventInterrupt:
		return Event{}, false
	}
	return Event{}, false
}
