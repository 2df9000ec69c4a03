package terminal

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	s := NewSession(screen, Config{TickRate: 100, FrameRate: 100})
	t.Cleanup(s.Close)
	return s
}

func TestSessionEnterExit(t *testing.T) {
	s := newTestSession(t)
	if err := s.Enter(); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if !s.Raw() {
		t.Error("session should be in raw mode after Enter")
	}
	if err := s.Exit(); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if s.Raw() {
		t.Error("session should have left raw mode after Exit")
	}
}

func TestSessionExitIdempotent(t *testing.T) {
	s := newTestSession(t)
	if err := s.Enter(); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if err := s.Exit(); err != nil {
		t.Fatalf("first exit: %v", err)
	}
	if err := s.Exit(); err != nil {
		t.Fatalf("second exit: %v", err)
	}
	if s.cleanups != 1 {
		t.Errorf("cleanup ran %d times, want exactly once", s.cleanups)
	}
}

func TestSessionSuspendResume(t *testing.T) {
	s := newTestSession(t)
	if err := s.Enter(); err != nil {
		t.Fatalf("enter: %v", err)
	}

	if err := s.Suspend(); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if s.Raw() {
		t.Error("suspended session must not hold raw mode")
	}

	if err := s.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !s.Raw() {
		t.Error("resumed session must be back in raw mode")
	}

	// The resumed multiplexer run announces itself again.
	deadline := time.Now().Add(2 * time.Second)
	for {
		ev, ok := s.Next()
		if !ok || time.Now().After(deadline) {
			t.Fatal("no Init event after resume")
		}
		if ev.Type == EventInit {
			break
		}
	}
}

func TestSessionCloseEndsEventStream(t *testing.T) {
	s := newTestSession(t)
	if err := s.Enter(); err != nil {
		t.Fatalf("enter: %v", err)
	}
	s.Close()
	s.mux.Drain()

	done := make(chan bool, 1)
	go func() {
		_, ok := s.Next()
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

	s.Close() // second close is a no-op
}

func TestSessionEnterWhileRawIsNoOp(t *testing.T) {
	s := newTestSession(t)
	if err := s.Enter(); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if err := s.Enter(); err != nil {
		t.Errorf("re-enter while raw should be a no-op, got %v", err)
	}
}
