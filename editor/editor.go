// Package editor implements the external-editor handshake: a one-slot
// queue of pending edit requests and the synchronous foreground editor
// invocation that serves them.
package editor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"intrack/issue"
)

// ActionKind says what to do with the editor result. Actions are plain
// command values interpreted by the application's dispatcher; the entry
// carries no closures and no captured state.
type ActionKind uint8

const (
	// ActionCreateIssue parses the result as an issue template and
	// appends IssueCreated plus the initial CommentAdded.
	ActionCreateIssue ActionKind = iota
	// ActionAddComment appends the result as a comment on IssueID.
	ActionAddComment
)

// Action is the tagged command attached to a pending entry.
type Action struct {
	Kind    ActionKind
	IssueID issue.ID // ActionAddComment only
}

// Entry is one pending external-editor request: the text to seed the
// editor with, a file-extension hint for syntax highlighting, and the
// action to run on the result.
type Entry struct {
	Seed   string
	Ext    string
	Action Action
}

// Slot holds at most one pending entry. Created by input handlers,
// consumed exactly once by the handshake in the main loop.
type Slot struct {
	entry *Entry
}

// Set stores a new pending entry. If an unconsumed entry was already
// present it is returned displaced - lost, not run - and the caller
// decides its fate (the default policy is to drop it).
func (s *Slot) Set(e Entry) *Entry {
	old := s.entry
	s.entry = &e
	if old != nil {
		slog.Warn("pending editor entry displaced before running", "ext", old.Ext)
	}
	return old
}

// Take removes and returns the pending entry, or nil if the slot is
// empty. The slot is empty afterwards either way.
func (s *Slot) Take() *Entry {
	e := s.entry
	s.entry = nil
	return e
}

// Pending reports whether an entry is waiting.
func (s *Slot) Pending() bool { return s.entry != nil }

// Runner launches an editor seeded with text and returns the saved
// content, or nil when the user aborted without saving. Implemented by
// Run for the real editor and by test fakes.
type Runner func(seed, ext string) (*string, error)

// Run writes seed to a temporary file, hands it to the user's editor in
// the foreground, and returns the content only if the user explicitly
// saved: an untouched modification time means abort, never empty text.
//
// The editor program comes from $VISUAL, then $EDITOR, then "vi"; its
// flags and configuration are the environment's business.
func Run(seed, ext string) (*string, error) {
	f, err := os.CreateTemp("", "intrack-*."+ext)
	if err != nil {
		return nil, fmt.Errorf("create editor temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(seed); err != nil {
		f.Close()
		return nil, fmt.Errorf("seed editor temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("flush editor temp file: %w", err)
	}

	before, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat editor temp file: %w", err)
	}

	cmd := exec.Command(editorProgram(), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run editor %s: %w", cmd.Path, err)
	}

	after, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat edited file: %w", err)
	}
	if after.ModTime().Equal(before.ModTime()) && after.Size() == before.Size() {
		return nil, nil // never saved: no result
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}
	text := string(data)
	return &text, nil
}

func editorProgram() string {
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vi"
}
