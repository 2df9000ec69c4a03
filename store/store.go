// Package store is the event-sourced issue store: an append-only JSONL
// log on disk and the in-memory projection rebuilt by folding it.
//
// The store assumes a single writer, the foreground application loop.
// It is not safe for concurrent mutation.
package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"intrack/issue"
)

// Store folds Records into queryable issue and comment maps. The on-disk
// log is the source of truth; the projection is never persisted.
type Store struct {
	issues   map[issue.ID]issue.Issue
	comments map[issue.ID][]issue.Comment
}

// New returns an empty store.
func New() *Store {
	return &Store{
		issues:   make(map[issue.ID]issue.Issue),
		comments: make(map[issue.ID][]issue.Comment),
	}
}

// Load reads the JSONL event log at path and folds every record in file
// order. A missing file yields an empty store. Blank lines are skipped.
// Any line that fails to decode aborts the load with its 1-based line
// number and raw content; corrupt history is never silently dropped.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("open event log %s: %w", path, err)
	}
	defer f.Close()

	s := New()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rec, err := decodeRecord([]byte(line))
		if err != nil {
			return nil, fmt.Errorf("decode event log %s line %d (%s): %w", path, lineNo, line, err)
		}
		s.Apply(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read event log %s: %w", path, err)
	}
	slog.Debug("event log loaded", "path", path, "lines", lineNo, "issues", len(s.issues))
	return s, nil
}

// Append serializes rec as one JSON line, writes it to the log at path
// (created if absent), and only after a successful write applies it to
// the projection. A write failure leaves the projection unchanged.
func (s *Store) Append(path string, rec Record) error {
	if rec.variants() != 1 {
		return fmt.Errorf("refusing to append a record with %d variants", rec.variants())
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serialize record: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open event log %s for append: %w", path, err)
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append to event log %s: %w", path, err)
	}
	s.Apply(rec)
	return nil
}

// Apply folds one record into the projection.
//
// Semantics: IssueCreated overwrites any existing entry at that id
// (last write wins, no merge). CommentAdded appends, creating the
// thread if absent. Status/Priority changes on an unknown id are no-ops.
func (s *Store) Apply(rec Record) {
	switch {
	case rec.IssueCreated != nil:
		s.issues[rec.IssueCreated.ID] = *rec.IssueCreated
	case rec.CommentAdded != nil:
		c := *rec.CommentAdded
		s.comments[c.ParentIssue] = append(s.comments[c.ParentIssue], c)
	case rec.StatusChanged != nil:
		if is, ok := s.issues[rec.StatusChanged.IssueID]; ok {
			is.Status = rec.StatusChanged.Status
			s.issues[is.ID] = is
		}
	case rec.PriorityChanged != nil:
		if is, ok := s.issues[rec.PriorityChanged.IssueID]; ok {
			is.Priority = rec.PriorityChanged.Priority
			s.issues[is.ID] = is
		}
	}
}

// NextID returns max(existing ids)+1, or 1 for an empty store. Correct
// for non-contiguous ids left behind by external edits of the log.
func (s *Store) NextID() issue.ID {
	var max issue.ID
	for id := range s.issues {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Issue returns the projected issue for id.
func (s *Store) Issue(id issue.ID) (issue.Issue, bool) {
	is, ok := s.issues[id]
	return is, ok
}

// Issues returns a copy of all projected issues, ordered by id.
func (s *Store) Issues() []issue.Issue {
	out := make([]issue.Issue, 0, len(s.issues))
	for _, is := range s.issues {
		out = append(out, is)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Comments returns the comment thread for an issue, oldest first.
func (s *Store) Comments(id issue.ID) []issue.Comment {
	return s.comments[id]
}

// Len reports the number of projected issues.
func (s *Store) Len() int {
	return len(s.issues)
}

// EnsureLog creates the log file (and its parent directories) if needed,
// so a fresh start never fails on a missing path.
func EnsureLog(path string) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create event log directory %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("initialize event log %s: %w", path, err)
	}
	return f.Close()
}
