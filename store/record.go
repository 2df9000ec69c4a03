package store

import (
	"encoding/json"
	"fmt"

	"intrack/issue"
)

// StatusChange retargets an existing issue's status.
type StatusChange struct {
	IssueID issue.ID     `json:"issue_id"`
	Status  issue.Status `json:"status"`
}

// PriorityChange retargets an existing issue's priority.
type PriorityChange struct {
	IssueID  issue.ID       `json:"issue_id"`
	Priority issue.Priority `json:"priority"`
}

// Record is one line of the event log: a tagged union with exactly one
// of the variant pointers set. The wire form is externally tagged, e.g.
// {"IssueCreated":{...}} or {"StatusChanged":{"issue_id":7,"status":"Closed"}}.
type Record struct {
	IssueCreated    *issue.Issue    `json:"IssueCreated,omitempty"`
	CommentAdded    *issue.Comment  `json:"CommentAdded,omitempty"`
	StatusChanged   *StatusChange   `json:"StatusChanged,omitempty"`
	PriorityChanged *PriorityChange `json:"PriorityChanged,omitempty"`
}

// NewIssueCreated wraps an issue in its log record.
func NewIssueCreated(is issue.Issue) Record {
	return Record{IssueCreated: &is}
}

// NewCommentAdded wraps a comment in its log record.
func NewCommentAdded(c issue.Comment) Record {
	return Record{CommentAdded: &c}
}

// NewStatusChanged builds a status transition record.
func NewStatusChanged(id issue.ID, s issue.Status) Record {
	return Record{StatusChanged: &StatusChange{IssueID: id, Status: s}}
}

// NewPriorityChanged builds a priority transition record.
func NewPriorityChanged(id issue.ID, p issue.Priority) Record {
	return Record{PriorityChanged: &PriorityChange{IssueID: id, Priority: p}}
}

// variants counts how many union arms are populated.
func (r Record) variants() int {
	n := 0
	if r.IssueCreated != nil {
		n++
	}
	if r.CommentAdded != nil {
		n++
	}
	if r.StatusChanged != nil {
		n++
	}
	if r.PriorityChanged != nil {
		n++
	}
	return n
}

// decodeRecord parses one log line, rejecting lines that do not carry
// exactly one known variant. An unknown tag therefore fails loudly
// instead of folding as a no-op.
func decodeRecord(line []byte) (Record, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(line, &probe); err != nil {
		return Record{}, err
	}
	if len(probe) != 1 {
		return Record{}, fmt.Errorf("record must have exactly one variant tag, found %d", len(probe))
	}
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Record{}, err
	}
	if rec.variants() != 1 {
		for tag := range probe {
			return Record{}, fmt.Errorf("unknown record variant %q", tag)
		}
	}
	return rec, nil
}
