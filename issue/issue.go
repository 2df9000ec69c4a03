// Package issue defines the tracker's domain model: issues, comments,
// and the text template used to create issues interactively.
package issue

import "time"

// ID identifies an issue. IDs are 1-based and strictly increasing;
// gaps are allowed (the log may have been edited externally).
type ID = uint64

// Issue is a single tracked item. Issues are never mutated in place;
// state changes arrive as records replayed through the store.
type Issue struct {
	ID        ID                `json:"id"`
	Title     string            `json:"title"`
	Created   time.Time         `json:"created"`
	Status    Status            `json:"status"`
	Priority  Priority          `json:"priority"`
	CreatedBy string            `json:"created_by"`
	Custom    map[string]string `json:"custom"`
}

// Comment is one entry in an issue's append-only thread.
type Comment struct {
	ParentIssue ID        `json:"parent_issue"`
	Content     string    `json:"content"`
	Created     time.Time `json:"created"`
	CreatedBy   string    `json:"created_by"`
}
