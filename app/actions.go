package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"intrack/editor"
	"intrack/issue"
	"intrack/store"
)

// queueEdit puts an editor request into the one-slot queue. The main
// loop serves it before the next draw.
func (a *App) queueEdit(e editor.Entry) {
	a.slot.Set(e)
}

// handshake serves a pending editor request: leave raw mode, run the
// editor in the foreground, re-enter raw mode, then dispatch the result.
// Editor launch failures are logged and survived; failing to get the
// terminal back, or a dispatch failure, ends the run.
func (a *App) handshake() error {
	entry := a.slot.Take()
	if entry == nil {
		return nil
	}

	if err := a.session.Suspend(); err != nil {
		return fmt.Errorf("suspending for editor: %w", err)
	}
	text, runErr := a.edit(entry.Seed, entry.Ext)
	if err := a.session.Resume(); err != nil {
		return fmt.Errorf("resuming after editor: %w", err)
	}
	if runErr != nil {
		slog.Error("external editor failed", "error", runErr)
		return nil
	}
	return a.dispatch(entry.Action, text)
}

// dispatch applies an editor result to the store. A nil text means the
// edit was aborted without saving; nothing changes.
func (a *App) dispatch(act editor.Action, text *string) error {
	if text == nil {
		return nil
	}
	switch act.Kind {
	case editor.ActionCreateIssue:
		return a.createIssue(*text)
	case editor.ActionAddComment:
		return a.addComment(act.IssueID, *text)
	}
	return fmt.Errorf("unknown editor action %d", act.Kind)
}

// createIssue parses the edited template and appends the new issue and
// its initial comment. The two records are separate appends; a crash
// between them leaves a valid issue without its opening comment.
func (a *App) createIssue(text string) error {
	tpl, comment, err := issue.ParseTemplate(text)
	if err != nil {
		return fmt.Errorf("parsing issue template: %w", err)
	}

	author := tpl.CreatedBy
	if author == "" {
		author = a.author
	}
	now := time.Now().UTC()
	is := issue.Issue{
		ID:        a.store.NextID(),
		Title:     tpl.Title,
		Created:   now,
		Status:    issue.StatusOpen,
		Priority:  tpl.Priority,
		CreatedBy: author,
		Custom:    tpl.Custom,
	}
	if err := a.store.Append(a.logPath, store.NewIssueCreated(is)); err != nil {
		return fmt.Errorf("recording new issue: %w", err)
	}

	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil
	}
	c := issue.Comment{
		ParentIssue: is.ID,
		Content:     comment,
		Created:     now,
		CreatedBy:   author,
	}
	if err := a.store.Append(a.logPath, store.NewCommentAdded(c)); err != nil {
		return fmt.Errorf("recording opening comment: %w", err)
	}
	return nil
}

// addComment appends the edited text as a comment. Whitespace-only
// results are treated like an abort.
func (a *App) addComment(id issue.ID, text string) error {
	content := strings.TrimSpace(text)
	if content == "" {
		return nil
	}
	c := issue.Comment{
		ParentIssue: id,
		Content:     content,
		Created:     time.Now().UTC(),
		CreatedBy:   a.author,
	}
	if err := a.store.Append(a.logPath, store.NewCommentAdded(c)); err != nil {
		return fmt.Errorf("recording comment on issue %d: %w", id, err)
	}
	return nil
}
