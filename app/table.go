package app

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"intrack/editor"
	"intrack/issue"
	"intrack/store"
	"intrack/terminal"
	"intrack/tui"
)

// column is one of the issue table's sortable columns.
type column uint8

const (
	colID column = iota
	colTitle
	colCreated
	colStatus
	colPriority
	colAuthor
	columnCount
)

var columnNames = [columnCount]string{"ID", "Title", "Created", "Status", "Priority", "Created By"}

func (c column) String() string { return columnNames[c] }

func (c column) next() column { return (c + 1) % columnCount }

func (c column) prev() column { return (c + columnCount - 1) % columnCount }

// tableState is the issue table page: cursor over the filtered rows,
// the filter input, and the sort order.
type tableState struct {
	cursor   int
	filter   tui.Input
	sortBy   column
	sortDesc bool
	showHelp bool
}

func newTableState() tableState {
	return tableState{sortBy: colCreated, sortDesc: true}
}

func (t *tableState) cursorNext() { t.cursor++ }

func (t *tableState) cursorPrev() {
	if t.cursor > 0 {
		t.cursor--
	}
}

// visibleIssues returns the rows currently shown: all issues matching
// the filter, in the selected sort order. The cursor indexes this slice.
func (a *App) visibleIssues() []issue.Issue {
	rows := filterIssues(a.store.Issues(), a.table.filter.Text())
	sortIssues(rows, a.table.sortBy, a.table.sortDesc)
	return rows
}

// selectedIssue clamps the cursor to the visible rows and returns the
// issue under it.
func (a *App) selectedIssue() (issue.Issue, bool) {
	rows := a.visibleIssues()
	if len(rows) == 0 {
		return issue.Issue{}, false
	}
	if a.table.cursor >= len(rows) {
		a.table.cursor = len(rows) - 1
	}
	return rows[a.table.cursor], true
}

func handleTable(a *App, ev terminal.Event) Propagation {
	if ev.Type != terminal.EventKey {
		return Continue
	}
	t := &a.table

	switch ev.Key {
	case tcell.KeyDown:
		t.cursorNext()
		return Stop
	case tcell.KeyUp:
		t.cursorPrev()
		return Stop
	case tcell.KeyEnter:
		a.openThread()
		return Stop
	case tcell.KeyRune:
		if !ev.IsRune() {
			return Continue
		}
	default:
		return Continue
	}

	switch ev.Rune {
	case 'J':
		t.sortDesc = true
	case 'K':
		t.sortDesc = false
	case 'L':
		t.sortBy = t.sortBy.next()
	case 'H':
		t.sortBy = t.sortBy.prev()
	case 'j':
		t.cursorNext()
	case 'k':
		t.cursorPrev()
	case '/':
		a.focus = FocusTableFilter
	case 'n':
		a.queueEdit(editor.Entry{
			Seed:   issue.NewTemplate,
			Ext:    "md",
			Action: editor.Action{Kind: editor.ActionCreateIssue},
		})
	case 's':
		a.toggleStatus()
	case '+':
		a.shiftPriority(true)
	case '-':
		a.shiftPriority(false)
	case '?':
		t.showHelp = !t.showHelp
	default:
		return Continue
	}
	return Stop
}

func handleTableFilter(a *App, ev terminal.Event) Propagation {
	if ev.Type == terminal.EventKey && (ev.Key == tcell.KeyEscape || ev.Key == tcell.KeyEnter) {
		a.focus = FocusTable
		return Stop
	}
	if a.table.filter.Handle(ev) {
		return Stop
	}
	return Continue
}

// openThread switches to the thread page for the issue under the cursor.
func (a *App) openThread() {
	is, ok := a.selectedIssue()
	if !ok {
		return
	}
	a.thread = threadState{issueID: is.ID}
	a.page = PageThread
	a.focus = FocusThread
}

func (a *App) toggleStatus() {
	is, ok := a.selectedIssue()
	if !ok {
		slog.Warn("status toggle with no issue selected")
		return
	}
	rec := store.NewStatusChanged(is.ID, is.Status.Toggle())
	if err := a.store.Append(a.logPath, rec); err != nil {
		slog.Error("status change rejected", "id", is.ID, "error", err)
	}
}

func (a *App) shiftPriority(up bool) {
	is, ok := a.selectedIssue()
	if !ok {
		slog.Warn("priority change with no issue selected")
		return
	}
	next := is.Priority.Lower()
	if up {
		next = is.Priority.Raise()
	}
	if next == is.Priority {
		return
	}
	if err := a.store.Append(a.logPath, store.NewPriorityChanged(is.ID, next)); err != nil {
		slog.Error("priority change rejected", "id", is.ID, "error", err)
	}
}
