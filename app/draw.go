package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"intrack/issue"
	"intrack/tui"
)

const timeLayout = "2006-01-02T15:04:05Z"

var (
	styleBase     = tcell.StyleDefault
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHeader   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSortCol  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkGray).Bold(true)
	styleSelected = tcell.StyleDefault.Reverse(true)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAccent   = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func (a *App) draw() {
	s := a.session.Screen()
	s.Clear()
	switch a.page {
	case PageThread:
		a.drawThread(s)
	default:
		a.drawTable(s)
	}
	s.Show()
}

// columnWidth returns the fixed width of a column, or 0 for the title
// column which takes whatever is left.
func columnWidth(c column) int {
	switch c {
	case colID:
		return 5
	case colCreated:
		return 20
	case colStatus:
		return 8
	case colPriority:
		return 10
	case colAuthor:
		return 24
	default:
		return 0
	}
}

func (a *App) drawTable(s tcell.Screen) {
	w, h := s.Size()
	tui.Box(s, 0, 0, w, h, "Issue List", styleBorder)
	if w < 4 || h < 5 {
		return
	}
	innerX, innerW := 1, w-2
	rowTop := 2
	rowBottom := h - 3 // last content row, above the filter line

	rows := a.visibleIssues()
	if a.table.cursor >= len(rows) && len(rows) > 0 {
		a.table.cursor = len(rows) - 1
	}

	titleW := innerW
	for c := column(0); c < columnCount; c++ {
		if cw := columnWidth(c); cw > 0 {
			titleW -= cw + 1
		}
	}
	if titleW < 8 {
		titleW = 8
	}
	width := func(c column) int {
		if cw := columnWidth(c); cw > 0 {
			return cw
		}
		return titleW
	}

	// Header with the sort arrow on the active column.
	x := innerX
	for c := column(0); c < columnCount; c++ {
		label := c.String()
		style := styleHeader
		if c == a.table.sortBy {
			if a.table.sortDesc {
				label += " ▼"
			} else {
				label += " ▲"
			}
			style = styleSortCol
		}
		tui.Text(s, x, 1, width(c), tui.Pad(label, width(c)), style)
		x += width(c) + 1
	}

	// Rows, scrolled so the cursor stays on screen.
	visible := rowBottom - rowTop + 1
	start := 0
	if a.table.cursor >= visible {
		start = a.table.cursor - visible + 1
	}
	for i := start; i < len(rows) && rowTop+i-start <= rowBottom; i++ {
		is := rows[i]
		y := rowTop + i - start
		style := styleBase
		if i == a.table.cursor {
			style = styleSelected
			tui.Fill(s, innerX, y, innerW, 1, ' ', style)
		}
		x := innerX
		for c := column(0); c < columnCount; c++ {
			tui.Text(s, x, y, width(c), tui.Pad(a.cellText(is, c), width(c)), style)
			x += width(c) + 1
		}
	}

	a.table.filter.Render(s, innerX, h-2, innerW, "/ Filter >> ",
		a.focus == FocusTableFilter, styleBase)
	tui.Text(s, innerX, h-2, 1, "/", styleAccent)

	if a.table.showHelp {
		tui.Popup(s, "Hotkeys", tableHelp, styleBase)
	}
}

func (a *App) cellText(is issue.Issue, c column) string {
	switch c {
	case colID:
		return fmt.Sprintf("%d", is.ID)
	case colTitle:
		return is.Title
	case colCreated:
		return is.Created.UTC().Format(timeLayout)
	case colStatus:
		return is.Status.String()
	case colPriority:
		return is.Priority.String()
	case colAuthor:
		return is.CreatedBy
	}
	return ""
}

func (a *App) drawThread(s tcell.Screen) {
	w, h := s.Size()
	is, ok := a.store.Issue(a.thread.issueID)
	title := fmt.Sprintf("Issue #%d", a.thread.issueID)
	if ok {
		title = fmt.Sprintf("Issue #%d: %s", is.ID, is.Title)
	}
	tui.Box(s, 0, 0, w, h, tui.Truncate(title, w-6), styleBorder)
	if w < 4 || h < 5 {
		return
	}
	innerX, innerW := 2, w-4

	if ok {
		meta := fmt.Sprintf("%s  %s  %s  %s",
			is.Status, is.Priority, is.CreatedBy, is.Created.UTC().Format(timeLayout))
		tui.Text(s, innerX, 1, innerW, meta, styleDim)
	}

	comments := a.store.Comments(a.thread.issueID)
	if a.thread.cursor >= len(comments) && len(comments) > 0 {
		a.thread.cursor = len(comments) - 1
	}

	top, bottom := 3, h-2
	y := top
	start := threadScroll(comments, a.thread.cursor, bottom-top+1)
	for i := start; i < len(comments) && y <= bottom; i++ {
		c := comments[i]
		head := fmt.Sprintf("%s  %s", c.CreatedBy, c.Created.UTC().Format(timeLayout))
		style := styleDim
		if i == a.thread.cursor {
			style = styleSelected
		}
		tui.Text(s, innerX, y, innerW, tui.Pad(head, innerW), style)
		y++
		for _, line := range splitLines(c.Content) {
			if y > bottom {
				break
			}
			tui.Text(s, innerX, y, innerW, line, styleBase)
			y++
		}
		y++ // blank line between comments
	}

	if a.thread.showHelp {
		tui.Popup(s, "Hotkeys", threadHelp, styleBase)
	}
}

// threadScroll picks the first comment to draw so the selected one fits
// in a window of the given height.
func threadScroll(comments []issue.Comment, cursor, height int) int {
	if len(comments) == 0 {
		return 0
	}
	if cursor >= len(comments) {
		cursor = len(comments) - 1
	}
	used := 0
	start := cursor
	for start >= 0 {
		need := 2 + len(splitLines(comments[start].Content))
		if used+need > height && start != cursor {
			return start + 1
		}
		used += need
		start--
	}
	return 0
}

func splitLines(s string) []string {
	var lines []string
	begin := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[begin:i])
			begin = i + 1
		}
	}
	return append(lines, s[begin:])
}

var tableHelp = []string{
	"j / k      cursor down / up",
	"J / K      sort descending / ascending",
	"H / L      sort column left / right",
	"Enter      open issue thread",
	"/          filter issues",
	"n          new issue",
	"s          toggle issue status",
	"+ / -      raise / lower priority",
	"?          toggle this help",
	"q          quit",
}

var threadHelp = []string{
	"j / k      cursor down / up",
	"Ctrl-d/u   cursor down / up by 10",
	"a          add comment",
	"?          toggle this help",
	"q / Esc    back to issue list",
}
