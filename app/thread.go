package app

import (
	"github.com/gdamore/tcell/v2"

	"intrack/editor"
	"intrack/issue"
	"intrack/terminal"
)

const threadPageStep = 10

const commentSeed = "Enter comment here.\n\n"

// threadState is the comment thread page for one issue.
type threadState struct {
	issueID  issue.ID
	cursor   int
	showHelp bool
}

func (t *threadState) cursorAdd(n int) { t.cursor += n }

func (t *threadState) cursorSub(n int) {
	t.cursor -= n
	if t.cursor < 0 {
		t.cursor = 0
	}
}

func handleThread(a *App, ev terminal.Event) Propagation {
	if ev.Type != terminal.EventKey {
		return Continue
	}
	t := &a.thread

	switch ev.Key {
	case tcell.KeyEscape:
		a.closeThread()
		return Stop
	case tcell.KeyDown:
		t.cursorAdd(1)
		return Stop
	case tcell.KeyUp:
		t.cursorSub(1)
		return Stop
	case tcell.KeyCtrlD:
		t.cursorAdd(threadPageStep)
		return Stop
	case tcell.KeyCtrlU:
		t.cursorSub(threadPageStep)
		return Stop
	case tcell.KeyRune:
		if !ev.IsRune() {
			return Continue
		}
	default:
		return Continue
	}

	switch ev.Rune {
	case 'q':
		a.closeThread()
	case 'j':
		t.cursorAdd(1)
	case 'k':
		t.cursorSub(1)
	case '?':
		t.showHelp = !t.showHelp
	case 'a':
		a.queueEdit(editor.Entry{
			Seed:   commentSeed,
			Ext:    "txt",
			Action: editor.Action{Kind: editor.ActionAddComment, IssueID: t.issueID},
		})
	default:
		return Continue
	}
	return Stop
}

func (a *App) closeThread() {
	a.thread.showHelp = false
	a.page = PageTable
	a.focus = FocusTable
}
