package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"

	"noted-cli/internal/model"
)

type noteItem struct {
	note model.Note
	// dirty marks the note whose editing session has unsaved draft changes.
	dirty bool
}

func (i noteItem) Title() string       { return strings.TrimSpace(i.note.Title) }
func (i noteItem) FilterValue() string { return strings.TrimSpace(i.note.Title) }

func newList(items []list.Item) list.Model {
	l := list.New(items, newNoteDelegate(), 0, 0)
	// We render our own header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("note", "notes")
	// Bubble list defaults to quitting on ESC; here ESC is "back/cancel".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases (common muscle memory).
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

func selectListItemByID(l *list.Model, id string) {
	for i := 0; i < len(l.Items()); i++ {
		if it, ok := l.Items()[i].(noteItem); ok && it.note.ID == id {
			l.Select(i)
			return
		}
	}
}

// fmtNoteTime renders the effective timestamp compactly: clock time for
// today, date otherwise, nothing when the backend reported no timestamps.
func fmtNoteTime(n model.Note, now time.Time) string {
	t := n.EffectiveTime()
	if t.IsZero() {
		return ""
	}
	t = t.Local()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("2006-01-02")
}
