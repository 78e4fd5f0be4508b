package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type noteDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	dirty    lipgloss.Style
	meta     lipgloss.Style
}

func newNoteDelegate() noteDelegate {
	return noteDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		dirty: lipgloss.NewStyle().Foreground(colorDirty),
		meta:  lipgloss.NewStyle().Foreground(colorMuted),
	}
}

func (d noteDelegate) Height() int  { return 1 }
func (d noteDelegate) Spacing() int { return 0 }
func (d noteDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d noteDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(noteItem)
	if !ok {
		return
	}

	marker := "  "
	if it.dirty {
		marker = d.dirty.Render("● ")
	}

	title := it.Title()
	if title == "" {
		title = "(untitled)"
	}

	ts := fmtNoteTime(it.note, time.Now())
	tsW := xansi.StringWidth(ts)

	titleW := contentW - 2 - tsW - 1
	if titleW < 4 {
		titleW = 4
		ts = ""
		tsW = 0
	}
	title = truncateInline(title, titleW)

	pad := contentW - 2 - xansi.StringWidth(title) - tsW
	if pad < 1 {
		pad = 1
	}

	line := marker + title + strings.Repeat(" ", pad) + d.meta.Render(ts)
	if index == m.Index() {
		// Re-render without per-part styling so the selection bar is solid.
		plain := "  " + title + strings.Repeat(" ", pad) + ts
		if it.dirty {
			plain = "● " + title + strings.Repeat(" ", pad) + ts
		}
		line = d.selected.Render(plain)
	}
	fmt.Fprint(w, line)
}
