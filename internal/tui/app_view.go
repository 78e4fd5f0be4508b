package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if !m.seenWindowSize {
		return "Loading…"
	}

	header := m.viewHeader()
	var body string
	if m.modal == modalConfirm {
		body = lipgloss.Place(
			m.width, m.bodyHeight(),
			lipgloss.Center, lipgloss.Center,
			renderConfirmModal(m.width, m.confirmTitle, m.confirmBody, "Confirm", "Cancel", m.confirmFocus),
		)
	} else {
		body = m.viewSplit()
	}
	footer := m.viewFooter()

	return strings.Join([]string{header, body, footer}, "\n")
}

func (m appModel) viewHeader() string {
	base := m.ctrl.BaseURL()
	if base == "" {
		base = "(same origin)"
	}
	title := lipgloss.NewStyle().Bold(true).Render("noted")
	api := styleMuted().Render("  API: " + base)
	busy := ""
	if m.busy {
		busy = styleMuted().Render("  · working…")
	}
	return title + api + busy + "\n"
}

func (m appModel) viewSplit() string {
	h := m.bodyHeight()
	left := normalizePane(m.notesList.View(), m.listWidth(), h)
	right := normalizePane(m.viewEditor(), m.editorWidth(), h)
	gap := strings.TrimRight(strings.Repeat(" \n", h), "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  "+gap, right)
}

func (m appModel) viewEditor() string {
	if m.ctrl.SelectedID() == "" {
		return styleMuted().Render("No note selected.\n\nPress n to create one.")
	}

	w := m.editorWidth()

	label := "Title"
	if m.ctrl.Dirty() {
		label = "Title " + lipgloss.NewStyle().Foreground(colorDirty).Render("(unsaved)")
	}
	titleLine := inputLine(m.titleInput.View(), w-2)

	var content string
	if m.showPreview {
		content = renderMarkdown(m.ctrl.DraftContent(), w-2)
		if content == "" {
			content = styleMuted().Render("(empty)")
		}
	} else {
		content = m.contentArea.View()
	}

	return strings.Join([]string{
		styleMuted().Render(label),
		titleLine,
		"",
		content,
	}, "\n")
}

func (m appModel) viewFooter() string {
	status := " "
	if m.statusText != "" {
		if m.statusError {
			status = styleError().Render(m.statusText)
		} else {
			status = styleMuted().Render(m.statusText)
		}
	}

	var help string
	switch {
	case m.modal == modalConfirm:
		help = "tab: focus   enter: select   y/n   esc: cancel"
	case m.focus == focusList:
		help = fmt.Sprintf("enter: edit  n: new  r: refresh  x: delete  p: preview  /: filter  q: quit  (%d notes)", len(m.notesList.Items()))
	default:
		help = "ctrl+s: save  ctrl+d: discard  tab: next field  esc: back to list"
	}

	return status + "\n" + styleMuted().Render(help)
}
