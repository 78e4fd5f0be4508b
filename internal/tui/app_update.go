package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd {
	// Initial load replaces the (empty) collection and selects the first
	// fetched note. newAppModel already marked the model busy for it.
	return refreshCmd(m.ctrl, false, m.opSeq)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.resizePanes()
		return m, nil

	case opDoneMsg:
		// Stale completions (from an operation superseded by a newer one)
		// must not flip the busy flag back.
		if msg.seq != m.opSeq {
			return m, nil
		}
		m.busy = false
		m.syncFromController()
		if msg.op == "create" && msg.err == "" {
			// A fresh note starts as an unsaved draft; put the cursor on the
			// title so the user names it right away.
			m.setFocus(focusTitle)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.modal == modalConfirm {
		return m.updateConfirmKey(msg)
	}

	// While an operation is in flight every mutating action is disabled;
	// pure navigation stays available.
	if m.busy {
		switch msg.String() {
		case "up", "down", "ctrl+p", "ctrl+n", "j", "k":
			if m.focus == focusList {
				var cmd tea.Cmd
				m.notesList, cmd = m.notesList.Update(msg)
				return m, cmd
			}
		}
		return m, nil
	}

	switch m.focus {
	case focusList:
		return m.updateListKey(msg)
	case focusTitle:
		return m.updateTitleKey(msg)
	case focusContent:
		return m.updateContentKey(msg)
	}
	return m, nil
}

func (m appModel) updateConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		return m.applyPending()
	case "n", "esc":
		m.closeConfirm()
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			return m.applyPending()
		}
		m.closeConfirm()
		return m, nil
	}
	return m, nil
}

func (m appModel) applyPending() (tea.Model, tea.Cmd) {
	p := m.pending
	m.closeConfirm()

	switch p.kind {
	case pendingSelect:
		m.ctrl.Select(p.id)
		m.syncFromController()
		m.setFocus(focusTitle)
		return m, nil
	case pendingDiscard:
		m.ctrl.Discard()
		m.syncFromController()
		return m, nil
	case pendingDelete:
		m.setFocus(focusList)
		m.busy = true
		m.opSeq++
		return m, deleteCmd(m.ctrl, m.opSeq)
	case pendingNew:
		m.busy = true
		m.opSeq++
		return m, createCmd(m.ctrl, m.opSeq)
	case pendingQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the bubbles filter prompt is active, it owns the keyboard.
	if m.notesList.SettingFilter() {
		var cmd tea.Cmd
		m.notesList, cmd = m.notesList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		if m.ctrl.Dirty() {
			m.openConfirm("Quit", "Discard unsaved changes and quit?", pendingAction{kind: pendingQuit})
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		target := m.selectedListNoteID()
		if target == "" {
			return m, nil
		}
		if target == m.ctrl.SelectedID() {
			m.setFocus(focusTitle)
			return m, nil
		}
		if m.ctrl.Dirty() {
			m.openConfirm("Unsaved changes", "Discard unsaved changes and switch notes?", pendingAction{kind: pendingSelect, id: target})
			return m, nil
		}
		m.ctrl.Select(target)
		m.syncFromController()
		m.setFocus(focusTitle)
		return m, nil

	case "n":
		if m.ctrl.Dirty() {
			m.openConfirm("Unsaved changes", "Discard unsaved changes and create a new note?", pendingAction{kind: pendingNew})
			return m, nil
		}
		m.busy = true
		m.opSeq++
		return m, createCmd(m.ctrl, m.opSeq)

	case "r":
		m.busy = true
		m.opSeq++
		return m, refreshCmd(m.ctrl, true, m.opSeq)

	case "x", "backspace":
		if m.ctrl.SelectedID() == "" {
			return m, nil
		}
		m.openConfirm("Delete note", deletePrompt(m.ctrl.DraftTitle()), pendingAction{kind: pendingDelete})
		return m, nil

	case "p":
		m.showPreview = !m.showPreview
		return m, nil

	case "tab":
		if m.ctrl.SelectedID() != "" {
			m.setFocus(focusTitle)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.notesList, cmd = m.notesList.Update(msg)
	return m, cmd
}

func (m appModel) updateTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "shift+tab":
		m.setFocus(focusList)
		return m, nil
	case "enter", "tab":
		m.setFocus(focusContent)
		return m, nil
	case "ctrl+s":
		m.busy = true
		m.opSeq++
		return m, saveCmd(m.ctrl, m.opSeq)
	case "ctrl+d":
		if m.ctrl.Dirty() {
			m.openConfirm("Discard changes", "Reset the draft to the saved note?", pendingAction{kind: pendingDiscard})
		}
		return m, nil
	}

	before := m.titleInput.Value()
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	if m.titleInput.Value() != before {
		m.ctrl.EditTitle(m.titleInput.Value())
		m.refreshDirtyMarkers()
	}
	return m, cmd
}

func (m appModel) updateContentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setFocus(focusList)
		return m, nil
	case "shift+tab":
		m.setFocus(focusTitle)
		return m, nil
	case "ctrl+s":
		m.busy = true
		m.opSeq++
		return m, saveCmd(m.ctrl, m.opSeq)
	case "ctrl+d":
		if m.ctrl.Dirty() {
			m.openConfirm("Discard changes", "Reset the draft to the saved note?", pendingAction{kind: pendingDiscard})
		}
		return m, nil
	}

	before := m.contentArea.Value()
	var cmd tea.Cmd
	m.contentArea, cmd = m.contentArea.Update(msg)
	if m.contentArea.Value() != before {
		m.ctrl.EditContent(m.contentArea.Value())
		m.refreshDirtyMarkers()
	}
	return m, cmd
}

func deletePrompt(title string) string {
	title = truncateInline(title, 40)
	if title == "" {
		return "Delete this note? This cannot be undone."
	}
	return "Delete “" + title + "”? This cannot be undone."
}
