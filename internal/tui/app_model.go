package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"noted-cli/internal/controller"
)

type appModel struct {
	ctrl *controller.Controller

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	notesList   list.Model
	titleInput  textinput.Model
	contentArea textarea.Model

	focus       focusArea
	showPreview bool

	modal         modalKind
	confirmTitle  string
	confirmBody   string
	confirmFocus  confirmModalFocus
	pending       pendingAction
	returnFocus   focusArea

	// busy mirrors the controller's in-flight flag at the UI layer: set when
	// a command is dispatched, cleared by its opDoneMsg. All mutating keys
	// are ignored while set.
	busy  bool
	opSeq int

	statusText  string
	statusError bool
}

func newAppModel(ctrl *controller.Controller) appModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "Title"

	ta := textarea.New()
	ta.Placeholder = "Write your note…"
	ta.ShowLineNumbers = false

	m := appModel{
		ctrl:        ctrl,
		notesList:   newList(nil),
		titleInput:  ti,
		contentArea: ta,
		focus:       focusList,
		// The initial load dispatched from Init is already in flight.
		busy: true,
	}
	return m
}

const (
	headerLines = 2
	footerLines = 2
	minListW    = 28
	minEditorW  = 30
)

func (m *appModel) listWidth() int {
	w := m.width * 2 / 5
	if w < minListW {
		w = minListW
	}
	return w
}

func (m *appModel) editorWidth() int {
	w := m.width - m.listWidth() - 2
	if w < minEditorW {
		w = minEditorW
	}
	return w
}

func (m *appModel) bodyHeight() int {
	h := m.height - headerLines - footerLines - 2
	if h < 8 {
		h = 8
	}
	return h
}

func (m *appModel) resizePanes() {
	m.notesList.SetSize(m.listWidth(), m.bodyHeight())
	m.titleInput.Width = m.editorWidth() - 4
	m.contentArea.SetWidth(m.editorWidth())
	m.contentArea.SetHeight(m.bodyHeight() - 3)
}

// syncFromController rebuilds the list from the controller's sorted view and
// re-aligns the list cursor and editor widgets with the session.
func (m *appModel) syncFromController() {
	selectedID := m.ctrl.SelectedID()
	dirty := m.ctrl.Dirty()

	items := make([]list.Item, 0)
	for _, n := range m.ctrl.Sorted() {
		items = append(items, noteItem{note: n, dirty: dirty && n.ID == selectedID})
	}
	m.notesList.SetItems(items)
	if selectedID != "" {
		selectListItemByID(&m.notesList, selectedID)
	}

	m.syncEditor()
	m.syncStatus()
}

// syncEditor loads the controller's draft into the widgets. Only called when
// the session itself changed (select/refresh/create/delete/discard), never
// on a keystroke.
func (m *appModel) syncEditor() {
	m.titleInput.SetValue(m.ctrl.DraftTitle())
	m.titleInput.CursorEnd()
	m.contentArea.SetValue(m.ctrl.DraftContent())
}

func (m *appModel) syncStatus() {
	st := m.ctrl.Status()
	m.statusText = st.Text
	m.statusError = st.Error
}

func (m *appModel) setFocus(f focusArea) {
	m.focus = f
	m.titleInput.Blur()
	m.contentArea.Blur()
	switch f {
	case focusTitle:
		m.titleInput.Focus()
	case focusContent:
		m.contentArea.Focus()
	}
}

func (m *appModel) openConfirm(title, body string, p pendingAction) {
	m.modal = modalConfirm
	m.confirmTitle = title
	m.confirmBody = body
	m.confirmFocus = confirmFocusCancel
	m.pending = p
	m.returnFocus = m.focus
}

func (m *appModel) closeConfirm() {
	m.modal = modalNone
	m.pending = pendingAction{}
	m.setFocus(m.returnFocus)
}

// refreshDirtyMarkers repaints the unsaved-draft marker without rebuilding
// the list; typing must not reorder or reload anything.
func (m *appModel) refreshDirtyMarkers() {
	selectedID := m.ctrl.SelectedID()
	dirty := m.ctrl.Dirty()
	items := m.notesList.Items()
	for i, it := range items {
		if n, ok := it.(noteItem); ok {
			n.dirty = dirty && n.note.ID == selectedID
			items[i] = n
		}
	}
	m.notesList.SetItems(items)
}

func (m *appModel) selectedListNoteID() string {
	if it, ok := m.notesList.SelectedItem().(noteItem); ok {
		return it.note.ID
	}
	return ""
}
