package tui

type focusArea int

const (
	focusList focusArea = iota
	focusTitle
	focusContent
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirm
)

type pendingKind int

const (
	pendingNone pendingKind = iota
	// pendingSelect switches the session to another note, discarding the
	// dirty draft.
	pendingSelect
	pendingDelete
	pendingDiscard
	pendingNew
	pendingQuit
)

type pendingAction struct {
	kind pendingKind
	// id is the target note for pendingSelect.
	id string
}

// opDoneMsg is emitted when an API-backed operation settles (success or
// failure); the model only mutates UI state in response to it.
type opDoneMsg struct {
	op  string
	seq int
	err string
}
