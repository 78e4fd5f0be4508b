// Package controller owns the in-memory note collection and the single
// editing session over it. It is the only caller of the API client; every
// mutation goes through it, and UI-visible state changes only after the
// underlying request has settled.
package controller

import (
	"context"
	"strings"
	"sync"

	"noted-cli/internal/api"
	"noted-cli/internal/model"
)

// DefaultTitle is used for freshly created notes and as the fallback when a
// saved title trims down to nothing.
const DefaultTitle = "Untitled"

// Confirmer gates destructive or state-discarding actions (switching away
// from a dirty draft, delete, discard). Declining is a no-op, not an error.
// It is injected so the controller stays testable without a real UI.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a plain function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }

// Status is the transient message surfaced to the view layer. It is cleared
// at the start of every operation.
type Status struct {
	Text  string
	Error bool
}

type Controller struct {
	// mu guards all session state: the TUI runs API calls on command
	// goroutines while the render loop keeps reading derived state.
	mu      sync.Mutex
	client  *api.Client
	confirm Confirmer

	notes        []model.Note // backend fetch order (selection fallback depends on it)
	selectedID   string
	draftTitle   string
	draftContent string
	dirty        bool
	busy         bool
	status       Status
}

func New(client *api.Client, confirm Confirmer) *Controller {
	if confirm == nil {
		confirm = ConfirmerFunc(func(string) bool { return true })
	}
	return &Controller{client: client, confirm: confirm}
}

// Refresh fetches the full note list and replaces the collection wholesale.
//
// With keepSelection false the first note in fetched order becomes selected
// (or none when empty). With keepSelection true the current selection is
// kept when it survived the fetch, otherwise falls back to the first note.
// On failure the collection is left untouched.
func (c *Controller) Refresh(ctx context.Context, keepSelection bool) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil
	}
	c.busy = true
	c.status = Status{}
	c.mu.Unlock()

	raw, err := c.client.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.status = Status{Text: "Load failed: " + err.Error(), Error: true}
		return err
	}

	c.notes = model.NormalizeAll(raw)

	next := ""
	if keepSelection && c.selectedID != "" && c.findNote(c.selectedID) >= 0 {
		next = c.selectedID
	} else if len(c.notes) > 0 {
		next = c.notes[0].ID
	}
	c.setSelection(next)
	c.status = Status{Text: "Loaded"}
	return nil
}

// Select switches the editing session to another note. A dirty draft
// requires confirmation before it is discarded; declining leaves everything
// unchanged. Selecting an id not present in the collection is a no-op.
func (c *Controller) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	id = strings.TrimSpace(id)
	if id == c.selectedID {
		return false
	}
	if c.findNote(id) < 0 {
		return false
	}
	if c.dirty {
		c.mu.Unlock()
		ok := c.confirm.Confirm("Discard unsaved changes?")
		c.mu.Lock()
		if !ok {
			return false
		}
		// The prompt ran unlocked; the session may have shifted under it.
		if c.busy || id == c.selectedID || c.findNote(id) < 0 {
			return false
		}
	}
	c.status = Status{}
	c.setSelection(id)
	return true
}

// CreateNew creates a note on the backend right away with default fields;
// no local-only placeholder exists at any point, so local and server state
// cannot diverge. The fresh draft is deliberately marked dirty so the user
// has to save (or discard) explicitly before navigating away.
func (c *Controller) CreateNew(ctx context.Context) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil
	}
	if c.dirty {
		c.mu.Unlock()
		if !c.confirm.Confirm("Discard unsaved changes?") {
			return nil
		}
		c.mu.Lock()
	}
	c.busy = true
	c.status = Status{}
	c.mu.Unlock()

	res, err := c.client.Create(ctx, DefaultTitle, "")

	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.status = Status{Text: "Create failed: " + err.Error(), Error: true}
		c.mu.Unlock()
		return err
	}

	created, ok := model.Normalize(res)
	if !ok {
		// Backend did not echo anything identifiable; resync instead of
		// guessing an id.
		c.mu.Unlock()
		if err := c.Refresh(ctx, false); err != nil {
			return err
		}
		c.mu.Lock()
	} else {
		c.notes = append([]model.Note{created}, c.notes...)
		c.setSelection(created.ID)
	}
	c.draftTitle = DefaultTitle
	c.draftContent = ""
	c.dirty = true
	c.status = Status{Text: "Created"}
	c.mu.Unlock()
	return nil
}

// Save sends the current draft as an update for the selected note. The
// trimmed title falls back to DefaultTitle; content goes out as-is. On
// failure the dirty flag stays set so the draft can be retried.
func (c *Controller) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.busy || c.selectedID == "" {
		c.mu.Unlock()
		return nil
	}
	id := c.selectedID
	title := strings.TrimSpace(c.draftTitle)
	if title == "" {
		title = DefaultTitle
	}
	content := c.draftContent
	c.busy = true
	c.status = Status{}
	c.mu.Unlock()

	res, err := c.client.Update(ctx, id, title, content)

	c.mu.Lock()
	c.busy = false
	if err != nil {
		c.status = Status{Text: "Save failed: " + err.Error(), Error: true}
		c.mu.Unlock()
		return err
	}

	updated, ok := model.Normalize(res)
	if !ok {
		c.mu.Unlock()
		if err := c.Refresh(ctx, true); err != nil {
			return err
		}
		c.mu.Lock()
	} else if i := c.findNote(id); i >= 0 {
		// Shallow overwrite: the normalized response carries every field,
		// so it replaces the entry wholesale.
		c.notes[i] = updated
	}
	c.dirty = false
	c.status = Status{Text: "Saved"}
	c.mu.Unlock()
	return nil
}

// Delete removes the selected note after confirmation. When the removed
// note was the selection, selection moves to the first of the remaining
// notes in pre-deletion order, or to none.
func (c *Controller) Delete(ctx context.Context) error {
	c.mu.Lock()
	if c.busy || c.selectedID == "" {
		c.mu.Unlock()
		return nil
	}
	id := c.selectedID
	c.mu.Unlock()

	if !c.confirm.Confirm("Delete this note?") {
		return nil
	}

	c.mu.Lock()
	c.busy = true
	c.status = Status{}
	c.mu.Unlock()

	err := c.client.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.status = Status{Text: "Delete failed: " + err.Error(), Error: true}
		return err
	}

	remaining := make([]model.Note, 0, len(c.notes))
	for _, n := range c.notes {
		if n.ID != id {
			remaining = append(remaining, n)
		}
	}
	c.notes = remaining

	next := ""
	if len(c.notes) > 0 {
		next = c.notes[0].ID
	}
	// Clear the session outright: the deleted note's draft must not linger,
	// and setSelection keeps the draft on a same-id call.
	c.selectedID = ""
	c.draftTitle = ""
	c.draftContent = ""
	c.dirty = false
	c.setSelection(next)
	c.status = Status{Text: "Deleted"}
	return nil
}

// EditTitle records a draft title edit. Dirty tracking is "touched", not
// "differs": typing the saved value back still counts.
func (c *Controller) EditTitle(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedID == "" {
		return
	}
	c.draftTitle = text
	c.dirty = true
}

// EditContent records a draft content edit. Same dirty semantics as
// EditTitle.
func (c *Controller) EditContent(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selectedID == "" {
		return
	}
	c.draftContent = text
	c.dirty = true
}

// Discard resets the draft to the selected note's saved fields after
// confirmation. A clean draft has nothing to discard.
func (c *Controller) Discard() bool {
	c.mu.Lock()
	if c.busy || c.selectedID == "" || !c.dirty {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	if !c.confirm.Confirm("Discard unsaved changes?") {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = Status{}
	if i := c.findNote(c.selectedID); i >= 0 {
		c.draftTitle = c.notes[i].Title
		c.draftContent = c.notes[i].Content
	}
	c.dirty = false
	return true
}

// Sorted is the presentation-ready view of the collection: descending
// effective timestamp, title tie-break.
func (c *Controller) Sorted() []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.Sorted(c.notes)
}

// Notes returns a copy of the collection in backend fetch order.
func (c *Controller) Notes() []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Selected returns the currently selected note, if any.
func (c *Controller) Selected() (model.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.findNote(c.selectedID); i >= 0 {
		return c.notes[i], true
	}
	return model.Note{}, false
}

func (c *Controller) SelectedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

func (c *Controller) DraftTitle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftTitle
}

func (c *Controller) DraftContent() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftContent
}

func (c *Controller) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Busy reports whether a load/save/delete is in flight; the UI disables all
// mutating actions while it is.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// BaseURL exposes the API client's resolved base URL for display.
func (c *Controller) BaseURL() string { return c.client.BaseURL() }

// setSelection switches selectedID and resets the draft from the newly
// selected note. A same-id call keeps the draft (the session only resets
// when the selection actually changes). Callers hold mu.
func (c *Controller) setSelection(id string) {
	if id == c.selectedID {
		return
	}
	c.selectedID = id
	c.draftTitle = ""
	c.draftContent = ""
	c.dirty = false
	if i := c.findNote(id); i >= 0 {
		c.draftTitle = c.notes[i].Title
		c.draftContent = c.notes[i].Content
	}
}

// findNote locates id in fetch order; -1 when absent. Callers hold mu.
func (c *Controller) findNote(id string) int {
	if strings.TrimSpace(id) == "" {
		return -1
	}
	for i := range c.notes {
		if c.notes[i].ID == id {
			return i
		}
	}
	return -1
}
