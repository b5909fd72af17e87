package notes

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/mendresvon/aura-notes-frontend/internal/logger"
	"github.com/mendresvon/aura-notes-frontend/internal/model"
)

// Session is the slice of the session store the controller needs to force a
// logout when the backend rejects the token.
type Session interface {
	Authenticated() bool
	Logout() error
}

const opRefresh = "refresh"

// Controller coordinates note synchronization and editing state. The note
// list changes only by wholesale replacement after a successful fetch; a
// failed operation never leaves a partial mutation behind.
type Controller struct {
	api     model.API
	session Session
	logger  *logger.Logger

	mu         sync.Mutex
	notes      []model.Note
	loading    bool
	search     string
	editorOpen bool
	editing    *model.Note
	inflight   map[string]struct{}
}

// NewController creates a Controller with an empty note list.
func NewController(api model.API, session Session, logger *logger.Logger) *Controller {
	return &Controller{
		api:      api,
		session:  session,
		logger:   logger,
		inflight: map[string]struct{}{},
	}
}

// Refresh re-fetches the full note list and replaces the cached one, sorted
// by update time descending. On an auth failure the session is torn down and
// model.ErrSessionExpired tells the caller to redirect to login; any other
// failure leaves the list unchanged.
func (c *Controller) Refresh(ctx context.Context) error {
	if err := c.begin(opRefresh); err != nil {
		return err
	}
	defer c.end(opRefresh)

	c.setLoading(true)
	defer c.setLoading(false)

	fetched, err := c.api.ListNotes(ctx)
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return c.expireSession()
		}
		return fmt.Errorf("failed to list notes: %w", err)
	}

	slices.SortFunc(fetched, func(a, b model.Note) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	c.mu.Lock()
	c.notes = fetched
	c.mu.Unlock()

	c.logger.Debug("note list replaced", "count", len(fetched))
	return nil
}

// Save sends the input to the backend: an update when an edit target is set,
// a create otherwise. Success closes the editor and refreshes the list;
// failure keeps the editor state so the user can retry.
func (c *Controller) Save(ctx context.Context, input model.NoteInput) error {
	c.mu.Lock()
	var target *model.Note
	key := "save:new"
	if c.editing != nil {
		clone := *c.editing
		target = &clone
		key = "save:" + clone.ID
	}
	c.mu.Unlock()

	if err := c.begin(key); err != nil {
		return err
	}
	defer c.end(key)

	var err error
	if target != nil {
		_, err = c.api.UpdateNote(ctx, target.ID, input)
	} else {
		_, err = c.api.CreateNote(ctx, input)
	}
	if err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return c.expireSession()
		}
		return fmt.Errorf("failed to save note: %w", err)
	}

	c.CloseEditor()
	return c.Refresh(ctx)
}

// Remove deletes a note after an explicit confirmation. Without it no
// request is issued and model.ErrNotConfirmed is returned.
func (c *Controller) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return model.ErrNotConfirmed
	}

	key := "delete:" + id
	if err := c.begin(key); err != nil {
		return err
	}
	defer c.end(key)

	if err := c.api.DeleteNote(ctx, id); err != nil {
		if errors.Is(err, model.ErrUnauthorized) {
			return c.expireSession()
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return c.Refresh(ctx)
}

// SetSearchTerm updates the search term. The filtered view is recomputed on
// every read and never stored.
func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()
}

// SearchTerm returns the current search term.
func (c *Controller) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// Visible returns the notes whose title or content contains the search term,
// case-insensitively. An empty term returns the full list.
func (c *Controller) Visible() []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(c.search))
	if term == "" {
		return slices.Clone(c.notes)
	}

	visible := make([]model.Note, 0, len(c.notes))
	for _, note := range c.notes {
		if strings.Contains(strings.ToLower(note.Title), term) ||
			strings.Contains(strings.ToLower(note.Content), term) {
			visible = append(visible, note)
		}
	}

	return visible
}

// Notes returns a snapshot of the unfiltered note list.
func (c *Controller) Notes() []model.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.notes)
}

// Loading reports whether a fetch is outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// StartCreate opens the editor in create mode.
func (c *Controller) StartCreate() {
	c.mu.Lock()
	c.editing = nil
	c.editorOpen = true
	c.mu.Unlock()
}

// StartEdit opens the editor on the note with the given id. It reports false
// when the id is not in the cached list.
func (c *Controller) StartEdit(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, note := range c.notes {
		if note.ID == id {
			clone := note
			c.editing = &clone
			c.editorOpen = true
			return true
		}
	}

	return false
}

// CloseEditor closes the editor and clears the edit target.
func (c *Controller) CloseEditor() {
	c.mu.Lock()
	c.editing = nil
	c.editorOpen = false
	c.mu.Unlock()
}

// EditorOpen reports whether the editor is open.
func (c *Controller) EditorOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editorOpen
}

// Editing returns the current edit target. ok is false in create mode.
func (c *Controller) Editing() (note model.Note, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editing == nil {
		return model.Note{}, false
	}
	return *c.editing, true
}

// begin reserves an operation key, rejecting a repeat of an operation that
// has not resolved yet.
func (c *Controller) begin(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.inflight[key]; ok {
		c.logger.Debug("rejecting duplicate operation", "op", key)
		return model.ErrRequestInFlight
	}
	c.inflight[key] = struct{}{}
	return nil
}

func (c *Controller) end(key string) {
	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

// expireSession tears the session down once. When a parallel operation
// already cleared it, the plain auth failure is returned so the redirect is
// signalled a single time.
func (c *Controller) expireSession() error {
	if !c.session.Authenticated() {
		return model.ErrUnauthorized
	}

	if err := c.session.Logout(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	c.logger.Info("token rejected by backend, session cleared")
	return model.ErrSessionExpired
}
