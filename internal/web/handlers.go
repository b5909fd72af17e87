package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mendresvon/aura-notes-frontend/internal/api"
	"github.com/mendresvon/aura-notes-frontend/internal/logger"
	"github.com/mendresvon/aura-notes-frontend/internal/model"
	"github.com/mendresvon/aura-notes-frontend/internal/notes"
)

const (
	minPasswordLength = 6

	msgPasswordTooShort = "Password must be at least 6 characters long."
	msgFieldsRequired   = "Title and content are required."
	msgLoginFailed      = "Login failed. Please check your credentials."
	msgRegisterFailed   = "An unexpected error occurred. Please try again."
	msgActionFailed     = "Something went wrong. Please try again."
)

// Session is the writable slice of the session store the handlers need.
type Session interface {
	Login(token string) error
	Logout() error
	Authenticated() bool
}

// Handler serves the browser UI and delegates every action to the notes
// controller and the session store.
type Handler struct {
	api     model.API
	session Session
	notes   *notes.Controller
	logger  *logger.Logger
}

// NewHandler creates a Handler.
func NewHandler(api model.API, session Session, notes *notes.Controller, logger *logger.Logger) *Handler {
	return &Handler{
		api:     api,
		session: session,
		notes:   notes,
		logger:  logger,
	}
}

type authPage struct {
	Error   string
	Success bool
}

type dashboardPage struct {
	Notes      []model.Note
	Loading    bool
	Search     string
	EditorOpen bool
	Editing    *model.Note
	Error      string
}

// Healthz reports process liveness.
func (h *Handler) Healthz(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", authPage{})
}

// Login exchanges the submitted credentials for a token and establishes the
// session. Failures render inline next to the form.
func (h *Handler) Login(c echo.Context) error {
	creds := model.Credentials{
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}

	token, err := h.api.Login(c.Request().Context(), creds)
	if err != nil {
		h.logger.Info("login failed", "error", err.Error())
		return c.Render(http.StatusOK, "login.html", authPage{Error: errorMessage(err, msgLoginFailed)})
	}

	if err := h.session.Login(token); err != nil {
		h.logger.Error("failed to establish session", "error", err.Error())
		return c.Render(http.StatusOK, "login.html", authPage{Error: msgLoginFailed})
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", authPage{})
}

// Register creates an account. A too short password is rejected inline
// before any network call.
func (h *Handler) Register(c echo.Context) error {
	params := model.RegisterParams{
		Name:     strings.TrimSpace(c.FormValue("name")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
	}

	if len(params.Password) < minPasswordLength {
		return c.Render(http.StatusOK, "register.html", authPage{Error: msgPasswordTooShort})
	}

	if err := h.api.Register(c.Request().Context(), params); err != nil {
		h.logger.Info("registration failed", "error", err.Error())
		return c.Render(http.StatusOK, "register.html", authPage{Error: errorMessage(err, msgRegisterFailed)})
	}

	return c.Render(http.StatusOK, "register.html", authPage{Success: true})
}

// Dashboard refreshes the note list and renders it. Query parameters drive
// the controller state: q is the search term, new/edit open the editor.
func (h *Handler) Dashboard(c echo.Context) error {
	h.notes.SetSearchTerm(c.QueryParam("q"))

	errMsg := ""
	if err := h.notes.Refresh(c.Request().Context()); err != nil {
		if sessionLost(err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		// A duplicate refresh still shows the last fetched list.
		if !errors.Is(err, model.ErrRequestInFlight) {
			h.logger.Error("failed to refresh notes", "error", err.Error())
			errMsg = errorMessage(err, msgActionFailed)
		}
	}

	switch {
	case c.QueryParam("new") != "":
		h.notes.StartCreate()
	case c.QueryParam("edit") != "":
		if !h.notes.StartEdit(c.QueryParam("edit")) {
			return c.Redirect(http.StatusSeeOther, "/")
		}
	default:
		h.notes.CloseEditor()
	}

	return c.Render(http.StatusOK, "dashboard.html", h.dashboardData(errMsg))
}

// SaveNote creates or updates a note depending on the controller's edit
// target. On failure the editor stays open with an inline error.
func (h *Handler) SaveNote(c echo.Context) error {
	input := model.NoteInput{
		Title:   strings.TrimSpace(c.FormValue("title")),
		Content: c.FormValue("content"),
	}

	if input.Title == "" || input.Content == "" {
		return c.Render(http.StatusOK, "dashboard.html", h.dashboardData(msgFieldsRequired))
	}

	if err := h.notes.Save(c.Request().Context(), input); err != nil {
		if sessionLost(err) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		if errors.Is(err, model.ErrRequestInFlight) {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		h.logger.Error("failed to save note", "error", err.Error())
		return c.Render(http.StatusOK, "dashboard.html", h.dashboardData(errorMessage(err, msgActionFailed)))
	}

	return c.Redirect(http.StatusSeeOther, "/")
}

// DeleteNote removes a note when the confirmation field is set; otherwise it
// is a no-op round trip back to the dashboard.
func (h *Handler) DeleteNote(c echo.Context) error {
	confirmed := c.FormValue("confirmed") == "true"

	err := h.notes.Remove(c.Request().Context(), c.Param("id"), confirmed)
	switch {
	case err == nil, errors.Is(err, model.ErrNotConfirmed), errors.Is(err, model.ErrRequestInFlight):
		return c.Redirect(http.StatusSeeOther, "/")
	case sessionLost(err):
		return c.Redirect(http.StatusSeeOther, "/login")
	default:
		h.logger.Error("failed to delete note", "error", err.Error())
		return c.Render(http.StatusOK, "dashboard.html", h.dashboardData(errorMessage(err, msgActionFailed)))
	}
}

// Logout tears down the session and returns to the login page.
func (h *Handler) Logout(c echo.Context) error {
	if err := h.session.Logout(); err != nil {
		h.logger.Error("failed to clear session", "error", err.Error())
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (h *Handler) dashboardData(errMsg string) dashboardPage {
	page := dashboardPage{
		Notes:      h.notes.Visible(),
		Loading:    h.notes.Loading(),
		Search:     h.notes.SearchTerm(),
		EditorOpen: h.notes.EditorOpen(),
		Error:      errMsg,
	}
	if editing, ok := h.notes.Editing(); ok {
		page.Editing = &editing
	}
	return page
}

// sessionLost reports whether err means the backend rejected the token and
// the user must log in again.
func sessionLost(err error) bool {
	return errors.Is(err, model.ErrSessionExpired) || errors.Is(err, model.ErrUnauthorized)
}

// errorMessage prefers the server-provided message and falls back to a fixed
// string for transport failures.
func errorMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}
