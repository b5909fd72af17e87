package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mendresvon/aura-notes-frontend/internal/model"
	"github.com/mendresvon/aura-notes-frontend/internal/notes"
	"github.com/mendresvon/aura-notes-frontend/internal/session"
	"github.com/mendresvon/aura-notes-frontend/internal/testutil"
)

type stubAPI struct {
	registerFn func(context.Context, model.RegisterParams) error
	loginFn    func(context.Context, model.Credentials) (string, error)
	listFn     func(context.Context) ([]model.Note, error)
	createFn   func(context.Context, model.NoteInput) (model.Note, error)
	updateFn   func(context.Context, string, model.NoteInput) (model.Note, error)
	deleteFn   func(context.Context, string) error
}

func (s *stubAPI) Register(ctx context.Context, params model.RegisterParams) error {
	if s.registerFn == nil {
		return nil
	}
	return s.registerFn(ctx, params)
}

func (s *stubAPI) Login(ctx context.Context, creds model.Credentials) (string, error) {
	if s.loginFn == nil {
		return "", nil
	}
	return s.loginFn(ctx, creds)
}

func (s *stubAPI) ListNotes(ctx context.Context) ([]model.Note, error) {
	if s.listFn == nil {
		return []model.Note{}, nil
	}
	return s.listFn(ctx)
}

func (s *stubAPI) CreateNote(ctx context.Context, input model.NoteInput) (model.Note, error) {
	if s.createFn == nil {
		return model.Note{}, nil
	}
	return s.createFn(ctx, input)
}

func (s *stubAPI) UpdateNote(ctx context.Context, id string, input model.NoteInput) (model.Note, error) {
	if s.updateFn == nil {
		return model.Note{}, nil
	}
	return s.updateFn(ctx, id, input)
}

func (s *stubAPI) DeleteNote(ctx context.Context, id string) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}

func newTestApp(t *testing.T, api model.API) (*echo.Echo, *session.Store) {
	t.Helper()

	backend := session.NewFileBackend(filepath.Join(t.TempDir(), "token"))
	sess, err := session.New(backend, testutil.MakeNoopLogger())
	require.NoError(t, err)

	controller := notes.NewController(api, sess, testutil.MakeNoopLogger())

	e := echo.New()
	renderer, err := NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer

	RegisterRoutes(e, NewHandler(api, sess, controller, testutil.MakeNoopLogger()), sess)
	return e, sess
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRouteGuard_RedirectsAnonymousToLogin(t *testing.T) {
	e, _ := newTestApp(t, &stubAPI{})

	rec := get(e, "/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRouteGuard_RedirectsAuthenticatedFromLogin(t *testing.T) {
	e, sess := newTestApp(t, &stubAPI{})
	require.NoError(t, sess.Login("abc123"))

	rec := get(e, "/login")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestLogin_EstablishesSession(t *testing.T) {
	api := &stubAPI{
		loginFn: func(_ context.Context, creds model.Credentials) (string, error) {
			assert.Equal(t, "a@b.com", creds.Email)
			assert.Equal(t, "secret1", creds.Password)
			return "abc123", nil
		},
	}
	e, sess := newTestApp(t, api)

	rec := postForm(e, "/login", url.Values{"email": {"a@b.com"}, "password": {"secret1"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, "abc123", sess.Token())
}

func TestLogin_FailureRendersInlineError(t *testing.T) {
	api := &stubAPI{
		loginFn: func(context.Context, model.Credentials) (string, error) {
			return "", assert.AnError
		},
	}
	e, sess := newTestApp(t, api)

	rec := postForm(e, "/login", url.Values{"email": {"a@b.com"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), msgLoginFailed)
	assert.False(t, sess.Authenticated())
}

func TestRegister_ShortPasswordRejectedWithoutNetworkCall(t *testing.T) {
	called := false
	api := &stubAPI{
		registerFn: func(context.Context, model.RegisterParams) error {
			called = true
			return nil
		},
	}
	e, _ := newTestApp(t, api)

	rec := postForm(e, "/register", url.Values{
		"name":     {"Von"},
		"email":    {"a@b.com"},
		"password": {"12345"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password must be at least 6 characters long.")
	assert.False(t, called)
}

func TestRegister_SuccessShowsConfirmation(t *testing.T) {
	e, _ := newTestApp(t, &stubAPI{})

	rec := postForm(e, "/register", url.Values{
		"name":     {"Von"},
		"email":    {"a@b.com"},
		"password": {"secret1"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Account created successfully!")
}

func TestDashboard_RendersFetchedNotes(t *testing.T) {
	api := &stubAPI{
		listFn: func(context.Context) ([]model.Note, error) {
			return []model.Note{
				{ID: "n1", Title: "Groceries", Content: "milk", UpdatedAt: time.Now()},
				{ID: "n2", Title: "Ideas", Content: "birdhouse", UpdatedAt: time.Now()},
			}, nil
		},
	}
	e, sess := newTestApp(t, api)
	require.NoError(t, sess.Login("abc123"))

	rec := get(e, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Groceries")
	assert.Contains(t, rec.Body.String(), "Ideas")
}

func TestDashboard_SearchFiltersRenderedNotes(t *testing.T) {
	api := &stubAPI{
		listFn: func(context.Context) ([]model.Note, error) {
			return []model.Note{
				{ID: "n1", Title: "Groceries", Content: "milk", UpdatedAt: time.Now()},
				{ID: "n2", Title: "Ideas", Content: "birdhouse", UpdatedAt: time.Now()},
			}, nil
		},
	}
	e, sess := newTestApp(t, api)
	require.NoError(t, sess.Login("abc123"))

	rec := get(e, "/?q=grocer")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Groceries")
	assert.NotContains(t, rec.Body.String(), "Ideas")
}

func TestDashboard_UnauthorizedClearsSessionAndRedirects(t *testing.T) {
	api := &stubAPI{
		listFn: func(context.Context) ([]model.Note, error) {
			return nil, model.ErrUnauthorized
		},
	}
	e, sess := newTestApp(t, api)
	require.NoError(t, sess.Login("stale"))

	rec := get(e, "/")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.False(t, sess.Authenticated())
}

func TestDashboard_EditUnknownNoteRedirectsHome(t *testing.T) {
	e, sess := newTestApp(t, &stubAPI{})
	require.NoError(t, sess.Login("abc123"))

	rec := get(e, "/?edit=missing")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

func TestSaveNote_MissingFieldsRejectedWithoutNetworkCall(t *testing.T) {
	called := false
	api := &stubAPI{
		createFn: func(context.Context, model.NoteInput) (model.Note, error) {
			called = true
			return model.Note{}, nil
		},
	}
	e, sess := newTestApp(t, api)
	require.NoError(t, sess.Login("abc123"))

	rec := postForm(e, "/notes", url.Values{"title": {""}, "content": {"body"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), msgFieldsRequired)
	assert.False(t, called)
}

func TestSaveNote_CreatesAndRedirects(t *testing.T) {
	var created model.NoteInput
	api := &stubAPI{
		createFn: func(_ context.Context, input model.NoteInput) (model.Note, error) {
			created = input
			return model.Note{ID: "n9", Title: input.Title, Content: input.Content}, nil
		},
	}
	e, sess := newTestApp(t, api)
	require.NoError(t, sess.Login("abc123"))

	rec := postForm(e, "/notes", url.Values{"title": {"New"}, "content": {"body"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, model.NoteInput{Title: "New", Content: "body"}, created)
}

func TestDeleteNote_WithoutConfirmationIssuesNoCall(t *testing.T) {
	called := false
	api := &stubAPI{
		deleteFn: func(context.Context, string) error {
			called = true
			return nil
		},
	}
	e, sess := newTestApp(t, api)
	require.NoError(t, sess.Login("abc123"))

	rec := postForm(e, "/notes/n1/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	assert.False(t, called)
}

func TestDeleteNote_ConfirmedDeletes(t *testing.T) {
	var deleted string
	api := &stubAPI{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	e, sess := newTestApp(t, api)
	require.NoError(t, sess.Login("abc123"))

	rec := postForm(e, "/notes/n1/delete", url.Values{"confirmed": {"true"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "n1", deleted)
}

func TestLogout_ClearsSession(t *testing.T) {
	e, sess := newTestApp(t, &stubAPI{})
	require.NoError(t, sess.Login("abc123"))

	rec := postForm(e, "/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	assert.False(t, sess.Authenticated())
}

func TestHealthz(t *testing.T) {
	e, _ := newTestApp(t, &stubAPI{})
	rec := get(e, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
