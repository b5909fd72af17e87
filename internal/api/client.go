package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/mendresvon/aura-notes-frontend/internal/logger"
	"github.com/mendresvon/aura-notes-frontend/internal/model"
)

// TokenSource yields the current session token, or the empty string when the
// session is unauthenticated.
type TokenSource interface {
	Token() string
}

// Client calls the remote notes backend. Every request attaches a bearer
// token when one is present and a fresh request id for correlation. A failed
// call surfaces immediately; there are no retries.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *logger.Logger
}

// New creates a Client for the backend at baseURL. A trailing slash on
// baseURL is tolerated.
func New(baseURL string, timeout time.Duration, tokens TokenSource, logger *logger.Logger) *Client {
	return &Client{
		baseURL: trimTrailingSlash(baseURL),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// Register creates a new account. The confirmation payload is discarded.
func (c *Client) Register(ctx context.Context, params model.RegisterParams) error {
	return c.do(ctx, http.MethodPost, "/auth/register", params, nil)
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// ListNotes fetches all notes owned by the logged-in user.
func (c *Client) ListNotes(ctx context.Context) ([]model.Note, error) {
	var notes []model.Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote creates a note and returns the server-assigned record.
func (c *Client) CreateNote(ctx context.Context, input model.NoteInput) (model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPost, "/notes", input, &note); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// UpdateNote replaces the title and content of an existing note.
func (c *Client) UpdateNote(ctx context.Context, id string, input model.NoteInput) (model.Note, error) {
	var note model.Note
	if err := c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), input, &note); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// DeleteNote removes a note. The confirmation payload is discarded.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug("API call finished",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}

func trimTrailingSlash(u string) string {
	for len(u) > 0 && u[len(u)-1] == '/' {
		u = u[:len(u)-1]
	}
	return u
}
