package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mendresvon/aura-notes-frontend/internal/model"
)

// fallbackMessage is shown when the server gave no usable error body.
const fallbackMessage = "request failed"

// Error is a non-2xx response from the backend, carrying the server-provided
// message when one was present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Is makes every 401 match model.ErrUnauthorized, so callers detect auth
// failure by status code alone regardless of the response body.
func (e *Error) Is(target error) bool {
	return target == model.ErrUnauthorized && e.Status == http.StatusUnauthorized
}

func newError(status int, body []byte) *Error {
	var payload struct {
		Msg string `json:"msg"`
	}
	message := fallbackMessage
	if err := json.Unmarshal(body, &payload); err == nil && payload.Msg != "" {
		message = payload.Msg
	}

	return &Error{Status: status, Message: message}
}
