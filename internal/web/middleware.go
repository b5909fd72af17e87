package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionState is the read-only view of the session the route guard
// consumes. It must answer synchronously.
type SessionState interface {
	Authenticated() bool
}

// RequireSession gates protected views: without a token the request is
// redirected to the login entry point.
func RequireSession(session SessionState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !session.Authenticated() {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// RedirectAuthenticated sends already logged-in users from the auth entry
// points back to the dashboard.
func RedirectAuthenticated(session SessionState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.Authenticated() {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}
