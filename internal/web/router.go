package web

import "github.com/labstack/echo/v4"

// RegisterRoutes wires up all UI routes on the provided Echo instance.
// Dashboard and note actions sit behind the route guard; the auth entry
// points redirect the other way when a session already exists.
func RegisterRoutes(e *echo.Echo, h *Handler, session SessionState) {
	e.GET("/healthz", h.Healthz)

	e.GET("/login", h.LoginPage, RedirectAuthenticated(session))
	e.POST("/login", h.Login, RedirectAuthenticated(session))
	e.GET("/register", h.RegisterPage, RedirectAuthenticated(session))
	e.POST("/register", h.Register, RedirectAuthenticated(session))

	protected := e.Group("", RequireSession(session))
	protected.GET("/", h.Dashboard)
	protected.POST("/notes", h.SaveNote)
	protected.POST("/notes/:id/delete", h.DeleteNote)
	protected.POST("/logout", h.Logout)
}
