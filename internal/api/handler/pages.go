package handler

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the prebuilt SPA shell pages in development, where the
// Go server is the only process. In production a front proxy serves the
// static build and only /api traffic reaches this server.
type PageHandler struct {
	buildDir string
}

func NewPageHandler(buildDir string) *PageHandler {
	return &PageHandler{buildDir: buildDir}
}

// Login serves the login/registration page.
func (h *PageHandler) Login(c echo.Context) error {
	return c.File(filepath.Join(h.buildDir, "login.html"))
}

// App serves the application shell; client-side routing takes it from there.
func (h *PageHandler) App(c echo.Context) error {
	return c.File(filepath.Join(h.buildDir, "app.html"))
}
