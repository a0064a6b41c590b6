package prefs

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rondelui/rondel/internal/apperror"
	"github.com/rondelui/rondel/internal/middleware"
	"github.com/rondelui/rondel/internal/themes"
)

// Handler handles HTTP requests for the preferences API. The client is
// identified by the rondel_client cookie, resolved by the EnsureClientID
// middleware.
type Handler struct {
	service PrefsService
}

// NewHandler creates a new preferences handler.
func NewHandler(service PrefsService) *Handler {
	return &Handler{service: service}
}

// themePayload is the PUT request body.
type themePayload struct {
	Theme string `json:"theme"`
}

// Get returns the client's preferences (GET /api/prefs).
func (h *Handler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), middleware.ClientID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// SetTheme stores the client's theme choice (PUT /api/prefs/theme).
func (h *Handler) SetTheme(c echo.Context) error {
	var payload themePayload
	if err := c.Bind(&payload); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	clientID := middleware.ClientID(c)
	if err := h.service.SetTheme(c.Request().Context(), clientID, payload.Theme); err != nil {
		return err
	}

	slog.Info("theme preference updated", slog.String("theme", payload.Theme))
	return c.JSON(http.StatusOK, Preferences{Theme: payload.Theme})
}

// Reset clears the client's preferences (DELETE /api/prefs).
func (h *Handler) Reset(c echo.Context) error {
	if err := h.service.Reset(c.Request().Context(), middleware.ClientID(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListThemes returns the theme registry (GET /api/prefs/themes) so embedding
// pages can offer a theme picker without hardcoding the list.
func (h *Handler) ListThemes(c echo.Context) error {
	return c.JSON(http.StatusOK, themes.Registry())
}
