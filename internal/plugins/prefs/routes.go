package prefs

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the preferences API on the given group. The caller
// must apply the EnsureClientID middleware to the group.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/prefs", h.Get)
	g.PUT("/prefs/theme", h.SetTheme)
	g.DELETE("/prefs", h.Reset)
	g.GET("/prefs/themes", h.ListThemes)
}
