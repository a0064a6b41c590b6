package restrictions

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the restrictions admin API on the given group.
// The caller owns the group's middleware stack (rate limiting, CSRF).
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/restrictions", h.List)
	g.POST("/restrictions", h.Create)
	g.PUT("/restrictions/:id", h.Update)
	g.DELETE("/restrictions/:id", h.Delete)
}
