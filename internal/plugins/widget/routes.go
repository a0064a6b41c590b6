package widget

import "github.com/labstack/echo/v4"

// RegisterRoutes sets up the widget pages and interaction endpoints. The
// caller applies EnsureClientID (and rate limiting for the interaction
// group) before handing over the groups.
func RegisterRoutes(e *echo.Echo, interactions *echo.Group, h *Handler) {
	e.GET("/", h.Page)
	e.GET("/widget", h.Fragment)
	e.GET("/api/selection", h.Selection)

	interactions.POST("/month", h.SelectMonth)
	interactions.POST("/day", h.SelectDay)
	interactions.POST("/hour", h.SelectHour)
	interactions.POST("/minute", h.SelectMinute)
	interactions.POST("/meridiem", h.SetMeridiem)
	interactions.POST("/year", h.SetYear)
	interactions.POST("/date", h.SelectDate)
	interactions.POST("/back", h.Back)
	interactions.POST("/today", h.Today)
	interactions.POST("/drag/start", h.DragStart)
	interactions.POST("/drag/move", h.DragMove)
	interactions.POST("/drag/end", h.DragEnd)
}
