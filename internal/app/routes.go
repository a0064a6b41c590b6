package app

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rondelui/rondel/internal/middleware"
	"github.com/rondelui/rondel/internal/plugins/prefs"
	"github.com/rondelui/rondel/internal/plugins/restrictions"
	"github.com/rondelui/rondel/internal/plugins/widget"
)

// interactionRateLimit caps widget interaction requests per IP per minute.
// Drag sequences are bursty, so the ceiling is generous.
const interactionRateLimit = 300

// RegisterRoutes sets up all application routes. It constructs each
// plugin's repository/service/handler chain and delegates to the plugin's
// route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// Health check endpoint for container orchestration. Verifies the
	// backing stores, not just the process.
	e.GET("/healthz", a.healthz)

	// --- Restrictions plugin (MariaDB-backed date rules) ---
	restrictionService := restrictions.NewRestrictionService(
		restrictions.NewRestrictionRepository(a.DB),
	)

	// --- Preferences plugin (Redis-backed themes) ---
	prefsService := prefs.NewPrefsService(prefs.NewPrefsRepository(a.Redis))
	prefsHandler := prefs.NewHandler(prefsService)

	// --- Widget plugin (the picker itself) ---
	a.widgets = widget.NewWidgetService(widget.Config{
		TimeSelectionEnabled: a.Config.Widget.TimeSelectionEnabled,
		Is12HourClock:        a.Config.Widget.TwelveHourClock,
		WeekViewEnabled:      a.Config.Widget.WeekViewEnabled,
		AllowPastDates:       a.Config.Widget.AllowPastDates,
		InstanceTTL:          a.Config.Widget.InstanceTTL,
	}, restrictionService)
	widgetHandler := widget.NewHandler(a.widgets, prefsService)

	// Rule changes propagate to live pickers through the widget registry.
	restrictionHandler := restrictions.NewHandler(restrictionService, a.widgets)

	// Interaction endpoints get a per-IP rate limit on top of the global
	// middleware stack.
	interactions := e.Group("/widget", middleware.RateLimit(interactionRateLimit, time.Minute))
	widget.RegisterRoutes(e, interactions, widgetHandler)

	// --- API routes ---
	api := e.Group("/api")
	prefs.RegisterRoutes(api, prefsHandler)
	restrictions.RegisterRoutes(api, restrictionHandler)
}

// healthz reports liveness of the process and its backing stores.
func (a *App) healthz(c echo.Context) error {
	ctx := c.Request().Context()

	if err := a.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded", "database": err.Error(),
		})
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded", "redis": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
