package widget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rondelui/rondel/internal/apperror"
	"github.com/rondelui/rondel/internal/daterules"
	"github.com/rondelui/rondel/internal/middleware"
	"github.com/rondelui/rondel/internal/picker"
	"github.com/rondelui/rondel/internal/plugins/prefs"
	"github.com/rondelui/rondel/internal/views"
)

// dateParamLayout is the wire format for the explicit date endpoint.
const dateParamLayout = "2006-01-02"

// Handler handles HTTP requests for the widget itself: the page, the HTMX
// fragment, and every ring interaction. Interactions re-render the full
// fragment; rejected picks re-render the unchanged widget with the reason
// attached as an HX-Trigger event for the host page.
type Handler struct {
	service WidgetService
	prefs   prefs.PrefsService
}

// NewHandler creates a new widget handler.
func NewHandler(service WidgetService, prefsService prefs.PrefsService) *Handler {
	return &Handler{service: service, prefs: prefsService}
}

// Page renders the full widget page (GET /).
func (h *Handler) Page(c echo.Context) error {
	ctx := c.Request().Context()
	clientID := middleware.ClientID(c)

	scene, err := h.service.Scene(ctx, clientID)
	if err != nil {
		return err
	}

	theme := views.DefaultTheme
	if h.prefs != nil {
		if p, err := h.prefs.Get(ctx, clientID); err == nil {
			theme = p.Theme
		}
	}
	return middleware.Render(c, http.StatusOK, views.WidgetPage(scene, theme))
}

// Fragment renders just the widget fragment (GET /widget) for host pages
// that pull the widget into their own markup.
func (h *Handler) Fragment(c echo.Context) error {
	scene, err := h.service.Scene(c.Request().Context(), middleware.ClientID(c))
	if err != nil {
		return err
	}
	return middleware.Render(c, http.StatusOK, views.WidgetFragment(scene))
}

// SelectMonth drills into a month (POST /widget/month?month=N, 0-based).
func (h *Handler) SelectMonth(c echo.Context) error {
	month, err := intParam(c, "month")
	if err != nil {
		return err
	}
	return h.interact(c, func(p *picker.Picker) error {
		return p.SelectMonth(month)
	})
}

// SelectDay picks a day on the month-days or week ring (POST /widget/day?day=N).
func (h *Handler) SelectDay(c echo.Context) error {
	day, err := intParam(c, "day")
	if err != nil {
		return err
	}
	return h.interact(c, func(p *picker.Picker) error {
		return p.SelectDay(day)
	})
}

// SelectHour picks an hour (POST /widget/hour?hour=N).
func (h *Handler) SelectHour(c echo.Context) error {
	hour, err := intParam(c, "hour")
	if err != nil {
		return err
	}
	return h.interact(c, func(p *picker.Picker) error {
		return p.SelectHour(hour)
	})
}

// SelectMinute completes the time flow (POST /widget/minute?minute=N).
func (h *Handler) SelectMinute(c echo.Context) error {
	minute, err := intParam(c, "minute")
	if err != nil {
		return err
	}
	return h.interact(c, func(p *picker.Picker) error {
		return p.SelectMinute(minute)
	})
}

// SetMeridiem toggles AM/PM in 12-hour mode (POST /widget/meridiem?value=AM|PM).
func (h *Handler) SetMeridiem(c echo.Context) error {
	value := c.QueryParam("value")
	return h.interact(c, func(p *picker.Picker) error {
		return p.SetMeridiem(value)
	})
}

// SetYear steps the displayed year (POST /widget/year?year=N).
func (h *Handler) SetYear(c echo.Context) error {
	year, err := intParam(c, "year")
	if err != nil {
		return err
	}
	return h.interact(c, func(p *picker.Picker) error {
		p.SetYear(year)
		return nil
	})
}

// SelectDate commits an explicit date (POST /widget/date?date=YYYY-MM-DD),
// the programmatic entry point for host pages.
func (h *Handler) SelectDate(c echo.Context) error {
	date, err := time.ParseInLocation(dateParamLayout, c.QueryParam("date"), time.UTC)
	if err != nil {
		return apperror.NewBadRequest("date must be YYYY-MM-DD")
	}
	return h.interact(c, func(p *picker.Picker) error {
		return p.SelectDate(date)
	})
}

// Back pops one navigation level (POST /widget/back).
func (h *Handler) Back(c echo.Context) error {
	return h.interact(c, func(p *picker.Picker) error {
		p.Back()
		return nil
	})
}

// Today recenters on the current date (POST /widget/today).
func (h *Handler) Today(c echo.Context) error {
	return h.interact(c, func(p *picker.Picker) error {
		return p.GoToToday()
	})
}

// DragStart begins a pointer drag (POST /widget/drag/start).
func (h *Handler) DragStart(c echo.Context) error {
	return h.interact(c, func(p *picker.Picker) error {
		p.DragStart()
		return nil
	})
}

// DragMove reports a pointer move (POST /widget/drag/move?angle=D). The
// angle is in the ring convention the client script computes from pointer
// coordinates.
func (h *Handler) DragMove(c echo.Context) error {
	angle, err := strconv.ParseFloat(c.QueryParam("angle"), 64)
	if err != nil {
		return apperror.NewBadRequest("angle must be a number of degrees")
	}
	return h.interact(c, func(p *picker.Picker) error {
		p.DragMove(angle)
		return nil
	})
}

// DragEnd finishes a pointer drag (POST /widget/drag/end).
func (h *Handler) DragEnd(c echo.Context) error {
	return h.interact(c, func(p *picker.Picker) error {
		p.DragEnd()
		return nil
	})
}

// Selection returns the last committed date as JSON (GET /api/selection),
// for host pages that read the widget's value programmatically.
func (h *Handler) Selection(c echo.Context) error {
	date, ok, err := h.service.Selection(c.Request().Context(), middleware.ClientID(c))
	if err != nil {
		return err
	}
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{"selected": false})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"selected": true,
		"date":     date.Format(time.RFC3339),
	})
}

// interact runs one picker operation and renders the resulting fragment.
// Validation failures are not HTTP errors: the widget re-renders unchanged
// and the reason travels as a rondel:rejected HTMX trigger event. Anything
// other than a validation failure propagates to the error handler.
func (h *Handler) interact(c echo.Context, fn func(*picker.Picker) error) error {
	scene, err := h.service.Interact(c.Request().Context(), middleware.ClientID(c), fn)
	if err != nil {
		var vErr *daterules.ValidationError
		if !errors.As(err, &vErr) {
			return err
		}
		setRejectedTrigger(c, vErr.Reason)
	}
	return middleware.Render(c, http.StatusOK, views.WidgetFragment(scene))
}

// setRejectedTrigger attaches the rejection reason as an HX-Trigger header
// so the host page can surface it (tooltip, toast) without the widget
// changing state.
func setRejectedTrigger(c echo.Context, reason string) {
	payload, err := json.Marshal(map[string]map[string]string{
		"rondel:rejected": {"reason": reason},
	})
	if err != nil {
		return
	}
	c.Response().Header().Set("HX-Trigger", string(payload))
}

// intParam parses a required integer query parameter.
func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0, apperror.NewBadRequest(name + " must be an integer")
	}
	return v, nil
}
