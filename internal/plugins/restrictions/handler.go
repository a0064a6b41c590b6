package restrictions

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rondelui/rondel/internal/apperror"
)

// dateLayout is the wire format for dates in the restrictions API.
const dateLayout = "2006-01-02"

// RulePusher receives a signal whenever the restriction set changes, so
// already-running picker instances pick up the new rules. Implemented by
// the widget plugin; declared here to keep the dependency one-directional.
type RulePusher interface {
	RefreshRules(ctx context.Context) error
}

// Handler handles HTTP requests for the restrictions admin API. The API is
// JSON only; the widget never calls it, it exists for the operator tooling
// that curates which dates the picker may hand out.
type Handler struct {
	service RestrictionService
	pusher  RulePusher
}

// NewHandler creates a new restrictions handler. pusher may be nil, in
// which case rule changes only reach instances created afterwards.
func NewHandler(service RestrictionService, pusher RulePusher) *Handler {
	return &Handler{service: service, pusher: pusher}
}

// restrictionPayload is the create/update request body. Dates travel as
// "YYYY-MM-DD" strings and are parsed into UTC midnights.
type restrictionPayload struct {
	Kind      string `json:"kind"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// List returns all restrictions (GET /api/restrictions).
func (h *Handler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if list == nil {
		list = []Restriction{}
	}
	return c.JSON(http.StatusOK, list)
}

// Create inserts a new restriction (POST /api/restrictions).
func (h *Handler) Create(c echo.Context) error {
	r, err := bindRestriction(c)
	if err != nil {
		return err
	}

	if err := h.service.Create(c.Request().Context(), r); err != nil {
		return err
	}

	slog.Info("restriction created",
		slog.Int64("id", r.ID),
		slog.String("kind", string(r.Kind)),
		slog.Time("start", r.StartDate),
	)
	h.pushRules(c.Request().Context())
	return c.JSON(http.StatusCreated, r)
}

// Update rewrites an existing restriction (PUT /api/restrictions/:id).
func (h *Handler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperror.NewBadRequest("invalid restriction id")
	}

	r, err := bindRestriction(c)
	if err != nil {
		return err
	}
	r.ID = id

	if err := h.service.Update(c.Request().Context(), r); err != nil {
		return err
	}
	h.pushRules(c.Request().Context())
	return c.JSON(http.StatusOK, r)
}

// Delete removes a restriction (DELETE /api/restrictions/:id).
func (h *Handler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperror.NewBadRequest("invalid restriction id")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	slog.Info("restriction deleted", slog.Int64("id", id))
	h.pushRules(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// pushRules forwards the changed rule set to live picker instances. The
// restriction write already succeeded, so a push failure is logged rather
// than failing the request; stale instances recompile on their next create.
func (h *Handler) pushRules(ctx context.Context) {
	if h.pusher == nil {
		return
	}
	if err := h.pusher.RefreshRules(ctx); err != nil {
		slog.Error("failed to push restriction rules to live pickers", slog.Any("error", err))
	}
}

// bindRestriction parses the JSON payload into a Restriction, converting
// wire dates to UTC midnights.
func bindRestriction(c echo.Context) (*Restriction, error) {
	var payload restrictionPayload
	if err := c.Bind(&payload); err != nil {
		return nil, apperror.NewBadRequest("invalid request body")
	}

	r := &Restriction{
		Kind:   RestrictionKind(payload.Kind),
		Reason: payload.Reason,
	}

	if payload.StartDate != "" {
		start, err := time.ParseInLocation(dateLayout, payload.StartDate, time.UTC)
		if err != nil {
			return nil, apperror.NewBadRequest("start_date must be YYYY-MM-DD")
		}
		r.StartDate = start
	}
	if payload.EndDate != "" {
		end, err := time.ParseInLocation(dateLayout, payload.EndDate, time.UTC)
		if err != nil {
			return nil, apperror.NewBadRequest("end_date must be YYYY-MM-DD")
		}
		r.EndDate = &end
	}

	return r, nil
}
