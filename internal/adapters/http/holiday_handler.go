package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// HolidayHandler handles holiday reference data requests
type HolidayHandler struct {
	holidayService ports.HolidayService
	state          string
	location       *time.Location
	logger         *logger.Logger
	now            func() time.Time
}

// NewHolidayHandler creates a new holiday handler. state and the current
// year in location are the defaults of get-holidays.
func NewHolidayHandler(holidayService ports.HolidayService, state string, location *time.Location, logger *logger.Logger) *HolidayHandler {
	if location == nil {
		location = time.Local
	}
	return &HolidayHandler{
		holidayService: holidayService,
		state:          state,
		location:       location,
		logger:         logger,
		now:            time.Now,
	}
}

// GetHolidays godoc
// @Summary List holidays
// @Tags holidays
// @Produce json
// @Param year query int false "Year, defaults to the current year"
// @Param state query string false "State, defaults to the configured state"
// @Success 200 {object} Envelope{data=[]entities.Holiday}
// @Failure 500 {object} Envelope
// @Security BearerAuth
// @Router /get-holidays [get]
func (h *HolidayHandler) GetHolidays(c echo.Context) error {
	var q ports.HolidayQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid year")
	}

	if err := c.Validate(&q); err != nil {
		return err
	}

	year := q.Year
	if year == 0 {
		year = today(h.now, h.location).Year
	}
	state := strings.TrimSpace(q.State)
	if state == "" {
		state = h.state
	}

	holidays, err := h.holidayService.ListHolidays(c.Request().Context(), ports.HolidayFilter{Year: &year, State: &state})
	if err != nil {
		h.logger.Errorw("List holidays failed", "error", err, "year", year, "state", state)
		return upstreamFailure(err, "Failed to fetch holidays")
	}

	return ok(c, holidays)
}

// AddHoliday godoc
// @Summary Create a holiday
// @Description The year is derived from the date when omitted
// @Tags holidays
// @Accept json
// @Produce json
// @Param request body ports.CreateHolidayRequest true "Holiday"
// @Success 200 {object} Envelope{data=entities.Holiday}
// @Failure 400 {object} Envelope
// @Security BearerAuth
// @Router /add-holiday [post]
func (h *HolidayHandler) AddHoliday(c echo.Context) error {
	var req ports.CreateHolidayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	holiday, err := h.holidayService.AddHoliday(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Add holiday failed", "error", err)
		return upstreamFailure(err, "Failed to add holiday")
	}

	return ok(c, holiday)
}

// EditHoliday rewrites a holiday and recomputes its year
func (h *HolidayHandler) EditHoliday(c echo.Context) error {
	var req ports.UpdateHolidayRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	holiday, err := h.holidayService.EditHoliday(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Edit holiday failed", "error", err, "holiday_id", req.ID)
		return upstreamFailure(err, "Failed to update holiday")
	}

	return ok(c, holiday)
}

// DeleteHoliday removes a holiday row
func (h *HolidayHandler) DeleteHoliday(c echo.Context) error {
	var req ports.HolidayIDRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid holiday ID")
	}
	if req.ID == 0 {
		if raw := c.QueryParam("id"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid holiday ID")
			}
			req.ID = id
		}
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.holidayService.DeleteHoliday(c.Request().Context(), req.ID); err != nil {
		h.logger.Errorw("Delete holiday failed", "error", err, "holiday_id", req.ID)
		return upstreamFailure(err, "Failed to delete holiday")
	}

	return okWithMessage(c, map[string]int64{"id": req.ID}, "Holiday deleted successfully")
}
