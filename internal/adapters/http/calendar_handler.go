package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// CalendarHandler handles calendar event requests
type CalendarHandler struct {
	calendarService ports.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService ports.CalendarService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		calendarService: calendarService,
		logger:          logger,
	}
}

// CalendarData is the data of get-calendar
type CalendarData struct {
	Calendar []EventView         `json:"calendar"`
	Holidays []*entities.Holiday `json:"holidays"`
}

// GetCalendar godoc
// @Summary List events and the year's holidays
// @Description Holidays degrade to an empty list with a warning when the holiday store fails
// @Tags calendar
// @Produce json
// @Param year query int false "Holiday year, defaults to the current year"
// @Success 200 {object} Envelope{data=CalendarData}
// @Failure 500 {object} Envelope
// @Security BearerAuth
// @Router /get-calendar [get]
func (h *CalendarHandler) GetCalendar(c echo.Context) error {
	var q ports.CalendarQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid year")
	}

	if err := c.Validate(&q); err != nil {
		return err
	}

	snapshot, err := h.calendarService.GetCalendar(c.Request().Context(), q.Year)
	if err != nil {
		h.logger.Errorw("Get calendar failed", "error", err)
		return upstreamFailure(err, "Failed to fetch calendar")
	}

	env := Envelope{
		Success: true,
		Data: CalendarData{
			Calendar: eventViews(snapshot.Events),
			Holidays: snapshot.Holidays,
		},
	}
	if snapshot.HolidayError != nil {
		env.Warning = "Holidays could not be loaded"
	}
	return c.JSON(http.StatusOK, env)
}

// AddCalendar godoc
// @Summary Create a calendar event
// @Tags calendar
// @Accept json
// @Produce json
// @Param request body ports.CreateEventRequest true "Event"
// @Success 200 {object} Envelope{data=EventView}
// @Failure 400 {object} Envelope
// @Security BearerAuth
// @Router /add-calendar [post]
func (h *CalendarHandler) AddCalendar(c echo.Context) error {
	var req ports.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.calendarService.AddEvent(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Add event failed", "error", err)
		return upstreamFailure(err, "Failed to add event")
	}

	return ok(c, NewEventView(event))
}

// EditCalendar rewrites every field of an event
func (h *CalendarHandler) EditCalendar(c echo.Context) error {
	var req ports.UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	event, err := h.calendarService.EditEvent(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Edit event failed", "error", err, "event_id", req.ID)
		return upstreamFailure(err, "Failed to update event")
	}

	return ok(c, NewEventView(event))
}

func (h *CalendarHandler) DoneCalendar(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}

	event, err := h.calendarService.MarkEventDone(c.Request().Context(), id)
	if err != nil {
		h.logger.Errorw("Mark event done failed", "error", err, "event_id", id)
		return upstreamFailure(err, "Failed to mark event as done")
	}

	return ok(c, NewEventView(event))
}

func (h *CalendarHandler) DeleteCalendar(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}

	if err := h.calendarService.DeleteEvent(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete event failed", "error", err, "event_id", id)
		return upstreamFailure(err, "Failed to delete event")
	}

	return okWithMessage(c, map[string]string{"id": id}, "Event deleted successfully")
}
