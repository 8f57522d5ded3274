package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/namorima/notion-todo/internal/domain/entities"
)

// Literal user-facing messages
const (
	MsgWrongPassword    = "Password salah! Sila cuba lagi."
	MsgNoToken          = "No authentication token provided"
	MsgInvalidToken     = "Invalid or expired token"
	MsgMethodNotAllowed = "Method not allowed"
	MsgInternalError    = "Internal server error"
	MsgInvalidRequest   = "Invalid request format"
	MsgHolidayStoreDown = "Holiday store unavailable"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Warning string      `json:"warning,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func okWithMessage(c echo.Context, data interface{}, message string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// TodoView is a todo with the display fields the clients render.
type TodoView struct {
	*entities.Todo
	entities.Urgency
	CategoryEmoji    string `json:"categoryEmoji"`
	DueDateFormatted string `json:"dueDateFormatted"`
}

func NewTodoView(t *entities.Todo, today entities.Date) TodoView {
	return TodoView{
		Todo:             t,
		Urgency:          t.Urgency(today),
		CategoryEmoji:    t.Category.Emoji(),
		DueDateFormatted: t.DueDateLabel(),
	}
}

func todoViews(todos []*entities.Todo, today entities.Date) []TodoView {
	views := make([]TodoView, 0, len(todos))
	for _, t := range todos {
		views = append(views, NewTodoView(t, today))
	}
	return views
}

// EventView is a calendar event with its formatted date range.
type EventView struct {
	*entities.CalendarEvent
	DateFormatted string `json:"dateFormatted"`
}

func NewEventView(e *entities.CalendarEvent) EventView {
	return EventView{CalendarEvent: e, DateFormatted: e.Date.String()}
}

func eventViews(events []*entities.CalendarEvent) []EventView {
	views := make([]EventView, 0, len(events))
	for _, e := range events {
		views = append(views, NewEventView(e))
	}
	return views
}

// ErrorEnvelope maps an error returned by a handler or by echo itself to a
// status code and the failure envelope.
func ErrorEnvelope(err error) (int, Envelope) {
	var (
		he  *echo.HTTPError
		ve  validator.ValidationErrors
		fe  *entities.ValidationError
		upe *entities.UpstreamError
	)

	switch {
	case errors.As(err, &he):
		return httpErrorEnvelope(he)
	case errors.As(err, &ve):
		return http.StatusBadRequest, Envelope{Error: ValidationMessage(ve)}
	case errors.As(err, &fe):
		return http.StatusBadRequest, Envelope{Error: fe.Message}
	case errors.Is(err, entities.ErrInvalidPassword):
		return http.StatusUnauthorized, Envelope{Error: MsgWrongPassword}
	case errors.Is(err, entities.ErrInvalidToken):
		return http.StatusUnauthorized, Envelope{Error: MsgInvalidToken}
	case errors.Is(err, entities.ErrTodoNotFound),
		errors.Is(err, entities.ErrEventNotFound),
		errors.Is(err, entities.ErrHolidayNotFound):
		return http.StatusNotFound, Envelope{Error: capitalize(notFoundMessage(err))}
	case errors.Is(err, entities.ErrHolidayStoreUnavailable):
		return http.StatusServiceUnavailable, Envelope{Error: MsgHolidayStoreDown}
	case errors.Is(err, entities.ErrInvalidStatus),
		errors.Is(err, entities.ErrInvalidDate),
		errors.Is(err, entities.ErrInvalidDateRange):
		return http.StatusBadRequest, Envelope{Error: capitalize(err.Error())}
	case errors.As(err, &upe):
		return http.StatusInternalServerError, Envelope{
			Error:   fmt.Sprintf("%s request failed", capitalize(upe.Service)),
			Details: upstreamDetails(upe),
		}
	default:
		return http.StatusInternalServerError, Envelope{Error: MsgInternalError}
	}
}

func httpErrorEnvelope(he *echo.HTTPError) (int, Envelope) {
	env := Envelope{}
	switch msg := he.Message.(type) {
	case string:
		env.Error = msg
	case error:
		env.Error = msg.Error()
	default:
		env.Error = http.StatusText(he.Code)
	}

	if he.Code == http.StatusMethodNotAllowed {
		env.Error = MsgMethodNotAllowed
	}

	var upe *entities.UpstreamError
	if errors.As(he.Internal, &upe) {
		env.Details = upstreamDetails(upe)
	}
	return he.Code, env
}

func upstreamDetails(upe *entities.UpstreamError) interface{} {
	if len(upe.Body) > 0 && json.Valid(upe.Body) {
		return upe.Body
	}
	if upe.Message != "" {
		return upe.Message
	}
	return upe.Error()
}

// upstreamFailure labels an upstream error with the action that failed.
// Every other error is returned unchanged so it keeps its own mapping.
func upstreamFailure(err error, message string) error {
	var upe *entities.UpstreamError
	if errors.As(err, &upe) {
		return echo.NewHTTPError(http.StatusInternalServerError, message).SetInternal(err)
	}
	return err
}

func notFoundMessage(err error) string {
	for _, sentinel := range []error{entities.ErrTodoNotFound, entities.ErrEventNotFound, entities.ErrHolidayNotFound} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

// ValidationMessage turns the first failed rule into a sentence such as
// "Name is required".
func ValidationMessage(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation failed"
	}
	fe := errs[0]
	field := FieldLabel(fe.Field())

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return field + " is invalid"
	}
}

// FieldLabel renders a JSON field name for messages: dateStart becomes
// "Date start" and id becomes "ID".
func FieldLabel(name string) string {
	if strings.EqualFold(name, "id") {
		return "ID"
	}

	var b strings.Builder
	for i, r := range name {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteRune(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func today(now func() time.Time, loc *time.Location) entities.Date {
	return entities.Today(now(), loc)
}
