package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Common errors
var (
	ErrTodoNotFound            = errors.New("todo not found")
	ErrEventNotFound           = errors.New("calendar event not found")
	ErrHolidayNotFound         = errors.New("holiday not found")
	ErrHolidayStoreUnavailable = errors.New("holiday store unavailable")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidDate             = errors.New("invalid date")
	ErrInvalidDateRange        = errors.New("end date is before start date")
	ErrInvalidPassword         = errors.New("invalid password")
	ErrInvalidToken            = errors.New("invalid or expired token")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a field-specific validation failure.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// UpstreamError is a non-success response from an external service.
type UpstreamError struct {
	Service    string
	StatusCode int
	Code       string
	Message    string
	Body       json.RawMessage
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned %d", e.Service, e.StatusCode)
}

// Enums and types
type TodoStatus string

const (
	TodoStatusNotStarted TodoStatus = "Not started"
	TodoStatusInProgress TodoStatus = "In progress"
	TodoStatusDone       TodoStatus = "Done"
)

// ParseTodoStatus matches a status name case-insensitively.
func ParseTodoStatus(s string) (TodoStatus, error) {
	for _, st := range []TodoStatus{TodoStatusNotStarted, TodoStatusInProgress, TodoStatusDone} {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

type Category string

const (
	CategoryPenting Category = "Penting"
	CategorySegera  Category = "Segera"
	CategoryPribadi Category = "Pribadi"
	CategoryNone    Category = "Tiada kategori"
)

// ParseCategory maps blank input to CategoryNone. Names outside the known
// set are kept as-is, since the select options belong to the workspace.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryNone
	}
	for _, c := range []Category{CategoryPenting, CategorySegera, CategoryPribadi, CategoryNone} {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return Category(s)
}

func (c Category) IsNone() bool {
	return c == "" || c == CategoryNone
}

func (c Category) Emoji() string {
	switch c {
	case CategoryPenting:
		return "🔥"
	case CategorySegera:
		return "⚡"
	case CategoryPribadi:
		return "👤"
	default:
		return "📝"
	}
}

// Urgency is the display state derived from a todo's status and due date.
type Urgency struct {
	Icon  string `json:"statusIcon"`
	Text  string `json:"statusText"`
	Class string `json:"statusClass"`
}

var (
	UrgencyDone      = Urgency{Icon: "✅", Text: "Done", Class: "success"}
	UrgencyOverdue   = Urgency{Icon: "❌", Text: "Overdue", Class: "danger"}
	UrgencyNoDueDate = Urgency{Icon: "❓", Text: "No Due Date", Class: "secondary"}
	UrgencyPending   = Urgency{Icon: "✖️", Text: "Not Started", Class: "warning"}
)

// Todo is one row of the task database.
type Todo struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      TodoStatus `json:"status"`
	Category    Category   `json:"kategori"`
	DueDate     *Date      `json:"dueDate"`
	CreatedTime time.Time  `json:"created_time"`
}

func (t *Todo) IsDone() bool {
	return t.Status == TodoStatusDone
}

// IsOverdue is true for an open todo whose due date is before today.
// Status is never changed as a consequence.
func (t *Todo) IsOverdue(today Date) bool {
	return !t.IsDone() && t.DueDate != nil && t.DueDate.Before(today)
}

// IsDueOn is true for an open todo due exactly on day.
func (t *Todo) IsDueOn(day Date) bool {
	return !t.IsDone() && t.DueDate != nil && *t.DueDate == day
}

func (t *Todo) Urgency(today Date) Urgency {
	switch {
	case t.IsDone():
		return UrgencyDone
	case t.IsOverdue(today):
		return UrgencyOverdue
	case t.DueDate == nil:
		return UrgencyNoDueDate
	default:
		return UrgencyPending
	}
}

// DueDateLabel renders the due date for lists, "-" when absent.
func (t *Todo) DueDateLabel() string {
	if t.DueDate == nil {
		return "-"
	}
	return t.DueDate.Format("02 Jan 2006")
}

// CalendarEvent is one row of the calendar database.
type CalendarEvent struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Date     DateRange `json:"date"`
	Location string    `json:"location"`
	Tags     []string  `json:"tags"`
	Done     bool      `json:"done"`
}

// OccursOn reports whether the event covers day.
func (e *CalendarEvent) OccursOn(day Date) bool {
	return e.Date.Contains(day)
}

// StartsIn reports whether the event starts in the given month.
func (e *CalendarEvent) StartsIn(year int, month time.Month) bool {
	return e.Date.Start.Year == year && e.Date.Start.Month == month
}

// Holiday is a public holiday for one state.
type Holiday struct {
	ID    int64  `json:"id" db:"id"`
	Date  Date   `json:"date" db:"date"`
	Name  string `json:"name" db:"name"`
	State string `json:"state" db:"state"`
	Year  int    `json:"year" db:"year"`
}

// SyncYear sets Year from Date. Every writer calls it before storing.
func (h *Holiday) SyncYear() {
	h.Year = h.Date.Year
}

// NormalizeTags trims entries, drops empties and keeps first-seen order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
