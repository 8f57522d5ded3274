package ports

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
)

// AuthService interface for the shared-password login
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ValidateToken(token string) (*SessionPayload, error)
}

// TodoService interface for todo operations
type TodoService interface {
	ListTodos(ctx context.Context) ([]*entities.Todo, error)
	AddTodo(ctx context.Context, req CreateTodoRequest) (*entities.Todo, error)
	EditTodo(ctx context.Context, req UpdateTodoRequest) (*entities.Todo, error)
	MarkTodoDone(ctx context.Context, id string) (*entities.Todo, error)
	MarkTodosDone(ctx context.Context, ids []string) (int, error)
	DeleteTodo(ctx context.Context, id string) error
}

// CalendarService interface for calendar events and the combined calendar read
type CalendarService interface {
	GetCalendar(ctx context.Context, year int) (*CalendarSnapshot, error)
	AddEvent(ctx context.Context, req CreateEventRequest) (*entities.CalendarEvent, error)
	EditEvent(ctx context.Context, req UpdateEventRequest) (*entities.CalendarEvent, error)
	MarkEventDone(ctx context.Context, id string) (*entities.CalendarEvent, error)
	DeleteEvent(ctx context.Context, id string) error
}

// HolidayService interface for holiday reference data
type HolidayService interface {
	ListHolidays(ctx context.Context, filter HolidayFilter) ([]*entities.Holiday, error)
	AddHoliday(ctx context.Context, req CreateHolidayRequest) (*entities.Holiday, error)
	EditHoliday(ctx context.Context, req UpdateHolidayRequest) (*entities.Holiday, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

// Request/Response Types

// Auth related types
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Message   string    `json:"message"`
}

// SessionPayload is the content of a session token.
type SessionPayload struct {
	Authenticated bool      `json:"authenticated"`
	Timestamp     int64     `json:"timestamp"`
	IssuedAt      time.Time `json:"-"`
	ExpiresAt     time.Time `json:"-"`
}

// Todo related types
// Category is accepted as an alias of Kategori for older clients.
type CreateTodoRequest struct {
	Name     string `json:"name" validate:"required"`
	Kategori string `json:"kategori"`
	Category string `json:"category"`
	DueDate  string `json:"dueDate"`
}

type UpdateTodoRequest struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Kategori string `json:"kategori"`
	Category string `json:"category"`
	DueDate  string `json:"dueDate"`
	Status   string `json:"status"`
}

// CategoryName returns whichever of kategori/category was sent.
func (r CreateTodoRequest) CategoryName() string {
	return firstNonEmpty(r.Kategori, r.Category)
}

// CategoryName returns whichever of kategori/category was sent.
func (r UpdateTodoRequest) CategoryName() string {
	return firstNonEmpty(r.Kategori, r.Category)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// IDRequest carries the target of done/delete actions, from the body or the query string.
type IDRequest struct {
	ID string `json:"id" query:"id" validate:"required"`
}

// Calendar related types
type CreateEventRequest struct {
	Name      string   `json:"name" validate:"required"`
	DateStart string   `json:"dateStart" validate:"required"`
	DateEnd   string   `json:"dateEnd"`
	Location  string   `json:"location"`
	Tags      TagList  `json:"tags"`
	Done      FlexBool `json:"done"`
}

type UpdateEventRequest struct {
	ID        string   `json:"id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	DateStart string   `json:"dateStart" validate:"required"`
	DateEnd   string   `json:"dateEnd"`
	Location  string   `json:"location"`
	Tags      TagList  `json:"tags"`
	Done      FlexBool `json:"done"`
}

type CalendarQuery struct {
	Year int `query:"year" validate:"omitempty,min=1900,max=2999"`
}

// CalendarSnapshot is the combined calendar read. HolidayError is set when
// holidays could not be loaded and Holidays was replaced by an empty list.
type CalendarSnapshot struct {
	Events       []*entities.CalendarEvent
	Holidays     []*entities.Holiday
	HolidayError error
}

// Holiday related types
type CreateHolidayRequest struct {
	Date  string `json:"date" validate:"required"`
	Name  string `json:"name" validate:"required"`
	State string `json:"state" validate:"required"`
	Year  *int   `json:"year"`
}

type UpdateHolidayRequest struct {
	ID    int64  `json:"id" validate:"required"`
	Date  string `json:"date" validate:"required"`
	Name  string `json:"name" validate:"required"`
	State string `json:"state" validate:"required"`
	Year  *int   `json:"year"`
}

type HolidayIDRequest struct {
	ID int64 `json:"id" query:"id" validate:"required"`
}

type HolidayQuery struct {
	Year  int    `query:"year" validate:"omitempty,min=1900,max=2999"`
	State string `query:"state"`
}

// HolidaySeed is the on-disk form of one state's season.
type HolidaySeed struct {
	State       string            `json:"state"`
	Year        int               `json:"year"`
	LastUpdated time.Time         `json:"lastUpdated"`
	Holidays    []HolidaySeedItem `json:"holidays"`
}

type HolidaySeedItem struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// TagList accepts a JSON array of strings or one comma-separated string.
type TagList []string

func (t *TagList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = entities.NormalizeTags(list)
		return nil
	}

	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*t = TagList{}
		return nil
	}
	*t = entities.NormalizeTags(strings.Split(*s, ","))
	return nil
}

// FlexBool accepts true/false or the strings "true"/"false".
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case bool:
		*f = FlexBool(x)
	case string:
		*f = FlexBool(strings.EqualFold(strings.TrimSpace(x), "true"))
	default:
		*f = false
	}
	return nil
}
