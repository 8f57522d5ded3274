package ports

import (
	"context"

	"github.com/namorima/notion-todo/internal/domain/entities"
)

// TodoRepository defines the interface for todo storage (the Notion task database)
type TodoRepository interface {
	List(ctx context.Context) ([]*entities.Todo, error)
	Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error)
	Update(ctx context.Context, id string, changes TodoChanges) (*entities.Todo, error)
	Archive(ctx context.Context, id string) error
}

// EventRepository defines the interface for calendar event storage
type EventRepository interface {
	List(ctx context.Context) ([]*entities.CalendarEvent, error)
	Create(ctx context.Context, event *entities.CalendarEvent) (*entities.CalendarEvent, error)
	Update(ctx context.Context, id string, changes EventChanges) (*entities.CalendarEvent, error)
	Archive(ctx context.Context, id string) error
}

// HolidayRepository defines the interface for the holiday table
type HolidayRepository interface {
	List(ctx context.Context, filter HolidayFilter) ([]*entities.Holiday, error)
	GetByID(ctx context.Context, id int64) (*entities.Holiday, error)
	Create(ctx context.Context, holiday *entities.Holiday) error
	Update(ctx context.Context, holiday *entities.Holiday) error
	Delete(ctx context.Context, id int64) error
	ReplaceSeason(ctx context.Context, state string, year int, holidays []*entities.Holiday) error
}

// HolidayCache caches holiday lists per state and year. Get returns nil, nil on a miss.
type HolidayCache interface {
	Get(ctx context.Context, state string, year int) ([]*entities.Holiday, error)
	Set(ctx context.Context, state string, year int, holidays []*entities.Holiday) error
	InvalidateAll(ctx context.Context) error
}

// HolidaySource fetches a season of holidays from an external listing.
type HolidaySource interface {
	Fetch(ctx context.Context, state string, year int) ([]*entities.Holiday, error)
}

// Notifier delivers a text message to the owner.
type Notifier interface {
	Publish(ctx context.Context, subject, message string) error
}

// Filter types

// TodoChanges lists the fields to rewrite. Nil fields are left alone.
// CategoryNone clears the category; ClearDueDate clears the due date.
type TodoChanges struct {
	Name         *string
	Status       *entities.TodoStatus
	Category     *entities.Category
	DueDate      *entities.Date
	ClearDueDate bool
}

// EventChanges lists the fields to rewrite. Nil fields are left alone;
// a non-nil empty Location or Tags writes an explicit empty value.
type EventChanges struct {
	Name     *string
	Date     *entities.DateRange
	Location *string
	Tags     *[]string
	Done     *bool
}

type HolidayFilter struct {
	Year  *int
	State *string
}
