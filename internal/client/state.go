// Package client holds the state and rendering rules of the terminal
// client, the HTTP client for the API and the stored session token.
package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
)

// Filter selects which todos are listed.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterCompleted  Filter = "completed"
	FilterOverdue    Filter = "overdue"
	FilterPending    Filter = "pending"
	FilterInProgress Filter = "in-progress"
)

// Filters in badge order.
var Filters = []Filter{FilterAll, FilterCompleted, FilterOverdue, FilterPending, FilterInProgress}

// ParseFilter accepts a filter name, case-insensitively.
func ParseFilter(s string) (Filter, error) {
	for _, f := range Filters {
		if strings.EqualFold(strings.TrimSpace(s), string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Matches reports whether t belongs in the filtered list.
func (f Filter) Matches(t *entities.Todo, today entities.Date) bool {
	switch f {
	case FilterCompleted:
		return t.IsDone()
	case FilterOverdue:
		return t.IsOverdue(today)
	case FilterPending:
		return t.Status == entities.TodoStatusNotStarted
	case FilterInProgress:
		return t.Status == entities.TodoStatusInProgress
	default:
		return true
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterCompleted:
		return "Completed"
	case FilterOverdue:
		return "Overdue"
	case FilterPending:
		return "Pending"
	case FilterInProgress:
		return "In progress"
	default:
		return "All"
	}
}

// View is the calendar layout.
type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

// Modal names the open dialog, if any.
type Modal string

const (
	ModalNone          Modal = ""
	ModalAddTodo       Modal = "add-todo"
	ModalEditTodo      Modal = "edit-todo"
	ModalAddEvent      Modal = "add-event"
	ModalEditEvent     Modal = "edit-event"
	ModalHolidays      Modal = "holidays"
	ModalConfirmDelete Modal = "confirm-delete"
)

// State is everything the client renders from. Collections are replaced
// only by a successful load.
type State struct {
	Todos    []*entities.Todo
	Events   []*entities.CalendarEvent
	Holidays []*entities.Holiday

	Filter       Filter
	View         View
	Year         int
	Month        time.Month
	SelectedDate *entities.Date
	Modal        Modal
	ModalTarget  string

	Authenticated bool
	Warning       string
}

// NewState starts on the month of today with every todo listed.
func NewState(today entities.Date) State {
	return State{
		Todos:    []*entities.Todo{},
		Events:   []*entities.CalendarEvent{},
		Holidays: []*entities.Holiday{},
		Filter:   FilterAll,
		View:     ViewGrid,
		Year:     today.Year,
		Month:    today.Month,
	}
}

// Loaded replaces the three collections at once.
func (s *State) Loaded(todos []*entities.Todo, events []*entities.CalendarEvent, holidays []*entities.Holiday, warning string) {
	s.Todos = nonNil(todos)
	s.Events = nonNil(events)
	s.Holidays = nonNil(holidays)
	s.Warning = warning
	s.Authenticated = true
}

func (s *State) SetFilter(f Filter) {
	s.Filter = f
}

func (s *State) SetView(v View) {
	s.View = v
}

// SelectDate selects d, or clears the selection when d is already selected.
func (s *State) SelectDate(d entities.Date) {
	if s.SelectedDate != nil && *s.SelectedDate == d {
		s.SelectedDate = nil
		return
	}
	s.SelectedDate = &d
}

func (s *State) ClearDate() {
	s.SelectedDate = nil
}

// ChangeMonth moves by delta months, wrapping the year.
func (s *State) ChangeMonth(delta int) {
	m := int(s.Month) - 1 + delta
	s.Year += floorDiv(m, 12)
	s.Month = time.Month(m - floorDiv(m, 12)*12 + 1)
}

func (s *State) OpenModal(m Modal, target string) {
	s.Modal = m
	s.ModalTarget = target
}

func (s *State) CloseModal() {
	s.Modal = ModalNone
	s.ModalTarget = ""
}

// Logout drops the session and everything loaded with it.
func (s *State) Logout() {
	s.Authenticated = false
	s.Todos = []*entities.Todo{}
	s.Events = []*entities.CalendarEvent{}
	s.Holidays = []*entities.Holiday{}
	s.Warning = ""
	s.CloseModal()
}

// Clone copies the state so readers never share slices with the engine.
func (s State) Clone() State {
	c := s
	c.Todos = append(make([]*entities.Todo, 0, len(s.Todos)), s.Todos...)
	c.Events = append(make([]*entities.CalendarEvent, 0, len(s.Events)), s.Events...)
	c.Holidays = append(make([]*entities.Holiday, 0, len(s.Holidays)), s.Holidays...)
	if s.SelectedDate != nil {
		d := *s.SelectedDate
		c.SelectedDate = &d
	}
	return c
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
