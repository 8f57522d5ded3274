package client

import (
	"sort"
	"strings"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
)

// DefaultWeekend is Friday and Saturday.
var DefaultWeekend = []time.Weekday{time.Friday, time.Saturday}

// FilterTodos returns the todos matching filter, keeping their order.
// Overdue compares the due date with today's date, not the current instant.
func FilterTodos(todos []*entities.Todo, filter Filter, today entities.Date) []*entities.Todo {
	out := make([]*entities.Todo, 0, len(todos))
	for _, t := range todos {
		if filter.Matches(t, today) {
			out = append(out, t)
		}
	}
	return out
}

// TodoStats are the counts shown on the filter badges.
type TodoStats struct {
	All        int
	Completed  int
	Overdue    int
	Pending    int
	InProgress int
}

// Count returns the badge count of one filter.
func (s TodoStats) Count(f Filter) int {
	switch f {
	case FilterCompleted:
		return s.Completed
	case FilterOverdue:
		return s.Overdue
	case FilterPending:
		return s.Pending
	case FilterInProgress:
		return s.InProgress
	default:
		return s.All
	}
}

func Stats(todos []*entities.Todo, today entities.Date) TodoStats {
	var s TodoStats
	for _, t := range todos {
		s.All++
		switch {
		case t.IsDone():
			s.Completed++
		case t.Status == entities.TodoStatusInProgress:
			s.InProgress++
		case t.Status == entities.TodoStatusNotStarted:
			s.Pending++
		}
		if t.IsOverdue(today) {
			s.Overdue++
		}
	}
	return s
}

// Cell is one day of the month grid.
type Cell struct {
	Date         entities.Date
	OtherMonth   bool
	Today        bool
	Weekend      bool
	HasEvent     bool
	IsHoliday    bool
	HasDoneEvent bool
	HasOpenEvent bool
	Selected     bool
	Events       []*entities.CalendarEvent
	Holidays     []*entities.Holiday
	Tooltip      string
}

// MonthGrid is a Sunday-first grid of 35 or 42 cells.
type MonthGrid struct {
	Year  int
	Month time.Month
	Cells []Cell
}

// Weeks splits the grid into rows of seven.
func (g MonthGrid) Weeks() [][]Cell {
	var weeks [][]Cell
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// BuildMonthGrid lays out month with the days of the neighbouring months
// filling the first and last weeks. The grid has 35 cells unless the
// leading days plus the month's own days need 42.
func BuildMonthGrid(year int, month time.Month, events []*entities.CalendarEvent, holidays []*entities.Holiday, today entities.Date, weekend []time.Weekday, selected *entities.Date) MonthGrid {
	first := entities.NewDate(year, month, 1)
	lead := int(first.Weekday())
	days := daysIn(year, month)

	size := 35
	if lead+days > 35 {
		size = 42
	}

	isWeekend := make(map[time.Weekday]bool, len(weekend))
	for _, d := range weekend {
		isWeekend[d] = true
	}

	holidaysByDate := make(map[entities.Date][]*entities.Holiday)
	for _, h := range holidays {
		holidaysByDate[h.Date] = append(holidaysByDate[h.Date], h)
	}

	grid := MonthGrid{Year: year, Month: month, Cells: make([]Cell, 0, size)}
	start := first.AddDays(-lead)
	for i := 0; i < size; i++ {
		day := start.AddDays(i)
		cell := Cell{
			Date:       day,
			OtherMonth: day.Year != year || day.Month != month,
			Today:      day == today,
			Weekend:    isWeekend[day.Weekday()],
			Selected:   selected != nil && *selected == day,
			Holidays:   holidaysByDate[day],
		}

		for _, e := range events {
			if !e.OccursOn(day) {
				continue
			}
			cell.Events = append(cell.Events, e)
			if e.Done {
				cell.HasDoneEvent = true
			} else {
				cell.HasOpenEvent = true
			}
		}
		cell.HasEvent = len(cell.Events) > 0
		cell.IsHoliday = len(cell.Holidays) > 0
		cell.Tooltip = tooltip(cell.Events, cell.Holidays)

		grid.Cells = append(grid.Cells, cell)
	}
	return grid
}

func tooltip(events []*entities.CalendarEvent, holidays []*entities.Holiday) string {
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
	}
	text := strings.Join(names, ", ")

	hnames := make([]string, 0, len(holidays))
	for _, h := range holidays {
		hnames = append(hnames, h.Name)
	}
	if len(hnames) > 0 {
		if text != "" {
			text += " | "
		}
		text += strings.Join(hnames, ", ")
	}
	return text
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EventList returns the events on the selected date, or the events starting
// in the month when no date is selected. Upcoming events come first in
// ascending order, followed by past events, most recent first.
func EventList(events []*entities.CalendarEvent, selected *entities.Date, year int, month time.Month, today entities.Date) []*entities.CalendarEvent {
	out := make([]*entities.CalendarEvent, 0)
	for _, e := range events {
		if selected != nil {
			if e.OccursOn(*selected) {
				out = append(out, e)
			}
			continue
		}
		if e.StartsIn(year, month) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Date.Start, out[j].Date.Start
		aUp, bUp := !a.Before(today), !b.Before(today)
		if aUp != bUp {
			return aUp
		}
		if aUp {
			return a.Before(b)
		}
		return a.After(b)
	})
	return out
}

// EventDays is the inclusive number of days an event covers.
func EventDays(e *entities.CalendarEvent) int {
	return e.Date.Days()
}

// HolidaysForYear returns the holidays in year sorted by date.
func HolidaysForYear(holidays []*entities.Holiday, year int) []*entities.Holiday {
	out := make([]*entities.Holiday, 0)
	for _, h := range holidays {
		if h.Date.Year == year {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
