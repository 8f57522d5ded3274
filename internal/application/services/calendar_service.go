package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// CalendarService handles calendar events and the combined calendar read
type CalendarService struct {
	eventRepo ports.EventRepository
	holidays  ports.HolidayService
	state     string
	location  *time.Location
	logger    *logger.Logger
	now       func() time.Time
}

// NewCalendarService creates a new calendar service. state is the holiday
// region shown alongside events.
func NewCalendarService(eventRepo ports.EventRepository, holidays ports.HolidayService, state string, location *time.Location, logger *logger.Logger) *CalendarService {
	if location == nil {
		location = time.Local
	}
	return &CalendarService{
		eventRepo: eventRepo,
		holidays:  holidays,
		state:     state,
		location:  location,
		logger:    logger,
		now:       time.Now,
	}
}

// GetCalendar loads events and the year's holidays in parallel. A holiday
// failure leaves an empty list and sets HolidayError; an event failure fails
// the whole read.
func (s *CalendarService) GetCalendar(ctx context.Context, year int) (*ports.CalendarSnapshot, error) {
	if year == 0 {
		year = entities.Today(s.now(), s.location).Year
	}

	snapshot := &ports.CalendarSnapshot{
		Events:   []*entities.CalendarEvent{},
		Holidays: []*entities.Holiday{},
	}

	var g errgroup.Group
	g.Go(func() error {
		events, err := s.eventRepo.List(ctx)
		if err != nil {
			return err
		}
		snapshot.Events = events
		return nil
	})
	g.Go(func() error {
		if s.holidays == nil {
			snapshot.HolidayError = errors.New("holiday store not configured")
			return nil
		}
		state := s.state
		list, err := s.holidays.ListHolidays(ctx, ports.HolidayFilter{Year: &year, State: &state})
		if err != nil {
			snapshot.HolidayError = err
			return nil
		}
		snapshot.Holidays = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if snapshot.HolidayError != nil {
		s.logger.Warnw("Holidays unavailable, continuing without them",
			"year", year, "state", s.state, "error", snapshot.HolidayError)
	}
	return snapshot, nil
}

// AddEvent creates a calendar event
func (s *CalendarService) AddEvent(ctx context.Context, req ports.CreateEventRequest) (*entities.CalendarEvent, error) {
	name, dr, err := s.parseEvent(req.Name, req.DateStart, req.DateEnd)
	if err != nil {
		return nil, err
	}

	event := &entities.CalendarEvent{
		Name:     name,
		Date:     dr,
		Location: strings.TrimSpace(req.Location),
		Tags:     entities.NormalizeTags(req.Tags),
		Done:     bool(req.Done),
	}

	created, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Event created", "event_id", created.ID, "date", created.Date.String())
	return created, nil
}

// EditEvent rewrites every field. Omitted location and tags are written as
// explicitly empty.
func (s *CalendarService) EditEvent(ctx context.Context, req ports.UpdateEventRequest) (*entities.CalendarEvent, error) {
	name, dr, err := s.parseEvent(req.Name, req.DateStart, req.DateEnd)
	if err != nil {
		return nil, err
	}

	location := strings.TrimSpace(req.Location)
	tags := entities.NormalizeTags(req.Tags)
	done := bool(req.Done)

	updated, err := s.eventRepo.Update(ctx, req.ID, ports.EventChanges{
		Name:     &name,
		Date:     &dr,
		Location: &location,
		Tags:     &tags,
		Done:     &done,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Event updated", "event_id", updated.ID)
	return updated, nil
}

// MarkEventDone sets the done flag
func (s *CalendarService) MarkEventDone(ctx context.Context, id string) (*entities.CalendarEvent, error) {
	done := true
	event, err := s.eventRepo.Update(ctx, id, ports.EventChanges{Done: &done})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Event marked done", "event_id", event.ID)
	return event, nil
}

// DeleteEvent archives the page
func (s *CalendarService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.eventRepo.Archive(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Event deleted", "event_id", id)
	return nil
}

func (s *CalendarService) parseEvent(rawName, rawStart, rawEnd string) (string, entities.DateRange, error) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		return "", entities.DateRange{}, entities.NewValidationError("name", "Name is required")
	}
	if strings.TrimSpace(rawStart) == "" {
		return "", entities.DateRange{}, entities.NewValidationError("dateStart", "Date start is required")
	}

	start, err := entities.ParseDateIn(rawStart, s.location)
	if err != nil {
		return "", entities.DateRange{}, entities.NewValidationError("dateStart", "Invalid start date")
	}

	var end *entities.Date
	if strings.TrimSpace(rawEnd) != "" {
		e, err := entities.ParseDateIn(rawEnd, s.location)
		if err != nil {
			return "", entities.DateRange{}, entities.NewValidationError("dateEnd", "Invalid end date")
		}
		end = &e
	}

	dr, err := entities.NewDateRange(start, end)
	if err != nil {
		return "", entities.DateRange{}, entities.NewValidationError("dateEnd", "End date cannot be before start date")
	}
	return name, dr, nil
}
