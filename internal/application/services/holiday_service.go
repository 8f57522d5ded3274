package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// HolidayService handles the holiday reference table
type HolidayService struct {
	holidayRepo ports.HolidayRepository
	cache       ports.HolidayCache
	source      ports.HolidaySource
	location    *time.Location
	logger      *logger.Logger
	sf          singleflight.Group
}

// NewHolidayService creates a new holiday service. cache and source may be nil.
func NewHolidayService(holidayRepo ports.HolidayRepository, cache ports.HolidayCache, source ports.HolidaySource, location *time.Location, logger *logger.Logger) *HolidayService {
	if location == nil {
		location = time.Local
	}
	return &HolidayService{
		holidayRepo: holidayRepo,
		cache:       cache,
		source:      source,
		location:    location,
		logger:      logger,
	}
}

// ListHolidays returns holidays ordered by date. Single-season reads go
// through the cache; concurrent misses for the same season share one query.
func (s *HolidayService) ListHolidays(ctx context.Context, filter ports.HolidayFilter) ([]*entities.Holiday, error) {
	if s.cache == nil || filter.Year == nil || filter.State == nil {
		return s.holidayRepo.List(ctx, filter)
	}

	state, year := *filter.State, *filter.Year
	cached, err := s.cache.Get(ctx, state, year)
	if err != nil {
		s.logger.Warnw("Holiday cache read failed", "state", state, "year", year, "error", err)
	} else if cached != nil {
		return cached, nil
	}

	// The fill is shared by every waiter, so it must outlive the first
	// caller's cancellation.
	fillCtx := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%s:%d", strings.ToLower(state), year)
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		list, err := s.holidayRepo.List(fillCtx, filter)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(fillCtx, state, year, list); err != nil {
			s.logger.Warnw("Holiday cache write failed", "state", state, "year", year, "error", err)
		}
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*entities.Holiday), nil
}

// AddHoliday stores a holiday. Year is derived from the date; a supplied
// year that disagrees is rejected.
func (s *HolidayService) AddHoliday(ctx context.Context, req ports.CreateHolidayRequest) (*entities.Holiday, error) {
	holiday, err := s.buildHoliday(req.Date, req.Name, req.State, req.Year)
	if err != nil {
		return nil, err
	}

	if err := s.holidayRepo.Create(ctx, holiday); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Infow("Holiday created", "holiday_id", holiday.ID, "date", holiday.Date.String(), "state", holiday.State)
	return holiday, nil
}

// EditHoliday rewrites a holiday and recomputes its year from the date.
// An unknown id fails with ErrHolidayNotFound before anything is written.
func (s *HolidayService) EditHoliday(ctx context.Context, req ports.UpdateHolidayRequest) (*entities.Holiday, error) {
	holiday, err := s.buildHoliday(req.Date, req.Name, req.State, req.Year)
	if err != nil {
		return nil, err
	}
	if _, err := s.holidayRepo.GetByID(ctx, req.ID); err != nil {
		return nil, err
	}
	holiday.ID = req.ID

	if err := s.holidayRepo.Update(ctx, holiday); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Infow("Holiday updated", "holiday_id", holiday.ID)
	return holiday, nil
}

// DeleteHoliday removes a holiday
func (s *HolidayService) DeleteHoliday(ctx context.Context, id int64) error {
	if err := s.holidayRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Infow("Holiday deleted", "holiday_id", id)
	return nil
}

// FetchSeason scrapes one season from the configured source without storing it
func (s *HolidayService) FetchSeason(ctx context.Context, state string, year int) ([]*entities.Holiday, error) {
	if s.source == nil {
		return nil, fmt.Errorf("no holiday source configured")
	}
	list, err := s.source.Fetch(ctx, state, year)
	if err != nil {
		return nil, fmt.Errorf("fetch %s %d: %w", state, year, err)
	}
	return list, nil
}

// RefreshSeason scrapes one season and replaces the stored rows with it
func (s *HolidayService) RefreshSeason(ctx context.Context, state string, year int) (int, error) {
	list, err := s.FetchSeason(ctx, state, year)
	if err != nil {
		return 0, err
	}
	return s.replace(ctx, state, year, list)
}

// ImportSeed replaces one season with the contents of a seed document
func (s *HolidayService) ImportSeed(ctx context.Context, seed *ports.HolidaySeed) (int, error) {
	list := make([]*entities.Holiday, 0, len(seed.Holidays))
	for i, item := range seed.Holidays {
		d, err := entities.ParseDate(item.Date)
		if err != nil {
			return 0, fmt.Errorf("holiday %d (%q): %w", i, item.Name, err)
		}
		list = append(list, &entities.Holiday{Date: d, Name: strings.TrimSpace(item.Name), State: seed.State})
	}
	return s.replace(ctx, seed.State, seed.Year, list)
}

func (s *HolidayService) replace(ctx context.Context, state string, year int, list []*entities.Holiday) (int, error) {
	if err := s.holidayRepo.ReplaceSeason(ctx, state, year, list); err != nil {
		return 0, fmt.Errorf("replace season %s %d: %w", state, year, err)
	}

	s.invalidate(ctx)
	s.logger.Infow("Holiday season replaced", "state", state, "year", year, "count", len(list))
	return len(list), nil
}

func (s *HolidayService) buildHoliday(rawDate, rawName, rawState string, year *int) (*entities.Holiday, error) {
	name := strings.TrimSpace(rawName)
	state := strings.TrimSpace(rawState)
	switch {
	case strings.TrimSpace(rawDate) == "":
		return nil, entities.NewValidationError("date", "Date is required")
	case name == "":
		return nil, entities.NewValidationError("name", "Name is required")
	case state == "":
		return nil, entities.NewValidationError("state", "State is required")
	}

	date, err := entities.ParseDateIn(rawDate, s.location)
	if err != nil {
		return nil, entities.NewValidationError("date", "Invalid date")
	}

	holiday := &entities.Holiday{Date: date, Name: name, State: state}
	holiday.SyncYear()
	if year != nil && *year != holiday.Year {
		return nil, entities.NewValidationError("year", "Year does not match date")
	}
	return holiday, nil
}

func (s *HolidayService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		s.logger.Warnw("Holiday cache invalidation failed", "error", err)
	}
}
