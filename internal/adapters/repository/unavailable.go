package repository

import (
	"context"
	"fmt"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/ports"
)

// UnavailableHolidayRepository stands in when Postgres could not be reached.
// Every call fails with entities.ErrHolidayStoreUnavailable.
type UnavailableHolidayRepository struct {
	cause error
}

// NewUnavailableHolidayRepository records why the store is missing. cause may be nil.
func NewUnavailableHolidayRepository(cause error) ports.HolidayRepository {
	return &UnavailableHolidayRepository{cause: cause}
}

func (r *UnavailableHolidayRepository) err() error {
	if r.cause == nil {
		return entities.ErrHolidayStoreUnavailable
	}
	return fmt.Errorf("%w: %w", entities.ErrHolidayStoreUnavailable, r.cause)
}

func (r *UnavailableHolidayRepository) List(ctx context.Context, filter ports.HolidayFilter) ([]*entities.Holiday, error) {
	return nil, r.err()
}

func (r *UnavailableHolidayRepository) GetByID(ctx context.Context, id int64) (*entities.Holiday, error) {
	return nil, r.err()
}

func (r *UnavailableHolidayRepository) Create(ctx context.Context, holiday *entities.Holiday) error {
	return r.err()
}

func (r *UnavailableHolidayRepository) Update(ctx context.Context, holiday *entities.Holiday) error {
	return r.err()
}

func (r *UnavailableHolidayRepository) Delete(ctx context.Context, id int64) error {
	return r.err()
}

func (r *UnavailableHolidayRepository) ReplaceSeason(ctx context.Context, state string, year int, holidays []*entities.Holiday) error {
	return r.err()
}
