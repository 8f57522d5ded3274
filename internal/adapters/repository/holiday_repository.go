package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/database"
	"github.com/namorima/notion-todo/internal/ports"
)

const holidayColumns = `id, date, name, state, year`

// HolidayRepositoryImpl implements the HolidayRepository interface
type HolidayRepositoryImpl struct {
	db *database.DB
}

// NewHolidayRepository creates a new holiday repository
func NewHolidayRepository(db *database.DB) ports.HolidayRepository {
	return &HolidayRepositoryImpl{db: db}
}

func (r *HolidayRepositoryImpl) List(ctx context.Context, filter ports.HolidayFilter) ([]*entities.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays`

	var conditions []string
	var args []interface{}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("year = $%d", len(args)))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		conditions = append(conditions, fmt.Sprintf("state = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, id ASC"

	holidays := []*entities.Holiday{}
	if err := r.db.DB.SelectContext(ctx, &holidays, query, args...); err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}

	return holidays, nil
}

func (r *HolidayRepositoryImpl) GetByID(ctx context.Context, id int64) (*entities.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays WHERE id = $1`

	var holiday entities.Holiday
	err := r.db.DB.GetContext(ctx, &holiday, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrHolidayNotFound
		}
		return nil, fmt.Errorf("get holiday by id: %w", err)
	}

	return &holiday, nil
}

func (r *HolidayRepositoryImpl) Create(ctx context.Context, holiday *entities.Holiday) error {
	holiday.SyncYear()
	if err := insertHoliday(ctx, r.db.DB, holiday); err != nil {
		return fmt.Errorf("create holiday: %w", err)
	}
	return nil
}

func (r *HolidayRepositoryImpl) Update(ctx context.Context, holiday *entities.Holiday) error {
	query := `
		UPDATE holidays
		SET date = $2, name = $3, state = $4, year = $5
		WHERE id = $1
		RETURNING id`

	holiday.SyncYear()

	var id int64
	err := r.db.DB.QueryRowxContext(ctx, query,
		holiday.ID, holiday.Date, holiday.Name, holiday.State, holiday.Year,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrHolidayNotFound
		}
		return fmt.Errorf("update holiday: %w", err)
	}

	return nil
}

func (r *HolidayRepositoryImpl) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM holidays WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete holiday rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrHolidayNotFound
	}

	return nil
}

// ReplaceSeason swaps every row of one state and year for the given list
// inside a single transaction.
func (r *HolidayRepositoryImpl) ReplaceSeason(ctx context.Context, state string, year int, holidays []*entities.Holiday) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM holidays WHERE state = $1 AND year = $2`, state, year); err != nil {
			return fmt.Errorf("clear season %s %d: %w", state, year, err)
		}

		for _, h := range holidays {
			h.State = state
			h.SyncYear()
			if h.Year != year {
				return entities.NewValidationError("date", fmt.Sprintf("%s is outside %d", h.Date, year))
			}
			if err := insertHoliday(ctx, tx, h); err != nil {
				return fmt.Errorf("insert %s: %w", h.Date, err)
			}
		}
		return nil
	})
}

func insertHoliday(ctx context.Context, q sqlx.QueryerContext, holiday *entities.Holiday) error {
	query := `
		INSERT INTO holidays (date, name, state, year)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return q.QueryRowxContext(ctx, query,
		holiday.Date, holiday.Name, holiday.State, holiday.Year,
	).Scan(&holiday.ID)
}
