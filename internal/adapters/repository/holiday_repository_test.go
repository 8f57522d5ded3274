package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/database"
	"github.com/namorima/notion-todo/internal/ports"
)

func newMockRepo(t *testing.T) (ports.HolidayRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewHolidayRepository(database.Wrap(sqlx.NewDb(db, "postgres"))), mock
}

func holidayRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "date", "name", "state", "year"})
}

func TestHolidayRepository_List(t *testing.T) {
	year := 2025
	state := "Kelantan"

	tests := []struct {
		name   string
		filter ports.HolidayFilter
		query  string
		args   []driver.Value
	}{
		{
			name:  "no filter",
			query: `SELECT id, date, name, state, year FROM holidays ORDER BY date ASC, id ASC`,
		},
		{
			name:   "year only",
			filter: ports.HolidayFilter{Year: &year},
			query:  `SELECT id, date, name, state, year FROM holidays WHERE year = $1 ORDER BY date ASC, id ASC`,
			args:   []driver.Value{2025},
		},
		{
			name:   "year and state",
			filter: ports.HolidayFilter{Year: &year, State: &state},
			query:  `SELECT id, date, name, state, year FROM holidays WHERE year = $1 AND state = $2 ORDER BY date ASC, id ASC`,
			args:   []driver.Value{2025, "Kelantan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepo(t)

			rows := holidayRows().
				AddRow(int64(1), "2025-03-31", "Hari Raya Aidilfitri", "Kelantan", 2025).
				AddRow(int64(2), "2025-04-01", "Hari Raya Aidilfitri (Hari Kedua)", "Kelantan", 2025)

			exp := mock.ExpectQuery(regexp.QuoteMeta(tt.query))
			if len(tt.args) > 0 {
				exp = exp.WithArgs(tt.args...)
			}
			exp.WillReturnRows(rows)

			holidays, err := repo.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(holidays) != 2 {
				t.Fatalf("len = %d, want 2", len(holidays))
			}
			if holidays[0].Date.String() != "2025-03-31" || holidays[1].ID != 2 {
				t.Errorf("holidays = %+v, %+v", holidays[0], holidays[1])
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestHolidayRepository_GetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, date, name, state, year FROM holidays WHERE id = $1`)).
		WithArgs(int64(42)).
		WillReturnRows(holidayRows())

	_, err := repo.GetByID(context.Background(), 42)
	if !errors.Is(err, entities.ErrHolidayNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrHolidayNotFound", err)
	}
}

func TestHolidayRepository_CreateDerivesYear(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO holidays (date, name, state, year)`)).
		WithArgs("2025-08-31", "Hari Kebangsaan", "Kelantan", 2025).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	h := &entities.Holiday{
		Date:  entities.MustParseDate("2025-08-31"),
		Name:  "Hari Kebangsaan",
		State: "Kelantan",
		Year:  1999,
	}
	if err := repo.Create(context.Background(), h); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if h.ID != 7 || h.Year != 2025 {
		t.Errorf("holiday = %+v", h)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestHolidayRepository_UpdateMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE holidays`)).
		WithArgs(int64(9), "2025-12-25", "Hari Krismas", "Kelantan", 2025).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.Update(context.Background(), &entities.Holiday{
		ID:    9,
		Date:  entities.MustParseDate("2025-12-25"),
		Name:  "Hari Krismas",
		State: "Kelantan",
	})
	if !errors.Is(err, entities.ErrHolidayNotFound) {
		t.Fatalf("Update() error = %v, want ErrHolidayNotFound", err)
	}
}

func TestHolidayRepository_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM holidays WHERE id = $1`)).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		if err := repo.Delete(context.Background(), 3); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM holidays WHERE id = $1`)).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		if err := repo.Delete(context.Background(), 3); !errors.Is(err, entities.ErrHolidayNotFound) {
			t.Fatalf("Delete() error = %v, want ErrHolidayNotFound", err)
		}
	})
}

func TestHolidayRepository_ReplaceSeason(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM holidays WHERE state = $1 AND year = $2`)).
		WithArgs("Kelantan", 2025).
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO holidays`)).
		WithArgs("2025-01-29", "Tahun Baru Cina", "Kelantan", 2025).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO holidays`)).
		WithArgs("2025-03-31", "Hari Raya Aidilfitri", "Kelantan", 2025).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(101)))
	mock.ExpectCommit()

	season := []*entities.Holiday{
		{Date: entities.MustParseDate("2025-01-29"), Name: "Tahun Baru Cina"},
		{Date: entities.MustParseDate("2025-03-31"), Name: "Hari Raya Aidilfitri"},
	}
	if err := repo.ReplaceSeason(context.Background(), "Kelantan", 2025, season); err != nil {
		t.Fatalf("ReplaceSeason() error = %v", err)
	}
	if season[1].ID != 101 || season[1].State != "Kelantan" {
		t.Errorf("holiday = %+v", season[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestHolidayRepository_ReplaceSeasonRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM holidays WHERE state = $1 AND year = $2`)).
		WithArgs("Kelantan", 2025).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	season := []*entities.Holiday{
		{Date: entities.MustParseDate("2026-01-01"), Name: "Tahun Baru"},
	}
	err := repo.ReplaceSeason(context.Background(), "Kelantan", 2025, season)

	var vErr *entities.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("ReplaceSeason() error = %v, want ValidationError", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
