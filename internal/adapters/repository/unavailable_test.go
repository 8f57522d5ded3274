package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/ports"
)

func TestUnavailableHolidayRepository(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:1: connect: connection refused")
	repo := NewUnavailableHolidayRepository(cause)
	ctx := context.Background()

	_, listErr := repo.List(ctx, ports.HolidayFilter{})
	_, getErr := repo.GetByID(ctx, 1)

	calls := map[string]error{
		"List":          listErr,
		"GetByID":       getErr,
		"Create":        repo.Create(ctx, &entities.Holiday{}),
		"Update":        repo.Update(ctx, &entities.Holiday{ID: 1}),
		"Delete":        repo.Delete(ctx, 1),
		"ReplaceSeason": repo.ReplaceSeason(ctx, "Kelantan", 2025, nil),
	}
	for name, err := range calls {
		if !errors.Is(err, entities.ErrHolidayStoreUnavailable) {
			t.Errorf("%s error = %v, want ErrHolidayStoreUnavailable", name, err)
		}
		if !errors.Is(err, cause) {
			t.Errorf("%s error = %v, want the connection error kept", name, err)
		}
	}

	if err := NewUnavailableHolidayRepository(nil).Delete(ctx, 1); err != entities.ErrHolidayStoreUnavailable {
		t.Errorf("nil cause error = %v", err)
	}
}
