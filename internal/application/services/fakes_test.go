package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/ports"
)

type fakeTodoRepo struct {
	todos    []*entities.Todo
	listErr  error
	created  *entities.Todo
	updates  map[string]ports.TodoChanges
	failID   string
	archived []string
}

func (f *fakeTodoRepo) List(ctx context.Context) ([]*entities.Todo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*entities.Todo, len(f.todos))
	copy(out, f.todos)
	return out, nil
}

func (f *fakeTodoRepo) Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	f.created = todo
	c := *todo
	c.ID = "new-id"
	return &c, nil
}

func (f *fakeTodoRepo) Update(ctx context.Context, id string, changes ports.TodoChanges) (*entities.Todo, error) {
	if id == f.failID {
		return nil, entities.ErrTodoNotFound
	}
	if f.updates == nil {
		f.updates = map[string]ports.TodoChanges{}
	}
	f.updates[id] = changes
	return &entities.Todo{ID: id}, nil
}

func (f *fakeTodoRepo) Archive(ctx context.Context, id string) error {
	f.archived = append(f.archived, id)
	return nil
}

type fakeEventRepo struct {
	events  []*entities.CalendarEvent
	listErr error
	created *entities.CalendarEvent
	changes ports.EventChanges
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*entities.CalendarEvent, error) {
	return f.events, f.listErr
}

func (f *fakeEventRepo) Create(ctx context.Context, event *entities.CalendarEvent) (*entities.CalendarEvent, error) {
	f.created = event
	return event, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, changes ports.EventChanges) (*entities.CalendarEvent, error) {
	f.changes = changes
	return &entities.CalendarEvent{ID: id}, nil
}

func (f *fakeEventRepo) Archive(ctx context.Context, id string) error {
	return nil
}

type fakeHolidayRepo struct {
	mu        sync.Mutex
	rows      []*entities.Holiday
	listCalls int32
	listErr   error
	gate      chan struct{}
	created   *entities.Holiday
	updated   *entities.Holiday
	replaced  []*entities.Holiday
}

func (f *fakeHolidayRepo) List(ctx context.Context, filter ports.HolidayFilter) ([]*entities.Holiday, error) {
	atomic.AddInt32(&f.listCalls, 1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeHolidayRepo) GetByID(ctx context.Context, id int64) (*entities.Holiday, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, h := range f.rows {
		if h.ID == id {
			return h, nil
		}
	}
	return nil, entities.ErrHolidayNotFound
}

func (f *fakeHolidayRepo) Create(ctx context.Context, h *entities.Holiday) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h.ID = 1
	f.created = h
	return nil
}

func (f *fakeHolidayRepo) Update(ctx context.Context, h *entities.Holiday) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = h
	return nil
}

func (f *fakeHolidayRepo) Delete(ctx context.Context, id int64) error {
	if id == 404 {
		return entities.ErrHolidayNotFound
	}
	return nil
}

func (f *fakeHolidayRepo) ReplaceSeason(ctx context.Context, state string, year int, list []*entities.Holiday) error {
	f.replaced = list
	return nil
}

type fakeCache struct {
	mu          sync.Mutex
	data        map[string][]*entities.Holiday
	invalidated int
	getErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]*entities.Holiday{}}
}

func cacheKey(state string, year int) string {
	return fmt.Sprintf("%s:%d", state, year)
}

func (c *fakeCache) Get(ctx context.Context, state string, year int) ([]*entities.Holiday, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.data[cacheKey(state, year)], nil
}

func (c *fakeCache) Set(ctx context.Context, state string, year int, list []*entities.Holiday) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if list == nil {
		list = []*entities.Holiday{}
	}
	c.data[cacheKey(state, year)] = list
	return nil
}

func (c *fakeCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = map[string][]*entities.Holiday{}
	c.invalidated++
	return nil
}

type fakeSource struct {
	list []*entities.Holiday
	err  error
}

func (s *fakeSource) Fetch(ctx context.Context, state string, year int) ([]*entities.Holiday, error) {
	return s.list, s.err
}

type fakeNotifier struct {
	subject, message string
	calls            int
}

func (n *fakeNotifier) Publish(ctx context.Context, subject, message string) error {
	n.calls++
	n.subject, n.message = subject, message
	return nil
}

// fakeHolidayService lets the calendar tests fail the holiday side alone.
type fakeHolidayService struct {
	list []*entities.Holiday
	err  error
}

func (f *fakeHolidayService) ListHolidays(ctx context.Context, filter ports.HolidayFilter) ([]*entities.Holiday, error) {
	return f.list, f.err
}

func (f *fakeHolidayService) AddHoliday(ctx context.Context, req ports.CreateHolidayRequest) (*entities.Holiday, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeHolidayService) EditHoliday(ctx context.Context, req ports.UpdateHolidayRequest) (*entities.Holiday, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeHolidayService) DeleteHoliday(ctx context.Context, id int64) error {
	return errors.New("not implemented")
}
