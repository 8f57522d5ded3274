package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
)

// ErrMutationInFlight is returned when the same item is already being changed.
var ErrMutationInFlight = errors.New("a change to this item is already in progress")

// Engine owns the client state and the calls that change it.
type Engine struct {
	api      API
	store    TokenStore
	logger   *logger.Logger
	location *time.Location
	now      func() time.Time

	mu       sync.Mutex
	state    State
	inflight map[string]bool
}

func NewEngine(api API, store TokenStore, location *time.Location, logger *logger.Logger) *Engine {
	if location == nil {
		location = time.Local
	}
	e := &Engine{
		api:      api,
		store:    store,
		logger:   logger.WithComponent("client"),
		location: location,
		now:      time.Now,
		inflight: make(map[string]bool),
	}
	e.state = NewState(e.Today())
	return e
}

// Today is the current date in the configured zone.
func (e *Engine) Today() entities.Date {
	return entities.Today(e.now(), e.location)
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Apply runs a local transition such as a filter or month change.
func (e *Engine) Apply(fn func(*State)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.state)
}

// Restore picks up a stored session and loads with it. It returns
// ErrNoToken, ErrTokenExpired or ErrTokenInvalid when a login is needed.
func (e *Engine) Restore(ctx context.Context) error {
	token, err := e.store.Load()
	if err != nil {
		return err
	}
	if err := CheckToken(token, e.now()); err != nil {
		if !errors.Is(err, ErrNoToken) {
			e.logger.Infow("Stored session discarded", "reason", err.Error())
			_ = e.store.Clear()
		}
		return err
	}

	e.api.SetToken(token)
	return e.Load(ctx)
}

// Login exchanges the password for a token, stores it and loads.
func (e *Engine) Login(ctx context.Context, password string) error {
	token, err := e.api.Login(ctx, password)
	if err != nil {
		return err
	}
	if err := e.store.Save(token); err != nil {
		e.logger.Warnw("Failed to store session token", "error", err)
	}
	return e.Load(ctx)
}

// Load fetches todos and the calendar of the displayed year in parallel.
// The collections are replaced only when both calls succeed.
func (e *Engine) Load(ctx context.Context) error {
	year := e.State().Year

	var (
		todos []*entities.Todo
		cal   *Calendar
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		todos, err = e.api.GetTodos(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cal, err = e.api.GetCalendar(gctx, year)
		return err
	})

	if err := g.Wait(); err != nil {
		e.fail(err)
		return fmt.Errorf("load: %w", err)
	}

	e.mu.Lock()
	e.state.Loaded(todos, cal.Events, cal.Holidays, cal.Warning)
	e.mu.Unlock()
	return nil
}

// ChangeMonth moves the calendar and reloads when the year changes, since
// holidays are fetched per year.
func (e *Engine) ChangeMonth(ctx context.Context, delta int) error {
	e.mu.Lock()
	before := e.state.Year
	e.state.ChangeMonth(delta)
	after := e.state.Year
	e.mu.Unlock()

	if before == after {
		return nil
	}
	return e.Load(ctx)
}

// Mutate runs one change against the API. A second call for the same key
// while the first is still running is refused. On success the modal is
// closed and everything is reloaded; on failure the state is untouched.
func (e *Engine) Mutate(ctx context.Context, key string, fn func(context.Context, API) error) error {
	e.mu.Lock()
	if e.inflight[key] {
		e.mu.Unlock()
		return ErrMutationInFlight
	}
	e.inflight[key] = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		delete(e.inflight, key)
		e.mu.Unlock()
	}()

	if err := fn(ctx, e.api); err != nil {
		e.fail(err)
		return err
	}

	e.Apply(func(s *State) { s.CloseModal() })
	return e.Load(ctx)
}

// Logout forgets the token and the loaded data.
func (e *Engine) Logout() error {
	e.api.SetToken("")
	e.Apply(func(s *State) { s.Logout() })
	return e.store.Clear()
}

func (e *Engine) fail(err error) {
	if !errors.Is(err, ErrUnauthorized) {
		e.logger.Warnw("Request failed", "error", err)
		return
	}
	e.logger.Infow("Session rejected, clearing token")
	if clearErr := e.store.Clear(); clearErr != nil {
		e.logger.Warnw("Failed to clear session token", "error", clearErr)
	}
	e.api.SetToken("")
	e.Apply(func(s *State) { s.Logout() })
}
