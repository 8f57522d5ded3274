// Package app wires configuration, adapters and services into the running
// backend shared by the HTTP server, the Lambda entry point and the admin
// commands.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/namorima/notion-todo/internal/adapters/cache"
	"github.com/namorima/notion-todo/internal/adapters/holidays"
	"github.com/namorima/notion-todo/internal/adapters/notion"
	"github.com/namorima/notion-todo/internal/adapters/repository"
	"github.com/namorima/notion-todo/internal/application/services"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/database"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/infrastructure/metrics"
	"github.com/namorima/notion-todo/internal/infrastructure/server"
	"github.com/namorima/notion-todo/internal/ports"
)

// App holds the constructed backend
type App struct {
	Config   *config.Config
	Logger   *logger.Logger
	Location *time.Location

	DB      *database.DB
	Redis   *redis.Client
	Metrics *metrics.Metrics

	TodoRepo  ports.TodoRepository
	Auth      *services.AuthService
	Todos     *services.TodoService
	Calendar  *services.CalendarService
	Holidays  *services.HolidayService
	Reminders *services.ReminderService
}

// Option customises New.
type Option func(*options)

type options struct {
	skipDatabase bool
}

// WithoutDatabase skips Postgres for commands that only touch Notion.
// Holiday calls then fail with entities.ErrHolidayStoreUnavailable.
func WithoutDatabase() Option {
	return func(o *options) { o.skipDatabase = true }
}

// New connects to Postgres (and Redis when enabled) and builds every service.
// An unreachable Postgres is tolerated: holiday calls fail while todos and
// events keep working. The caller owns the returned App and must Close it.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Logger:   log,
		Location: loc,
	}

	var holidayRepo ports.HolidayRepository
	switch db, err := openDatabase(cfg, o); {
	case err != nil:
		log.Warnw("Holiday store unavailable, holidays disabled", "error", err)
		holidayRepo = repository.NewUnavailableHolidayRepository(err)
	case db == nil:
		holidayRepo = repository.NewUnavailableHolidayRepository(nil)
	default:
		a.DB = db
		holidayRepo = repository.NewHolidayRepository(db)
	}

	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New()
	}

	var holidayCache ports.HolidayCache
	if cfg.Redis.Enabled && !o.skipDatabase {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			// Holidays are served straight from Postgres without the cache.
			log.Warnw("Redis unavailable, holiday cache disabled", "addr", cfg.Redis.GetAddr(), "error", err)
		} else {
			a.Redis = rdb
			holidayCache = cache.NewHolidayCache(rdb, cfg.Redis.HolidayTTL)
		}
	}

	notionClient := notion.NewClient(cfg.Notion, log,
		notion.WithLocation(loc),
		notion.WithMetrics(a.Metrics),
	)
	a.TodoRepo = notion.NewTodoRepository(notionClient, cfg.Notion.TodoDatabaseID)
	eventRepo := notion.NewEventRepository(notionClient, cfg.Notion.CalendarDatabaseID, log)

	var source ports.HolidaySource
	if cfg.Holidays.SourceURL != "" {
		source = holidays.NewOfficeHolidaysSource(cfg.Holidays.SourceURL, &http.Client{Timeout: 30 * time.Second}, log)
	}

	codec := services.NewTokenCodec(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	a.Auth = services.NewAuthService(cfg.Auth, codec, log.WithComponent("auth"))
	a.Todos = services.NewTodoService(a.TodoRepo, loc, log.WithComponent("todos"))
	a.Holidays = services.NewHolidayService(holidayRepo, holidayCache, source, loc, log.WithComponent("holidays"))
	a.Calendar = services.NewCalendarService(eventRepo, a.Holidays, cfg.Holidays.State, loc, log.WithComponent("calendar"))
	a.Reminders = services.NewReminderService(a.TodoRepo, nil, loc, log.WithComponent("reminders"))

	return a, nil
}

// Server builds the HTTP server over the app's services
func (a *App) Server() (*server.Server, error) {
	srv, err := server.New(a.Config, server.Dependencies{
		Auth:     a.Auth,
		Todos:    a.Todos,
		Calendar: a.Calendar,
		Holidays: a.Holidays,
		Location: a.Location,
		DB:       a.DB,
		Redis:    a.Redis,
		Metrics:  a.Metrics,
	}, a.Logger)
	if err != nil {
		return nil, fmt.Errorf("build server: %w", err)
	}
	return srv, nil
}

// Close releases the database and Redis connections
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warnw("Failed to close redis", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warnw("Failed to close database", "error", err)
		}
	}
}

func openDatabase(cfg *config.Config, o options) (*database.DB, error) {
	if o.skipDatabase {
		return nil, nil
	}
	return database.New(cfg.Database)
}
