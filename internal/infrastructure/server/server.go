package server

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"time"

	echoadapter "github.com/awslabs/aws-lambda-go-api-proxy/echo"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/namorima/notion-todo/docs"
	httpHandlers "github.com/namorima/notion-todo/internal/adapters/http"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/database"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/infrastructure/metrics"
	"github.com/namorima/notion-todo/internal/ports"
)

// RoutePrefixes are the mount points of the API. The second keeps the
// paths of the previous serverless deployment working.
var RoutePrefixes = []string{"/api", "/.netlify/functions"}

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	db      *database.DB
	redis   *redis.Client
	metrics *metrics.Metrics
	lambda  *echoadapter.EchoLambda
}

// Dependencies are the services and optional backends the server exposes.
// DB, Redis and Metrics may be nil.
type Dependencies struct {
	Auth     ports.AuthService
	Todos    ports.TodoService
	Calendar ports.CalendarService
	Holidays ports.HolidayService
	Location *time.Location

	DB      *database.DB
	Redis   *redis.Client
	Metrics *metrics.Metrics
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports fields by their JSON names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, deps Dependencies, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = NewValidator()

	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = customErrorHandler(appLogger)

	authHandler := httpHandlers.NewAuthHandler(deps.Auth, appLogger.WithComponent("auth"))
	todoHandler := httpHandlers.NewTodoHandler(deps.Todos, deps.Location, appLogger.WithComponent("todos"))
	calendarHandler := httpHandlers.NewCalendarHandler(deps.Calendar, appLogger.WithComponent("calendar"))
	holidayHandler := httpHandlers.NewHolidayHandler(deps.Holidays, cfg.Holidays.State, deps.Location, appLogger.WithComponent("holidays"))

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		db:      deps.DB,
		redis:   deps.Redis,
		metrics: deps.Metrics,
		lambda:  echoadapter.New(e),
	}

	server.setupMiddleware()

	if cfg.Metrics.Enabled && deps.Metrics != nil {
		server.setupMetrics()
	}

	server.setupRoutes(authHandler, todoHandler, calendarHandler, holidayHandler, deps.Auth)

	return server, nil
}

// Echo exposes the router for tests and the Lambda proxy
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// ServeHTTP lets the server be used as a plain http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			reqLogger := s.logger.WithRequestID(values.RequestID)
			if values.Error != nil {
				reqLogger.WithError(values.Error).Warnw("HTTP request failed", fields...)
			} else {
				reqLogger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: splitOrigins(s.config.Security.CORSAllowedOrigins),
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	}))

	if s.config.Security.RateLimitRequests > 0 {
		s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Skipper: func(c echo.Context) bool {
				return c.Request().Method == http.MethodOptions
			},
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(
				middleware.RateLimiterMemoryStoreConfig{
					Rate:      rate.Limit(float64(s.config.Security.RateLimitRequests) / windowSeconds(s.config.Security.RateLimitWindow)),
					Burst:     s.config.Security.RateLimitRequests,
					ExpiresIn: s.config.Security.RateLimitWindow,
				},
			),
			IdentifierExtractor: func(ctx echo.Context) (string, error) {
				return ctx.RealIP(), nil
			},
			ErrorHandler: func(context echo.Context, err error) error {
				return echo.NewHTTPError(http.StatusForbidden, "Rate limit exceeded")
			},
			DenyHandler: func(context echo.Context, identifier string, err error) error {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
			},
		}))
	}

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	s.echo.Use(middleware.RequestID())

	if s.config.Server.RequestTimeout > 0 {
		s.echo.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: s.config.Server.RequestTimeout,
		}))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(auth *httpHandlers.AuthHandler, todos *httpHandlers.TodoHandler, calendar *httpHandlers.CalendarHandler, holidays *httpHandlers.HolidayHandler, authService ports.AuthService) {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := s.authMiddleware(authService)

	for _, prefix := range RoutePrefixes {
		g := s.echo.Group(prefix)

		g.POST("/login", auth.Login)

		g.GET("/get-todos", todos.GetTodos, requireAuth)
		g.POST("/add-todo", todos.AddTodo, requireAuth)
		g.Match([]string{http.MethodPost, http.MethodPut}, "/edit-todo", todos.EditTodo, requireAuth)
		g.POST("/done-todo", todos.DoneTodo, requireAuth)
		g.Match([]string{http.MethodPost, http.MethodDelete}, "/delete-todo", todos.DeleteTodo, requireAuth)

		g.GET("/get-calendar", calendar.GetCalendar, requireAuth)
		g.POST("/add-calendar", calendar.AddCalendar, requireAuth)
		g.Match([]string{http.MethodPost, http.MethodPut}, "/edit-calendar", calendar.EditCalendar, requireAuth)
		g.POST("/done-calendar", calendar.DoneCalendar, requireAuth)
		g.Match([]string{http.MethodPost, http.MethodDelete}, "/delete-calendar", calendar.DeleteCalendar, requireAuth)

		g.GET("/get-holidays", holidays.GetHolidays, requireAuth)
		g.POST("/add-holiday", holidays.AddHoliday, requireAuth)
		g.Match([]string{http.MethodPost, http.MethodPut}, "/edit-holiday", holidays.EditHoliday, requireAuth)
		g.Match([]string{http.MethodPost, http.MethodDelete}, "/delete-holiday", holidays.DeleteHoliday, requireAuth)
	}
}

// setupMetrics records every request and exposes the registry
func (s *Server) setupMetrics() {
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				status, _ = httpHandlers.ErrorEnvelope(err)
			}
			s.metrics.ObserveRequest(c.Request().Method, c.Path(), status, time.Since(start))

			return err
		}
	})

	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	status := "ok"
	checks := make(map[string]interface{})

	if s.db != nil {
		if err := s.db.HealthCheck(ctx); err != nil {
			status = "error"
			checks["database"] = map[string]interface{}{
				"status": "error",
				"error":  err.Error(),
			}
		} else {
			checks["database"] = map[string]interface{}{
				"status": "ok",
				"stats":  s.db.GetConnectionInfo(),
			}
		}
	} else {
		checks["database"] = map[string]interface{}{"status": "disabled"}
	}

	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			// The cache is optional; holiday reads fall back to the database.
			checks["redis"] = map[string]interface{}{
				"status": "degraded",
				"error":  err.Error(),
			}
		} else {
			checks["redis"] = map[string]interface{}{"status": "ok"}
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if s.db != nil {
		if err := s.db.HealthCheck(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": "database_not_ready",
			})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout
	s.echo.Server.IdleTimeout = s.config.Server.IdleTimeout

	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler writes every error as a failure envelope
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code, body := httpHandlers.ErrorEnvelope(err)

		if code >= http.StatusInternalServerError {
			logger.Errorw("Request failed", "error", err, "path", c.Request().URL.Path, "status", code)
		}

		if c.Response().Committed {
			return
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}
		if err != nil {
			logger.Errorw("Error sending response", "error", err)
		}
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func windowSeconds(d time.Duration) float64 {
	if d <= 0 {
		return 1
	}
	return d.Seconds()
}
