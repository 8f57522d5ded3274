package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/ports"
)

// ErrUnauthorized is returned for every 401 from the API.
var ErrUnauthorized = errors.New("unauthorized")

// HTTPClient is the subset of *http.Client the API client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError is a failure envelope returned by the API.
type APIError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return e.Message
}

// API is the set of calls the engine makes.
type API interface {
	Login(ctx context.Context, password string) (string, error)
	SetToken(token string)

	GetTodos(ctx context.Context) ([]*entities.Todo, error)
	AddTodo(ctx context.Context, req ports.CreateTodoRequest) (*entities.Todo, error)
	EditTodo(ctx context.Context, req ports.UpdateTodoRequest) (*entities.Todo, error)
	DoneTodo(ctx context.Context, id string) error
	DeleteTodo(ctx context.Context, id string) error

	GetCalendar(ctx context.Context, year int) (*Calendar, error)
	AddEvent(ctx context.Context, req ports.CreateEventRequest) (*entities.CalendarEvent, error)
	EditEvent(ctx context.Context, req ports.UpdateEventRequest) (*entities.CalendarEvent, error)
	DoneEvent(ctx context.Context, id string) error
	DeleteEvent(ctx context.Context, id string) error

	GetHolidays(ctx context.Context, year int, state string) ([]*entities.Holiday, error)
	AddHoliday(ctx context.Context, req ports.CreateHolidayRequest) (*entities.Holiday, error)
	EditHoliday(ctx context.Context, req ports.UpdateHolidayRequest) (*entities.Holiday, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

// Calendar is the data of get-calendar.
type Calendar struct {
	Events   []*entities.CalendarEvent `json:"calendar"`
	Holidays []*entities.Holiday       `json:"holidays"`
	Warning  string                    `json:"-"`
}

// APIClient calls the notion-manager HTTP API.
type APIClient struct {
	baseURL string
	http    HTTPClient

	mu    sync.RWMutex
	token string
}

// NewAPIClient creates a client for baseURL, e.g. http://localhost:8080/api.
func NewAPIClient(baseURL string, client HTTPClient) *APIClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

func (c *APIClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *APIClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Warning string          `json:"warning"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func (c *APIClient) Login(ctx context.Context, password string) (string, error) {
	var data struct {
		Token string `json:"token"`
	}
	if _, err := c.call(ctx, http.MethodPost, "login", nil, ports.LoginRequest{Password: password}, &data); err != nil {
		return "", err
	}
	c.SetToken(data.Token)
	return data.Token, nil
}

func (c *APIClient) GetTodos(ctx context.Context) ([]*entities.Todo, error) {
	var data struct {
		Todos []*entities.Todo `json:"todos"`
	}
	if _, err := c.call(ctx, http.MethodGet, "get-todos", nil, nil, &data); err != nil {
		return nil, err
	}
	return nonNil(data.Todos), nil
}

func (c *APIClient) AddTodo(ctx context.Context, req ports.CreateTodoRequest) (*entities.Todo, error) {
	var todo entities.Todo
	if _, err := c.call(ctx, http.MethodPost, "add-todo", nil, req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *APIClient) EditTodo(ctx context.Context, req ports.UpdateTodoRequest) (*entities.Todo, error) {
	var todo entities.Todo
	if _, err := c.call(ctx, http.MethodPut, "edit-todo", nil, req, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *APIClient) DoneTodo(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodPost, "done-todo", nil, ports.IDRequest{ID: id}, nil)
	return err
}

func (c *APIClient) DeleteTodo(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "delete-todo", url.Values{"id": {id}}, nil, nil)
	return err
}

func (c *APIClient) GetCalendar(ctx context.Context, year int) (*Calendar, error) {
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}

	var cal Calendar
	env, err := c.call(ctx, http.MethodGet, "get-calendar", q, nil, &cal)
	if err != nil {
		return nil, err
	}
	cal.Events = nonNil(cal.Events)
	cal.Holidays = nonNil(cal.Holidays)
	cal.Warning = env.Warning
	return &cal, nil
}

func (c *APIClient) AddEvent(ctx context.Context, req ports.CreateEventRequest) (*entities.CalendarEvent, error) {
	var event entities.CalendarEvent
	if _, err := c.call(ctx, http.MethodPost, "add-calendar", nil, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *APIClient) EditEvent(ctx context.Context, req ports.UpdateEventRequest) (*entities.CalendarEvent, error) {
	var event entities.CalendarEvent
	if _, err := c.call(ctx, http.MethodPut, "edit-calendar", nil, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *APIClient) DoneEvent(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodPost, "done-calendar", nil, ports.IDRequest{ID: id}, nil)
	return err
}

func (c *APIClient) DeleteEvent(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "delete-calendar", url.Values{"id": {id}}, nil, nil)
	return err
}

func (c *APIClient) GetHolidays(ctx context.Context, year int, state string) ([]*entities.Holiday, error) {
	q := url.Values{}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	if state != "" {
		q.Set("state", state)
	}

	var holidays []*entities.Holiday
	if _, err := c.call(ctx, http.MethodGet, "get-holidays", q, nil, &holidays); err != nil {
		return nil, err
	}
	return nonNil(holidays), nil
}

func (c *APIClient) AddHoliday(ctx context.Context, req ports.CreateHolidayRequest) (*entities.Holiday, error) {
	var h entities.Holiday
	if _, err := c.call(ctx, http.MethodPost, "add-holiday", nil, req, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *APIClient) EditHoliday(ctx context.Context, req ports.UpdateHolidayRequest) (*entities.Holiday, error) {
	var h entities.Holiday
	if _, err := c.call(ctx, http.MethodPut, "edit-holiday", nil, req, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *APIClient) DeleteHoliday(ctx context.Context, id int64) error {
	q := url.Values{"id": {strconv.FormatInt(id, 10)}}
	_, err := c.call(ctx, http.MethodDelete, "delete-holiday", q, nil, nil)
	return err
}

// call sends one request and decodes the envelope's data into out.
func (c *APIClient) call(ctx context.Context, method, endpoint string, query url.Values, body, out interface{}) (*envelope, error) {
	u := c.baseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized && endpoint != "login" {
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, env.Error)
	}
	if resp.StatusCode >= 300 || !env.Success {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Error, Details: env.Details}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode %s data: %w", endpoint, err)
		}
	}
	return &env, nil
}
