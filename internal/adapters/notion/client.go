package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/infrastructure/metrics"
)

const serviceName = "notion"

// HTTPClient is the subset of *http.Client used by the adapter.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Notion REST API.
type Client struct {
	baseURL  string
	apiKey   string
	version  string
	location *time.Location
	http     HTTPClient
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) { c.http = h }
}

// WithLocation sets the zone used to read timestamped dates.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) { c.location = loc }
}

// WithMetrics records every call on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Notion client from configuration.
func NewClient(cfg config.NotionConfig, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		version:  cfg.Version,
		location: time.Local,
		http:     &http.Client{Timeout: cfg.Timeout},
		logger:   log.WithComponent("notion"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sort is one entry of a database query's sorts.
type Sort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

// Query is the body of a database query.
type Query struct {
	Filter      json.RawMessage `json:"filter,omitempty"`
	Sorts       []Sort          `json:"sorts,omitempty"`
	StartCursor string          `json:"start_cursor,omitempty"`
	PageSize    int             `json:"page_size,omitempty"`
}

type queryResponse struct {
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// QueryAll runs a database query and follows next_cursor for as long as
// the service reports has_more, returning every page's results in order.
func (c *Client) QueryAll(ctx context.Context, databaseID string, q Query) ([]Page, error) {
	var all []Page
	q.StartCursor = ""

	for {
		var resp queryResponse
		if err := c.do(ctx, "query_database", http.MethodPost, "/databases/"+databaseID+"/query", q, &resp); err != nil {
			return nil, err
		}
		all = append(all, resp.Results...)

		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return all, nil
		}
		q.StartCursor = *resp.NextCursor
	}
}

// CreatePage inserts a row into a database.
func (c *Client) CreatePage(ctx context.Context, databaseID string, props Properties) (*Page, error) {
	body := map[string]interface{}{
		"parent":     map[string]string{"database_id": databaseID},
		"properties": props,
	}

	var page Page
	if err := c.do(ctx, "create_page", http.MethodPost, "/pages", body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage rewrites the given properties of a page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props Properties) (*Page, error) {
	id, err := NormalizeID(pageID)
	if err != nil {
		return nil, err
	}

	var page Page
	body := map[string]interface{}{"properties": props}
	if err := c.do(ctx, "update_page", http.MethodPatch, "/pages/"+id, body, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ArchivePage moves a page to the trash.
func (c *Client) ArchivePage(ctx context.Context, pageID string) error {
	id, err := NormalizeID(pageID)
	if err != nil {
		return err
	}

	body := map[string]interface{}{"archived": true}
	return c.do(ctx, "archive_page", http.MethodPatch, "/pages/"+id, body, nil)
}

// Location is the zone used when parsing timestamped dates.
func (c *Client) Location() *time.Location {
	return c.location
}

// NormalizeID accepts a page id with or without dashes.
func NormalizeID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", entities.NewValidationError("id", "Invalid id")
	}
	return parsed.String(), nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, start, err)
		return fmt.Errorf("%s: %w", op, err)
	}

	var data []byte
	if resp.Body != nil {
		defer resp.Body.Close()
		data, err = io.ReadAll(resp.Body)
		if err != nil {
			c.observe(op, resp.StatusCode, start, err)
			return fmt.Errorf("%s: read response: %w", op, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := decodeError(resp.StatusCode, data)
		c.observe(op, resp.StatusCode, start, upErr)
		return upErr
	}
	c.observe(op, resp.StatusCode, start, nil)

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func (c *Client) observe(op string, status int, start time.Time, err error) {
	d := time.Since(start)
	c.metrics.ObserveUpstream(serviceName, op, status, d)
	c.logger.LogUpstreamCall(serviceName, op, status, d, err)
}

func decodeError(status int, data []byte) *entities.UpstreamError {
	upErr := &entities.UpstreamError{Service: serviceName, StatusCode: status}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if json.Valid(data) {
		upErr.Body = json.RawMessage(data)
		if err := json.Unmarshal(data, &body); err == nil {
			upErr.Code = body.Code
			upErr.Message = body.Message
		}
	} else if len(data) > 0 {
		quoted, _ := json.Marshal(string(data))
		upErr.Body = quoted
		upErr.Message = string(data)
	}
	return upErr
}

func isNotFound(err error) bool {
	var upErr *entities.UpstreamError
	return errors.As(err, &upErr) && (upErr.StatusCode == http.StatusNotFound || upErr.Code == "object_not_found")
}
