package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

type mockClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func newMockClient(doFunc func(req *http.Request) (*http.Response, error)) *mockClient {
	return &mockClient{DoFunc: doFunc}
}

func (m *mockClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

func mustLoadJSONFile(t *testing.T, path string) io.ReadCloser {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return io.NopCloser(bytes.NewReader(data))
}

func jsonResponse(status int, body io.ReadCloser) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       body,
	}
}

var kl = time.FixedZone("MYT", 8*60*60)

func newTestClient(h HTTPClient) *Client {
	cfg := config.NotionConfig{
		APIKey:  "secret_test",
		BaseURL: "https://api.notion.test/v1",
		Version: "2022-06-28",
	}
	return NewClient(cfg, logger.NewNop(), WithHTTPClient(h), WithLocation(kl))
}

func TestTodoRepository_ListFollowsCursor(t *testing.T) {
	pages := []string{
		"testdata/todos_page1.json",
		"testdata/todos_page2.json",
		"testdata/todos_page3.json",
	}
	var cursors []string
	requests := 0

	client := newTestClient(newMockClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPost || req.URL.Path != "/v1/databases/todo-db/query" {
			t.Fatalf("unexpected request %s %s", req.Method, req.URL.Path)
		}
		if got := req.Header.Get("Authorization"); got != "Bearer secret_test" {
			t.Errorf("Authorization = %q", got)
		}
		if got := req.Header.Get("Notion-Version"); got != "2022-06-28" {
			t.Errorf("Notion-Version = %q", got)
		}

		var q Query
		if err := json.NewDecoder(req.Body).Decode(&q); err != nil {
			t.Fatalf("decode query: %v", err)
		}
		if len(q.Sorts) != 1 || q.Sorts[0].Property != "due date" || q.Sorts[0].Direction != "ascending" {
			t.Errorf("sorts = %+v", q.Sorts)
		}
		cursors = append(cursors, q.StartCursor)

		if requests >= len(pages) {
			t.Fatalf("more than %d requests issued", len(pages))
		}
		body := mustLoadJSONFile(t, pages[requests])
		requests++
		return jsonResponse(http.StatusOK, body), nil
	}))

	repo := NewTodoRepository(client, "todo-db")
	todos, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if requests != 3 {
		t.Fatalf("requests = %d, want 3", requests)
	}
	wantCursors := []string{"", "cursor-2", "cursor-3"}
	for i, c := range wantCursors {
		if cursors[i] != c {
			t.Errorf("request %d start_cursor = %q, want %q", i, cursors[i], c)
		}
	}
	if len(todos) != 3 {
		t.Fatalf("len(todos) = %d, want 3", len(todos))
	}

	first := todos[0]
	if first.Name != "Bayar bil air" || first.Category != entities.CategoryPenting || first.Status != entities.TodoStatusNotStarted {
		t.Errorf("first todo = %+v", first)
	}
	if first.DueDate == nil || first.DueDate.String() != "2025-03-05" {
		t.Errorf("first due = %v", first.DueDate)
	}

	second := todos[1]
	if second.Name != "Hantar laporan" || second.Category != entities.CategoryNone || second.Status != entities.TodoStatusInProgress {
		t.Errorf("second todo = %+v", second)
	}
	if second.DueDate == nil || second.DueDate.String() != "2025-03-10" {
		t.Errorf("second due = %v", second.DueDate)
	}

	third := todos[2]
	if third.Name != "Untitled" || third.Status != entities.TodoStatusNotStarted || third.Category != entities.CategoryNone || third.DueDate != nil {
		t.Errorf("defaults not applied: %+v", third)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	client := newTestClient(newMockClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, mustLoadJSONFile(t, "testdata/error_validation.json")), nil
	}))

	repo := NewTodoRepository(client, "todo-db")
	_, err := repo.Create(context.Background(), &entities.Todo{Name: "x"})

	var upErr *entities.UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upErr.StatusCode != http.StatusBadRequest || upErr.Code != "validation_error" {
		t.Errorf("upstream error = %+v", upErr)
	}
	if len(upErr.Body) == 0 {
		t.Error("upstream body not kept")
	}
}

func TestClient_TransportError(t *testing.T) {
	client := newTestClient(newMockClient(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection reset")
	}))

	_, err := NewTodoRepository(client, "todo-db").List(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	var upErr *entities.UpstreamError
	if errors.As(err, &upErr) {
		t.Errorf("transport failure should not be an UpstreamError")
	}
}

func captureBody(t *testing.T, target *map[string]interface{}, respond string) *mockClient {
	return newMockClient(func(req *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(req.Body).Decode(target); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		return jsonResponse(http.StatusOK, io.NopCloser(bytes.NewBufferString(respond))), nil
	})
}

const emptyTodoPage = `{"id":"1c0e4f6a-8d3b-4b6e-9a52-0f2a5d7c1e09","created_time":"2025-03-01T00:00:00Z","properties":{}}`

func TestTodoRepository_CreatePayload(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(captureBody(t, &body, emptyTodoPage))
	due := entities.MustParseDate("2025-03-20")

	_, err := NewTodoRepository(client, "todo-db").Create(context.Background(), &entities.Todo{
		Name:     "Beli barang",
		Category: entities.CategoryNone,
		DueDate:  &due,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	parent := body["parent"].(map[string]interface{})
	if parent["database_id"] != "todo-db" {
		t.Errorf("parent = %v", parent)
	}
	props := body["properties"].(map[string]interface{})
	if _, ok := props["kategori"]; ok {
		t.Errorf("kategori should be omitted for no category: %v", props["kategori"])
	}
	status := props["status"].(map[string]interface{})["status"].(map[string]interface{})
	if status["name"] != "Not started" {
		t.Errorf("status = %v", status)
	}
	date := props["due date"].(map[string]interface{})["date"].(map[string]interface{})
	if date["start"] != "2025-03-20" {
		t.Errorf("due date = %v", date)
	}
}

func TestTodoRepository_UpdateClearsFields(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(captureBody(t, &body, emptyTodoPage))
	name := "Renamed"
	none := entities.CategoryNone

	_, err := NewTodoRepository(client, "todo-db").Update(context.Background(), "1c0e4f6a8d3b4b6e9a520f2a5d7c1e01", ports.TodoChanges{
		Name:         &name,
		Category:     &none,
		ClearDueDate: true,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	props := body["properties"].(map[string]interface{})
	if sel, ok := props["kategori"].(map[string]interface{}); !ok || sel["select"] != nil {
		t.Errorf("kategori = %v, want select null", props["kategori"])
	}
	if date, ok := props["due date"].(map[string]interface{}); !ok || date["date"] != nil {
		t.Errorf("due date = %v, want date null", props["due date"])
	}
	if _, ok := props["status"]; ok {
		t.Error("status should be untouched")
	}
}

func TestTodoRepository_UpdateRejectsBadID(t *testing.T) {
	client := newTestClient(newMockClient(func(req *http.Request) (*http.Response, error) {
		t.Fatal("no request expected")
		return nil, nil
	}))

	_, err := NewTodoRepository(client, "todo-db").Update(context.Background(), "../databases", ports.TodoChanges{})
	var vErr *entities.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestTodoRepository_ArchiveNotFound(t *testing.T) {
	client := newTestClient(newMockClient(func(req *http.Request) (*http.Response, error) {
		if req.Method != http.MethodPatch {
			t.Errorf("method = %s", req.Method)
		}
		body := `{"object":"error","status":404,"code":"object_not_found","message":"Could not find page"}`
		return jsonResponse(http.StatusNotFound, io.NopCloser(bytes.NewBufferString(body))), nil
	}))

	err := NewTodoRepository(client, "todo-db").Archive(context.Background(), "1c0e4f6a-8d3b-4b6e-9a52-0f2a5d7c1e01")
	if !errors.Is(err, entities.ErrTodoNotFound) {
		t.Fatalf("Archive() error = %v, want ErrTodoNotFound", err)
	}
}
