package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/namorima/notion-todo/internal/client"
	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

type fakeAPI struct {
	client.API

	mu       sync.Mutex
	calls    []string
	years    []int
	password string
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) SetToken(string) {}

func (f *fakeAPI) Login(ctx context.Context, password string) (string, error) {
	if password != f.password {
		return "", &client.APIError{StatusCode: 401, Message: "Password salah! Sila cuba lagi."}
	}
	return "a.b.c", nil
}

func (f *fakeAPI) GetTodos(ctx context.Context) ([]*entities.Todo, error) {
	due := entities.MustParseDate("2025-03-01")
	return []*entities.Todo{
		{ID: "t1", Name: "pay bills", Status: entities.TodoStatusNotStarted, DueDate: &due},
		{ID: "t2", Name: "write report", Status: entities.TodoStatusInProgress},
	}, nil
}

func (f *fakeAPI) GetCalendar(ctx context.Context, year int) (*client.Calendar, error) {
	f.mu.Lock()
	f.years = append(f.years, year)
	f.mu.Unlock()
	return &client.Calendar{
		Events: []*entities.CalendarEvent{
			{ID: "e1", Name: "Trip", Date: entities.DateRange{Start: entities.MustParseDate("2025-03-14")}},
		},
		Holidays: []*entities.Holiday{
			{ID: 1, Date: entities.MustParseDate("2025-03-31"), Name: "Hari Raya Aidilfitri", State: "Kelantan", Year: 2025},
		},
	}, nil
}

func (f *fakeAPI) AddTodo(ctx context.Context, req ports.CreateTodoRequest) (*entities.Todo, error) {
	f.record("add:" + req.Name + ":" + req.DueDate)
	return &entities.Todo{ID: "t3", Name: req.Name}, nil
}

func (f *fakeAPI) DoneTodo(ctx context.Context, id string) error {
	f.record("done-todo:" + id)
	return nil
}

func (f *fakeAPI) DeleteTodo(ctx context.Context, id string) error {
	f.record("delete-todo:" + id)
	return nil
}

func (f *fakeAPI) DoneEvent(ctx context.Context, id string) error {
	f.record("done-event:" + id)
	return nil
}

type memoryStore struct{ token string }

func (m *memoryStore) Load() (string, error) { return m.token, nil }
func (m *memoryStore) Save(t string) error   { m.token = t; return nil }
func (m *memoryStore) Clear() error          { m.token = ""; return nil }

// drive runs cmd and feeds the engine results back into the model,
// skipping spinner and cursor blink messages.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drive(t, m, c)
		}
	case restoredMsg, loadedMsg, mutatedMsg:
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = drive(t, next.(Model), cmd)
	}
	return m
}

func newModel(t *testing.T) (Model, *fakeAPI, *client.Engine) {
	t.Helper()
	api := &fakeAPI{password: "akmal"}
	engine := client.NewEngine(api, &memoryStore{}, time.UTC, logger.NewNop())
	m := New(context.Background(), engine, nil)
	m.input.Cursor.SetMode(cursor.CursorStatic)
	m = drive(t, m, m.restore())
	return m, api, engine
}

func loggedIn(t *testing.T) (Model, *fakeAPI, *client.Engine) {
	t.Helper()
	m, api, engine := newModel(t)
	m = press(t, m, "akmal", "enter")
	if !engine.State().Authenticated {
		t.Fatalf("login failed: %q", m.errText)
	}
	return m, api, engine
}

func TestLoginPrompt(t *testing.T) {
	m, _, engine := newModel(t)
	if m.prompt != promptPassword {
		t.Fatalf("prompt = %v, want password prompt", m.prompt)
	}
	if !strings.Contains(m.View(), "Enter the password") {
		t.Error("login view not rendered")
	}

	m = press(t, m, "wrong", "enter")
	if engine.State().Authenticated {
		t.Fatal("wrong password logged in")
	}
	if m.errText != "Password salah! Sila cuba lagi." || m.prompt != promptPassword {
		t.Errorf("errText = %q prompt = %v", m.errText, m.prompt)
	}

	m = press(t, m, "akmal", "enter")
	if !engine.State().Authenticated || m.prompt != promptNone {
		t.Fatalf("login failed: %q", m.errText)
	}
	if len(engine.State().Todos) != 2 {
		t.Errorf("todos not loaded")
	}
}

func TestFilterKeys(t *testing.T) {
	m, _, engine := loggedIn(t)

	m = press(t, m, "5")
	if engine.State().Filter != client.FilterInProgress {
		t.Errorf("filter = %s", engine.State().Filter)
	}
	if !strings.Contains(m.View(), "write report") || strings.Contains(m.View(), "pay bills") {
		t.Error("in-progress view shows the wrong todos")
	}

	press(t, m, "1")
	if engine.State().Filter != client.FilterAll {
		t.Errorf("filter = %s", engine.State().Filter)
	}
}

func TestDoneAndDeleteTodo(t *testing.T) {
	m, api, engine := loggedIn(t)

	m = press(t, m, "d")
	if len(api.calls) != 1 || api.calls[0] != "done-todo:t1" {
		t.Fatalf("calls = %v", api.calls)
	}
	if m.status != "Todo marked as done" {
		t.Errorf("status = %q", m.status)
	}

	m = press(t, m, "j", "x")
	st := engine.State()
	if st.Modal != client.ModalConfirmDelete || st.ModalTarget != "todo:t2" {
		t.Fatalf("modal = %s %s", st.Modal, st.ModalTarget)
	}

	m = press(t, m, "n")
	if engine.State().Modal != client.ModalNone || len(api.calls) != 1 {
		t.Fatal("cancel did not close the confirmation")
	}

	press(t, m, "x", "y")
	if len(api.calls) != 2 || api.calls[1] != "delete-todo:t2" {
		t.Fatalf("calls = %v", api.calls)
	}
	if engine.State().Modal != client.ModalNone {
		t.Error("modal still open after delete")
	}
}

func TestAddTodo(t *testing.T) {
	m, api, engine := loggedIn(t)

	m = press(t, m, "a")
	if m.prompt != promptTodoName || engine.State().Modal != client.ModalAddTodo {
		t.Fatalf("prompt = %v modal = %s", m.prompt, engine.State().Modal)
	}

	m = press(t, m, "enter")
	if m.errText != "Name is required" {
		t.Errorf("errText = %q", m.errText)
	}

	m = press(t, m, "buy milk", "enter", "tomorrow", "enter")
	if m.errText != "Due date must be YYYY-MM-DD" || m.prompt != promptTodoDue {
		t.Fatalf("errText = %q prompt = %v", m.errText, m.prompt)
	}

	m.input.SetValue("")
	m = press(t, m, "2025-03-20", "enter")
	if len(api.calls) != 1 || api.calls[0] != "add:buy milk:2025-03-20" {
		t.Fatalf("calls = %v", api.calls)
	}
	if m.prompt != promptNone || engine.State().Modal != client.ModalNone {
		t.Error("add prompt still open")
	}
}

func TestCalendarNavigation(t *testing.T) {
	m, api, engine := loggedIn(t)
	m = press(t, m, "tab")
	if m.tab != tabCalendar {
		t.Fatalf("tab = %v", m.tab)
	}

	st := engine.State()
	m = press(t, m, "]")
	next := engine.State()
	wantYear, wantMonth := st.Year, st.Month+1
	if st.Month == time.December {
		wantYear, wantMonth = st.Year+1, time.January
	}
	if next.Year != wantYear || next.Month != wantMonth {
		t.Fatalf("month = %d-%s, want %d-%s", next.Year, next.Month, wantYear, wantMonth)
	}
	if m.day != entities.NewDate(wantYear, wantMonth, 1) {
		t.Errorf("day cursor = %s", m.day)
	}

	m = press(t, m, "enter")
	if sel := engine.State().SelectedDate; sel == nil || *sel != m.day {
		t.Errorf("selected = %v, want %s", sel, m.day)
	}
	m = press(t, m, "esc")
	if engine.State().SelectedDate != nil {
		t.Error("esc did not clear the date")
	}

	before := len(api.years)
	for i := 0; i < 12; i++ {
		m = press(t, m, "]")
	}
	if len(api.years) != before+1 {
		t.Errorf("crossing one year boundary reloaded %d times", len(api.years)-before)
	}
}

func TestCalendarListDone(t *testing.T) {
	m, api, engine := loggedIn(t)

	m = press(t, m, "tab")
	engine.Apply(func(s *client.State) {
		s.Year, s.Month = 2025, time.March
	})
	m.day = entities.NewDate(2025, time.March, 1)

	m = press(t, m, "d")
	if len(api.calls) != 0 || !strings.Contains(m.status, "list view") {
		t.Fatalf("grid view accepted done: %v %q", api.calls, m.status)
	}

	m = press(t, m, "v", "d")
	if engine.State().View != client.ViewList {
		t.Fatal("view not toggled")
	}
	if len(api.calls) != 1 || api.calls[0] != "done-event:e1" {
		t.Fatalf("calls = %v", api.calls)
	}
	if !strings.Contains(m.View(), "Trip") {
		t.Error("event list not rendered")
	}
}

func TestHolidaysTab(t *testing.T) {
	m, _, engine := loggedIn(t)
	engine.Apply(func(s *client.State) { s.Year = 2025 })

	m = press(t, m, "tab", "tab")
	if m.tab != tabHolidays {
		t.Fatalf("tab = %v", m.tab)
	}
	if !strings.Contains(m.View(), "Hari Raya Aidilfitri") {
		t.Error("holiday not listed")
	}
}
