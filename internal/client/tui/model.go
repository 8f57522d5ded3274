// Package tui is the interactive terminal front end over client.Engine.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/namorima/notion-todo/internal/client"
	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/ports"
)

type tab int

const (
	tabTodos tab = iota
	tabCalendar
	tabHolidays
)

var tabNames = []string{"Todos", "Calendar", "Holidays"}

type prompt int

const (
	promptNone prompt = iota
	promptPassword
	promptTodoName
	promptTodoDue
)

type (
	restoredMsg struct{ err error }
	loadedMsg   struct{ err error }
	mutatedMsg  struct {
		what string
		err  error
	}
)

// Model is the bubbletea model. All data lives in the engine; the model
// only keeps cursors and input.
type Model struct {
	engine  *client.Engine
	ctx     context.Context
	weekend []time.Weekday

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	input   textinput.Model

	tab      tab
	prompt   prompt
	draft    ports.CreateTodoRequest
	todoIdx  int
	eventIdx int
	day      entities.Date

	busy    bool
	status  string
	errText string
	width   int
}

func New(ctx context.Context, engine *client.Engine, weekend []time.Weekday) Model {
	if len(weekend) == 0 {
		weekend = client.DefaultWeekend
	}

	in := textinput.New()
	in.Prompt = "> "
	in.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	return Model{
		engine:  engine,
		ctx:     ctx,
		weekend: weekend,
		keys:    defaultKeys(),
		help:    help.New(),
		spinner: sp,
		input:   in,
		day:     engine.Today(),
		busy:    true,
		width:   80,
	}
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctx context.Context, engine *client.Engine, weekend []time.Weekday) error {
	p := tea.NewProgram(New(ctx, engine, weekend), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.restore())
}

func (m Model) restore() tea.Cmd {
	return func() tea.Msg { return restoredMsg{err: m.engine.Restore(m.ctx)} }
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg { return loadedMsg{err: m.engine.Load(m.ctx)} }
}

func (m Model) login(password string) tea.Cmd {
	return func() tea.Msg { return loadedMsg{err: m.engine.Login(m.ctx, password)} }
}

func (m Model) changeMonth(delta int) tea.Cmd {
	return func() tea.Msg { return loadedMsg{err: m.engine.ChangeMonth(m.ctx, delta)} }
}

func (m Model) mutate(id, what string, fn func(context.Context, client.API) error) tea.Cmd {
	return func() tea.Msg { return mutatedMsg{what: what, err: m.engine.Mutate(m.ctx, id, fn)} }
}

// start marks the model busy while cmd runs.
func (m Model) start(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.busy = true
	m.errText = ""
	m.status = ""
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) askPassword() Model {
	m.prompt = promptPassword
	m.input.SetValue("")
	m.input.Placeholder = "Password"
	m.input.EchoMode = textinput.EchoPassword
	m.input.EchoCharacter = '•'
	m.input.Focus()
	return m
}

func (m Model) askTodo() Model {
	m.prompt = promptTodoName
	m.draft = ports.CreateTodoRequest{}
	m.input.SetValue("")
	m.input.Placeholder = "What needs doing?"
	m.input.EchoMode = textinput.EchoNormal
	m.input.Focus()
	return m
}

func (m Model) closePrompt() Model {
	m.prompt = promptNone
	m.input.SetValue("")
	m.input.EchoMode = textinput.EchoNormal
	m.input.Blur()
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case restoredMsg:
		m.busy = false
		if msg.err != nil {
			if !isTokenProblem(msg.err) {
				m.errText = errorText(msg.err)
			}
			return m.askPassword(), textinput.Blink
		}
		m.clampCursors()
		return m, nil

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = errorText(msg.err)
			if !m.engine.State().Authenticated {
				return m.askPassword(), textinput.Blink
			}
			return m, nil
		}
		m.clampCursors()
		return m, nil

	case mutatedMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = errorText(msg.err)
			m.engine.Apply(func(s *client.State) { s.CloseModal() })
			if errors.Is(msg.err, client.ErrUnauthorized) {
				return m.askPassword(), textinput.Blink
			}
			return m, nil
		}
		m.status = msg.what
		m.clampCursors()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		if m.busy {
			return m, nil
		}

		st := m.engine.State()
		if st.Modal == client.ModalConfirmDelete {
			return m.updateConfirm(msg, st)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tab(len(tabNames))
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			return m.start(m.load())
		case key.Matches(msg, m.keys.Logout):
			if err := m.engine.Logout(); err != nil {
				m.errText = errorText(err)
			}
			return m.askPassword(), textinput.Blink
		}

		switch m.tab {
		case tabTodos:
			return m.updateTodos(msg, st)
		case tabCalendar:
			return m.updateCalendar(msg, st)
		default:
			return m.updateHolidays(msg, st)
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.prompt == promptPassword {
			return m, tea.Quit
		}
		m.engine.Apply(func(s *client.State) { s.CloseModal() })
		return m.closePrompt(), nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		switch m.prompt {
		case promptPassword:
			if value == "" {
				m.errText = "Password is required"
				return m, nil
			}
			return m.closePrompt().start(m.login(value))

		case promptTodoName:
			if value == "" {
				m.errText = "Name is required"
				return m, nil
			}
			m.errText = ""
			m.draft.Name = value
			m.prompt = promptTodoDue
			m.input.SetValue("")
			m.input.Placeholder = "Due date YYYY-MM-DD (optional)"
			return m, nil

		case promptTodoDue:
			if value != "" {
				if _, err := entities.ParseDate(value); err != nil {
					m.errText = "Due date must be YYYY-MM-DD"
					return m, nil
				}
			}
			req := m.draft
			req.DueDate = value
			return m.closePrompt().start(m.mutate("add-todo", "Todo added", func(ctx context.Context, api client.API) error {
				_, err := api.AddTodo(ctx, req)
				return err
			}))
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg, st client.State) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		target := st.ModalTarget
		kind, id, _ := strings.Cut(target, ":")
		switch kind {
		case "todo":
			return m.start(m.mutate(target, "Todo deleted", func(ctx context.Context, api client.API) error {
				return api.DeleteTodo(ctx, id)
			}))
		case "event":
			return m.start(m.mutate(target, "Event deleted", func(ctx context.Context, api client.API) error {
				return api.DeleteEvent(ctx, id)
			}))
		}
		m.engine.Apply(func(s *client.State) { s.CloseModal() })
	case key.Matches(msg, m.keys.Cancel):
		m.engine.Apply(func(s *client.State) { s.CloseModal() })
	}
	return m, nil
}

func (m Model) updateTodos(msg tea.KeyMsg, st client.State) (tea.Model, tea.Cmd) {
	visible := client.FilterTodos(st.Todos, st.Filter, m.engine.Today())

	switch {
	case key.Matches(msg, m.keys.Filter):
		if len(msg.Runes) == 1 {
			f := client.Filters[int(msg.Runes[0]-'1')]
			m.engine.Apply(func(s *client.State) { s.SetFilter(f) })
			m.todoIdx = 0
		}
	case key.Matches(msg, m.keys.Up):
		if m.todoIdx > 0 {
			m.todoIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.todoIdx < len(visible)-1 {
			m.todoIdx++
		}
	case key.Matches(msg, m.keys.Add):
		m.engine.Apply(func(s *client.State) { s.OpenModal(client.ModalAddTodo, "") })
		return m.askTodo(), textinput.Blink
	case key.Matches(msg, m.keys.Done):
		if t := pick(visible, m.todoIdx); t != nil && !t.IsDone() {
			id := t.ID
			return m.start(m.mutate("todo:"+id, "Todo marked as done", func(ctx context.Context, api client.API) error {
				return api.DoneTodo(ctx, id)
			}))
		}
	case key.Matches(msg, m.keys.Delete):
		if t := pick(visible, m.todoIdx); t != nil {
			m.engine.Apply(func(s *client.State) { s.OpenModal(client.ModalConfirmDelete, "todo:"+t.ID) })
		}
	}
	return m, nil
}

func (m Model) updateCalendar(msg tea.KeyMsg, st client.State) (tea.Model, tea.Cmd) {
	events := client.EventList(st.Events, st.SelectedDate, st.Year, st.Month, m.engine.Today())
	listView := st.View == client.ViewList

	switch {
	case key.Matches(msg, m.keys.PrevMon):
		return m.moveMonth(st, -1)
	case key.Matches(msg, m.keys.NextMon):
		return m.moveMonth(st, 1)
	case key.Matches(msg, m.keys.View):
		next := client.ViewList
		if listView {
			next = client.ViewGrid
		}
		m.engine.Apply(func(s *client.State) { s.SetView(next) })
	case key.Matches(msg, m.keys.Select):
		day := m.day
		m.engine.Apply(func(s *client.State) { s.SelectDate(day) })
		m.eventIdx = 0
	case key.Matches(msg, m.keys.Clear):
		m.engine.Apply(func(s *client.State) { s.ClearDate() })
		m.eventIdx = 0
	case key.Matches(msg, m.keys.Left):
		return m.moveDay(st, -1)
	case key.Matches(msg, m.keys.Right):
		return m.moveDay(st, 1)
	case key.Matches(msg, m.keys.Up):
		if listView {
			if m.eventIdx > 0 {
				m.eventIdx--
			}
			return m, nil
		}
		return m.moveDay(st, -7)
	case key.Matches(msg, m.keys.Down):
		if listView {
			if m.eventIdx < len(events)-1 {
				m.eventIdx++
			}
			return m, nil
		}
		return m.moveDay(st, 7)
	case key.Matches(msg, m.keys.Done), key.Matches(msg, m.keys.Delete):
		if !listView {
			m.status = "Switch to the list view (v) to change events"
			return m, nil
		}
		e := pick(events, m.eventIdx)
		if e == nil {
			return m, nil
		}
		id := e.ID
		if key.Matches(msg, m.keys.Delete) {
			m.engine.Apply(func(s *client.State) { s.OpenModal(client.ModalConfirmDelete, "event:"+id) })
			return m, nil
		}
		if !e.Done {
			return m.start(m.mutate("event:"+id, "Event marked as done", func(ctx context.Context, api client.API) error {
				return api.DoneEvent(ctx, id)
			}))
		}
	}
	return m, nil
}

func (m Model) updateHolidays(msg tea.KeyMsg, st client.State) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.PrevYr):
		return m.moveMonth(st, -12)
	case key.Matches(msg, m.keys.NextYr):
		return m.moveMonth(st, 12)
	}
	return m, nil
}

// moveMonth shifts the displayed month and puts the day cursor on its first.
func (m Model) moveMonth(st client.State, delta int) (tea.Model, tea.Cmd) {
	next := st
	next.ChangeMonth(delta)
	m.day = entities.NewDate(next.Year, next.Month, 1)
	m.eventIdx = 0
	m.engine.Apply(func(s *client.State) { s.ClearDate() })
	return m.start(m.changeMonth(delta))
}

// moveDay moves the day cursor, following it into the next or previous month.
func (m Model) moveDay(st client.State, days int) (tea.Model, tea.Cmd) {
	day := m.day.AddDays(days)
	delta := (day.Year-st.Year)*12 + int(day.Month) - int(st.Month)
	if delta == 0 {
		m.day = day
		return m, nil
	}
	model, cmd := m.moveMonth(st, delta)
	next := model.(Model)
	next.day = day
	return next, cmd
}

func (m *Model) clampCursors() {
	st := m.engine.State()
	if n := len(client.FilterTodos(st.Todos, st.Filter, m.engine.Today())); m.todoIdx >= n {
		m.todoIdx = max(n-1, 0)
	}
	if n := len(client.EventList(st.Events, st.SelectedDate, st.Year, st.Month, m.engine.Today())); m.eventIdx >= n {
		m.eventIdx = max(n-1, 0)
	}
	if m.day.Year != st.Year || m.day.Month != st.Month {
		m.day = entities.NewDate(st.Year, st.Month, 1)
	}
}

func pick[T any](list []*T, i int) *T {
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}

func isTokenProblem(err error) bool {
	return errors.Is(err, client.ErrNoToken) ||
		errors.Is(err, client.ErrTokenExpired) ||
		errors.Is(err, client.ErrTokenInvalid) ||
		errors.Is(err, client.ErrUnauthorized)
}

func errorText(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, client.ErrUnauthorized):
		return "Session expired, please log in again"
	default:
		return err.Error()
	}
}
