package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// TodoHandler handles todo requests
type TodoHandler struct {
	todoService ports.TodoService
	location    *time.Location
	logger      *logger.Logger
	now         func() time.Time
}

// NewTodoHandler creates a new todo handler. location decides which day
// counts as today for the overdue flag.
func NewTodoHandler(todoService ports.TodoService, location *time.Location, logger *logger.Logger) *TodoHandler {
	if location == nil {
		location = time.Local
	}
	return &TodoHandler{
		todoService: todoService,
		location:    location,
		logger:      logger,
		now:         time.Now,
	}
}

// TodoList is the data of get-todos
type TodoList struct {
	Todos []TodoView `json:"todos"`
}

// GetTodos godoc
// @Summary List todos
// @Description Open todos first, each group newest first, with display fields
// @Tags todos
// @Produce json
// @Success 200 {object} Envelope{data=TodoList}
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Security BearerAuth
// @Router /get-todos [get]
func (h *TodoHandler) GetTodos(c echo.Context) error {
	todos, err := h.todoService.ListTodos(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List todos failed", "error", err)
		return upstreamFailure(err, "Failed to fetch todos")
	}

	return ok(c, TodoList{Todos: todoViews(todos, today(h.now, h.location))})
}

// AddTodo godoc
// @Summary Create a todo
// @Tags todos
// @Accept json
// @Produce json
// @Param request body ports.CreateTodoRequest true "Todo"
// @Success 200 {object} Envelope{data=TodoView}
// @Failure 400 {object} Envelope
// @Security BearerAuth
// @Router /add-todo [post]
func (h *TodoHandler) AddTodo(c echo.Context) error {
	var req ports.CreateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	todo, err := h.todoService.AddTodo(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Add todo failed", "error", err)
		return upstreamFailure(err, "Failed to add todo")
	}

	return ok(c, NewTodoView(todo, today(h.now, h.location)))
}

// EditTodo godoc
// @Summary Rewrite a todo
// @Description An omitted kategori or dueDate clears the field
// @Tags todos
// @Accept json
// @Produce json
// @Param request body ports.UpdateTodoRequest true "Todo"
// @Success 200 {object} Envelope{data=TodoView}
// @Failure 400 {object} Envelope
// @Failure 404 {object} Envelope
// @Security BearerAuth
// @Router /edit-todo [put]
func (h *TodoHandler) EditTodo(c echo.Context) error {
	var req ports.UpdateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, MsgInvalidRequest)
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	todo, err := h.todoService.EditTodo(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Edit todo failed", "error", err, "todo_id", req.ID)
		return upstreamFailure(err, "Failed to update todo")
	}

	return ok(c, NewTodoView(todo, today(h.now, h.location)))
}

// DoneTodo marks a todo as Done
func (h *TodoHandler) DoneTodo(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}

	todo, err := h.todoService.MarkTodoDone(c.Request().Context(), id)
	if err != nil {
		h.logger.Errorw("Mark todo done failed", "error", err, "todo_id", id)
		return upstreamFailure(err, "Failed to mark todo as done")
	}

	return ok(c, NewTodoView(todo, today(h.now, h.location)))
}

// DeleteTodo archives a todo
func (h *TodoHandler) DeleteTodo(c echo.Context) error {
	id, err := bindID(c)
	if err != nil {
		return err
	}

	if err := h.todoService.DeleteTodo(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete todo failed", "error", err, "todo_id", id)
		return upstreamFailure(err, "Failed to delete todo")
	}

	return okWithMessage(c, map[string]string{"id": id}, "Todo deleted successfully")
}
