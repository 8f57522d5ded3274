package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// TodoService handles todo operations
type TodoService struct {
	todoRepo ports.TodoRepository
	location *time.Location
	logger   *logger.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo ports.TodoRepository, location *time.Location, logger *logger.Logger) *TodoService {
	if location == nil {
		location = time.Local
	}
	return &TodoService{
		todoRepo: todoRepo,
		location: location,
		logger:   logger,
	}
}

// ListTodos returns every todo, open ones first, each group newest first
func (s *TodoService) ListTodos(ctx context.Context) ([]*entities.Todo, error) {
	todos, err := s.todoRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	SortTodos(todos)
	return todos, nil
}

// SortTodos orders open todos before done ones, newest creation first.
func SortTodos(todos []*entities.Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		a, b := todos[i], todos[j]
		if a.IsDone() != b.IsDone() {
			return !a.IsDone()
		}
		return a.CreatedTime.After(b.CreatedTime)
	})
}

// AddTodo creates a todo with status Not started
func (s *TodoService) AddTodo(ctx context.Context, req ports.CreateTodoRequest) (*entities.Todo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, entities.NewValidationError("name", "Name is required")
	}

	todo := &entities.Todo{
		Name:     name,
		Status:   entities.TodoStatusNotStarted,
		Category: entities.ParseCategory(req.CategoryName()),
	}

	if strings.TrimSpace(req.DueDate) != "" {
		due, err := entities.ParseDateIn(req.DueDate, s.location)
		if err != nil {
			return nil, entities.NewValidationError("dueDate", "Invalid due date")
		}
		todo.DueDate = &due
	}

	created, err := s.todoRepo.Create(ctx, todo)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Todo created", "todo_id", created.ID, "name", created.Name)
	return created, nil
}

// EditTodo rewrites name, category and due date. An absent category or due
// date clears the field; status changes only when given.
func (s *TodoService) EditTodo(ctx context.Context, req ports.UpdateTodoRequest) (*entities.Todo, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, entities.NewValidationError("name", "Name is required")
	}

	category := entities.ParseCategory(req.CategoryName())
	changes := ports.TodoChanges{
		Name:     &name,
		Category: &category,
	}

	if strings.TrimSpace(req.DueDate) == "" {
		changes.ClearDueDate = true
	} else {
		due, err := entities.ParseDateIn(req.DueDate, s.location)
		if err != nil {
			return nil, entities.NewValidationError("dueDate", "Invalid due date")
		}
		changes.DueDate = &due
	}

	if strings.TrimSpace(req.Status) != "" {
		status, err := entities.ParseTodoStatus(req.Status)
		if err != nil {
			return nil, entities.NewValidationError("status", "Invalid status")
		}
		changes.Status = &status
	}

	updated, err := s.todoRepo.Update(ctx, req.ID, changes)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Todo updated", "todo_id", updated.ID)
	return updated, nil
}

// MarkTodoDone sets status Done
func (s *TodoService) MarkTodoDone(ctx context.Context, id string) (*entities.Todo, error) {
	done := entities.TodoStatusDone
	todo, err := s.todoRepo.Update(ctx, id, ports.TodoChanges{Status: &done})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Todo marked done", "todo_id", todo.ID)
	return todo, nil
}

// MarkTodosDone marks each id done in order and stops at the first failure,
// returning how many succeeded.
func (s *TodoService) MarkTodosDone(ctx context.Context, ids []string) (int, error) {
	for i, id := range ids {
		if _, err := s.MarkTodoDone(ctx, id); err != nil {
			return i, fmt.Errorf("mark %s done: %w", id, err)
		}
	}
	return len(ids), nil
}

// DeleteTodo archives the page
func (s *TodoService) DeleteTodo(ctx context.Context, id string) error {
	if err := s.todoRepo.Archive(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("Todo deleted", "todo_id", id)
	return nil
}
