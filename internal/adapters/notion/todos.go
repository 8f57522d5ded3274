package notion

import (
	"context"
	"fmt"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/ports"
)

// Column names of the task database.
const (
	todoPropName     = "name"
	todoPropStatus   = "status"
	todoPropCategory = "kategori"
	todoPropDueDate  = "due date"
)

// TodoRepository implements ports.TodoRepository on a Notion database
type TodoRepository struct {
	client     *Client
	databaseID string
}

// NewTodoRepository creates a todo repository
func NewTodoRepository(client *Client, databaseID string) ports.TodoRepository {
	return &TodoRepository{client: client, databaseID: databaseID}
}

func (r *TodoRepository) List(ctx context.Context) ([]*entities.Todo, error) {
	pages, err := r.client.QueryAll(ctx, r.databaseID, Query{
		Sorts: []Sort{{Property: todoPropDueDate, Direction: "ascending"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	todos := make([]*entities.Todo, 0, len(pages))
	for _, p := range pages {
		todos = append(todos, r.parse(p))
	}
	return todos, nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *entities.Todo) (*entities.Todo, error) {
	status := todo.Status
	if status == "" {
		status = entities.TodoStatusNotStarted
	}

	props := Properties{
		todoPropName:   titleValue(todo.Name),
		todoPropStatus: statusValue(string(status)),
	}
	if !todo.Category.IsNone() {
		props[todoPropCategory] = selectValue(string(todo.Category))
	}
	if todo.DueDate != nil {
		props[todoPropDueDate] = dateValue(todo.DueDate, nil)
	}

	page, err := r.client.CreatePage(ctx, r.databaseID, props)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return r.parse(*page), nil
}

func (r *TodoRepository) Update(ctx context.Context, id string, changes ports.TodoChanges) (*entities.Todo, error) {
	props := Properties{}
	if changes.Name != nil {
		props[todoPropName] = titleValue(*changes.Name)
	}
	if changes.Status != nil {
		props[todoPropStatus] = statusValue(string(*changes.Status))
	}
	if changes.Category != nil {
		name := ""
		if !changes.Category.IsNone() {
			name = string(*changes.Category)
		}
		props[todoPropCategory] = selectValue(name)
	}
	switch {
	case changes.ClearDueDate:
		props[todoPropDueDate] = dateValue(nil, nil)
	case changes.DueDate != nil:
		props[todoPropDueDate] = dateValue(changes.DueDate, nil)
	}

	page, err := r.client.UpdatePage(ctx, id, props)
	if err != nil {
		if isNotFound(err) {
			return nil, entities.ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return r.parse(*page), nil
}

func (r *TodoRepository) Archive(ctx context.Context, id string) error {
	if err := r.client.ArchivePage(ctx, id); err != nil {
		if isNotFound(err) {
			return entities.ErrTodoNotFound
		}
		return fmt.Errorf("archive todo: %w", err)
	}
	return nil
}

// parse resolves every default once, at the adapter boundary.
func (r *TodoRepository) parse(p Page) *entities.Todo {
	todo := &entities.Todo{
		ID:          p.ID,
		Name:        p.title(todoPropName),
		Status:      entities.TodoStatus(p.statusName(todoPropStatus)),
		Category:    entities.ParseCategory(p.selectName(todoPropCategory)),
		CreatedTime: p.CreatedTime,
	}
	if todo.Name == "" {
		todo.Name = "Untitled"
	}
	if todo.Status == "" {
		todo.Status = entities.TodoStatusNotStarted
	}
	if due, ok := p.dateRange(todoPropDueDate, r.client.Location()); ok {
		start := due.Start
		todo.DueDate = &start
	}
	return todo
}
