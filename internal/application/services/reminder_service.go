package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// Reminders splits open todos by urgency.
type Reminders struct {
	Today   []*entities.Todo
	Overdue []*entities.Todo
}

// Empty reports whether nothing needs attention.
func (r Reminders) Empty() bool {
	return len(r.Today) == 0 && len(r.Overdue) == 0
}

// CollectReminders picks the open todos due on today or before it.
func CollectReminders(todos []*entities.Todo, today entities.Date) Reminders {
	var r Reminders
	for _, t := range todos {
		switch {
		case t.IsDueOn(today):
			r.Today = append(r.Today, t)
		case t.IsOverdue(today):
			r.Overdue = append(r.Overdue, t)
		}
	}
	return r
}

// Message renders the reminder text used by the console and notifications.
func (r Reminders) Message() string {
	var b strings.Builder
	for _, t := range r.Today {
		fmt.Fprintf(&b, "⏰ Due today: %s\n", t.Name)
	}
	for _, t := range r.Overdue {
		fmt.Fprintf(&b, "🚨 Overdue: %s (due %s)\n", t.Name, t.DueDateLabel())
	}
	return b.String()
}

// ReminderService publishes due and overdue todos
type ReminderService struct {
	todoRepo ports.TodoRepository
	notifier ports.Notifier
	location *time.Location
	logger   *logger.Logger
	now      func() time.Time
}

// NewReminderService creates a new reminder service. notifier may be nil
// when only Due is used.
func NewReminderService(todoRepo ports.TodoRepository, notifier ports.Notifier, location *time.Location, logger *logger.Logger) *ReminderService {
	if location == nil {
		location = time.Local
	}
	return &ReminderService{
		todoRepo: todoRepo,
		notifier: notifier,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// Due returns today's reminders
func (s *ReminderService) Due(ctx context.Context) (Reminders, error) {
	todos, err := s.todoRepo.List(ctx)
	if err != nil {
		return Reminders{}, err
	}
	return CollectReminders(todos, entities.Today(s.now(), s.location)), nil
}

// Notify publishes today's reminders. It sends nothing when none are due and
// reports whether a message went out.
func (s *ReminderService) Notify(ctx context.Context) (bool, error) {
	if s.notifier == nil {
		return false, fmt.Errorf("no notifier configured")
	}

	r, err := s.Due(ctx)
	if err != nil {
		return false, err
	}
	if r.Empty() {
		s.logger.Infow("No reminders to send")
		return false, nil
	}

	subject := fmt.Sprintf("Todo reminder: %d due today, %d overdue", len(r.Today), len(r.Overdue))
	if err := s.notifier.Publish(ctx, subject, r.Message()); err != nil {
		return false, err
	}

	s.logger.Infow("Reminders sent", "due_today", len(r.Today), "overdue", len(r.Overdue))
	return true, nil
}
