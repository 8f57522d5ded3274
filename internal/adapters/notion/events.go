package notion

import (
	"context"
	"fmt"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// Column names of the calendar database. Cuti is the done checkbox.
const (
	eventPropName     = "Name"
	eventPropDate     = "Date"
	eventPropLocation = "Location"
	eventPropTags     = "Tags"
	eventPropDone     = "Cuti"
)

// EventRepository implements ports.EventRepository on a Notion database
type EventRepository struct {
	client     *Client
	databaseID string
	logger     *logger.Logger
}

// NewEventRepository creates a calendar event repository
func NewEventRepository(client *Client, databaseID string, log *logger.Logger) ports.EventRepository {
	return &EventRepository{
		client:     client,
		databaseID: databaseID,
		logger:     log.WithComponent("event_repository"),
	}
}

func (r *EventRepository) List(ctx context.Context) ([]*entities.CalendarEvent, error) {
	pages, err := r.client.QueryAll(ctx, r.databaseID, Query{
		Sorts: []Sort{{Property: eventPropDate, Direction: "descending"}},
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]*entities.CalendarEvent, 0, len(pages))
	for _, p := range pages {
		ev, ok := r.parse(p)
		if !ok {
			r.logger.Debugw("Skipping event without a start date", "page_id", p.ID)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func (r *EventRepository) Create(ctx context.Context, event *entities.CalendarEvent) (*entities.CalendarEvent, error) {
	props := Properties{
		eventPropName: titleValue(event.Name),
		eventPropDate: dateValue(&event.Date.Start, event.Date.End),
		eventPropDone: checkboxValue(event.Done),
	}
	if event.Location != "" {
		props[eventPropLocation] = richTextValue(event.Location)
	}
	if len(event.Tags) > 0 {
		props[eventPropTags] = multiSelectValue(event.Tags)
	}

	page, err := r.client.CreatePage(ctx, r.databaseID, props)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	created, ok := r.parse(*page)
	if !ok {
		return event, nil
	}
	return created, nil
}

func (r *EventRepository) Update(ctx context.Context, id string, changes ports.EventChanges) (*entities.CalendarEvent, error) {
	props := Properties{}
	if changes.Name != nil {
		props[eventPropName] = titleValue(*changes.Name)
	}
	if changes.Date != nil {
		props[eventPropDate] = dateValue(&changes.Date.Start, changes.Date.End)
	}
	if changes.Location != nil {
		props[eventPropLocation] = richTextValue(*changes.Location)
	}
	if changes.Tags != nil {
		props[eventPropTags] = multiSelectValue(*changes.Tags)
	}
	if changes.Done != nil {
		props[eventPropDone] = checkboxValue(*changes.Done)
	}

	page, err := r.client.UpdatePage(ctx, id, props)
	if err != nil {
		if isNotFound(err) {
			return nil, entities.ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	updated, ok := r.parse(*page)
	if !ok {
		return nil, fmt.Errorf("update event: page %s has no date", page.ID)
	}
	return updated, nil
}

func (r *EventRepository) Archive(ctx context.Context, id string) error {
	if err := r.client.ArchivePage(ctx, id); err != nil {
		if isNotFound(err) {
			return entities.ErrEventNotFound
		}
		return fmt.Errorf("archive event: %w", err)
	}
	return nil
}

func (r *EventRepository) parse(p Page) (*entities.CalendarEvent, bool) {
	dr, ok := p.dateRange(eventPropDate, r.client.Location())
	if !ok {
		return nil, false
	}

	ev := &entities.CalendarEvent{
		ID:       p.ID,
		Name:     p.title(eventPropName),
		Date:     dr,
		Location: p.text(eventPropLocation),
		Tags:     p.multiSelect(eventPropTags),
		Done:     p.checkbox(eventPropDone),
	}
	if ev.Name == "" {
		ev.Name = "Untitled"
	}
	return ev, true
}
