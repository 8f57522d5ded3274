package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

func newTestCalendar(events *fakeEventRepo, holidays ports.HolidayService) *CalendarService {
	svc := NewCalendarService(events, holidays, "Kelantan", time.UTC, logger.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCalendarService_GetCalendar(t *testing.T) {
	events := &fakeEventRepo{events: []*entities.CalendarEvent{{ID: "e1", Name: "Kenduri"}}}
	holidays := &fakeHolidayService{list: []*entities.Holiday{{ID: 1, Name: "Hari Raya"}}}

	snap, err := newTestCalendar(events, holidays).GetCalendar(context.Background(), 0)
	if err != nil {
		t.Fatalf("GetCalendar() error = %v", err)
	}
	if len(snap.Events) != 1 || len(snap.Holidays) != 1 || snap.HolidayError != nil {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestCalendarService_HolidayFailureDegrades(t *testing.T) {
	events := &fakeEventRepo{events: []*entities.CalendarEvent{{ID: "e1"}}}
	holidays := &fakeHolidayService{err: errors.New("connection refused")}

	snap, err := newTestCalendar(events, holidays).GetCalendar(context.Background(), 2025)
	if err != nil {
		t.Fatalf("GetCalendar() error = %v", err)
	}
	if snap.HolidayError == nil {
		t.Error("HolidayError not set")
	}
	if snap.Holidays == nil || len(snap.Holidays) != 0 {
		t.Errorf("holidays = %#v, want empty list", snap.Holidays)
	}
	if len(snap.Events) != 1 {
		t.Errorf("events = %v", snap.Events)
	}
}

func TestCalendarService_EventFailureFails(t *testing.T) {
	upstream := &entities.UpstreamError{Service: "notion", StatusCode: 502}
	events := &fakeEventRepo{listErr: upstream}

	_, err := newTestCalendar(events, &fakeHolidayService{}).GetCalendar(context.Background(), 2025)
	if !errors.Is(err, upstream) {
		t.Fatalf("GetCalendar() error = %v", err)
	}
}

func TestCalendarService_AddEvent(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestCalendar(events, nil)

	_, err := svc.AddEvent(context.Background(), ports.CreateEventRequest{
		Name:      "Kenduri",
		DateStart: "2025-03-10",
		DateEnd:   "2025-03-12",
		Tags:      ports.TagList{"keluarga"},
	})
	if err != nil {
		t.Fatalf("AddEvent() error = %v", err)
	}
	c := events.created
	if c.Done {
		t.Error("done should default to false")
	}
	if c.Date.Days() != 3 {
		t.Errorf("range = %v", c.Date)
	}
}

func TestCalendarService_AddEventValidation(t *testing.T) {
	svc := newTestCalendar(&fakeEventRepo{}, nil)

	tests := []struct {
		name  string
		req   ports.CreateEventRequest
		field string
	}{
		{"missing name", ports.CreateEventRequest{DateStart: "2025-03-10"}, "name"},
		{"missing start", ports.CreateEventRequest{Name: "x"}, "dateStart"},
		{"reversed", ports.CreateEventRequest{Name: "x", DateStart: "2025-03-10", DateEnd: "2025-03-01"}, "dateEnd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddEvent(context.Background(), tt.req)
			var vErr *entities.ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tt.field {
				t.Fatalf("AddEvent() error = %v, want validation on %s", err, tt.field)
			}
		})
	}
}

func TestCalendarService_EditEventEmptiesOmittedFields(t *testing.T) {
	events := &fakeEventRepo{}
	svc := newTestCalendar(events, nil)

	_, err := svc.EditEvent(context.Background(), ports.UpdateEventRequest{ID: "e1", Name: "x", DateStart: "2025-03-10"})
	if err != nil {
		t.Fatalf("EditEvent() error = %v", err)
	}

	ch := events.changes
	if ch.Location == nil || *ch.Location != "" {
		t.Errorf("location = %v", ch.Location)
	}
	if ch.Tags == nil || len(*ch.Tags) != 0 {
		t.Errorf("tags = %v", ch.Tags)
	}
	if ch.Done == nil || *ch.Done {
		t.Errorf("done = %v", ch.Done)
	}
}
