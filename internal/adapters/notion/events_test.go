package notion

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

func TestEventRepository_List(t *testing.T) {
	client := newTestClient(newMockClient(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, mustLoadJSONFile(t, "testdata/events.json")), nil
	}))

	events, err := NewEventRepository(client, "cal-db", logger.NewNop()).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2 (event without date skipped)", len(events))
	}

	kenduri := events[0]
	if kenduri.Name != "Kenduri" || kenduri.Location != "Kota Bharu" || !kenduri.Done {
		t.Errorf("event = %+v", kenduri)
	}
	if !reflect.DeepEqual(kenduri.Tags, []string{"keluarga", "jalan"}) {
		t.Errorf("tags = %v", kenduri.Tags)
	}
	if kenduri.Date.End == nil || kenduri.Date.End.String() != "2025-03-12" {
		t.Errorf("range = %v", kenduri.Date)
	}

	bad := events[1]
	if bad.Date.End != nil {
		t.Errorf("reversed end should be dropped, got %v", bad.Date)
	}
	if bad.Tags == nil || len(bad.Tags) != 0 {
		t.Errorf("tags = %#v, want empty", bad.Tags)
	}
}

func TestEventRepository_UpdateWritesExplicitEmpties(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(captureBody(t, &body, `{"id":"2d1f5a7b-9e4c-4c7f-8b63-1a3b6e8d2f01","properties":{"Date":{"date":{"start":"2025-05-01"}}}}`))

	name := "Mesyuarat"
	loc := ""
	tags := []string{}
	done := false
	dr, _ := entities.NewDateRange(entities.MustParseDate("2025-05-01"), nil)

	_, err := NewEventRepository(client, "cal-db", logger.NewNop()).Update(context.Background(), "2d1f5a7b-9e4c-4c7f-8b63-1a3b6e8d2f01", ports.EventChanges{
		Name:     &name,
		Date:     &dr,
		Location: &loc,
		Tags:     &tags,
		Done:     &done,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	props := body["properties"].(map[string]interface{})
	rt := props["Location"].(map[string]interface{})["rich_text"].([]interface{})
	if len(rt) != 0 {
		t.Errorf("Location rich_text = %v, want []", rt)
	}
	ms := props["Tags"].(map[string]interface{})["multi_select"].([]interface{})
	if len(ms) != 0 {
		t.Errorf("Tags multi_select = %v, want []", ms)
	}
	if props["Cuti"].(map[string]interface{})["checkbox"] != false {
		t.Errorf("Cuti = %v", props["Cuti"])
	}
	date := props["Date"].(map[string]interface{})["date"].(map[string]interface{})
	if _, hasEnd := date["end"]; hasEnd {
		t.Errorf("single-day date should have no end: %v", date)
	}
}

func TestEventRepository_CreateOmitsEmptyOptionalFields(t *testing.T) {
	var body map[string]interface{}
	client := newTestClient(captureBody(t, &body, `{"id":"2d1f5a7b-9e4c-4c7f-8b63-1a3b6e8d2f05","properties":{"Name":{"title":[{"plain_text":"Cuti"}]},"Date":{"date":{"start":"2025-06-01"}}}}`))

	dr, _ := entities.NewDateRange(entities.MustParseDate("2025-06-01"), nil)
	created, err := NewEventRepository(client, "cal-db", logger.NewNop()).Create(context.Background(), &entities.CalendarEvent{
		Name: "Cuti",
		Date: dr,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != "2d1f5a7b-9e4c-4c7f-8b63-1a3b6e8d2f05" {
		t.Errorf("created id = %q", created.ID)
	}

	props := body["properties"].(map[string]interface{})
	for _, key := range []string{"Location", "Tags"} {
		if _, ok := props[key]; ok {
			t.Errorf("%s should be omitted on create when empty", key)
		}
	}
	if props["Cuti"].(map[string]interface{})["checkbox"] != false {
		t.Errorf("Cuti should default to false")
	}
}
