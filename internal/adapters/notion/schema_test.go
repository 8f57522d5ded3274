package notion

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestPage_DecodesSelectValues(t *testing.T) {
	raw := `{
		"id": "p1",
		"properties": {
			"status": {"type": "status", "status": {"name": "In progress"}},
			"kategori": {"type": "select", "select": {"name": "Segera"}},
			"Tags": {"type": "multi_select", "multi_select": [{"name": "work"}, {"name": "travel"}]},
			"empty": {"type": "select", "select": null}
		}
	}`

	var p Page
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if got := p.statusName("status"); got != "In progress" {
		t.Errorf("statusName() = %q", got)
	}
	if got := p.selectName("kategori"); got != "Segera" {
		t.Errorf("selectName() = %q", got)
	}
	if got := p.selectName("empty"); got != "" {
		t.Errorf("selectName(null) = %q", got)
	}
	if got := p.multiSelect("Tags"); !reflect.DeepEqual(got, []string{"work", "travel"}) {
		t.Errorf("multiSelect() = %v", got)
	}
}
