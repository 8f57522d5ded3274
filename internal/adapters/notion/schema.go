package notion

import (
	"strings"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
)

// Page is a database row as returned by the API.
type Page struct {
	ID          string              `json:"id"`
	CreatedTime time.Time           `json:"created_time"`
	Archived    bool                `json:"archived"`
	Properties  map[string]Property `json:"properties"`
}

// Property holds whichever typed value the column carries.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title"`
	RichText    []RichText     `json:"rich_text"`
	Status      *SelectOption  `json:"status"`
	Select      *SelectOption  `json:"select"`
	MultiSelect []SelectOption `json:"multi_select"`
	Date        *DateValue     `json:"date"`
	Checkbox    *bool          `json:"checkbox"`
}

type RichText struct {
	PlainText string `json:"plain_text"`
}

// SelectOption is a status, select or multi-select value.
type SelectOption struct {
	Name string `json:"name"`
}

type DateValue struct {
	Start string  `json:"start"`
	End   *string `json:"end"`
}

// Properties is the write form of a page's properties. Values are plain
// maps so that explicit nulls and empty arrays survive encoding.
type Properties map[string]interface{}

func titleValue(s string) map[string]interface{} {
	return map[string]interface{}{
		"title": []interface{}{textBlock(s)},
	}
}

func richTextValue(s string) map[string]interface{} {
	blocks := []interface{}{}
	if s != "" {
		blocks = append(blocks, textBlock(s))
	}
	return map[string]interface{}{"rich_text": blocks}
}

func textBlock(s string) map[string]interface{} {
	return map[string]interface{}{
		"text": map[string]string{"content": s},
	}
}

func statusValue(name string) map[string]interface{} {
	return map[string]interface{}{
		"status": map[string]string{"name": name},
	}
}

// selectValue clears the select when name is empty.
func selectValue(name string) map[string]interface{} {
	if name == "" {
		return map[string]interface{}{"select": nil}
	}
	return map[string]interface{}{
		"select": map[string]string{"name": name},
	}
}

func multiSelectValue(names []string) map[string]interface{} {
	opts := make([]map[string]string, 0, len(names))
	for _, n := range names {
		opts = append(opts, map[string]string{"name": n})
	}
	return map[string]interface{}{"multi_select": opts}
}

// dateValue clears the date when start is nil.
func dateValue(start *entities.Date, end *entities.Date) map[string]interface{} {
	if start == nil {
		return map[string]interface{}{"date": nil}
	}
	v := map[string]interface{}{"start": start.String()}
	if end != nil {
		v["end"] = end.String()
	}
	return map[string]interface{}{"date": v}
}

func checkboxValue(b bool) map[string]interface{} {
	return map[string]interface{}{"checkbox": b}
}

func plainText(parts []RichText) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.PlainText)
	}
	return b.String()
}

func (p Page) title(name string) string {
	prop, ok := p.Properties[name]
	if !ok || len(prop.Title) == 0 {
		return ""
	}
	return strings.TrimSpace(plainText(prop.Title))
}

func (p Page) text(name string) string {
	prop, ok := p.Properties[name]
	if !ok {
		return ""
	}
	return plainText(prop.RichText)
}

func (p Page) statusName(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Status == nil {
		return ""
	}
	return prop.Status.Name
}

func (p Page) selectName(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Select == nil {
		return ""
	}
	return prop.Select.Name
}

func (p Page) multiSelect(name string) []string {
	prop, ok := p.Properties[name]
	if !ok {
		return []string{}
	}
	names := make([]string, 0, len(prop.MultiSelect))
	for _, o := range prop.MultiSelect {
		names = append(names, o.Name)
	}
	return names
}

func (p Page) checkbox(name string) bool {
	prop, ok := p.Properties[name]
	return ok && prop.Checkbox != nil && *prop.Checkbox
}

// dateRange reads a date column. ok is false when the column is empty or
// its start cannot be parsed; an unreadable or reversed end is dropped.
func (p Page) dateRange(name string, loc *time.Location) (r entities.DateRange, ok bool) {
	prop, found := p.Properties[name]
	if !found || prop.Date == nil || prop.Date.Start == "" {
		return entities.DateRange{}, false
	}

	start, err := entities.ParseDateIn(prop.Date.Start, loc)
	if err != nil {
		return entities.DateRange{}, false
	}

	var end *entities.Date
	if prop.Date.End != nil && *prop.Date.End != "" {
		if e, err := entities.ParseDateIn(*prop.Date.End, loc); err == nil {
			end = &e
		}
	}

	r, err = entities.NewDateRange(start, end)
	if err != nil {
		return entities.DateRange{Start: start}, true
	}
	return r, true
}
