package holidays

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

func TestOfficeHolidaysSource_Fetch(t *testing.T) {
	page, err := os.ReadFile("testdata/kelantan_2025.html")
	if err != nil {
		t.Fatal(err)
	}

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "text/html")
		w.Write(page)
	}))
	defer srv.Close()

	src := NewOfficeHolidaysSource(srv.URL+"/countries/malaysia/regional.php", srv.Client(), logger.NewNop())
	list, err := src.Fetch(context.Background(), "Kelantan", 2025)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotQuery != "list_region=Kelantan&list_year=2025" {
		t.Errorf("query = %q", gotQuery)
	}

	want := []struct{ date, name string }{
		{"2025-01-29", "Chinese New Year"},
		{"2025-03-31", "Hari Raya Puasa"},
		{"2025-09-29", "Sultan of Kelantan's Birthday"},
	}
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d: %+v", len(list), len(want), list)
	}
	for i, w := range want {
		if list[i].Date.String() != w.date || list[i].Name != w.name {
			t.Errorf("row %d = %s %q, want %s %q", i, list[i].Date, list[i].Name, w.date, w.name)
		}
		if list[i].State != "Kelantan" || list[i].Year != 2025 {
			t.Errorf("row %d state/year = %s/%d", i, list[i].State, list[i].Year)
		}
	}
}

func TestOfficeHolidaysSource_FetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	src := NewOfficeHolidaysSource(srv.URL, srv.Client(), logger.NewNop())
	if _, err := src.Fetch(context.Background(), "Kelantan", 2025); err == nil {
		t.Fatal("expected an error for a 403 page")
	}
}

func TestParseListDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Friday 01 January", "2027-01-01", true},
		{"Saturday 7 August", "2027-08-07", true},
		{"Monday 31 February", "", false},
		{"January", "", false},
	}
	for _, tt := range tests {
		got, ok := parseListDate(tt.in, 2027)
		if ok != tt.ok || (ok && got.String() != tt.want) {
			t.Errorf("parseListDate(%q) = %v, %v; want %s, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSeedFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed", "holidays.json")
	seed := &ports.HolidaySeed{
		State: "Kelantan",
		Year:  2025,
		Holidays: []ports.HolidaySeedItem{
			{Date: "2025-03-31", Name: "Hari Raya Puasa"},
		},
	}

	if err := WriteSeedFile(path, seed); err != nil {
		t.Fatalf("WriteSeedFile() error = %v", err)
	}
	got, err := ReadSeedFile(path)
	if err != nil {
		t.Fatalf("ReadSeedFile() error = %v", err)
	}
	if got.LastUpdated.IsZero() {
		t.Error("lastUpdated not stamped")
	}
	if got.State != "Kelantan" || got.Year != 2025 || len(got.Holidays) != 1 {
		t.Errorf("seed = %+v", got)
	}
}

func TestReadSeedFileRequiresStateAndYear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.json")
	if err := os.WriteFile(path, []byte(`{"holidays":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSeedFile(path); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSeedFromHolidays(t *testing.T) {
	list := []*entities.Holiday{
		{Date: entities.MustParseDate("2025-05-01"), Name: "Hari Pekerja"},
	}
	seed := SeedFromHolidays("Kelantan", 2025, list)
	if len(seed.Holidays) != 1 || seed.Holidays[0].Date != "2025-05-01" || seed.Holidays[0].Name != "Hari Pekerja" {
		t.Errorf("seed = %+v", seed)
	}
}
