package client

import (
	"testing"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"all", FilterAll, false},
		{" Overdue ", FilterOverdue, false},
		{"IN-PROGRESS", FilterInProgress, false},
		{"later", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChangeMonth(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		delta     int
		wantYear  int
		wantMonth time.Month
	}{
		{"next", 2025, time.March, 1, 2025, time.April},
		{"forward over year end", 2025, time.December, 1, 2026, time.January},
		{"back over year start", 2025, time.January, -1, 2024, time.December},
		{"back more than a year", 2025, time.February, -14, 2023, time.December},
		{"forward two years", 2025, time.June, 24, 2027, time.June},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(entities.NewDate(tt.year, tt.month, 5))
			s.ChangeMonth(tt.delta)
			if s.Year != tt.wantYear || s.Month != tt.wantMonth {
				t.Errorf("got %d-%s, want %d-%s", s.Year, s.Month, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestSelectDateToggles(t *testing.T) {
	s := NewState(entities.MustParseDate("2025-03-11"))
	d := entities.MustParseDate("2025-03-14")

	s.SelectDate(d)
	if s.SelectedDate == nil || *s.SelectedDate != d {
		t.Fatalf("SelectedDate = %v", s.SelectedDate)
	}
	s.SelectDate(entities.MustParseDate("2025-03-15"))
	if s.SelectedDate.String() != "2025-03-15" {
		t.Fatalf("SelectedDate = %v", s.SelectedDate)
	}
	s.SelectDate(entities.MustParseDate("2025-03-15"))
	if s.SelectedDate != nil {
		t.Fatalf("second select should clear, got %v", s.SelectedDate)
	}
}

func TestLogoutResetsSession(t *testing.T) {
	s := NewState(entities.MustParseDate("2025-03-11"))
	s.Loaded([]*entities.Todo{{ID: "1"}}, nil, nil, "Holidays could not be loaded")
	s.OpenModal(ModalEditTodo, "1")

	if !s.Authenticated || len(s.Events) != 0 || s.Events == nil {
		t.Fatalf("Loaded() state = %+v", s)
	}

	s.Logout()
	if s.Authenticated || len(s.Todos) != 0 || s.Warning != "" || s.Modal != ModalNone || s.ModalTarget != "" {
		t.Errorf("Logout() state = %+v", s)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewState(entities.MustParseDate("2025-03-11"))
	s.Loaded([]*entities.Todo{{ID: "1"}}, nil, nil, "")
	s.SelectDate(entities.MustParseDate("2025-03-12"))

	c := s.Clone()
	c.Todos[0] = &entities.Todo{ID: "changed"}
	*c.SelectedDate = entities.MustParseDate("2025-01-01")

	if s.Todos[0].ID != "1" {
		t.Error("clone shares the todo slice")
	}
	if s.SelectedDate.String() != "2025-03-12" {
		t.Error("clone shares the selected date")
	}
}
