package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/namorima/notion-todo/internal/client"
	"github.com/namorima/notion-todo/internal/domain/entities"
)

func (m Model) View() string {
	st := m.engine.State()
	if !st.Authenticated || m.prompt == promptPassword {
		return m.loginView()
	}

	var b strings.Builder
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	var keys help.KeyMap
	switch m.tab {
	case tabTodos:
		b.WriteString(m.todosView(st))
		keys = todoHelp{m.keys}
	case tabCalendar:
		b.WriteString(m.calendarView(st))
		keys = calendarHelp{m.keys}
	default:
		b.WriteString(m.holidaysView(st))
		keys = holidayHelp{m.keys}
	}

	b.WriteString("\n")
	b.WriteString(m.footerView(st))
	b.WriteString("\n")
	b.WriteString(m.help.View(keys))
	return panelStyle.Render(b.String())
}

func (m Model) loginView() string {
	lines := []string{
		titleStyle.Render("notion-manager"),
		mutedStyle.Render("Enter the password to continue."),
		"",
	}
	if m.busy {
		lines = append(lines, m.spinner.View()+" Signing in...")
	} else {
		lines = append(lines, inputStyle.Render(m.input.View()))
	}
	if m.errText != "" {
		lines = append(lines, errorStyle.Render("✖ "+m.errText))
	}
	lines = append(lines, helpStyle.Render("enter to log in • esc to quit"))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) tabsView() string {
	parts := make([]string, 0, len(tabNames)+1)
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts = append(parts, activeTabStyle.Render(name))
		} else {
			parts = append(parts, inactiveTabStyle.Render(name))
		}
	}
	if m.busy {
		parts = append(parts, m.spinner.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) todosView(st client.State) string {
	today := m.engine.Today()
	stats := client.Stats(st.Todos, today)

	badges := make([]string, 0, len(client.Filters))
	for i, f := range client.Filters {
		badge := fmt.Sprintf("%d %s (%d)", i+1, f.Label(), stats.Count(f))
		if f == st.Filter {
			badge = selectedStyle.Render(badge)
		} else {
			badge = mutedStyle.Render(badge)
		}
		badges = append(badges, badge)
	}

	var b strings.Builder
	b.WriteString(strings.Join(badges, "  "))
	b.WriteString("\n\n")

	visible := client.FilterTodos(st.Todos, st.Filter, today)
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("No todos found"))
		b.WriteString("\n")
	}
	for i, t := range visible {
		u := t.Urgency(today)
		name := t.Name
		switch {
		case t.IsDone():
			name = doneStyle.Render(name)
		case t.IsOverdue(today):
			name = errorStyle.Render(name)
		}

		prefix := "  "
		if i == m.todoIdx {
			prefix = selectedStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%s %s %s  %s  %s\n",
			prefix,
			u.Icon,
			name,
			t.Category.Emoji(),
			mutedStyle.Render(t.DueDateLabel()),
			statusStyle(t.Status).Render(string(t.Status)),
		)
	}
	return b.String()
}

func statusStyle(s entities.TodoStatus) lipgloss.Style {
	switch s {
	case entities.TodoStatusDone:
		return successStyle
	case entities.TodoStatusInProgress:
		return accentStyle
	default:
		return pendingStyle
	}
}

func (m Model) calendarView(st client.State) string {
	today := m.engine.Today()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %d", st.Month, st.Year)))
	b.WriteString("\n\n")

	if st.View == client.ViewGrid {
		grid := client.BuildMonthGrid(st.Year, st.Month, st.Events, st.Holidays, today, m.weekend, st.SelectedDate)
		b.WriteString(m.gridView(grid))
		b.WriteString("\n")
		if c, ok := cellAt(grid, m.day); ok && c.Tooltip != "" {
			b.WriteString(mutedStyle.Render(c.Tooltip))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	events := client.EventList(st.Events, st.SelectedDate, st.Year, st.Month, today)
	heading := "Events in " + fmt.Sprintf("%s %d", st.Month, st.Year)
	if st.SelectedDate != nil {
		heading = "Events on " + st.SelectedDate.Format("02 Jan 2006")
	}
	b.WriteString(accentStyle.Render(heading))
	b.WriteString("\n")

	if len(events) == 0 {
		b.WriteString(mutedStyle.Render("No events"))
		b.WriteString("\n")
	}
	for i, e := range events {
		prefix := "  "
		if st.View == client.ViewList && i == m.eventIdx {
			prefix = selectedStyle.Render("> ")
		}
		mark := pendingStyle.Render("•")
		name := e.Name
		if e.Done {
			mark = successStyle.Render("✓")
			name = doneStyle.Render(name)
		}
		line := fmt.Sprintf("%s%s %s  %s", prefix, mark, name, mutedStyle.Render(eventDateLabel(e)))
		if days := client.EventDays(e); days > 1 {
			line += mutedStyle.Render(fmt.Sprintf(" (%d days)", days))
		}
		if e.Location != "" {
			line += "  @ " + e.Location
		}
		if len(e.Tags) > 0 {
			line += "  " + accentStyle.Render("#"+strings.Join(e.Tags, " #"))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func eventDateLabel(e *entities.CalendarEvent) string {
	label := e.Date.Start.Format("02 Jan 2006")
	if e.Date.End != nil {
		label += " → " + e.Date.End.Format("02 Jan 2006")
	}
	return label
}

func (m Model) gridView(grid client.MonthGrid) string {
	var b strings.Builder
	for _, wd := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %-3s", wd.String()[:2])))
	}
	b.WriteString("\n")

	for _, week := range grid.Weeks() {
		for _, c := range week {
			b.WriteString(m.cellView(c))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) cellView(c client.Cell) string {
	mark := " "
	switch {
	case c.HasOpenEvent:
		mark = "•"
	case c.HasDoneEvent:
		mark = "✓"
	}
	text := fmt.Sprintf(" %2d%s", c.Date.Day, mark)

	switch {
	case c.Date == m.day:
		return selectedStyle.Render(text)
	case c.Selected:
		return pickedStyle.Render(text)
	case c.OtherMonth:
		return mutedStyle.Render(text)
	case c.IsHoliday:
		return holidayStyle.Render(text)
	case c.Today:
		return todayStyle.Render(text)
	case c.Weekend:
		return weekendStyle.Render(text)
	default:
		return text
	}
}

func cellAt(grid client.MonthGrid, day entities.Date) (client.Cell, bool) {
	for _, c := range grid.Cells {
		if c.Date == day {
			return c, true
		}
	}
	return client.Cell{}, false
}

func (m Model) holidaysView(st client.State) string {
	holidays := client.HolidaysForYear(st.Holidays, st.Year)

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Public holidays %d", st.Year)))
	b.WriteString("\n\n")
	if len(holidays) == 0 {
		b.WriteString(mutedStyle.Render("No holidays loaded for this year"))
		b.WriteString("\n")
	}
	today := m.engine.Today()
	for _, h := range holidays {
		date := h.Date.Format("Mon 02 Jan")
		if h.Date.Before(today) {
			date = mutedStyle.Render(date)
		}
		fmt.Fprintf(&b, "  %s  %s  %s\n", date, h.Name, mutedStyle.Render(h.State))
	}
	return b.String()
}

func (m Model) footerView(st client.State) string {
	var lines []string
	if st.Warning != "" {
		lines = append(lines, warningStyle.Render("⚠ "+st.Warning))
	}
	if m.errText != "" {
		lines = append(lines, errorStyle.Render("✖ "+m.errText))
	}
	if m.status != "" {
		lines = append(lines, successStyle.Render("✔ "+m.status))
	}

	switch {
	case st.Modal == client.ModalConfirmDelete:
		lines = append(lines, inputStyle.Render("Delete this item? "+helpStyle.Render("y to confirm • n to cancel")))
	case m.prompt == promptTodoName:
		lines = append(lines, inputStyle.Render("Add todo\n"+m.input.View()))
	case m.prompt == promptTodoDue:
		lines = append(lines, inputStyle.Render("Due date for "+m.draft.Name+"\n"+m.input.View()))
	}
	return strings.Join(lines, "\n")
}
