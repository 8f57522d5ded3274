package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit    key.Binding
	NextTab key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Add     key.Binding
	Done    key.Binding
	Delete  key.Binding
	Reload  key.Binding
	Logout  key.Binding
	Filter  key.Binding
	View    key.Binding
	Select  key.Binding
	Clear   key.Binding
	PrevMon key.Binding
	NextMon key.Binding
	PrevYr  key.Binding
	NextYr  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Done:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "done")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Logout:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "logout")),
		Filter:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "filter")),
		View:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid/list")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select date")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear date")),
		PrevMon: key.NewBinding(key.WithKeys("[", "p"), key.WithHelp("[", "prev month")),
		NextMon: key.NewBinding(key.WithKeys("]", "n"), key.WithHelp("]", "next month")),
		PrevYr:  key.NewBinding(key.WithKeys("[", "p"), key.WithHelp("[", "prev year")),
		NextYr:  key.NewBinding(key.WithKeys("]", "n"), key.WithHelp("]", "next year")),
		Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	}
}

type todoHelp struct{ k keyMap }

func (h todoHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Filter, h.k.Add, h.k.Done, h.k.Delete, h.k.Reload, h.k.NextTab, h.k.Quit}
}

func (h todoHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type calendarHelp struct{ k keyMap }

func (h calendarHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.PrevMon, h.k.NextMon, h.k.Select, h.k.View, h.k.Done, h.k.Delete, h.k.NextTab, h.k.Quit}
}

func (h calendarHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

type holidayHelp struct{ k keyMap }

func (h holidayHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.PrevYr, h.k.NextYr, h.k.Reload, h.k.NextTab, h.k.Logout, h.k.Quit}
}

func (h holidayHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }
