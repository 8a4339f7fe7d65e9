package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Logs       key.Binding
	Back       key.Binding
	Forward    key.Binding
	CopyLoc    key.Binding
	Escape     key.Binding

	// Home
	Driver    key.Binding
	Passenger key.Binding

	// Lists
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Region   key.Binding
	Tariff   key.Binding
	Status   key.Binding
	PageSize key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Refresh  key.Binding
	NewTrip  key.Binding

	// Details
	Advance key.Binding

	// Logs
	Search key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log view"),
		),
		Back: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "History back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "History forward"),
		),
		CopyLoc: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy location"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Up one level"),
		),

		Driver: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Continue as driver"),
		),
		Passenger: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Continue as passenger"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open trip"),
		),
		Region: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle region"),
		),
		Tariff: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Cycle tariff"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle status"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Cycle page size"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "Previous page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		NewTrip: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "New trip"),
		),

		Advance: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Advance trip"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search logs"),
		),
	}
}
