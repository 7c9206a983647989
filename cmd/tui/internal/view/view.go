package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenAddMsg asks the root model to switch to the add-transaction form.
type OpenAddMsg struct{}

func OpenAdd() tea.Msg {
	return OpenAddMsg{}
}

var (
	_ View = LedgerModel{}
	_ View = AddModel{}
	_ View = StatementModel{}
)
