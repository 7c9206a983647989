package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/debtbook/internal/export"
	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

type statementState int

const (
	statementStateTimeframe statementState = iota
	statementStateLoading
	statementStateResult
)

const statementDir = "./statements"

// StatementModel shows who owes what over a chosen period.
type StatementModel struct {
	CommonModel
	exportService *export.Service
	symbol        string

	state           statementState
	timeframePicker TimeframePicker
	spinner         spinner.Model
	table           table.Model

	label    string
	balances []export.Balance
	status   string
	err      error
}

func NewStatementModel(svc *export.Service, symbol string) StatementModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	columns := []table.Column{
		{Title: "Person", Width: 24},
		{Title: "Owes You", Width: 12},
		{Title: "You Owe", Width: 12},
		{Title: "Net", Width: 12},
		{Title: "Open", Width: 6},
		{Title: "Overdue", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(ts)

	return StatementModel{
		exportService:   svc,
		symbol:          symbol,
		state:           statementStateTimeframe,
		timeframePicker: NewTimeframePicker(),
		spinner:         s,
		table:           t,
	}
}

func (m StatementModel) Title() string { return "Statement" }

func (m StatementModel) ShortHelp() string {
	switch m.state {
	case statementStateLoading:
		return "Loading..."
	case statementStateResult:
		return "s: save | Esc: change period"
	}

	return "Esc: back | Enter: select"
}

func (m StatementModel) Init() tea.Cmd {
	return nil
}

func (m StatementModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.label = msg.Label
		m.state = statementStateLoading
		m.status = ""
		m.err = nil

		filter := transaction.ListFilter{}
		if !msg.All {
			start, end := msg.Start, msg.End
			filter.StartDate = &start
			filter.EndDate = &end
		}

		return m, tea.Batch(m.spinner.Tick, m.loadCmd(filter))

	case statementLoadedMsg:
		m.state = statementStateResult
		m.err = msg.err
		m.balances = msg.balances
		m.table.SetRows(m.rows())

		return m, nil

	case statementSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = "Saved to " + msg.path

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(msg.Height - 12)

		return m, nil
	}

	switch m.state {
	case statementStateTimeframe:
		return m.updateTimeframe(msg)
	case statementStateLoading:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	case statementStateResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m StatementModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m StatementModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.state = statementStateTimeframe
			m.timeframePicker.Reset()

			return m, nil
		case "s":
			if m.err == nil {
				return m, m.saveCmd()
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m StatementModel) rows() []table.Row {
	rows := make([]table.Row, 0, len(m.balances))

	for _, b := range m.balances {
		net := FormatAmount(b.Net(), m.symbol)
		if b.Net() > 0 {
			net = "+" + net
		}

		rows = append(rows, table.Row{
			b.Person,
			FormatAmount(b.Lent, m.symbol),
			FormatAmount(b.Borrowed, m.symbol),
			net,
			fmt.Sprintf("%d", b.Open),
			fmt.Sprintf("%d", b.Overdue),
		})
	}

	return rows
}

func (m StatementModel) View() string {
	var body string

	switch m.state {
	case statementStateTimeframe:
		body = m.timeframePicker.View()

	case statementStateLoading:
		body = fmt.Sprintf("%s Building statement...", m.spinner.View())

	case statementStateResult:
		header := lipgloss.NewStyle().Bold(true).Render("Outstanding balances: " + m.label)

		switch {
		case m.err != nil:
			body = header + "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
		case len(m.balances) == 0:
			body = header + "\n\nNothing outstanding in this period."
		default:
			body = header + "\n\n" + lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				Render(m.table.View())
		}

		if m.status != "" {
			body += "\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
		}

		body += "\n\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())
	}

	return lipgloss.NewStyle().Padding(1).Render(body)
}

// Messages

type statementLoadedMsg struct {
	balances []export.Balance
	err      error
}

func (m StatementModel) loadCmd(filter transaction.ListFilter) tea.Cmd {
	svc := m.exportService

	return func() tea.Msg {
		ctx, cancel := LedgerCtx()
		defer cancel()

		balances, err := svc.Statement(ctx, filter)

		return statementLoadedMsg{balances: balances, err: err}
	}
}

type statementSavedMsg struct {
	path string
	err  error
}

func (m StatementModel) saveCmd() tea.Cmd {
	svc := m.exportService
	label := m.label
	balances := m.balances

	return func() tea.Msg {
		path, err := svc.Save(statementDir, label, balances)
		return statementSavedMsg{path: path, err: err}
	}
}

