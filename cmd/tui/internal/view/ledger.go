package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

// ledgerFilter narrows the ledger list by status.
type ledgerFilter int

const (
	ledgerFilterAll ledgerFilter = iota
	ledgerFilterPending
	ledgerFilterCompleted
)

func (f ledgerFilter) String() string {
	switch f {
	case ledgerFilterPending:
		return "Pending"
	case ledgerFilterCompleted:
		return "Completed"
	}

	return "All"
}

func (f ledgerFilter) next() ledgerFilter {
	return (f + 1) % 3
}

var (
	cardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			MarginRight(1)
	cardLabelStyle    = lipgloss.NewStyle().Faint(true)
	lentStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	borrowedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	paidBadgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	overdueBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// txItem wraps a transaction to implement list.Item.
type txItem struct {
	tx *transaction.Transaction
}

func (i txItem) FilterValue() string {
	if i.tx.Description != nil {
		return i.tx.Person + " " + *i.tx.Description
	}

	return i.tx.Person
}

type txItemDelegate struct {
	symbol string
	now    func() time.Time
}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 1 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(txItem)
	if !ok {
		return
	}

	tx := item.tx

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	kind, amount := "Lent", lentStyle.Render("+"+FormatAmount(tx.Amount, d.symbol))
	if tx.Type == transaction.TypeBorrowed {
		kind, amount = "Borrowed", borrowedStyle.Render("-"+FormatAmount(tx.Amount, d.symbol))
	}

	var badges []string

	badges = append(badges, fmt.Sprintf("[%s]", kind))

	if tx.Status == transaction.StatusPaid {
		badges = append(badges, paidBadgeStyle.Render("[Paid]"))
	}

	if tx.IsOverdue(d.now()) {
		badges = append(badges, overdueBadgeStyle.Render("[Overdue]"))
	}

	line1 := fmt.Sprintf("%s%s  %s  %s", cursor, tx.Person, amount, strings.Join(badges, " "))

	details := []string{FormatDate(tx.Date)}

	// The due date only matters while the debt is open.
	if tx.DueDate != nil && tx.Status == transaction.StatusPending {
		details = append(details, "due "+FormatDate(*tx.DueDate))
	}

	if tx.Description != nil {
		details = append(details, *tx.Description)
	}

	line2 := lipgloss.NewStyle().Faint(true).Render("    " + strings.Join(details, "  |  "))

	fmt.Fprintf(w, "%s\n%s", line1, line2)
}

// LedgerModel is the dashboard: summary cards on top, transactions below.
type LedgerModel struct {
	CommonModel
	txService *transaction.Service
	symbol    string
	now       func() time.Time

	list    list.Model
	filter  ledgerFilter
	summary transaction.Summary
	loading bool
	status  string
	err     error
}

func NewLedgerModel(txSvc *transaction.Service, symbol string) LedgerModel {
	delegate := txItemDelegate{symbol: symbol, now: time.Now}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("transaction", "transactions")

	return LedgerModel{
		txService: txSvc,
		symbol:    symbol,
		now:       time.Now,
		list:      l,
		loading:   true,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	return "p: mark paid | a: add | f: filter (" + m.filter.String() + ") | r: refresh | /: search | Esc: back"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ledgerLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err != nil {
			return m, nil
		}

		m.summary = msg.summary
		m.setItems(msg.txs)

		return m, nil

	case markPaidMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Marked %s as paid.", msg.person)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-12)

		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "esc":
			if m.list.FilterState() == list.FilterApplied {
				break // let the list clear the search
			}

			return m, Back
		case "a":
			return m, OpenAdd
		case "r":
			m.loading = true
			m.status = ""

			return m, m.loadCmd()
		case "f":
			m.filter = m.filter.next()
			m.status = ""

			return m, m.loadCmd()
		case "p":
			return m, m.markPaidCmd()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m *LedgerModel) setItems(txs []*transaction.Transaction) {
	items := make([]list.Item, len(txs))
	for i, tx := range txs {
		items[i] = txItem{tx: tx}
	}

	m.list.SetItems(items)
	m.list.Title = fmt.Sprintf("Transactions (%s)", m.filter)
}

func (m LedgerModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\nr: retry | Esc: back")
	}

	var sb strings.Builder

	sb.WriteString(m.cardsView())
	sb.WriteString("\n\n")

	if len(m.list.Items()) == 0 {
		sb.WriteString(m.emptyView())
	} else {
		sb.WriteString(m.list.View())
	}

	if m.status != "" {
		sb.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.status))
	}

	sb.WriteString("\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(sb.String())
}

func (m LedgerModel) cardsView() string {
	card := func(label, value string) string {
		return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + value)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Money Lent", lentStyle.Render(FormatAmount(m.summary.TotalLent, m.symbol))),
		card("Money Borrowed", borrowedStyle.Render(FormatAmount(m.summary.TotalBorrowed, m.symbol))),
		card("Active Contacts", fmt.Sprintf("%d", m.summary.People)),
		card("Overdue", fmt.Sprintf("%d", m.summary.Overdue)),
	)
}

func (m LedgerModel) emptyView() string {
	title := "No transactions yet"
	hint := "Press a to record money you lent or borrowed."

	if m.filter != ledgerFilterAll {
		title = fmt.Sprintf("No %s transactions", strings.ToLower(m.filter.String()))
		hint = "Press f to change the filter."
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 4).
		Render(lipgloss.NewStyle().Bold(true).Render(title) + "\n" + cardLabelStyle.Render(hint))
}

// Messages

type ledgerLoadedMsg struct {
	txs     []*transaction.Transaction
	summary transaction.Summary
	err     error
}

func (m LedgerModel) loadCmd() tea.Cmd {
	svc := m.txService
	filter := m.filter
	now := m.now()

	return func() tea.Msg {
		ctx, cancel := LedgerCtx()
		defer cancel()

		summary, err := svc.Summary(ctx, now)
		if err != nil {
			return ledgerLoadedMsg{err: err}
		}

		var txs []*transaction.Transaction

		switch filter {
		case ledgerFilterPending:
			txs, err = svc.ListPending(ctx)
		case ledgerFilterCompleted:
			txs, err = svc.ListCompleted(ctx)
		default:
			txs, err = svc.List(ctx, transaction.ListFilter{})
		}

		return ledgerLoadedMsg{txs: txs, summary: summary, err: err}
	}
}

type markPaidMsg struct {
	person string
	err    error
}

func (m LedgerModel) markPaidCmd() tea.Cmd {
	item, ok := m.list.SelectedItem().(txItem)
	if !ok {
		return nil
	}

	if item.tx.Status == transaction.StatusPaid {
		return func() tea.Msg {
			return markPaidMsg{err: fmt.Errorf("%s is already paid", item.tx.Person)}
		}
	}

	svc := m.txService
	tx := item.tx

	return func() tea.Msg {
		ctx, cancel := LedgerCtx()
		defer cancel()

		return markPaidMsg{person: tx.Person, err: svc.MarkPaid(ctx, tx.ID)}
	}
}

// SetStatus shows a one-line message under the list until the next action.
func (m *LedgerModel) SetStatus(status string) {
	m.status = status
}
