package view

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/debtbook/internal/matching"
	"github.com/MrJamesThe3rd/debtbook/internal/money"
	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

// TransactionAddedMsg is emitted once a new transaction is in the ledger.
// Note carries an optional hint for the user, such as a likely typo in the name.
type TransactionAddedMsg struct {
	Person string
	Note   string
}

type addState int

const (
	addStateLoading addState = iota
	addStateForm
	addStateSaving
)

// addFields holds the form bindings. It lives on the heap so the huh fields
// keep pointing at the same values as the model is copied around.
type addFields struct {
	typ         transaction.Type
	amount      string
	person      string
	description string
	date        string
	dueDate     string
}

// draft converts the form values into a transaction draft. The fields have
// already passed their validators by the time this runs.
func (f *addFields) draft(now time.Time) (transaction.Draft, error) {
	amount, err := money.ParseCents(f.amount)
	if err != nil {
		return transaction.Draft{}, err
	}

	date, err := parseDate(f.date)
	if err != nil {
		return transaction.Draft{}, fmt.Errorf("date: %w", err)
	}

	due, err := parseDueDate(f.dueDate, now)
	if err != nil {
		return transaction.Draft{}, fmt.Errorf("due date: %w", err)
	}

	d := transaction.Draft{
		Type:    f.typ,
		Amount:  amount,
		Person:  f.person,
		Date:    date,
		DueDate: due,
	}

	if strings.TrimSpace(f.description) != "" {
		desc := f.description
		d.Description = &desc
	}

	return d, nil
}

type AddModel struct {
	CommonModel
	txService       *transaction.Service
	matchingService *matching.Service
	now             func() time.Time

	state  addState
	form   *huh.Form
	fields *addFields
	err    error
}

func NewAddModel(txSvc *transaction.Service, matchSvc *matching.Service) AddModel {
	now := time.Now

	return AddModel{
		txService:       txSvc,
		matchingService: matchSvc,
		now:             now,
		state:           addStateLoading,
		fields: &addFields{
			typ:  transaction.TypeLent,
			date: today(now()),
		},
	}
}

func (m AddModel) Title() string { return "Add Transaction" }

func (m AddModel) ShortHelp() string {
	return "Esc: cancel | Enter/Tab: next field"
}

func (m AddModel) Init() tea.Cmd {
	svc := m.matchingService

	return func() tea.Msg {
		ctx, cancel := LedgerCtx()
		defer cancel()

		people, err := svc.Suggestions(ctx)

		return suggestionsMsg{people: people, err: err}
	}
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsMsg:
		// Suggestions are a convenience; the form works without them.
		if msg.err != nil {
			slog.Warn("loading person suggestions", "error", msg.err)
		}

		m.form = m.buildForm(msg.people)
		m.state = addStateForm

		return m, m.form.Init()

	case addResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.form = m.buildForm(nil)
			m.state = addStateForm

			return m, m.form.Init()
		}

		return m, func() tea.Msg {
			return TransactionAddedMsg{Person: msg.tx.Person, Note: msg.note}
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc && m.state != addStateSaving {
			return m, Back
		}
	}

	if m.state != addStateForm || m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = addStateSaving
	m.err = nil

	return m, m.saveCmd()
}

func (m AddModel) buildForm(people []string) *huh.Form {
	now := m.now

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Transaction Type").
				Options(
					huh.NewOption("I Lent Money", transaction.TypeLent),
					huh.NewOption("I Borrowed Money", transaction.TypeBorrowed),
				).
				Value(&m.fields.typ),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.fields.amount).
				Validate(validateAmount),

			huh.NewInput().
				Key("person").
				Title("Person").
				Placeholder("Enter person's name").
				Suggestions(people).
				Value(&m.fields.person).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("person can't be empty")
					}
					return nil
				}),

			huh.NewText().
				Key("description").
				Title("Description (optional)").
				Placeholder("What was this for?").
				Lines(2).
				Value(&m.fields.description),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder(dateLayout).
				Value(&m.fields.date).
				Validate(func(s string) error {
					_, err := parseDate(s)
					return err
				}),

			huh.NewInput().
				Key("due_date").
				Title("Due Date (optional)").
				Placeholder(dateLayout).
				Value(&m.fields.dueDate).
				Validate(func(s string) error {
					_, err := parseDueDate(s, now())
					return err
				}),
		),
	).WithWidth(50).WithShowHelp(false)
}

func validateAmount(s string) error {
	cents, err := money.ParseCents(s)
	if err != nil {
		return errors.New("enter an amount like 12.50")
	}

	if cents <= 0 {
		return errors.New("amount must be greater than zero")
	}

	return nil
}

func (m AddModel) View() string {
	var body string

	switch m.state {
	case addStateLoading:
		body = "Loading..."
	case addStateSaving:
		body = "Saving..."
	case addStateForm:
		body = lipgloss.NewStyle().Bold(true).Render("Add New Transaction") + "\n\n" + m.form.View()
	}

	if m.err != nil {
		body += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(body + "\n\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()))
}

// Messages

type suggestionsMsg struct {
	people []string
	err    error
}

type addResultMsg struct {
	tx   *transaction.Transaction
	note string
	err  error
}

func (m AddModel) saveCmd() tea.Cmd {
	fields := *m.fields
	txSvc := m.txService
	matchSvc := m.matchingService
	now := m.now()

	return func() tea.Msg {
		draft, err := fields.draft(now)
		if err != nil {
			return addResultMsg{err: err}
		}

		ctx, cancel := LedgerCtx()
		defer cancel()

		// Look for a near-duplicate name before the new entry joins the ledger.
		similar, found, err := matchSvc.Lookalike(ctx, strings.TrimSpace(draft.Person))
		if err != nil {
			return addResultMsg{err: err}
		}

		tx, err := txSvc.Add(ctx, draft)
		if err != nil {
			return addResultMsg{err: err}
		}

		var note string
		if found {
			note = fmt.Sprintf("Added %s. Did you mean %s? They are tracked as different people.", tx.Person, similar)
		}

		return addResultMsg{tx: tx, note: note}
	}
}
