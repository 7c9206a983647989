package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/debtbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/debtbook/internal/config"
	"github.com/MrJamesThe3rd/debtbook/internal/export"
	"github.com/MrJamesThe3rd/debtbook/internal/importer"
	"github.com/MrJamesThe3rd/debtbook/internal/logging"
	"github.com/MrJamesThe3rd/debtbook/internal/matching"
	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
	txStore "github.com/MrJamesThe3rd/debtbook/internal/transaction/store"
)

type model struct {
	cfg             *config.Config
	txService       *transaction.Service
	matchingService *matching.Service
	exportService   *export.Service

	currentView View
	window      tea.WindowSizeMsg

	ledgerView    view.LedgerModel
	addView       view.AddModel
	statementView view.StatementModel
}

type View int

const (
	ViewMenu      View = 0
	ViewLedger    View = 1
	ViewAdd       View = 2
	ViewStatement View = 3
)

func newModel(cfg *config.Config, txSvc *transaction.Service) model {
	matchSvc := matching.NewService(txSvc)
	expSvc := export.NewService(txSvc, cfg.App.CurrencySymbol)

	return model{
		cfg:             cfg,
		txService:       txSvc,
		matchingService: matchSvc,
		exportService:   expSvc,
		currentView:     ViewMenu,
		ledgerView:      view.NewLedgerModel(txSvc, cfg.App.CurrencySymbol),
		addView:         view.NewAddModel(txSvc, matchSvc),
		statementView:   view.NewStatementModel(expSvc, cfg.App.CurrencySymbol),
	}
}

// seedLedger fills a fresh ledger from the configured seed file, or from the
// demo data when seeding is on and no file is given.
func seedLedger(ctx context.Context, cfg *config.Config, txSvc *transaction.Service) error {
	var seeds []transaction.Seed

	switch {
	case cfg.Ledger.SeedFile != "":
		loaded, err := importer.NewService().ImportFile(cfg.Ledger.SeedFile)
		if err != nil {
			return err
		}

		seeds = loaded
	case cfg.Ledger.Seed:
		seeds = importer.Demo()
	default:
		return nil
	}

	added, err := txSvc.Seed(ctx, seeds)
	if err != nil {
		return fmt.Errorf("seeding ledger: %w", err)
	}

	slog.Info("ledger seeded", "count", added)

	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.window = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.openLedger("")
			case "2":
				return m.openAdd()
			case "3":
				m.currentView = ViewStatement
				m.statementView = view.NewStatementModel(m.exportService, m.cfg.App.CurrencySymbol)

				return m, tea.Batch(m.statementView.Init(), m.resize())
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	case view.OpenAddMsg:
		return m.openAdd()
	case view.TransactionAddedMsg:
		slog.Info("transaction added", "person", msg.Person)

		status := msg.Note
		if status == "" {
			status = fmt.Sprintf("Added transaction with %s.", msg.Person)
		}

		return m.openLedger(status)
	}

	switch m.currentView {
	case ViewLedger:
		var newModel tea.Model
		newModel, cmd = m.ledgerView.Update(msg)
		m.ledgerView = newModel.(view.LedgerModel)
	case ViewAdd:
		var newModel tea.Model
		newModel, cmd = m.addView.Update(msg)
		m.addView = newModel.(view.AddModel)
	case ViewStatement:
		var newModel tea.Model
		newModel, cmd = m.statementView.Update(msg)
		m.statementView = newModel.(view.StatementModel)
	}

	return m, cmd
}

func (m model) openLedger(status string) (tea.Model, tea.Cmd) {
	m.currentView = ViewLedger
	m.ledgerView = view.NewLedgerModel(m.txService, m.cfg.App.CurrencySymbol)
	m.ledgerView.SetStatus(status)

	return m, tea.Batch(m.ledgerView.Init(), m.resize())
}

func (m model) openAdd() (tea.Model, tea.Cmd) {
	m.currentView = ViewAdd
	m.addView = view.NewAddModel(m.txService, m.matchingService)

	return m, m.addView.Init()
}

// resize replays the last window size so a freshly built view can lay itself out.
func (m model) resize() tea.Cmd {
	if m.window.Width == 0 {
		return nil
	}

	size := m.window

	return func() tea.Msg { return size }
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.cfg.App.Name + "\n" +
				lipgloss.NewStyle().Faint(true).Render("Track money you lend and borrow") + "\n\n" +
				"1. Ledger\n" +
				"2. Add Transaction\n" +
				"3. Statement\n\n" +
				"q. Quit",
		)
	case ViewLedger:
		return m.ledgerView.View()
	case ViewAdd:
		return m.addView.View()
	case ViewStatement:
		return m.statementView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logging.Setup(cfg.Log.File, cfg.LogLevel(), "tui")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	txSvc := transaction.NewService(txStore.New())

	if err := seedLedger(context.Background(), cfg, txSvc); err != nil {
		slog.Error("failed to seed ledger", "error", err)
		fmt.Fprintf(os.Stderr, "failed to seed ledger: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(newModel(cfg, txSvc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
