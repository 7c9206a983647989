package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/debtbook/internal/money"
	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

// Balance is what is still open with one person.
type Balance struct {
	Person   string
	Lent     int64 // Cents the person owes you
	Borrowed int64 // Cents you owe the person
	Open     int
	Overdue  int
}

// Net is positive when the person owes you overall.
func (b Balance) Net() int64 {
	return b.Lent - b.Borrowed
}

// Service builds per-person statements of outstanding debts.
type Service struct {
	transactions   *transaction.Service
	currencySymbol string
	now            func() time.Time
}

// NewService creates a new statement Service.
func NewService(txService *transaction.Service, currencySymbol string) *Service {
	return &Service{
		transactions:   txService,
		currencySymbol: currencySymbol,
		now:            time.Now,
	}
}

// Statement groups the pending transactions matching filter by person.
// Paid transactions never contribute, whatever the filter's status says.
// Balances are ordered by the size of the net amount, largest first.
func (s *Service) Statement(ctx context.Context, filter transaction.ListFilter) ([]Balance, error) {
	pending := transaction.StatusPending
	filter.Status = &pending

	txs, err := s.transactions.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	now := s.now()
	byPerson := make(map[string]*Balance)

	// Pre-allocate to avoid reallocations.
	balances := make([]*Balance, 0, len(txs))

	for _, tx := range txs {
		b, ok := byPerson[tx.Person]
		if !ok {
			b = &Balance{Person: tx.Person}
			byPerson[tx.Person] = b
			balances = append(balances, b)
		}

		switch tx.Type {
		case transaction.TypeLent:
			b.Lent += tx.Amount
		case transaction.TypeBorrowed:
			b.Borrowed += tx.Amount
		}

		b.Open++

		if tx.IsOverdue(now) {
			b.Overdue++
		}
	}

	sort.SliceStable(balances, func(i, j int) bool {
		return abs(balances[i].Net()) > abs(balances[j].Net())
	})

	out := make([]Balance, len(balances))
	for i, b := range balances {
		out[i] = *b
	}

	return out, nil
}

// GenerateSummary renders balances as one plain-text line per person.
func (s *Service) GenerateSummary(balances []Balance) string {
	var sb strings.Builder

	for _, b := range balances {
		var position string

		switch net := b.Net(); {
		case net > 0:
			position = "owes you " + money.Format(net, s.currencySymbol)
		case net < 0:
			position = "you owe " + money.Format(-net, s.currencySymbol)
		default:
			position = "even"
		}

		open := fmt.Sprintf("%d open", b.Open)
		if b.Overdue > 0 {
			open += fmt.Sprintf(", %d overdue", b.Overdue)
		}

		sb.WriteString(fmt.Sprintf("* %s | %s | %s\n", b.Person, position, open))
	}

	return sb.String()
}

// Save writes the plain-text summary of balances into outputDir and returns
// the file path. The file name is derived from label, e.g. "statement-this-month.txt".
func (s *Service) Save(outputDir, label string, balances []Balance) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, statementFilename(label))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating statement file: %w", err)
	}
	defer f.Close()

	header := fmt.Sprintf("Outstanding balances (%s), generated %s\n\n", label, s.now().Format("Jan 02, 2006"))

	body := s.GenerateSummary(balances)
	if body == "" {
		body = "Nothing outstanding.\n"
	}

	if _, err := f.WriteString(header + body); err != nil {
		return "", fmt.Errorf("writing statement: %w", err)
	}

	return path, nil
}

func statementFilename(label string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}

		return '-'
	}, label)

	slug = strings.Trim(slug, "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}

	if slug == "" {
		slug = "all"
	}

	return "statement-" + slug + ".txt"
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
