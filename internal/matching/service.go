package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

type Ledger interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	ledger Ledger
}

func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// Suggestions returns every known person, most frequent first, for name
// completion in forms.
func (s *Service) Suggestions(ctx context.Context) ([]string, error) {
	txs, err := s.ledger.List(ctx, transaction.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	counts := make(map[string]int)
	for _, tx := range txs {
		counts[tx.Person]++
	}

	people := transaction.DistinctPeople(txs)
	sort.SliceStable(people, func(i, j int) bool {
		return counts[people[i]] > counts[people[j]]
	})

	return people, nil
}

// Suggest returns known people whose name starts with prefix, ignoring case.
func (s *Service) Suggest(ctx context.Context, prefix string) ([]string, error) {
	people, err := s.Suggestions(ctx)
	if err != nil {
		return nil, err
	}

	prefix = strings.ToLower(strings.TrimSpace(prefix))

	var matches []string

	for _, p := range people {
		if strings.HasPrefix(strings.ToLower(p), prefix) {
			matches = append(matches, p)
		}
	}

	return matches, nil
}

// Lookalike finds a different known name that matches name once case and
// inner spacing are ignored. The ledger still counts both as separate
// people; this only lets the UI point out a likely typo.
func (s *Service) Lookalike(ctx context.Context, name string) (string, bool, error) {
	people, err := s.Suggestions(ctx)
	if err != nil {
		return "", false, err
	}

	key := fold(name)

	for _, p := range people {
		if p != name && fold(p) == key {
			return p, true, nil
		}
	}

	return "", false, nil
}

func fold(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
