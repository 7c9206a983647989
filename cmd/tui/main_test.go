package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/debtbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/debtbook/internal/config"
	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
	txStore "github.com/MrJamesThe3rd/debtbook/internal/transaction/store"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "Debtbook"
	cfg.App.CurrencySymbol = "$"

	return cfg
}

func TestSeedLedger(t *testing.T) {
	seedFile := filepath.Join(t.TempDir(), "seed.csv")
	require.NoError(t, os.WriteFile(seedFile, []byte("type;amount;person;date\nlent;10;Kim;2024-03-01\n"), 0o600))

	type testCase struct {
		name     string
		seed     bool
		seedFile string
		wantLen  int
		wantErr  bool
	}

	tests := []testCase{
		{name: "Demo", seed: true, wantLen: 3},
		{name: "FileWinsOverDemo", seed: true, seedFile: seedFile, wantLen: 1},
		{name: "Disabled", wantLen: 0},
		{name: "MissingFile", seedFile: filepath.Join(t.TempDir(), "nope.csv"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Ledger.Seed = tt.seed
			cfg.Ledger.SeedFile = tt.seedFile

			svc := transaction.NewService(txStore.New())
			err := seedLedger(context.Background(), cfg, svc)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)

			txs, err := svc.List(context.Background(), transaction.ListFilter{})
			require.NoError(t, err)
			assert.Len(t, txs, tt.wantLen)
		})
	}
}

func TestModel_Navigation(t *testing.T) {
	var m tea.Model = newModel(testConfig(), transaction.NewService(txStore.New()))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	assert.Equal(t, ViewLedger, m.(model).currentView)

	m, _ = m.Update(view.OpenAddMsg{})
	assert.Equal(t, ViewAdd, m.(model).currentView)

	m, cmd := m.Update(view.TransactionAddedMsg{Person: "Kim"})
	assert.Equal(t, ViewLedger, m.(model).currentView)

	for _, msg := range drain(cmd) {
		m, _ = m.Update(msg)
	}

	assert.Contains(t, m.View(), "Added transaction with Kim.")

	m, _ = m.Update(view.BackMsg{})
	assert.Equal(t, ViewMenu, m.(model).currentView)
	assert.Contains(t, m.View(), "Debtbook")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// drain runs cmd and any batched commands it returns, collecting their messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()

	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}

	var msgs []tea.Msg
	for _, c := range batch {
		msgs = append(msgs, drain(c)...)
	}

	return msgs
}
