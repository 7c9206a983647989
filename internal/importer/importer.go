package importer

import (
	"io"

	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

type Format string

const (
	FormatCSV Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.Seed, error)
}
