package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/debtbook/internal/importer/csvseed"
	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: csvseed.New(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]transaction.Seed, error) {
	var importer Importer

	switch format {
	case FormatCSV:
		importer = s.csvImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}

// ImportFile picks the format from the file extension and parses path.
func (s *Service) ImportFile(path string) ([]transaction.Seed, error) {
	format := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seed file: %w", err)
	}
	defer f.Close()

	entries, err := s.Import(format, f)
	if err != nil {
		return nil, fmt.Errorf("importing %s: %w", filepath.Base(path), err)
	}

	return entries, nil
}
