package csvseed

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/debtbook/internal/encoding"
	"github.com/MrJamesThe3rd/debtbook/internal/money"
	"github.com/MrJamesThe3rd/debtbook/internal/transaction"
)

// Parser reads a ledger seed file: a header row naming the columns followed
// by one transaction per row, separated by ";" or ",".
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.Seed, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	slog.Debug("parsing seed file", "charset", charset, "bytes", len(data))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectComma(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	headerIdx := firstNonBlank(rows)
	if headerIdx < 0 {
		return nil, nil
	}

	cols, err := mapHeader(rows[headerIdx])
	if err != nil {
		return nil, err
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx)
}

// colIndex maps each known column to its position in the row.
type colIndex map[column]int

func mapHeader(row []string) (colIndex, error) {
	cols := make(colIndex)

	for i, cell := range row {
		c, ok := aliases[normalizeHeader(cell)]
		if !ok {
			continue
		}

		if _, dup := cols[c]; dup {
			return nil, fmt.Errorf("header: duplicate %s column", c)
		}

		cols[c] = i
	}

	var missing []string

	for _, c := range required {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c.String())
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("header: missing columns %s", strings.Join(missing, ", "))
	}

	return cols, nil
}

// parseRows converts data rows into entries. headerRowNum is the 0-based
// index of the header in the file, used for 1-based row numbers in errors.
func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]transaction.Seed, error) {
	var entries []transaction.Seed

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		if isBlank(row) {
			continue
		}

		entry, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

func parseRow(cols colIndex, row []string) (transaction.Seed, error) {
	typ := transaction.Type(strings.ToLower(cellValue(row, cols, colType)))
	if !typ.Valid() {
		return transaction.Seed{}, fmt.Errorf("unknown type %q", cellValue(row, cols, colType))
	}

	amount, err := money.ParseCents(cellValue(row, cols, colAmount))
	if err != nil {
		return transaction.Seed{}, err
	}

	if amount <= 0 {
		return transaction.Seed{}, transaction.ErrInvalidAmount
	}

	person := cellValue(row, cols, colPerson)
	if person == "" {
		return transaction.Seed{}, transaction.ErrEmptyPerson
	}

	date, err := parseDate(cellValue(row, cols, colDate))
	if err != nil {
		return transaction.Seed{}, fmt.Errorf("date: %w", err)
	}

	status, err := parseStatus(cellValue(row, cols, colStatus))
	if err != nil {
		return transaction.Seed{}, err
	}

	entry := transaction.Seed{
		Draft: transaction.Draft{
			Type:   typ,
			Amount: amount,
			Person: person,
			Date:   date,
		},
		Status: status,
	}

	if desc := cellValue(row, cols, colDescription); desc != "" {
		entry.Draft.Description = &desc
	}

	if s := cellValue(row, cols, colDueDate); s != "" {
		due, err := parseDate(s)
		if err != nil {
			return transaction.Seed{}, fmt.Errorf("due date: %w", err)
		}

		entry.Draft.DueDate = &due
	}

	return entry, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, transaction.ErrMissingDate
	}

	return time.Parse(time.DateOnly, s)
}

func parseStatus(s string) (transaction.Status, error) {
	switch transaction.Status(strings.ToLower(s)) {
	case "", transaction.StatusPending:
		return transaction.StatusPending, nil
	case transaction.StatusPaid:
		return transaction.StatusPaid, nil
	}

	return "", fmt.Errorf("unknown status %q", s)
}

// cellValue returns the trimmed cell for c, or "" when the column is absent
// or the row is short.
func cellValue(row []string, cols colIndex, c column) string {
	idx, ok := cols[c]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

// detectComma picks ";" when the first line has more semicolons than commas.
func detectComma(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}

	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}

func firstNonBlank(rows [][]string) int {
	for i, row := range rows {
		if !isBlank(row) {
			return i
		}
	}

	return -1
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
