package csvseed

import "strings"

// column identifies a field of the seed file.
type column int

const (
	colType column = iota
	colAmount
	colPerson
	colDate
	colStatus
	colDescription
	colDueDate
)

// aliases maps normalized header names to columns. Headers are lowercased
// and spaces/dashes folded to underscores before lookup.
var aliases = map[string]column{
	"type":        colType,
	"direction":   colType,
	"amount":      colAmount,
	"person":      colPerson,
	"name":        colPerson,
	"contact":     colPerson,
	"date":        colDate,
	"status":      colStatus,
	"description": colDescription,
	"note":        colDescription,
	"due_date":    colDueDate,
	"due":         colDueDate,
}

var required = []column{colType, colAmount, colPerson, colDate}

func (c column) String() string {
	switch c {
	case colType:
		return "type"
	case colAmount:
		return "amount"
	case colPerson:
		return "person"
	case colDate:
		return "date"
	case colStatus:
		return "status"
	case colDescription:
		return "description"
	case colDueDate:
		return "due_date"
	}

	return "unknown"
}

func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")

	return strings.ReplaceAll(s, "-", "_")
}
