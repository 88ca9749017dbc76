package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/dompetku/internal/encoding"
	"github.com/MrJamesThe3rd/dompetku/internal/transaction"
)

var dateLayouts = []string{
	time.DateOnly,
	"02/01/2006",
	"02-01-2006",
	"2/1/2006",
	time.DateTime,
}

var typeAliases = map[string]transaction.Type{
	"income":      transaction.TypeIncome,
	"pemasukan":   transaction.TypeIncome,
	"masuk":       transaction.TypeIncome,
	"+":           transaction.TypeIncome,
	"expense":     transaction.TypeExpense,
	"pengeluaran": transaction.TypeExpense,
	"keluar":      transaction.TypeExpense,
	"-":           transaction.TypeExpense,
}

// CSVParser auto-detects the charset, the delimiter (',' or ';') and which
// header profile the file uses.
type CSVParser struct {
	loc *time.Location
}

func NewCSVParser(loc *time.Location) *CSVParser {
	if loc == nil {
		loc = time.UTC
	}

	return &CSVParser{loc: loc}
}

func (p *CSVParser) Parse(r io.Reader) ([]transaction.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, ErrUnknownFormat
	}

	return p.parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// sniffDelimiter picks ';' when the first line holding any delimiter has
// more semicolons than commas. Title lines above the header are skipped.
func sniffDelimiter(data []byte) rune {
	for line := range bytes.Lines(data) {
		semicolons := bytes.Count(line, []byte{';'})
		commas := bytes.Count(line, []byte{','})

		if semicolons == 0 && commas == 0 {
			continue
		}

		if semicolons > commas {
			return ';'
		}

		break
	}

	return ','
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

func (p *CSVParser) parseRows(prof *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]transaction.CreateParams, error) {
	noteIdx, hasNote := cols[prof.NoteCol]
	if !hasNote {
		noteIdx = -1
	}

	var txs []transaction.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := p.parseDate(cellValue(row, cols[prof.DateCol]))
		if !ok {
			continue
		}

		amount, err := parseAmount(cellValue(row, cols[prof.AmountCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid amount %q", ErrInvalidRow, rowNum, cellValue(row, cols[prof.AmountCol]))
		}

		if amount == 0 {
			continue
		}

		typ, err := parseType(cellValue(row, cols[prof.TypeCol]), amount)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidRow, rowNum, err)
		}

		category := cellValue(row, cols[prof.CategoryCol])
		if category == "" {
			return nil, fmt.Errorf("%w: row %d: missing category", ErrInvalidRow, rowNum)
		}

		txs = append(txs, transaction.CreateParams{
			Type:      typ,
			Amount:    abs(amount),
			Category:  category,
			Note:      cellValue(row, noteIdx),
			CreatedAt: date,
		})
	}

	return txs, nil
}

// parseDate reports false for empty cells and values such as footers that are
// not dates.
func (p *CSVParser) parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseType falls back to the amount's sign when the type cell is empty.
func parseType(s string, amount int64) (transaction.Type, error) {
	if s == "" {
		if amount < 0 {
			return transaction.TypeExpense, nil
		}

		return transaction.TypeIncome, nil
	}

	typ, ok := typeAliases[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("unknown type %q", s)
	}

	return typ, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
