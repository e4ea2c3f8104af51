// Package tabular loads uploaded CSV and Excel bytes into typed tables.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"siteboard/domain/core"
	"siteboard/domain/table"
	"siteboard/ports"
)

// Date-typed columns are recognized by name; everything else is inferred.
var dateColumns = map[string]bool{
	"date":            true,
	"start_date":      true,
	"end_date":        true,
	"actual_end_date": true,
	"exit date":       true,
}

// dateFormats are tried in order for each cell
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"1/2/06",
}

// numericThreshold is the share of non-empty cells that must parse as
// numbers before a column is typed numeric
const numericThreshold = 0.8

// Reader parses CSV and XLSX uploads into tables
type Reader struct{}

// NewReader creates a table loader
func NewReader() *Reader {
	return &Reader{}
}

var _ ports.TableLoader = (*Reader)(nil)

// Load parses raw bytes into a typed table. A header-only file yields a
// zero-row table; structurally broken input fails without a partial table.
func (r *Reader) Load(data []byte, format ports.Format) (*table.Table, error) {
	var rows [][]string
	var err error

	switch format {
	case ports.FormatCSV:
		rows, err = readCSV(data)
	case ports.FormatXLSX:
		rows, err = readXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %w", core.ErrMalformedInput, core.ErrEmptyTable)
	}

	return buildTable(rows)
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedInput, err)
	}
	return rows, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedInput, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrMalformedInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrMalformedInput, err)
	}
	return rows, nil
}

// buildTable types each column and coerces cells. All rows end up with the
// full column set; short rows pad with missing values.
func buildTable(rows [][]string) (*table.Table, error) {
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	dataRows := rows[1:]
	raw := make([][]string, len(headers))
	for col := range headers {
		raw[col] = make([]string, len(dataRows))
		for i, row := range dataRows {
			if col < len(row) {
				raw[col][i] = strings.TrimSpace(row[col])
			}
		}
	}

	kinds := make(map[string]table.ColumnKind, len(headers))
	for col, name := range headers {
		kinds[name] = inferKind(name, raw[col])
	}

	t := table.New(headers, kinds)
	for i := range dataRows {
		row := make(table.Row, len(headers))
		for col, name := range headers {
			row[name] = coerceCell(raw[col][i], kinds[name])
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// inferKind picks the column type: known date names first, then the
// numeric threshold, otherwise string
func inferKind(name string, cells []string) table.ColumnKind {
	if dateColumns[strings.ToLower(name)] {
		return table.KindDate
	}

	nonEmpty, numeric := 0, 0
	for _, c := range cells {
		if c == "" {
			continue
		}
		nonEmpty++
		if _, ok := parseNumber(c); ok {
			numeric++
		}
	}
	if nonEmpty > 0 && float64(numeric)/float64(nonEmpty) >= numericThreshold {
		return table.KindNumber
	}
	return table.KindString
}

func coerceCell(cell string, kind table.ColumnKind) table.Value {
	if cell == "" {
		return table.NewMissingValue(kind)
	}
	switch kind {
	case table.KindDate:
		if t, ok := parseDate(cell); ok {
			return table.NewDateValue(t)
		}
		// Unparseable dates become the missing-date marker, never a failure
		return table.NewMissingValue(table.KindDate)
	case table.KindNumber:
		if n, ok := parseNumber(cell); ok {
			return table.NewNumberValue(n)
		}
		return table.NewMissingValue(table.KindNumber)
	default:
		return table.NewStringValue(cell)
	}
}

// parseNumber accepts plain floats plus currency symbols, thousands
// separators, percent signs and parenthesized negatives
func parseNumber(s string) (float64, bool) {
	clean := strings.TrimSpace(s)

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	for _, sym := range []string{"$", "€", "£", "%"} {
		clean = strings.ReplaceAll(clean, sym, "")
	}
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	if negative {
		clean = "-" + clean
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

func parseDate(s string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatForFilename maps an upload filename to its format
func FormatForFilename(name string) (ports.Format, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return ports.FormatCSV, nil
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xls"):
		return ports.FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, name)
	}
}
