package table

import (
	"fmt"
	"time"

	"siteboard/domain/core"
)

// ColumnKind defines the inferred storage type of a column
type ColumnKind string

const (
	KindString ColumnKind = "string"
	KindNumber ColumnKind = "number"
	KindDate   ColumnKind = "date"
)

// Value represents a typed cell with deterministic coercion
type Value struct {
	Kind      ColumnKind `json:"kind"`
	StringVal *string    `json:"string_val,omitempty"`
	NumberVal *float64   `json:"number_val,omitempty"`
	DateVal   *time.Time `json:"date_val,omitempty"`
	IsMissing bool       `json:"is_missing"`
}

// NewStringValue creates a string value; empty strings are missing
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue(KindString)
	}
	return Value{Kind: KindString, StringVal: &s}
}

// NewNumberValue creates a numeric value
func NewNumberValue(n float64) Value {
	return Value{Kind: KindNumber, NumberVal: &n}
}

// NewDateValue creates a date value
func NewDateValue(t time.Time) Value {
	return Value{Kind: KindDate, DateVal: &t}
}

// NewMissingValue creates a missing marker that remembers its column kind
func NewMissingValue(kind ColumnKind) Value {
	return Value{Kind: kind, IsMissing: true}
}

// IsNumber returns true if the value holds a valid number
func (v Value) IsNumber() bool { return !v.IsMissing && v.NumberVal != nil }

// IsDate returns true if the value holds a valid date
func (v Value) IsDate() bool { return !v.IsMissing && v.DateVal != nil }

// AsFloat64 returns the numeric value, or 0 when missing
func (v Value) AsFloat64() float64 {
	if v.NumberVal != nil {
		return *v.NumberVal
	}
	return 0
}

// AsString returns the string value, or empty string when missing
func (v Value) AsString() string {
	if v.StringVal != nil {
		return *v.StringVal
	}
	return ""
}

// AsDate returns the date value, or the zero time when missing
func (v Value) AsDate() time.Time {
	if v.DateVal != nil {
		return *v.DateVal
	}
	return time.Time{}
}

// Display renders the value for tables and chart labels
func (v Value) Display() string {
	if v.IsMissing {
		return ""
	}
	switch v.Kind {
	case KindString:
		return v.AsString()
	case KindNumber:
		return trimFloat(v.AsFloat64())
	case KindDate:
		return v.AsDate().Format("2006-01-02")
	}
	return ""
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}

// Row maps column name to its typed cell value
type Row map[string]Value

// Table is an ordered sequence of rows over named, typed columns.
// Every row shares the column set; loaders guarantee this invariant.
type Table struct {
	Headers []string              `json:"headers"`
	Kinds   map[string]ColumnKind `json:"kinds"`
	Rows    []Row                 `json:"rows"`
}

// New creates an empty table with the given column set
func New(headers []string, kinds map[string]ColumnKind) *Table {
	if kinds == nil {
		kinds = make(map[string]ColumnKind, len(headers))
	}
	return &Table{Headers: headers, Kinds: kinds}
}

// NumRows returns the row count
func (t *Table) NumRows() int { return len(t.Rows) }

// HasColumn reports whether the table carries the named column
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Kinds[name]
	return ok
}

// HasColumns reports whether every named column is present
func (t *Table) HasColumns(names ...string) bool {
	for _, n := range names {
		if !t.HasColumn(n) {
			return false
		}
	}
	return true
}

// MissingColumns returns the subset of names absent from the table
func (t *Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, n := range names {
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Column returns the cells of a column in row order
func (t *Table) Column(name string) ([]Value, error) {
	if !t.HasColumn(name) {
		return nil, core.NewInvalidColumnError(name)
	}
	vals := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = row[name]
	}
	return vals, nil
}

// NumericColumn returns the non-missing numeric cells of a column
func (t *Table) NumericColumn(name string) ([]float64, error) {
	vals, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v.IsNumber() {
			out = append(out, v.AsFloat64())
		}
	}
	return out, nil
}

// AppendColumn appends a derived column. Source columns are never mutated;
// the new column joins the shared column set for all rows.
func (t *Table) AppendColumn(name string, kind ColumnKind, vals []Value) error {
	if len(vals) != len(t.Rows) {
		return fmt.Errorf("derived column %q has %d values for %d rows", name, len(vals), len(t.Rows))
	}
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already present", name)
	}
	t.Headers = append(t.Headers, name)
	t.Kinds[name] = kind
	for i := range t.Rows {
		t.Rows[i][name] = vals[i]
	}
	return nil
}

// Filter returns a table holding the rows for which keep returns true.
// Rows are shared with the receiver, not copied.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Headers: t.Headers, Kinds: t.Kinds}
	for _, row := range t.Rows {
		if keep(row) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Select projects the table onto the named columns, keeping row order.
// Absent names are dropped from the projection rather than erroring, so
// optional display columns degrade the same way optional metrics do.
func (t *Table) Select(names ...string) *Table {
	var headers []string
	kinds := make(map[string]ColumnKind)
	for _, n := range names {
		if k, ok := t.Kinds[n]; ok {
			headers = append(headers, n)
			kinds[n] = k
		}
	}
	out := &Table{Headers: headers, Kinds: kinds, Rows: make([]Row, len(t.Rows))}
	for i, row := range t.Rows {
		r := make(Row, len(headers))
		for _, n := range headers {
			r[n] = row[n]
		}
		out.Rows[i] = r
	}
	return out
}

// Clone deep-copies the table so derivations on the copy leave the original
// untouched. Profiles clone before appending derived columns.
func (t *Table) Clone() *Table {
	kinds := make(map[string]ColumnKind, len(t.Kinds))
	for k, v := range t.Kinds {
		kinds[k] = v
	}
	headers := append([]string(nil), t.Headers...)
	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		r := make(Row, len(row))
		for k, v := range row {
			r[k] = v
		}
		rows[i] = r
	}
	return &Table{Headers: headers, Kinds: kinds, Rows: rows}
}

// NonMissingCount counts cells in the column that hold a value
func (t *Table) NonMissingCount(name string) (int, error) {
	vals, err := t.Column(name)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, v := range vals {
		if !v.IsMissing {
			n++
		}
	}
	return n, nil
}
