package table

import (
	"testing"
	"time"
)

func numberRow(cols map[string]float64) Row {
	row := make(Row, len(cols))
	for k, v := range cols {
		row[k] = NewNumberValue(v)
	}
	return row
}

// TestValueDisplay tests rendering for each value kind
func TestValueDisplay(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"string", NewStringValue("Engineering"), "Engineering"},
		{"whole number", NewNumberValue(42), "42"},
		{"fractional number", NewNumberValue(3.14159), "3.14"},
		{"date", NewDateValue(date), "2024-03-15"},
		{"missing", NewMissingValue(KindNumber), ""},
	}

	for _, test := range tests {
		if got := test.value.Display(); got != test.expected {
			t.Errorf("%s: expected %q, got %q", test.name, test.expected, got)
		}
	}
}

// TestNewStringValueEmpty tests that empty strings become missing markers
func TestNewStringValueEmpty(t *testing.T) {
	v := NewStringValue("")
	if !v.IsMissing {
		t.Error("Expected empty string to be missing")
	}
	if v.Kind != KindString {
		t.Errorf("Expected missing marker to keep kind %s, got %s", KindString, v.Kind)
	}
}

// TestAppendColumn tests derived column attachment and its error cases
func TestAppendColumn(t *testing.T) {
	tbl := New([]string{"a"}, map[string]ColumnKind{"a": KindNumber})
	tbl.Rows = []Row{numberRow(map[string]float64{"a": 1}), numberRow(map[string]float64{"a": 2})}

	vals := []Value{NewNumberValue(10), NewNumberValue(20)}
	if err := tbl.AppendColumn("b", KindNumber, vals); err != nil {
		t.Fatalf("AppendColumn failed: %v", err)
	}

	if !tbl.HasColumn("b") {
		t.Error("Expected column b after append")
	}
	if tbl.Headers[len(tbl.Headers)-1] != "b" {
		t.Error("Expected appended column last in header order")
	}
	if tbl.Rows[1]["b"].AsFloat64() != 20 {
		t.Errorf("Expected row value 20, got %v", tbl.Rows[1]["b"].AsFloat64())
	}

	// Duplicate name must fail
	if err := tbl.AppendColumn("b", KindNumber, vals); err == nil {
		t.Error("Expected error appending duplicate column")
	}

	// Length mismatch must fail
	if err := tbl.AppendColumn("c", KindNumber, vals[:1]); err == nil {
		t.Error("Expected error on value count mismatch")
	}
}

// TestSelectDropsAbsent tests that projection ignores unknown columns
func TestSelectDropsAbsent(t *testing.T) {
	tbl := New([]string{"a", "b"}, map[string]ColumnKind{"a": KindNumber, "b": KindNumber})
	tbl.Rows = []Row{numberRow(map[string]float64{"a": 1, "b": 2})}

	out := tbl.Select("b", "nope", "a")
	if len(out.Headers) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(out.Headers))
	}
	if out.Headers[0] != "b" || out.Headers[1] != "a" {
		t.Errorf("Expected selection order preserved, got %v", out.Headers)
	}
	if out.NumRows() != 1 {
		t.Errorf("Expected 1 row, got %d", out.NumRows())
	}
	if _, ok := out.Rows[0]["nope"]; ok {
		t.Error("Absent column should not appear in projected rows")
	}
}

// TestCloneIndependence tests that derivations on a clone leave the original alone
func TestCloneIndependence(t *testing.T) {
	tbl := New([]string{"a"}, map[string]ColumnKind{"a": KindNumber})
	tbl.Rows = []Row{numberRow(map[string]float64{"a": 1})}

	clone := tbl.Clone()
	if err := clone.AppendColumn("derived", KindNumber, []Value{NewNumberValue(99)}); err != nil {
		t.Fatalf("AppendColumn on clone failed: %v", err)
	}

	if tbl.HasColumn("derived") {
		t.Error("Appending to the clone mutated the original column set")
	}
	if _, ok := tbl.Rows[0]["derived"]; ok {
		t.Error("Appending to the clone mutated the original rows")
	}
}

// TestFilter tests row selection by predicate
func TestFilter(t *testing.T) {
	tbl := New([]string{"a"}, map[string]ColumnKind{"a": KindNumber})
	for _, n := range []float64{1, 2, 3, 4} {
		tbl.Rows = append(tbl.Rows, numberRow(map[string]float64{"a": n}))
	}

	out := tbl.Filter(func(r Row) bool { return r["a"].AsFloat64() > 2 })
	if out.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", out.NumRows())
	}
	if tbl.NumRows() != 4 {
		t.Errorf("Filter must not mutate the source, got %d rows", tbl.NumRows())
	}
}

// TestNumericColumn tests that missing cells are excluded from numeric extraction
func TestNumericColumn(t *testing.T) {
	tbl := New([]string{"a"}, map[string]ColumnKind{"a": KindNumber})
	tbl.Rows = []Row{
		{"a": NewNumberValue(1)},
		{"a": NewMissingValue(KindNumber)},
		{"a": NewNumberValue(3)},
	}

	data, err := tbl.NumericColumn("a")
	if err != nil {
		t.Fatalf("NumericColumn failed: %v", err)
	}
	if len(data) != 2 {
		t.Errorf("Expected 2 numeric values, got %d", len(data))
	}

	n, err := tbl.NonMissingCount("a")
	if err != nil {
		t.Fatalf("NonMissingCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 non-missing cells, got %d", n)
	}
}

// TestColumnErrors tests lookups against absent columns
func TestColumnErrors(t *testing.T) {
	tbl := New([]string{"a"}, map[string]ColumnKind{"a": KindNumber})

	if _, err := tbl.Column("missing"); err == nil {
		t.Error("Expected error for absent column")
	}
	missing := tbl.MissingColumns("a", "x", "y")
	if len(missing) != 2 {
		t.Errorf("Expected 2 missing names, got %v", missing)
	}
}
