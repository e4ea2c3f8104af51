// Package aggregate provides the generic single-pass reductions shared by
// every domain profile: frequency counts, top-N selection, ratios, means,
// sums and pointwise column derivation.
package aggregate

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"siteboard/domain/core"
	"siteboard/domain/metrics"
	"siteboard/domain/table"
)

// FrequencyCount counts occurrences of each distinct non-missing value in
// the column, ordered by descending count with ties in first-encountered
// order.
func FrequencyCount(t *table.Table, column string) (metrics.FrequencyTable, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, v := range vals {
		if v.IsMissing {
			continue
		}
		key := v.Display()
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	ft := make(metrics.FrequencyTable, 0, len(order))
	for _, key := range order {
		ft = append(ft, metrics.FrequencyEntry{Value: key, Count: counts[key]})
	}
	sort.SliceStable(ft, func(i, j int) bool { return ft[i].Count > ft[j].Count })
	return ft, nil
}

// TopN returns the n rows with the largest value in the column, or the
// smallest when ascending. The sort is stable, so ties keep original row
// order; n beyond the row count returns all rows. Rows missing the value
// sort after every present value in either direction.
func TopN(t *table.Table, column string, n int, ascending bool) (*table.Table, error) {
	vals, err := t.Column(column)
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, vb := vals[idx[a]], vals[idx[b]]
		if va.IsMissing != vb.IsMissing {
			return vb.IsMissing
		}
		if va.IsMissing {
			return false
		}
		if ascending {
			return less(va, vb)
		}
		return less(vb, va)
	})

	if n > len(idx) {
		n = len(idx)
	}
	if n < 0 {
		n = 0
	}
	out := &table.Table{Headers: t.Headers, Kinds: t.Kinds}
	for _, i := range idx[:n] {
		out.Rows = append(out.Rows, t.Rows[i])
	}
	return out, nil
}

func less(a, b table.Value) bool {
	if a.IsDate() && b.IsDate() {
		return a.AsDate().Before(b.AsDate())
	}
	if a.IsNumber() && b.IsNumber() {
		return a.AsFloat64() < b.AsFloat64()
	}
	return a.Display() < b.Display()
}

// RatioPercent returns numerator/denominator as a percentage rounded to one
// decimal. A zero denominator yields NaN, which metrics.NewScalar renders
// as N/A.
func RatioPercent(numerator, denominator int) float64 {
	if denominator == 0 {
		return math.NaN()
	}
	v, err := stats.Round(float64(numerator)/float64(denominator)*100, 1)
	if err != nil {
		return math.NaN()
	}
	return v
}

// MeanOf computes the arithmetic mean of the column's non-missing numeric
// values, rounded to two decimals. An empty column yields NaN.
func MeanOf(t *table.Table, column string) (float64, error) {
	data, err := t.NumericColumn(column)
	if err != nil {
		return 0, err
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return math.NaN(), nil
	}
	rounded, err := stats.Round(mean, 2)
	if err != nil {
		return math.NaN(), nil
	}
	return rounded, nil
}

// SumOf sums the column's non-missing numeric values. An empty column sums
// to zero.
func SumOf(t *table.Table, column string) (float64, error) {
	data, err := t.NumericColumn(column)
	if err != nil {
		return 0, err
	}
	return floats.Sum(data), nil
}

// DeriveColumn appends a new numeric column computed pointwise from the
// row's existing cells. When any source column is absent the whole
// derivation is skipped by returning the column error, never applied
// per-row.
func DeriveColumn(t *table.Table, name string, sources []string, fn func(table.Row) table.Value) error {
	if missing := t.MissingColumns(sources...); len(missing) > 0 {
		return core.NewInvalidColumnError(missing[0])
	}
	vals := make([]table.Value, len(t.Rows))
	for i, row := range t.Rows {
		vals[i] = fn(row)
	}
	return t.AppendColumn(name, table.KindNumber, vals)
}
