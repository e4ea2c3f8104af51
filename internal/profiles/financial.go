package profiles

import (
	"math"
	"sort"
	"time"

	"siteboard/domain/metrics"
	"siteboard/domain/table"
	"siteboard/internal/aggregate"
)

const (
	colDate             = "date"
	colRevenue          = "revenue"
	colCOGS             = "cogs"
	colSalaries         = "salaries"
	colRent             = "rent"
	colMarketing        = "marketing"
	colUtilities        = "utilities"
	colInterestPaid     = "interest_paid"
	colInvestmentLosses = "investment_losses"
	colLegalSettlements = "legal_settlements"
)

const previewRows = 10

// FinancialSchema hard-requires the full daily-figures column set; a missing
// column aborts the profile, unlike HR's soft-skip policy.
var FinancialSchema = Schema{
	Profile: "financial",
	Required: []string{
		colDate, colRevenue, colCOGS,
		colSalaries, colRent, colMarketing, colUtilities,
		colInterestPaid, colInvestmentLosses, colLegalSettlements,
	},
}

// financialDerivations lists the derived columns in dependency order;
// later formulas read earlier results.
var financialDerivations = []struct {
	name    string
	sources []string
	fn      func(table.Row) table.Value
}{
	{"gross_profit", []string{colRevenue, colCOGS}, diff(colRevenue, colCOGS)},
	{"operating_expenses", []string{colSalaries, colRent, colMarketing, colUtilities},
		sum(colSalaries, colRent, colMarketing, colUtilities)},
	{"non_operating_expenses", []string{colInterestPaid, colInvestmentLosses, colLegalSettlements},
		sum(colInterestPaid, colInvestmentLosses, colLegalSettlements)},
	{"total_expenses", []string{"operating_expenses", "non_operating_expenses"},
		sum("operating_expenses", "non_operating_expenses")},
	{"net_profit", []string{"gross_profit", "total_expenses"}, diff("gross_profit", "total_expenses")},
	{"gross_profit_margin", []string{"gross_profit", colRevenue}, marginOf("gross_profit")},
	{"net_profit_margin", []string{"net_profit", colRevenue}, marginOf("net_profit")},
}

// Financial computes the daily-figures report: the seven derived columns in
// their fixed order, period totals with margins, expense buckets, and the
// date-ascending time series.
func Financial(t *table.Table) (*metrics.FinancialReport, error) {
	if err := FinancialSchema.Check(t); err != nil {
		return nil, err
	}

	d := t.Clone()
	for _, der := range financialDerivations {
		if err := aggregate.DeriveColumn(d, der.name, der.sources, der.fn); err != nil {
			return nil, err
		}
	}

	rep := &metrics.FinancialReport{Records: d.NumRows()}

	totalRevenue, err := aggregate.SumOf(d, colRevenue)
	if err != nil {
		return nil, err
	}
	totalGross, err := aggregate.SumOf(d, "gross_profit")
	if err != nil {
		return nil, err
	}
	totalNet, err := aggregate.SumOf(d, "net_profit")
	if err != nil {
		return nil, err
	}
	meanRevenue, err := aggregate.MeanOf(d, colRevenue)
	if err != nil {
		return nil, err
	}

	rep.TotalRevenue = metrics.NewScalar(totalRevenue)
	rep.TotalGrossProfit = metrics.NewScalar(totalGross)
	rep.TotalNetProfit = metrics.NewScalar(totalNet)
	rep.AvgDailyRevenue = metrics.NewScalar(meanRevenue)
	rep.GrossMargin = metrics.NewScalar(percentOf(totalGross, totalRevenue))
	rep.NetMargin = metrics.NewScalar(percentOf(totalNet, totalRevenue))

	rep.OperatingExpenses, err = expenseSums(d, []expenseCategory{
		{colSalaries, "Salaries"},
		{colRent, "Rent"},
		{colMarketing, "Marketing"},
		{colUtilities, "Utilities"},
	})
	if err != nil {
		return nil, err
	}
	rep.NonOperatingExpenses, err = expenseSums(d, []expenseCategory{
		{colInterestPaid, "Interest Paid"},
		{colInvestmentLosses, "Investment Losses"},
		{colLegalSettlements, "Legal Settlements"},
	})
	if err != nil {
		return nil, err
	}

	if err := buildSeries(d, rep); err != nil {
		return nil, err
	}

	preview, err := aggregate.TopN(d, colDate, previewRows, false)
	if err != nil {
		return nil, err
	}
	rep.Derived = preview

	return rep, nil
}

type expenseCategory struct {
	column string
	label  string
}

func expenseSums(t *table.Table, categories []expenseCategory) ([]metrics.ExpenseSum, error) {
	out := make([]metrics.ExpenseSum, 0, len(categories))
	for _, c := range categories {
		total, err := aggregate.SumOf(t, c.column)
		if err != nil {
			return nil, err
		}
		out = append(out, metrics.ExpenseSum{Category: c.label, Total: total})
	}
	return out, nil
}

// buildSeries orders rows by date ascending and emits both time series.
// Rows without a parseable date stay in the table but not in the series.
func buildSeries(t *table.Table, rep *metrics.FinancialReport) error {
	type dated struct {
		date time.Time
		row  table.Row
	}
	var rows []dated
	for _, row := range t.Rows {
		if d := row[colDate]; d.IsDate() {
			rows = append(rows, dated{d.AsDate(), row})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date.Before(rows[j].date) })

	for i, dr := range rows {
		if i == 0 {
			rep.PeriodStart = dr.date
		}
		rep.PeriodEnd = dr.date

		rep.ProfitSeries = append(rep.ProfitSeries, metrics.ProfitPoint{
			Date:        dr.date,
			Revenue:     dr.row[colRevenue].AsFloat64(),
			GrossProfit: dr.row["gross_profit"].AsFloat64(),
			NetProfit:   dr.row["net_profit"].AsFloat64(),
		})
		gm, nm := dr.row["gross_profit_margin"], dr.row["net_profit_margin"]
		if gm.IsNumber() && nm.IsNumber() {
			rep.MarginSeries = append(rep.MarginSeries, metrics.MarginPoint{
				Date:        dr.date,
				GrossMargin: gm.AsFloat64(),
				NetMargin:   nm.AsFloat64(),
			})
		}
	}
	return nil
}

// percentOf returns part/whole*100, NaN on a zero denominator
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return math.NaN()
	}
	return part / whole * 100
}

// diff builds a pointwise a-b derivation; any missing operand propagates
func diff(a, b string) func(table.Row) table.Value {
	return func(row table.Row) table.Value {
		va, vb := row[a], row[b]
		if !va.IsNumber() || !vb.IsNumber() {
			return table.NewMissingValue(table.KindNumber)
		}
		return table.NewNumberValue(va.AsFloat64() - vb.AsFloat64())
	}
}

// sum builds a pointwise addition over the named columns
func sum(cols ...string) func(table.Row) table.Value {
	return func(row table.Row) table.Value {
		total := 0.0
		for _, c := range cols {
			v := row[c]
			if !v.IsNumber() {
				return table.NewMissingValue(table.KindNumber)
			}
			total += v.AsFloat64()
		}
		return table.NewNumberValue(total)
	}
}

// marginOf builds the per-row profit/revenue*100 derivation; zero revenue
// rows carry a missing margin instead of an infinity
func marginOf(profitCol string) func(table.Row) table.Value {
	return func(row table.Row) table.Value {
		profit, revenue := row[profitCol], row[colRevenue]
		if !profit.IsNumber() || !revenue.IsNumber() || revenue.AsFloat64() == 0 {
			return table.NewMissingValue(table.KindNumber)
		}
		return table.NewNumberValue(profit.AsFloat64() / revenue.AsFloat64() * 100)
	}
}
