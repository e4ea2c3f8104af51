package metrics

import (
	"fmt"
	"math"
	"time"

	"siteboard/domain/table"
)

// Scalar is a single aggregate number. Valid=false means the metric was
// skipped (column absent) or undefined (zero denominator, empty column) and
// renders as "N/A" instead of faulting.
type Scalar struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// NewScalar wraps a computed value; NaN and Inf collapse to invalid
func NewScalar(v float64) Scalar {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Scalar{}
	}
	return Scalar{Value: v, Valid: true}
}

// Format renders the scalar with the given decimal places, or "N/A"
func (s Scalar) Format(decimals int) string {
	if !s.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, s.Value)
}

// FormatPercent renders the scalar as a percentage, or "N/A"
func (s Scalar) FormatPercent() string {
	if !s.Valid {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", s.Value)
}

// FrequencyEntry is one distinct value and its occurrence count
type FrequencyEntry struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FrequencyTable maps distinct values to counts, ordered by descending
// count with ties in first-encountered order. A nil table means the metric
// was skipped.
type FrequencyTable []FrequencyEntry

// Total sums the counts, which equals the column's non-missing value count
func (ft FrequencyTable) Total() int {
	n := 0
	for _, e := range ft {
		n += e.Count
	}
	return n
}

// Take returns the first n entries, or all when n exceeds the length
func (ft FrequencyTable) Take(n int) FrequencyTable {
	if n >= len(ft) {
		return ft
	}
	return ft[:n]
}

// ProfitPoint is one day of the financial time series
type ProfitPoint struct {
	Date        time.Time `json:"date"`
	Revenue     float64   `json:"revenue"`
	GrossProfit float64   `json:"gross_profit"`
	NetProfit   float64   `json:"net_profit"`
}

// MarginPoint is one day of the margin time series
type MarginPoint struct {
	Date        time.Time `json:"date"`
	GrossMargin float64   `json:"gross_margin"`
	NetMargin   float64   `json:"net_margin"`
}

// ExpenseSum is one expense category and its total over the period
type ExpenseSum struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// HRReport holds everything the workforce page renders. Optional metrics
// carry nil tables or invalid scalars when their source columns are absent.
type HRReport struct {
	TotalEmployees int `json:"total_employees"`

	Departments FrequencyTable `json:"departments,omitempty"`
	Positions   FrequencyTable `json:"positions,omitempty"`
	Genders     FrequencyTable `json:"genders,omitempty"`

	Promotions         Scalar         `json:"promotions"`
	TurnoverRate       Scalar         `json:"turnover_rate"`
	TurnoverTypes      FrequencyTable `json:"turnover_types,omitempty"`
	TopTurnoverReasons FrequencyTable `json:"top_turnover_reasons,omitempty"`

	AvgOutputProxy     Scalar `json:"avg_output_proxy"`
	AvgAbsenteeismDays Scalar `json:"avg_absenteeism_days"`

	TopByHours    *table.Table `json:"top_by_hours,omitempty"`
	BottomByHours *table.Table `json:"bottom_by_hours,omitempty"`
}

// FinancialReport holds the financial page's scalars, buckets and series
type FinancialReport struct {
	Records     int       `json:"records"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`

	TotalRevenue     Scalar `json:"total_revenue"`
	TotalGrossProfit Scalar `json:"total_gross_profit"`
	GrossMargin      Scalar `json:"gross_margin"`
	TotalNetProfit   Scalar `json:"total_net_profit"`
	NetMargin        Scalar `json:"net_margin"`
	AvgDailyRevenue  Scalar `json:"avg_daily_revenue"`

	OperatingExpenses    []ExpenseSum `json:"operating_expenses"`
	NonOperatingExpenses []ExpenseSum `json:"non_operating_expenses"`

	ProfitSeries []ProfitPoint `json:"profit_series"`
	MarginSeries []MarginPoint `json:"margin_series"`

	// Derived table including all seven computed columns, date-descending,
	// used for the data preview
	Derived *table.Table `json:"-"`
}

// StatusCounts partitions projects by lifecycle status
type StatusCounts struct {
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Confirmed  int `json:"confirmed"`
}

// ConstructionReport holds the construction metrics page output
type ConstructionReport struct {
	TotalProjects      int            `json:"total_projects"`
	Statuses           StatusCounts   `json:"statuses"`
	StatusDistribution FrequencyTable `json:"status_distribution"`

	AvgScheduleVariance   Scalar `json:"avg_schedule_variance"`
	AvgLaborProductivity  Scalar `json:"avg_labor_productivity"`
	AvgClientSatisfaction Scalar `json:"avg_client_satisfaction"`
	AvgBudgetVariance     Scalar `json:"avg_budget_variance"`
	AvgPlannedBudget      Scalar `json:"avg_planned_budget"`

	// Completed-project detail tables, each sorted descending by its
	// headline column. Nil when the source columns for that derivation
	// were absent.
	ScheduleDetail     *table.Table `json:"-"`
	ProductivityDetail *table.Table `json:"-"`
	BudgetDetail       *table.Table `json:"-"`
	SatisfactionDetail *table.Table `json:"-"`

	// Full-table portfolio overview
	Overview *table.Table `json:"-"`
}
