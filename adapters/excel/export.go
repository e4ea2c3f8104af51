// Package excel renders computed reports as downloadable .xlsx workbooks.
// Nothing is written server-side; the workbook streams to the response.
package excel

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"siteboard/domain/metrics"
	"siteboard/domain/table"
)

// Exporter builds xlsx workbooks from profile reports
type Exporter struct{}

// NewExporter creates an Exporter
func NewExporter() *Exporter {
	return &Exporter{}
}

// WriteHR streams the workforce report as a workbook
func (e *Exporter) WriteHR(w io.Writer, rep *metrics.HRReport) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := [][]interface{}{
		{"Total Employees", rep.TotalEmployees},
		{"Promotions", rep.Promotions.Format(0)},
		{"Turnover Rate", rep.TurnoverRate.FormatPercent()},
		{"Avg Output Proxy", rep.AvgOutputProxy.Format(2)},
		{"Avg Absenteeism Days", rep.AvgAbsenteeismDays.Format(2)},
	}
	if err := writeSummarySheet(f, "Summary", summary); err != nil {
		return err
	}

	frequencySheets := []struct {
		name string
		ft   metrics.FrequencyTable
	}{
		{"Departments", rep.Departments},
		{"Positions", rep.Positions},
		{"Genders", rep.Genders},
		{"Turnover Types", rep.TurnoverTypes},
		{"Turnover Reasons", rep.TopTurnoverReasons},
	}
	for _, s := range frequencySheets {
		if s.ft == nil {
			continue
		}
		if err := writeFrequencySheet(f, s.name, s.ft); err != nil {
			return err
		}
	}

	if rep.TopByHours != nil {
		if err := writeTableSheet(f, "Top Hours", rep.TopByHours); err != nil {
			return err
		}
	}
	if rep.BottomByHours != nil {
		if err := writeTableSheet(f, "Bottom Hours", rep.BottomByHours); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// WriteFinancial streams the financial report as a workbook
func (e *Exporter) WriteFinancial(w io.Writer, rep *metrics.FinancialReport) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := [][]interface{}{
		{"Records", rep.Records},
		{"Total Revenue", rep.TotalRevenue.Format(2)},
		{"Gross Profit", rep.TotalGrossProfit.Format(2)},
		{"Gross Margin", rep.GrossMargin.FormatPercent()},
		{"Net Profit", rep.TotalNetProfit.Format(2)},
		{"Net Margin", rep.NetMargin.FormatPercent()},
		{"Avg Daily Revenue", rep.AvgDailyRevenue.Format(2)},
	}
	if err := writeSummarySheet(f, "Summary", summary); err != nil {
		return err
	}

	sheet := "Expenses"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	row := 1
	for _, bucket := range []struct {
		label string
		sums  []metrics.ExpenseSum
	}{
		{"Operating Expenses", rep.OperatingExpenses},
		{"Non-Operating Expenses", rep.NonOperatingExpenses},
	} {
		if err := setRow(f, sheet, row, bucket.label, ""); err != nil {
			return err
		}
		row++
		for _, s := range bucket.sums {
			if err := setRow(f, sheet, row, s.Category, s.Total); err != nil {
				return err
			}
			row++
		}
		row++
	}

	if rep.Derived != nil {
		if err := writeTableSheet(f, "Data", rep.Derived); err != nil {
			return err
		}
	}

	return f.Write(w)
}

// WriteConstruction streams the construction report as a workbook
func (e *Exporter) WriteConstruction(w io.Writer, rep *metrics.ConstructionReport) error {
	f := excelize.NewFile()
	defer f.Close()

	summary := [][]interface{}{
		{"Total Projects", rep.TotalProjects},
		{"Completed", rep.Statuses.Completed},
		{"In Progress", rep.Statuses.InProgress},
		{"Confirmed", rep.Statuses.Confirmed},
		{"Avg Schedule Variance", rep.AvgScheduleVariance.FormatPercent()},
		{"Avg Labor Productivity", rep.AvgLaborProductivity.FormatPercent()},
		{"Avg Client Satisfaction", rep.AvgClientSatisfaction.Format(1)},
		{"Avg Budget Variance", rep.AvgBudgetVariance.FormatPercent()},
		{"Avg Planned Budget", rep.AvgPlannedBudget.Format(0)},
	}
	if err := writeSummarySheet(f, "Summary", summary); err != nil {
		return err
	}

	if err := writeFrequencySheet(f, "Status", rep.StatusDistribution); err != nil {
		return err
	}

	details := []struct {
		name string
		t    *table.Table
	}{
		{"Schedule", rep.ScheduleDetail},
		{"Productivity", rep.ProductivityDetail},
		{"Budget", rep.BudgetDetail},
		{"Satisfaction", rep.SatisfactionDetail},
		{"Overview", rep.Overview},
	}
	for _, d := range details {
		if d.t == nil {
			continue
		}
		if err := writeTableSheet(f, d.name, d.t); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeSummarySheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	// Sheet1 is renamed so the workbook opens on the summary
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, "Metric", "Value"); err != nil {
		return err
	}
	for i, r := range rows {
		if err := setRow(f, sheet, i+2, r[0], r[1]); err != nil {
			return err
		}
	}
	return nil
}

func writeFrequencySheet(f *excelize.File, sheet string, ft metrics.FrequencyTable) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, "Value", "Count"); err != nil {
		return err
	}
	for i, e := range ft {
		if err := setRow(f, sheet, i+2, e.Value, e.Count); err != nil {
			return err
		}
	}
	return nil
}

func writeTableSheet(f *excelize.File, sheet string, t *table.Table) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	for col, h := range t.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, row := range t.Rows {
		for col, h := range t.Headers {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, row[h].Display()); err != nil {
				return err
			}
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, a, b interface{}) error {
	if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), a); err != nil {
		return err
	}
	return f.SetCellValue(sheet, fmt.Sprintf("B%d", row), b)
}
