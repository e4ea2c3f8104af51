package profiles

import (
	"siteboard/domain/metrics"
	"siteboard/domain/table"
	"siteboard/internal/aggregate"
)

// HR column names match the upload contract exactly, spaces included
const (
	colDepartment     = "Department"
	colPosition       = "Position"
	colGender         = "Gender"
	colPromotion      = "Promotion"
	colExitDate       = "Exit Date"
	colTurnoverType   = "Turnover Type"
	colTurnoverReason = "Turnover Reason"
	colHoursWorked    = "Hours Worked"
	colSalaryPerHour  = "Salary Per Hour"
	colAbsenteeism    = "Absenteeism Days"
	colEmployeeNr     = "EmployeeNr"
)

const topReasonsLimit = 5
const hoursRankingLimit = 5

// HRSchema recognizes the workforce upload's optional columns. There are no
// required columns: the only always-on metric is the row count.
var HRSchema = Schema{
	Profile: "hr",
	Optional: []Step{
		{Name: "departments", Needs: []string{colDepartment}},
		{Name: "positions", Needs: []string{colPosition}},
		{Name: "genders", Needs: []string{colGender}},
		{Name: "promotions", Needs: []string{colPromotion}},
		{Name: "turnover", Needs: []string{colExitDate}},
		{Name: "turnover_types", Needs: []string{colExitDate, colTurnoverType}},
		{Name: "turnover_reasons", Needs: []string{colTurnoverReason}},
		{Name: "output_proxy", Needs: []string{colHoursWorked, colSalaryPerHour}},
		{Name: "absenteeism", Needs: []string{colAbsenteeism}},
		{Name: "hours_ranking", Needs: []string{colHoursWorked, colEmployeeNr}},
	},
}

// HR computes the workforce report. Optional metrics soft-skip when their
// columns are absent; the report never fails on an incomplete upload.
func HR(t *table.Table) (*metrics.HRReport, error) {
	plan := HRSchema.Evaluate(t)
	rep := &metrics.HRReport{TotalEmployees: t.NumRows()}

	if plan.Has("departments") {
		ft, err := aggregate.FrequencyCount(t, colDepartment)
		if err != nil {
			return nil, err
		}
		rep.Departments = ft
	}
	if plan.Has("positions") {
		ft, err := aggregate.FrequencyCount(t, colPosition)
		if err != nil {
			return nil, err
		}
		rep.Positions = ft
	}
	if plan.Has("genders") {
		ft, err := aggregate.FrequencyCount(t, colGender)
		if err != nil {
			return nil, err
		}
		rep.Genders = ft
	}

	if plan.Has("promotions") {
		n, err := t.NonMissingCount(colPromotion)
		if err != nil {
			return nil, err
		}
		rep.Promotions = metrics.NewScalar(float64(n))
	}

	if plan.Has("turnover") {
		exits, err := t.NonMissingCount(colExitDate)
		if err != nil {
			return nil, err
		}
		// Zero employees leaves the rate N/A rather than dividing by zero
		rep.TurnoverRate = metrics.NewScalar(aggregate.RatioPercent(exits, rep.TotalEmployees))

		if rep.TurnoverRate.Valid && plan.Has("turnover_types") {
			ft, err := aggregate.FrequencyCount(t, colTurnoverType)
			if err != nil {
				return nil, err
			}
			rep.TurnoverTypes = ft
		}
	}

	if plan.Has("turnover_reasons") {
		ft, err := aggregate.FrequencyCount(t, colTurnoverReason)
		if err != nil {
			return nil, err
		}
		rep.TopTurnoverReasons = ft.Take(topReasonsLimit)
	}

	if plan.Has("output_proxy") {
		derived := t.Clone()
		err := aggregate.DeriveColumn(derived, "Output Proxy", []string{colHoursWorked, colSalaryPerHour}, func(row table.Row) table.Value {
			hours, rate := row[colHoursWorked], row[colSalaryPerHour]
			if !hours.IsNumber() || !rate.IsNumber() {
				return table.NewMissingValue(table.KindNumber)
			}
			return table.NewNumberValue(hours.AsFloat64() * rate.AsFloat64())
		})
		if err != nil {
			return nil, err
		}
		mean, err := aggregate.MeanOf(derived, "Output Proxy")
		if err != nil {
			return nil, err
		}
		rep.AvgOutputProxy = metrics.NewScalar(mean)
	}

	if plan.Has("absenteeism") {
		mean, err := aggregate.MeanOf(t, colAbsenteeism)
		if err != nil {
			return nil, err
		}
		rep.AvgAbsenteeismDays = metrics.NewScalar(mean)
	}

	if plan.Has("hours_ranking") {
		top, err := aggregate.TopN(t, colHoursWorked, hoursRankingLimit, false)
		if err != nil {
			return nil, err
		}
		bottom, err := aggregate.TopN(t, colHoursWorked, hoursRankingLimit, true)
		if err != nil {
			return nil, err
		}
		rep.TopByHours = top.Select(colEmployeeNr, colHoursWorked)
		rep.BottomByHours = bottom.Select(colEmployeeNr, colHoursWorked)
	}

	return rep, nil
}
