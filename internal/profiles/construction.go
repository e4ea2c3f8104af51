package profiles

import (
	"siteboard/domain/metrics"
	"siteboard/domain/table"
	"siteboard/internal/aggregate"
)

const (
	colProjectStatus     = "project_status"
	colProjectName       = "project_name"
	colStartDate         = "start_date"
	colEndDate           = "end_date"
	colActualEndDate     = "actual_end_date"
	colPlannedBudget     = "planned_budget"
	colActualBudget      = "actual_budget"
	colLaborPlanned      = "labor_hours_planned"
	colLaborActual       = "labor_hours_actual"
	colSatisfaction      = "client_satisfaction_score"
	colProjectDifficulty = "project_difficulty"
)

// Project lifecycle statuses. Rows with any other status stay in the full
// table but belong to none of the three subsets.
const (
	StatusCompleted  = "Completed"
	StatusInProgress = "In Progress"
	StatusConfirmed  = "Confirmed"
)

// ConstructionSchema requires only the status and name columns; every
// derived metric soft-skips on its own column set.
var ConstructionSchema = Schema{
	Profile:  "construction",
	Required: []string{colProjectStatus, colProjectName},
	Optional: []Step{
		{Name: "durations", Needs: []string{colStartDate, colEndDate, colActualEndDate}},
		{Name: "labor", Needs: []string{colLaborPlanned, colLaborActual}},
		{Name: "budget", Needs: []string{colPlannedBudget, colActualBudget}},
		{Name: "satisfaction", Needs: []string{colSatisfaction}},
		{Name: "planned_budget", Needs: []string{colPlannedBudget}},
	},
}

// Construction computes the project metrics report. Variance derivations
// run over the Completed subset only; a planned value of zero substitutes 1
// as the divisor rather than faulting.
func Construction(t *table.Table) (*metrics.ConstructionReport, error) {
	if err := ConstructionSchema.Check(t); err != nil {
		return nil, err
	}
	plan := ConstructionSchema.Evaluate(t)

	rep := &metrics.ConstructionReport{TotalProjects: t.NumRows()}

	statusOf := func(row table.Row) string { return row[colProjectStatus].AsString() }
	completed := t.Filter(func(r table.Row) bool { return statusOf(r) == StatusCompleted }).Clone()
	rep.Statuses = metrics.StatusCounts{
		Completed:  completed.NumRows(),
		InProgress: t.Filter(func(r table.Row) bool { return statusOf(r) == StatusInProgress }).NumRows(),
		Confirmed:  t.Filter(func(r table.Row) bool { return statusOf(r) == StatusConfirmed }).NumRows(),
	}

	dist, err := aggregate.FrequencyCount(t, colProjectStatus)
	if err != nil {
		return nil, err
	}
	rep.StatusDistribution = dist

	if plan.Has("durations") {
		if err := deriveDurations(completed); err != nil {
			return nil, err
		}
		mean, err := aggregate.MeanOf(completed, "schedule_variance")
		if err != nil {
			return nil, err
		}
		rep.AvgScheduleVariance = metrics.NewScalar(mean)
		rep.ScheduleDetail, err = sortedDetail(completed, "schedule_variance",
			colProjectName, "planned_duration", "actual_duration", "schedule_variance")
		if err != nil {
			return nil, err
		}
	}

	if plan.Has("labor") {
		err := aggregate.DeriveColumn(completed, "labor_productivity",
			[]string{colLaborPlanned, colLaborActual}, ratioDerivation(colLaborPlanned, colLaborActual))
		if err != nil {
			return nil, err
		}
		mean, err := aggregate.MeanOf(completed, "labor_productivity")
		if err != nil {
			return nil, err
		}
		rep.AvgLaborProductivity = metrics.NewScalar(mean)
		rep.ProductivityDetail, err = sortedDetail(completed, "labor_productivity",
			colProjectName, colLaborPlanned, colLaborActual, "labor_productivity")
		if err != nil {
			return nil, err
		}
	}

	if plan.Has("budget") {
		err := aggregate.DeriveColumn(completed, "budget_variance",
			[]string{colPlannedBudget, colActualBudget}, varianceDerivation(colActualBudget, colPlannedBudget))
		if err != nil {
			return nil, err
		}
		mean, err := aggregate.MeanOf(completed, "budget_variance")
		if err != nil {
			return nil, err
		}
		rep.AvgBudgetVariance = metrics.NewScalar(mean)
		rep.BudgetDetail, err = sortedDetail(completed, "budget_variance",
			colProjectName, colPlannedBudget, colActualBudget, "budget_variance")
		if err != nil {
			return nil, err
		}
	}

	if plan.Has("satisfaction") {
		mean, err := aggregate.MeanOf(completed, colSatisfaction)
		if err != nil {
			return nil, err
		}
		rep.AvgClientSatisfaction = metrics.NewScalar(mean)
		rep.SatisfactionDetail, err = sortedDetail(completed, colSatisfaction,
			colProjectName, colSatisfaction, colProjectDifficulty)
		if err != nil {
			return nil, err
		}
	}

	if plan.Has("planned_budget") {
		// Mean budget spans the whole portfolio, not just completed work
		mean, err := aggregate.MeanOf(t, colPlannedBudget)
		if err != nil {
			return nil, err
		}
		rep.AvgPlannedBudget = metrics.NewScalar(mean)
	}

	rep.Overview = t.Select(colProjectName, colProjectStatus, colStartDate, colEndDate,
		colPlannedBudget, colProjectDifficulty)

	return rep, nil
}

// deriveDurations appends planned/actual duration in days and the schedule
// variance over them
func deriveDurations(completed *table.Table) error {
	days := func(endCol string) func(table.Row) table.Value {
		return func(row table.Row) table.Value {
			start, end := row[colStartDate], row[endCol]
			if !start.IsDate() || !end.IsDate() {
				return table.NewMissingValue(table.KindNumber)
			}
			d := end.AsDate().Sub(start.AsDate()).Hours() / 24
			return table.NewNumberValue(float64(int(d)))
		}
	}
	if err := aggregate.DeriveColumn(completed, "planned_duration",
		[]string{colStartDate, colEndDate}, days(colEndDate)); err != nil {
		return err
	}
	if err := aggregate.DeriveColumn(completed, "actual_duration",
		[]string{colStartDate, colActualEndDate}, days(colActualEndDate)); err != nil {
		return err
	}
	return aggregate.DeriveColumn(completed, "schedule_variance",
		[]string{"planned_duration", "actual_duration"},
		func(row table.Row) table.Value {
			planned, actual := row["planned_duration"], row["actual_duration"]
			if !planned.IsNumber() || !actual.IsNumber() {
				return table.NewMissingValue(table.KindNumber)
			}
			denom := planned.AsFloat64()
			if denom == 0 {
				denom = 1
			}
			return table.NewNumberValue((planned.AsFloat64() - actual.AsFloat64()) / denom * 100)
		})
}

// ratioDerivation builds num/den*100 with the zero-to-one divisor policy
func ratioDerivation(numCol, denCol string) func(table.Row) table.Value {
	return func(row table.Row) table.Value {
		num, den := row[numCol], row[denCol]
		if !num.IsNumber() || !den.IsNumber() {
			return table.NewMissingValue(table.KindNumber)
		}
		d := den.AsFloat64()
		if d == 0 {
			d = 1
		}
		return table.NewNumberValue(num.AsFloat64() / d * 100)
	}
}

// varianceDerivation builds (actual-planned)/planned*100 with the same
// zero-to-one divisor policy
func varianceDerivation(actualCol, plannedCol string) func(table.Row) table.Value {
	return func(row table.Row) table.Value {
		actual, planned := row[actualCol], row[plannedCol]
		if !actual.IsNumber() || !planned.IsNumber() {
			return table.NewMissingValue(table.KindNumber)
		}
		denom := planned.AsFloat64()
		if denom == 0 {
			denom = 1
		}
		return table.NewNumberValue((actual.AsFloat64() - planned.AsFloat64()) / denom * 100)
	}
}

// sortedDetail projects the completed subset onto display columns, ordered
// descending by the headline column
func sortedDetail(completed *table.Table, orderBy string, cols ...string) (*table.Table, error) {
	sorted, err := aggregate.TopN(completed, orderBy, completed.NumRows(), false)
	if err != nil {
		return nil, err
	}
	return sorted.Select(cols...), nil
}
