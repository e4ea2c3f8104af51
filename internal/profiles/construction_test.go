package profiles

import (
	"errors"
	"testing"

	"siteboard/domain/core"
)

const constructionFixture = "project_name,project_status,start_date,end_date,actual_end_date,planned_budget,actual_budget,labor_hours_planned,labor_hours_actual,client_satisfaction_score,project_difficulty\n" +
	"P1,Completed,2024-01-01,2024-01-11,2024-01-16,1000,1200,100,80,8,3\n" +
	"P2,Completed,2024-02-01,2024-02-01,2024-02-03,500,400,50,50,9,2\n" +
	"P3,In Progress,2024-03-01,2024-05-01,,2000,,,,,4\n" +
	"P4,Confirmed,2024-06-01,2024-08-01,,3000,,,,,1\n" +
	"P5,Cancelled,2024-04-01,2024-04-15,,1500,,,,,2\n"

// TestConstructionStatusPartition tests the lifecycle partition and counts
func TestConstructionStatusPartition(t *testing.T) {
	tbl := loadCSV(t, constructionFixture)

	rep, err := Construction(tbl)
	if err != nil {
		t.Fatalf("Construction failed: %v", err)
	}

	if rep.TotalProjects != 5 {
		t.Errorf("Expected 5 projects, got %d", rep.TotalProjects)
	}
	if rep.Statuses.Completed != 2 || rep.Statuses.InProgress != 1 || rep.Statuses.Confirmed != 1 {
		t.Errorf("Unexpected status counts: %+v", rep.Statuses)
	}
	// The cancelled project stays in the total and the distribution only
	if counted := rep.Statuses.Completed + rep.Statuses.InProgress + rep.Statuses.Confirmed; counted != 4 {
		t.Errorf("Expected 4 projects across the three tracked statuses, got %d", counted)
	}
	if len(rep.StatusDistribution) != 4 {
		t.Errorf("Expected 4 distinct statuses, got %+v", rep.StatusDistribution)
	}
	if rep.StatusDistribution[0].Value != "Completed" || rep.StatusDistribution[0].Count != 2 {
		t.Errorf("Expected Completed:2 first, got %+v", rep.StatusDistribution[0])
	}
}

// TestConstructionDerivedAverages tests the completed-only derivations
func TestConstructionDerivedAverages(t *testing.T) {
	tbl := loadCSV(t, constructionFixture)

	rep, err := Construction(tbl)
	if err != nil {
		t.Fatalf("Construction failed: %v", err)
	}

	// P1: (10-15)/10*100 = -50; P2 planned 0 days substitutes divisor 1,
	// (0-2)/1*100 = -200
	if !rep.AvgScheduleVariance.Valid || rep.AvgScheduleVariance.Value != -125 {
		t.Errorf("Expected schedule variance -125, got %+v", rep.AvgScheduleVariance)
	}
	// P1: 100/80*100 = 125; P2: 50/50*100 = 100
	if !rep.AvgLaborProductivity.Valid || rep.AvgLaborProductivity.Value != 112.5 {
		t.Errorf("Expected productivity 112.5, got %+v", rep.AvgLaborProductivity)
	}
	// P1: (1200-1000)/1000*100 = 20; P2: (400-500)/500*100 = -20
	if !rep.AvgBudgetVariance.Valid || rep.AvgBudgetVariance.Value != 0 {
		t.Errorf("Expected budget variance 0, got %+v", rep.AvgBudgetVariance)
	}
	if !rep.AvgClientSatisfaction.Valid || rep.AvgClientSatisfaction.Value != 8.5 {
		t.Errorf("Expected satisfaction 8.5, got %+v", rep.AvgClientSatisfaction)
	}
	// Planned budget spans all five projects
	if !rep.AvgPlannedBudget.Valid || rep.AvgPlannedBudget.Value != 1600 {
		t.Errorf("Expected planned budget 1600, got %+v", rep.AvgPlannedBudget)
	}
}

// TestConstructionDetailTables tests the sorted completed-project details
func TestConstructionDetailTables(t *testing.T) {
	tbl := loadCSV(t, constructionFixture)

	rep, err := Construction(tbl)
	if err != nil {
		t.Fatalf("Construction failed: %v", err)
	}

	if rep.ScheduleDetail == nil || rep.ScheduleDetail.NumRows() != 2 {
		t.Fatalf("Expected 2 completed rows in the schedule detail, got %+v", rep.ScheduleDetail)
	}
	// Descending by schedule_variance: -50 before -200
	if rep.ScheduleDetail.Rows[0]["project_name"].AsString() != "P1" {
		t.Errorf("Expected P1 first in schedule detail, got %+v", rep.ScheduleDetail.Rows[0])
	}
	if !rep.ScheduleDetail.HasColumns("planned_duration", "actual_duration", "schedule_variance") {
		t.Error("Expected derived duration columns in the schedule detail")
	}

	if rep.ProductivityDetail.Rows[0]["project_name"].AsString() != "P1" {
		t.Error("Expected P1 first in productivity detail")
	}
	if rep.BudgetDetail.Rows[0]["project_name"].AsString() != "P1" {
		t.Error("Expected P1 first in budget detail")
	}
	if rep.SatisfactionDetail.Rows[0]["project_name"].AsString() != "P2" {
		t.Error("Expected P2 first in satisfaction detail")
	}

	if rep.Overview == nil || rep.Overview.NumRows() != 5 {
		t.Errorf("Expected all 5 projects in the overview, got %+v", rep.Overview)
	}
}

// TestConstructionSoftSkip tests optional column sets skip their sections
func TestConstructionSoftSkip(t *testing.T) {
	tbl := loadCSV(t, "project_name,project_status\nP1,Completed\nP2,Confirmed\n")

	rep, err := Construction(tbl)
	if err != nil {
		t.Fatalf("Construction must not fail on a minimal upload: %v", err)
	}
	if rep.TotalProjects != 2 {
		t.Errorf("Expected 2 projects, got %d", rep.TotalProjects)
	}
	if rep.AvgScheduleVariance.Valid || rep.AvgLaborProductivity.Valid ||
		rep.AvgBudgetVariance.Valid || rep.AvgClientSatisfaction.Valid || rep.AvgPlannedBudget.Valid {
		t.Error("Expected all derived averages skipped")
	}
	if rep.ScheduleDetail != nil || rep.ProductivityDetail != nil || rep.BudgetDetail != nil {
		t.Error("Expected detail tables skipped")
	}
}

// TestConstructionMissingRequired tests the status column is mandatory
func TestConstructionMissingRequired(t *testing.T) {
	tbl := loadCSV(t, "project_name\nP1\n")

	_, err := Construction(tbl)
	if !errors.Is(err, core.ErrMissingRequiredColumns) {
		t.Errorf("Expected ErrMissingRequiredColumns, got %v", err)
	}
}

// TestConstructionPurity tests the source table is never mutated
func TestConstructionPurity(t *testing.T) {
	tbl := loadCSV(t, constructionFixture)

	if _, err := Construction(tbl); err != nil {
		t.Fatalf("Construction failed: %v", err)
	}
	for _, col := range []string{"planned_duration", "schedule_variance", "labor_productivity", "budget_variance"} {
		if tbl.HasColumn(col) {
			t.Errorf("Derived column %s leaked into the source table", col)
		}
	}
}
