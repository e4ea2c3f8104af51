// Package profiles derives the per-domain dashboard metrics. Each domain
// declares a schema descriptor; the descriptor is evaluated once against
// the loaded table's column set and yields the static list of metric steps
// to run, so presence checks never scatter through the computation.
package profiles

import (
	"fmt"

	"siteboard/domain/core"
	"siteboard/domain/table"
)

// Step is one metric group and the columns it needs
type Step struct {
	Name  string
	Needs []string
}

// Schema describes which columns a domain recognizes
type Schema struct {
	Profile  string
	Required []string
	Optional []Step
}

// Check verifies the required column set, naming the full expected set in
// the error so the page can render one descriptive message
func (s Schema) Check(t *table.Table) error {
	if missing := t.MissingColumns(s.Required...); len(missing) > 0 {
		return fmt.Errorf("%w: %w", core.ErrProfileFailed, core.NewMissingColumnsError(s.Profile, missing, s.Required))
	}
	return nil
}

// Plan records which optional steps are runnable for a given table
type Plan map[string]bool

// Evaluate builds the plan: a step runs iff every column it needs is
// present. Absent columns soft-skip the step, they never fail the profile.
func (s Schema) Evaluate(t *table.Table) Plan {
	plan := make(Plan, len(s.Optional))
	for _, step := range s.Optional {
		plan[step.Name] = t.HasColumns(step.Needs...)
	}
	return plan
}

// Has reports whether the named step is runnable
func (p Plan) Has(name string) bool { return p[name] }
