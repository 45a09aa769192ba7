package validate

import (
	"strings"

	"workspace.busmate.lk/internal/models"
)

// ScheduleResult is one schedule's findings, keyed by its index in the
// set so a caller can mark the right editor row.
type ScheduleResult struct {
	Index      int         `json:"index"`
	Violations []Violation `json:"violations"`
}

// IsValid reports whether the schedule has no error-grade findings.
func (r ScheduleResult) IsValid() bool {
	return !HasErrors(r.Violations)
}

// SetResult aggregates a whole schedule set's findings.
type SetResult struct {
	IsValid   bool             `json:"isValid"`
	Schedules []ScheduleResult `json:"schedules"`
}

// CheckScheduleSet runs the single-schedule checks on every schedule and
// the cross-schedule checks on the set as a whole.
func CheckScheduleSet(schedules []models.Schedule, route models.Route) SetResult {
	result := SetResult{IsValid: true}

	nameAt := make(map[string]int)
	for i, s := range schedules {
		violations := CheckSchedule(s, route)

		// Names must be unique within the set; they are the labels the
		// directory shows operators, compared case-insensitively.
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if key != "" {
			if first, dup := nameAt[key]; dup {
				violations = append(violations, errv("name", "name %q is already used by schedule %d", s.Name, first))
			} else {
				nameAt[key] = i
			}
		}

		if HasErrors(violations) {
			result.IsValid = false
		}
		result.Schedules = append(result.Schedules, ScheduleResult{Index: i, Violations: violations})
	}
	return result
}

// FirstError returns the first error-grade violation of a result, used
// by the submission orchestrator to attach a headline message to a
// failing entity.
func (r ScheduleResult) FirstError() (Violation, bool) {
	for _, v := range r.Violations {
		if v.Severity == SeverityError {
			return v, true
		}
	}
	return Violation{}, false
}
