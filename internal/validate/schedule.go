// Package validate checks schedules against their paired route. All
// functions are pure reads: they can run on every keystroke without any
// mutation risk, and their findings are advisory — an invalid model
// stays fully editable.
package validate

import (
	"fmt"
	"time"

	"workspace.busmate.lk/internal/models"
)

// Severity grades a violation. Errors block submission; warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Violation is one finding against one field of one schedule.
type Violation struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func errv(field, format string, args ...any) Violation {
	return Violation{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityError}
}

func warnv(field, format string, args ...any) Violation {
	return Violation{Field: field, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning}
}

// HasErrors reports whether any violation in the list is error-grade.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CheckSchedule runs the single-schedule checks against the paired
// route. The route decides which stop is the origin and which the
// destination; the schedule's own list may be a subset of the route's.
func CheckSchedule(s models.Schedule, route models.Route) []Violation {
	var out []Violation

	if s.Name == "" {
		out = append(out, errv("name", "schedule name is required"))
	}
	if s.RouteID == "" {
		out = append(out, errv("route", "a route must be selected"))
	} else if route.ID != "" && s.RouteID != route.ID {
		out = append(out, errv("route", "schedule references route %q but belongs to route %q", s.RouteID, route.ID))
	}

	out = append(out, checkDates(s)...)

	if !s.Calendar.AnyDay() {
		out = append(out, errv("calendar", "at least one operating day must be selected"))
	}

	out = append(out, checkExceptions(s)...)
	out = append(out, checkStops(s, route)...)
	return out
}

func checkDates(s models.Schedule) []Violation {
	var out []Violation

	var start time.Time
	if s.EffectiveStartDate == "" {
		out = append(out, errv("effectiveStartDate", "effective start date is required"))
	} else {
		var err error
		start, err = time.Parse(models.DateFormat, s.EffectiveStartDate)
		if err != nil {
			out = append(out, errv("effectiveStartDate", "invalid date %q, use YYYY-MM-DD", s.EffectiveStartDate))
		}
	}

	if s.EffectiveEndDate != "" {
		end, err := time.Parse(models.DateFormat, s.EffectiveEndDate)
		if err != nil {
			out = append(out, errv("effectiveEndDate", "invalid date %q, use YYYY-MM-DD", s.EffectiveEndDate))
		} else if !start.IsZero() && !end.After(start) {
			out = append(out, errv("effectiveEndDate", "end date must be after the start date"))
		}
	}
	return out
}

func checkExceptions(s models.Schedule) []Violation {
	var out []Violation
	seen := make(map[string]bool)

	var start, end time.Time
	hasStart, hasEnd := false, false
	if t, err := time.Parse(models.DateFormat, s.EffectiveStartDate); err == nil {
		start, hasStart = t, true
	}
	if s.EffectiveEndDate != "" {
		if t, err := time.Parse(models.DateFormat, s.EffectiveEndDate); err == nil {
			end, hasEnd = t, true
		}
	}

	for i, e := range s.Exceptions {
		field := fmt.Sprintf("exceptions[%d].date", i)
		date, err := time.Parse(models.DateFormat, e.Date)
		if err != nil {
			out = append(out, errv(field, "invalid date %q, use YYYY-MM-DD", e.Date))
			continue
		}
		if seen[e.Date] {
			out = append(out, errv(field, "duplicate exception for %s", e.Date))
		}
		seen[e.Date] = true

		if hasStart && date.Before(start) {
			out = append(out, warnv(field, "exception %s is before the effective start date", e.Date))
		}
		if hasEnd && date.After(end) {
			out = append(out, warnv(field, "exception %s is after the effective end date", e.Date))
		}
	}
	return out
}

func checkStops(s models.Schedule, route models.Route) []Violation {
	var out []Violation

	seen := make(map[string]int)
	for i, ss := range s.Stops {
		if ss.StopID == "" {
			continue
		}
		if first, dup := seen[ss.StopID]; dup {
			out = append(out, errv(fmt.Sprintf("stops[%d].stopId", i), "stop %q already appears at position %d", ss.StopID, first))
			continue
		}
		seen[ss.StopID] = i
	}

	// Times: format, and departure not before arrival when both present.
	for i, ss := range s.Stops {
		arrField := fmt.Sprintf("stops[%d].arrivalTime", i)
		depField := fmt.Sprintf("stops[%d].departureTime", i)

		var arr, dep int
		arrOK, depOK := false, false
		if ss.ArrivalTime != "" {
			var err error
			if arr, err = models.ParseTimeOfDay(ss.ArrivalTime); err != nil {
				out = append(out, errv(arrField, "%v", err))
			} else {
				arrOK = true
			}
		}
		if ss.DepartureTime != "" {
			var err error
			if dep, err = models.ParseTimeOfDay(ss.DepartureTime); err != nil {
				out = append(out, errv(depField, "%v", err))
			} else {
				depOK = true
			}
		}
		if arrOK && depOK && dep < arr {
			out = append(out, errv(depField, "departure %s is before arrival %s", ss.DepartureTime, ss.ArrivalTime))
		}
	}

	// The generator produces non-decreasing times by construction, but
	// hand edits must satisfy the same rule, so it is re-checked here.
	prev := -1
	prevIdx := 0
	for i, ss := range s.Stops {
		arr, arrErr := models.ParseTimeOfDay(ss.ArrivalTime)
		dep, depErr := models.ParseTimeOfDay(ss.DepartureTime)
		if arrErr == nil {
			if prev >= 0 && arr < prev {
				out = append(out, errv(fmt.Sprintf("stops[%d].arrivalTime", i),
					"arrival %s is before stop %d's departure", ss.ArrivalTime, prevIdx))
			}
			prev, prevIdx = arr, i
		}
		if depErr == nil {
			if prev >= 0 && dep < prev && arrErr != nil {
				out = append(out, errv(fmt.Sprintf("stops[%d].departureTime", i),
					"departure %s is before stop %d's time", ss.DepartureTime, prevIdx))
			}
			if dep >= prev {
				prev, prevIdx = dep, i
			}
		}
	}

	// Origin and destination roles come from the paired route's
	// ordering, never from the schedule's own list.
	if originID := route.OriginStopID(); originID != "" {
		idx, ss := s.StopFor(originID)
		switch {
		case idx < 0:
			out = append(out, errv("stops", "the route's origin stop %q is missing from the schedule", originID))
		case ss.DepartureTime == "":
			out = append(out, errv(fmt.Sprintf("stops[%d].departureTime", idx), "the origin stop requires a departure time"))
		}
	}
	if destID := route.DestinationStopID(); destID != "" {
		idx, ss := s.StopFor(destID)
		switch {
		case idx < 0:
			out = append(out, errv("stops", "the route's destination stop %q is missing from the schedule", destID))
		case ss.ArrivalTime == "":
			out = append(out, errv(fmt.Sprintf("stops[%d].arrivalTime", idx), "the destination stop requires an arrival time"))
		}
	}
	return out
}
