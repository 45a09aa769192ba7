// Package derive contains the two automatic computations of the
// workspace: building one direction's route from its pair by geometric
// reversal, and filling a schedule's timetable from distance, speed and
// dwell parameters. Both are pure: they return their result and a
// Result record and never write anywhere.
package derive

import (
	"fmt"
	"strings"

	"workspace.busmate.lk/internal/models"
)

// Result reports the outcome of a derivation. Warnings carry recoverable
// oddities; Message explains a hard failure when Success is false.
type Result struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func ok(warnings []string) Result {
	return Result{Success: true, Warnings: warnings}
}

func fail(format string, args ...any) Result {
	return Result{Success: false, Message: fmt.Sprintf(format, args...)}
}

// ReverseRoute builds the target-direction route from an already
// populated source route. Distances are re-derived as
// totalDistance - distanceFromStart, stop orders renumbered densely, and
// the endpoint identity fields swapped. Geometry is assumed symmetric:
// total distance and estimated duration are copied unchanged.
//
// On a precondition failure the returned route is the zero value and
// nothing should be written back; the operation never guesses at
// missing source data.
func ReverseRoute(source models.Route, target models.Direction) (models.Route, Result) {
	if !target.Valid() {
		return models.Route{}, fail("unknown target direction %q", target)
	}
	if target == source.Direction {
		return models.Route{}, fail("target direction %s equals the source direction", target)
	}
	if missing := reversalPreconditions(source); len(missing) > 0 {
		return models.Route{}, fail("cannot generate %s route: %s", target, strings.Join(missing, "; "))
	}

	var warnings []string
	total := *source.Stops[len(source.Stops)-1].DistanceFromStartKm

	reversed := make([]models.RouteStop, len(source.Stops))
	for i, rs := range source.Stops {
		j := len(source.Stops) - 1 - i
		flipped := rs.Clone()
		flipped.StopOrder = j
		flipped.DistanceFromStartKm = models.Float64Ptr(total - *rs.DistanceFromStartKm)
		reversed[j] = flipped
		if rs.Stop.Location == nil {
			warnings = append(warnings, fmt.Sprintf("stop %q has no coordinates", rs.Stop.Name))
		}
	}

	origin := reversed[0].Stop
	destination := reversed[len(reversed)-1].Stop

	out := models.Route{
		Direction:                target,
		Name:                     reverseLabel(source.Name),
		Description:              reverseLabel(source.Description),
		StartStopID:              origin.ID,
		StartStopName:            origin.Name,
		EndStopID:                destination.ID,
		EndStopName:              destination.Name,
		DistanceKm:               source.DistanceKm,
		EstimatedDurationMinutes: source.EstimatedDurationMinutes,
		Stops:                    reversed,
	}
	return out, ok(warnings)
}

// reversalPreconditions lists everything that blocks a reversal, so the
// caller can show the operator the whole gap at once.
func reversalPreconditions(source models.Route) []string {
	var missing []string
	if len(source.Stops) < 2 {
		missing = append(missing, fmt.Sprintf("source route needs at least 2 stops, has %d", len(source.Stops)))
		return missing
	}
	for i, rs := range source.Stops {
		if rs.Stop.ID == "" {
			missing = append(missing, fmt.Sprintf("stop %d (%s) has no directory id", i, rs.Stop.Name))
		}
		if rs.DistanceFromStartKm == nil {
			missing = append(missing, fmt.Sprintf("stop %d (%s) has no distance from start", i, rs.Stop.Name))
		}
	}
	return missing
}

func reverseLabel(s string) string {
	if s == "" {
		return ""
	}
	return s + " (reversed)"
}
