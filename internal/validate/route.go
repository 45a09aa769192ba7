package validate

import (
	"fmt"
	"math"

	"workspace.busmate.lk/internal/models"
)

// Distances are entered by hand to two or three decimals; comparisons
// tolerate a metre of float noise.
const distanceToleranceKm = 0.001

// RouteResult is one direction's findings.
type RouteResult struct {
	Direction  models.Direction `json:"direction"`
	Violations []Violation      `json:"violations"`
}

// GroupResult aggregates a route group's findings.
type GroupResult struct {
	IsValid bool          `json:"isValid"`
	Routes  []RouteResult `json:"routes"`
}

// CheckRouteGroup runs CheckRoute on every direction the group holds.
func CheckRouteGroup(g models.RouteGroup) GroupResult {
	result := GroupResult{IsValid: true}
	for _, r := range []*models.Route{g.Outbound, g.Inbound} {
		if r == nil {
			continue
		}
		violations := CheckRoute(*r)
		if HasErrors(violations) {
			result.IsValid = false
		}
		result.Routes = append(result.Routes, RouteResult{Direction: r.Direction, Violations: violations})
	}
	return result
}

// CheckRoute checks one route's distance profile and endpoints. The
// workspace lets edits pass through any intermediate state; these rules
// gate saving to the directory.
func CheckRoute(r models.Route) []Violation {
	var out []Violation

	if r.StartStopID != "" && r.StartStopID == r.EndStopID {
		out = append(out, errv("endStopId", "the route must end at a different stop than it starts from"))
	}
	if originID := r.OriginStopID(); originID != "" && originID == r.DestinationStopID() {
		out = append(out, errv("stops", "the route starts and ends at the same stop %q", originID))
	}

	var prev float64
	havePrev := false
	for i, rs := range r.Stops {
		field := fmt.Sprintf("stops[%d].distanceFromStartKm", i)
		if rs.DistanceFromStartKm == nil {
			out = append(out, errv(field, "distance from start is required"))
			continue
		}
		d := *rs.DistanceFromStartKm
		if i == 0 && math.Abs(d) > distanceToleranceKm {
			out = append(out, errv(field, "the first stop must be at distance 0, got %.3f km", d))
		}
		if havePrev && d < prev-distanceToleranceKm {
			out = append(out, errv(field, "distance %.3f km is below the previous stop's %.3f km", d, prev))
		}
		if i < len(r.Stops)-1 && d >= r.DistanceKm-distanceToleranceKm && r.DistanceKm > 0 {
			out = append(out, errv(field, "distance %.3f km reaches the route's total %.3f km before the last stop", d, r.DistanceKm))
		}
		prev, havePrev = d, true
	}

	if n := len(r.Stops); n >= 2 {
		if last := r.Stops[n-1].DistanceFromStartKm; last != nil {
			if math.Abs(*last-r.DistanceKm) > distanceToleranceKm {
				out = append(out, errv("distanceKm", "the last stop is at %.3f km but the route's total distance is %.3f km", *last, r.DistanceKm))
			}
		}
	}
	return out
}
