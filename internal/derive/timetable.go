package derive

import (
	"math"

	"workspace.busmate.lk/internal/models"
)

// TimetableParams are the inputs of the timetable generator.
type TimetableParams struct {
	StartTime    string  `json:"startTime"`
	AvgSpeedKmh  float64 `json:"avgSpeedKmh"`
	DwellSeconds int     `json:"dwellSeconds"`
}

// GenerateTimetable computes arrival and departure times for every stop
// of a route. Travel time to stop i is round(d_i / speed * 60) minutes
// from the start; the origin's arrival degenerates to the start time.
// Every stop except the destination departs ceil(dwell/60) minutes after
// arriving; the destination's departure equals its arrival, since the
// vehicle goes nowhere afterwards.
//
// Because distances are non-decreasing and speed and dwell non-negative,
// the produced sequences are non-decreasing by construction. A run that
// crosses midnight keeps counting hours upward (25:30:00) instead of
// wrapping, so later stops never fall below earlier ones. Validation
// re-checks the monotonicity independently so hand-edited timetables are
// held to the same rule.
func GenerateTimetable(stops []models.RouteStop, params TimetableParams) ([]models.ScheduleStop, Result) {
	if len(stops) == 0 {
		return nil, fail("route has no stops")
	}
	if params.AvgSpeedKmh <= 0 {
		return nil, fail("average speed must be positive, got %.2f km/h", params.AvgSpeedKmh)
	}
	if params.DwellSeconds < 0 {
		return nil, fail("dwell time must not be negative, got %ds", params.DwellSeconds)
	}
	startMinutes, err := models.ParseTimeOfDay(params.StartTime)
	if err != nil {
		return nil, fail("invalid start time: %v", err)
	}
	for i, rs := range stops {
		if rs.DistanceFromStartKm == nil {
			return nil, fail("stop %d (%s) has no distance from start", i, rs.Stop.Name)
		}
	}

	dwellMinutes := (params.DwellSeconds + 59) / 60

	out := make([]models.ScheduleStop, len(stops))
	for i, rs := range stops {
		arrival := startMinutes
		if i > 0 {
			travel := *rs.DistanceFromStartKm / params.AvgSpeedKmh * 60
			arrival = startMinutes + int(math.Round(travel))
		}
		departure := arrival
		if i < len(stops)-1 {
			departure = arrival + dwellMinutes
		}
		out[i] = models.ScheduleStop{
			StopID:        rs.Stop.ID,
			StopOrder:     i,
			ArrivalTime:   models.FormatTimeOfDay(arrival),
			DepartureTime: models.FormatTimeOfDay(departure),
		}
	}
	return out, ok(nil)
}

// ClearTimes returns a copy of the stops with every time cell emptied.
func ClearTimes(stops []models.ScheduleStop) []models.ScheduleStop {
	out := make([]models.ScheduleStop, len(stops))
	for i, ss := range stops {
		ss.ArrivalTime = ""
		ss.DepartureTime = ""
		out[i] = ss
	}
	return out
}
