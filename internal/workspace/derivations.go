package workspace

import (
	"workspace.busmate.lk/internal/derive"
	"workspace.busmate.lk/internal/models"
)

// DeriveReverseRoute builds the target direction's route from its pair
// and writes it into the group, fully replacing any existing route in
// that direction. On a precondition failure nothing is written, so the
// operation is idempotent and non-destructive.
func (w *RouteGroupWorkspace) DeriveReverseRoute(target models.Direction) derive.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	source := w.group.RouteFor(target.Opposite())
	if source == nil {
		return derive.Result{Message: "cannot generate " + string(target) + " route: the " + string(target.Opposite()) + " route does not exist yet"}
	}
	route, res := derive.ReverseRoute(*source, target)
	if !res.Success {
		return res
	}
	w.replaceRouteLocked(route)
	return res
}

// GenerateTimetable fills one schedule's stop times from the paired
// route's distances. The result lands through UpdateAllScheduleStops, so
// the transition is a single snapshot like any form edit.
func (w *ScheduleWorkspace) GenerateTimetable(index int, params derive.TimetableParams) derive.Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(index); err != nil {
		return derive.Result{Message: err.Error()}
	}
	stops, res := derive.GenerateTimetable(w.route.Stops, params)
	if !res.Success {
		return res
	}
	if err := w.updateAllStopsLocked(index, stops); err != nil {
		return derive.Result{Message: err.Error()}
	}
	return res
}

// ClearAllTimes empties every time cell of one schedule.
func (w *ScheduleWorkspace) ClearAllTimes(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(index); err != nil {
		return err
	}
	return w.updateAllStopsLocked(index, derive.ClearTimes(w.schedules[index].Stops))
}
