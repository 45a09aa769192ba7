package workspace

import (
	"fmt"
	"sync"

	"workspace.busmate.lk/internal/models"
)

// ScheduleWorkspace owns the editing state for one route's schedule set.
// The paired route is read-only context: origin/destination roles and
// timetable distances come from it, but the workspace never mutates it.
// Mutators serialize on an internal mutex, so requests sharing a session
// cannot interleave a read-modify-write.
type ScheduleWorkspace struct {
	mu        sync.Mutex
	route     models.Route
	schedules []models.Schedule
}

// NewScheduleWorkspace opens a schedule set for a route, starting from
// the schedules already stored in the directory (possibly none).
func NewScheduleWorkspace(route models.Route, existing []models.Schedule) *ScheduleWorkspace {
	w := &ScheduleWorkspace{route: route.Clone()}
	for _, s := range existing {
		w.schedules = append(w.schedules, s.Clone())
	}
	return w
}

// Route returns a snapshot of the paired route.
func (w *ScheduleWorkspace) Route() models.Route {
	return w.route.Clone()
}

// Schedules returns a deep-copied snapshot of the whole set.
func (w *ScheduleWorkspace) Schedules() []models.Schedule {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshot()
}

// Schedule returns a snapshot of one schedule.
func (w *ScheduleWorkspace) Schedule(index int) (models.Schedule, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(index); err != nil {
		return models.Schedule{}, err
	}
	return w.schedules[index].Clone(), nil
}

// AddSchedule appends an empty client-local schedule whose stop list
// mirrors the paired route, and returns its index.
func (w *ScheduleWorkspace) AddSchedule() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := w.snapshot()
	next = append(next, models.NewSchedule(w.route))
	w.schedules = next
	return len(w.schedules) - 1
}

// RemoveSchedule drops the schedule at index from the local set. If the
// schedule was already persisted, the removal becomes effective
// server-side only on the next submission round.
func (w *ScheduleWorkspace) RemoveSchedule(index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(index); err != nil {
		return err
	}
	next := w.snapshot()
	w.schedules = append(next[:index:index], next[index+1:]...)
	return nil
}

// UpdateSchedule applies one header-level patch.
func (w *ScheduleWorkspace) UpdateSchedule(index int, patch SchedulePatch) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(index); err != nil {
		return err
	}
	next := w.snapshot()
	next[index] = applySchedulePatch(next[index], patch)
	w.schedules = next
	return nil
}

// UpdateScheduleCalendar flips one weekday. An all-false calendar is a
// legal transient state; validation enforces the at-least-one-day rule.
func (w *ScheduleWorkspace) UpdateScheduleCalendar(index int, patch CalendarDayPatch) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(index); err != nil {
		return err
	}
	next := w.snapshot()
	next[index].Calendar = next[index].Calendar.WithDay(patch.Day, patch.Operating)
	w.schedules = next
	return nil
}

// AddScheduleException appends a date override to the schedule.
func (w *ScheduleWorkspace) AddScheduleException(index int, exc models.ScheduleException) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(index); err != nil {
		return err
	}
	next := w.snapshot()
	next[index].Exceptions = append(next[index].Exceptions, exc)
	w.schedules = next
	return nil
}

// RemoveScheduleException drops the override at excIndex.
func (w *ScheduleWorkspace) RemoveScheduleException(index, excIndex int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(index); err != nil {
		return err
	}
	excs := w.schedules[index].Exceptions
	if excIndex < 0 || excIndex >= len(excs) {
		return fmt.Errorf("exception index %d out of range", excIndex)
	}
	next := w.snapshot()
	next[index].Exceptions = append(excs[:excIndex:excIndex], excs[excIndex+1:]...)
	w.schedules = next
	return nil
}

// UpdateScheduleStop applies one patch to a single timetable row.
func (w *ScheduleWorkspace) UpdateScheduleStop(index, stopIndex int, patch ScheduleStopPatch) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.check(index); err != nil {
		return err
	}
	if stopIndex < 0 || stopIndex >= len(w.schedules[index].Stops) {
		return fmt.Errorf("schedule stop index %d out of range", stopIndex)
	}
	next := w.snapshot()
	next[index].Stops[stopIndex] = applyScheduleStopPatch(next[index].Stops[stopIndex], patch)
	w.schedules = next
	return nil
}

// UpdateAllScheduleStops replaces a schedule's whole stop list in one
// transition. The timetable generator and the clear-all-times action
// land their results through this.
func (w *ScheduleWorkspace) UpdateAllScheduleStops(index int, stops []models.ScheduleStop) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.updateAllStopsLocked(index, stops)
}

func (w *ScheduleWorkspace) updateAllStopsLocked(index int, stops []models.ScheduleStop) error {
	if err := w.check(index); err != nil {
		return err
	}
	next := w.snapshot()
	next[index].Stops = append([]models.ScheduleStop(nil), stops...)
	w.schedules = next
	return nil
}

// ReplaceSchedules swaps the entire set, used when applying a parsed
// textual document after it passed the two-phase parse/validate gate.
func (w *ScheduleWorkspace) ReplaceSchedules(schedules []models.Schedule) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := make([]models.Schedule, len(schedules))
	for i, s := range schedules {
		next[i] = s.Clone()
	}
	w.schedules = next
}

func (w *ScheduleWorkspace) check(index int) error {
	if index < 0 || index >= len(w.schedules) {
		return fmt.Errorf("schedule index %d out of range", index)
	}
	return nil
}

// snapshot deep-copies the schedule slice so a mutator can edit the copy
// and publish it atomically.
func (w *ScheduleWorkspace) snapshot() []models.Schedule {
	next := make([]models.Schedule, len(w.schedules))
	for i, s := range w.schedules {
		next[i] = s.Clone()
	}
	return next
}
