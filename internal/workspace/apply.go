package workspace

import "workspace.busmate.lk/internal/models"

// ApplyParsedSchedules replaces the set with schedules rebuilt through
// the same patch appliers the form surface uses, so the textual and
// structured editing paths can never diverge in how they reach the
// store. Callers run the parse/validate phase first; this method is the
// apply phase and assumes the input already passed it.
func (w *ScheduleWorkspace) ApplyParsedSchedules(parsed []models.Schedule) {
	w.mu.Lock()
	defer w.mu.Unlock()
	next := make([]models.Schedule, 0, len(parsed))
	for _, p := range parsed {
		s := models.Schedule{ID: p.ID, RouteID: p.RouteID}
		for _, patch := range []SchedulePatch{
			SetScheduleName{Value: p.Name},
			SetScheduleType{Value: p.Type},
			SetScheduleStatus{Value: p.Status},
			SetEffectiveStartDate{Value: p.EffectiveStartDate},
			SetEffectiveEndDate{Value: p.EffectiveEndDate},
		} {
			s = applySchedulePatch(s, patch)
		}
		s.Calendar = p.Calendar
		if p.Exceptions != nil {
			s.Exceptions = append([]models.ScheduleException(nil), p.Exceptions...)
		}
		if p.Stops != nil {
			s.Stops = append([]models.ScheduleStop(nil), p.Stops...)
		}
		next = append(next, s)
	}
	w.schedules = next
}
