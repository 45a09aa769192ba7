// Package submit drives the multi-item save of a schedule set to the
// directory. Entities are persisted one at a time, never concurrently:
// the directory does not tolerate overlapping writes for one route, the
// progress count must reflect true completion, and a failure has to be
// attributable to exactly one entity. A failed entity never aborts its
// siblings and nothing is rolled back.
package submit

import (
	"context"
	"fmt"
	"log/slog"

	"workspace.busmate.lk/internal/models"
	"workspace.busmate.lk/internal/validate"
)

// Status is the state of one entity, and of the run as a whole.
type Status string

const (
	StatusPending    Status = "pending"
	StatusValidating Status = "validating"
	StatusSaving     Status = "saving"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// ScheduleSaver is the one directory operation the orchestrator needs.
type ScheduleSaver interface {
	SaveSchedule(ctx context.Context, routeID string, schedule models.Schedule) (models.Schedule, error)
}

// Item tracks one schedule through the run.
type Item struct {
	Schedule models.Schedule `json:"schedule"`
	Status   Status          `json:"status"`
	Message  string          `json:"message,omitempty"`
}

// Report is the final tally of a run.
type Report struct {
	Aggregate  Status   `json:"aggregate"`
	Succeeded  int      `json:"succeeded"`
	Failed     int      `json:"failed"`
	Incomplete bool     `json:"incomplete"`
	Warnings   []string `json:"warnings,omitempty"`
	Items      []Item   `json:"items"`
}

// TransitionFunc observes per-entity status changes, e.g. to drive a
// progress bar. Called synchronously between saves, never concurrently.
type TransitionFunc func(index int, status Status)

// Orchestrator runs validate-then-submit for one route's schedule set.
type Orchestrator struct {
	route        models.Route
	items        []Item
	aggregate    Status
	saver        ScheduleSaver
	logger       *slog.Logger
	onTransition TransitionFunc
}

// New creates an orchestrator with every entity pending.
func New(route models.Route, schedules []models.Schedule, saver ScheduleSaver, logger *slog.Logger) *Orchestrator {
	o := &Orchestrator{
		route:     route,
		aggregate: StatusPending,
		saver:     saver,
		logger:    logger,
	}
	for _, s := range schedules {
		o.items = append(o.items, Item{Schedule: s.Clone(), Status: StatusPending})
	}
	return o
}

// OnTransition registers the status observer. Pass nil to remove it.
func (o *Orchestrator) OnTransition(fn TransitionFunc) {
	o.onTransition = fn
}

// Items returns a snapshot of the per-entity states.
func (o *Orchestrator) Items() []Item {
	out := make([]Item, len(o.items))
	for i, item := range o.items {
		out[i] = Item{Schedule: item.Schedule.Clone(), Status: item.Status, Message: item.Message}
	}
	return out
}

// Aggregate returns the run-level status.
func (o *Orchestrator) Aggregate() Status {
	return o.aggregate
}

// Validate runs the validation engine over the whole set. Entities with
// error-grade findings move to error with their first violation message;
// clean entities stay pending. It reports whether the set may be
// submitted.
func (o *Orchestrator) Validate() bool {
	o.setAggregate(StatusValidating)
	for i := range o.items {
		o.transition(i, StatusValidating, "")
	}

	schedules := make([]models.Schedule, len(o.items))
	for i, item := range o.items {
		schedules[i] = item.Schedule
	}
	result := validate.CheckScheduleSet(schedules, o.route)

	for i, sr := range result.Schedules {
		if v, failed := sr.FirstError(); failed {
			o.transition(i, StatusError, v.Field+": "+v.Message)
		} else {
			o.transition(i, StatusPending, "")
		}
	}

	if !result.IsValid {
		o.setAggregate(StatusError)
		return false
	}
	o.setAggregate(StatusPending)
	return true
}

// Submit persists every pending entity sequentially. Callers gate it on
// a clean Validate run; Submit itself does not re-validate, keeping the
// two operations independently testable. A cancelled context stops the
// loop before the next entity starts but never interrupts an in-flight
// save; the report then carries an incomplete-submission warning and no
// already-saved entity is rolled back.
func (o *Orchestrator) Submit(ctx context.Context) Report {
	o.setAggregate(StatusSaving)

	cancelled := false
	for i := range o.items {
		if o.items[i].Status != StatusPending {
			continue
		}
		if err := ctx.Err(); err != nil {
			cancelled = true
			break
		}

		o.transition(i, StatusSaving, "")
		saved, err := o.saver.SaveSchedule(ctx, o.route.ID, o.items[i].Schedule)
		if err != nil {
			o.transition(i, StatusError, err.Error())
			if o.logger != nil {
				o.logger.Error("schedule save failed",
					"route_id", o.route.ID,
					"schedule", o.items[i].Schedule.Name,
					"error", err)
			}
			continue
		}
		o.items[i].Schedule = saved
		o.transition(i, StatusSuccess, "")
	}
	return o.report(cancelled)
}

func (o *Orchestrator) report(cancelled bool) Report {
	report := Report{Items: o.Items()}
	pending := 0
	for _, item := range o.items {
		switch item.Status {
		case StatusSuccess:
			report.Succeeded++
		case StatusError:
			report.Failed++
		default:
			pending++
		}
	}

	switch {
	case report.Failed > 0:
		o.setAggregate(StatusError)
	case pending > 0:
		o.setAggregate(StatusPending)
	default:
		o.setAggregate(StatusSuccess)
	}
	report.Aggregate = o.aggregate

	if cancelled || pending > 0 {
		report.Incomplete = true
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"incomplete submission: %d of %d schedules persisted; saved entities were not rolled back",
			report.Succeeded, len(o.items)))
	}
	return report
}

func (o *Orchestrator) transition(index int, status Status, message string) {
	o.items[index].Status = status
	o.items[index].Message = message
	if o.onTransition != nil {
		o.onTransition(index, status)
	}
}

func (o *Orchestrator) setAggregate(status Status) {
	o.aggregate = status
}
