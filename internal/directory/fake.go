package directory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"workspace.busmate.lk/internal/models"
)

// Fake is an in-memory Directory used by tests and by the dev server
// when no directory URL is configured. Ids are assigned the way the real
// service assigns them: on create, never on the client.
type Fake struct {
	mu        sync.Mutex
	stops     map[string]models.Stop
	groups    map[string]models.RouteGroup
	schedules map[string]models.Schedule

	// SaveScheduleHook, when set, runs before each SaveSchedule and can
	// reject it, so tests can script per-entity failures.
	SaveScheduleHook func(routeID string, schedule models.Schedule) error
}

// NewFake creates an empty in-memory directory.
func NewFake() *Fake {
	return &Fake{
		stops:     make(map[string]models.Stop),
		groups:    make(map[string]models.RouteGroup),
		schedules: make(map[string]models.Schedule),
	}
}

func (f *Fake) ListStops(_ context.Context, query StopQuery) ([]models.Stop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Stop
	for _, s := range f.stops {
		if query.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(query.Name)) {
			continue
		}
		if query.City != "" && !strings.EqualFold(s.City, query.City) {
			continue
		}
		out = append(out, s.Clone())
	}
	return out, nil
}

func (f *Fake) CreateStop(_ context.Context, stop models.Stop) (models.Stop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if stop.ID != "" {
		return models.Stop{}, fmt.Errorf("stop already has id %s", stop.ID)
	}
	stop.ID = uuid.NewString()
	f.stops[stop.ID] = stop.Clone()
	return stop, nil
}

func (f *Fake) UpdateStop(_ context.Context, id string, stop models.Stop) (models.Stop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.stops[id]; !ok {
		return models.Stop{}, fmt.Errorf("stop %s not found", id)
	}
	stop.ID = id
	f.stops[id] = stop.Clone()
	return stop, nil
}

func (f *Fake) ListRoutesByGroup(_ context.Context, groupID string) ([]models.Route, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("route group %s not found", groupID)
	}
	var out []models.Route
	if g.Outbound != nil {
		out = append(out, g.Outbound.Clone())
	}
	if g.Inbound != nil {
		out = append(out, g.Inbound.Clone())
	}
	return out, nil
}

func (f *Fake) SaveRouteGroup(_ context.Context, group models.RouteGroup) (models.RouteGroup, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	saved := group.Clone()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if saved.Outbound != nil && saved.Outbound.ID == "" {
		saved.Outbound.ID = uuid.NewString()
	}
	if saved.Inbound != nil && saved.Inbound.ID == "" {
		saved.Inbound.ID = uuid.NewString()
	}
	f.groups[saved.ID] = saved.Clone()
	return saved, nil
}

func (f *Fake) SaveSchedule(_ context.Context, routeID string, schedule models.Schedule) (models.Schedule, error) {
	f.mu.Lock()
	hook := f.SaveScheduleHook
	f.mu.Unlock()
	if hook != nil {
		if err := hook(routeID, schedule); err != nil {
			return models.Schedule{}, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	saved := schedule.Clone()
	saved.RouteID = routeID
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	f.schedules[saved.ID] = saved.Clone()
	return saved, nil
}

// SchedulesForRoute returns the stored schedules of one route, for test
// assertions and for opening a schedule workspace against the fake.
func (f *Fake) SchedulesForRoute(routeID string) []models.Schedule {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Schedule
	for _, s := range f.schedules {
		if s.RouteID == routeID {
			out = append(out, s.Clone())
		}
	}
	return out
}

// SeedGroup stores a group with the ids it already carries, bypassing id
// assignment, so tests can set up known fixtures.
func (f *Fake) SeedGroup(group models.RouteGroup) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.groups[group.ID] = group.Clone()
}
