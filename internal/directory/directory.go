// Package directory talks to the external route/stop/schedule directory,
// the only collaborator the workspace engine depends on. The engine
// never persists anything itself; everything durable goes through here.
package directory

import (
	"context"

	"workspace.busmate.lk/internal/models"
)

// StopQuery narrows ListStops. A zero query lists everything.
type StopQuery struct {
	Name string
	City string
}

// Directory is the abstract external store.
type Directory interface {
	ListStops(ctx context.Context, query StopQuery) ([]models.Stop, error)
	CreateStop(ctx context.Context, stop models.Stop) (models.Stop, error)
	UpdateStop(ctx context.Context, id string, stop models.Stop) (models.Stop, error)
	ListRoutesByGroup(ctx context.Context, groupID string) ([]models.Route, error)
	SaveRouteGroup(ctx context.Context, group models.RouteGroup) (models.RouteGroup, error)
	SaveSchedule(ctx context.Context, routeID string, schedule models.Schedule) (models.Schedule, error)
}
