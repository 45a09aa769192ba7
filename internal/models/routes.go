package models

// Route is one direction of a route group: identity fields plus an
// ordered list of stops. The first stop is the origin, the last the
// destination.
type Route struct {
	ID                       string      `json:"id,omitempty"`
	Name                     string      `json:"name"`
	Description              string      `json:"description,omitempty"`
	Direction                Direction   `json:"direction"`
	StartStopID              string      `json:"startStopId,omitempty"`
	StartStopName            string      `json:"startStopName,omitempty"`
	EndStopID                string      `json:"endStopId,omitempty"`
	EndStopName              string      `json:"endStopName,omitempty"`
	DistanceKm               float64     `json:"distanceKm"`
	EstimatedDurationMinutes int         `json:"estimatedDurationMinutes"`
	Stops                    []RouteStop `json:"stops"`
}

// NewRoute creates an empty client-local route for one direction.
func NewRoute(direction Direction) Route {
	return Route{Direction: direction}
}

// Clone returns a deep copy of the route.
func (r Route) Clone() Route {
	out := r
	if r.Stops != nil {
		out.Stops = make([]RouteStop, len(r.Stops))
		for i, rs := range r.Stops {
			out.Stops[i] = rs.Clone()
		}
	}
	return out
}

// OriginStopID returns the stop id of the route's first stop, or "".
func (r Route) OriginStopID() string {
	if len(r.Stops) == 0 {
		return ""
	}
	return r.Stops[0].Stop.ID
}

// DestinationStopID returns the stop id of the route's last stop, or "".
// A single-stop route has an origin but no destination.
func (r Route) DestinationStopID() string {
	if len(r.Stops) < 2 {
		return ""
	}
	return r.Stops[len(r.Stops)-1].Stop.ID
}

// RoleOfStop derives the role the given stop id plays in this route, by
// position. The second return is false when the stop is not on the route.
func (r Route) RoleOfStop(stopID string) (StopRole, bool) {
	for i, rs := range r.Stops {
		if rs.Stop.ID == stopID {
			return StopRoleAt(i, len(r.Stops)), true
		}
	}
	return RoleIntermediate, false
}

// RouteGroup pairs the two directional routes of one named route. At
// most one route per direction exists at a time, which the two fields
// encode structurally.
type RouteGroup struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Outbound *Route `json:"outbound,omitempty"`
	Inbound  *Route `json:"inbound,omitempty"`
}

// NewRouteGroup creates an empty client-local group.
func NewRouteGroup(name string) RouteGroup {
	return RouteGroup{Name: name}
}

// Clone returns a deep copy of the group.
func (g RouteGroup) Clone() RouteGroup {
	out := g
	if g.Outbound != nil {
		r := g.Outbound.Clone()
		out.Outbound = &r
	}
	if g.Inbound != nil {
		r := g.Inbound.Clone()
		out.Inbound = &r
	}
	return out
}

// RouteFor returns the group's route for the given direction, or nil.
func (g *RouteGroup) RouteFor(direction Direction) *Route {
	if direction == DirectionOutbound {
		return g.Outbound
	}
	return g.Inbound
}

// SetRoute replaces the group's route for the route's own direction.
func (g *RouteGroup) SetRoute(r Route) {
	if r.Direction == DirectionOutbound {
		g.Outbound = &r
	} else {
		g.Inbound = &r
	}
}
