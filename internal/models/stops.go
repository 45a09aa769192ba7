package models

// Coordinates is a WGS84 point. Stops keep it behind a pointer because a
// freshly entered stop may not have been located on the map yet.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Stop is a point of interest in the external directory. An empty ID
// means the stop has not been created server-side yet.
type Stop struct {
	ID          string       `json:"id,omitempty"`
	Name        string       `json:"name"`
	NameSinhala string       `json:"nameSi,omitempty"`
	NameTamil   string       `json:"nameTa,omitempty"`
	Location    *Coordinates `json:"location,omitempty"`
	AddressLine string       `json:"addressLine,omitempty"`
	City        string       `json:"city,omitempty"`
	Accessible  bool         `json:"accessible"`
}

// IsNew reports whether the stop still lacks a directory-assigned id.
func (s Stop) IsNew() bool {
	return s.ID == ""
}

// Clone returns a copy that shares no pointers with s.
func (s Stop) Clone() Stop {
	out := s
	if s.Location != nil {
		loc := *s.Location
		out.Location = &loc
	}
	return out
}

// RouteStop binds a Stop into one route at an ordered position and a
// distance from the route's start. DistanceFromStartKm is a pointer
// because the distance is entered by hand and may still be missing.
type RouteStop struct {
	Stop                Stop     `json:"stop"`
	StopOrder           int      `json:"stopOrder"`
	DistanceFromStartKm *float64 `json:"distanceFromStartKm,omitempty"`
}

// Clone returns a copy that shares no pointers with rs.
func (rs RouteStop) Clone() RouteStop {
	out := rs
	out.Stop = rs.Stop.Clone()
	if rs.DistanceFromStartKm != nil {
		d := *rs.DistanceFromStartKm
		out.DistanceFromStartKm = &d
	}
	return out
}

// NewRouteStop creates an ordered placement for a stop with no distance
// entered yet.
func NewRouteStop(stop Stop, order int) RouteStop {
	return RouteStop{Stop: stop, StopOrder: order}
}

// Float64Ptr is a convenience for the optional-distance fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
