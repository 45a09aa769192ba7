// Package workspace holds the in-memory editing state for one route
// group or one schedule set. All mutation goes through patch-applying
// methods that replace state structurally, so every transition is a
// discrete snapshot and no caller can observe a half-written structure.
package workspace

import (
	"time"

	"workspace.busmate.lk/internal/models"
)

// RoutePatch is a tagged variant describing one field-level edit to a
// route. The sealed marker method keeps the variant set closed so a
// type switch over it stays exhaustive.
type RoutePatch interface {
	isRoutePatch()
}

type SetRouteName struct{ Value string }

type SetRouteDescription struct{ Value string }

type SetRouteDistanceKm struct{ Value float64 }

type SetRouteDuration struct{ Minutes int }

// SetRouteEndpoints records the start/end stop identity fields together,
// since the form edits them as one unit.
type SetRouteEndpoints struct {
	StartStopID   string
	StartStopName string
	EndStopID     string
	EndStopName   string
}

func (SetRouteName) isRoutePatch()        {}
func (SetRouteDescription) isRoutePatch() {}
func (SetRouteDistanceKm) isRoutePatch()  {}
func (SetRouteDuration) isRoutePatch()    {}
func (SetRouteEndpoints) isRoutePatch()   {}

// RouteStopPatch is a tagged variant for edits to one placed stop.
type RouteStopPatch interface {
	isRouteStopPatch()
}

type SetStopID struct{ Value string }

type SetStopName struct {
	Name        string
	NameSinhala string
	NameTamil   string
}

type SetStopLocation struct{ Lat, Lon float64 }

type ClearStopLocation struct{}

type SetStopAddress struct{ AddressLine, City string }

type SetStopAccessible struct{ Value bool }

type SetDistanceFromStart struct{ Km float64 }

type ClearDistanceFromStart struct{}

func (SetStopID) isRouteStopPatch()              {}
func (SetStopName) isRouteStopPatch()            {}
func (SetStopLocation) isRouteStopPatch()        {}
func (ClearStopLocation) isRouteStopPatch()      {}
func (SetStopAddress) isRouteStopPatch()         {}
func (SetStopAccessible) isRouteStopPatch()      {}
func (SetDistanceFromStart) isRouteStopPatch()   {}
func (ClearDistanceFromStart) isRouteStopPatch() {}

// SchedulePatch is a tagged variant for header-level schedule edits.
// Calendar days, exceptions and stops have dedicated mutators.
type SchedulePatch interface {
	isSchedulePatch()
}

type SetScheduleName struct{ Value string }

type SetScheduleType struct{ Value models.ScheduleType }

type SetScheduleStatus struct{ Value models.ScheduleStatus }

type SetEffectiveStartDate struct{ Value string }

// SetEffectiveEndDate with an empty value marks the schedule indefinite.
type SetEffectiveEndDate struct{ Value string }

func (SetScheduleName) isSchedulePatch()       {}
func (SetScheduleType) isSchedulePatch()       {}
func (SetScheduleStatus) isSchedulePatch()     {}
func (SetEffectiveStartDate) isSchedulePatch() {}
func (SetEffectiveEndDate) isSchedulePatch()   {}

// ScheduleStopPatch is a tagged variant for edits to one timetable cell
// pair.
type ScheduleStopPatch interface {
	isScheduleStopPatch()
}

type SetArrivalTime struct{ Value string }

type SetDepartureTime struct{ Value string }

// CopyArrivalToDeparture mirrors the arrival cell into the departure
// cell, a manual-entry convenience.
type CopyArrivalToDeparture struct{}

type ClearStopTimes struct{}

func (SetArrivalTime) isScheduleStopPatch()         {}
func (SetDepartureTime) isScheduleStopPatch()       {}
func (CopyArrivalToDeparture) isScheduleStopPatch() {}
func (ClearStopTimes) isScheduleStopPatch()         {}

func applyRoutePatch(r models.Route, p RoutePatch) models.Route {
	switch p := p.(type) {
	case SetRouteName:
		r.Name = p.Value
	case SetRouteDescription:
		r.Description = p.Value
	case SetRouteDistanceKm:
		r.DistanceKm = p.Value
	case SetRouteDuration:
		r.EstimatedDurationMinutes = p.Minutes
	case SetRouteEndpoints:
		r.StartStopID = p.StartStopID
		r.StartStopName = p.StartStopName
		r.EndStopID = p.EndStopID
		r.EndStopName = p.EndStopName
	}
	return r
}

func applyRouteStopPatch(rs models.RouteStop, p RouteStopPatch) models.RouteStop {
	switch p := p.(type) {
	case SetStopID:
		rs.Stop.ID = p.Value
	case SetStopName:
		rs.Stop.Name = p.Name
		rs.Stop.NameSinhala = p.NameSinhala
		rs.Stop.NameTamil = p.NameTamil
	case SetStopLocation:
		rs.Stop.Location = &models.Coordinates{Lat: p.Lat, Lon: p.Lon}
	case ClearStopLocation:
		rs.Stop.Location = nil
	case SetStopAddress:
		rs.Stop.AddressLine = p.AddressLine
		rs.Stop.City = p.City
	case SetStopAccessible:
		rs.Stop.Accessible = p.Value
	case SetDistanceFromStart:
		rs.DistanceFromStartKm = models.Float64Ptr(p.Km)
	case ClearDistanceFromStart:
		rs.DistanceFromStartKm = nil
	}
	return rs
}

func applySchedulePatch(s models.Schedule, p SchedulePatch) models.Schedule {
	switch p := p.(type) {
	case SetScheduleName:
		s.Name = p.Value
	case SetScheduleType:
		s.Type = p.Value
	case SetScheduleStatus:
		s.Status = p.Value
	case SetEffectiveStartDate:
		s.EffectiveStartDate = p.Value
	case SetEffectiveEndDate:
		s.EffectiveEndDate = p.Value
	}
	return s
}

func applyScheduleStopPatch(ss models.ScheduleStop, p ScheduleStopPatch) models.ScheduleStop {
	switch p := p.(type) {
	case SetArrivalTime:
		ss.ArrivalTime = p.Value
	case SetDepartureTime:
		ss.DepartureTime = p.Value
	case CopyArrivalToDeparture:
		ss.DepartureTime = ss.ArrivalTime
	case ClearStopTimes:
		ss.ArrivalTime = ""
		ss.DepartureTime = ""
	}
	return ss
}

// CalendarDayPatch flips one weekday on a schedule's calendar.
type CalendarDayPatch struct {
	Day       time.Weekday
	Operating bool
}
