package models

import "time"

// Calendar holds the seven independent operating-day booleans of a
// schedule. The at-least-one-day rule is enforced by validation, not by
// mutation, so a calendar may be transiently all-false while editing.
type Calendar struct {
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
	Sunday    bool `json:"sunday"`
}

// AnyDay reports whether at least one operating day is set.
func (c Calendar) AnyDay() bool {
	return c.Monday || c.Tuesday || c.Wednesday || c.Thursday || c.Friday || c.Saturday || c.Sunday
}

// Day returns the boolean for the given weekday.
func (c Calendar) Day(d time.Weekday) bool {
	switch d {
	case time.Monday:
		return c.Monday
	case time.Tuesday:
		return c.Tuesday
	case time.Wednesday:
		return c.Wednesday
	case time.Thursday:
		return c.Thursday
	case time.Friday:
		return c.Friday
	case time.Saturday:
		return c.Saturday
	default:
		return c.Sunday
	}
}

// WithDay returns a copy of the calendar with one weekday changed.
func (c Calendar) WithDay(d time.Weekday, operating bool) Calendar {
	switch d {
	case time.Monday:
		c.Monday = operating
	case time.Tuesday:
		c.Tuesday = operating
	case time.Wednesday:
		c.Wednesday = operating
	case time.Thursday:
		c.Thursday = operating
	case time.Friday:
		c.Friday = operating
	case time.Saturday:
		c.Saturday = operating
	case time.Sunday:
		c.Sunday = operating
	}
	return c
}

// OperatingDays lists the set weekdays in Monday-first order.
func (c Calendar) OperatingDays() []time.Weekday {
	days := []time.Weekday{}
	order := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday}
	for _, d := range order {
		if c.Day(d) {
			days = append(days, d)
		}
	}
	return days
}

// ScheduleException overrides the weekly calendar for a single date:
// ADDED activates an otherwise-non-operating day, REMOVED suspends an
// otherwise-operating one.
type ScheduleException struct {
	Date string        `json:"date"`
	Type ExceptionType `json:"type"`
}

// ScheduleStop is one timed (or untimed) stop within a schedule. Times
// are HH:mm or HH:mm:ss strings; empty means not timed. Origin stops
// need a departure, destinations an arrival; intermediates may carry
// neither.
type ScheduleStop struct {
	StopID        string `json:"stopId"`
	StopOrder     int    `json:"stopOrder"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
}

// Schedule is a named, dated, calendared timetable for one route. It is
// client-local (no ID) until the directory confirms a save.
type Schedule struct {
	ID                 string              `json:"id,omitempty"`
	RouteID            string              `json:"routeId"`
	Name               string              `json:"name"`
	Type               ScheduleType        `json:"type"`
	Status             ScheduleStatus      `json:"status"`
	EffectiveStartDate string              `json:"effectiveStartDate"`
	EffectiveEndDate   string              `json:"effectiveEndDate,omitempty"`
	Calendar           Calendar            `json:"calendar"`
	Exceptions         []ScheduleException `json:"exceptions"`
	Stops              []ScheduleStop      `json:"stops"`
}

// NewSchedule creates an empty client-local schedule for a route, with
// one schedule stop per route stop so the timetable columns line up with
// the route from the start.
func NewSchedule(route Route) Schedule {
	s := Schedule{
		RouteID: route.ID,
		Type:    ScheduleTypeRegular,
		Status:  ScheduleStatusActive,
	}
	for i, rs := range route.Stops {
		s.Stops = append(s.Stops, ScheduleStop{StopID: rs.Stop.ID, StopOrder: i})
	}
	return s
}

// IsNew reports whether the schedule still lacks a directory id.
func (s Schedule) IsNew() bool {
	return s.ID == ""
}

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := s
	if s.Exceptions != nil {
		out.Exceptions = append([]ScheduleException(nil), s.Exceptions...)
	}
	if s.Stops != nil {
		out.Stops = append([]ScheduleStop(nil), s.Stops...)
	}
	return out
}

// StopFor returns the schedule's entry for a stop id and its index, or
// (-1, zero) when the schedule does not time that stop.
func (s Schedule) StopFor(stopID string) (int, ScheduleStop) {
	for i, ss := range s.Stops {
		if ss.StopID == stopID {
			return i, ss
		}
	}
	return -1, ScheduleStop{}
}
