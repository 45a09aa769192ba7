package models

// Direction identifies which way a route runs within its group.
type Direction string

const (
	DirectionOutbound Direction = "OUTBOUND"
	DirectionInbound  Direction = "INBOUND"
)

// Opposite returns the paired direction.
func (d Direction) Opposite() Direction {
	if d == DirectionOutbound {
		return DirectionInbound
	}
	return DirectionOutbound
}

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionOutbound || d == DirectionInbound
}

// ScheduleType distinguishes everyday timetables from one-off ones.
type ScheduleType string

const (
	ScheduleTypeRegular ScheduleType = "REGULAR"
	ScheduleTypeSpecial ScheduleType = "SPECIAL"
)

func (t ScheduleType) Valid() bool {
	return t == ScheduleTypeRegular || t == ScheduleTypeSpecial
}

// ScheduleStatus is the directory-side lifecycle state of a schedule.
type ScheduleStatus string

const (
	ScheduleStatusActive   ScheduleStatus = "ACTIVE"
	ScheduleStatusInactive ScheduleStatus = "INACTIVE"
)

// ExceptionType says whether a calendar exception adds or removes a
// service day.
type ExceptionType string

const (
	ExceptionAdded   ExceptionType = "ADDED"
	ExceptionRemoved ExceptionType = "REMOVED"
)

func (t ExceptionType) Valid() bool {
	return t == ExceptionAdded || t == ExceptionRemoved
}

// StopRole is the position a stop plays within a route's ordering. It is
// derived from (index, total count) on demand, never stored, so it cannot
// drift from the route's actual stop list.
type StopRole int

const (
	RoleOrigin StopRole = iota
	RoleIntermediate
	RoleDestination
)

func (r StopRole) String() string {
	switch r {
	case RoleOrigin:
		return "origin"
	case RoleDestination:
		return "destination"
	default:
		return "intermediate"
	}
}

// StopRoleAt derives the role of the stop at index within a list of
// total stops. A single-stop route treats that stop as the origin.
func StopRoleAt(index, total int) StopRole {
	if index == 0 {
		return RoleOrigin
	}
	if index == total-1 {
		return RoleDestination
	}
	return RoleIntermediate
}

// DateFormat is the wire format for effective dates and exception dates.
const DateFormat = "2006-01-02"
