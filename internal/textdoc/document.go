// Package textdoc is the textual projection of a route's schedule set: a
// YAML document an operator can edit, download or paste back. Encoding
// is deterministic so re-displaying unedited state never shows a diff;
// decoding is strict and reports structural problems as positioned
// errors instead of coercing garbled input into a plausible model.
package textdoc

import (
	"workspace.busmate.lk/internal/models"
)

// Document is the root of the projection: one route's schedule set.
type Document struct {
	RouteID   string             `yaml:"routeId"`
	Schedules []ScheduleDocument `yaml:"schedules"`
}

// ScheduleDocument mirrors models.Schedule field for field. Every field
// a reachable model can hold is present here; the round-trip law depends
// on that.
type ScheduleDocument struct {
	ID                 string              `yaml:"id,omitempty"`
	Name               string              `yaml:"name"`
	Type               string              `yaml:"type"`
	Status             string              `yaml:"status"`
	EffectiveStartDate string              `yaml:"effectiveStartDate"`
	EffectiveEndDate   string              `yaml:"effectiveEndDate,omitempty"`
	Calendar           CalendarDocument    `yaml:"calendar"`
	Exceptions         []ExceptionDocument `yaml:"exceptions,omitempty"`
	Stops              []StopDocument      `yaml:"stops,omitempty"`
}

type CalendarDocument struct {
	Monday    bool `yaml:"monday"`
	Tuesday   bool `yaml:"tuesday"`
	Wednesday bool `yaml:"wednesday"`
	Thursday  bool `yaml:"thursday"`
	Friday    bool `yaml:"friday"`
	Saturday  bool `yaml:"saturday"`
	Sunday    bool `yaml:"sunday"`
}

type ExceptionDocument struct {
	Date string `yaml:"date"`
	Type string `yaml:"type"`
}

type StopDocument struct {
	StopID        string `yaml:"stopId"`
	StopOrder     int    `yaml:"stopOrder"`
	ArrivalTime   string `yaml:"arrivalTime,omitempty"`
	DepartureTime string `yaml:"departureTime,omitempty"`
}

// FromModel projects a schedule set into its document form.
func FromModel(routeID string, schedules []models.Schedule) Document {
	doc := Document{RouteID: routeID}
	for _, s := range schedules {
		sd := ScheduleDocument{
			ID:                 s.ID,
			Name:               s.Name,
			Type:               string(s.Type),
			Status:             string(s.Status),
			EffectiveStartDate: s.EffectiveStartDate,
			EffectiveEndDate:   s.EffectiveEndDate,
			Calendar:           CalendarDocument(s.Calendar),
		}
		for _, e := range s.Exceptions {
			sd.Exceptions = append(sd.Exceptions, ExceptionDocument{Date: e.Date, Type: string(e.Type)})
		}
		for _, ss := range s.Stops {
			sd.Stops = append(sd.Stops, StopDocument{
				StopID:        ss.StopID,
				StopOrder:     ss.StopOrder,
				ArrivalTime:   ss.ArrivalTime,
				DepartureTime: ss.DepartureTime,
			})
		}
		doc.Schedules = append(doc.Schedules, sd)
	}
	return doc
}

// Model converts the document back into schedules. Zero-length lists
// normalize to nil so a round trip compares equal field for field. The
// document carries the route id once at the top, so a schedule loaded
// with a divergent RouteID comes back normalized to the document's;
// validation flags such a mismatch before the set can be submitted.
func (d Document) Model() (string, []models.Schedule) {
	var schedules []models.Schedule
	for _, sd := range d.Schedules {
		s := models.Schedule{
			ID:                 sd.ID,
			RouteID:            d.RouteID,
			Name:               sd.Name,
			Type:               models.ScheduleType(sd.Type),
			Status:             models.ScheduleStatus(sd.Status),
			EffectiveStartDate: sd.EffectiveStartDate,
			EffectiveEndDate:   sd.EffectiveEndDate,
			Calendar:           models.Calendar(sd.Calendar),
		}
		for _, e := range sd.Exceptions {
			s.Exceptions = append(s.Exceptions, models.ScheduleException{Date: e.Date, Type: models.ExceptionType(e.Type)})
		}
		for _, ss := range sd.Stops {
			s.Stops = append(s.Stops, models.ScheduleStop{
				StopID:        ss.StopID,
				StopOrder:     ss.StopOrder,
				ArrivalTime:   ss.ArrivalTime,
				DepartureTime: ss.DepartureTime,
			})
		}
		schedules = append(schedules, s)
	}
	return d.RouteID, schedules
}
