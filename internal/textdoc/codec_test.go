package textdoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"workspace.busmate.lk/internal/models"
)

func sampleSchedules() []models.Schedule {
	return []models.Schedule{
		{
			ID:                 "sched-1",
			RouteID:            "route-1",
			Name:               "Weekday",
			Type:               models.ScheduleTypeRegular,
			Status:             models.ScheduleStatusActive,
			EffectiveStartDate: "2026-01-01",
			EffectiveEndDate:   "2026-12-31",
			Calendar:           models.Calendar{Monday: true, Tuesday: true, Wednesday: true, Thursday: true, Friday: true},
			Exceptions: []models.ScheduleException{
				{Date: "2026-04-13", Type: models.ExceptionRemoved},
				{Date: "2026-04-18", Type: models.ExceptionAdded},
			},
			Stops: []models.ScheduleStop{
				{StopID: "a", StopOrder: 0, DepartureTime: "06:00:00"},
				{StopID: "b", StopOrder: 1, ArrivalTime: "06:24:00", DepartureTime: "06:25:00"},
				{StopID: "c", StopOrder: 2, ArrivalTime: "07:00:00"},
			},
		},
		{
			RouteID:            "route-1",
			Name:               "Poya Day",
			Type:               models.ScheduleTypeSpecial,
			Status:             models.ScheduleStatusInactive,
			EffectiveStartDate: "2026-02-01",
			Calendar:           models.Calendar{Sunday: true},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	schedules := sampleSchedules()
	doc := FromModel("route-1", schedules)

	text, err := Encode(doc)
	require.NoError(t, err)

	decoded, errs := Decode(text)
	require.Empty(t, errs)

	routeID, got := decoded.Model()
	assert.Equal(t, "route-1", routeID)
	assert.Equal(t, schedules, got)
}

func TestEncodeIsDeterministic(t *testing.T) {
	doc := FromModel("route-1", sampleSchedules())

	first, err := Encode(doc)
	require.NoError(t, err)
	second, err := Encode(doc)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncodeSurfaceSyntax(t *testing.T) {
	text, err := Encode(FromModel("route-1", sampleSchedules()))
	require.NoError(t, err)
	s := string(text)

	// The field names and formats are a contract: operators paste this
	// text into and out of other tools.
	assert.Contains(t, s, "routeId: route-1")
	assert.Contains(t, s, "name: Weekday")
	assert.Contains(t, s, "type: REGULAR")
	assert.Contains(t, s, "effectiveStartDate:")
	assert.Contains(t, s, "2026-01-01")
	assert.Contains(t, s, "monday: true")
	assert.Contains(t, s, "type: REMOVED")
	assert.Contains(t, s, "departureTime:")
	assert.Contains(t, s, "06:25:00")
}

func TestDecodeReportsUnknownFields(t *testing.T) {
	text := strings.Join([]string{
		"routeId: route-1",
		"schedules:",
		"  - name: Weekday",
		"    typ: REGULAR",
	}, "\n")

	_, errs := Decode([]byte(text))
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Message, "typ")
}

func TestDecodeLocatesStructuralErrors(t *testing.T) {
	text := strings.Join([]string{
		"routeId: route-1",
		"schedules:",
		"  - name: Weekday",
		"    type: SOMETIMES",
		"    status: ACTIVE",
		"    effectiveStartDate: 01/01/2026",
		"    calendar:",
		"      monday: true",
		"    exceptions:",
		"      - date: 2026-04-13",
		"        type: SKIPPED",
		"    stops:",
		"      - stopId: \"\"",
		"        stopOrder: 0",
		"        arrivalTime: 6am",
	}, "\n")

	_, errs := Decode([]byte(text))
	require.Len(t, errs, 5)

	locations := make([]string, len(errs))
	for i, e := range errs {
		locations[i] = e.Location
	}
	assert.Contains(t, locations, "schedules[0].type")
	assert.Contains(t, locations, "schedules[0].effectiveStartDate")
	assert.Contains(t, locations, "schedules[0].exceptions[0].type")
	assert.Contains(t, locations, "schedules[0].stops[0].stopId")
	assert.Contains(t, locations, "schedules[0].stops[0].arrivalTime")
}

func TestDecodeEmptyAndGarbage(t *testing.T) {
	_, errs := Decode(nil)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "empty")

	_, errs = Decode([]byte("routeId: [unclosed"))
	require.NotEmpty(t, errs)
	assert.Equal(t, "document", errs[0].Location)

	// A scalar where a mapping is expected must not be coerced.
	_, errs = Decode([]byte("just a string"))
	require.NotEmpty(t, errs)
}

func TestDecodeFailureReturnsNoModel(t *testing.T) {
	doc, errs := Decode([]byte("schedules: {not: a list}"))
	require.NotEmpty(t, errs)
	assert.Empty(t, doc.Schedules)
}

func TestRouteIdIsCarriedAtDocumentLevel(t *testing.T) {
	// The document states the route once; a schedule holding a different
	// RouteID is normalized to it on the way back. Validation reports
	// the mismatch, the projection does not preserve it.
	schedules := sampleSchedules()
	schedules[1].RouteID = "route-9"

	doc := FromModel("route-1", schedules)
	text, err := Encode(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(text), "route-9")

	decoded, errs := Decode(text)
	require.Empty(t, errs)
	_, got := decoded.Model()
	assert.Equal(t, "route-1", got[1].RouteID)
}

func TestMinutePrecisionTimesSurvive(t *testing.T) {
	schedules := []models.Schedule{{
		RouteID: "route-1",
		Name:    "Early",
		Stops:   []models.ScheduleStop{{StopID: "a", StopOrder: 0, DepartureTime: "06:00"}},
	}}

	text, err := Encode(FromModel("route-1", schedules))
	require.NoError(t, err)
	decoded, errs := Decode(text)
	require.Empty(t, errs)

	_, got := decoded.Model()
	assert.Equal(t, "06:00", got[0].Stops[0].DepartureTime)
}
