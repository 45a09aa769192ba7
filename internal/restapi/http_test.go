package restapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"workspace.busmate.lk/internal/app"
	"workspace.busmate.lk/internal/config"
	"workspace.busmate.lk/internal/directory"
	"workspace.busmate.lk/internal/models"
)

func createTestApi(t *testing.T) (*RestAPI, *directory.Fake) {
	t.Helper()
	fake := directory.NewFake()
	application := &app.Application{
		Config:    config.Default(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Directory: fake,
	}
	return NewRestAPI(application), fake
}

func serveApi(t *testing.T, api *RestAPI) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(api.Routes())
	t.Cleanup(server.Close)
	return server
}

// doJSON sends a request with an optional JSON body and returns the
// status code and raw response body.
func doJSON(t *testing.T, server *httptest.Server, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeMap(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// seededGroup is a complete two-way-capable fixture: an outbound route
// with three placed stops and distances filled in.
func seededGroup() models.RouteGroup {
	stops := []models.Stop{
		{ID: "stop-a", Name: "Fort", Location: &models.Coordinates{Lat: 6.9344, Lon: 79.8428}},
		{ID: "stop-b", Name: "Kadawatha", Location: &models.Coordinates{Lat: 7.0012, Lon: 79.9533}},
		{ID: "stop-c", Name: "Kandy", Location: &models.Coordinates{Lat: 7.2906, Lon: 80.6337}},
	}
	distances := []float64{0, 10, 25}

	out := models.NewRoute(models.DirectionOutbound)
	out.ID = "route-1"
	out.Name = "Colombo - Kandy"
	out.DistanceKm = 25
	out.StartStopID = "stop-a"
	out.StartStopName = "Fort"
	out.EndStopID = "stop-c"
	out.EndStopName = "Kandy"
	for i, s := range stops {
		rs := models.NewRouteStop(s, i)
		rs.DistanceFromStartKm = models.Float64Ptr(distances[i])
		out.Stops = append(out.Stops, rs)
	}

	group := models.NewRouteGroup("Colombo - Kandy")
	group.ID = "group-1"
	group.SetRoute(out)
	return group
}

// validSchedule is a schedule the validation engine accepts against the
// seeded group's outbound route.
func validSchedule(name string) models.Schedule {
	return models.Schedule{
		RouteID:            "route-1",
		Name:               name,
		Type:               models.ScheduleTypeRegular,
		Status:             models.ScheduleStatusActive,
		EffectiveStartDate: "2026-01-01",
		Calendar:           models.Calendar{Monday: true, Friday: true},
		Stops: []models.ScheduleStop{
			{StopID: "stop-a", StopOrder: 0, ArrivalTime: "06:00:00", DepartureTime: "06:00:00"},
			{StopID: "stop-b", StopOrder: 1, ArrivalTime: "06:24:00", DepartureTime: "06:25:00"},
			{StopID: "stop-c", StopOrder: 2, ArrivalTime: "07:00:00", DepartureTime: "07:00:00"},
		},
	}
}
