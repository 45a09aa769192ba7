package restapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"workspace.busmate.lk/internal/directory"
	"workspace.busmate.lk/internal/models"
)

func openScheduleSession(t *testing.T, server *httptest.Server, fake *directory.Fake, schedules []models.Schedule) string {
	t.Helper()
	fake.SeedGroup(seededGroup())

	status, body := doJSON(t, server, http.MethodPost, "/v1/schedule-workspaces", map[string]any{
		"groupId":   "group-1",
		"routeId":   "route-1",
		"schedules": schedules,
	})
	require.Equal(t, http.StatusCreated, status)
	sid, ok := decodeMap(t, body)["sessionId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, sid)
	return sid
}

func TestCreateScheduleWorkspaceUnknownRoute(t *testing.T) {
	api, fake := createTestApi(t)
	server := serveApi(t, api)
	fake.SeedGroup(seededGroup())

	status, _ := doJSON(t, server, http.MethodPost, "/v1/schedule-workspaces", map[string]any{
		"groupId": "group-1",
		"routeId": "route-9",
	})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestScheduleWorkspaceLifecycle(t *testing.T) {
	api, fake := createTestApi(t)
	server := serveApi(t, api)
	sid := openScheduleSession(t, server, fake, nil)

	status, body := doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/schedules", nil)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 0.0, decodeMap(t, body)["index"])

	status, _ = doJSON(t, server, http.MethodPatch,
		"/v1/schedule-workspaces/"+sid+"/schedules/0",
		map[string]any{"kind": "setName", "value": "Weekday Express"})
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/schedules/0/calendar",
		map[string]any{"day": "saturday", "operating": true})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, server, http.MethodGet, "/v1/schedule-workspaces/"+sid, nil)
	require.Equal(t, http.StatusOK, status)

	var view struct {
		Schedules []models.Schedule `json:"schedules"`
	}
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.Schedules, 1)
	assert.Equal(t, "Weekday Express", view.Schedules[0].Name)
	assert.True(t, view.Schedules[0].Calendar.Saturday)
	// The new schedule's rows mirror the paired route.
	require.Len(t, view.Schedules[0].Stops, 3)
	assert.Equal(t, "stop-a", view.Schedules[0].Stops[0].StopID)
}

func TestGenerateTimetableFillsStopTimes(t *testing.T) {
	api, fake := createTestApi(t)
	server := serveApi(t, api)
	sid := openScheduleSession(t, server, fake, nil)

	status, _ := doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/schedules", nil)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/schedules/0/timetable",
		map[string]any{"startTime": "06:00", "avgSpeedKmh": 25.0, "dwellSeconds": 60})
	require.Equal(t, http.StatusOK, status)

	var resp struct {
		Schedules []models.Schedule `json:"schedules"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	require.Len(t, resp.Schedules, 1)
	stops := resp.Schedules[0].Stops
	require.Len(t, stops, 3)
	assert.Equal(t, "06:00:00", stops[0].ArrivalTime)
	assert.Equal(t, "06:01:00", stops[0].DepartureTime)
	assert.Equal(t, "06:24:00", stops[1].ArrivalTime)
	assert.Equal(t, "06:25:00", stops[1].DepartureTime)
	assert.Equal(t, "07:00:00", stops[2].ArrivalTime)
	assert.Equal(t, "07:00:00", stops[2].DepartureTime)

	status, _ = doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/schedules/0/clear-times", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, server, http.MethodGet, "/v1/schedule-workspaces/"+sid, nil)
	require.Equal(t, http.StatusOK, status)
	resp.Schedules = nil
	require.NoError(t, json.Unmarshal(body, &resp))
	for _, ss := range resp.Schedules[0].Stops {
		assert.Empty(t, ss.ArrivalTime)
		assert.Empty(t, ss.DepartureTime)
	}
}

func TestGenerateTimetableRejectsBadSpeed(t *testing.T) {
	api, fake := createTestApi(t)
	server := serveApi(t, api)
	sid := openScheduleSession(t, server, fake, nil)

	status, _ := doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/schedules", nil)
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/schedules/0/timetable",
		map[string]any{"startTime": "06:00", "avgSpeedKmh": 0.0, "dwellSeconds": 60})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	result, ok := decodeMap(t, body)["result"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, result["message"], "average speed")
}

func TestTextRoundTrip(t *testing.T) {
	api, fake := createTestApi(t)
	server := serveApi(t, api)
	sid := openScheduleSession(t, server, fake, []models.Schedule{validSchedule("Weekday Express")})

	req, err := http.NewRequest(http.MethodGet, server.URL+"/v1/schedule-workspaces/"+sid+"/text", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/yaml", resp.Header.Get("Content-Type"))

	text, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(text), "routeId: route-1")
	assert.Contains(t, string(text), "Weekday Express")

	// Pasting the projection back unchanged is accepted and lossless.
	putReq, err := http.NewRequest(http.MethodPut, server.URL+"/v1/schedule-workspaces/"+sid+"/text", bytes.NewReader(text))
	require.NoError(t, err)
	putResp, err := http.DefaultClient.Do(putReq)
	require.NoError(t, err)
	defer putResp.Body.Close() // nolint
	require.Equal(t, http.StatusOK, putResp.StatusCode)

	status, body := doJSON(t, server, http.MethodGet, "/v1/schedule-workspaces/"+sid, nil)
	require.Equal(t, http.StatusOK, status)
	var view struct {
		Schedules []models.Schedule `json:"schedules"`
	}
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.Schedules, 1)
	assert.Equal(t, validSchedule("Weekday Express"), view.Schedules[0])
}

func TestApplyTextReportsLocatedErrors(t *testing.T) {
	api, fake := createTestApi(t)
	server := serveApi(t, api)
	sid := openScheduleSession(t, server, fake, nil)

	doc := "routeId: route-1\nschedules:\n  - name: Broken\n    type: SOMETIMES\n    status: ACTIVE\n    effectiveStartDate: not-a-date\n    calendar:\n      monday: true\n"
	req, err := http.NewRequest(http.MethodPut, server.URL+"/v1/schedule-workspaces/"+sid+"/text", bytes.NewReader([]byte(doc)))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out struct {
		ParseErrors []struct {
			Location string `json:"location"`
			Message  string `json:"message"`
		} `json:"parseErrors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.ParseErrors, 2)
	assert.Equal(t, "schedules[0].type", out.ParseErrors[0].Location)
	assert.Equal(t, "schedules[0].effectiveStartDate", out.ParseErrors[1].Location)

	// A rejected document leaves the workspace untouched.
	status, body := doJSON(t, server, http.MethodGet, "/v1/schedule-workspaces/"+sid, nil)
	require.Equal(t, http.StatusOK, status)
	var view struct {
		Schedules []models.Schedule `json:"schedules"`
	}
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Empty(t, view.Schedules)
}

func TestValidateReportsPerFieldViolations(t *testing.T) {
	api, fake := createTestApi(t)
	server := serveApi(t, api)

	bad := validSchedule("Weekday Express")
	bad.Name = ""
	sid := openScheduleSession(t, server, fake, []models.Schedule{bad})

	status, body := doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/validate", nil)
	require.Equal(t, http.StatusOK, status)

	var result struct {
		IsValid   bool `json:"isValid"`
		Schedules []struct {
			Index      int `json:"index"`
			Violations []struct {
				Field    string `json:"field"`
				Severity string `json:"severity"`
			} `json:"violations"`
		} `json:"schedules"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.False(t, result.IsValid)
	require.Len(t, result.Schedules, 1)
	require.Len(t, result.Schedules[0].Violations, 1)
	assert.Equal(t, "name", result.Schedules[0].Violations[0].Field)
	assert.Equal(t, "error", result.Schedules[0].Violations[0].Severity)
}

func TestSubmitRejectsInvalidSet(t *testing.T) {
	api, fake := createTestApi(t)
	server := serveApi(t, api)

	bad := validSchedule("")
	sid := openScheduleSession(t, server, fake, []models.Schedule{bad})

	status, body := doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, status)

	resp := decodeMap(t, body)
	assert.Equal(t, "error", resp["aggregate"])
	// Nothing was saved.
	assert.Empty(t, fake.SchedulesForRoute("route-1"))
}

func TestSubmitPartialFailure(t *testing.T) {
	api, fake := createTestApi(t)
	server := serveApi(t, api)
	sid := openScheduleSession(t, server, fake, []models.Schedule{
		validSchedule("Weekday Express"),
		validSchedule("Evening Express"),
		validSchedule("Night Mail"),
	})

	fake.SaveScheduleHook = func(routeID string, s models.Schedule) error {
		if s.Name == "Evening Express" {
			return errors.New("directory rejected the schedule")
		}
		return nil
	}

	status, body := doJSON(t, server, http.MethodPost,
		"/v1/schedule-workspaces/"+sid+"/submit", nil)
	require.Equal(t, http.StatusMultiStatus, status)

	var report struct {
		Aggregate string `json:"aggregate"`
		Succeeded int    `json:"succeeded"`
		Failed    int    `json:"failed"`
		Items     []struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Equal(t, "error", report.Aggregate)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Items, 3)
	assert.Equal(t, "success", report.Items[0].Status)
	assert.Equal(t, "error", report.Items[1].Status)
	assert.Contains(t, report.Items[1].Message, "rejected")
	assert.Equal(t, "success", report.Items[2].Status)

	// Siblings of the failure were persisted and kept their ids locally.
	assert.Len(t, fake.SchedulesForRoute("route-1"), 2)

	status, body = doJSON(t, server, http.MethodGet, "/v1/schedule-workspaces/"+sid, nil)
	require.Equal(t, http.StatusOK, status)
	var view struct {
		Schedules []models.Schedule `json:"schedules"`
	}
	require.NoError(t, json.Unmarshal(body, &view))
	require.Len(t, view.Schedules, 3)
	assert.NotEmpty(t, view.Schedules[0].ID)
	assert.Empty(t, view.Schedules[1].ID)
	assert.NotEmpty(t, view.Schedules[2].ID)
}
