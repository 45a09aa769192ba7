package restapi

import (
	"io"
	"net/http"

	"workspace.busmate.lk/internal/derive"
	"workspace.busmate.lk/internal/models"
	"workspace.busmate.lk/internal/workspace"
)

func (api *RestAPI) createScheduleWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GroupID   string            `json:"groupId"`
		RouteID   string            `json:"routeId"`
		Schedules []models.Schedule `json:"schedules"`
	}
	if err := decodeBody(r, &body); err != nil {
		api.badRequest(w, err)
		return
	}

	routes, err := api.Directory.ListRoutesByGroup(r.Context(), body.GroupID)
	if err != nil {
		api.serverError(w, err)
		return
	}
	var route *models.Route
	for i := range routes {
		if routes[i].ID == body.RouteID {
			route = &routes[i]
			break
		}
	}
	if route == nil {
		api.notFound(w, "route "+body.RouteID)
		return
	}

	ws := workspace.NewScheduleWorkspace(*route, body.Schedules)
	sid := api.sessions.PutSchedule(ws)
	api.Logger.Info("schedule workspace opened", "session_id", sid, "route_id", body.RouteID)

	api.sendJSON(w, http.StatusCreated, map[string]any{
		"sessionId": sid,
		"route":     ws.Route(),
		"schedules": ws.Schedules(),
	})
}

func (api *RestAPI) getScheduleWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	api.sendJSON(w, http.StatusOK, map[string]any{
		"route":     ws.Route(),
		"schedules": ws.Schedules(),
	})
}

func (api *RestAPI) addScheduleHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index := ws.AddSchedule()
	api.sendJSON(w, http.StatusCreated, map[string]any{
		"index":     index,
		"schedules": ws.Schedules(),
	})
}

func (api *RestAPI) removeScheduleHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index, err := indexParam(r, "index")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.RemoveSchedule(index); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Schedules())
}

func (api *RestAPI) patchScheduleHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index, err := indexParam(r, "index")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		api.badRequest(w, err)
		return
	}
	patch, err := schedulePatchFromJSON(data)
	if err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.UpdateSchedule(index, patch); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Schedules())
}

func (api *RestAPI) setCalendarDayHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index, err := indexParam(r, "index")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	var body struct {
		Day       string `json:"day"`
		Operating bool   `json:"operating"`
	}
	if err := decodeBody(r, &body); err != nil {
		api.badRequest(w, err)
		return
	}
	day, err := parseWeekday(body.Day)
	if err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.UpdateScheduleCalendar(index, workspace.CalendarDayPatch{Day: day, Operating: body.Operating}); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Schedules())
}

func (api *RestAPI) addExceptionHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index, err := indexParam(r, "index")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	var exc models.ScheduleException
	if err := decodeBody(r, &exc); err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.AddScheduleException(index, exc); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusCreated, ws.Schedules())
}

func (api *RestAPI) removeExceptionHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index, err := indexParam(r, "index")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	excIndex, err := indexParam(r, "excIndex")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.RemoveScheduleException(index, excIndex); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Schedules())
}

func (api *RestAPI) patchScheduleStopHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index, err := indexParam(r, "index")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	stopIndex, err := indexParam(r, "stopIndex")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		api.badRequest(w, err)
		return
	}
	patch, err := scheduleStopPatchFromJSON(data)
	if err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.UpdateScheduleStop(index, stopIndex, patch); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Schedules())
}

func (api *RestAPI) generateTimetableHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index, err := indexParam(r, "index")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	var params derive.TimetableParams
	if err := decodeBody(r, &params); err != nil {
		api.badRequest(w, err)
		return
	}

	result := ws.GenerateTimetable(index, params)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	api.sendJSON(w, status, map[string]any{
		"result":    result,
		"schedules": ws.Schedules(),
	})
}

func (api *RestAPI) clearTimesHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index, err := indexParam(r, "index")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.ClearAllTimes(index); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Schedules())
}
