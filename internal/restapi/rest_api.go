// Package restapi exposes the workspace engine over HTTP: sessions are
// created per editing workspace, field edits arrive as tagged patches,
// and derivation, textual projection, validation and submission are
// explicit operations on a session.
package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"workspace.busmate.lk/internal/app"
)

type RestAPI struct {
	*app.Application
	sessions *SessionStore
}

// NewRestAPI creates the API with an empty session store.
func NewRestAPI(application *app.Application) *RestAPI {
	return &RestAPI{
		Application: application,
		sessions:    NewSessionStore(),
	}
}

// Routes builds the router for all workspace endpoints.
func (api *RestAPI) Routes() http.Handler {
	router := httprouter.New()

	router.HandlerFunc(http.MethodGet, "/v1/health", api.healthHandler)

	router.HandlerFunc(http.MethodPost, "/v1/route-group-workspaces", api.createRouteGroupWorkspaceHandler)
	router.HandlerFunc(http.MethodGet, "/v1/route-group-workspaces/:sid", api.getRouteGroupWorkspaceHandler)
	router.HandlerFunc(http.MethodPost, "/v1/route-group-workspaces/:sid/routes", api.addRouteHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/route-group-workspaces/:sid/routes/:direction", api.patchRouteHandler)
	router.HandlerFunc(http.MethodPost, "/v1/route-group-workspaces/:sid/routes/:direction/stops", api.appendRouteStopHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/route-group-workspaces/:sid/routes/:direction/stops/:index", api.patchRouteStopHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/route-group-workspaces/:sid/routes/:direction/stops/:index", api.removeRouteStopHandler)
	router.HandlerFunc(http.MethodPost, "/v1/route-group-workspaces/:sid/routes/:direction/derive-reverse", api.deriveReverseHandler)
	router.HandlerFunc(http.MethodPost, "/v1/route-group-workspaces/:sid/save", api.saveRouteGroupHandler)

	router.HandlerFunc(http.MethodPost, "/v1/schedule-workspaces", api.createScheduleWorkspaceHandler)
	router.HandlerFunc(http.MethodGet, "/v1/schedule-workspaces/:sid", api.getScheduleWorkspaceHandler)
	router.HandlerFunc(http.MethodPost, "/v1/schedule-workspaces/:sid/schedules", api.addScheduleHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/schedule-workspaces/:sid/schedules/:index", api.removeScheduleHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/schedule-workspaces/:sid/schedules/:index", api.patchScheduleHandler)
	router.HandlerFunc(http.MethodPost, "/v1/schedule-workspaces/:sid/schedules/:index/calendar", api.setCalendarDayHandler)
	router.HandlerFunc(http.MethodPost, "/v1/schedule-workspaces/:sid/schedules/:index/exceptions", api.addExceptionHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/schedule-workspaces/:sid/schedules/:index/exceptions/:excIndex", api.removeExceptionHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/schedule-workspaces/:sid/schedules/:index/stops/:stopIndex", api.patchScheduleStopHandler)
	router.HandlerFunc(http.MethodPost, "/v1/schedule-workspaces/:sid/schedules/:index/timetable", api.generateTimetableHandler)
	router.HandlerFunc(http.MethodPost, "/v1/schedule-workspaces/:sid/schedules/:index/clear-times", api.clearTimesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/schedule-workspaces/:sid/text", api.getTextHandler)
	router.HandlerFunc(http.MethodPut, "/v1/schedule-workspaces/:sid/text", api.applyTextHandler)
	router.HandlerFunc(http.MethodPost, "/v1/schedule-workspaces/:sid/validate", api.validateHandler)
	router.HandlerFunc(http.MethodPost, "/v1/schedule-workspaces/:sid/submit", api.submitHandler)

	return router
}

func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	api.sendJSON(w, http.StatusOK, map[string]string{"status": "ok", "env": api.Config.Server.Env})
}
