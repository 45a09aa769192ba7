package restapi

import (
	"io"
	"net/http"

	"workspace.busmate.lk/internal/models"
	"workspace.busmate.lk/internal/validate"
	"workspace.busmate.lk/internal/workspace"
)

func (api *RestAPI) createRouteGroupWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeBody(r, &body); err != nil {
		api.badRequest(w, err)
		return
	}

	ws := workspace.NewRouteGroupWorkspace(body.Name)
	sid := api.sessions.PutRouteGroup(ws)
	api.Logger.Info("route group workspace opened", "session_id", sid, "group", body.Name)

	api.sendJSON(w, http.StatusCreated, map[string]any{
		"sessionId": sid,
		"group":     ws.Group(),
	})
}

func (api *RestAPI) getRouteGroupWorkspaceHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.RouteGroup(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Group())
}

func (api *RestAPI) addRouteHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.RouteGroup(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	var body struct {
		Direction models.Direction `json:"direction"`
	}
	if err := decodeBody(r, &body); err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.AddRoute(body.Direction); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusCreated, ws.Group())
}

func (api *RestAPI) patchRouteHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.RouteGroup(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		api.badRequest(w, err)
		return
	}
	patch, err := routePatchFromJSON(data)
	if err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.UpdateRoute(models.Direction(param(r, "direction")), patch); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Group())
}

func (api *RestAPI) appendRouteStopHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.RouteGroup(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	var body struct {
		Stop models.Stop `json:"stop"`
	}
	if err := decodeBody(r, &body); err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.AppendRouteStop(models.Direction(param(r, "direction")), body.Stop); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusCreated, ws.Group())
}

func (api *RestAPI) patchRouteStopHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.RouteGroup(param(r, "sid"))
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
	patch, err := routeStopPatchFromJSON(data)
	if err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.UpdateRouteStop(models.Direction(param(r, "direction")), index, patch); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Group())
}

func (api *RestAPI) removeRouteStopHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.RouteGroup(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	index, err := indexParam(r, "index")
	if err != nil {
		api.badRequest(w, err)
		return
	}
	if err := ws.RemoveRouteStop(models.Direction(param(r, "direction")), index); err != nil {
		api.badRequest(w, err)
		return
	}
	api.sendJSON(w, http.StatusOK, ws.Group())
}

// deriveReverseHandler builds the :direction route from its pair. The
// result record goes back even on precondition failure; the HTTP status
// distinguishes the two so callers need not inspect the body.
func (api *RestAPI) deriveReverseHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.RouteGroup(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	target := models.Direction(param(r, "direction"))
	if !target.Valid() {
		api.errorResponse(w, http.StatusBadRequest, "unknown direction "+string(target))
		return
	}

	result := ws.DeriveReverseRoute(target)
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	api.sendJSON(w, status, map[string]any{
		"result": result,
		"group":  ws.Group(),
	})
}

// saveRouteGroupHandler persists the group. Editing tolerates broken
// distance profiles; saving does not, so the route checks gate the call
// to the directory.
func (api *RestAPI) saveRouteGroupHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.RouteGroup(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}

	group := ws.Group()
	check := validate.CheckRouteGroup(group)
	if !check.IsValid {
		api.sendJSON(w, http.StatusUnprocessableEntity, map[string]any{"validation": check})
		return
	}

	saved, err := api.Directory.SaveRouteGroup(r.Context(), group)
	if err != nil {
		api.serverError(w, err)
		return
	}
	// Adopt the directory-assigned ids so later saves are updates.
	ws.ReplaceGroup(saved)
	api.sendJSON(w, http.StatusOK, saved)
}
