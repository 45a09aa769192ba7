package restapi

import (
	"io"
	"net/http"

	"workspace.busmate.lk/internal/submit"
	"workspace.busmate.lk/internal/textdoc"
	"workspace.busmate.lk/internal/validate"
)

// getTextHandler renders the session's schedule set as the editable YAML
// document.
func (api *RestAPI) getTextHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}

	text, err := textdoc.Encode(textdoc.FromModel(ws.Route().ID, ws.Schedules()))
	if err != nil {
		api.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(text)
}

// applyTextHandler takes edited YAML back. Parsing and applying are two
// phases: any parse or structural error rejects the whole document and
// the workspace keeps its previous state untouched.
func (api *RestAPI) applyTextHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		api.badRequest(w, err)
		return
	}

	doc, parseErrs := textdoc.Decode(data)
	if len(parseErrs) > 0 {
		api.sendJSON(w, http.StatusUnprocessableEntity, map[string]any{"parseErrors": parseErrs})
		return
	}
	routeID, parsed := doc.Model()
	if routeID != ws.Route().ID {
		api.errorResponse(w, http.StatusUnprocessableEntity,
			"document routeId "+routeID+" does not match workspace route "+ws.Route().ID)
		return
	}

	ws.ApplyParsedSchedules(parsed)
	api.sendJSON(w, http.StatusOK, ws.Schedules())
}

func (api *RestAPI) validateHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}
	api.sendJSON(w, http.StatusOK, validate.CheckScheduleSet(ws.Schedules(), ws.Route()))
}

// submitHandler validates and then persists the set. Validation failure
// returns the per-entity states without touching the directory; a save
// run always returns the full report, partial failures included.
func (api *RestAPI) submitHandler(w http.ResponseWriter, r *http.Request) {
	ws, ok := api.sessions.Schedule(param(r, "sid"))
	if !ok {
		api.notFound(w, "workspace session")
		return
	}

	orch := submit.New(ws.Route(), ws.Schedules(), api.Directory, api.Logger)
	if !orch.Validate() {
		api.sendJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"aggregate": orch.Aggregate(),
			"items":     orch.Items(),
		})
		return
	}

	report := orch.Submit(r.Context())

	// Adopt directory-assigned ids for the entities that made it.
	saved := ws.Schedules()
	for i, item := range report.Items {
		if item.Status == submit.StatusSuccess && i < len(saved) {
			saved[i] = item.Schedule
		}
	}
	ws.ReplaceSchedules(saved)

	status := http.StatusOK
	if report.Failed > 0 {
		status = http.StatusMultiStatus
	}
	api.sendJSON(w, status, report)
}
