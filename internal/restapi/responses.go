package restapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

func (api *RestAPI) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		api.Logger.Error("failed to encode response", "error", err)
	}
}

func (api *RestAPI) errorResponse(w http.ResponseWriter, status int, message string) {
	api.sendJSON(w, status, map[string]string{"error": message})
}

func (api *RestAPI) badRequest(w http.ResponseWriter, err error) {
	api.errorResponse(w, http.StatusBadRequest, err.Error())
}

func (api *RestAPI) notFound(w http.ResponseWriter, what string) {
	api.errorResponse(w, http.StatusNotFound, what+" not found")
}

func (api *RestAPI) serverError(w http.ResponseWriter, err error) {
	api.Logger.Error("internal error", "error", err)
	api.errorResponse(w, http.StatusInternalServerError, "internal server error")
}

// param reads a named path parameter.
func param(r *http.Request, name string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(name)
}

// indexParam reads a non-negative integer path parameter.
func indexParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(param(r, name))
}

// decodeBody decodes a JSON request body strictly.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
