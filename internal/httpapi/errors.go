package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/huangsam/picklist/internal/contract"
)

// errEventRequired is returned when neither the request nor the server config names an event.
var errEventRequired = errors.New("event is required")

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeEngineError maps an engine or store error to a status code.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, contract.ErrUnknownStrategy):
		writeError(w, http.StatusBadRequest, "unknown_strategy", err)
	case errors.Is(err, contract.ErrNoTeamStatistics):
		writeError(w, http.StatusNotFound, "no_team_statistics", err)
	case errors.Is(err, contract.ErrConfigNotFound):
		writeError(w, http.StatusNotFound, "config_not_found", err)
	case errors.Is(err, contract.ErrConfigStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
