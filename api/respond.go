package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aakanni/portfolio-backend/errs"
)

type Responder struct {
	logger zerolog.Logger
}

func NewResponder(logger zerolog.Logger) Responder {
	return Responder{logger}
}

// WriteJSON writes data as a 200 response.
func (r Responder) WriteJSON(w http.ResponseWriter, data any) {
	r.WriteJSONStatus(w, http.StatusOK, data)
}

// WriteJSONStatus writes data with an explicit status code.
func (r Responder) WriteJSONStatus(w http.ResponseWriter, status int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteError maps an error onto the wire. Expected errors (*errs.ApiErr)
// carry their own status and message; anything else is logged server-side
// and surfaced as a generic 500 so internals never leak to the caller.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Stack().Err(err).Msg("unexpected error")
		r.WriteJSONStatus(w, http.StatusInternalServerError, map[string]any{
			"error":  "Internal Server Error",
			"status": "error",
		})
		return
	}

	// The cause is server-side context only, never part of the response.
	if apiErr.Cause != nil {
		r.logger.Error().Err(apiErr.Cause).Int("status", apiErr.StatusCode).Msg(apiErr.Error())
	}

	response := map[string]any{
		"error":  apiErr.Error(),
		"status": "error",
	}
	if apiErr.Field != "" {
		response["field"] = apiErr.Field
	}
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}
	if len(apiErr.Fields) > 0 {
		response["errors"] = apiErr.Fields
	}

	r.WriteJSONStatus(w, apiErr.StatusCode, response)
}
