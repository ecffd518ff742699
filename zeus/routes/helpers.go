package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"zeus/zeus/agents/analysis"
	"zeus/zeus/agents/core"
	"zeus/zeus/controllers"
	"zeus/zeus/services/llm"
	"zeus/zeus/sources/storage"
	httputils "zeus/zeus/utils/http"
	"zeus/zeus/utils/logging"
	apitypes "zeus/zeus/utils/types"

	"go.uber.org/zap"
)

func handleJSON(handler func(r *http.Request) (any, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, status, err := handler(r)
		if err != nil {
			if status >= http.StatusInternalServerError {
				logging.ErrorLogger.Error("request failed",
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Error(err),
				)
			}
			writeJSON(w, status, apitypes.ErrorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, status, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	var upstream *httputils.StatusError
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, storage.ErrNotImage),
		errors.Is(err, analysis.ErrUnknownMode),
		errors.Is(err, analysis.ErrEmptyInput),
		errors.Is(err, analysis.ErrInvalidTemperature),
		errors.Is(err, analysis.ErrNoPrompt),
		errors.Is(err, llm.ErrInvalidTarget),
		errors.Is(err, controllers.ErrEmptyTurn),
		errors.Is(err, controllers.ErrProxyRequest):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrTurnInFlight):
		return http.StatusTooManyRequests
	case errors.Is(err, controllers.ErrHistoryDisabled):
		return http.StatusNotFound
	case errors.As(err, &upstream),
		errors.Is(err, llm.ErrNoImage):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
