package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"munroaccess.org/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(response.Code)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.Logger.Error("failed to write response",
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
	}
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.Logger.Error("internal server error",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	api.sendResponse(w, r, models.NewResponse(http.StatusInternalServerError, nil, "internal server error"))
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusNotFound, nil, "resource not found"))
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, message string) {
	api.sendResponse(w, r, models.NewResponse(http.StatusBadRequest, nil, message))
}

func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewResponse(http.StatusUnauthorized, nil, "permission denied"))
}
