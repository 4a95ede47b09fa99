package controllers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/pkg/configuration"
	"github.com/greenroomhq/runsheet/pkg/httpapi"
	"github.com/greenroomhq/runsheet/pkg/serrors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if err := httpapi.WriteJSON(w, status, payload); err != nil {
		panic(err)
	}
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	meta := map[string]string{
		"request_id": httpapi.EnsureRequestID(w, r, configuration.Use().RequestIDHeader),
	}
	if err := httpapi.WriteError(w, status, code, message, meta); err != nil {
		panic(err)
	}
}

// writeServiceError maps service-layer errors onto the API error envelope.
// Coded validation errors come back as 400, missing entities as 404,
// everything else as an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var base *serrors.BaseError
	switch {
	case errors.As(err, &base):
		writeAPIError(w, r, http.StatusBadRequest, base.Code, base.Message)
	case errors.Is(err, runorder.ErrShowNotFound):
		writeAPIError(w, r, http.StatusNotFound, "SHOW_NOT_FOUND", "show not found")
	case errors.Is(err, runorder.ErrSketchNotFound):
		writeAPIError(w, r, http.StatusNotFound, "SKETCH_NOT_FOUND", "sketch not found")
	case errors.Is(err, runorder.ErrPerformerNotFound):
		writeAPIError(w, r, http.StatusNotFound, "PERFORMER_NOT_FOUND", "character performer not found")
	case errors.Is(err, runorder.ErrTechDetailsNotFound):
		writeAPIError(w, r, http.StatusNotFound, "TECH_DETAILS_NOT_FOUND", "tech details not found")
	default:
		writeAPIError(w, r, http.StatusInternalServerError, "RUNORDER_INTERNAL", "internal error")
	}
}

func pathUUID(w http.ResponseWriter, r *http.Request, key string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[key])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_ID", "invalid "+key)
		return uuid.Nil, false
	}
	return id, true
}
