package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/modules/runorder/services"
	"github.com/greenroomhq/runsheet/pkg/middleware"
)

type SketchesAPIController struct {
	sketches *services.SketchService
	basePath string
}

func NewSketchesAPIController(sketches *services.SketchService) *SketchesAPIController {
	return &SketchesAPIController{
		sketches: sketches,
		basePath: BasePath,
	}
}

func (c *SketchesAPIController) Key() string {
	return c.basePath + "/sketches"
}

func (c *SketchesAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/shows/{id}/sketches", c.ListByShow).Methods(http.MethodGet)
	router.HandleFunc("/sketches/{id}", c.Get).Methods(http.MethodGet)
	router.HandleFunc("/sketches/{id}/tech", c.GetTechDetails).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/shows/{id}/sketches", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/sketches/{id}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/sketches/{id}", c.Delete).Methods(http.MethodDelete)
	writeRouter.HandleFunc("/sketches/{id}/lock", c.SetLock).Methods(http.MethodPatch)
	writeRouter.HandleFunc("/sketches/{id}/tech", c.PutTechDetails).Methods(http.MethodPut)
	writeRouter.HandleFunc("/sketches/{id}/performers", c.AddPerformer).Methods(http.MethodPost)
	writeRouter.HandleFunc("/sketches/{id}/performers/{performerID}", c.UpdatePerformer).Methods(http.MethodPut)
	writeRouter.HandleFunc("/sketches/{id}/performers/{performerID}", c.RemovePerformer).Methods(http.MethodDelete)
}

func (c *SketchesAPIController) ListByShow(w http.ResponseWriter, r *http.Request) {
	showID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sketches, err := c.sketches.GetByShow(r.Context(), showID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sketches": sketches})
}

func (c *SketchesAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sketch, err := c.sketches.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sketch)
}

func (c *SketchesAPIController) Create(w http.ResponseWriter, r *http.Request) {
	showID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var sketch runorder.Sketch
	if err := json.NewDecoder(r.Body).Decode(&sketch); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	sketch.ShowID = showID
	created, err := c.sketches.Create(r.Context(), sketch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *SketchesAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var sketch runorder.Sketch
	if err := json.NewDecoder(r.Body).Decode(&sketch); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	sketch.ID = id
	updated, err := c.sketches.Update(r.Context(), sketch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c *SketchesAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.sketches.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

type setLockDTO struct {
	Locked bool `json:"locked"`
}

func (c *SketchesAPIController) SetLock(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var dto setLockDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	if err := c.sketches.SetLocked(r.Context(), id, dto.Locked); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"locked": dto.Locked})
}

func (c *SketchesAPIController) GetTechDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	sketch, err := c.sketches.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if sketch.TechDetails == nil {
		writeServiceError(w, r, runorder.ErrTechDetailsNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sketch.TechDetails)
}

func (c *SketchesAPIController) PutTechDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var details runorder.SketchTechDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	details.SketchID = id
	saved, err := c.sketches.UpsertTechDetails(r.Context(), details)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

type performerDTO struct {
	CharacterName string `json:"character_name"`
	PerformerName string `json:"performer_name"`
}

func (c *SketchesAPIController) AddPerformer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var dto performerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	created, err := c.sketches.AddPerformer(r.Context(), id, dto.CharacterName, dto.PerformerName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *SketchesAPIController) UpdatePerformer(w http.ResponseWriter, r *http.Request) {
	performerID, ok := pathUUID(w, r, "performerID")
	if !ok {
		return
	}
	var dto performerDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	updated, err := c.sketches.UpdatePerformer(r.Context(), performerID, dto.PerformerName)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c *SketchesAPIController) RemovePerformer(w http.ResponseWriter, r *http.Request) {
	sketchID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	performerID, ok := pathUUID(w, r, "performerID")
	if !ok {
		return
	}
	err := c.sketches.RemovePerformer(r.Context(), sketchID, performerID)
	if err != nil {
		// removing an already-removed pair is treated as success by clients
		if errors.Is(err, runorder.ErrPerformerNotFound) {
			writeJSON(w, http.StatusOK, map[string]any{"deleted": false})
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
