package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/modules/runorder/services"
	"github.com/greenroomhq/runsheet/pkg/middleware"
)

type ShowsAPIController struct {
	shows    *services.ShowService
	sketches *services.SketchService
	basePath string
}

func NewShowsAPIController(shows *services.ShowService, sketches *services.SketchService) *ShowsAPIController {
	return &ShowsAPIController{
		shows:    shows,
		sketches: sketches,
		basePath: BasePath,
	}
}

func (c *ShowsAPIController) Key() string {
	return c.basePath + "/shows"
}

func (c *ShowsAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/shows", c.List).Methods(http.MethodGet)
	router.HandleFunc("/shows/{id}", c.Get).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("/shows", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/shows/order", c.Reorder).Methods(http.MethodPut)
	writeRouter.HandleFunc("/shows/{id}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/shows/{id}", c.Delete).Methods(http.MethodDelete)
	writeRouter.HandleFunc("/shows/{id}/order", c.ReorderSketches).Methods(http.MethodPut)
}

func (c *ShowsAPIController) List(w http.ResponseWriter, r *http.Request) {
	shows, err := c.shows.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"shows": shows})
}

// Get returns the show with its full running order.
func (c *ShowsAPIController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	show, err := c.shows.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	sketches, err := c.sketches.GetByShow(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"show":     show,
		"sketches": sketches,
	})
}

type createShowDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (c *ShowsAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto createShowDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	created, err := c.shows.Create(r.Context(), dto.Title, dto.Description)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (c *ShowsAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var show runorder.Show
	if err := json.NewDecoder(r.Body).Decode(&show); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	show.ID = id
	updated, err := c.shows.Update(r.Context(), show)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (c *ShowsAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.shows.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

func (c *ShowsAPIController) Reorder(w http.ResponseWriter, r *http.Request) {
	var updates []runorder.PositionUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	if err := c.shows.Reorder(r.Context(), updates); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": len(updates)})
}

type reorderSketchesDTO struct {
	Order []string `json:"order"`
}

// ReorderSketches rewrites the positions of the show's sketches to match the
// submitted id order. Updates are independent statements; a mid-batch failure
// leaves a partial order for the client to retry.
func (c *ShowsAPIController) ReorderSketches(w http.ResponseWriter, r *http.Request) {
	if _, ok := pathUUID(w, r, "id"); !ok {
		return
	}
	var dto reorderSketchesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	updates := make([]runorder.PositionUpdate, 0, len(dto.Order))
	for i, raw := range dto.Order {
		sketchID, err := uuid.Parse(raw)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_ID", "invalid sketch id in order")
			return
		}
		updates = append(updates, runorder.PositionUpdate{ID: sketchID, Position: i})
	}
	if err := c.sketches.Reorder(r.Context(), updates); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": len(updates)})
}
