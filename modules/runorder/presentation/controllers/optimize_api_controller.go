package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/modules/runorder/services"
)

type OptimizeAPIController struct {
	optimizer *services.OptimizerService
	basePath  string
}

func NewOptimizeAPIController(optimizer *services.OptimizerService) *OptimizeAPIController {
	return &OptimizeAPIController{
		optimizer: optimizer,
		basePath:  BasePath,
	}
}

func (c *OptimizeAPIController) Key() string {
	return c.basePath + "/optimize"
}

func (c *OptimizeAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/optimize", c.Optimize).Methods(http.MethodPost)
}

type optimizeDTO struct {
	ShowID      uuid.UUID                        `json:"show_id"`
	Constraints runorder.OptimizationConstraints `json:"constraints"`
}

// Optimize proxies the show to the external solver. Solver failures come
// back as 200 with success=false so clients see the solver's own error text.
func (c *OptimizeAPIController) Optimize(w http.ResponseWriter, r *http.Request) {
	var dto optimizeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	if dto.ShowID == uuid.Nil {
		writeAPIError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "show_id: must be set")
		return
	}
	result, err := c.optimizer.Optimize(r.Context(), dto.ShowID, dto.Constraints)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
