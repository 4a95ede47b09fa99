package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/modules/runorder/services"
)

// ImportAPIController accepts normalized batch imports. The route is not
// wrapped in the transaction middleware: the import service opens one
// transaction per record so a bad record cannot poison the rest of the batch.
type ImportAPIController struct {
	imports  *services.ImportService
	basePath string
}

func NewImportAPIController(imports *services.ImportService) *ImportAPIController {
	return &ImportAPIController{
		imports:  imports,
		basePath: BasePath,
	}
}

func (c *ImportAPIController) Key() string {
	return c.basePath + "/imports"
}

func (c *ImportAPIController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.HandleFunc("/imports", c.ImportBatch).Methods(http.MethodPost)
}

type importBatchDTO struct {
	ShowID     uuid.UUID           `json:"show_id"`
	ImportKind runorder.ImportKind `json:"import_kind"`
	Data       json.RawMessage     `json:"data"`
}

func (c *ImportAPIController) ImportBatch(w http.ResponseWriter, r *http.Request) {
	var dto importBatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "RUNORDER_INVALID_JSON", "invalid json")
		return
	}
	if dto.ShowID == uuid.Nil {
		writeAPIError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "show_id: must be set")
		return
	}
	if !dto.ImportKind.Valid() {
		writeAPIError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "import_kind: must be sketches or techDetails")
		return
	}
	// A missing key and a literal null both decode to something Unmarshal
	// would accept as an empty batch; reject them up front.
	if len(dto.Data) == 0 || string(dto.Data) == "null" {
		writeAPIError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "data: must be an array")
		return
	}

	var (
		outcomes []runorder.ImportOutcome
		err      error
	)
	switch dto.ImportKind {
	case runorder.ImportKindSketches:
		var records []runorder.SketchImport
		if uErr := json.Unmarshal(dto.Data, &records); uErr != nil {
			writeAPIError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "data: must be an array of sketch records")
			return
		}
		outcomes, err = c.imports.ImportSketches(r.Context(), dto.ShowID, records)
	case runorder.ImportKindTechDetails:
		var rows []runorder.TechImport
		if uErr := json.Unmarshal(dto.Data, &rows); uErr != nil {
			writeAPIError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "data: must be an array of tech rows")
			return
		}
		outcomes, err = c.imports.ImportTechDetails(r.Context(), dto.ShowID, rows)
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	succeeded := 0
	for _, o := range outcomes {
		if o.Success {
			succeeded++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results":   outcomes,
		"succeeded": succeeded,
		"failed":    len(outcomes) - succeeded,
	})
}
