package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/greenroomhq/runsheet/modules/runorder/services"
	"github.com/greenroomhq/runsheet/pkg/itf"
)

func newTestRouter(store *itf.Store) *mux.Router {
	bus := &itf.CapturingBus{}
	showService := services.NewShowService(store.ShowRepository(), store.SketchRepository(), bus)
	sketchService := services.NewSketchService(
		store.SketchRepository(),
		store.CharacterPerformerRepository(),
		store.TechDetailsRepository(),
	)
	importService := services.NewImportService(
		store.ShowRepository(),
		store.SketchRepository(),
		store.CharacterPerformerRepository(),
		store.TechDetailsRepository(),
		bus,
	)

	router := mux.NewRouter()
	router.Use(itf.InjectTx)
	NewShowsAPIController(showService, sketchService).Register(router)
	NewSketchesAPIController(sketchService).Register(router)
	NewImportAPIController(importService).Register(router)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestImportBatch_Sketches(t *testing.T) {
	store := itf.NewStore()
	show := store.SeedShow("Friday Night")
	router := newTestRouter(store)

	body := fmt.Sprintf(`{
		"show_id": %q,
		"import_kind": "sketches",
		"data": [
			{"title": "A", "chars": 1, "casted": 1,
			 "character_performers": [{"character_name": "Waiter", "performer_name": "alice"}]},
			{"title": "B", "chars": 0, "casted": 0}
		]
	}`, show.ID)
	rec := doJSON(t, router, http.MethodPost, "/runorder/api/imports", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []struct {
			Success bool   `json:"success"`
			Title   string `json:"title"`
		} `json:"results"`
		Succeeded int `json:"succeeded"`
		Failed    int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Succeeded)
	require.Equal(t, 0, resp.Failed)
	require.Len(t, resp.Results, 2)
	require.Equal(t, "A", resp.Results[0].Title)

	require.Len(t, store.Sketches, 2)
	require.Len(t, store.Performers, 1)
}

func TestImportBatch_TechDetails(t *testing.T) {
	store := itf.NewStore()
	show := store.SeedShow("Friday Night")
	store.SeedSketch(show.ID, "Opener")
	router := newTestRouter(store)

	body := fmt.Sprintf(`{
		"show_id": %q,
		"import_kind": "techDetails",
		"data": [
			{"sketch": "opener", "stage_dressing": "2 chairs"},
			{"sketch": "missing", "cues": "LX 1"}
		]
	}`, show.ID)
	rec := doJSON(t, router, http.MethodPost, "/runorder/api/imports", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Succeeded int `json:"succeeded"`
		Failed    int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Succeeded)
	require.Equal(t, 1, resp.Failed)
	require.Len(t, store.Tech, 1)
	require.Equal(t, 2, store.Tech[0].Chairs)
}

func TestImportBatch_Validation(t *testing.T) {
	store := itf.NewStore()
	show := store.SeedShow("Friday Night")
	router := newTestRouter(store)

	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"missing show id", `{"import_kind": "sketches", "data": []}`},
		{"bad kind", fmt.Sprintf(`{"show_id": %q, "import_kind": "people", "data": []}`, show.ID)},
		{"missing data", fmt.Sprintf(`{"show_id": %q, "import_kind": "sketches"}`, show.ID)},
		{"null data", fmt.Sprintf(`{"show_id": %q, "import_kind": "sketches", "data": null}`, show.ID)},
		{"non-array data", fmt.Sprintf(`{"show_id": %q, "import_kind": "sketches", "data": {"title": "A"}}`, show.ID)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/runorder/api/imports", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	require.Empty(t, store.Sketches)
}

func TestImportBatch_UnknownShow(t *testing.T) {
	store := itf.NewStore()
	router := newTestRouter(store)

	body := fmt.Sprintf(`{
		"show_id": %q,
		"import_kind": "sketches",
		"data": [{"title": "A"}]
	}`, uuid.New())
	rec := doJSON(t, router, http.MethodPost, "/runorder/api/imports", body)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
