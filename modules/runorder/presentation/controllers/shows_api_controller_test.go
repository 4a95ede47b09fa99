package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/pkg/itf"
)

func TestShowsAPI_CreateAndList(t *testing.T) {
	store := itf.NewStore()
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPost, "/runorder/api/shows", `{"title": "Friday Night", "description": "late"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created runorder.Show
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Friday Night", created.Title)
	require.NotEqual(t, uuid.Nil, created.ID)

	rec = doJSON(t, router, http.MethodGet, "/runorder/api/shows", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Shows []runorder.Show `json:"shows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed.Shows, 1)
}

func TestShowsAPI_CreateRequiresTitle(t *testing.T) {
	router := newTestRouter(itf.NewStore())

	rec := doJSON(t, router, http.MethodPost, "/runorder/api/shows", `{"description": "late"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShowsAPI_GetWithSketches(t *testing.T) {
	store := itf.NewStore()
	show := store.SeedShow("Friday Night")
	store.SeedSketch(show.ID, "Opener")
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodGet, "/runorder/api/shows/"+show.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Show     runorder.Show     `json:"show"`
		Sketches []runorder.Sketch `json:"sketches"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, show.ID, resp.Show.ID)
	require.Len(t, resp.Sketches, 1)
	require.Equal(t, "Opener", resp.Sketches[0].Title)
}

func TestShowsAPI_GetMissing(t *testing.T) {
	router := newTestRouter(itf.NewStore())

	rec := doJSON(t, router, http.MethodGet, "/runorder/api/shows/"+uuid.NewString(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/runorder/api/shows/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShowsAPI_DeleteCascades(t *testing.T) {
	store := itf.NewStore()
	show := store.SeedShow("Friday Night")
	store.SeedSketch(show.ID, "Opener")
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodDelete, "/runorder/api/shows/"+show.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, store.Shows)
	require.Empty(t, store.Sketches)
}

func TestShowsAPI_ReorderSketches(t *testing.T) {
	store := itf.NewStore()
	show := store.SeedShow("Friday Night")
	a := store.SeedSketch(show.ID, "A")
	b := store.SeedSketch(show.ID, "B")
	router := newTestRouter(store)

	body := fmt.Sprintf(`{"order": [%q, %q]}`, b.ID, a.ID)
	rec := doJSON(t, router, http.MethodPut, "/runorder/api/shows/"+show.ID.String()+"/order", body)
	require.Equal(t, http.StatusOK, rec.Code)

	sketches, err := store.SketchRepository().GetByShow(itf.Context(), show.ID)
	require.NoError(t, err)
	require.Equal(t, "B", sketches[0].Title)
	require.Equal(t, "A", sketches[1].Title)
}

func TestSketchesAPI_LockAndTech(t *testing.T) {
	store := itf.NewStore()
	show := store.SeedShow("Friday Night")
	sketch := store.SeedSketch(show.ID, "Opener")
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPatch, "/runorder/api/sketches/"+sketch.ID.String()+"/lock", `{"locked": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, store.Sketches[0].Locked)

	rec = doJSON(t, router, http.MethodGet, "/runorder/api/sketches/"+sketch.ID.String()+"/tech", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/runorder/api/sketches/"+sketch.ID.String()+"/tech", `{"chairs": 2, "cues": "LX 1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/runorder/api/sketches/"+sketch.ID.String()+"/tech", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var details runorder.SketchTechDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	require.Equal(t, 2, details.Chairs)
	require.Equal(t, "LX 1", details.Cues)
}

func TestSketchesAPI_Performers(t *testing.T) {
	store := itf.NewStore()
	show := store.SeedShow("Friday Night")
	sketch := store.SeedSketch(show.ID, "Opener")
	router := newTestRouter(store)

	rec := doJSON(t, router, http.MethodPost, "/runorder/api/sketches/"+sketch.ID.String()+"/performers",
		`{"character_name": "Waiter", "performer_name": "alice"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var cp runorder.CharacterPerformer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cp))
	require.Equal(t, 1, store.Sketches[0].Casted)

	rec = doJSON(t, router, http.MethodDelete,
		"/runorder/api/sketches/"+sketch.ID.String()+"/performers/"+cp.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, store.Performers)
	require.Equal(t, 0, store.Sketches[0].Casted)
}
