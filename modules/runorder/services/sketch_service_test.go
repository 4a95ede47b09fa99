package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/pkg/itf"
)

func newSketchFixture() (*itf.Store, *SketchService) {
	store := itf.NewStore()
	svc := NewSketchService(
		store.SketchRepository(),
		store.CharacterPerformerRepository(),
		store.TechDetailsRepository(),
	)
	return store, svc
}

func TestSketchService_CreateAppends(t *testing.T) {
	store, svc := newSketchFixture()
	show := store.SeedShow("Friday Night")
	store.SeedSketch(show.ID, "Existing")

	created, err := svc.Create(itf.Context(), runorder.Sketch{
		ShowID:          show.ID,
		Title:           "New Bit",
		DurationMinutes: 4,
	})
	require.NoError(t, err)
	require.Equal(t, 1, created.Position)
	require.Equal(t, 0, created.Casted)
}

func TestSketchService_CreateValidation(t *testing.T) {
	_, svc := newSketchFixture()

	_, err := svc.Create(itf.Context(), runorder.Sketch{ShowID: uuid.New()})
	require.Error(t, err)

	_, err = svc.Create(itf.Context(), runorder.Sketch{Title: "No Show"})
	require.Error(t, err)
}

func TestSketchService_PerformerLifecycleRecountsCasted(t *testing.T) {
	store, svc := newSketchFixture()
	show := store.SeedShow("Friday Night")
	sketch := store.SeedSketch(show.ID, "Opener")

	ctx := itf.Context()
	first, err := svc.AddPerformer(ctx, sketch.ID, "Waiter", "alice")
	require.NoError(t, err)
	_, err = svc.AddPerformer(ctx, sketch.ID, "Cop", "bob")
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, sketch.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Casted)
	require.Len(t, got.CharacterPerformers, 2)

	// repeated identical pairs are inserted, not deduplicated
	_, err = svc.AddPerformer(ctx, sketch.ID, "Waiter", "alice")
	require.NoError(t, err)
	got, err = svc.GetByID(ctx, sketch.ID)
	require.NoError(t, err)
	require.Equal(t, 3, got.Casted)

	require.NoError(t, svc.RemovePerformer(ctx, sketch.ID, first.ID))
	got, err = svc.GetByID(ctx, sketch.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Casted)
}

func TestSketchService_UpdatePerformer(t *testing.T) {
	store, svc := newSketchFixture()
	show := store.SeedShow("Friday Night")
	sketch := store.SeedSketch(show.ID, "Opener")

	ctx := itf.Context()
	cp, err := svc.AddPerformer(ctx, sketch.ID, "Waiter", "alice")
	require.NoError(t, err)

	updated, err := svc.UpdatePerformer(ctx, cp.ID, "dana")
	require.NoError(t, err)
	require.Equal(t, "dana", updated.PerformerName)
	require.Equal(t, "Waiter", updated.CharacterName)
}

func TestSketchService_DeleteCascades(t *testing.T) {
	store, svc := newSketchFixture()
	show := store.SeedShow("Friday Night")
	sketch := store.SeedSketch(show.ID, "Opener")

	ctx := itf.Context()
	_, err := svc.AddPerformer(ctx, sketch.ID, "Waiter", "alice")
	require.NoError(t, err)
	_, err = svc.UpsertTechDetails(ctx, runorder.SketchTechDetails{SketchID: sketch.ID, Stools: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sketch.ID))
	require.Empty(t, store.Sketches)
	require.Empty(t, store.Performers)
	require.Empty(t, store.Tech)
}

func TestSketchService_SetLocked(t *testing.T) {
	store, svc := newSketchFixture()
	show := store.SeedShow("Friday Night")
	sketch := store.SeedSketch(show.ID, "Opener")

	require.NoError(t, svc.SetLocked(itf.Context(), sketch.ID, true))
	got, err := svc.GetByID(itf.Context(), sketch.ID)
	require.NoError(t, err)
	require.True(t, got.Locked)
}

func TestSketchService_Reorder(t *testing.T) {
	store, svc := newSketchFixture()
	show := store.SeedShow("Friday Night")
	a := store.SeedSketch(show.ID, "A")
	b := store.SeedSketch(show.ID, "B")

	err := svc.Reorder(itf.Context(), []runorder.PositionUpdate{
		{ID: a.ID, Position: 1},
		{ID: b.ID, Position: 0},
	})
	require.NoError(t, err)

	sketches, err := svc.GetByShow(itf.Context(), show.ID)
	require.NoError(t, err)
	require.Equal(t, "B", sketches[0].Title)
	require.Equal(t, "A", sketches[1].Title)
}
