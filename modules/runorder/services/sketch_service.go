package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/pkg/composables"
	"github.com/greenroomhq/runsheet/pkg/serrors"
)

type SketchService struct {
	sketches   runorder.SketchRepository
	performers runorder.CharacterPerformerRepository
	tech       runorder.TechDetailsRepository
}

func NewSketchService(
	sketches runorder.SketchRepository,
	performers runorder.CharacterPerformerRepository,
	tech runorder.TechDetailsRepository,
) *SketchService {
	return &SketchService{
		sketches:   sketches,
		performers: performers,
		tech:       tech,
	}
}

func (s *SketchService) GetByShow(ctx context.Context, showID uuid.UUID) ([]runorder.Sketch, error) {
	return s.sketches.GetByShow(ctx, showID)
}

func (s *SketchService) GetByID(ctx context.Context, id uuid.UUID) (runorder.Sketch, error) {
	return s.sketches.GetByID(ctx, id)
}

func (s *SketchService) Create(ctx context.Context, sketch runorder.Sketch) (runorder.Sketch, error) {
	if sketch.Title == "" {
		return runorder.Sketch{}, serrors.NewValidationError("title", "must not be empty")
	}
	if sketch.ShowID == uuid.Nil {
		return runorder.Sketch{}, serrors.NewValidationError("show_id", "must be set")
	}
	count, err := s.sketches.CountByShow(ctx, sketch.ShowID)
	if err != nil {
		return runorder.Sketch{}, err
	}
	sketch.Position = count
	sketch.Casted = 0
	return s.sketches.Create(ctx, sketch)
}

func (s *SketchService) Update(ctx context.Context, sketch runorder.Sketch) (runorder.Sketch, error) {
	if sketch.Title == "" {
		return runorder.Sketch{}, serrors.NewValidationError("title", "must not be empty")
	}
	return s.sketches.Update(ctx, sketch)
}

func (s *SketchService) Delete(ctx context.Context, id uuid.UUID) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		return s.sketches.Delete(txCtx, id)
	})
}

func (s *SketchService) SetLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	return s.sketches.SetLocked(ctx, id, locked)
}

// Reorder applies position updates one statement at a time, same contract as
// ShowService.Reorder.
func (s *SketchService) Reorder(ctx context.Context, updates []runorder.PositionUpdate) error {
	for _, u := range updates {
		if err := s.sketches.UpdatePosition(ctx, u.ID, u.Position); err != nil {
			return err
		}
	}
	return nil
}

// AddPerformer inserts the pair and recounts casted in the same transaction.
// Duplicate character/performer pairs are allowed.
func (s *SketchService) AddPerformer(ctx context.Context, sketchID uuid.UUID, characterName, performerName string) (runorder.CharacterPerformer, error) {
	if characterName == "" {
		return runorder.CharacterPerformer{}, serrors.NewValidationError("character_name", "must not be empty")
	}
	var created runorder.CharacterPerformer
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.performers.Create(txCtx, runorder.CharacterPerformer{
			SketchID:      sketchID,
			CharacterName: characterName,
			PerformerName: performerName,
		})
		if err != nil {
			return err
		}
		return s.recountCasted(txCtx, sketchID)
	})
	if err != nil {
		return runorder.CharacterPerformer{}, err
	}
	return created, nil
}

func (s *SketchService) UpdatePerformer(ctx context.Context, id uuid.UUID, performerName string) (runorder.CharacterPerformer, error) {
	return s.performers.UpdatePerformer(ctx, id, performerName)
}

func (s *SketchService) RemovePerformer(ctx context.Context, sketchID, performerID uuid.UUID) error {
	return composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.performers.Delete(txCtx, performerID); err != nil {
			return err
		}
		return s.recountCasted(txCtx, sketchID)
	})
}

func (s *SketchService) UpsertTechDetails(ctx context.Context, details runorder.SketchTechDetails) (runorder.SketchTechDetails, error) {
	if details.SketchID == uuid.Nil {
		return runorder.SketchTechDetails{}, serrors.NewValidationError("sketch_id", "must be set")
	}
	return s.tech.Upsert(ctx, details)
}

func (s *SketchService) recountCasted(ctx context.Context, sketchID uuid.UUID) error {
	count, err := s.performers.CountBySketch(ctx, sketchID)
	if err != nil {
		return err
	}
	return s.sketches.SetCasted(ctx, sketchID, count)
}
