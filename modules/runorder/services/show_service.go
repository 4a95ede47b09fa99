package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/pkg/composables"
	"github.com/greenroomhq/runsheet/pkg/eventbus"
	"github.com/greenroomhq/runsheet/pkg/serrors"
)

type ShowService struct {
	shows     runorder.ShowRepository
	sketches  runorder.SketchRepository
	publisher eventbus.EventBus
}

func NewShowService(
	shows runorder.ShowRepository,
	sketches runorder.SketchRepository,
	publisher eventbus.EventBus,
) *ShowService {
	return &ShowService{
		shows:     shows,
		sketches:  sketches,
		publisher: publisher,
	}
}

func (s *ShowService) GetAll(ctx context.Context) ([]runorder.Show, error) {
	return s.shows.GetAll(ctx)
}

func (s *ShowService) GetByID(ctx context.Context, id uuid.UUID) (runorder.Show, error) {
	return s.shows.GetByID(ctx, id)
}

func (s *ShowService) Count(ctx context.Context) (int, error) {
	return s.shows.Count(ctx)
}

func (s *ShowService) Create(ctx context.Context, title, description string) (runorder.Show, error) {
	if title == "" {
		return runorder.Show{}, serrors.NewValidationError("title", "must not be empty")
	}
	count, err := s.shows.Count(ctx)
	if err != nil {
		return runorder.Show{}, err
	}
	return s.shows.Create(ctx, runorder.Show{
		Title:       title,
		Description: description,
		Position:    count,
	})
}

func (s *ShowService) Update(ctx context.Context, show runorder.Show) (runorder.Show, error) {
	if show.Title == "" {
		return runorder.Show{}, serrors.NewValidationError("title", "must not be empty")
	}
	return s.shows.Update(ctx, show)
}

// Delete removes the show and everything under it in one transaction, in
// dependency order: character performers and tech details first, then
// sketches, then the show row.
func (s *ShowService) Delete(ctx context.Context, id uuid.UUID) error {
	show, err := s.shows.GetByID(ctx, id)
	if err != nil {
		return err
	}
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		if err := s.sketches.DeleteByShow(txCtx, id); err != nil {
			return err
		}
		return s.shows.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(runorder.ShowDeleted{ShowID: id, Title: show.Title})
	return nil
}

// Reorder applies position updates sequentially. Each update is its own
// statement; a failure part-way leaves earlier updates applied, and the
// caller is expected to retry the batch.
func (s *ShowService) Reorder(ctx context.Context, updates []runorder.PositionUpdate) error {
	for _, u := range updates {
		if err := s.shows.UpdatePosition(ctx, u.ID, u.Position); err != nil {
			return err
		}
	}
	return nil
}
