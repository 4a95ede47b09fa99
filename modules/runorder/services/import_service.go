package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/modules/runorder/importing"
	"github.com/greenroomhq/runsheet/pkg/composables"
	"github.com/greenroomhq/runsheet/pkg/eventbus"
	"github.com/greenroomhq/runsheet/pkg/serrors"
)

// ImportService reconciles normalized import records against persisted state.
// Batches are best-effort: each record succeeds or fails on its own, and the
// caller gets one outcome per record in input order.
type ImportService struct {
	shows      runorder.ShowRepository
	sketches   runorder.SketchRepository
	performers runorder.CharacterPerformerRepository
	tech       runorder.TechDetailsRepository
	publisher  eventbus.EventBus
}

func NewImportService(
	shows runorder.ShowRepository,
	sketches runorder.SketchRepository,
	performers runorder.CharacterPerformerRepository,
	tech runorder.TechDetailsRepository,
	publisher eventbus.EventBus,
) *ImportService {
	return &ImportService{
		shows:      shows,
		sketches:   sketches,
		performers: performers,
		tech:       tech,
		publisher:  publisher,
	}
}

// ImportSketches appends the records to the show's running order. Positions
// continue from the current sketch count, so re-importing appends rather
// than replaces. Each record is one transaction covering the sketch, its
// character performers and, when the record carries any tech signal, its
// tech details row.
func (s *ImportService) ImportSketches(ctx context.Context, showID uuid.UUID, records []runorder.SketchImport) ([]runorder.ImportOutcome, error) {
	if showID == uuid.Nil {
		return nil, serrors.NewValidationError("show_id", "must be set")
	}
	if _, err := s.shows.GetByID(ctx, showID); err != nil {
		return nil, err
	}
	base, err := s.sketches.CountByShow(ctx, showID)
	if err != nil {
		return nil, err
	}

	outcomes := make([]runorder.ImportOutcome, 0, len(records))
	succeeded := 0
	for i, rec := range records {
		err := composables.InTx(ctx, func(txCtx context.Context) error {
			return s.createFromRecord(txCtx, showID, base+i, rec)
		})
		if err != nil {
			outcomes = append(outcomes, runorder.ImportOutcome{Title: rec.Title, Error: err.Error()})
			continue
		}
		succeeded++
		outcomes = append(outcomes, runorder.ImportOutcome{Success: true, Title: rec.Title})
	}

	s.publisher.Publish(runorder.ImportCompleted{
		ShowID:    showID,
		Kind:      runorder.ImportKindSketches,
		Succeeded: succeeded,
		Failed:    len(records) - succeeded,
	})
	return outcomes, nil
}

func (s *ImportService) createFromRecord(ctx context.Context, showID uuid.UUID, position int, rec runorder.SketchImport) error {
	sketch, err := s.sketches.Create(ctx, runorder.Sketch{
		ShowID:          showID,
		Title:           rec.Title,
		Description:     rec.Description,
		DurationMinutes: rec.DurationMinutes,
		Chars:           rec.Chars,
		Casted:          len(rec.Pairs),
		Position:        position,
		RawData:         rec.RawData,
	})
	if err != nil {
		return err
	}
	for _, p := range rec.Pairs {
		_, err := s.performers.Create(ctx, runorder.CharacterPerformer{
			SketchID:      sketch.ID,
			CharacterName: p.CharacterName,
			PerformerName: p.PerformerName,
		})
		if err != nil {
			return err
		}
	}
	if !rec.HasTechSignal() {
		return nil
	}
	dressing := importing.ParseStageDressing(rec.StageDressing)
	_, err = s.tech.Upsert(ctx, runorder.SketchTechDetails{
		SketchID:      sketch.ID,
		Cues:          rec.Cues,
		Props:         rec.Props,
		Costume:       rec.Costume,
		StageDressing: rec.StageDressing,
		Chairs:        dressing.Chairs,
		Stools:        dressing.Stools,
		OtherProps:    dressing.OtherProps,
	})
	return err
}

// ImportTechDetails matches each row to an existing sketch by
// case-insensitive title and upserts its tech details. Rows without a
// matching sketch fail individually and write nothing.
func (s *ImportService) ImportTechDetails(ctx context.Context, showID uuid.UUID, rows []runorder.TechImport) ([]runorder.ImportOutcome, error) {
	if showID == uuid.Nil {
		return nil, serrors.NewValidationError("show_id", "must be set")
	}
	if _, err := s.shows.GetByID(ctx, showID); err != nil {
		return nil, err
	}
	existing, err := s.sketches.GetByShow(ctx, showID)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]uuid.UUID, len(existing))
	for _, sk := range existing {
		byTitle[strings.ToLower(strings.TrimSpace(sk.Title))] = sk.ID
	}

	outcomes := make([]runorder.ImportOutcome, 0, len(rows))
	succeeded := 0
	for _, row := range rows {
		sketchID, ok := byTitle[strings.ToLower(strings.TrimSpace(row.SketchTitle))]
		if !ok {
			outcomes = append(outcomes, runorder.ImportOutcome{
				Title: row.SketchTitle,
				Error: "matching sketch not found",
			})
			continue
		}
		dressing := importing.ParseStageDressing(row.StageDressing)
		_, err := s.tech.Upsert(ctx, runorder.SketchTechDetails{
			SketchID:      sketchID,
			Cues:          row.Cues,
			Props:         row.Props,
			Costume:       row.Costume,
			StageDressing: row.StageDressing,
			Chairs:        dressing.Chairs,
			Stools:        dressing.Stools,
			OtherProps:    dressing.OtherProps,
		})
		if err != nil {
			outcomes = append(outcomes, runorder.ImportOutcome{Title: row.SketchTitle, Error: err.Error()})
			continue
		}
		succeeded++
		outcomes = append(outcomes, runorder.ImportOutcome{Success: true, Title: row.SketchTitle})
	}

	s.publisher.Publish(runorder.ImportCompleted{
		ShowID:    showID,
		Kind:      runorder.ImportKindTechDetails,
		Succeeded: succeeded,
		Failed:    len(rows) - succeeded,
	})
	return outcomes, nil
}
