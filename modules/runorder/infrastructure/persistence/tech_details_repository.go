package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/pkg/composables"
)

const techColumns = "id, sketch_id, cues, props, costume, stage_dressing, chairs, stools, other_props, created_at, updated_at"

type TechDetailsRepository struct{}

func NewTechDetailsRepository() runorder.TechDetailsRepository {
	return &TechDetailsRepository{}
}

func (r *TechDetailsRepository) GetBySketch(ctx context.Context, sketchID uuid.UUID) (runorder.SketchTechDetails, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.SketchTechDetails{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+techColumns+`
FROM sketch_tech_details
WHERE sketch_id=$1
`, pgUUID(sketchID))
	details, err := scanTechDetails(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return runorder.SketchTechDetails{}, runorder.ErrTechDetailsNotFound
		}
		return runorder.SketchTechDetails{}, err
	}
	return details, nil
}

// Upsert relies on the sketch_id uniqueness constraint: the first write for a
// sketch creates the row, later writes update it in place.
func (r *TechDetailsRepository) Upsert(ctx context.Context, details runorder.SketchTechDetails) (runorder.SketchTechDetails, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.SketchTechDetails{}, err
	}

	if details.ID == uuid.Nil {
		details.ID = uuid.New()
	}

	row := tx.QueryRow(ctx, `
INSERT INTO sketch_tech_details (id, sketch_id, cues, props, costume, stage_dressing, chairs, stools, other_props)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (sketch_id) DO UPDATE
SET cues=EXCLUDED.cues,
    props=EXCLUDED.props,
    costume=EXCLUDED.costume,
    stage_dressing=EXCLUDED.stage_dressing,
    chairs=EXCLUDED.chairs,
    stools=EXCLUDED.stools,
    other_props=EXCLUDED.other_props,
    updated_at=now()
RETURNING `+techColumns+`
`,
		pgUUID(details.ID),
		pgUUID(details.SketchID),
		details.Cues,
		details.Props,
		details.Costume,
		details.StageDressing,
		details.Chairs,
		details.Stools,
		details.OtherProps,
	)
	saved, err := scanTechDetails(row)
	if err != nil {
		return runorder.SketchTechDetails{}, gerrors.Wrap(err, "upsert tech details")
	}
	return saved, nil
}

func scanTechDetails(row pgx.Row) (runorder.SketchTechDetails, error) {
	var (
		id        pgtype.UUID
		sketchID  pgtype.UUID
		details   runorder.SketchTechDetails
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&id,
		&sketchID,
		&details.Cues,
		&details.Props,
		&details.Costume,
		&details.StageDressing,
		&details.Chairs,
		&details.Stools,
		&details.OtherProps,
		&createdAt,
		&updatedAt,
	); err != nil {
		return runorder.SketchTechDetails{}, err
	}
	details.ID = uuidFromPg(id)
	details.SketchID = uuidFromPg(sketchID)
	details.CreatedAt = createdAt.Time
	details.UpdatedAt = updatedAt.Time
	return details, nil
}
