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

const sketchColumns = "id, show_id, title, description, duration_minutes, chars, casted, locked, position, raw_data, created_at, updated_at"

type SketchRepository struct{}

func NewSketchRepository() runorder.SketchRepository {
	return &SketchRepository{}
}

func (r *SketchRepository) GetByShow(ctx context.Context, showID uuid.UUID) ([]runorder.Sketch, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT `+sketchColumns+`
FROM sketches
WHERE show_id=$1
ORDER BY position, created_at
`, pgUUID(showID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []runorder.Sketch
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		sketch, err := scanSketch(rows)
		if err != nil {
			return nil, err
		}
		byID[sketch.ID] = len(out)
		out = append(out, sketch)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if len(out) == 0 {
		return out, nil
	}

	cpRows, err := tx.Query(ctx, `
SELECT id, sketch_id, character_name, performer_name, created_at, updated_at
FROM character_performers
WHERE sketch_id IN (SELECT id FROM sketches WHERE show_id=$1)
ORDER BY created_at
`, pgUUID(showID))
	if err != nil {
		return nil, err
	}
	defer cpRows.Close()
	for cpRows.Next() {
		cp, err := scanCharacterPerformer(cpRows)
		if err != nil {
			return nil, err
		}
		if i, ok := byID[cp.SketchID]; ok {
			out[i].CharacterPerformers = append(out[i].CharacterPerformers, cp)
		}
	}
	if err := cpRows.Err(); err != nil {
		return nil, err
	}
	cpRows.Close()

	techRows, err := tx.Query(ctx, `
SELECT `+techColumns+`
FROM sketch_tech_details
WHERE sketch_id IN (SELECT id FROM sketches WHERE show_id=$1)
`, pgUUID(showID))
	if err != nil {
		return nil, err
	}
	defer techRows.Close()
	for techRows.Next() {
		tech, err := scanTechDetails(techRows)
		if err != nil {
			return nil, err
		}
		if i, ok := byID[tech.SketchID]; ok {
			details := tech
			out[i].TechDetails = &details
		}
	}
	return out, techRows.Err()
}

func (r *SketchRepository) GetByID(ctx context.Context, id uuid.UUID) (runorder.Sketch, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.Sketch{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+sketchColumns+`
FROM sketches
WHERE id=$1
`, pgUUID(id))
	sketch, err := scanSketch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return runorder.Sketch{}, runorder.ErrSketchNotFound
		}
		return runorder.Sketch{}, err
	}

	cpRows, err := tx.Query(ctx, `
SELECT id, sketch_id, character_name, performer_name, created_at, updated_at
FROM character_performers
WHERE sketch_id=$1
ORDER BY created_at
`, pgUUID(id))
	if err != nil {
		return runorder.Sketch{}, err
	}
	defer cpRows.Close()
	for cpRows.Next() {
		cp, err := scanCharacterPerformer(cpRows)
		if err != nil {
			return runorder.Sketch{}, err
		}
		sketch.CharacterPerformers = append(sketch.CharacterPerformers, cp)
	}
	if err := cpRows.Err(); err != nil {
		return runorder.Sketch{}, err
	}

	techRow := tx.QueryRow(ctx, `
SELECT `+techColumns+`
FROM sketch_tech_details
WHERE sketch_id=$1
`, pgUUID(id))
	tech, err := scanTechDetails(techRow)
	if err == nil {
		sketch.TechDetails = &tech
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return runorder.Sketch{}, err
	}

	return sketch, nil
}

func (r *SketchRepository) CountByShow(ctx context.Context, showID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*) FROM sketches WHERE show_id=$1
`, pgUUID(showID)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SketchRepository) Create(ctx context.Context, sketch runorder.Sketch) (runorder.Sketch, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.Sketch{}, err
	}

	if sketch.ID == uuid.Nil {
		sketch.ID = uuid.New()
	}

	row := tx.QueryRow(ctx, `
INSERT INTO sketches (id, show_id, title, description, duration_minutes, chars, casted, locked, position, raw_data)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
RETURNING `+sketchColumns+`
`,
		pgUUID(sketch.ID),
		pgUUID(sketch.ShowID),
		sketch.Title,
		sketch.Description,
		sketch.DurationMinutes,
		sketch.Chars,
		sketch.Casted,
		sketch.Locked,
		sketch.Position,
		sketch.RawData,
	)
	created, err := scanSketch(row)
	if err != nil {
		return runorder.Sketch{}, gerrors.Wrap(err, "create sketch")
	}
	return created, nil
}

func (r *SketchRepository) Update(ctx context.Context, sketch runorder.Sketch) (runorder.Sketch, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.Sketch{}, err
	}

	row := tx.QueryRow(ctx, `
UPDATE sketches
SET title=$2, description=$3, duration_minutes=$4, chars=$5, casted=$6, locked=$7, position=$8, raw_data=$9, updated_at=now()
WHERE id=$1
RETURNING `+sketchColumns+`
`,
		pgUUID(sketch.ID),
		sketch.Title,
		sketch.Description,
		sketch.DurationMinutes,
		sketch.Chars,
		sketch.Casted,
		sketch.Locked,
		sketch.Position,
		sketch.RawData,
	)
	updated, err := scanSketch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return runorder.Sketch{}, runorder.ErrSketchNotFound
		}
		return runorder.Sketch{}, err
	}
	return updated, nil
}

func (r *SketchRepository) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	return r.execOne(ctx, `
UPDATE sketches SET position=$2, updated_at=now() WHERE id=$1
`, id, position)
}

func (r *SketchRepository) SetLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	return r.execOne(ctx, `
UPDATE sketches SET locked=$2, updated_at=now() WHERE id=$1
`, id, locked)
}

func (r *SketchRepository) SetCasted(ctx context.Context, id uuid.UUID, casted int) error {
	return r.execOne(ctx, `
UPDATE sketches SET casted=$2, updated_at=now() WHERE id=$1
`, id, casted)
}

func (r *SketchRepository) execOne(ctx context.Context, sql string, id uuid.UUID, arg any) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, sql, pgUUID(id), arg)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return runorder.ErrSketchNotFound
	}
	return nil
}

// Delete removes the sketch's character performers and tech details before
// the sketch itself. The caller wraps the three statements in a transaction.
func (r *SketchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM character_performers WHERE sketch_id=$1`, pgUUID(id)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sketch_tech_details WHERE sketch_id=$1`, pgUUID(id)); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM sketches WHERE id=$1`, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return runorder.ErrSketchNotFound
	}
	return nil
}

func (r *SketchRepository) DeleteByShow(ctx context.Context, showID uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM character_performers
WHERE sketch_id IN (SELECT id FROM sketches WHERE show_id=$1)
`, pgUUID(showID)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `
DELETE FROM sketch_tech_details
WHERE sketch_id IN (SELECT id FROM sketches WHERE show_id=$1)
`, pgUUID(showID)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM sketches WHERE show_id=$1`, pgUUID(showID)); err != nil {
		return err
	}
	return nil
}

func scanSketch(row pgx.Row) (runorder.Sketch, error) {
	var (
		id        pgtype.UUID
		showID    pgtype.UUID
		sketch    runorder.Sketch
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&id,
		&showID,
		&sketch.Title,
		&sketch.Description,
		&sketch.DurationMinutes,
		&sketch.Chars,
		&sketch.Casted,
		&sketch.Locked,
		&sketch.Position,
		&sketch.RawData,
		&createdAt,
		&updatedAt,
	); err != nil {
		return runorder.Sketch{}, err
	}
	sketch.ID = uuidFromPg(id)
	sketch.ShowID = uuidFromPg(showID)
	sketch.CreatedAt = createdAt.Time
	sketch.UpdatedAt = updatedAt.Time
	return sketch, nil
}

func scanCharacterPerformer(row pgx.Row) (runorder.CharacterPerformer, error) {
	var (
		id        pgtype.UUID
		sketchID  pgtype.UUID
		cp        runorder.CharacterPerformer
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &sketchID, &cp.CharacterName, &cp.PerformerName, &createdAt, &updatedAt); err != nil {
		return runorder.CharacterPerformer{}, err
	}
	cp.ID = uuidFromPg(id)
	cp.SketchID = uuidFromPg(sketchID)
	cp.CreatedAt = createdAt.Time
	cp.UpdatedAt = updatedAt.Time
	return cp, nil
}
