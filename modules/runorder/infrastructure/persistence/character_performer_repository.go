package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/pkg/composables"
)

type CharacterPerformerRepository struct{}

func NewCharacterPerformerRepository() runorder.CharacterPerformerRepository {
	return &CharacterPerformerRepository{}
}

func (r *CharacterPerformerRepository) GetBySketch(ctx context.Context, sketchID uuid.UUID) ([]runorder.CharacterPerformer, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT id, sketch_id, character_name, performer_name, created_at, updated_at
FROM character_performers
WHERE sketch_id=$1
ORDER BY created_at
`, pgUUID(sketchID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []runorder.CharacterPerformer
	for rows.Next() {
		cp, err := scanCharacterPerformer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, rows.Err()
}

func (r *CharacterPerformerRepository) Create(ctx context.Context, cp runorder.CharacterPerformer) (runorder.CharacterPerformer, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.CharacterPerformer{}, err
	}

	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}

	row := tx.QueryRow(ctx, `
INSERT INTO character_performers (id, sketch_id, character_name, performer_name)
VALUES ($1,$2,$3,$4)
RETURNING id, sketch_id, character_name, performer_name, created_at, updated_at
`, pgUUID(cp.ID), pgUUID(cp.SketchID), cp.CharacterName, cp.PerformerName)
	created, err := scanCharacterPerformer(row)
	if err != nil {
		return runorder.CharacterPerformer{}, gerrors.Wrap(err, "create character performer")
	}
	return created, nil
}

func (r *CharacterPerformerRepository) UpdatePerformer(ctx context.Context, id uuid.UUID, performerName string) (runorder.CharacterPerformer, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.CharacterPerformer{}, err
	}

	row := tx.QueryRow(ctx, `
UPDATE character_performers
SET performer_name=$2, updated_at=now()
WHERE id=$1
RETURNING id, sketch_id, character_name, performer_name, created_at, updated_at
`, pgUUID(id), performerName)
	updated, err := scanCharacterPerformer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return runorder.CharacterPerformer{}, runorder.ErrPerformerNotFound
		}
		return runorder.CharacterPerformer{}, err
	}
	return updated, nil
}

func (r *CharacterPerformerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM character_performers WHERE id=$1`, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return runorder.ErrPerformerNotFound
	}
	return nil
}

func (r *CharacterPerformerRepository) CountBySketch(ctx context.Context, sketchID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int
	if err := tx.QueryRow(ctx, `
SELECT COUNT(*) FROM character_performers WHERE sketch_id=$1
`, pgUUID(sketchID)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
