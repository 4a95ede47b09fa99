package persistence

import (
	"context"
	"errors"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/greenroomhq/runsheet/modules/runorder/domain/runorder"
	"github.com/greenroomhq/runsheet/pkg/composables"
)

const showColumns = "id, title, description, position, created_at, updated_at"

type ShowRepository struct{}

func NewShowRepository() runorder.ShowRepository {
	return &ShowRepository{}
}

func (r *ShowRepository) GetAll(ctx context.Context) ([]runorder.Show, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
SELECT `+showColumns+`
FROM shows
ORDER BY position, created_at
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []runorder.Show
	for rows.Next() {
		show, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, show)
	}
	return out, rows.Err()
}

func (r *ShowRepository) GetByID(ctx context.Context, id uuid.UUID) (runorder.Show, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.Show{}, err
	}

	row := tx.QueryRow(ctx, `
SELECT `+showColumns+`
FROM shows
WHERE id=$1
`, pgUUID(id))
	show, err := scanShow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return runorder.Show{}, runorder.ErrShowNotFound
		}
		return runorder.Show{}, err
	}
	return show, nil
}

func (r *ShowRepository) Create(ctx context.Context, show runorder.Show) (runorder.Show, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.Show{}, err
	}

	if show.ID == uuid.Nil {
		show.ID = uuid.New()
	}

	row := tx.QueryRow(ctx, `
INSERT INTO shows (id, title, description, position)
VALUES ($1, $2, $3, $4)
RETURNING `+showColumns+`
`, pgUUID(show.ID), strings.TrimSpace(show.Title), show.Description, show.Position)
	created, err := scanShow(row)
	if err != nil {
		return runorder.Show{}, gerrors.Wrap(err, "create show")
	}
	return created, nil
}

func (r *ShowRepository) Update(ctx context.Context, show runorder.Show) (runorder.Show, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return runorder.Show{}, err
	}

	row := tx.QueryRow(ctx, `
UPDATE shows
SET title=$2, description=$3, position=$4, updated_at=now()
WHERE id=$1
RETURNING `+showColumns+`
`, pgUUID(show.ID), strings.TrimSpace(show.Title), show.Description, show.Position)
	updated, err := scanShow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return runorder.Show{}, runorder.ErrShowNotFound
		}
		return runorder.Show{}, err
	}
	return updated, nil
}

func (r *ShowRepository) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
UPDATE shows SET position=$2, updated_at=now() WHERE id=$1
`, pgUUID(id), position)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return runorder.ErrShowNotFound
	}
	return nil
}

func (r *ShowRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM shows WHERE id=$1`, pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return runorder.ErrShowNotFound
	}
	return nil
}

func (r *ShowRepository) Count(ctx context.Context) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM shows`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanShow(row pgx.Row) (runorder.Show, error) {
	var (
		id        pgtype.UUID
		show      runorder.Show
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &show.Title, &show.Description, &show.Position, &createdAt, &updatedAt); err != nil {
		return runorder.Show{}, err
	}
	show.ID = uuidFromPg(id)
	show.CreatedAt = createdAt.Time
	show.UpdatedAt = updatedAt.Time
	return show, nil
}
