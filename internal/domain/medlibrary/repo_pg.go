package medlibrary

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const entryCols = `id, user_id, name, default_dosage, default_instructions, created_at, updated_at`

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.DefaultDosage, &e.DefaultInstructions, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *repoPG) Create(ctx context.Context, e *Entry) error {
	e.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO medication_library (id, user_id, name, default_dosage, default_instructions)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		e.ID, e.UserID, e.Name, e.DefaultDosage, e.DefaultInstructions,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, userID, id uuid.UUID) (*Entry, error) {
	return scanEntry(r.pool.QueryRow(ctx, `
		SELECT `+entryCols+` FROM medication_library WHERE id = $1 AND user_id = $2`,
		id, userID))
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryCols+` FROM medication_library WHERE user_id = $1 ORDER BY name`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *repoPG) Search(ctx context.Context, userID uuid.UUID, query string, limit int) ([]*Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryCols+`
		FROM medication_library
		WHERE user_id = $1 AND name ILIKE $2
		ORDER BY name
		LIMIT $3`,
		userID, "%"+query+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func (r *repoPG) ExistsByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM medication_library
			WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3
		)`,
		userID, name, excludeID).Scan(&exists)
	return exists, err
}

func (r *repoPG) Update(ctx context.Context, e *Entry) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE medication_library
		SET name = $3, default_dosage = $4, default_instructions = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2`,
		e.ID, e.UserID, e.Name, e.DefaultDosage, e.DefaultInstructions)
	if isUniqueViolation(err) {
		return ErrDuplicateName
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM medication_library WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectEntries(rows pgx.Rows) ([]*Entry, error) {
	var items []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
