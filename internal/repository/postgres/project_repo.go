package postgres

import (
	"context"
	"errors"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/jackc/pgx/v5"
)

// ProjectRepo implements ProjectRepository using PostgreSQL.
type ProjectRepo struct{ db *DB }

// NewProjectRepo constructs a project repository.
func NewProjectRepo(db *DB) *ProjectRepo { return &ProjectRepo{db: db} }

// List returns the owner's projects ordered by name.
func (r *ProjectRepo) List(ctx context.Context, userID int64) ([]model.Project, error) {
	const q = `
SELECT id, user_id, name, description, created_at
FROM projects WHERE user_id=$1
ORDER BY name`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err = rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns a single project of the owner.
func (r *ProjectRepo) Get(ctx context.Context, userID, id int64) (*model.Project, error) {
	const q = `
SELECT id, user_id, name, description, created_at
FROM projects WHERE id=$1 AND user_id=$2`
	return scanProject(r.db.Pool.QueryRow(ctx, q, id, userID))
}

// Create inserts a project and fills ID and CreatedAt.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	const q = `
INSERT INTO projects (user_id, name, description)
VALUES ($1, $2, $3)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q, p.UserID, p.Name, p.Description).Scan(&p.ID, &p.CreatedAt)
}

// Update changes the non-nil fields of p.
func (r *ProjectRepo) Update(ctx context.Context, userID, id int64, p model.ProjectPatch) (*model.Project, error) {
	const q = `
UPDATE projects
SET name = COALESCE($3, name), description = COALESCE($4, description)
WHERE id=$1 AND user_id=$2
RETURNING id, user_id, name, description, created_at`
	return scanProject(r.db.Pool.QueryRow(ctx, q, id, userID, p.Name, p.Description))
}

// Delete removes a project; its entries keep existing without a project.
func (r *ProjectRepo) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
