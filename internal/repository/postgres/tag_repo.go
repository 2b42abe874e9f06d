package postgres

import (
	"context"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
)

// TagRepo implements TagRepository using PostgreSQL.
type TagRepo struct{ db *DB }

// NewTagRepo constructs a tag repository.
func NewTagRepo(db *DB) *TagRepo { return &TagRepo{db: db} }

// List returns the owner's tags ordered by name.
func (r *TagRepo) List(ctx context.Context, userID int64) ([]model.Tag, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, user_id, name FROM tags WHERE user_id=$1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err = rows.Scan(&t.ID, &t.UserID, &t.Name); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create inserts a tag and fills its ID.
func (r *TagRepo) Create(ctx context.Context, t *model.Tag) error {
	const q = `INSERT INTO tags (user_id, name) VALUES ($1, $2) RETURNING id`
	err := r.db.Pool.QueryRow(ctx, q, t.UserID, t.Name).Scan(&t.ID)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Delete removes a tag and its entry links.
func (r *TagRepo) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM tags WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
