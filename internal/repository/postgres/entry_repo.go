package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/and161185/dev-diary/internal/errs"
	"github.com/and161185/dev-diary/internal/model"
	"github.com/jackc/pgx/v5"
)

// EntryRepo implements EntryRepository using PostgreSQL.
type EntryRepo struct{ db *DB }

// NewEntryRepo constructs an entry repository.
func NewEntryRepo(db *DB) *EntryRepo { return &EntryRepo{db: db} }

const entrySelect = `
SELECT e.id, e.user_id, e.project_id, e.date, e.title, e.body, e.looking_ahead,
       e.mood, e.focus_score, e.created_at, e.updated_at, p.name, p.description
FROM entries e
LEFT JOIN projects p ON p.id = e.project_id`

// tagClause matches entries linked to a tag name of the same owner.
const tagClause = `EXISTS (
SELECT 1 FROM entry_tags et JOIN tags t ON t.id = et.tag_id
WHERE et.entry_id = e.id AND t.name = $%d)`

// List returns the owner's entries matching f ordered by date and creation time, newest first.
func (r *EntryRepo) List(ctx context.Context, userID int64, f model.EntryFilter) ([]model.Entry, error) {
	w := &where{}
	w.add("e.user_id = $%d", userID)
	if f.ProjectID != nil {
		w.add("e.project_id = $%d", *f.ProjectID)
	}
	if f.Tag != "" {
		w.add(tagClause, f.Tag)
	}
	if f.Search != "" {
		w.add("(e.title ILIKE $%[1]d OR e.body ILIKE $%[1]d)", "%"+escapeLike(f.Search)+"%")
	}
	if f.DateFrom != nil {
		w.add("e.date >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		w.add("e.date <= $%d", *f.DateTo)
	}
	q := entrySelect + "\nWHERE " + strings.Join(w.clauses, " AND ") + "\nORDER BY e.date DESC, e.created_at DESC"

	rows, err := r.db.Pool.Query(ctx, q, w.args...)
	if err != nil {
		return nil, err
	}
	out := []model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, e)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if err = attachTags(ctx, r.db.Pool, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single entry of the owner.
func (r *EntryRepo) Get(ctx context.Context, userID, id int64) (*model.Entry, error) {
	return getEntry(ctx, r.db.Pool, userID, id)
}

// Create inserts an entry and links its tags in one transaction.
func (r *EntryRepo) Create(ctx context.Context, userID int64, in model.NewEntry) (*model.Entry, error) {
	const ins = `
INSERT INTO entries (user_id, project_id, date, title, body, looking_ahead, mood, focus_score)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`
	var out *model.Entry
	err := r.db.inTx(ctx, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, ins, userID, in.ProjectID, in.Date, in.Title, in.Body,
			in.LookingAhead, in.Mood, in.FocusScore).Scan(&id); err != nil {
			return err
		}
		if err := linkTags(ctx, tx, userID, id, in.TagNames); err != nil {
			return err
		}
		var err error
		out, err = getEntry(ctx, tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the set fields of p. A non-nil p.TagNames replaces the tag set.
func (r *EntryRepo) Update(ctx context.Context, userID, id int64, p model.EntryPatch) (*model.Entry, error) {
	args := []any{id, userID}
	sets := []string{"updated_at = now()"}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	switch {
	case p.ClearProject:
		sets = append(sets, "project_id = NULL")
	case p.ProjectID != nil:
		set("project_id", *p.ProjectID)
	}
	if p.Date != nil {
		set("date", *p.Date)
	}
	if p.Title != nil {
		set("title", *p.Title)
	}
	if p.Body != nil {
		set("body", *p.Body)
	}
	if p.LookingAhead != nil {
		set("looking_ahead", *p.LookingAhead)
	}
	if p.Mood != nil {
		set("mood", *p.Mood)
	}
	if p.FocusScore != nil {
		set("focus_score", *p.FocusScore)
	}
	upd := "UPDATE entries SET " + strings.Join(sets, ", ") + " WHERE id = $1 AND user_id = $2"

	var out *model.Entry
	err := r.db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, upd, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.ErrNotFound
		}
		if p.TagNames != nil {
			if _, err = tx.Exec(ctx, `DELETE FROM entry_tags WHERE entry_id = $1`, id); err != nil {
				return err
			}
			if err = linkTags(ctx, tx, userID, id, p.TagNames); err != nil {
				return err
			}
		}
		out, err = getEntry(ctx, tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an entry; tag links cascade.
func (r *EntryRepo) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func getEntry(ctx context.Context, q querier, userID, id int64) (*model.Entry, error) {
	e, err := scanEntry(q.QueryRow(ctx, entrySelect+"\nWHERE e.id = $1 AND e.user_id = $2", id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	one := []model.Entry{e}
	if err = attachTags(ctx, q, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func scanEntry(row pgx.Row) (model.Entry, error) {
	var (
		e            model.Entry
		pName, pDesc *string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.ProjectID, &e.Date, &e.Title, &e.Body, &e.LookingAhead,
		&e.Mood, &e.FocusScore, &e.CreatedAt, &e.UpdatedAt, &pName, &pDesc)
	if err != nil {
		return e, err
	}
	if e.ProjectID != nil && pName != nil {
		e.Project = &model.ProjectRef{ID: *e.ProjectID, Name: *pName, Description: pDesc}
	}
	e.Tags = []model.Tag{}
	return e, nil
}

// attachTags loads the tags of every entry in one query.
func attachTags(ctx context.Context, q querier, entries []model.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]int64, len(entries))
	pos := make(map[int64]int, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
		pos[e.ID] = i
	}
	const sel = `
SELECT et.entry_id, t.id, t.user_id, t.name
FROM entry_tags et
JOIN tags t ON t.id = et.tag_id
WHERE et.entry_id = ANY($1)
ORDER BY t.name`
	rows, err := q.Query(ctx, sel, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			entryID int64
			t       model.Tag
		)
		if err = rows.Scan(&entryID, &t.ID, &t.UserID, &t.Name); err != nil {
			return err
		}
		if i, ok := pos[entryID]; ok {
			entries[i].Tags = append(entries[i].Tags, t)
		}
	}
	return rows.Err()
}

// linkTags get-or-creates each named tag for the owner and links it to the entry.
func linkTags(ctx context.Context, tx pgx.Tx, userID, entryID int64, names []string) error {
	const upsert = `
INSERT INTO tags (user_id, name) VALUES ($1, $2)
ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
RETURNING id`
	const link = `INSERT INTO entry_tags (entry_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, name := range names {
		var tagID int64
		if err := tx.QueryRow(ctx, upsert, userID, name).Scan(&tagID); err != nil {
			return fmt.Errorf("tag %q: %w", name, err)
		}
		if _, err := tx.Exec(ctx, link, entryID, tagID); err != nil {
			return fmt.Errorf("link tag %q: %w", name, err)
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
