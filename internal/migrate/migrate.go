// Package migrate applies the embedded SQL migrations.
package migrate

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/and161185/dev-diary/migrations"
)

// Up runs all pending migrations from the embedded filesystem.
func Up(ctx context.Context, dsn string) error {
	return run(ctx, dsn, goose.UpContext)
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, dsn string) error {
	return run(ctx, dsn, goose.DownContext)
}

// Status logs the applied state of every migration through goose's logger.
func Status(ctx context.Context, dsn string) error {
	return run(ctx, dsn, goose.StatusContext)
}

func run(ctx context.Context, dsn string, fn func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return fn(ctx, db, ".")
}
