package client

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"github.com/dkolesov/refind/internal/client/migrations"
)

// InitDatabase opens the client-local SQLite database and brings its schema
// up to date. The caller is responsible for importing an sqlite driver.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
