package client

import (
	"context"
	"database/sql"
	"log"

	"github.com/pressly/goose/v3"

	"github.com/juralis/paperdrop/internal/client/migrations"
	"github.com/juralis/paperdrop/internal/client/repositories/uploads"

	_ "modernc.org/sqlite"
)

type Repositories struct {
	Uploads uploads.Repository
	DB      *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	// Set the database dialect
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal("failed to set goose dialect:", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (or creates) the local queue database and brings its
// schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Uploads: uploads.NewSQLiteRepository(db),
		DB:      db,
	}, nil
}
