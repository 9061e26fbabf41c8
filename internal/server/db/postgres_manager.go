package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/juralis/paperdrop/internal/server/migrations"
	"github.com/juralis/paperdrop/internal/server/repositories/documents"
	"github.com/juralis/paperdrop/internal/server/repositories/projects"
)

type PostgresRepositoryManager struct {
	db        *sql.DB
	documents documents.Repository
	projects  projects.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) Documents() documents.Repository {
	return m.documents
}

func (m *PostgresRepositoryManager) Projects() projects.Repository {
	return m.projects
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager opens the database, builds the repositories
// and brings the schema up to date.
func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:        db,
		documents: documents.NewPostgresRepository(db),
		projects:  projects.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
