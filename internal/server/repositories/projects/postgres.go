// Package projects provides repositories for project persistence.
package projects

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/dbx"
	"github.com/juralis/paperdrop/internal/server/models"
)

// PostgresRepository implements project storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, p *models.Project) error {
	query := `INSERT INTO projects (id, name, status, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Status, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := `SELECT id, name, status, created_at FROM projects WHERE id = $1`
	p := &models.Project{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Status, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, status string) ([]*models.Project, error) {
	query := `SELECT id, name, status, created_at FROM projects ORDER BY created_at DESC`
	args := []any{}
	if status != "" {
		query = `SELECT id, name, status, created_at FROM projects WHERE status = $1 ORDER BY created_at DESC`
		args = append(args, status)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select projects: %w", err)
	}
	defer rows.Close()

	var result []*models.Project
	for rows.Next() {
		p := &models.Project{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SetStatus(ctx context.Context, id string, status string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE projects SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	n, err := dbx.RowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM projects WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query row scan failed: %w", err)
	}
	return true, nil
}
