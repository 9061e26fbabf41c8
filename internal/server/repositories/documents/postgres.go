// Package documents provides repositories for server-side document
// persistence and inbox/assignment queries.
package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/juralis/paperdrop/internal/common"
	"github.com/juralis/paperdrop/internal/dbx"
	"github.com/juralis/paperdrop/internal/server/models"
)

// PostgresRepository implements document storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const documentColumns = `id, project_id, stored_name, file_type, original_name, author_name, sync_key, uploaded_at`

func (r *PostgresRepository) Insert(ctx context.Context, doc *models.Document) error {
	query := `
		INSERT INTO documents (id, project_id, stored_name, file_type, original_name, author_name, sync_key, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.ProjectID, doc.StoredName, doc.FileType, doc.OriginalName, doc.AuthorName, doc.SyncKey, doc.UploadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetBySyncKey(ctx context.Context, key string) (*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE sync_key = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, key))
}

func (r *PostgresRepository) ListInbox(ctx context.Context) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE project_id IS NULL ORDER BY uploaded_at DESC`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListByProject(ctx context.Context, projectID string) ([]*models.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE project_id = $1 ORDER BY uploaded_at DESC`
	return r.list(ctx, query, projectID)
}

func (r *PostgresRepository) SetProject(ctx context.Context, id string, projectID *string) error {
	query := `UPDATE documents SET project_id = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, projectID, id)
	if err != nil {
		return fmt.Errorf("failed to update document project: %w", err)
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

// SetProjectAll runs the batch inside a transaction when the repository is
// bound to a *sql.DB; bound to a *sql.Tx it joins the caller's transaction.
func (r *PostgresRepository) SetProjectAll(ctx context.Context, ids []string, projectID *string) error {
	if conn, ok := r.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return NewPostgresRepository(tx).setProjectAll(ctx, ids, projectID)
		})
	}
	return r.setProjectAll(ctx, ids, projectID)
}

func (r *PostgresRepository) setProjectAll(ctx context.Context, ids []string, projectID *string) error {
	for _, id := range ids {
		if err := r.SetProject(ctx, id, projectID); err != nil {
			return fmt.Errorf("document %q: %w", id, err)
		}
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
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

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Document, error) {
	d := &models.Document{}
	err := row.Scan(&d.ID, &d.ProjectID, &d.StoredName, &d.FileType, &d.OriginalName, &d.AuthorName, &d.SyncKey, &d.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []*models.Document
	for rows.Next() {
		d := &models.Document{}
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.StoredName, &d.FileType, &d.OriginalName, &d.AuthorName, &d.SyncKey, &d.UploadedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
