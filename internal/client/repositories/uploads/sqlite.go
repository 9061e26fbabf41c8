package uploads

import (
	"context"
	"fmt"

	"github.com/juralis/paperdrop/internal/client/models"
	"github.com/juralis/paperdrop/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, u *models.PendingUpload) error {
	query := `INSERT INTO pending_uploads
			(sync_key, original_name, content_type, project_id, author_name, payload, enqueued_at)
			values (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		u.SyncKey, u.OriginalName, u.ContentType, u.ProjectID, u.AuthorName, u.Payload, u.EnqueuedAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue upload: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	u.LocalID = id
	return nil
}

// ListPending returns the queue oldest first, so sync preserves capture order.
func (r *SQLiteRepository) ListPending(ctx context.Context) ([]*models.PendingUpload, error) {
	query := `select local_id, sync_key, original_name, content_type, project_id, author_name, payload, enqueued_at
			from pending_uploads order by local_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select uploads: %w", err)
	}
	defer rows.Close()

	var result []*models.PendingUpload
	for rows.Next() {
		item := &models.PendingUpload{}
		if err := rows.Scan(&item.LocalID, &item.SyncKey, &item.OriginalName, &item.ContentType,
			&item.ProjectID, &item.AuthorName, &item.Payload, &item.EnqueuedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Remove is idempotent: a concurrent or repeated removal of the same id
// affects zero rows and succeeds.
func (r *SQLiteRepository) Remove(ctx context.Context, localID int64) error {
	query := `delete from pending_uploads where local_id=?`
	if _, err := r.db.ExecContext(ctx, query, localID); err != nil {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `select count(*) from pending_uploads`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count uploads: %w", err)
	}
	return n, nil
}
