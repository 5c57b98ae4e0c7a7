package grants

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines persistence operations for user permission grants.
type RepositoryPort interface {
	Insert(ctx context.Context, userID, permissionID int64) error
	Delete(ctx context.Context, userID, permissionID int64) error
	ListPermissionIDs(ctx context.Context, userID int64) ([]int64, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert records a grant. Granting an already granted permission is a no-op.
func (r *Repository) Insert(ctx context.Context, userID, permissionID int64) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO user_permissions (user_id, permission_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, permission_id) DO NOTHING`,
		userID, permissionID)
	return err
}

// Delete removes a grant. Revoking a non-granted permission is a no-op.
func (r *Repository) Delete(ctx context.Context, userID, permissionID int64) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM user_permissions WHERE user_id = $1 AND permission_id = $2`,
		userID, permissionID)
	return err
}

// ListPermissionIDs returns all permission IDs granted to a user.
func (r *Repository) ListPermissionIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT permission_id FROM user_permissions WHERE user_id = $1 ORDER BY permission_id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

var _ RepositoryPort = (*Repository)(nil)
