package permissions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// RepositoryPort defines persistence operations for the permission registry.
type RepositoryPort interface {
	Count(ctx context.Context) (int64, error)
	Insert(ctx context.Context, perms []Permission) error
	FindByName(ctx context.Context, name string) (Permission, error)
	All(ctx context.Context) ([]Permission, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Count returns the number of catalog rows currently persisted.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM permissions`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Insert persists catalog entries. Existing names are left untouched.
func (r *Repository) Insert(ctx context.Context, perms []Permission) error {
	for _, p := range perms {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO permissions (name, description, category) VALUES ($1, $2, $3)
			 ON CONFLICT (name) DO NOTHING`,
			p.Name, p.Description, p.Category)
		if err != nil {
			return err
		}
	}
	return nil
}

// FindByName fetches a permission by exact name.
func (r *Repository) FindByName(ctx context.Context, name string) (Permission, error) {
	var p Permission
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, category FROM permissions WHERE name = $1`,
		name).Scan(&p.ID, &p.Name, &p.Description, &p.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Permission{}, shared.ErrNotFound
		}
		return Permission{}, err
	}
	return p, nil
}

// All returns the full catalog.
func (r *Repository) All(ctx context.Context) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, category FROM permissions ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return perms, nil
}

var _ RepositoryPort = (*Repository)(nil)
