package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines persistence operations for the auth trail.
type RepositoryPort interface {
	Insert(ctx context.Context, e Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists an event.
func (r *Repository) Insert(ctx context.Context, e Event) error {
	meta, err := json.Marshal(e.Meta)
	if err != nil {
		return err
	}
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO auth_events (action, user_id, username, actor_id, permission_id, meta, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.Action, e.UserID, e.Username, e.ActorID, e.PermissionID, meta, at)
	return err
}

// Recent returns the newest events, most recent first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, action, user_id, username, actor_id, permission_id, meta, occurred_at
		 FROM auth_events ORDER BY occurred_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		var meta []byte
		if err := rows.Scan(&e.ID, &e.Action, &e.UserID, &e.Username, &e.ActorID,
			&e.PermissionID, &meta, &e.At); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			_ = json.Unmarshal(meta, &e.Meta)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ RepositoryPort = (*Repository)(nil)
