package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/session"
)

// SessionSweepJob deletes expired or corrupt session snapshots and prunes
// old auth-trail rows.
type SessionSweepJob struct {
	store   *session.Store
	timeout time.Duration
	pool    *pgxpool.Pool
	logger  *slog.Logger
}

// NewSessionSweepJob constructs the job.
func NewSessionSweepJob(store *session.Store, timeout time.Duration, pool *pgxpool.Pool, logger *slog.Logger) *SessionSweepJob {
	if timeout <= 0 {
		timeout = session.DefaultTimeout
	}
	return &SessionSweepJob{store: store, timeout: timeout, pool: pool, logger: logger}
}

// Handle processes TaskSessionSweep tasks.
func (j *SessionSweepJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SessionSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	j.sweepSnapshot()

	retention := payload.AuditRetentionDays
	if retention <= 0 {
		retention = 90
	}
	if j.pool != nil {
		cutoff := time.Now().AddDate(0, 0, -retention)
		tag, err := j.pool.Exec(ctx, `DELETE FROM auth_events WHERE occurred_at < $1`, cutoff)
		if err != nil {
			return err
		}
		if j.logger != nil && tag.RowsAffected() > 0 {
			j.logger.Info("pruned auth events", slog.Int64("rows", tag.RowsAffected()))
		}
	}
	return nil
}

func (j *SessionSweepJob) sweepSnapshot() {
	if j.store == nil {
		return
	}
	snap, err := j.store.Load()
	switch {
	case errors.Is(err, session.ErrNoSnapshot):
		return
	case err != nil:
		// Corrupt snapshot: self-heal by deletion.
		if delErr := j.store.Delete(); delErr != nil && j.logger != nil {
			j.logger.Warn("delete corrupt snapshot", slog.Any("error", delErr))
		}
		return
	}
	if time.Since(snap.StartedAt) >= j.timeout {
		if delErr := j.store.Delete(); delErr != nil && j.logger != nil {
			j.logger.Warn("delete stale snapshot", slog.Any("error", delErr))
		}
	}
}
