package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/users"
)

// GrantWarmer re-primes the cached grant set for a user.
type GrantWarmer interface {
	WarmCache(ctx context.Context, userID int64) error
}

// UserLister enumerates user accounts.
type UserLister interface {
	List(ctx context.Context) ([]users.User, error)
}

// GrantWarmJob refreshes the per-user grant cache so authorization checks
// stay in-memory fast after a cold start.
type GrantWarmJob struct {
	grants GrantWarmer
	users  UserLister
	logger *slog.Logger
}

// NewGrantWarmJob constructs the job.
func NewGrantWarmJob(grants GrantWarmer, users UserLister, logger *slog.Logger) *GrantWarmJob {
	return &GrantWarmJob{grants: grants, users: users, logger: logger}
}

// Handle processes TaskGrantWarm tasks.
func (j *GrantWarmJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload GrantWarmPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	ids := payload.UserIDs
	if len(ids) == 0 {
		all, err := j.users.List(ctx)
		if err != nil {
			return err
		}
		for _, u := range all {
			if u.IsActive && !u.IsAdmin {
				ids = append(ids, u.ID)
			}
		}
	}

	for _, id := range ids {
		if err := j.grants.WarmCache(ctx, id); err != nil && j.logger != nil {
			j.logger.Warn("warm grant cache", slog.Int64("user_id", id), slog.Any("error", err))
		}
	}
	return nil
}
