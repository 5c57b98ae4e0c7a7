package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionSweep removes stale session snapshots and prunes the auth trail.
	TaskSessionSweep = "session:sweep"
	// TaskGrantWarm re-primes the per-user grant cache.
	TaskGrantWarm = "authz:grants_warm"
)

// SessionSweepPayload configures a sweep run.
type SessionSweepPayload struct {
	AuditRetentionDays int `json:"audit_retention_days"`
}

// NewSessionSweepTask constructs an Asynq task.
func NewSessionSweepTask(payload SessionSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionSweep, data), nil
}

// GrantWarmPayload selects which users to warm. Empty means all.
type GrantWarmPayload struct {
	UserIDs []int64 `json:"user_ids,omitempty"`
}

// NewGrantWarmTask constructs an Asynq task.
func NewGrantWarmTask(payload GrantWarmPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGrantWarm, data), nil
}
