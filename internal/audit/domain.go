package audit

import "time"

// Event is one auth-trail record: a login attempt, logout, expiry, or a
// grant administration change.
type Event struct {
	ID           int64          `json:"id"`
	Action       string         `json:"action"`
	UserID       int64          `json:"user_id,omitempty"`
	Username     string         `json:"username,omitempty"`
	ActorID      int64          `json:"actor_id,omitempty"`
	PermissionID int64          `json:"permission_id,omitempty"`
	Meta         map[string]any `json:"meta,omitempty"`
	At           time.Time      `json:"at"`
}
