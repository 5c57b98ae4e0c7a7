package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-erp/meridian-erp/internal/users"
)

// DefaultTimeout is the fixed session expiry threshold.
const DefaultTimeout = 8 * time.Hour

// Session data bag keys. The bag is string keyed on disk; in code every
// consumer goes through one of these typed keys.
type DataKey string

const (
	KeyBranch   DataKey = "branch"
	KeyTheme    DataKey = "theme"
	KeyLanguage DataKey = "language"
)

// UserSource resolves and authenticates operator accounts.
type UserSource interface {
	Authenticate(ctx context.Context, username, password string) (*users.User, error)
	FindByID(ctx context.Context, id int64) (*users.User, error)
}

// AuditSink records authentication lifecycle events.
type AuditSink interface {
	RecordAuthEvent(ctx context.Context, action string, userID int64, username string)
}

// Audit action names emitted by the manager.
const (
	AuditLoginSuccess   = "login.success"
	AuditLoginFailure   = "login.failure"
	AuditLogout         = "logout"
	AuditSessionExpired = "session.expired"
)

// Manager holds the single operator session for this process. This is a
// desktop-style deployment: exactly one logical session exists; concurrent
// callers only share reads of it, guarded by the mutex.
type Manager struct {
	users   UserSource
	store   *Store
	audit   AuditSink
	timeout time.Duration
	logger  *slog.Logger

	mu        sync.Mutex
	current   *users.User
	sessionID string
	startedAt time.Time
	data      map[string]string
}

// Config collects Manager dependencies.
type Config struct {
	Users   UserSource
	Store   *Store
	Audit   AuditSink
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewManager constructs a Manager in the LoggedOut state.
func NewManager(cfg Config) *Manager {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Manager{
		users:   cfg.Users,
		store:   cfg.Store,
		audit:   cfg.Audit,
		timeout: timeout,
		logger:  cfg.Logger,
	}
}

// Login resolves an active user by username, verifies the password, and
// transitions to LoggedIn. Reports a bare boolean: unknown username, wrong
// password, and inactive account are indistinguishable to the caller.
func (m *Manager) Login(ctx context.Context, username, password string) bool {
	user, err := m.users.Authenticate(ctx, username, password)
	if err != nil {
		m.recordAudit(ctx, AuditLoginFailure, 0, username)
		return false
	}

	m.mu.Lock()
	m.current = user
	m.sessionID = uuid.NewString()
	m.startedAt = time.Now()
	m.data = make(map[string]string)
	m.persistLocked()
	m.mu.Unlock()

	// The audit write is a DB round-trip; keep it outside the critical
	// section so concurrent reads are not stalled behind it.
	m.recordAudit(ctx, AuditLoginSuccess, user.ID, user.Username)
	return true
}

// RestoreFromDisk loads a persisted snapshot on process start. Stale,
// corrupt, or orphaned snapshots are deleted and the manager stays
// LoggedOut; nothing here is fatal.
func (m *Manager) RestoreFromDisk(ctx context.Context) {
	snap, err := m.store.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			m.warn("discard snapshot", err)
			m.deleteSnapshot()
		}
		return
	}
	if time.Since(snap.StartedAt) >= m.timeout {
		m.deleteSnapshot()
		return
	}
	user, err := m.users.FindByID(ctx, snap.UserID)
	if err != nil || !user.IsActive {
		m.deleteSnapshot()
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = user
	m.sessionID = snap.SessionID
	m.startedAt = snap.StartedAt
	m.data = snap.Data
	if m.data == nil {
		m.data = make(map[string]string)
	}
}

// Logout transitions to LoggedOut unconditionally.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	id, name, had := m.clearLocked()
	m.mu.Unlock()
	if had {
		m.recordAudit(ctx, AuditLogout, id, name)
	}
}

// clearLocked wipes the session state and snapshot, returning the identity of
// the operator that was logged in so the caller can audit it after unlocking.
func (m *Manager) clearLocked() (id int64, name string, had bool) {
	if m.current != nil {
		id, name, had = m.current.ID, m.current.Username, true
	}
	m.current = nil
	m.sessionID = ""
	m.startedAt = time.Time{}
	m.data = nil
	m.deleteSnapshot()
	return id, name, had
}

// Extend resets the session start to now (sliding expiry) and re-persists
// the snapshot. No-op when LoggedOut.
func (m *Manager) Extend() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	m.startedAt = time.Now()
	m.persistLocked()
}

// IsExpired reports whether the session has outlived the timeout. A
// LoggedOut manager is not expired, merely absent.
func (m *Manager) IsExpired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil && m.expiredLocked()
}

func (m *Manager) expiredLocked() bool {
	return time.Since(m.startedAt) >= m.timeout
}

// Validate confirms the session is usable: logged in, not expired, and the
// user still exists and is active. Expired or orphaned sessions are logged
// out as a side effect. On success the cached user snapshot is refreshed.
func (m *Manager) Validate(ctx context.Context) bool {
	return m.ValidatedUser(ctx) != nil
}

// ValidatedUser runs the same checks as Validate and returns a copy of the
// session's user from the same critical section, so callers get a consistent
// answer even when a logout lands concurrently. Nil means no usable session.
func (m *Manager) ValidatedUser(ctx context.Context) *users.User {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil
	}
	if m.expiredLocked() {
		id, name, _ := m.clearLocked()
		m.mu.Unlock()
		m.recordAudit(ctx, AuditSessionExpired, id, name)
		return nil
	}
	user, err := m.users.FindByID(ctx, m.current.ID)
	if err != nil || !user.IsActive {
		id, name, _ := m.clearLocked()
		m.mu.Unlock()
		m.recordAudit(ctx, AuditLogout, id, name)
		return nil
	}
	m.current = user
	copied := *user
	m.mu.Unlock()
	return &copied
}

// IsLoggedIn reports whether an operator is currently authenticated.
func (m *Manager) IsLoggedIn() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// CurrentUser returns a copy of the session's user, or nil when LoggedOut.
// The session only caches the record; the user store owns it.
func (m *Manager) CurrentUser() *users.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	copied := *m.current
	return &copied
}

// SessionID returns the current session identifier, empty when LoggedOut.
func (m *Manager) SessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

// StartedAt returns the session start timestamp.
func (m *Manager) StartedAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startedAt
}

// SetData stores a session-scoped value and re-persists the snapshot.
func (m *Manager) SetData(key DataKey, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return
	}
	m.data[string(key)] = value
	m.persistLocked()
}

// GetData retrieves a session-scoped value.
func (m *Manager) GetData(key DataKey) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return ""
	}
	return m.data[string(key)]
}

// persistLocked writes the snapshot. Snapshot I/O is fire-and-forget:
// failures are logged, never surfaced.
func (m *Manager) persistLocked() {
	snap := Snapshot{
		SessionID: m.sessionID,
		UserID:    m.current.ID,
		Username:  m.current.Username,
		StartedAt: m.startedAt,
		Data:      m.data,
	}
	if err := m.store.Save(snap); err != nil {
		m.warn("persist snapshot", err)
	}
}

func (m *Manager) deleteSnapshot() {
	if err := m.store.Delete(); err != nil {
		m.warn("delete snapshot", err)
	}
}

func (m *Manager) recordAudit(ctx context.Context, action string, userID int64, username string) {
	if m.audit != nil {
		m.audit.RecordAuthEvent(ctx, action, userID, username)
	}
}

func (m *Manager) warn(msg string, err error) {
	if m.logger != nil {
		m.logger.Warn(msg, slog.Any("error", err))
	}
}
