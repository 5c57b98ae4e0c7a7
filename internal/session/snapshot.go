package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is the on-disk copy of session state used to survive restarts.
type Snapshot struct {
	SessionID string            `json:"session_id"`
	UserID    int64             `json:"user_id"`
	Username  string            `json:"username"`
	StartedAt time.Time         `json:"started_at"`
	Data      map[string]string `json:"data,omitempty"`
}

var (
	// ErrNoSnapshot indicates that no snapshot file exists.
	ErrNoSnapshot = errors.New("session: no snapshot")
	// ErrCorruptSnapshot indicates an unreadable snapshot file.
	ErrCorruptSnapshot = errors.New("session: corrupt snapshot")
)

// Store persists session snapshots to a file in the application state
// directory. Writes go through a temp file and rename so a crash mid-write
// cannot leave a half-written snapshot visible.
type Store struct {
	path string
}

// NewStore constructs a Store for the given snapshot path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return s.path
}

// Save atomically replaces the snapshot file.
func (s *Store) Save(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode snapshot: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: mkdir state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("session: create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("session: write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: close snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("session: replace snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot file. A missing file yields ErrNoSnapshot; an
// unreadable or malformed one yields ErrCorruptSnapshot.
func (s *Store) Load() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.UserID <= 0 || snap.SessionID == "" {
		return Snapshot{}, ErrCorruptSnapshot
	}
	return snap, nil
}

// Delete removes the snapshot file. Missing files are not an error.
func (s *Store) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: delete snapshot: %w", err)
	}
	return nil
}
