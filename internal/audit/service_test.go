package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	events  []Event
	failing bool
	lastLim int
}

func (r *memoryRepo) Insert(ctx context.Context, e Event) error {
	if r.failing {
		return errors.New("database unreachable")
	}
	e.ID = int64(len(r.events) + 1)
	r.events = append(r.events, e)
	return nil
}

func (r *memoryRepo) Recent(ctx context.Context, limit int) ([]Event, error) {
	r.lastLim = limit
	out := make([]Event, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}

func TestRecordAndRecent(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	svc.RecordAuthEvent(ctx, "login.success", 1, "owner")
	svc.RecordGrantChange(ctx, 1, "grant", 2, 10)

	events, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "grant", events[0].Action)
	require.Equal(t, int64(1), events[0].ActorID)
	require.Equal(t, "login.success", events[1].Action)
}

func TestRecordingFailureIsSwallowed(t *testing.T) {
	repo := &memoryRepo{failing: true}
	svc := NewService(repo, nil)

	svc.RecordAuthEvent(context.Background(), "logout", 1, "owner")
	require.Empty(t, repo.events)
}

func TestRecentClampsLimit(t *testing.T) {
	repo := &memoryRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 50, repo.lastLim)

	_, err = svc.Recent(ctx, 1000)
	require.NoError(t, err)
	require.Equal(t, 200, repo.lastLim)
}
