package grants

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	rows    map[int64]map[int64]struct{}
	failing bool
	lists   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[int64]map[int64]struct{})}
}

func (r *memoryRepo) Insert(ctx context.Context, userID, permissionID int64) error {
	if r.failing {
		return errors.New("database unreachable")
	}
	if r.rows[userID] == nil {
		r.rows[userID] = make(map[int64]struct{})
	}
	r.rows[userID][permissionID] = struct{}{}
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, userID, permissionID int64) error {
	if r.failing {
		return errors.New("database unreachable")
	}
	delete(r.rows[userID], permissionID)
	return nil
}

func (r *memoryRepo) ListPermissionIDs(ctx context.Context, userID int64) ([]int64, error) {
	if r.failing {
		return nil, errors.New("database unreachable")
	}
	r.lists++
	var ids []int64
	for id := range r.rows[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func TestGrantRevokeRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	before, err := svc.GrantedPermissionIDs(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, before)

	require.True(t, svc.Grant(ctx, 1, 10))
	require.True(t, svc.Revoke(ctx, 1, 10))

	after, err := svc.GrantedPermissionIDs(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestGrantIsIdempotent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	require.True(t, svc.Grant(ctx, 1, 10))
	require.True(t, svc.Grant(ctx, 1, 10))

	set, err := svc.GrantedPermissionIDs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, set, 1)
	require.Contains(t, set, int64(10))
}

func TestRevokeNonGrantedIsNoop(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	require.True(t, svc.Grant(ctx, 1, 10))
	require.True(t, svc.Revoke(ctx, 1, 99))

	set, err := svc.GrantedPermissionIDs(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, set, int64(10))
}

func TestPersistenceFailureReportsFalse(t *testing.T) {
	repo := newMemoryRepo()
	repo.failing = true
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	require.False(t, svc.Grant(ctx, 1, 10))
	require.False(t, svc.Revoke(ctx, 1, 10))

	_, err := svc.GrantedPermissionIDs(ctx, 1)
	require.Error(t, err)
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, time.Minute)
}

func TestGrantedPermissionIDsUsesCache(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, newTestCache(t), nil)
	ctx := context.Background()

	require.True(t, svc.Grant(ctx, 1, 10))

	set, err := svc.GrantedPermissionIDs(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, set, int64(10))
	require.Equal(t, 1, repo.lists)

	// Second read is served from the cache.
	set, err = svc.GrantedPermissionIDs(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, set, int64(10))
	require.Equal(t, 1, repo.lists)
}

func TestGrantInvalidatesCache(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, newTestCache(t), nil)
	ctx := context.Background()

	require.True(t, svc.Grant(ctx, 1, 10))
	_, err := svc.GrantedPermissionIDs(ctx, 1)
	require.NoError(t, err)

	require.True(t, svc.Grant(ctx, 1, 20))

	set, err := svc.GrantedPermissionIDs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, set, 2)
}

func TestWarmCache(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, newTestCache(t), nil)
	ctx := context.Background()

	require.True(t, svc.Grant(ctx, 1, 10))
	require.NoError(t, svc.WarmCache(ctx, 1))

	listsBefore := repo.lists
	set, err := svc.GrantedPermissionIDs(ctx, 1)
	require.NoError(t, err)
	require.Contains(t, set, int64(10))
	require.Equal(t, listsBefore, repo.lists)
}
