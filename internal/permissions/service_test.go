package permissions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

type memoryRepo struct {
	perms    map[string]Permission
	nextID   int64
	countErr error
	insErr   error
	inserts  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{perms: make(map[string]Permission)}
}

func (r *memoryRepo) Count(ctx context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.perms)), nil
}

func (r *memoryRepo) Insert(ctx context.Context, perms []Permission) error {
	r.inserts++
	if r.insErr != nil {
		return r.insErr
	}
	for _, p := range perms {
		if _, ok := r.perms[p.Name]; ok {
			continue
		}
		r.nextID++
		p.ID = r.nextID
		r.perms[p.Name] = p
	}
	return nil
}

func (r *memoryRepo) FindByName(ctx context.Context, name string) (Permission, error) {
	p, ok := r.perms[name]
	if !ok {
		return Permission{}, shared.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) All(ctx context.Context) ([]Permission, error) {
	out := make([]Permission, 0, len(r.perms))
	for _, p := range r.perms {
		out = append(out, p)
	}
	return out, nil
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	svc.Seed(ctx)
	require.Len(t, repo.perms, len(Catalog()))
	require.Equal(t, 1, repo.inserts)

	// Second call must be a no-op: the registry is already populated.
	svc.Seed(ctx)
	require.Equal(t, 1, repo.inserts)
	require.Len(t, repo.perms, len(Catalog()))
}

func TestSeedSwallowsPersistenceErrors(t *testing.T) {
	repo := newMemoryRepo()
	repo.insErr = errors.New("disk full")
	svc := NewService(repo, nil)

	svc.Seed(context.Background())

	repo.countErr = errors.New("db gone")
	svc.Seed(context.Background())
}

func TestFindByNameIsCaseSensitive(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()
	svc.Seed(ctx)

	p, err := svc.FindByName(ctx, PermSalesView)
	require.NoError(t, err)
	require.Equal(t, PermSalesView, p.Name)

	_, err = svc.FindByName(ctx, "Sales.View")
	require.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.FindByName(ctx, "no.such.permission")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCatalogNamesAreUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for _, p := range Catalog() {
		_, dup := seen[p.Name]
		require.False(t, dup, "duplicate catalog name %q", p.Name)
		seen[p.Name] = struct{}{}
		require.NotEmpty(t, p.Description)
		require.NotEmpty(t, p.Category)
	}
}
