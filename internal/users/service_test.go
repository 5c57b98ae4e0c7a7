package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

type memoryRepo struct {
	byName map[string]*User
	byID   map[int64]*User
	nextID int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byName: make(map[string]*User), byID: make(map[int64]*User)}
}

func (r *memoryRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := r.byName[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id int64) (*User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryRepo) Insert(ctx context.Context, user *User) (int64, error) {
	if _, ok := r.byName[user.Username]; ok {
		return 0, ErrUsernameTaken
	}
	r.nextID++
	copied := *user
	copied.ID = r.nextID
	r.byName[copied.Username] = &copied
	r.byID[copied.ID] = &copied
	return copied.ID, nil
}

func (r *memoryRepo) List(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memoryRepo) SetActive(ctx context.Context, id int64, active bool) error {
	u, ok := r.byID[id]
	if !ok {
		return shared.ErrNotFound
	}
	u.IsActive = active
	return nil
}

type recordingProvisioner struct {
	calls []string
}

func (p *recordingProvisioner) ProvisionDefaults(ctx context.Context, userID int64, roleName string) int {
	p.calls = append(p.calls, roleName)
	return 1
}

func seedUser(t *testing.T, repo *memoryRepo, username, password string, active bool) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &User{Username: username, PasswordHash: string(hash), IsActive: active}
	id, err := repo.Insert(context.Background(), u)
	require.NoError(t, err)
	u.ID = id
	return u
}

func TestAuthenticate(t *testing.T) {
	repo := newMemoryRepo()
	seedUser(t, repo, "kasir", "correct-horse", true)
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	user, err := svc.Authenticate(ctx, "kasir", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, "kasir", user.Username)

	_, err = svc.Authenticate(ctx, "kasir", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ghost", "correct-horse")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	repo := newMemoryRepo()
	seedUser(t, repo, "kasir", "correct-horse", false)
	svc := NewService(repo, nil, nil)

	_, err := svc.Authenticate(context.Background(), "kasir", "correct-horse")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestCreateProvisionsRoleDefaults(t *testing.T) {
	repo := newMemoryRepo()
	prov := &recordingProvisioner{}
	svc := NewService(repo, prov, nil)

	user, err := svc.Create(context.Background(), CreateInput{
		Username:    "sari",
		Password:    "supersecret",
		DisplayName: "Sari",
		RoleLabel:   "Sales",
	})
	require.NoError(t, err)
	require.True(t, user.IsActive)
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.Equal(t, []string{"Sales"}, prov.calls)
}

func TestCreateWithoutRoleSkipsProvisioning(t *testing.T) {
	repo := newMemoryRepo()
	prov := &recordingProvisioner{}
	svc := NewService(repo, prov, nil)

	_, err := svc.Create(context.Background(), CreateInput{
		Username:    "admin",
		Password:    "supersecret",
		DisplayName: "Admin",
		IsAdmin:     true,
	})
	require.NoError(t, err)
	require.Empty(t, prov.calls)
}

func TestCreateDuplicateUsername(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Username: "sari", Password: "supersecret", DisplayName: "Sari"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{Username: "sari", Password: "supersecret", DisplayName: "Sari 2"})
	require.ErrorIs(t, err, ErrUsernameTaken)
}
